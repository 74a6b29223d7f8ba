// internal/pkg/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"shipfee/internal/service/shipping/domain"
)

// 价格表来源
const (
	FeeTableSourceFile  = "file"
	FeeTableSourceMySQL = "mysql"
	FeeTableSourceNacos = "nacos"
)

// Config 是 shipping-service 与 shipfee CLI 共用的配置。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
	Infra    InfraConfig    `yaml:"infra"`
	Shipping ShippingConfig `yaml:"shipping"`
}

type ServerConfig struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type InfraConfig struct {
	Jaeger JaegerConfig `yaml:"jaeger"`
	Nacos  NacosConfig  `yaml:"nacos"`
	MySQL  MySQLConfig  `yaml:"mysql"`
	Redis  RedisConfig  `yaml:"redis"`
	Kafka  KafkaConfig  `yaml:"kafka"`
}

type JaegerConfig struct {
	// 为空时不导出 trace
	Endpoint string `yaml:"endpoint"`
}

type NacosConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServerAddrs string `yaml:"server_addrs"`
	Namespace   string `yaml:"namespace"`
	Group       string `yaml:"group"`
	// 价格表在配置中心里的 dataId
	FeeTableDataID string `yaml:"fee_table_data_id"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	QuoteTTL time.Duration `yaml:"quote_ttl"`
}

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	QuoteTopic string   `yaml:"quote_topic"`
}

type ShippingConfig struct {
	Market         string          `yaml:"market"`
	FeeTableSource string          `yaml:"fee_table_source"`
	FeeTable       domain.FeeTable `yaml:"fee_table"`
}

// Default 返回不依赖任何外部组件即可运行的配置。
func Default() *Config {
	return &Config{
		Server: ServerConfig{Name: "shipping-service", Port: 8086},
		Log:    LogConfig{Level: "info"},
		Infra: InfraConfig{
			Nacos: NacosConfig{
				ServerAddrs:    "localhost:8848",
				Group:          "DEFAULT_GROUP",
				FeeTableDataID: "shipping-fee-table.yaml",
			},
			Redis: RedisConfig{QuoteTTL: 30 * time.Second},
			Kafka: KafkaConfig{QuoteTopic: "shipping.quoted"},
		},
		Shipping: ShippingConfig{
			Market:         "vn",
			FeeTableSource: FeeTableSourceFile,
			FeeTable:       domain.DefaultFeeTable(),
		},
	}
}

// Load 读取 YAML 配置文件并叠加环境变量。
// path 为空或文件不存在时只使用默认值和环境变量。
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config %s", path)
			}
		case os.IsNotExist(err):
		default:
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Server.Port = getEnvInt("PORT", cfg.Server.Port)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Infra.Jaeger.Endpoint = getEnv("JAEGER_ENDPOINT", cfg.Infra.Jaeger.Endpoint)
	cfg.Infra.Nacos.ServerAddrs = getEnv("NACOS_SERVER_ADDRS", cfg.Infra.Nacos.ServerAddrs)
	cfg.Infra.Nacos.Namespace = getEnv("NACOS_NAMESPACE", cfg.Infra.Nacos.Namespace)
	cfg.Infra.Nacos.Group = getEnv("NACOS_GROUP", cfg.Infra.Nacos.Group)
	cfg.Infra.MySQL.DSN = getEnv("MYSQL_DSN", cfg.Infra.MySQL.DSN)
	cfg.Infra.Redis.Addr = getEnv("REDIS_ADDR", cfg.Infra.Redis.Addr)
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.Infra.Kafka.Brokers = strings.Split(brokers, ",")
	}
	cfg.Shipping.Market = getEnv("SHIPPING_MARKET", cfg.Shipping.Market)
	cfg.Shipping.FeeTableSource = getEnv("FEE_TABLE_SOURCE", cfg.Shipping.FeeTableSource)
}

// getEnv 从环境变量中读取配置，不存在时返回默认值。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
