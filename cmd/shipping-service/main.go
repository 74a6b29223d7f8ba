package main

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
	zlog "github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"

	"shipfee/internal/pkg/bootstrap"
	"shipfee/internal/pkg/config"
	"shipfee/internal/pkg/logger"
	"shipfee/internal/service/shipping/application"
	"shipfee/internal/service/shipping/domain"
	"shipfee/internal/service/shipping/infrastructure"
	"shipfee/internal/service/shipping/infrastructure/rule"
	"shipfee/internal/service/shipping/interfaces"
)

const (
	serviceName = "shipping-service"
)

var (
	tracer = otel.Tracer(serviceName)
)

func main() {
	cfg, err := config.Load(getEnv("SHIPFEE_CONFIG", "configs/shipping.yaml"))
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Init(serviceName, cfg.Log.Level)

	validator, err := rule.NewCELFeeTableValidator()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to build fee table validator")
	}

	var closers []func()
	bootstrap.StartService(bootstrap.AppInfo{
		ServiceName: serviceName,
		Config:      cfg,
		RegisterHandlers: func(appCtx bootstrap.AppCtx) error {
			holder, err := loadFeeTables(appCtx, validator)
			if err != nil {
				return err
			}

			opts := []application.Option{application.WithMarket(cfg.Shipping.Market)}
			if addr := cfg.Infra.Redis.Addr; addr != "" {
				rdb, err := infrastructure.NewRedisClient(context.Background(), addr, cfg.Infra.Redis.Password, cfg.Infra.Redis.DB)
				if err != nil {
					return err
				}
				closers = append(closers, func() { closeRedis(rdb) })
				opts = append(opts, application.WithCache(infrastructure.NewRedisQuoteCache(rdb), cfg.Infra.Redis.QuoteTTL))
			}
			if brokers := cfg.Infra.Kafka.Brokers; len(brokers) > 0 {
				pub := infrastructure.NewKafkaQuotePublisher(infrastructure.NewKafkaWriter(brokers, cfg.Infra.Kafka.QuoteTopic))
				closers = append(closers, func() {
					if err := pub.Close(); err != nil {
						zlog.Error().Err(err).Msg("failed to close kafka writer")
					}
				})
				opts = append(opts, application.WithPublisher(pub))
			}

			svc := application.NewQuoteService(holder, tracer, opts...)
			interfaces.NewShippingHandler(svc, tracer).RegisterRoutes(appCtx.Mux)
			return nil
		},
		OnShutdown: func(ctx context.Context) {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		},
	})
}

// loadFeeTables 按配置的来源加载价格表：file 直接使用配置文件里的表，
// mysql 读取市场当前启用的版本，nacos 读取并监听配置中心
func loadFeeTables(appCtx bootstrap.AppCtx, validator application.FeeTableValidator) (*application.FeeTableHolder, error) {
	cfg := appCtx.Config
	normalizer := domain.NewVietnameseNormalizer()

	holder, err := application.NewFeeTableHolder(cfg.Shipping.FeeTable, validator, normalizer)
	if err != nil {
		return nil, err
	}

	switch cfg.Shipping.FeeTableSource {
	case config.FeeTableSourceMySQL:
		db, err := infrastructure.NewMySQLDB(cfg.Infra.MySQL.DSN)
		if err != nil {
			return nil, err
		}
		table, err := infrastructure.NewGormFeeTableRepository(db).FindActiveByMarket(context.Background(), cfg.Shipping.Market)
		if err != nil {
			return nil, err
		}
		if err := holder.Update(table); err != nil {
			return nil, err
		}
	case config.FeeTableSourceNacos:
		if appCtx.Nacos == nil {
			zlog.Warn().Msg("fee_table_source is nacos but nacos is disabled, using file fee table")
			break
		}
		src := infrastructure.NewNacosFeeTableSource(appCtx.Nacos, cfg.Infra.Nacos.FeeTableDataID, cfg.Shipping.FeeTable, holder)
		if err := src.Start(); err != nil {
			return nil, err
		}
	}
	return holder, nil
}

func closeRedis(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		zlog.Error().Err(err).Msg("failed to close redis client")
	}
}

// getEnv 从环境变量中读取配置。
// 如果环境变量不存在，则返回提供的默认值。
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
