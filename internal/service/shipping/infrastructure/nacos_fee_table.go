package infrastructure

import (
	"strings"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"

	"shipfee/internal/service/shipping/domain"
)

// ConfigSource 是配置中心的最小接口，*nacos.Client 实现了它
type ConfigSource interface {
	GetConfig(dataID string) (string, error)
	ListenConfig(dataID string, onChange func(content string)) error
}

// FeeTableUpdater 接收新的价格表，*application.FeeTableHolder 实现了它
type FeeTableUpdater interface {
	Update(table domain.FeeTable) error
}

// NacosFeeTableSource 从 Nacos 读取价格表并在变更时热更新
type NacosFeeTableSource struct {
	source  ConfigSource
	dataID  string
	base    domain.FeeTable
	updater FeeTableUpdater
}

// NewNacosFeeTableSource 创建价格表配置源，base 为配置里缺省字段的默认值
func NewNacosFeeTableSource(source ConfigSource, dataID string, base domain.FeeTable, updater FeeTableUpdater) *NacosFeeTableSource {
	return &NacosFeeTableSource{source: source, dataID: dataID, base: base, updater: updater}
}

// Start 加载当前配置并开始监听。首次加载失败时返回错误，后续变更失败只记录日志。
func (s *NacosFeeTableSource) Start() error {
	content, err := s.source.GetConfig(s.dataID)
	if err != nil {
		return err
	}
	if err := s.apply(content); err != nil {
		return err
	}
	return s.source.ListenConfig(s.dataID, func(content string) {
		if err := s.apply(content); err != nil {
			zlog.Error().Err(err).Str("data_id", s.dataID).Msg("fee table update rejected, keeping previous table")
		}
	})
}

func (s *NacosFeeTableSource) apply(content string) error {
	if strings.TrimSpace(content) == "" {
		return errors.Errorf("nacos config %s is empty", s.dataID)
	}
	table, err := ParseFeeTable([]byte(content), s.base)
	if err != nil {
		return err
	}
	return s.updater.Update(table)
}
