package application

import (
	"sync/atomic"

	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"

	"shipfee/internal/service/shipping/domain"
)

// FeeTableHolder 持有当前生效的 Resolver。
// 热更新时整体替换指针，进行中的计算继续使用它拿到的那一份。
type FeeTableHolder struct {
	current    atomic.Pointer[domain.Resolver]
	validator  FeeTableValidator
	normalizer domain.RegionNormalizer
}

// NewFeeTableHolder 用 initial 初始化；initial 不合法时返回错误。
// validator 为 nil 时不做校验。
func NewFeeTableHolder(initial domain.FeeTable, validator FeeTableValidator, normalizer domain.RegionNormalizer) (*FeeTableHolder, error) {
	h := &FeeTableHolder{validator: validator, normalizer: normalizer}
	if err := h.Update(initial); err != nil {
		return nil, err
	}
	return h, nil
}

// Current 返回当前的 Resolver 快照
func (h *FeeTableHolder) Current() *domain.Resolver {
	return h.current.Load()
}

// Update 校验并替换价格表，校验失败时保留旧表。
func (h *FeeTableHolder) Update(table domain.FeeTable) error {
	if h.validator != nil {
		if err := h.validator.Validate(table); err != nil {
			return errors.Wrapf(ErrInvalidFeeTable, "version %q: %v", table.Version, err)
		}
	}
	h.current.Store(domain.NewResolver(table, h.normalizer))
	zlog.Info().Str("version", table.Version).Str("market", table.Market).Msg("fee table activated")
	return nil
}
