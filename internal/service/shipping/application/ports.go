package application

import (
	"context"
	"time"

	"shipfee/internal/service/shipping/domain"
)

// FeeTableValidator 在价格表生效前检查业务约束
type FeeTableValidator interface {
	Validate(table domain.FeeTable) error
}

// QuoteCache 缓存相同输入的运费汇总。未命中返回 (nil, nil)。
type QuoteCache interface {
	Get(ctx context.Context, key string) (*domain.ShippingSummary, error)
	Set(ctx context.Context, key string, summary *domain.ShippingSummary, ttl time.Duration) error
}

// QuotedEvent 在每次报价后发送给订单/支付服务
type QuotedEvent struct {
	QuoteID          string        `json:"quoteId"`
	Method           domain.Method `json:"method"`
	TotalShippingFee int64         `json:"totalShippingFee"`
	SellerCount      int           `json:"sellerCount"`
	TableVersion     string        `json:"tableVersion"`
	Market           string        `json:"market"`
	QuotedAt         time.Time     `json:"quotedAt"`
}

// QuotePublisher 发布报价事件
type QuotePublisher interface {
	PublishQuoted(ctx context.Context, event *QuotedEvent) error
}
