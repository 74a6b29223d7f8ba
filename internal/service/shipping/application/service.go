package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"shipfee/internal/pkg/logger"
	"shipfee/internal/service/shipping/domain"
)

// QuoteService 是结算页调用的运费报价用例
type QuoteService struct {
	tables    *FeeTableHolder
	tracer    trace.Tracer
	cache     QuoteCache
	cacheTTL  time.Duration
	publisher QuotePublisher
	market    string

	// 合并同一时刻完全相同的报价请求
	group singleflight.Group
	now   func() time.Time
}

// Option 配置 QuoteService 的可选依赖
type Option func(*QuoteService)

// WithCache 启用报价缓存
func WithCache(cache QuoteCache, ttl time.Duration) Option {
	return func(s *QuoteService) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

// WithPublisher 启用报价事件
func WithPublisher(p QuotePublisher) Option {
	return func(s *QuoteService) {
		s.publisher = p
	}
}

// WithMarket 设置事件里携带的市场标识
func WithMarket(market string) Option {
	return func(s *QuoteService) {
		s.market = market
	}
}

// NewQuoteService 创建一个新的报价服务实例
func NewQuoteService(tables *FeeTableHolder, tracer trace.Tracer, opts ...Option) *QuoteService {
	s := &QuoteService{
		tables: tables,
		tracer: tracer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Quote 计算整单运费。只有输入不满足接口约束时才返回错误。
func (s *QuoteService) Quote(ctx context.Context, req *QuoteRequest) (*QuoteResponse, error) {
	ctx, span := s.tracer.Start(ctx, "service.Quote")
	defer span.End()

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	resolver := s.tables.Current()
	table := resolver.Table()
	sellers := req.ToSellers()
	dest := req.ToDestination()
	method := domain.ParseMethod(req.Method)

	span.SetAttributes(
		attribute.String("shipping.method.requested", req.Method),
		attribute.String("shipping.method", string(method)),
		attribute.Int("shipping.sellers", len(sellers)),
		attribute.String("shipping.table_version", table.Version),
	)

	key := QuoteKey(table, method, sellers, dest, req.RushDistanceKm)
	var summary *domain.ShippingSummary
	if key == "" {
		summary = s.compute(resolver, sellers, dest, method, req.RushDistanceKm)
	} else {
		v, _, shared := s.group.Do(key, func() (interface{}, error) {
			return s.lookupOrCompute(ctx, key, resolver, sellers, dest, method, req.RushDistanceKm), nil
		})
		summary = v.(*domain.ShippingSummary)
		span.SetAttributes(attribute.Bool("shipping.singleflight_shared", shared))
	}
	observeSummary(summary)

	resp := &QuoteResponse{
		QuoteID:      uuid.NewString(),
		TableVersion: table.Version,
		Summary:      *summary,
	}
	span.SetAttributes(
		attribute.String("shipping.quote_id", resp.QuoteID),
		attribute.Int64("shipping.total_fee", summary.TotalShippingFee),
	)
	logger.Ctx(ctx).Info().
		Str("quote_id", resp.QuoteID).
		Str("method", string(summary.Method)).
		Int("sellers", len(summary.Breakdown)).
		Int64("total_fee", summary.TotalShippingFee).
		Msg("shipping quote computed")

	s.publish(ctx, resp)
	return resp, nil
}

func (s *QuoteService) lookupOrCompute(ctx context.Context, key string, resolver *domain.Resolver, sellers []domain.SellerShop, dest *domain.Destination, method domain.Method, rushKm *float64) *domain.ShippingSummary {
	if s.cache == nil {
		return s.compute(resolver, sellers, dest, method, rushKm)
	}

	cached, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		// 缓存故障不影响报价
		cacheResults.WithLabelValues("error").Inc()
		logger.Ctx(ctx).Warn().Err(err).Msg("quote cache get failed")
	case cached != nil:
		cacheResults.WithLabelValues("hit").Inc()
		return cached
	default:
		cacheResults.WithLabelValues("miss").Inc()
	}

	summary := s.compute(resolver, sellers, dest, method, rushKm)
	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		logger.Ctx(ctx).Warn().Err(err).Msg("quote cache set failed")
	}
	return summary
}

func (s *QuoteService) compute(resolver *domain.Resolver, sellers []domain.SellerShop, dest *domain.Destination, method domain.Method, rushKm *float64) *domain.ShippingSummary {
	summary := resolver.Summarize(sellers, dest, string(method), rushKm)
	return &summary
}

func (s *QuoteService) publish(ctx context.Context, resp *QuoteResponse) {
	if s.publisher == nil {
		return
	}
	event := &QuotedEvent{
		QuoteID:          resp.QuoteID,
		Method:           resp.Summary.Method,
		TotalShippingFee: resp.Summary.TotalShippingFee,
		SellerCount:      len(resp.Summary.Breakdown),
		TableVersion:     resp.TableVersion,
		Market:           s.market,
		QuotedAt:         s.now().UTC(),
	}
	// 事件丢失只影响下游对账，不能让报价失败
	if err := s.publisher.PublishQuoted(ctx, event); err != nil {
		logger.Ctx(ctx).Error().Err(err).Str("quote_id", resp.QuoteID).Msg("failed to publish quoted event")
	}
}
