package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"shipfee/internal/service/shipping/domain"
)

var (
	quotesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipfee_quotes_total",
		Help: "Number of shipping quotes computed, by method.",
	}, []string{"method"})

	// kind: province（缺坐标，按省名比较）或 rush_distance（缺坐标，使用兜底距离）
	fallbackTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipfee_fallback_total",
		Help: "Number of seller fees resolved without coordinates.",
	}, []string{"kind"})

	quoteFee = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "shipfee_quote_fee",
		Help:    "Total shipping fee per quote in minor currency units.",
		Buckets: prometheus.ExponentialBuckets(10000, 2, 10),
	})

	cacheResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "shipfee_quote_cache_total",
		Help: "Quote cache lookups, by result.",
	}, []string{"result"})
)

func observeSummary(summary *domain.ShippingSummary) {
	quotesTotal.WithLabelValues(string(summary.Method)).Inc()
	quoteFee.Observe(float64(summary.TotalShippingFee))
	for _, e := range summary.Breakdown {
		switch {
		case e.UsedFallbackDistance:
			fallbackTotal.WithLabelValues("rush_distance").Inc()
		case e.Scope != domain.ScopeDistance && e.DistanceKm == nil:
			fallbackTotal.WithLabelValues("province").Inc()
		}
	}
}
