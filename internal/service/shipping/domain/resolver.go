// internal/service/shipping/domain/resolver.go
package domain

import "math"

// FeeBreakdownEntry 是单个卖家的运费明细。
type FeeBreakdownEntry struct {
	SellerID             string   `json:"sellerId"`
	ShopID               string   `json:"shopId,omitempty"`
	Fee                  int64    `json:"fee"`
	Scope                Scope    `json:"scope"`
	DistanceKm           *float64 `json:"distanceKm"`
	ShopProvince         string   `json:"shopProvince,omitempty"`
	DestinationProvince  string   `json:"destinationProvince,omitempty"`
	UsedFallbackDistance bool     `json:"usedFallbackDistance"`
}

// Resolver 根据配送方式、距离或省份决定单个卖家的计费范围和运费。
// 它只读取注入的 FeeTable，没有可变状态，可以被任意多个 goroutine 并发使用。
type Resolver struct {
	table      FeeTable
	normalizer RegionNormalizer
}

// NewResolver 创建一个 Resolver。normalizer 为 nil 时使用越南省名规范化器。
func NewResolver(table FeeTable, normalizer RegionNormalizer) *Resolver {
	if normalizer == nil {
		normalizer = NewVietnameseNormalizer()
	}
	return &Resolver{table: table, normalizer: normalizer}
}

// Table 返回 Resolver 使用的价格表副本。
func (r *Resolver) Table() FeeTable {
	return r.table
}

// Resolve 计算一个卖家的运费，SellerID 由调用方填写。
// fallbackRushKm 只在 rush 且缺少坐标时使用，为 nil 时取价格表里的默认距离。
func (r *Resolver) Resolve(method Method, shop *ShopLocation, dest *Destination, fallbackRushKm *float64) FeeBreakdownEntry {
	if !method.Valid() {
		method = MethodStandard
	}

	entry := FeeBreakdownEntry{
		ShopID:              shop.shopID(),
		ShopProvince:        shop.province(),
		DestinationProvince: dest.province(),
	}
	km, known := DistanceBetween(shop.coordinate(), dest.coordinate())

	if method == MethodRush {
		r.resolveRush(&entry, km, known, fallbackRushKm)
		return entry
	}

	tier := r.table.tier(method)
	var inProvince bool
	if known {
		entry.DistanceKm = &km
		inProvince = km <= r.table.InProvinceThresholdKm
	} else {
		inProvince = r.normalizer.SameRegion(shop.province(), dest.province())
	}

	if inProvince {
		entry.Scope = ScopeInProvince
		entry.Fee = nonNegative(tier.InProvince)
	} else {
		entry.Scope = ScopeOutOfProvince
		entry.Fee = nonNegative(tier.OutOfProvince)
	}
	return entry
}

func (r *Resolver) resolveRush(entry *FeeBreakdownEntry, km float64, known bool, fallbackKm *float64) {
	rush := r.table.Rush
	entry.Scope = ScopeDistance

	if !known {
		entry.UsedFallbackDistance = true
		km = rush.DefaultDistanceKm
		if fallbackKm != nil {
			km = *fallbackKm
		}
	}
	km = ClampDistance(km, rush.MinDistanceKm, rush.MaxDistanceKm)
	entry.DistanceKm = &km
	entry.Fee = RushFee(rush, km)
}

// RushFee 计算 round(baseFee + max(0, km-includedKm) * perKm)。
// 对 km 单调不减（perKm ≥ 0 时）。
func RushFee(rush RushFees, km float64) int64 {
	extra := math.Max(0, km-rush.IncludedKm)
	fee := math.Round(float64(rush.BaseFee) + extra*float64(rush.PerKm))
	if math.IsNaN(fee) || fee < 0 {
		return 0
	}
	return int64(fee)
}

// ClampDistance 把距离限制在 [min, max] 内。NaN 视为最小值，不返回错误。
func ClampDistance(km, min, max float64) float64 {
	switch {
	case math.IsNaN(km), km < min:
		return min
	case km > max:
		return max
	}
	return km
}

func nonNegative(fee int64) int64 {
	if fee < 0 {
		return 0
	}
	return fee
}
