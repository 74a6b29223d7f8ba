// internal/service/shipping/domain/fee_table.go
package domain

// TierFees 是 standard / express 的省内、外省两档价格（最小货币单位）。
type TierFees struct {
	InProvince    int64 `json:"inProvince" yaml:"in_province"`
	OutOfProvince int64 `json:"outOfProvince" yaml:"out_of_province"`
}

// RushFees 是按距离计价的加急配送参数。
type RushFees struct {
	BaseFee           int64   `json:"baseFee" yaml:"base_fee"`
	IncludedKm        float64 `json:"includedKm" yaml:"included_km"`
	PerKm             int64   `json:"perKm" yaml:"per_km"`
	DefaultDistanceKm float64 `json:"defaultDistanceKm" yaml:"default_distance_km"`
	MinDistanceKm     float64 `json:"minDistanceKm" yaml:"min_distance_km"`
	MaxDistanceKm     float64 `json:"maxDistanceKm" yaml:"max_distance_km"`
}

// FeeTable 是一次计算所依赖的全部价格配置。
// 计算期间视为不可变；热更新时整体替换指针，不原地修改。
type FeeTable struct {
	Version  string   `json:"version" yaml:"version"`
	Market   string   `json:"market" yaml:"market"`
	Standard TierFees `json:"standard" yaml:"standard"`
	Express  TierFees `json:"express" yaml:"express"`
	Rush     RushFees `json:"rush" yaml:"rush"`

	// 两端坐标都已知时，距离不超过该阈值即按省内计价，优先于省名比较
	InProvinceThresholdKm float64 `json:"inProvinceThresholdKm" yaml:"in_province_threshold_km"`
}

// DefaultFeeTable 返回越南市场的默认价格表。
func DefaultFeeTable() FeeTable {
	return FeeTable{
		Version: "default",
		Market:  "vn",
		Standard: TierFees{
			InProvince:    12000,
			OutOfProvince: 28000,
		},
		Express: TierFees{
			InProvince:    22000,
			OutOfProvince: 42000,
		},
		Rush: RushFees{
			BaseFee:           30000,
			IncludedKm:        3,
			PerKm:             7000,
			DefaultDistanceKm: 8,
			MinDistanceKm:     1,
			MaxDistanceKm:     150,
		},
		InProvinceThresholdKm: 30,
	}
}

// tier 返回 standard / express 对应的两档价格，未知方式按 standard。
func (t *FeeTable) tier(m Method) TierFees {
	if m == MethodExpress {
		return t.Express
	}
	return t.Standard
}
