// internal/service/shipping/domain/location.go
package domain

import "math"

// Coordinate 是 WGS-84 经纬度（单位：度）。
// 未知坐标用 nil 指针表示，而不是零值。
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Valid 报告坐标是否可以参与距离计算。
func (c *Coordinate) Valid() bool {
	if c == nil {
		return false
	}
	return isFinite(c.Lat) && isFinite(c.Lng)
}

// ShopLocation 是卖家店铺的位置快照，由商品/卖家服务提供，这里只读。
type ShopLocation struct {
	ShopID     string      `json:"shopId,omitempty"`
	Province   string      `json:"province,omitempty"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

// Destination 是买家收货地址的快照，由地址服务提供，这里只读。
type Destination struct {
	Province   string      `json:"province,omitempty"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

func (s *ShopLocation) coordinate() *Coordinate {
	if s == nil {
		return nil
	}
	return s.Coordinate
}

func (s *ShopLocation) province() string {
	if s == nil {
		return ""
	}
	return s.Province
}

func (s *ShopLocation) shopID() string {
	if s == nil {
		return ""
	}
	return s.ShopID
}

func (d *Destination) coordinate() *Coordinate {
	if d == nil {
		return nil
	}
	return d.Coordinate
}

func (d *Destination) province() string {
	if d == nil {
		return ""
	}
	return d.Province
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
