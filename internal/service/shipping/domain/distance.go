// internal/service/shipping/domain/distance.go
package domain

import "math"

// EarthRadiusKm 是哈弗辛公式使用的地球平均半径。
const EarthRadiusKm = 6371.0

// DistanceKm 计算两点之间的大圆距离（哈弗辛公式），单位公里。
func DistanceKm(a, b Coordinate) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)
	h := sinLat*sinLat + math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*sinLng*sinLng
	// 浮点误差可能让 h 略微越界
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceBetween 只有在两个坐标都完整时才返回距离。
// ok 为 false 时调用方必须把距离当作"未知"，不能当作 0。
func DistanceBetween(a, b *Coordinate) (km float64, ok bool) {
	if !a.Valid() || !b.Valid() {
		return 0, false
	}
	return DistanceKm(*a, *b), true
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
