package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"shipfee/internal/service/shipping/domain"
)

type quoteKeyInput struct {
	Table          domain.FeeTable     `json:"t"`
	Method         domain.Method       `json:"m"`
	Sellers        []domain.SellerShop `json:"s"`
	Destination    *domain.Destination `json:"d"`
	RushDistanceKm *float64            `json:"r"`
}

// QuoteKey 由价格表和归一化后的输入计算缓存键，价格表变化后旧键自然失效。
func QuoteKey(table domain.FeeTable, method domain.Method, sellers []domain.SellerShop, dest *domain.Destination, rushKm *float64) string {
	data, err := json.Marshal(quoteKeyInput{
		Table:          table,
		Method:         method,
		Sellers:        sellers,
		Destination:    dest,
		RushDistanceKm: rushKm,
	})
	if err != nil {
		// 只有 NaN/Inf 坐标会走到这里，这类输入不缓存
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
