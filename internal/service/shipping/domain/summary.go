// internal/service/shipping/domain/summary.go
package domain

// SellerShop 是购物车里的一个卖家及其店铺位置。
type SellerShop struct {
	SellerID string        `json:"sellerId"`
	Shop     *ShopLocation `json:"shop,omitempty"`
}

// CartItem 是一行商品，多行可以属于同一个卖家。
type CartItem struct {
	SellerID string        `json:"sellerId"`
	SKU      string        `json:"sku,omitempty"`
	Quantity int           `json:"quantity,omitempty"`
	Shop     *ShopLocation `json:"shop,omitempty"`
}

// ShippingSummary 是整单的运费汇总。TotalShippingFee 恒等于各明细 Fee 之和。
type ShippingSummary struct {
	Method           Method              `json:"method"`
	TotalShippingFee int64               `json:"totalShippingFee"`
	Breakdown        []FeeBreakdownEntry `json:"breakdown"`
}

// GroupSellers 把按行的商品合并为每个卖家一条，保持首次出现的顺序，
// 店铺位置取该卖家第一条非空的记录。
func GroupSellers(items []CartItem) []SellerShop {
	index := make(map[string]int, len(items))
	sellers := make([]SellerShop, 0, len(items))
	for _, item := range items {
		if i, ok := index[item.SellerID]; ok {
			if sellers[i].Shop == nil {
				sellers[i].Shop = item.Shop
			}
			continue
		}
		index[item.SellerID] = len(sellers)
		sellers = append(sellers, SellerShop{SellerID: item.SellerID, Shop: item.Shop})
	}
	return sellers
}

// Summarize 对每个卖家调用 Resolve 并汇总总运费。
// 明细顺序与 sellers 一致，不做排序；method 无法识别时按 standard 处理。
func (r *Resolver) Summarize(sellers []SellerShop, dest *Destination, method string, rushDistanceKm *float64) ShippingSummary {
	m := ParseMethod(method)
	summary := ShippingSummary{
		Method:    m,
		Breakdown: make([]FeeBreakdownEntry, 0, len(sellers)),
	}

	for _, s := range sellers {
		entry := r.Resolve(m, s.Shop, dest, rushDistanceKm)
		entry.SellerID = s.SellerID
		summary.TotalShippingFee += entry.Fee
		summary.Breakdown = append(summary.Breakdown, entry)
	}
	return summary
}
