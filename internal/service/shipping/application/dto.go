package application

import (
	"math"
	"strings"

	"github.com/pkg/errors"

	"shipfee/internal/service/shipping/domain"
)

// CoordinateDTO 允许只传一半的坐标，缺任意一项都视为未知坐标。
type CoordinateDTO struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type ShopDTO struct {
	ShopID     string         `json:"shopId,omitempty"`
	Province   string         `json:"province,omitempty"`
	Coordinate *CoordinateDTO `json:"coordinate,omitempty"`
}

type DestinationDTO struct {
	Province   string         `json:"province,omitempty"`
	Coordinate *CoordinateDTO `json:"coordinate,omitempty"`
}

type SellerDTO struct {
	SellerID string   `json:"sellerId"`
	Shop     *ShopDTO `json:"shop,omitempty"`
}

type ItemDTO struct {
	SellerID string   `json:"sellerId"`
	SKU      string   `json:"sku,omitempty"`
	Quantity int      `json:"quantity,omitempty"`
	Shop     *ShopDTO `json:"shop,omitempty"`
}

// QuoteRequest 是结算页请求运费的输入。sellers 和 items 至少有一个非空，
// 同时提供时以 sellers 为准。
type QuoteRequest struct {
	Method         string          `json:"method"`
	RushDistanceKm *float64        `json:"rushDistanceKm,omitempty"`
	Destination    *DestinationDTO `json:"destination,omitempty"`
	Sellers        []SellerDTO     `json:"sellers,omitempty"`
	Items          []ItemDTO       `json:"items,omitempty"`
}

// QuoteResponse 是返回给结算页 / 订单服务的结果
type QuoteResponse struct {
	QuoteID      string                 `json:"quoteId"`
	TableVersion string                 `json:"tableVersion"`
	Summary      domain.ShippingSummary `json:"summary"`
}

// Validate 校验对外接口的输入约束。
func (r *QuoteRequest) Validate() error {
	if len(r.Sellers) == 0 && len(r.Items) == 0 {
		return ErrEmptyCart
	}
	for i, s := range r.Sellers {
		if strings.TrimSpace(s.SellerID) == "" {
			return errors.Wrapf(ErrMissingSellerID, "sellers[%d]", i)
		}
	}
	if len(r.Sellers) == 0 {
		for i, item := range r.Items {
			if strings.TrimSpace(item.SellerID) == "" {
				return errors.Wrapf(ErrMissingSellerID, "items[%d]", i)
			}
		}
	}
	if km := r.RushDistanceKm; km != nil && (math.IsNaN(*km) || math.IsInf(*km, 0) || *km <= 0) {
		return ErrInvalidRushDistance
	}
	return nil
}

// ToSellers 转换为领域层的卖家列表；只有 items 时按卖家合并。
func (r *QuoteRequest) ToSellers() []domain.SellerShop {
	if len(r.Sellers) > 0 {
		sellers := make([]domain.SellerShop, 0, len(r.Sellers))
		for _, s := range r.Sellers {
			sellers = append(sellers, domain.SellerShop{SellerID: s.SellerID, Shop: s.Shop.toDomain()})
		}
		return sellers
	}

	items := make([]domain.CartItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, domain.CartItem{
			SellerID: item.SellerID,
			SKU:      item.SKU,
			Quantity: item.Quantity,
			Shop:     item.Shop.toDomain(),
		})
	}
	return domain.GroupSellers(items)
}

// ToDestination 转换为领域层的收货地址
func (r *QuoteRequest) ToDestination() *domain.Destination {
	if r.Destination == nil {
		return nil
	}
	return &domain.Destination{
		Province:   r.Destination.Province,
		Coordinate: r.Destination.Coordinate.toDomain(),
	}
}

func (s *ShopDTO) toDomain() *domain.ShopLocation {
	if s == nil {
		return nil
	}
	return &domain.ShopLocation{
		ShopID:     s.ShopID,
		Province:   s.Province,
		Coordinate: s.Coordinate.toDomain(),
	}
}

func (c *CoordinateDTO) toDomain() *domain.Coordinate {
	if c == nil || c.Lat == nil || c.Lng == nil {
		return nil
	}
	return &domain.Coordinate{Lat: *c.Lat, Lng: *c.Lng}
}
