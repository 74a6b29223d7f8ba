package application

import "github.com/pkg/errors"

// 请求校验错误，HTTP 层映射为 400。
// 运费计算本身不会失败，这些错误只在对外接口上出现。
var (
	ErrEmptyCart           = errors.New("cart has no sellers")
	ErrMissingSellerID     = errors.New("seller id is required")
	ErrInvalidRushDistance = errors.New("rushDistanceKm must be a positive number")
)

// ErrInvalidFeeTable 表示价格表没有通过校验，加载时拒绝，继续使用旧表。
var ErrInvalidFeeTable = errors.New("invalid fee table")
