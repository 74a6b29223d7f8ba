// internal/service/shipping/domain/method.go
package domain

import "strings"

// Method 是配送方式。
type Method string

const (
	MethodStandard Method = "standard"
	MethodExpress  Method = "express"
	MethodRush     Method = "rush"
)

// Valid 报告 m 是否是已知的配送方式。
func (m Method) Valid() bool {
	switch m {
	case MethodStandard, MethodExpress, MethodRush:
		return true
	}
	return false
}

// ParseMethod 把任意字符串归一化为已知的配送方式。
// 无法识别的值一律退回 standard，不拒绝请求，避免阻塞下单。
func ParseMethod(raw string) Method {
	m := Method(strings.ToLower(strings.TrimSpace(raw)))
	if m.Valid() {
		return m
	}
	return MethodStandard
}

// Scope 是一笔运费所落入的计费范围。
type Scope string

const (
	ScopeInProvince    Scope = "in_province"
	ScopeOutOfProvince Scope = "out_of_province"
	ScopeDistance      Scope = "distance"
)
