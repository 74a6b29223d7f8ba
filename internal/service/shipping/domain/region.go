// internal/service/shipping/domain/region.go
package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// RegionNormalizer 把行政区划名称规范化，用于在缺少坐标时比较"是否同省"。
// 不同地区可以提供自己的实现，计费逻辑不需要改动。
type RegionNormalizer interface {
	Normalize(name string) string
	SameRegion(a, b string) bool
}

// VietnameseNormalizer 处理越南省/市名称：去掉声调、đ→d、小写、去掉"tỉnh / thành phố / TP."等前缀。
type VietnameseNormalizer struct{}

// NewVietnameseNormalizer 返回默认的越南省名规范化器。
func NewVietnameseNormalizer() *VietnameseNormalizer {
	return &VietnameseNormalizer{}
}

var (
	dStroke = strings.NewReplacer("đ", "d", "Đ", "D")

	// 名称开头的行政级别词，按 token 序列匹配
	leadingFillers = [][]string{
		{"thanh", "pho"},
		{"tinh"},
		{"tp"},
		{"province", "of"},
		{"city", "of"},
	}
	// 名称结尾的行政级别词
	trailingFillers = [][]string{
		{"province"},
		{"city"},
	}
)

// Normalize 返回 name 的规范形式，例如 "TP. Hồ Chí Minh" → "ho chi minh"。
func (n *VietnameseNormalizer) Normalize(name string) string {
	if strings.TrimSpace(name) == "" {
		return ""
	}

	// transform.Chain 带状态，不能在 goroutine 间共享，每次调用新建
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, name)
	if err != nil {
		stripped = name
	}
	stripped = dStroke.Replace(stripped)
	stripped = strings.ToLower(stripped)
	stripped = strings.Map(func(r rune) rune {
		if r == '.' || r == ',' || unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, stripped)

	tokens := strings.Fields(stripped)
	tokens = trimLeading(tokens, leadingFillers)
	tokens = trimTrailing(tokens, trailingFillers)
	return strings.Join(tokens, " ")
}

// SameRegion 判断两个名称是否指向同一个省。
//
// 任意一侧为空（未知）时返回 false：未知按"外省"处理，偏向更高的外省运费。
// 这是尚待产品确认的计费策略，不是遗漏。
func (n *VietnameseNormalizer) SameRegion(a, b string) bool {
	na, nb := n.Normalize(a), n.Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb
}

func trimLeading(tokens []string, fillers [][]string) []string {
	for {
		trimmed := false
		for _, f := range fillers {
			if hasPrefix(tokens, f) {
				tokens = tokens[len(f):]
				trimmed = true
			}
		}
		if !trimmed {
			return tokens
		}
	}
}

func trimTrailing(tokens []string, fillers [][]string) []string {
	for _, f := range fillers {
		if len(tokens) >= len(f) && hasPrefix(tokens[len(tokens)-len(f):], f) {
			tokens = tokens[:len(tokens)-len(f)]
		}
	}
	return tokens
}

func hasPrefix(tokens, prefix []string) bool {
	if len(tokens) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if tokens[i] != p {
			return false
		}
	}
	return true
}
