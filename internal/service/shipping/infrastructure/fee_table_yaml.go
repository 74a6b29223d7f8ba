package infrastructure

import (
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"shipfee/internal/service/shipping/domain"
)

// ParseFeeTable 解析 YAML 格式的价格表，未出现的字段沿用 base。
func ParseFeeTable(data []byte, base domain.FeeTable) (domain.FeeTable, error) {
	table := base
	if err := yaml.Unmarshal(data, &table); err != nil {
		return base, errors.Wrap(err, "parse fee table yaml")
	}
	return table, nil
}
