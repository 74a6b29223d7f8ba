package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipfee/internal/service/shipping/domain"
)

func TestCELFeeTableValidator_DefaultTablePasses(t *testing.T) {
	v, err := NewCELFeeTableValidator()
	require.NoError(t, err)
	assert.NoError(t, v.Validate(domain.DefaultFeeTable()))
}

func TestCELFeeTableValidator_Violations(t *testing.T) {
	v, err := NewCELFeeTableValidator()
	require.NoError(t, err)

	table := domain.DefaultFeeTable()
	table.Express.InProvince = 50000
	table.Rush.MinDistanceKm = 200

	err = v.Validate(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "express_in_cheaper")
	assert.Contains(t, err.Error(), "rush_clamp_ordered")
	assert.Contains(t, err.Error(), "rush_default_in_clamp")
	assert.NotContains(t, err.Error(), "standard_in_cheaper")
}

func TestCELFeeTableValidator_ExtraRules(t *testing.T) {
	v, err := NewCELFeeTableValidator(Rule{Name: "rush_base_cap", Expr: "rush_base <= 50000"})
	require.NoError(t, err)

	table := domain.DefaultFeeTable()
	table.Rush.BaseFee = 60000
	err = v.Validate(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rush_base_cap")
}

func TestNewCELFeeTableValidator_BadRule(t *testing.T) {
	_, err := NewCELFeeTableValidator(Rule{Name: "syntax", Expr: "standard_in <"})
	assert.Error(t, err)

	_, err = NewCELFeeTableValidator(Rule{Name: "not_bool", Expr: "standard_in + 1"})
	assert.Error(t, err)

	_, err = NewCELFeeTableValidator(Rule{Name: "unknown_var", Expr: "foo > 1"})
	assert.Error(t, err)
}
