// internal/service/shipping/infrastructure/rule/cel_validator.go
package rule

import (
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/pkg/errors"

	"shipfee/internal/service/shipping/domain"
)

// Rule 是一条针对价格表的 CEL 布尔表达式，结果为 false 即违规
type Rule struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// DefaultRules 是价格表必须满足的基本约束
var DefaultRules = []Rule{
	{Name: "fees_non_negative", Expr: "standard_in >= 0 && standard_out >= 0 && express_in >= 0 && express_out >= 0 && rush_base >= 0 && rush_per_km >= 0"},
	{Name: "standard_in_cheaper", Expr: "standard_in < standard_out"},
	{Name: "express_in_cheaper", Expr: "express_in < express_out"},
	{Name: "rush_clamp_ordered", Expr: "rush_min_km > 0.0 && rush_min_km <= rush_max_km"},
	{Name: "rush_default_in_clamp", Expr: "rush_default_km >= rush_min_km && rush_default_km <= rush_max_km"},
	{Name: "rush_included_non_negative", Expr: "rush_included_km >= 0.0"},
	{Name: "threshold_non_negative", Expr: "threshold_km >= 0.0"},
}

type compiledRule struct {
	Rule
	program cel.Program
}

// CELFeeTableValidator 用 CEL 表达式校验价格表，实现 application.FeeTableValidator
type CELFeeTableValidator struct {
	rules []compiledRule
}

// NewCELFeeTableValidator 编译 DefaultRules 和 extra，任何一条编译失败都返回错误
func NewCELFeeTableValidator(extra ...Rule) (*CELFeeTableValidator, error) {
	env, err := cel.NewEnv(
		cel.Variable("standard_in", cel.IntType),
		cel.Variable("standard_out", cel.IntType),
		cel.Variable("express_in", cel.IntType),
		cel.Variable("express_out", cel.IntType),
		cel.Variable("rush_base", cel.IntType),
		cel.Variable("rush_per_km", cel.IntType),
		cel.Variable("rush_included_km", cel.DoubleType),
		cel.Variable("rush_default_km", cel.DoubleType),
		cel.Variable("rush_min_km", cel.DoubleType),
		cel.Variable("rush_max_km", cel.DoubleType),
		cel.Variable("threshold_km", cel.DoubleType),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create cel env")
	}

	all := append(append([]Rule{}, DefaultRules...), extra...)
	v := &CELFeeTableValidator{rules: make([]compiledRule, 0, len(all))}
	for _, r := range all {
		ast, iss := env.Compile(r.Expr)
		if iss != nil && iss.Err() != nil {
			return nil, errors.Wrapf(iss.Err(), "compile rule %s", r.Name)
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, errors.Errorf("rule %s must return bool, got %v", r.Name, ast.OutputType())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, errors.Wrapf(err, "build rule %s", r.Name)
		}
		v.rules = append(v.rules, compiledRule{Rule: r, program: prg})
	}
	return v, nil
}

// Validate 返回所有违规规则的名字，全部满足时返回 nil
func (v *CELFeeTableValidator) Validate(table domain.FeeTable) error {
	vars := map[string]interface{}{
		"standard_in":      table.Standard.InProvince,
		"standard_out":     table.Standard.OutOfProvince,
		"express_in":       table.Express.InProvince,
		"express_out":      table.Express.OutOfProvince,
		"rush_base":        table.Rush.BaseFee,
		"rush_per_km":      table.Rush.PerKm,
		"rush_included_km": table.Rush.IncludedKm,
		"rush_default_km":  table.Rush.DefaultDistanceKm,
		"rush_min_km":      table.Rush.MinDistanceKm,
		"rush_max_km":      table.Rush.MaxDistanceKm,
		"threshold_km":     table.InProvinceThresholdKm,
	}

	var violated []string
	for _, r := range v.rules {
		out, _, err := r.program.Eval(vars)
		if err != nil {
			return errors.Wrapf(err, "evaluate rule %s", r.Name)
		}
		ok, isBool := out.Value().(bool)
		if !isBool || !ok {
			violated = append(violated, r.Name)
		}
	}
	if len(violated) > 0 {
		return fmt.Errorf("fee table violates rules: %s", strings.Join(violated, ", "))
	}
	return nil
}
