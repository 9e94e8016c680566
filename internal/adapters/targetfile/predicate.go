package targetfile

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/zerr"
)

// configVariable is the name the build configuration is exposed under in conditions.
const configVariable = "config"

var _ domain.Predicate = (*predicate)(nil)

// predicate evaluates an HCL expression against a build configuration.
type predicate struct {
	expr hcl.Expression
	src  string
}

func newPredicate(expr hcl.Expression, file []byte) *predicate {
	src := strings.TrimSpace(string(expr.Range().SliceBytes(file)))
	return &predicate{expr: expr, src: src}
}

// Evaluate reports whether the expression is true for cfg.
func (p *predicate) Evaluate(cfg *domain.BuildConfiguration) (bool, error) {
	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{configVariable: configObject(cfg)},
	}

	val, diags := p.expr.Value(ctx)
	if diags.HasErrors() {
		return false, zerr.With(zerr.Wrap(diags, domain.ErrConditionEvaluation.Error()), "when", p.src)
	}

	val, err := convert.Convert(val, cty.Bool)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrConditionEvaluation.Error()), "when", p.src)
	}
	if val.IsNull() || !val.IsKnown() {
		return false, zerr.With(domain.ErrConditionEvaluation, "when", p.src)
	}

	return val.True(), nil
}

func (p *predicate) String() string {
	return p.src
}

// configObject converts the configuration into the object conditions refer to.
func configObject(cfg *domain.BuildConfiguration) cty.Value {
	if cfg == nil {
		return cty.EmptyObjectVal
	}
	values := cfg.Values()
	if len(values) == 0 {
		return cty.EmptyObjectVal
	}

	attrs := make(map[string]cty.Value, len(values))
	for k, v := range values {
		switch val := v.(type) {
		case bool:
			attrs[k] = cty.BoolVal(val)
		case string:
			attrs[k] = cty.StringVal(val)
		case int:
			attrs[k] = cty.NumberIntVal(int64(val))
		case float64:
			attrs[k] = cty.NumberFloatVal(val)
		default:
			attrs[k] = cty.StringVal(fmt.Sprint(val))
		}
	}
	return cty.ObjectVal(attrs)
}
