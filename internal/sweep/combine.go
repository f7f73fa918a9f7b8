package sweep

import (
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// ExpandExpression parses a distributive expression and expands it into its
// ordered combination sets.
func ExpandExpression(src string) ([]CombinationSet, error) {
	expr, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return Combine(expr)
}

// Combine expands each alternation member independently and concatenates
// the resulting grids in declaration order. Within a member the parameters
// form a cartesian grid with the last-declared axis varying fastest.
func Combine(expr *Expression) ([]CombinationSet, error) {
	var out []CombinationSet
	for _, m := range expr.Members {
		sets, err := combineMember(m)
		if err != nil {
			return nil, err
		}
		out = append(out, sets...)
	}
	return out, nil
}

func combineMember(m Member) ([]CombinationSet, error) {
	axes := make([][]cty.Value, len(m.Params))
	total := 1
	for i, p := range m.Params {
		vs, err := Expand(p.Value)
		if err != nil {
			return nil, err
		}
		axes[i] = vs
		total *= len(vs)
	}

	sets := make([]CombinationSet, 0, total)
	idx := make([]int, len(axes))
	for n := 0; n < total; n++ {
		cs := make(CombinationSet, len(axes))
		for i := range axes {
			cs[i] = Assignment{Name: m.Params[i].Name, Value: axes[i][idx[i]]}
		}
		sets = append(sets, cs)
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(axes[i]) {
				break
			}
			idx[i] = 0
		}
	}
	return sets, nil
}

// CollectParts expands a collective expression into one token per
// parameter: each parameter keeps its declaration slot and its expanded
// values join with commas, so `x=1:3 y=5` collapses to `x=1,2,3` and
// `y=5`. Bare tokens keep their slot without a name prefix.
func CollectParts(src string) ([]string, error) {
	expr, err := parseCollective(src)
	if err != nil {
		return nil, err
	}
	var parts []string
	for _, p := range expr.Members[0].Params {
		vs, err := Expand(p.Value)
		if err != nil {
			return nil, err
		}
		rendered := make([]string, len(vs))
		for i, v := range vs {
			rendered[i] = quoteIfNeeded(FormatValue(v))
		}
		joined := strings.Join(rendered, ",")
		if p.Name != "" {
			joined = p.Name + "=" + joined
		}
		parts = append(parts, joined)
	}
	return parts, nil
}

// Collect is CollectParts with the tokens space-joined into the single
// literal string a collective parameter contributes to an invocation.
func Collect(src string) (string, error) {
	parts, err := CollectParts(src)
	if err != nil {
		return "", err
	}
	return strings.Join(parts, " "), nil
}
