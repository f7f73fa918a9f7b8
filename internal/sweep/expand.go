package sweep

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Expand resolves a value node into its ordered list of scalar values.
func Expand(spec ValueSpec) ([]cty.Value, error) {
	switch s := spec.(type) {
	case Literal:
		return []cty.Value{s.Val}, nil
	case List:
		return expandAll(s.Items)
	case Group:
		return expandAll(s.Items)
	case Range:
		return expandRange(s)
	case ScaledList:
		inner, err := Expand(s.Inner)
		if err != nil {
			return nil, err
		}
		out := make([]cty.Value, len(inner))
		for i, v := range inner {
			out[i] = scalePow10(v, s.Exponent)
		}
		return out, nil
	case Space:
		return expandSpace(s)
	case Concat:
		return expandConcat(s)
	}
	return nil, fmt.Errorf("unhandled value node %T", spec)
}

func expandAll(items []ValueSpec) ([]cty.Value, error) {
	var out []cty.Value
	for _, item := range items {
		vs, err := Expand(item)
		if err != nil {
			return nil, err
		}
		out = append(out, vs...)
	}
	return out, nil
}

func expandRange(r Range) ([]cty.Value, error) {
	switch {
	case r.Step == 0:
		return nil, &RangeError{Reason: "step cannot be zero"}
	case r.Step > 0 && r.Start > r.Stop:
		return nil, &RangeError{Reason: "start cannot be greater than stop"}
	case r.Step < 0 && r.Start < r.Stop:
		return nil, &RangeError{Reason: "start cannot be less than stop"}
	}

	if r.Decimals == 0 && isIntegral(r.Start) && isIntegral(r.Step) && isIntegral(r.Stop) {
		n := int(math.Floor((r.Stop-r.Start)/r.Step)) + 1
		out := make([]cty.Value, 0, n)
		for i := 0; i < n; i++ {
			out = append(out, cty.NumberIntVal(int64(r.Start)+int64(i)*int64(r.Step)))
		}
		return out, nil
	}

	// Values come from start + i*step rather than accumulation, so float
	// drift never compounds; eps only guards the final inclusion test.
	eps := math.Abs(r.Step) * 1e-9
	var out []cty.Value
	for i := 0; ; i++ {
		v := r.Start + float64(i)*r.Step
		if r.Step > 0 && v > r.Stop+eps {
			break
		}
		if r.Step < 0 && v < r.Stop-eps {
			break
		}
		if math.Abs(v-r.Stop) <= eps {
			v = r.Stop
		} else if r.Decimals > 0 {
			v = roundTo(v, r.Decimals)
		}
		out = append(out, cty.NumberFloatVal(v))
	}
	return out, nil
}

func expandSpace(s Space) ([]cty.Value, error) {
	if s.Count < 1 {
		return nil, &RangeError{Reason: "count must be at least 1"}
	}
	if s.Kind == SpaceLog && (s.Start == 0 || s.Stop == 0 || (s.Start < 0) != (s.Stop < 0)) {
		return nil, &RangeError{Reason: "logspace bounds must be nonzero and share a sign"}
	}
	if s.Count == 1 {
		return []cty.Value{cty.NumberFloatVal(s.Start)}, nil
	}

	out := make([]cty.Value, s.Count)
	for i := 0; i < s.Count; i++ {
		t := float64(i) / float64(s.Count-1)
		var v float64
		if s.Kind == SpaceLog {
			v = s.Start * math.Pow(s.Stop/s.Start, t)
		} else {
			v = s.Start + (s.Stop-s.Start)*t
		}
		if i == s.Count-1 {
			v = s.Stop
		}
		out[i] = cty.NumberFloatVal(v)
	}
	return out, nil
}

// expandConcat enumerates the cross product of its parts in odometer order
// with the rightmost part varying fastest, joining each tuple into a string.
func expandConcat(c Concat) ([]cty.Value, error) {
	parts := make([][]cty.Value, len(c.Parts))
	total := 1
	for i, p := range c.Parts {
		vs, err := Expand(p)
		if err != nil {
			return nil, err
		}
		parts[i] = vs
		total *= len(vs)
	}
	if total == 0 {
		return nil, nil
	}

	out := make([]cty.Value, 0, total)
	idx := make([]int, len(parts))
	for n := 0; n < total; n++ {
		var b strings.Builder
		for i, vs := range parts {
			b.WriteString(FormatValue(vs[idx[i]]))
		}
		out = append(out, cty.StringVal(b.String()))
		for i := len(idx) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(parts[i]) {
				break
			}
			idx[i] = 0
		}
	}
	return out, nil
}

// scalePow10 multiplies a numeric value by 10^exp exactly, via an integer
// power of ten; dividing by the power for negative exponents keeps results
// like 5m = 0.005 free of binary rounding artifacts. Non-numbers pass
// through untouched.
func scalePow10(v cty.Value, exp int) cty.Value {
	if v.Type() != cty.Number {
		return v
	}
	e := exp
	if e < 0 {
		e = -e
	}
	pow := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(e)), nil)
	pf := new(big.Float).SetPrec(512).SetInt(pow)
	out := new(big.Float).SetPrec(512)
	if exp >= 0 {
		out.Mul(v.AsBigFloat(), pf)
	} else {
		out.Quo(v.AsBigFloat(), pf)
	}
	return cty.NumberVal(out)
}

func isIntegral(f float64) bool {
	return f == math.Trunc(f) && math.Abs(f) < math.MaxInt64
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func scalarFromToken(tok Token) cty.Value {
	switch tok.Kind {
	case TokenNumber:
		return numberVal(tok.Text)
	case TokenBool:
		return cty.BoolVal(tok.Text == "true")
	}
	return cty.StringVal(tok.Text)
}

func numberVal(text string) cty.Value {
	if !strings.ContainsAny(text, ".eE") {
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return cty.NumberIntVal(n)
		}
	}
	f, _ := strconv.ParseFloat(text, 64)
	return cty.NumberFloatVal(f)
}

func stringVal(s string) cty.Value {
	return cty.StringVal(s)
}
