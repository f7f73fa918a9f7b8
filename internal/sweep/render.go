package sweep

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// FormatValue renders a scalar in its canonical textual form: integers
// without a fraction part, floats in shortest round-trip notation with a
// compact exponent, bools and strings verbatim.
func FormatValue(v cty.Value) string {
	switch v.Type() {
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if i, acc := bf.Int64(); acc == big.Exact {
				return strconv.FormatInt(i, 10)
			}
		}
		f, _ := bf.Float64()
		return formatFloat(f)
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	}
	return v.AsString()
}

// FormatArg renders one assignment as a command-line token, quoting the
// value when it would otherwise split or re-parse.
func FormatArg(a Assignment) string {
	text := quoteIfNeeded(FormatValue(a.Value))
	if a.Name == "" {
		return text
	}
	return a.Name + "=" + text
}

// Strings renders every assignment of the set as a command-line token.
func (cs CombinationSet) Strings() []string {
	out := make([]string, len(cs))
	for i, a := range cs {
		out[i] = FormatArg(a)
	}
	return out
}

func (cs CombinationSet) String() string {
	return strings.Join(cs.Strings(), " ")
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	e := strings.IndexByte(s, 'e')
	if e < 0 {
		return s
	}
	mantissa, exp := s[:e], s[e+1:]
	neg := ""
	if exp[0] == '+' || exp[0] == '-' {
		if exp[0] == '-' {
			neg = "-"
		}
		exp = exp[1:]
	}
	exp = strings.TrimLeft(exp, "0")
	if exp == "" {
		return mantissa
	}
	return mantissa + "e" + neg + exp
}

// quoteIfNeeded wraps text in single quotes when it contains bytes that
// would split or re-tokenize on a command line. Bracketed lists stay bare
// since their brackets already delimit them.
func quoteIfNeeded(text string) string {
	if strings.HasPrefix(text, "[") && strings.HasSuffix(text, "]") {
		return text
	}
	if !strings.ContainsAny(text, " \t,|='\"") {
		return text
	}
	if strings.ContainsRune(text, '\'') {
		return `"` + text + `"`
	}
	return "'" + text + "'"
}
