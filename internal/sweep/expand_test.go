package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func expandStrings(t *testing.T, spec ValueSpec) []string {
	t.Helper()
	vs, err := Expand(spec)
	require.NoError(t, err)
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = FormatValue(v)
	}
	return out
}

func TestExpand_LiteralRoundTrip(t *testing.T) {
	t.Parallel()

	for _, val := range []cty.Value{
		cty.NumberIntVal(42),
		cty.NumberFloatVal(2.5),
		cty.BoolVal(true),
		cty.StringVal("cnn"),
	} {
		vs, err := Expand(Literal{Val: val})
		require.NoError(t, err)
		require.Len(t, vs, 1)
		assert.True(t, val.RawEquals(vs[0]))
	}
}

func TestExpand_RangeInclusivity(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		r    Range
		want []string
	}{
		{"ascending unit step", Range{Start: 1, Stop: 5, Step: 1}, []string{"1", "2", "3", "4", "5"}},
		{"descending", Range{Start: 5, Stop: 1, Step: -1}, []string{"5", "4", "3", "2", "1"}},
		{"zero start", Range{Start: 0, Stop: 3, Step: 1}, []string{"0", "1", "2", "3"}},
		{"single point", Range{Start: 2, Stop: 2, Step: 1}, []string{"2"}},
		{"fractional step", Range{Start: 0, Stop: 0.3, Step: 0.1, Decimals: 1}, []string{"0", "0.1", "0.2", "0.3"}},
		{"stop off the step grid", Range{Start: 1, Stop: 2.2, Step: 0.4, Decimals: 1}, []string{"1", "1.4", "1.8", "2.2"}},
		{"stop between grid points", Range{Start: 1, Stop: 2, Step: 0.4, Decimals: 1}, []string{"1", "1.4", "1.8"}},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, expandStrings(t, tc.r))
		})
	}
}

func TestExpand_RangeErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		r      Range
		reason string
	}{
		{"zero step", Range{Start: 1, Stop: 5}, "step cannot be zero"},
		{"inverted ascending", Range{Start: 5, Stop: 1, Step: 1}, "start cannot be greater than stop"},
		{"inverted descending", Range{Start: 1, Stop: 5, Step: -1}, "start cannot be less than stop"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Expand(tc.r)
			var rangeErr *RangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tc.reason, rangeErr.Reason)
		})
	}
}

func TestExpand_ScaledList(t *testing.T) {
	t.Parallel()

	scaled := ScaledList{
		Exponent: -3,
		Inner: List{Items: []ValueSpec{
			Literal{Val: cty.NumberIntVal(1)},
			Literal{Val: cty.NumberIntVal(5)},
		}},
	}
	assert.Equal(t, []string{"0.001", "0.005"}, expandStrings(t, scaled))
}

func TestExpand_ScaledListLeavesStringsUntouched(t *testing.T) {
	t.Parallel()

	scaled := ScaledList{
		Exponent: 3,
		Inner: List{Items: []ValueSpec{
			Literal{Val: cty.NumberIntVal(2)},
			Literal{Val: cty.StringVal("auto")},
		}},
	}
	assert.Equal(t, []string{"2000", "auto"}, expandStrings(t, scaled))
}

func TestExpand_ScaledRangeIsExact(t *testing.T) {
	t.Parallel()

	scaled := ScaledList{Exponent: -3, Inner: Range{Start: 1, Stop: 5, Step: 1}}
	assert.Equal(t, []string{"0.001", "0.002", "0.003", "0.004", "0.005"}, expandStrings(t, scaled))
}

func TestExpand_Spaces(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		s    Space
		want []string
	}{
		{"logspace", Space{Kind: SpaceLog, Start: 1, Stop: 100, Count: 3}, []string{"1", "10", "100"}},
		{"linspace", Space{Kind: SpaceLinear, Start: 0, Stop: 1, Count: 5}, []string{"0", "0.25", "0.5", "0.75", "1"}},
		{"single count yields start", Space{Kind: SpaceLog, Start: 7, Stop: 100, Count: 1}, []string{"7"}},
		{"negative logspace", Space{Kind: SpaceLog, Start: -1, Stop: -100, Count: 3}, []string{"-1", "-10", "-100"}},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, expandStrings(t, tc.s))
		})
	}
}

func TestExpand_SpaceErrors(t *testing.T) {
	t.Parallel()

	var rangeErr *RangeError

	_, err := Expand(Space{Kind: SpaceLinear, Start: 0, Stop: 1, Count: 0})
	require.ErrorAs(t, err, &rangeErr)

	_, err = Expand(Space{Kind: SpaceLog, Start: 0, Stop: 10, Count: 3})
	require.ErrorAs(t, err, &rangeErr)

	_, err = Expand(Space{Kind: SpaceLog, Start: -1, Stop: 10, Count: 3})
	require.ErrorAs(t, err, &rangeErr)
}

func TestExpand_ConcatOdometerOrder(t *testing.T) {
	t.Parallel()

	concat := Concat{Parts: []ValueSpec{
		Group{Items: []ValueSpec{
			Literal{Val: cty.StringVal("cnn")},
			Literal{Val: cty.StringVal("transformer")},
		}},
		Literal{Val: cty.StringVal("_")},
		Group{Items: []ValueSpec{
			Literal{Val: cty.StringVal("small")},
			Literal{Val: cty.StringVal("large")},
		}},
	}}
	assert.Equal(t, []string{
		"cnn_small", "cnn_large", "transformer_small", "transformer_large",
	}, expandStrings(t, concat))
}

func TestExpand_ConcatWithRangeInGroup(t *testing.T) {
	t.Parallel()

	concat := Concat{Parts: []ValueSpec{
		Literal{Val: cty.StringVal("v")},
		Group{Items: []ValueSpec{Range{Start: 1, Stop: 3, Step: 1}}},
	}}
	assert.Equal(t, []string{"v1", "v2", "v3"}, expandStrings(t, concat))
}

func TestExpand_ListConcatenatesInOrder(t *testing.T) {
	t.Parallel()

	list := List{Items: []ValueSpec{
		Range{Start: 1, Stop: 2, Step: 1},
		Literal{Val: cty.StringVal("end")},
	}}
	assert.Equal(t, []string{"1", "2", "end"}, expandStrings(t, list))
}
