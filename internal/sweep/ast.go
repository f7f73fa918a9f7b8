package sweep

import "github.com/zclconf/go-cty/cty"

// ValueSpec is one node of a parsed value expression. The concrete types
// below form a closed set; Expand handles each of them exhaustively.
type ValueSpec interface {
	valueSpec()
}

// Literal holds a single scalar value (number, string, or bool).
type Literal struct {
	Val cty.Value
}

// List is the comma-separated form: its expansion is the in-order
// concatenation of each item's expansion.
type List struct {
	Items []ValueSpec
}

// Range is an inclusive numeric range. The textual forms are `start:stop`
// (step 1) and `start:step:stop`; an omitted start means 0. Decimals records
// the most precise decimal-place count seen in the source numbers and bounds
// the rounding of float expansion.
type Range struct {
	Start    float64
	Stop     float64
	Step     float64
	Decimals int
}

// ScaledList applies an engineering-notation exponent to every numeric
// value produced by Inner. Non-numeric values pass through untouched.
type ScaledList struct {
	Exponent int
	Inner    ValueSpec
}

// SpaceKind selects the spacing rule of a Space node.
type SpaceKind int

const (
	SpaceLog SpaceKind = iota
	SpaceLinear
)

// Space is a logspace/linspace function call: Count values from Start to
// Stop inclusive, spaced geometrically or arithmetically.
type Space struct {
	Kind  SpaceKind
	Start float64
	Stop  float64
	Count int
}

// Group is a parenthesized sub-expression. On its own it expands like a
// List; adjacent to other segments it participates in Concat.
type Group struct {
	Items []ValueSpec
}

// Concat is the combination operator: two or more adjacent segments (groups
// or literal text) whose expansions are concatenated pairwise as strings,
// enumerated in odometer order with the rightmost segment varying fastest.
type Concat struct {
	Parts []ValueSpec
}

func (Literal) valueSpec()    {}
func (List) valueSpec()       {}
func (Range) valueSpec()      {}
func (ScaledList) valueSpec() {}
func (Space) valueSpec()      {}
func (Group) valueSpec()      {}
func (Concat) valueSpec()     {}

// Param is one parameter declaration within an alternation member.
type Param struct {
	Name  string
	Value ValueSpec
	Pos   int
}

// Member is one alternation member: an ordered list of parameter
// declarations whose expansions are cross-multiplied.
type Member struct {
	Params []Param
}

// Expression is a fully parsed sweep expression. Members are the
// pipe-separated alternation: each is expanded independently and the
// results are concatenated in declaration order, never cross-multiplied.
type Expression struct {
	Members []Member
}

// Assignment pairs a parameter name with one resolved scalar value.
type Assignment struct {
	Name  string
	Value cty.Value
}

// CombinationSet is one fully resolved point of the distributive grid: the
// ordered assignments for a single generated invocation.
type CombinationSet []Assignment
