package sweep

import (
	"fmt"
	"strconv"
	"strings"
)

// scaleExponent maps SI suffix letters to base-10 exponents.
var scaleExponent = map[string]int{
	"f": -15,
	"p": -12,
	"n": -9,
	"u": -6,
	"m": -3,
	"k": 3,
	"M": 6,
	"G": 9,
	"T": 12,
}

// Parse parses a distributive sweep expression into its alternation
// members. Every space-separated chunk must be a `name=valuelist`
// assignment; a continuation member after a pipe may omit the name and
// inherits it (and any scale marker) from the most recent named assignment.
func Parse(src string) (*Expression, error) {
	return parse(src, false, true)
}

// parseCollective parses a collective expression: bare (non-assignment)
// tokens are preserved and alternation is rejected, because collective
// values collapse into a single token per parameter.
func parseCollective(src string) (*Expression, error) {
	return parse(src, true, false)
}

type parser struct {
	toks      []Token
	i         int
	allowBare bool
	allowAlt  bool

	// name and scale carried across pipe members for bare continuations.
	lastName     string
	lastScale    int
	lastHasScale bool
}

func parse(src string, allowBare, allowAlt bool) (*Expression, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, allowBare: allowBare, allowAlt: allowAlt}
	p.skipSpace()
	if p.peek().Kind == TokenEOF {
		return nil, &ParseError{Pos: 0, Reason: "empty expression"}
	}

	expr := &Expression{}
	for {
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		expr.Members = append(expr.Members, m)

		tok := p.peek()
		if tok.Kind == TokenEOF {
			return expr, nil
		}
		if tok.Kind == TokenPipe {
			if !p.allowAlt {
				return nil, &ParseError{Pos: tok.Pos, Reason: "alternation is not allowed in a collective expression"}
			}
			p.next()
			p.skipSpace()
			continue
		}
		return nil, &ParseError{Pos: tok.Pos, Reason: fmt.Sprintf("unexpected %q", tok.Text)}
	}
}

func (p *parser) parseMember() (Member, error) {
	var m Member
	for {
		p.skipSpace()
		tok := p.peek()
		if tok.Kind == TokenEOF || tok.Kind == TokenPipe {
			break
		}
		param, err := p.parseParam()
		if err != nil {
			return Member{}, err
		}
		m.Params = append(m.Params, param)
	}
	if len(m.Params) == 0 {
		return Member{}, &ParseError{Pos: p.peek().Pos, Reason: "empty alternation member"}
	}
	return m, nil
}

func (p *parser) parseParam() (Param, error) {
	start := p.peek().Pos
	name, scale, hasScale, named, err := p.parseName()
	if err != nil {
		return Param{}, err
	}

	val, err := p.parseValueList(-1)
	if err != nil {
		return Param{}, err
	}

	if named {
		p.lastName, p.lastScale, p.lastHasScale = name, scale, hasScale
		if hasScale {
			val = ScaledList{Exponent: scale, Inner: val}
		}
		return Param{Name: name, Value: val, Pos: start}, nil
	}

	if p.allowBare {
		return Param{Value: val, Pos: start}, nil
	}
	if p.lastName == "" {
		return Param{}, &ParseError{Pos: start, Reason: "missing parameter name"}
	}
	if p.lastHasScale {
		val = ScaledList{Exponent: p.lastScale, Inner: val}
	}
	return Param{Name: p.lastName, Value: val, Pos: start}, nil
}

// parseName consumes the `name=` or `name/x=` prefix of an assignment if
// one is present, reporting named=false for bare values.
func (p *parser) parseName() (name string, scale int, hasScale, named bool, err error) {
	tok := p.peek()
	if tok.Kind != TokenWord && tok.Kind != TokenNumber && tok.Kind != TokenBool {
		return "", 0, false, false, nil
	}
	switch {
	case p.at(p.i+1).Kind == TokenEquals:
		p.i += 2
		return tok.Text, 0, false, true, nil
	case p.at(p.i+1).Kind == TokenSlash && p.at(p.i+3).Kind == TokenEquals:
		suffix := p.at(p.i + 2)
		exp, ok := scaleExponent[suffix.Text]
		if !ok {
			return "", 0, false, false, &UnknownScaleError{Pos: suffix.Pos, Suffix: suffix.Text}
		}
		p.i += 4
		return tok.Text, exp, true, true, nil
	}
	return "", 0, false, false, nil
}

// parseValueList parses a comma-separated list of items. openPos is the
// byte offset of the enclosing group's '(' or -1 at top level; it selects
// the terminators and anchors the unterminated-group error.
func (p *parser) parseValueList(openPos int) (ValueSpec, error) {
	var items []ValueSpec
	for {
		item, err := p.parseItem(openPos)
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		tok := p.peek()
		if tok.Kind == TokenComma {
			p.next()
			continue
		}
		if p.isTerminator(tok, openPos) {
			break
		}
		if tok.Kind == TokenEOF {
			return nil, &ParseError{Pos: openPos, Reason: "unterminated group"}
		}
		return nil, &ParseError{Pos: tok.Pos, Reason: fmt.Sprintf("unexpected %q", tok.Text)}
	}
	if len(items) == 1 {
		return items[0], nil
	}
	return List{Items: items}, nil
}

func (p *parser) isTerminator(tok Token, openPos int) bool {
	switch tok.Kind {
	case TokenSpace, TokenPipe, TokenEOF:
		return openPos < 0
	case TokenRParen:
		return openPos >= 0
	}
	return false
}

// parseItem parses one comma-delimited item: a range, a spacing function,
// or a sequence of adjacent segments (groups and literal text) that
// concatenate.
func (p *parser) parseItem(openPos int) (ValueSpec, error) {
	tok := p.peek()
	if tok.Kind == TokenWord && (tok.Text == "logspace" || tok.Text == "linspace") && p.at(p.i+1).Kind == TokenLParen {
		return p.parseSpace()
	}

	var segments []ValueSpec
	var run []Token
	flush := func() {
		if len(run) > 0 {
			segments = append(segments, literalFromRun(run))
			run = nil
		}
	}
	for {
		tok = p.peek()
		switch tok.Kind {
		case TokenWord, TokenNumber, TokenBool, TokenSlash:
			run = append(run, tok)
			p.next()
		case TokenColon:
			if len(segments) > 0 || len(run) > 1 || (len(run) == 1 && run[0].Kind != TokenNumber) {
				return nil, &ParseError{Pos: tok.Pos, Reason: "unexpected ':'"}
			}
			var startTok *Token
			if len(run) == 1 {
				startTok = &run[0]
			}
			return p.parseRange(startTok)
		case TokenLParen:
			flush()
			g, err := p.parseGroup()
			if err != nil {
				return nil, err
			}
			segments = append(segments, g)
		default:
			flush()
			switch len(segments) {
			case 0:
				return nil, &ParseError{Pos: tok.Pos, Reason: "empty value"}
			case 1:
				return segments[0], nil
			default:
				return Concat{Parts: segments}, nil
			}
		}
	}
}

func (p *parser) parseGroup() (ValueSpec, error) {
	open := p.next()
	v, err := p.parseValueList(open.Pos)
	if err != nil {
		return nil, err
	}
	p.next() // ')'
	if l, ok := v.(List); ok {
		return Group{Items: l.Items}, nil
	}
	return Group{Items: []ValueSpec{v}}, nil
}

// parseRange parses the remainder of a range item; the cursor sits on the
// first ':' and startTok holds the optional leading number.
func (p *parser) parseRange(startTok *Token) (ValueSpec, error) {
	p.next() // ':'
	startText := ""
	start := 0.0
	if startTok != nil {
		startText = startTok.Text
		start, _ = strconv.ParseFloat(startTok.Text, 64)
	}

	first, err := p.expectNumber()
	if err != nil {
		return nil, err
	}

	var r Range
	texts := []string{startText, first.Text}
	if p.peek().Kind == TokenColon {
		p.next()
		second, err := p.expectNumber()
		if err != nil {
			return nil, err
		}
		texts = append(texts, second.Text)
		r = Range{Start: start, Step: floatText(first), Stop: floatText(second)}
	} else {
		r = Range{Start: start, Step: 1, Stop: floatText(first)}
	}
	for _, t := range texts {
		if d := decimalPlaces(t); d > r.Decimals {
			r.Decimals = d
		}
	}

	if p.peek().Kind == TokenSlash {
		slash := p.next()
		suffix := p.peek()
		if suffix.Kind != TokenWord && suffix.Kind != TokenNumber {
			return nil, &ParseError{Pos: slash.Pos, Reason: "expected scale suffix after '/'"}
		}
		exp, ok := scaleExponent[suffix.Text]
		if !ok {
			return nil, &UnknownScaleError{Pos: suffix.Pos, Suffix: suffix.Text}
		}
		p.next()
		return ScaledList{Exponent: exp, Inner: r}, nil
	}
	return r, nil
}

func (p *parser) parseSpace() (ValueSpec, error) {
	name := p.next()
	p.next() // '('

	start, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(TokenComma, ","); err != nil {
		return nil, err
	}
	stop, err := p.expectNumber()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(TokenComma, ","); err != nil {
		return nil, err
	}
	count := p.peek()
	if count.Kind != TokenNumber || strings.ContainsAny(count.Text, ".eE") {
		return nil, &ParseError{Pos: count.Pos, Reason: "count must be an integer"}
	}
	p.next()
	if err := p.expectPunct(TokenRParen, ")"); err != nil {
		return nil, err
	}

	kind := SpaceLinear
	if name.Text == "logspace" {
		kind = SpaceLog
	}
	n, _ := strconv.Atoi(count.Text)
	return Space{Kind: kind, Start: floatText(start), Stop: floatText(stop), Count: n}, nil
}

func (p *parser) expectNumber() (Token, error) {
	tok := p.peek()
	if tok.Kind != TokenNumber {
		if tok.Kind == TokenEOF {
			return Token{}, &ParseError{Pos: tok.Pos, Reason: "expected number"}
		}
		return Token{}, &ParseError{Pos: tok.Pos, Reason: fmt.Sprintf("expected number, found %q", tok.Text)}
	}
	p.next()
	return tok, nil
}

func (p *parser) expectPunct(kind TokenKind, text string) error {
	tok := p.peek()
	if tok.Kind != kind {
		return &ParseError{Pos: tok.Pos, Reason: fmt.Sprintf("expected %q", text)}
	}
	p.next()
	return nil
}

func (p *parser) peek() Token { return p.toks[p.i] }

func (p *parser) next() Token {
	tok := p.toks[p.i]
	if tok.Kind != TokenEOF {
		p.i++
	}
	return tok
}

func (p *parser) at(i int) Token {
	if i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[i]
}

func (p *parser) skipSpace() {
	for p.peek().Kind == TokenSpace {
		p.i++
	}
}

func literalFromRun(run []Token) ValueSpec {
	if len(run) == 1 {
		return Literal{Val: scalarFromToken(run[0])}
	}
	var b strings.Builder
	for _, tok := range run {
		b.WriteString(tok.Text)
	}
	return Literal{Val: stringVal(b.String())}
}

func floatText(tok Token) float64 {
	f, _ := strconv.ParseFloat(tok.Text, 64)
	return f
}

// decimalPlaces counts fraction digits, ignoring any exponent part.
func decimalPlaces(s string) int {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return 0
	}
	frac := s[dot+1:]
	if e := strings.IndexAny(frac, "eE"); e >= 0 {
		frac = frac[:e]
	}
	return len(frac)
}
