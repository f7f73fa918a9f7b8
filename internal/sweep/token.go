package sweep

import (
	"fmt"
	"strconv"
	"strings"
)

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	// TokenWord is a bareword: an identifier (possibly dotted), a quoted
	// string (quotes stripped), or a bracketed list kept verbatim.
	TokenWord TokenKind = iota
	// TokenNumber is a signed decimal or scientific-notation numeric literal.
	TokenNumber
	// TokenBool is the literal `true` or `false`.
	TokenBool
	TokenEquals
	TokenColon
	TokenComma
	TokenLParen
	TokenRParen
	TokenPipe
	TokenSlash
	// TokenSpace is a run of whitespace, collapsed into a single token.
	TokenSpace
	// TokenEOF marks the end of the token stream.
	TokenEOF
)

// Token is one lexical unit of a sweep expression.
type Token struct {
	Kind TokenKind
	Text string
	Pos  int // byte offset in the source expression
}

var punctKinds = map[byte]TokenKind{
	'=': TokenEquals,
	':': TokenColon,
	',': TokenComma,
	'(': TokenLParen,
	')': TokenRParen,
	'|': TokenPipe,
	'/': TokenSlash,
}

// Tokenize splits a raw sweep expression into tokens. It fails with a
// ParseError on an unrecognized character, an unterminated quote, or an
// unterminated bracket.
func Tokenize(src string) ([]Token, error) {
	var toks []Token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			start := i
			for i < len(src) && isSpaceByte(src[i]) {
				i++
			}
			toks = append(toks, Token{Kind: TokenSpace, Text: " ", Pos: start})
		case punctKinds[c] != 0:
			toks = append(toks, Token{Kind: punctKinds[c], Text: string(c), Pos: i})
			i++
		case c == ']':
			return nil, &ParseError{Pos: i, Reason: "unexpected ']'"}
		case c < 0x20:
			return nil, &ParseError{Pos: i, Reason: fmt.Sprintf("unrecognized character %q", c)}
		default:
			tok, next, err := scanWord(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		}
	}
	toks = append(toks, Token{Kind: TokenEOF, Pos: len(src)})
	return toks, nil
}

// scanWord consumes one word starting at i. A word is a run of plain word
// bytes, quoted chunks (quotes stripped), and bracketed chunks (brackets
// kept), all concatenated.
func scanWord(src string, i int) (Token, int, error) {
	var b strings.Builder
	start := i
	quoted := false
	for i < len(src) {
		c := src[i]
		switch {
		case c == '\'' || c == '"':
			end := strings.IndexByte(src[i+1:], c)
			if end < 0 {
				return Token{}, 0, &ParseError{Pos: i, Reason: "unterminated quote"}
			}
			b.WriteString(src[i+1 : i+1+end])
			i += end + 2
			quoted = true
		case c == '[':
			chunk, next, err := scanBracketed(src, i)
			if err != nil {
				return Token{}, 0, err
			}
			b.WriteString(chunk)
			i = next
		case isWordByte(c):
			b.WriteByte(c)
			i++
		default:
			return classifyWord(b.String(), start, quoted), i, nil
		}
	}
	return classifyWord(b.String(), start, quoted), i, nil
}

// scanBracketed consumes a balanced [...] chunk verbatim, brackets included.
func scanBracketed(src string, i int) (string, int, error) {
	start := i
	depth := 0
	for i < len(src) {
		switch src[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return src[start : i+1], i + 1, nil
			}
		}
		i++
	}
	return "", 0, &ParseError{Pos: start, Reason: "unterminated bracket"}
}

func classifyWord(text string, pos int, quoted bool) Token {
	if !quoted {
		switch {
		case text == "true" || text == "false":
			return Token{Kind: TokenBool, Text: text, Pos: pos}
		case isNumeric(text):
			return Token{Kind: TokenNumber, Text: text, Pos: pos}
		}
	}
	return Token{Kind: TokenWord, Text: text, Pos: pos}
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// isWordByte reports whether c may appear in a plain (unquoted, unbracketed)
// word. Everything that is not an operator, quote, bracket, or whitespace
// qualifies, so dotted names, dashes, and tildes all pass through.
func isWordByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '=', ':', ',', '(', ')', '|', '/', '\'', '"', '[', ']':
		return false
	}
	return c >= 0x20
}

// isNumeric reports whether text is a decimal or scientific-notation number.
// Only the plain numeric alphabet is accepted, so words like `inf` or `1k`
// stay barewords.
func isNumeric(text string) bool {
	if text == "" {
		return false
	}
	for i := 0; i < len(text); i++ {
		switch c := text[i]; {
		case c >= '0' && c <= '9':
		case c == '.' || c == '+' || c == '-' || c == 'e' || c == 'E':
		default:
			return false
		}
	}
	_, err := strconv.ParseFloat(text, 64)
	return err == nil
}
