package sweep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []TokenKind {
	out := make([]TokenKind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenize_Kinds(t *testing.T) {
	t.Parallel()

	toks, err := Tokenize("lr/m=1:3,5 (a)|true")
	require.NoError(t, err)

	assert.Equal(t, []TokenKind{
		TokenWord, TokenSlash, TokenWord, TokenEquals,
		TokenNumber, TokenColon, TokenNumber, TokenComma, TokenNumber,
		TokenSpace,
		TokenLParen, TokenWord, TokenRParen,
		TokenPipe, TokenBool,
		TokenEOF,
	}, kinds(toks))
}

func TestTokenize_NumberClassification(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		text string
		kind TokenKind
	}{
		{"1", TokenNumber},
		{"-1", TokenNumber},
		{"+2.5", TokenNumber},
		{"1e-3", TokenNumber},
		{"1.5E6", TokenNumber},
		{"3tep", TokenWord},
		{"1k", TokenWord},
		{"inf", TokenWord},
		{"v1.2", TokenWord},
		{"true", TokenBool},
		{"false", TokenBool},
		{"--multirun", TokenWord},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.text, func(t *testing.T) {
			t.Parallel()
			toks, err := Tokenize(tc.text)
			require.NoError(t, err)
			require.Len(t, toks, 2)
			assert.Equal(t, tc.kind, toks[0].Kind)
			assert.Equal(t, tc.text, toks[0].Text)
		})
	}
}

func TestTokenize_QuotedWordsStayWords(t *testing.T) {
	t.Parallel()

	toks, err := Tokenize("'123' \"hello world\"")
	require.NoError(t, err)
	require.Len(t, toks, 4)

	assert.Equal(t, TokenWord, toks[0].Kind)
	assert.Equal(t, "123", toks[0].Text)
	assert.Equal(t, TokenWord, toks[2].Kind)
	assert.Equal(t, "hello world", toks[2].Text)
}

func TestTokenize_BracketedChunkKeptVerbatim(t *testing.T) {
	t.Parallel()

	toks, err := Tokenize("[1,[2,3]]")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, TokenWord, toks[0].Kind)
	assert.Equal(t, "[1,[2,3]]", toks[0].Text)
}

func TestTokenize_WhitespaceCollapses(t *testing.T) {
	t.Parallel()

	toks, err := Tokenize("a  \t b")
	require.NoError(t, err)
	assert.Equal(t, []TokenKind{TokenWord, TokenSpace, TokenWord, TokenEOF}, kinds(toks))
}

func TestTokenize_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
	}{
		{"unterminated quote", "msg='oops"},
		{"unterminated bracket", "data=[1,2"},
		{"stray closing bracket", "a=1]"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Tokenize(tc.src)
			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestTokenize_PositionsAreByteOffsets(t *testing.T) {
	t.Parallel()

	toks, err := Tokenize("ab=cd")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, 0, toks[0].Pos)
	assert.Equal(t, 2, toks[1].Pos)
	assert.Equal(t, 3, toks[2].Pos)
	assert.Equal(t, 5, toks[3].Pos)
}
