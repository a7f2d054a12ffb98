package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyjs-go/tinyjs/pkg/token"
)

func TestScanCompositeOperators(t *testing.T) {
	tests := []struct {
		src string
		typ token.Type
		lit string
	}{
		{"===", token.STRICT_EQ, "==="},
		{"!==", token.STRICT_NOT_EQ, "!=="},
		{"==", token.EQ, "=="},
		{"=>", token.ARROW, "=>"},
		{"**=", token.STAR_STAR_ASSIGN, "**="},
		{"**", token.STAR_STAR, "**"},
		{"??=", token.QUESTION_QUESTION_ASSIGN, "??="},
		{"??", token.QUESTION_QUESTION, "??"},
		{"?.[", token.QUESTION_DOT_BRACK, "?.["},
		{"?.(", token.QUESTION_DOT_PAREN, "?.("},
		{"?.", token.QUESTION_DOT, "?."},
		{"...", token.ELLIPSIS, "..."},
		{">>>=", token.USHR_ASSIGN, ">>>="},
		{">>>", token.USHR, ">>>"},
		{">>=", token.SHR_ASSIGN, ">>="},
		{"<<=", token.SHL_ASSIGN, "<<="},
		{"&&=", token.LOGICAL_AND_ASSIGN, "&&="},
		{"||=", token.LOGICAL_OR_ASSIGN, "||="},
		{"++", token.INCR, "++"},
		{"--", token.DECR, "--"},
	}
	for _, tt := range tests {
		tok := New(tt.src).NextToken()
		assert.Equal(t, tt.typ, tok.Type, "scan(%q) type", tt.src)
		assert.Equal(t, tt.lit, tok.Literal, "scan(%q) literal", tt.src)
	}
}

func TestScanGreedilyPrefersLongestOperator(t *testing.T) {
	// '?.[' must not be split into '?.' followed by '['.
	l := New("?.[0]")
	tok := l.NextToken()
	require.Equal(t, token.QUESTION_DOT_BRACK, tok.Type)
	next := l.NextToken()
	assert.Equal(t, token.INT, next.Type, "got %v after ?.[, want INT", next.Type)
}

func TestIllegalCharacterTokenType(t *testing.T) {
	tok := New("@").NextToken()
	assert.Equal(t, token.ILLEGAL, tok.Type)
}
