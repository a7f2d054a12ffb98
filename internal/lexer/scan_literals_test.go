package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyjs-go/tinyjs/pkg/token"
)

func scanOne(t *testing.T, src string) token.Token {
	t.Helper()
	return New(src).NextToken()
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		src     string
		typ     token.Type
		literal string
	}{
		{"42", token.INT, "42"},
		{"0x1F", token.INT, "0x1F"},
		{"0o17", token.INT, "0o17"},
		{"3.14", token.FLOAT, "3.14"},
		{"1e10", token.FLOAT, "1e10"},
		{"1.5e-3", token.FLOAT, "1.5e-3"},
	}
	for _, tt := range tests {
		tok := scanOne(t, tt.src)
		assert.Equal(t, tt.typ, tok.Type, "scan(%q) type", tt.src)
		assert.Equal(t, tt.literal, tok.Literal, "scan(%q) literal", tt.src)
	}
}

func TestScanNumberErrors(t *testing.T) {
	tests := []string{"0x", "0o", "0o9", "1e"}
	for _, src := range tests {
		l := New(src)
		l.NextToken()
		assert.NotEmpty(t, l.Errors(), "scan(%q) produced no error, want one", src)
	}
}

func TestScanStringEscapes(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`"hi"`, "hi"},
		{`'hi'`, "hi"},
		{`"a\nb"`, "a\nb"},
		{`"a\tb"`, "a\tb"},
		{`"\x41"`, "A"},
		{"\"line\\\ncontinued\"", "linecontinued"},
	}
	for _, tt := range tests {
		tok := scanOne(t, tt.src)
		assert.Equal(t, token.STRING, tok.Type, "scan(%q) type", tt.src)
		assert.Equal(t, tt.want, tok.Literal, "scan(%q) literal", tt.src)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	l := New(`"unterminated`)
	l.NextToken()
	assert.NotEmpty(t, l.Errors(), "expected an error for an unterminated string literal")
}

func TestScanPlainTemplateLiteral(t *testing.T) {
	tok := scanOne(t, "`hello world`")
	assert.Equal(t, token.TEMPLATE_LITERAL, tok.Type)
	assert.Equal(t, "hello world", tok.Literal)
}

func TestScanTemplateWithSubstitution(t *testing.T) {
	l := New("`a${x}b`")
	head := l.NextToken()
	require.Equal(t, token.TEMPLATE_HEAD, head.Type)
	require.Equal(t, "a", head.Literal)
	// the tokenizer is responsible for scanning `x` as an expression and
	// consuming the closing `}`; ResumeTemplate picks up right after it.
	ident := l.NextToken()
	require.Equal(t, token.IDENT, ident.Type)
	require.Equal(t, "x", ident.Literal)
	tok := l.NextToken()
	require.Equal(t, token.RBRACE, tok.Type, "want RBRACE before resuming the template")
	tail := l.ResumeTemplate()
	assert.Equal(t, token.TEMPLATE_TAIL, tail.Type)
	assert.Equal(t, "b", tail.Literal)
}

func TestScanRegexAtStartOfInputIsRegex(t *testing.T) {
	// '/' at the very start of the input (no preceding token) must scan as
	// a regex literal, not a division operator.
	l := New("/ab+c/gi")
	tok := l.NextToken()
	assert.Equal(t, token.REGEX, tok.Type)
	assert.Equal(t, "/ab+c/gi", tok.Literal)
}

func TestSlashAfterIdentifierIsDivision(t *testing.T) {
	l := New("a / b")
	l.NextToken() // a
	tok := l.NextToken()
	assert.Equal(t, token.SLASH, tok.Type)
}

func TestScanRegexInvalidFlag(t *testing.T) {
	l := New("/x/z")
	l.NextToken()
	assert.NotEmpty(t, l.Errors(), "expected an error for the invalid regex flag 'z'")
}

func TestScanRegexBracketClassAllowsUnescapedSlash(t *testing.T) {
	tok := scanOne(t, "/[a/b]/")
	assert.Equal(t, token.REGEX, tok.Type)
	assert.Equal(t, "/[a/b]/", tok.Literal)
}
