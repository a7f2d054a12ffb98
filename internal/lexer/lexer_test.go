package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyjs-go/tinyjs/pkg/token"
)

func tokens(t *testing.T, src string) []token.Token {
	t.Helper()
	l := New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			break
		}
	}
	return toks
}

func TestNextTokenProgram(t *testing.T) {
	input := `let x = 5;
x = x + 10;`

	want := []struct {
		typ token.Type
		lit string
	}{
		{token.LET, "let"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.INT, "10"},
		{token.SEMICOLON, ";"},
		{token.EOF, ""},
	}

	toks := tokens(t, input)
	require.Len(t, toks, len(want))
	for i, w := range want {
		assert.Equal(t, w.typ, toks[i].Type, "token %d type", i)
		assert.Equal(t, w.lit, toks[i].Literal, "token %d literal", i)
	}
}

func TestKeywordsVsIdentifiers(t *testing.T) {
	toks := tokens(t, "function functional")
	assert.Equal(t, token.FUNCTION, toks[0].Type)
	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, "functional", toks[1].Literal)
}

func TestYieldIsContextualKeyword(t *testing.T) {
	l := New("yield")
	tok := l.NextToken()
	assert.Equal(t, token.IDENT, tok.Type, "yield outside generator")

	l = New("yield")
	l.PushGeneratorContext(true)
	tok = l.NextToken()
	assert.Equal(t, token.YIELD, tok.Type, "yield inside generator")
	l.PopGeneratorContext()
}

func TestLineBreakBeforeTracksNewlines(t *testing.T) {
	toks := tokens(t, "a\nb")
	assert.False(t, toks[0].LineBreakBefore, "first token should have no preceding line break")
	assert.True(t, toks[1].LineBreakBefore, "second token should report a preceding line break")
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := tokens(t, "a // trailing comment\n/* block\ncomment */ b")
	require.Len(t, toks, 3)
	assert.Equal(t, token.IDENT, toks[0].Type)
	assert.Equal(t, token.IDENT, toks[1].Type)
	assert.Equal(t, token.EOF, toks[2].Type)
}

func TestUnterminatedBlockCommentReportsError(t *testing.T) {
	l := New("a /* never closed")
	for {
		if tok := l.NextToken(); tok.Type == token.EOF {
			break
		}
	}
	assert.NotEmpty(t, l.Errors(), "expected an error for an unterminated block comment")
}

func TestPositionsAreOneBasedAndByteOffset(t *testing.T) {
	l := New("ab\ncd")
	first := l.NextToken()
	assert.Equal(t, 1, first.Pos.Line)
	assert.Equal(t, 1, first.Pos.Column)
	assert.Equal(t, 0, first.Pos.Offset)
	second := l.NextToken()
	assert.Equal(t, 2, second.Pos.Line)
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("a b c")
	peeked := l.Peek(1)
	require.Equal(t, token.IDENT, peeked.Type)
	require.Equal(t, "b", peeked.Literal)
	first := l.NextToken()
	require.Equal(t, "a", first.Literal)
	second := l.NextToken()
	assert.Equal(t, "b", second.Literal, "Peek must not consume")
}

func TestGuardRestoreRewindsScanning(t *testing.T) {
	l := New("a b c")
	l.NextToken() // consume "a"
	g := l.Mark()
	l.NextToken() // consume "b"
	g.Restore()
	tok := l.NextToken()
	assert.Equal(t, "b", tok.Literal, "after Restore, NextToken()")
}

func TestGuardDiscardKeepsConsumedTokens(t *testing.T) {
	l := New("a b c")
	l.NextToken()
	g := l.Mark()
	l.NextToken() // consume "b"
	g.Discard()
	tok := l.NextToken()
	assert.Equal(t, "c", tok.Literal, "after Discard, NextToken()")
}

func TestCRLFNormalizedToLF(t *testing.T) {
	toks := tokens(t, "a\r\nb")
	assert.True(t, toks[1].LineBreakBefore, "CRLF should count as a single line break")
}

func TestBOMIsStripped(t *testing.T) {
	l := New("﻿x")
	tok := l.NextToken()
	assert.Equal(t, token.IDENT, tok.Type)
	assert.Equal(t, "x", tok.Literal)
}

func TestIllegalCharacterRecordsError(t *testing.T) {
	l := New("a # b")
	for {
		if tok := l.NextToken(); tok.Type == token.EOF {
			break
		}
	}
	assert.NotEmpty(t, l.Errors(), "expected an error for the illegal '#' character")
}
