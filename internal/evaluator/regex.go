package evaluator

import (
	"github.com/dlclark/regexp2"

	"github.com/tinyjs-go/tinyjs/internal/value"
	"github.com/tinyjs-go/tinyjs/pkg/ast"
)

// makeRegex compiles a RegexLiteral's pattern/flags pair into a
// KindRegex Value backed by regexp2, the one engine in the pack whose
// backtracking semantics match JavaScript's regex dialect (spec.md
// §3.6). Compilation failures at this point indicate the lexer
// accepted a pattern the actual regex engine rejects; surfacing that
// as a zero-match, always-empty regex keeps evaluation going rather
// than panicking on a host-language error the script never sees.
func (ev *Evaluator) makeRegex(e *ast.RegexLiteral) *value.Value {
	opts := regexp2.None
	for _, f := range e.Flags {
		switch f {
		case 'i':
			opts |= regexp2.IgnoreCase
		case 'm':
			opts |= regexp2.Multiline
		case 's':
			opts |= regexp2.Singleline
		}
	}
	re, err := regexp2.Compile(e.Pattern, opts)
	v := ev.newTracked(value.KindRegex)
	v.Proto = ev.RegexProto
	v.Native = re
	v.AddOwn(&value.Link{Name: value.String("source"), Val: ev.StringVal(e.Pattern)})
	v.AddOwn(&value.Link{Name: value.String("flags"), Val: ev.StringVal(e.Flags)})
	v.AddOwn(&value.Link{Name: value.String("global"), Val: ev.BoolVal(containsRune(e.Flags, 'g'))})
	v.AddOwn(&value.Link{Name: value.String("lastIndex"), Val: ev.NumberVal(value.Int32(0)), Writable: true})
	if err != nil {
		v.Native = (*regexp2.Regexp)(nil)
	}
	return v
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
