package value

import (
	"strconv"
	"strings"
)

// Parsable renders v as a self-contained JS expression that, when
// evaluated, reproduces an equal value (spec.md §8's round-trip
// property: "For the provided getParsableString, eval(v.parsable)
// reproduces a value equal to v for all JSON-representable v"). This is
// a value-level analogue of the original engine's
// `CScriptVar::getParsableString()`, restricted — like the property
// itself — to the JSON-representable subset: object/array/string/
// number/bool/null/undefined. A cycle in the object graph renders as
// `null` at the repeated node rather than looping forever; such graphs
// are outside the round-trip property's scope.
func (v *Value) Parsable() string {
	var sb strings.Builder
	v.writeParsable(&sb, map[*Value]bool{})
	return sb.String()
}

func (v *Value) writeParsable(sb *strings.Builder, seen map[*Value]bool) {
	switch v.Kind {
	case KindUndefined, KindUninitialized:
		sb.WriteString("undefined")
	case KindNull:
		sb.WriteString("null")
	case KindBoolean:
		if v.Bool {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case KindNumber:
		sb.WriteString(v.Num.String())
	case KindString:
		sb.WriteString(quoteParsable(v.Str))
	case KindArray:
		v.writeParsableArray(sb, seen)
	default:
		v.writeParsableObject(sb, seen)
	}
}

func (v *Value) writeParsableArray(sb *strings.Builder, seen map[*Value]bool) {
	if seen[v] {
		sb.WriteString("null")
		return
	}
	seen[v] = true
	defer delete(seen, v)

	sb.WriteByte('[')
	n := v.Length()
	for i := uint32(0); i < n; i++ {
		if i > 0 {
			sb.WriteByte(',')
		}
		if l := v.FindOwn(String(strconv.FormatUint(uint64(i), 10))); l != nil {
			l.Val.writeParsable(sb, seen)
		}
		// a missing index renders as an elision hole, matching the
		// parser's `[1, , 3]` array-literal support.
	}
	sb.WriteByte(']')
}

func (v *Value) writeParsableObject(sb *strings.Builder, seen map[*Value]bool) {
	if seen[v] {
		sb.WriteString("null")
		return
	}
	seen[v] = true
	defer delete(seen, v)

	sb.WriteByte('{')
	first := true
	for _, l := range v.OwnProperties() {
		if !l.Enumerable {
			continue
		}
		if _, isSym := l.Name.IsSymbol(); isSym {
			continue
		}
		if !first {
			sb.WriteByte(',')
		}
		first = false
		sb.WriteString(quoteParsable(l.Name.Text()))
		sb.WriteByte(':')
		val := l.Val
		if l.IsAccessor() {
			val = Undefined
		}
		val.writeParsable(sb, seen)
	}
	sb.WriteByte('}')
}

// quoteParsable renders s as a double-quoted JS string literal, escaping
// the characters the lexer's own writeEscape decodes on the way back in
// (internal/lexer/scan_literals.go).
func quoteParsable(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
