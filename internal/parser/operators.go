package parser

import "github.com/tinyjs-go/tinyjs/pkg/token"

// precedence implements spec.md §4.2's operator-precedence table for
// Pratt-style expression parsing. Higher binds tighter.
type precedence int

const (
	precLowest precedence = iota
	precAssign
	precConditional
	precNullish
	precLogicalOr
	precLogicalAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precUnary
	precPostfix
	precCall
)

var binaryPrec = map[token.Type]precedence{
	token.LOGICAL_OR:    precLogicalOr,
	token.LOGICAL_AND:   precLogicalAnd,
	token.QUESTION_QUESTION: precNullish,
	token.BIT_OR:        precBitOr,
	token.BIT_XOR:       precBitXor,
	token.BIT_AND:       precBitAnd,
	token.EQ:            precEquality,
	token.NOT_EQ:        precEquality,
	token.STRICT_EQ:     precEquality,
	token.STRICT_NOT_EQ: precEquality,
	token.LT:            precRelational,
	token.GT:            precRelational,
	token.LE:            precRelational,
	token.GE:            precRelational,
	token.IN:            precRelational,
	token.INSTANCEOF:    precRelational,
	token.SHL:           precShift,
	token.SHR:           precShift,
	token.USHR:          precShift,
	token.PLUS:          precAdditive,
	token.MINUS:         precAdditive,
	token.STAR:          precMultiplicative,
	token.SLASH:         precMultiplicative,
	token.PERCENT:       precMultiplicative,
	token.STAR_STAR:     precExponent,
}

// rightAssoc holds the operators that bind right-to-left: only `**`
// among the binary operators (assignment and conditional are handled
// separately in expressions.go).
var rightAssoc = map[token.Type]bool{
	token.STAR_STAR: true,
}

var assignOps = map[token.Type]bool{
	token.ASSIGN: true, token.PLUS_ASSIGN: true, token.MINUS_ASSIGN: true,
	token.STAR_ASSIGN: true, token.SLASH_ASSIGN: true, token.PERCENT_ASSIGN: true,
	token.STAR_STAR_ASSIGN: true, token.SHL_ASSIGN: true, token.SHR_ASSIGN: true,
	token.USHR_ASSIGN: true, token.AND_ASSIGN: true, token.OR_ASSIGN: true,
	token.XOR_ASSIGN: true, token.LOGICAL_AND_ASSIGN: true, token.LOGICAL_OR_ASSIGN: true,
	token.QUESTION_QUESTION_ASSIGN: true,
}

func isLogical(t token.Type) bool {
	return t == token.LOGICAL_AND || t == token.LOGICAL_OR || t == token.QUESTION_QUESTION
}

var unaryOps = map[token.Type]bool{
	token.LOGICAL_NOT: true, token.BIT_NOT: true, token.PLUS: true,
	token.MINUS: true, token.TYPEOF: true, token.VOID: true, token.DELETE: true,
}
