package query

import "regexp"

// NodeKind discriminates the expression tree variants.
type NodeKind int

const (
	// NodeAll matches every record; the empty expression compiles to it.
	NodeAll NodeKind = iota
	// NodeString is literal text. Standalone it is a free-text substring
	// predicate; inside a comparison it is a plain value.
	NodeString
	// NodeNumber is a numeric literal. Str keeps the source text so a
	// standalone number still works as a free-text predicate.
	NodeNumber
	// NodeIdent names a record field. Only produced as a comparison
	// operand; the same bare token standalone lexes to NodeString.
	NodeIdent
	// NodeRegex is a compiled regex literal. Standalone it matches the raw
	// line; as a comparison right-hand side it matches the left value.
	NodeRegex
	// NodeCmp compares Left and Right with Op.
	NodeCmp
	NodeAnd
	NodeOr
	NodeNot
)

// CmpOp is a comparison operator.
type CmpOp int

const (
	OpEq CmpOp = iota
	OpNe
	OpGt
	OpGe
	OpLt
	OpLe
	// OpMatch is the binary form of ~: field value against regex.
	OpMatch
)

// Node is one expression tree node. The tree is built once per compiled
// expression and never mutated; evaluation walks it per record.
type Node struct {
	Kind NodeKind

	Str   string  // NodeString text, NodeIdent name, NodeRegex source
	Num   float64 // NodeNumber value
	Re    *regexp.Regexp
	Op    CmpOp
	Left  *Node
	Right *Node
}
