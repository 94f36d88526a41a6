package query

import (
	"strconv"
	"strings"

	"github.com/tailspect/tailspect/internal/record"
)

// eval decides whether rec satisfies the expression rooted at n. Evaluation
// is pure: no node state changes and no text is re-parsed per record.
func eval(n *Node, rec *record.Record) bool {
	switch n.Kind {
	case NodeAll:
		return true
	case NodeAnd:
		return eval(n.Left, rec) && eval(n.Right, rec)
	case NodeOr:
		return eval(n.Left, rec) || eval(n.Right, rec)
	case NodeNot:
		return !eval(n.Left, rec)
	case NodeString, NodeNumber:
		return freeText(n.Str, rec)
	case NodeRegex:
		return n.Re.MatchString(rec.Original)
	case NodeCmp:
		return evalCmp(n, rec)
	case NodeIdent:
		// Identifiers only appear under NodeCmp; a stray one means a
		// field-existence check.
		_, ok := rec.Get(n.Str)
		return ok
	}
	return false
}

// freeText reports whether text occurs as a substring of the raw line or of
// any field value. Case-sensitive.
func freeText(text string, rec *record.Record) bool {
	if strings.Contains(rec.Original, text) {
		return true
	}
	for _, f := range rec.Fields() {
		if strings.Contains(f.Value, text) {
			return true
		}
	}
	return false
}

func evalCmp(n *Node, rec *record.Record) bool {
	left, ok := resolve(n.Left, rec)
	if !ok {
		return false
	}
	if n.Op == OpMatch {
		return n.Right.Re.MatchString(left)
	}
	right, ok := resolve(n.Right, rec)
	if !ok {
		return false
	}
	return compare(n.Op, left, right)
}

// resolve reduces a comparison operand to its string form. An identifier
// resolves to the named field; a missing field makes the whole comparison
// false.
func resolve(n *Node, rec *record.Record) (string, bool) {
	switch n.Kind {
	case NodeIdent:
		return rec.Get(n.Str)
	case NodeString, NodeNumber:
		return n.Str, true
	}
	return "", false
}

// compare applies op numerically when both sides parse as numbers, otherwise
// lexicographically. The string fallback orders ISO-8601 timestamps
// correctly; other date formats will not sort, which is a documented
// limitation of the expression language.
func compare(op CmpOp, left, right string) bool {
	ln, lerr := strconv.ParseFloat(left, 64)
	rn, rerr := strconv.ParseFloat(right, 64)
	if lerr == nil && rerr == nil {
		switch op {
		case OpEq:
			return ln == rn
		case OpNe:
			return ln != rn
		case OpGt:
			return ln > rn
		case OpGe:
			return ln >= rn
		case OpLt:
			return ln < rn
		case OpLe:
			return ln <= rn
		}
		return false
	}
	switch op {
	case OpEq:
		return left == right
	case OpNe:
		return left != right
	case OpGt:
		return left > right
	case OpGe:
		return left >= right
	case OpLt:
		return left < right
	case OpLe:
		return left <= right
	}
	return false
}
