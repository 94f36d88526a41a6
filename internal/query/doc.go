// Package query implements the filter/search expression language.
//
// # Grammar
//
// No parenthesization; && binds tighter than ||:
//
//	expr       := or_expr
//	or_expr    := and_expr ("||" and_expr)*
//	and_expr   := unary ("&&" unary)*
//	unary      := "!" unary | comparison
//	comparison := operand (("=="|"!="|">"|">="|"<"|"<=") operand)?
//	            | operand "~" operand
//	            | "~" operand
//	operand    := quoted_string | bare_word | number
//
// # Semantics
//
// A bare token standing alone is a free-text predicate: true when the raw
// line or any field value contains it (case-sensitive substring). The same
// token left of a comparison operator names a field instead:
//
//	ERROR                  lines containing ERROR anywhere
//	level == "ERROR"       records whose level field is exactly ERROR
//	status >= 400          numeric comparison when both sides parse
//	~ "^GET"               raw line matches the regex
//	path ~ "^/api/"        field value matches the regex
//
// Quoted strings are always literal text, never field names. An unterminated
// quote is implicitly closed at end of input. Comparisons against a missing
// field are false. When both comparison operands parse as numbers the
// comparison is numeric; otherwise it is lexicographic, which orders
// ISO-8601 timestamps but not other date formats.
//
// # Compilation
//
// Compile tokenizes, parses into an immutable AST (a tagged-union Node with
// an exhaustive recursive evaluator), and compiles regex literals through the
// shared recache.Cache. Evaluation is a pure per-record function; text is
// never re-parsed while filtering or searching.
package query
