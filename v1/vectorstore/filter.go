package vectorstore

// Expr is one node of a boolean predicate over record fields. Connectors
// compile an Expr tree into their native filter representation; nothing in
// this package evaluates it.
//
// The set of node types is closed. Translators switch exhaustively on the
// concrete type and reject anything they do not recognize.
type Expr interface {
	isExpr()
}

// FieldExpr references a record property by its logical name. On its own,
// in a boolean position, it reads as "field == true".
type FieldExpr struct {
	Name string
}

// LiteralExpr holds a constant: a scalar, nil, or a slice for inline
// Contains sets.
type LiteralExpr struct {
	Value any
}

// EqualExpr compares a field against a constant. Either operand may be the
// field. Negate turns it into an inequality.
type EqualExpr struct {
	Left   Expr
	Right  Expr
	Negate bool
}

// CompareOp is one of the four ordering comparisons.
type CompareOp int

const (
	CompareGt CompareOp = iota
	CompareGte
	CompareLt
	CompareLte
)

func (op CompareOp) String() string {
	switch op {
	case CompareGt:
		return ">"
	case CompareGte:
		return ">="
	case CompareLt:
		return "<"
	case CompareLte:
		return "<="
	default:
		return "?"
	}
}

// Flip mirrors the comparison, for when the field sits on the right-hand
// side (5 < x becomes x > 5).
func (op CompareOp) Flip() CompareOp {
	switch op {
	case CompareGt:
		return CompareLt
	case CompareGte:
		return CompareLte
	case CompareLt:
		return CompareGt
	default:
		return CompareGte
	}
}

// CompareExpr is an ordering comparison between a field and a numeric
// constant, in either operand order.
type CompareExpr struct {
	Op    CompareOp
	Left  Expr
	Right Expr
}

// AndExpr is the conjunction of two or more operands.
type AndExpr struct {
	Operands []Expr
}

// OrExpr is the disjunction of two or more operands.
type OrExpr struct {
	Operands []Expr
}

// NotExpr negates its operand.
type NotExpr struct {
	Operand Expr
}

// ContainsExpr tests membership. Source is either a field holding a
// collection (tag-style: "does the field contain Item") or a literal slice
// (inline set: "is the field one of these values", with Item the field).
type ContainsExpr struct {
	Source Expr
	Item   Expr
}

func (FieldExpr) isExpr()    {}
func (LiteralExpr) isExpr()  {}
func (EqualExpr) isExpr()    {}
func (CompareExpr) isExpr()  {}
func (AndExpr) isExpr()      {}
func (OrExpr) isExpr()       {}
func (NotExpr) isExpr()      {}
func (ContainsExpr) isExpr() {}

// ── Constructors ─────────────────────────────────────────────────────────────

// Field references a record property by logical name.
func Field(name string) FieldExpr { return FieldExpr{Name: name} }

// Lit wraps a constant value.
func Lit(v any) LiteralExpr { return LiteralExpr{Value: v} }

// Eq builds field == value.
func Eq(field string, v any) Expr {
	return EqualExpr{Left: Field(field), Right: Lit(v)}
}

// Ne builds field != value.
func Ne(field string, v any) Expr {
	return EqualExpr{Left: Field(field), Right: Lit(v), Negate: true}
}

// Gt builds field > value.
func Gt(field string, v any) Expr {
	return CompareExpr{Op: CompareGt, Left: Field(field), Right: Lit(v)}
}

// Gte builds field >= value.
func Gte(field string, v any) Expr {
	return CompareExpr{Op: CompareGte, Left: Field(field), Right: Lit(v)}
}

// Lt builds field < value.
func Lt(field string, v any) Expr {
	return CompareExpr{Op: CompareLt, Left: Field(field), Right: Lit(v)}
}

// Lte builds field <= value.
func Lte(field string, v any) Expr {
	return CompareExpr{Op: CompareLte, Left: Field(field), Right: Lit(v)}
}

// And joins predicates conjunctively.
func And(operands ...Expr) Expr {
	if len(operands) == 1 {
		return operands[0]
	}
	return AndExpr{Operands: operands}
}

// Or joins predicates disjunctively.
func Or(operands ...Expr) Expr {
	if len(operands) == 1 {
		return operands[0]
	}
	return OrExpr{Operands: operands}
}

// Not negates a predicate.
func Not(operand Expr) Expr { return NotExpr{Operand: operand} }

// FieldContains builds "collection-valued field contains value".
func FieldContains(field string, v any) Expr {
	return ContainsExpr{Source: Field(field), Item: Lit(v)}
}

// In builds "field is one of values" from an inline set.
func In(field string, values any) Expr {
	return ContainsExpr{Source: Lit(values), Item: Field(field)}
}
