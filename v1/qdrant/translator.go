package qdrant

import (
	"fmt"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
)

// filterTranslator compiles a vectorstore.Expr predicate into Qdrant's
// Must/MustNot/Should filter structure.
//
// Qdrant's filter has no native "OR of AND-groups" primitive: a Filter is
// (AND of Must) AND (AND of NOT of each MustNot) AND (OR of Should). The
// translator therefore nests sub-filters inside conditions whenever flat
// merging would change the boolean semantics. The AND merge rules below are
// the subtle part; they are covered exhaustively in translator_test.go.
type filterTranslator struct {
	schema *vectorstore.Schema
}

func newFilterTranslator(schema *vectorstore.Schema) *filterTranslator {
	return &filterTranslator{schema: schema}
}

// translate compiles expr to a Qdrant filter. A nil expr yields a nil
// filter (unfiltered). Translation never returns a partial filter: the
// first unsupported node fails the whole attempt.
func (t *filterTranslator) translate(expr vectorstore.Expr) (*qdrant.Filter, error) {
	if expr == nil {
		return nil, nil
	}
	return t.visit(expr)
}

func (t *filterTranslator) visit(expr vectorstore.Expr) (*qdrant.Filter, error) {
	switch node := expr.(type) {
	case vectorstore.EqualExpr:
		return t.visitEqual(node)
	case vectorstore.CompareExpr:
		return t.visitCompare(node)
	case vectorstore.AndExpr:
		return t.visitAnd(node)
	case vectorstore.OrExpr:
		return t.visitOr(node)
	case vectorstore.NotExpr:
		return t.visitNot(node)
	case vectorstore.ContainsExpr:
		return t.visitContains(node)
	case vectorstore.FieldExpr:
		// A bare field in boolean position reads as "field == true".
		return t.visitEqual(vectorstore.EqualExpr{
			Left:  node,
			Right: vectorstore.Lit(true),
		})
	default:
		return nil, fmt.Errorf("%w: %T", vectorstore.ErrUnsupportedFilterExpression, expr)
	}
}

// ── Equality ─────────────────────────────────────────────────────────────────

func (t *filterTranslator) visitEqual(node vectorstore.EqualExpr) (*qdrant.Filter, error) {
	key, constant, err := t.bind(node.Left, node.Right)
	if err != nil {
		return nil, err
	}

	var cond *qdrant.Condition
	switch v := constant.(type) {
	case nil:
		cond = qdrant.NewIsNull(key)
	case string:
		cond = qdrant.NewMatch(key, v)
	case bool:
		cond = qdrant.NewMatchBool(key, v)
	case int:
		cond = qdrant.NewMatchInt(key, int64(v))
	case int32:
		cond = qdrant.NewMatchInt(key, int64(v))
	case int64:
		cond = qdrant.NewMatchInt(key, v)
	default:
		return nil, fmt.Errorf("%w: cannot match %q against a %T constant",
			vectorstore.ErrUnsupportedFilterValue, key, constant)
	}

	if node.Negate {
		return &qdrant.Filter{MustNot: []*qdrant.Condition{cond}}, nil
	}
	return &qdrant.Filter{Must: []*qdrant.Condition{cond}}, nil
}

// ── Comparison ───────────────────────────────────────────────────────────────

func (t *filterTranslator) visitCompare(node vectorstore.CompareExpr) (*qdrant.Filter, error) {
	op := node.Op
	left, right := node.Left, node.Right

	// Allow the field on either side; mirror the operator when it is on
	// the right (5 < x becomes x > 5).
	if _, isField := left.(vectorstore.FieldExpr); !isField {
		left, right = right, left
		op = op.Flip()
	}

	key, constant, err := t.bind(left, right)
	if err != nil {
		return nil, err
	}

	if ts, isTime := constant.(time.Time); isTime {
		return &qdrant.Filter{
			Must: []*qdrant.Condition{qdrant.NewDatetimeRange(key, datetimeRange(op, ts))},
		}, nil
	}

	bound, err := toFloat64(constant)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot compare %q against a %T constant",
			vectorstore.ErrUnsupportedFilterValue, key, constant)
	}

	r := &qdrant.Range{}
	switch op {
	case vectorstore.CompareGt:
		r.Gt = &bound
	case vectorstore.CompareGte:
		r.Gte = &bound
	case vectorstore.CompareLt:
		r.Lt = &bound
	case vectorstore.CompareLte:
		r.Lte = &bound
	}

	return &qdrant.Filter{Must: []*qdrant.Condition{qdrant.NewRange(key, r)}}, nil
}

func datetimeRange(op vectorstore.CompareOp, ts time.Time) *qdrant.DatetimeRange {
	bound := timestamppb.New(ts)
	r := &qdrant.DatetimeRange{}
	switch op {
	case vectorstore.CompareGt:
		r.Gt = bound
	case vectorstore.CompareGte:
		r.Gte = bound
	case vectorstore.CompareLt:
		r.Lt = bound
	case vectorstore.CompareLte:
		r.Lte = bound
	}
	return r
}

// ── AND ──────────────────────────────────────────────────────────────────────

// visitAnd folds the operands pairwise through mergeAnd.
func (t *filterTranslator) visitAnd(node vectorstore.AndExpr) (*qdrant.Filter, error) {
	if len(node.Operands) == 0 {
		return nil, fmt.Errorf("%w: AND with no operands", vectorstore.ErrUnsupportedFilterExpression)
	}
	result, err := t.visit(node.Operands[0])
	if err != nil {
		return nil, err
	}
	for _, operand := range node.Operands[1:] {
		right, err := t.visit(operand)
		if err != nil {
			return nil, err
		}
		result = mergeAnd(result, right)
	}
	return result, nil
}

// mergeAnd combines two translated filters under AND. Precedence-preserving
// merge:
//
//  1. A side carrying both Should and Must/MustNot cannot be flattened —
//     its Should would silently attach to the other side's clauses. Push
//     such a side whole into a single nested Must condition first.
//  2. After step 1 a side with Should has nothing else. A pure-Should right
//     side folds into the left's Should slot only when that slot is free;
//     two competing Should groups cannot share one OR, so the right side is
//     nested under Must instead.
//  3. Remaining Must and MustNot lists concatenate freely.
func mergeAnd(left, right *qdrant.Filter) *qdrant.Filter {
	left = isolateMixedShould(left)
	right = isolateMixedShould(right)

	if len(right.Should) > 0 {
		if len(left.Should) == 0 {
			left.Should = append(left.Should, right.Should...)
			right.Should = nil
		} else {
			right = &qdrant.Filter{Must: []*qdrant.Condition{nested(right)}}
		}
	}

	left.Must = append(left.Must, right.Must...)
	left.MustNot = append(left.MustNot, right.MustNot...)
	return left
}

// isolateMixedShould wraps a filter that mixes Should with Must/MustNot
// into a single nested Must condition, so the wrapper's clauses can merge
// without changing what the Should applies to.
func isolateMixedShould(f *qdrant.Filter) *qdrant.Filter {
	if len(f.Should) > 0 && (len(f.Must) > 0 || len(f.MustNot) > 0) {
		return &qdrant.Filter{Must: []*qdrant.Condition{nested(f)}}
	}
	return f
}

// ── OR ───────────────────────────────────────────────────────────────────────

func (t *filterTranslator) visitOr(node vectorstore.OrExpr) (*qdrant.Filter, error) {
	if len(node.Operands) == 0 {
		return nil, fmt.Errorf("%w: OR with no operands", vectorstore.ErrUnsupportedFilterExpression)
	}
	result := &qdrant.Filter{}
	for _, operand := range node.Operands {
		side, err := t.visit(operand)
		if err != nil {
			return nil, err
		}
		result.Should = append(result.Should, shouldEntries(side)...)
	}
	return result, nil
}

// shouldEntries extracts the OR-alternatives a translated side contributes:
// a pure-Should side contributes its Should list, a side that is exactly
// one Must condition contributes that condition, and anything structurally
// richer is wrapped whole as one nested alternative.
func shouldEntries(f *qdrant.Filter) []*qdrant.Condition {
	switch {
	case len(f.Must) == 0 && len(f.MustNot) == 0:
		return f.Should
	case len(f.Must) == 1 && len(f.MustNot) == 0 && len(f.Should) == 0:
		return f.Must
	default:
		return []*qdrant.Condition{nested(f)}
	}
}

// ── NOT ──────────────────────────────────────────────────────────────────────

func (t *filterTranslator) visitNot(node vectorstore.NotExpr) (*qdrant.Filter, error) {
	switch inner := node.Operand.(type) {
	case vectorstore.EqualExpr:
		// !(a == b) and !(a != b) re-translate as the flipped equality
		// instead of wrapping, avoiding double negation.
		inner.Negate = !inner.Negate
		return t.visitEqual(inner)
	case vectorstore.NotExpr:
		return t.visit(inner.Operand)
	case vectorstore.FieldExpr:
		// !flag reads as "flag == false".
		return t.visitEqual(vectorstore.EqualExpr{
			Left:  inner,
			Right: vectorstore.Lit(false),
		})
	}

	f, err := t.visit(node.Operand)
	if err != nil {
		return nil, err
	}
	return invert(f), nil
}

// invert negates a translated filter structurally where that is sound:
//
//   - a single Must condition flips to a single MustNot (and vice versa);
//   - an all-Should filter becomes all-MustNot (De Morgan: NOT(a OR b) is
//     NOT a AND NOT b — valid because each Should entry is already a
//     self-contained condition);
//   - anything mixed is wrapped whole in one nested MustNot, the safe
//     general fallback.
func invert(f *qdrant.Filter) *qdrant.Filter {
	switch {
	case len(f.Must) == 1 && len(f.MustNot) == 0 && len(f.Should) == 0:
		return &qdrant.Filter{MustNot: f.Must}
	case len(f.Must) == 0 && len(f.MustNot) == 1 && len(f.Should) == 0:
		return &qdrant.Filter{Must: f.MustNot}
	case len(f.Must) == 0 && len(f.MustNot) == 0 && len(f.Should) > 0:
		return &qdrant.Filter{MustNot: f.Should}
	default:
		return &qdrant.Filter{MustNot: []*qdrant.Condition{nested(f)}}
	}
}

// ── Contains ─────────────────────────────────────────────────────────────────

func (t *filterTranslator) visitContains(node vectorstore.ContainsExpr) (*qdrant.Filter, error) {
	if _, sourceIsField := node.Source.(vectorstore.FieldExpr); sourceIsField {
		// Qdrant matches a scalar value against a list-valued payload field
		// the same way it matches against a scalar field, so tag-style
		// contains degenerates to equality.
		return t.visitEqual(vectorstore.EqualExpr{Left: node.Source, Right: node.Item})
	}

	lit, ok := node.Source.(vectorstore.LiteralExpr)
	if !ok {
		return nil, fmt.Errorf("%w: contains source must be a field or a literal collection, got %T",
			vectorstore.ErrUnsupportedFilterExpression, node.Source)
	}
	field, ok := node.Item.(vectorstore.FieldExpr)
	if !ok {
		return nil, fmt.Errorf("%w: contains over a literal collection needs a field item, got %T",
			vectorstore.ErrUnsupportedFilterExpression, node.Item)
	}
	key, err := t.resolve(field)
	if err != nil {
		return nil, err
	}

	cond, err := inlineSetCondition(key, lit.Value)
	if err != nil {
		return nil, err
	}
	return &qdrant.Filter{Must: []*qdrant.Condition{cond}}, nil
}

// inlineSetCondition builds a keyword-set or integer-set match from a
// literal collection. String and integer element types only.
func inlineSetCondition(key string, collection any) (*qdrant.Condition, error) {
	switch elems := collection.(type) {
	case []string:
		return qdrant.NewMatchKeywords(key, elems...), nil
	case []int:
		ints := make([]int64, len(elems))
		for i, n := range elems {
			ints[i] = int64(n)
		}
		return qdrant.NewMatchInts(key, ints...), nil
	case []int32:
		ints := make([]int64, len(elems))
		for i, n := range elems {
			ints[i] = int64(n)
		}
		return qdrant.NewMatchInts(key, ints...), nil
	case []int64:
		return qdrant.NewMatchInts(key, elems...), nil
	case []any:
		if len(elems) == 0 {
			return nil, fmt.Errorf("%w: empty inline set for %q",
				vectorstore.ErrUnsupportedContainsElement, key)
		}
		switch elems[0].(type) {
		case string:
			strs := make([]string, len(elems))
			for i, e := range elems {
				s, ok := e.(string)
				if !ok {
					return nil, mixedSetError(key, i, e)
				}
				strs[i] = s
			}
			return qdrant.NewMatchKeywords(key, strs...), nil
		case int, int32, int64:
			ints := make([]int64, len(elems))
			for i, e := range elems {
				switch n := e.(type) {
				case int:
					ints[i] = int64(n)
				case int32:
					ints[i] = int64(n)
				case int64:
					ints[i] = n
				default:
					return nil, mixedSetError(key, i, e)
				}
			}
			return qdrant.NewMatchInts(key, ints...), nil
		default:
			return nil, fmt.Errorf("%w: %T elements in the inline set for %q",
				vectorstore.ErrUnsupportedContainsElement, elems[0], key)
		}
	default:
		return nil, fmt.Errorf("%w: %T is not an inline set for %q",
			vectorstore.ErrUnsupportedContainsElement, collection, key)
	}
}

func mixedSetError(key string, i int, e any) error {
	return fmt.Errorf("%w: mixed element types in the inline set for %q (element %d is %T)",
		vectorstore.ErrUnsupportedContainsElement, key, i, e)
}

// ── Helpers ──────────────────────────────────────────────────────────────────

// bind splits an operand pair into (storage key, constant), accepting the
// field on either side.
func (t *filterTranslator) bind(left, right vectorstore.Expr) (string, any, error) {
	if f, ok := left.(vectorstore.FieldExpr); ok {
		key, err := t.resolve(f)
		if err != nil {
			return "", nil, err
		}
		c, err := constantOf(right)
		return key, c, err
	}
	if f, ok := right.(vectorstore.FieldExpr); ok {
		key, err := t.resolve(f)
		if err != nil {
			return "", nil, err
		}
		c, err := constantOf(left)
		return key, c, err
	}
	return "", nil, fmt.Errorf("%w: neither operand references a record field",
		vectorstore.ErrUnsupportedFilterExpression)
}

// resolve maps a logical field name to its storage name, erroring when the
// field is not part of the schema.
func (t *filterTranslator) resolve(f vectorstore.FieldExpr) (string, error) {
	if p, ok := t.schema.DataProperty(f.Name); ok {
		return p.StorageName, nil
	}
	if f.Name == t.schema.Key.Name {
		return t.schema.Key.StorageName, nil
	}
	return "", fmt.Errorf("%w: %q", vectorstore.ErrUnknownFilterProperty, f.Name)
}

func constantOf(e vectorstore.Expr) (any, error) {
	lit, ok := e.(vectorstore.LiteralExpr)
	if !ok {
		return nil, fmt.Errorf("%w: expected a constant operand, got %T",
			vectorstore.ErrUnsupportedFilterExpression, e)
	}
	return lit.Value, nil
}

func toFloat64(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float32:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("not numeric: %T", v)
	}
}

// nested wraps a whole filter as a single condition.
func nested(f *qdrant.Filter) *qdrant.Condition {
	return &qdrant.Condition{ConditionOneOf: &qdrant.Condition_Filter{Filter: f}}
}
