package qdrant

import (
	"errors"
	"testing"
	"time"

	qdrant "github.com/qdrant/go-client/qdrant"
	"google.golang.org/protobuf/proto"

	"github.com/Aleph-Alpha/connectors/v1/vectorstore"
)

func testTranslator(t *testing.T) *filterTranslator {
	t.Helper()
	schema, err := vectorstore.BuildSchema(vectorstore.Definition{
		Key: vectorstore.KeyProperty{Name: "id", Kind: vectorstore.KeyUint64},
		Data: []vectorstore.DataProperty{
			{Name: "city", Type: vectorstore.TypeString, Indexed: true},
			{Name: "rating", Type: vectorstore.TypeFloat64},
			{Name: "priority", Type: vectorstore.TypeInt64},
			{Name: "active", Type: vectorstore.TypeBool},
			{Name: "tags", Type: vectorstore.TypeStringList},
			{Name: "title", StorageName: "doc_title", Type: vectorstore.TypeString},
			{Name: "created", Type: vectorstore.TypeTimestamp},
		},
		Vectors: []vectorstore.VectorProperty{
			{Name: "embedding", Dimensions: 4},
		},
	})
	if err != nil {
		t.Fatalf("building schema: %v", err)
	}
	return newFilterTranslator(schema)
}

func mustTranslate(t *testing.T, expr vectorstore.Expr) *qdrant.Filter {
	t.Helper()
	f, err := testTranslator(t).translate(expr)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	return f
}

func TestTranslate_NilExpression(t *testing.T) {
	f, err := testTranslator(t).translate(nil)
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if f != nil {
		t.Errorf("expected nil filter, got %v", f)
	}
}

func TestTranslate_EqualString(t *testing.T) {
	f := mustTranslate(t, vectorstore.Eq("city", "London"))

	if len(f.Must) != 1 || len(f.MustNot) != 0 || len(f.Should) != 0 {
		t.Fatalf("expected exactly 1 Must condition, got %v", f)
	}
	field := f.Must[0].GetField()
	if field.GetKey() != "city" {
		t.Errorf("expected key city, got %q", field.GetKey())
	}
	if field.GetMatch().GetKeyword() != "London" {
		t.Errorf("expected keyword London, got %v", field.GetMatch())
	}
}

func TestTranslate_EqualUsesStorageName(t *testing.T) {
	f := mustTranslate(t, vectorstore.Eq("title", "Dune"))

	if key := f.Must[0].GetField().GetKey(); key != "doc_title" {
		t.Errorf("expected storage name doc_title, got %q", key)
	}
}

func TestTranslate_EqualWithFieldOnRight(t *testing.T) {
	// "London" == city
	flipped := vectorstore.EqualExpr{
		Left:  vectorstore.Lit("London"),
		Right: vectorstore.Field("city"),
	}
	want := mustTranslate(t, vectorstore.Eq("city", "London"))
	got := mustTranslate(t, flipped)

	if !proto.Equal(want, got) {
		t.Errorf("operand order changed the filter:\nwant %v\ngot  %v", want, got)
	}
}

func TestTranslate_NotEqual(t *testing.T) {
	f := mustTranslate(t, vectorstore.Ne("active", true))

	if len(f.MustNot) != 1 || len(f.Must) != 0 {
		t.Fatalf("expected exactly 1 MustNot condition, got %v", f)
	}
	if !f.MustNot[0].GetField().GetMatch().GetBoolean() {
		t.Errorf("expected boolean match on true, got %v", f.MustNot[0])
	}
}

func TestTranslate_EqualNilIsNullCheck(t *testing.T) {
	f := mustTranslate(t, vectorstore.Eq("city", nil))

	if len(f.Must) != 1 {
		t.Fatalf("expected 1 Must condition, got %v", f)
	}
	if f.Must[0].GetIsNull() == nil {
		t.Errorf("expected an is-null condition, got %v", f.Must[0])
	}
}

func TestTranslate_EqualInteger(t *testing.T) {
	f := mustTranslate(t, vectorstore.Eq("priority", 3))

	if got := f.Must[0].GetField().GetMatch().GetInteger(); got != 3 {
		t.Errorf("expected integer match 3, got %d", got)
	}
}

func TestTranslate_UnknownProperty(t *testing.T) {
	_, err := testTranslator(t).translate(vectorstore.Eq("nope", "x"))
	if !errors.Is(err, vectorstore.ErrUnknownFilterProperty) {
		t.Errorf("expected ErrUnknownFilterProperty, got %v", err)
	}
}

func TestTranslate_UnsupportedEqualityConstant(t *testing.T) {
	// Qdrant has no float equality match; ranges must be used instead.
	_, err := testTranslator(t).translate(vectorstore.Eq("rating", 4.5))
	if !errors.Is(err, vectorstore.ErrUnsupportedFilterValue) {
		t.Errorf("expected ErrUnsupportedFilterValue, got %v", err)
	}
}

func TestTranslate_GreaterThan(t *testing.T) {
	f := mustTranslate(t, vectorstore.Gt("rating", 4.0))

	r := f.Must[0].GetField().GetRange()
	if r == nil || r.Gt == nil || *r.Gt != 4.0 {
		t.Fatalf("expected range with Gt=4.0, got %v", f.Must[0])
	}
	if r.Gte != nil || r.Lt != nil || r.Lte != nil {
		t.Errorf("expected only Gt to be set, got %v", r)
	}
}

func TestTranslate_CompareWithFieldOnRight(t *testing.T) {
	// 4 < rating is rating > 4
	flipped := vectorstore.CompareExpr{
		Op:    vectorstore.CompareLt,
		Left:  vectorstore.Lit(4.0),
		Right: vectorstore.Field("rating"),
	}
	want := mustTranslate(t, vectorstore.Gt("rating", 4.0))
	got := mustTranslate(t, flipped)

	if !proto.Equal(want, got) {
		t.Errorf("mirrored comparison differs:\nwant %v\ngot  %v", want, got)
	}
}

func TestTranslate_CompareIntWidensToDouble(t *testing.T) {
	f := mustTranslate(t, vectorstore.Lte("priority", 10))

	r := f.Must[0].GetField().GetRange()
	if r == nil || r.Lte == nil || *r.Lte != 10.0 {
		t.Fatalf("expected range with Lte=10, got %v", f.Must[0])
	}
}

func TestTranslate_CompareTimestamp(t *testing.T) {
	cutoff := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	f := mustTranslate(t, vectorstore.Gte("created", cutoff))

	r := f.Must[0].GetField().GetDatetimeRange()
	if r == nil || r.Gte == nil {
		t.Fatalf("expected datetime range with Gte, got %v", f.Must[0])
	}
	if !r.Gte.AsTime().Equal(cutoff) {
		t.Errorf("expected bound %v, got %v", cutoff, r.Gte.AsTime())
	}
}

func TestTranslate_AndOfEqualities(t *testing.T) {
	// city = "London" AND active = true
	f := mustTranslate(t, vectorstore.And(
		vectorstore.Eq("city", "London"),
		vectorstore.Eq("active", true),
	))

	if len(f.Must) != 2 || len(f.Should) != 0 || len(f.MustNot) != 0 {
		t.Fatalf("expected 2 Must conditions, got %v", f)
	}
}

func TestTranslate_AndIsAssociative(t *testing.T) {
	a := vectorstore.Eq("city", "London")
	b := vectorstore.Gt("rating", 4.0)
	c := vectorstore.Ne("active", false)

	leftNested := mustTranslate(t, vectorstore.And(vectorstore.And(a, b), c))
	rightNested := mustTranslate(t, vectorstore.And(a, vectorstore.And(b, c)))

	if !proto.Equal(leftNested, rightNested) {
		t.Errorf("AND nesting changed the filter:\n(a AND b) AND c: %v\na AND (b AND c): %v", leftNested, rightNested)
	}
}

func TestTranslate_AndAssociativityWithOr(t *testing.T) {
	// Structures may differ between groupings once an operand carries an OR,
	// but the accepted record set must not.
	a := vectorstore.Eq("city", "London")
	b := vectorstore.Or(vectorstore.Eq("priority", 1), vectorstore.Eq("priority", 2))
	c := vectorstore.Gt("rating", 3.0)

	variants := map[string]*qdrant.Filter{
		"flat":         mustTranslate(t, vectorstore.And(a, b, c)),
		"left nested":  mustTranslate(t, vectorstore.And(vectorstore.And(a, b), c)),
		"right nested": mustTranslate(t, vectorstore.And(a, vectorstore.And(b, c))),
	}

	records := []struct {
		name   string
		rec    map[string]any
		accept bool
	}{
		{"all clauses hold", map[string]any{"city": "London", "priority": int64(1), "rating": 4.5}, true},
		{"second priority alternative", map[string]any{"city": "London", "priority": int64(2), "rating": 3.5}, true},
		{"wrong city", map[string]any{"city": "Berlin", "priority": int64(1), "rating": 4.5}, false},
		{"priority outside the set", map[string]any{"city": "London", "priority": int64(3), "rating": 4.5}, false},
		{"rating too low", map[string]any{"city": "London", "priority": int64(1), "rating": 2.0}, false},
	}

	for name, filter := range variants {
		for _, tc := range records {
			if got := evalFilter(t, filter, tc.rec); got != tc.accept {
				t.Errorf("%s grouping, %s: accepted=%v, want %v", name, tc.name, got, tc.accept)
			}
		}
	}
}

func TestTranslate_AndIsolatesMixedShould(t *testing.T) {
	// The left side carries both Must and Should, so it must be pushed whole
	// into one nested condition before the range joins the conjunction;
	// flattening would attach the Should alternatives to the range too.
	f := mustTranslate(t, vectorstore.And(
		vectorstore.And(
			vectorstore.Eq("city", "London"),
			vectorstore.Or(vectorstore.Eq("priority", 1), vectorstore.Eq("priority", 2)),
		),
		vectorstore.Gt("rating", 3.0),
	))

	if len(f.Must) != 2 || len(f.Should) != 0 || len(f.MustNot) != 0 {
		t.Fatalf("expected 2 Must conditions and an empty Should, got %v", f)
	}
	inner := f.Must[0].GetFilter()
	if inner == nil || len(inner.Must) != 1 || len(inner.Should) != 2 {
		t.Errorf("expected the mixed side nested whole, got %v", f.Must[0])
	}
}

func TestTranslate_AndMixesMustAndMustNot(t *testing.T) {
	// city = "London" AND NOT active
	f := mustTranslate(t, vectorstore.And(
		vectorstore.Eq("city", "London"),
		vectorstore.Ne("active", true),
	))

	if len(f.Must) != 1 || len(f.MustNot) != 1 {
		t.Fatalf("expected 1 Must and 1 MustNot, got %v", f)
	}
}

func TestTranslate_OrOfEqualities(t *testing.T) {
	// city = "London" OR city = "Berlin"
	f := mustTranslate(t, vectorstore.Or(
		vectorstore.Eq("city", "London"),
		vectorstore.Eq("city", "Berlin"),
	))

	if len(f.Should) != 2 || len(f.Must) != 0 || len(f.MustNot) != 0 {
		t.Fatalf("expected 2 Should conditions, got %v", f)
	}
}

func TestTranslate_OrOfAndsNestsEachBranch(t *testing.T) {
	// (city = "London" AND active) OR (city = "Berlin" AND NOT active)
	f := mustTranslate(t, vectorstore.Or(
		vectorstore.And(vectorstore.Eq("city", "London"), vectorstore.Eq("active", true)),
		vectorstore.And(vectorstore.Eq("city", "Berlin"), vectorstore.Eq("active", false)),
	))

	if len(f.Should) != 2 {
		t.Fatalf("expected 2 Should alternatives, got %v", f)
	}
	for i, alt := range f.Should {
		nested := alt.GetFilter()
		if nested == nil {
			t.Fatalf("alternative %d is not a nested filter: %v", i, alt)
		}
		if len(nested.Must) != 2 {
			t.Errorf("alternative %d: expected 2 Must conditions, got %v", i, nested)
		}
	}
}

func TestTranslate_AndAdoptsOrIntoEmptyShould(t *testing.T) {
	// active = true AND (city = "London" OR city = "Berlin")
	f := mustTranslate(t, vectorstore.And(
		vectorstore.Eq("active", true),
		vectorstore.Or(
			vectorstore.Eq("city", "London"),
			vectorstore.Eq("city", "Berlin"),
		),
	))

	if len(f.Must) != 1 {
		t.Errorf("expected 1 Must condition, got %v", f)
	}
	if len(f.Should) != 2 {
		t.Errorf("expected the OR to fold into 2 Should conditions, got %v", f)
	}
}

func TestTranslate_AndOfTwoOrsNestsTheSecond(t *testing.T) {
	// Two OR groups cannot share one Should list; the second must nest.
	f := mustTranslate(t, vectorstore.And(
		vectorstore.Or(vectorstore.Eq("city", "London"), vectorstore.Eq("city", "Berlin")),
		vectorstore.Or(vectorstore.Eq("priority", 1), vectorstore.Eq("priority", 2)),
	))

	if len(f.Should) != 2 {
		t.Fatalf("expected the first OR to keep the Should slot, got %v", f)
	}
	if len(f.Must) != 1 {
		t.Fatalf("expected the second OR nested under Must, got %v", f)
	}
	nested := f.Must[0].GetFilter()
	if nested == nil || len(nested.Should) != 2 {
		t.Errorf("expected a nested 2-way Should, got %v", f.Must[0])
	}
}

func TestTranslate_NotEqualityFlipsInPlace(t *testing.T) {
	want := mustTranslate(t, vectorstore.Ne("city", "London"))
	got := mustTranslate(t, vectorstore.Not(vectorstore.Eq("city", "London")))

	if !proto.Equal(want, got) {
		t.Errorf("NOT(a == b) should equal a != b:\nwant %v\ngot  %v", want, got)
	}
}

func TestTranslate_DoubleNegation(t *testing.T) {
	want := mustTranslate(t, vectorstore.Eq("city", "London"))
	got := mustTranslate(t, vectorstore.Not(vectorstore.Not(vectorstore.Eq("city", "London"))))

	if !proto.Equal(want, got) {
		t.Errorf("NOT NOT x should equal x:\nwant %v\ngot  %v", want, got)
	}
}

func TestTranslate_NotRange(t *testing.T) {
	// NOT (rating > 4) — single Must flips to single MustNot
	f := mustTranslate(t, vectorstore.Not(vectorstore.Gt("rating", 4.0)))

	if len(f.MustNot) != 1 || len(f.Must) != 0 {
		t.Fatalf("expected 1 MustNot condition, got %v", f)
	}
	if f.MustNot[0].GetField().GetRange() == nil {
		t.Errorf("expected the range condition inside MustNot, got %v", f.MustNot[0])
	}
}

func TestTranslate_DeMorganOverOr(t *testing.T) {
	// NOT (a OR b) == NOT a AND NOT b
	a := vectorstore.Eq("city", "London")
	b := vectorstore.Eq("city", "Berlin")

	notOr := mustTranslate(t, vectorstore.Not(vectorstore.Or(a, b)))
	andOfNots := mustTranslate(t, vectorstore.And(vectorstore.Not(a), vectorstore.Not(b)))

	if !proto.Equal(notOr, andOfNots) {
		t.Errorf("De Morgan broken:\nNOT(a OR b):      %v\nNOT a AND NOT b: %v", notOr, andOfNots)
	}
}

func TestTranslate_NotAndWrapsWhole(t *testing.T) {
	// NOT (city = "London" AND active) cannot flatten to MustNot pairs:
	// MustNot[a, b] means NOT a AND NOT b, not NOT(a AND b).
	f := mustTranslate(t, vectorstore.Not(vectorstore.And(
		vectorstore.Eq("city", "London"),
		vectorstore.Eq("active", true),
	)))

	if len(f.MustNot) != 1 || len(f.Must) != 0 || len(f.Should) != 0 {
		t.Fatalf("expected a single nested MustNot, got %v", f)
	}
	nested := f.MustNot[0].GetFilter()
	if nested == nil || len(nested.Must) != 2 {
		t.Errorf("expected the conjunction nested whole, got %v", f.MustNot[0])
	}
}

func TestTranslate_BareFieldReadsAsTrue(t *testing.T) {
	f := mustTranslate(t, vectorstore.Field("active"))

	match := f.Must[0].GetField().GetMatch()
	if match == nil || !match.GetBoolean() {
		t.Errorf("expected boolean match on true, got %v", f.Must[0])
	}
}

func TestTranslate_NegatedBareField(t *testing.T) {
	f := mustTranslate(t, vectorstore.Not(vectorstore.Field("active")))

	if len(f.Must) != 1 {
		t.Fatalf("expected 1 Must condition, got %v", f)
	}
	match := f.Must[0].GetField().GetMatch()
	if match == nil || match.GetBoolean() {
		t.Errorf("expected boolean match on false, got %v", f.Must[0])
	}
}

func TestTranslate_TagContains(t *testing.T) {
	// tags contains "ml" — same condition Qdrant uses for scalar equality.
	f := mustTranslate(t, vectorstore.FieldContains("tags", "ml"))

	field := f.Must[0].GetField()
	if field.GetKey() != "tags" || field.GetMatch().GetKeyword() != "ml" {
		t.Errorf("expected keyword match ml on tags, got %v", f.Must[0])
	}
}

func TestTranslate_InStringSet(t *testing.T) {
	f := mustTranslate(t, vectorstore.In("city", []string{"London", "Berlin"}))

	keywords := f.Must[0].GetField().GetMatch().GetKeywords()
	if keywords == nil || len(keywords.GetStrings()) != 2 {
		t.Fatalf("expected a 2-keyword set, got %v", f.Must[0])
	}
}

func TestTranslate_InIntSet(t *testing.T) {
	f := mustTranslate(t, vectorstore.In("priority", []int{1, 2, 3}))

	integers := f.Must[0].GetField().GetMatch().GetIntegers()
	if integers == nil || len(integers.GetIntegers()) != 3 {
		t.Fatalf("expected a 3-integer set, got %v", f.Must[0])
	}
}

func TestTranslate_InInt64Set(t *testing.T) {
	f := mustTranslate(t, vectorstore.In("priority", []int64{7, 8}))

	integers := f.Must[0].GetField().GetMatch().GetIntegers()
	if integers == nil || len(integers.GetIntegers()) != 2 {
		t.Fatalf("expected a 2-integer set, got %v", f.Must[0])
	}
}

func TestTranslate_InUntypedSet(t *testing.T) {
	f := mustTranslate(t, vectorstore.In("city", []any{"London", "Berlin"}))

	keywords := f.Must[0].GetField().GetMatch().GetKeywords()
	if keywords == nil || len(keywords.GetStrings()) != 2 {
		t.Fatalf("expected a 2-keyword set, got %v", f.Must[0])
	}
}

func TestTranslate_InUnsupportedElementType(t *testing.T) {
	_, err := testTranslator(t).translate(vectorstore.In("rating", []float64{1.5, 2.5}))
	if !errors.Is(err, vectorstore.ErrUnsupportedContainsElement) {
		t.Errorf("expected ErrUnsupportedContainsElement, got %v", err)
	}
}

func TestTranslate_InMixedSet(t *testing.T) {
	_, err := testTranslator(t).translate(vectorstore.In("city", []any{"London", 2}))
	if !errors.Is(err, vectorstore.ErrUnsupportedContainsElement) {
		t.Errorf("expected ErrUnsupportedContainsElement, got %v", err)
	}
}

func TestTranslate_ContainsWithoutFieldOrSet(t *testing.T) {
	bad := vectorstore.ContainsExpr{
		Source: vectorstore.Lit([]string{"a"}),
		Item:   vectorstore.Lit("a"),
	}
	_, err := testTranslator(t).translate(bad)
	if !errors.Is(err, vectorstore.ErrUnsupportedFilterExpression) {
		t.Errorf("expected ErrUnsupportedFilterExpression, got %v", err)
	}
}

func TestTranslate_LiteralComparisonWithoutField(t *testing.T) {
	bad := vectorstore.EqualExpr{
		Left:  vectorstore.Lit(1),
		Right: vectorstore.Lit(2),
	}
	_, err := testTranslator(t).translate(bad)
	if !errors.Is(err, vectorstore.ErrUnsupportedFilterExpression) {
		t.Errorf("expected ErrUnsupportedFilterExpression, got %v", err)
	}
}

func TestTranslate_KeyPropertyIsFilterable(t *testing.T) {
	f := mustTranslate(t, vectorstore.Eq("id", 42))

	if got := f.Must[0].GetField().GetKey(); got != "id" {
		t.Errorf("expected key property to resolve, got %q", got)
	}
}

// evalFilter decides whether a record payload satisfies a translated filter:
// every Must holds, no MustNot holds, and a non-empty Should has at least
// one holding alternative. It covers only the condition shapes the
// translator emits and fails the test on anything else.
func evalFilter(t *testing.T, f *qdrant.Filter, rec map[string]any) bool {
	t.Helper()
	for _, c := range f.GetMust() {
		if !evalCondition(t, c, rec) {
			return false
		}
	}
	for _, c := range f.GetMustNot() {
		if evalCondition(t, c, rec) {
			return false
		}
	}
	if should := f.GetShould(); len(should) > 0 {
		for _, c := range should {
			if evalCondition(t, c, rec) {
				return true
			}
		}
		return false
	}
	return true
}

func evalCondition(t *testing.T, c *qdrant.Condition, rec map[string]any) bool {
	t.Helper()
	if sub := c.GetFilter(); sub != nil {
		return evalFilter(t, sub, rec)
	}
	field := c.GetField()
	if field == nil {
		t.Fatalf("evaluator cannot interpret condition %v", c)
	}
	val, present := rec[field.GetKey()]
	if m := field.GetMatch(); m != nil {
		switch kind := m.GetMatchValue().(type) {
		case *qdrant.Match_Keyword:
			s, ok := val.(string)
			return present && ok && s == kind.Keyword
		case *qdrant.Match_Integer:
			n, ok := val.(int64)
			return present && ok && n == kind.Integer
		case *qdrant.Match_Boolean:
			b, ok := val.(bool)
			return present && ok && b == kind.Boolean
		default:
			t.Fatalf("evaluator cannot interpret match %v", m)
		}
	}
	if r := field.GetRange(); r != nil {
		n, ok := val.(float64)
		if !present || !ok {
			return false
		}
		if r.Gt != nil && n <= *r.Gt {
			return false
		}
		if r.Gte != nil && n < *r.Gte {
			return false
		}
		if r.Lt != nil && n >= *r.Lt {
			return false
		}
		if r.Lte != nil && n > *r.Lte {
			return false
		}
		return true
	}
	t.Fatalf("evaluator cannot interpret condition %v", c)
	return false
}
