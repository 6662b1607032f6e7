package searchkit

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RisPNG/searchkit/filtering"
	"github.com/RisPNG/searchkit/ordering"
	"github.com/RisPNG/searchkit/schema"
)

// fakeRunner serves canned entries, slicing them by limit and offset the way
// a real backend would.
type fakeRunner struct {
	entries []map[string]any

	lastPlan   *filtering.Plan
	lastLimit  int64
	lastOffset int64
	countCalls int

	preloadCalled    bool
	preloadEntity    string
	preloadRelations []string
	preloadRecursive bool
}

func (f *fakeRunner) Select(_ context.Context, plan *filtering.Plan, limit, offset int64) ([]map[string]any, error) {
	f.lastPlan = plan
	f.lastLimit = limit
	f.lastOffset = offset

	if offset >= int64(len(f.entries)) {
		return nil, nil
	}
	out := f.entries[offset:]
	if limit > 0 && limit < int64(len(out)) {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeRunner) Count(_ context.Context, plan *filtering.Plan) (int64, error) {
	f.countCalls++
	return int64(len(f.entries)), nil
}

func (f *fakeRunner) Preload(_ context.Context, entity string, entries []map[string]any, relations []string, recursive bool) error {
	f.preloadCalled = true
	f.preloadEntity = entity
	f.preloadRelations = relations
	f.preloadRecursive = recursive
	return nil
}

func testIntrospector() schema.Introspector {
	return schema.NewStatic(map[string]schema.Entity{
		"order": {
			Table: "orders",
			Fields: map[string]schema.Type{
				"name":      {Kind: schema.String},
				"state":     {Kind: schema.String},
				"quantity":  {Kind: schema.Integer},
				"createdAt": {Kind: schema.DateTime},
			},
			Relations: map[string]schema.Relation{
				"customer": {Entity: "customer", Column: "id", References: "customer_id"},
			},
		},
		"customer": {
			Table: "customers",
			Fields: map[string]schema.Type{
				"tier": {Kind: schema.String},
			},
		},
	})
}

func fakeEntries(n int) []map[string]any {
	entries := make([]map[string]any, n)
	for i := range entries {
		entries[i] = map[string]any{"id": int64(i + 1), "name": fmt.Sprintf("order-%d", i+1)}
	}
	return entries
}

func TestSearchPaginated(t *testing.T) {
	runner := &fakeRunner{entries: fakeEntries(53)}
	client := NewClient(testIntrospector(), runner)

	page, err := client.Search(context.Background(), "order", nil, WithPagination(2, 25))
	require.NoError(t, err)

	assert.Equal(t, int64(25), runner.lastLimit)
	assert.Equal(t, int64(25), runner.lastOffset)
	assert.Len(t, page.Entries, 25)
	assert.Equal(t, int64(2), page.PageNumber)
	assert.Equal(t, int64(25), page.PageSize)
	assert.Equal(t, int64(53), page.TotalEntries)
	assert.Equal(t, int64(3), page.TotalPages)
}

func TestSearchPageBelowOneIsFirstPage(t *testing.T) {
	runner := &fakeRunner{entries: fakeEntries(10)}
	client := NewClient(testIntrospector(), runner)

	page, err := client.Search(context.Background(), "order", nil, WithPagination(0, 5))
	require.NoError(t, err)

	assert.Equal(t, int64(0), runner.lastOffset)
	assert.Equal(t, int64(1), page.PageNumber)
}

func TestSearchUnpaged(t *testing.T) {
	runner := &fakeRunner{entries: fakeEntries(53)}
	client := NewClient(testIntrospector(), runner)

	page, err := client.Search(context.Background(), "order", nil)
	require.NoError(t, err)

	// No count query runs for an unpaged search.
	assert.Equal(t, 0, runner.countCalls)
	assert.Equal(t, int64(0), runner.lastLimit)
	assert.Len(t, page.Entries, 53)
	assert.Equal(t, int64(1), page.PageNumber)
	assert.Equal(t, int64(53), page.PageSize)
	assert.Equal(t, int64(53), page.TotalEntries)
	assert.Equal(t, int64(1), page.TotalPages)
}

func TestSearchEmptyResultHasOnePage(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(testIntrospector(), runner)

	page, err := client.Search(context.Background(), "order", nil, WithPagination(1, 25))
	require.NoError(t, err)

	assert.Empty(t, page.Entries)
	assert.Equal(t, int64(0), page.TotalEntries)
	assert.Equal(t, int64(1), page.TotalPages)
}

// Walking every page yields exactly the unpaged result set, in order.
func TestSearchPagesConcatenate(t *testing.T) {
	runner := &fakeRunner{entries: fakeEntries(23)}
	client := NewClient(testIntrospector(), runner)

	full, err := client.Search(context.Background(), "order", nil)
	require.NoError(t, err)

	var paged []map[string]any
	for p := int64(1); p <= 3; p++ {
		page, err := client.Search(context.Background(), "order", nil, WithPagination(p, 10))
		require.NoError(t, err)
		paged = append(paged, page.Entries...)
	}
	assert.Equal(t, full.Entries, paged)
}

func TestSearchFiltersCompile(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(testIntrospector(), runner)

	_, err := client.Search(context.Background(), "order", Filters{"name": "ali"})
	require.NoError(t, err)
	assert.Equal(t,
		filtering.Like{Col: filtering.Column{Name: "name"}, Value: "ali"},
		runner.lastPlan.Where)
}

func TestSearchUnknownFieldFails(t *testing.T) {
	client := NewClient(testIntrospector(), &fakeRunner{})

	_, err := client.Search(context.Background(), "order", Filters{"bogus": "x"})
	assert.ErrorIs(t, err, schema.ErrUnknownField{})
}

func TestSearchInvalidTimezone(t *testing.T) {
	client := NewClient(testIntrospector(), &fakeRunner{})

	_, err := client.Search(context.Background(), "order", nil, WithTimezone("Mars/Olympus"))
	assert.ErrorIs(t, err, ErrInvalidTimezone{})
}

func TestSearchOrderJoinsRelation(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(testIntrospector(), runner)

	_, err := client.Search(context.Background(), "order", nil, WithOrder("tier@customer desc"))
	require.NoError(t, err)

	require.Len(t, runner.lastPlan.Order, 1)
	assert.Equal(t, filtering.OrderClause{
		Col:  filtering.Column{Relation: "customer", Name: "tier"},
		Desc: true,
	}, runner.lastPlan.Order[0])
	assert.Len(t, runner.lastPlan.Joins, 1)
}

func TestSearchInvalidOrder(t *testing.T) {
	client := NewClient(testIntrospector(), &fakeRunner{})

	_, err := client.Search(context.Background(), "order", nil, WithOrder("name,"))
	assert.ErrorIs(t, err, ordering.ErrInvalidOrder{})
}

func TestSearchUseOr(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(testIntrospector(), runner)

	_, err := client.Search(context.Background(), "order",
		Filters{"name": "a", "state": "b"}, WithUseOr())
	require.NoError(t, err)

	_, ok := runner.lastPlan.Where.(filtering.Or)
	assert.True(t, ok)
}

func TestSearchDistinct(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(testIntrospector(), runner)

	_, err := client.Search(context.Background(), "order", nil, WithDistinct())
	require.NoError(t, err)
	assert.True(t, runner.lastPlan.Distinct)
}

func TestSearchDroppedFields(t *testing.T) {
	runner := &fakeRunner{}
	client := NewClient(testIntrospector(), runner)

	_, err := client.Search(context.Background(), "order",
		Filters{"state": "paid"}, WithDroppedFields("state"))
	require.NoError(t, err)
	assert.Nil(t, runner.lastPlan.Where)
}

func TestSearchPreload(t *testing.T) {
	runner := &fakeRunner{entries: fakeEntries(1)}
	client := NewClient(testIntrospector(), runner)

	_, err := client.Search(context.Background(), "order", nil, WithPreload("customer"))
	require.NoError(t, err)

	assert.True(t, runner.preloadCalled)
	assert.Equal(t, "order", runner.preloadEntity)
	assert.Equal(t, []string{"customer"}, runner.preloadRelations)
	assert.False(t, runner.preloadRecursive)
}

func TestSearchPreloadAll(t *testing.T) {
	runner := &fakeRunner{entries: fakeEntries(1)}
	client := NewClient(testIntrospector(), runner)

	_, err := client.Search(context.Background(), "order", nil, WithPreloadAll())
	require.NoError(t, err)

	assert.True(t, runner.preloadCalled)
	assert.Nil(t, runner.preloadRelations)
	assert.True(t, runner.preloadRecursive)
}

func TestSearchNoPreloadByDefault(t *testing.T) {
	runner := &fakeRunner{entries: fakeEntries(1)}
	client := NewClient(testIntrospector(), runner)

	_, err := client.Search(context.Background(), "order", nil)
	require.NoError(t, err)
	assert.False(t, runner.preloadCalled)
}
