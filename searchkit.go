package searchkit

import (
	"context"
	"time"

	"github.com/RisPNG/searchkit/filtering"
	"github.com/RisPNG/searchkit/ordering"
	"github.com/RisPNG/searchkit/schema"
)

// Filters is a declarative filter spec. Keys are field names, optionally
// qualified as "<field>@<relation>" to reach a one-hop related entity, plus
// the reserved grouping keys "_or", "_multi_or", "_fields_diff" and
// "_fields_sum".
type Filters = map[string]any

/*
PageResult is one page of search results.

When the search is paginated, PageSize is the requested page size and Entries
holds at most that many rows. When it is unpaged, the full result set comes
back as a single page: PageNumber is 1, PageSize equals len(Entries) and
TotalPages is 1.
*/
type PageResult struct {
	Entries      []map[string]any `json:"entries"`
	PageNumber   int64            `json:"page_number"`
	PageSize     int64            `json:"page_size"`
	TotalEntries int64            `json:"total_entries"`
	TotalPages   int64            `json:"total_pages"`
}

/*
Runner executes compiled plans against a backing store. [postgres.Executor]
is the production implementation; tests swap in an in-memory one.

Select returns rows as maps keyed by column name. A limit of 0 means no
limit. Count returns the total number of matching root rows, collapsing any
row multiplication introduced by joins.
*/
type Runner interface {
	Select(ctx context.Context, plan *filtering.Plan, limit, offset int64) ([]map[string]any, error)
	Count(ctx context.Context, plan *filtering.Plan) (int64, error)
	Preload(ctx context.Context, entity string, entries []map[string]any, relations []string, recursive bool) error
}

// Client compiles filter specs against a schema and runs them through a
// Runner. A Client is stateless and safe for concurrent use.
type Client struct {
	schema schema.Introspector
	runner Runner
}

// NewClient creates a new Client for the given schema and query backend.
func NewClient(intr schema.Introspector, runner Runner) *Client {
	return &Client{schema: intr, runner: runner}
}

// Options for the Search method.
type Options struct {
	page          int64
	perPage       int64
	order         string
	timezone      string
	preload       []string
	preloadAll    bool
	useOr         bool
	distinct      bool
	droppedFields []string
}

// Option is a functional option for the Search method.
type Option func(*Options)

/*
WithPagination requests page-based pagination: at most perPage entries
starting at the given 1-based page. A page below 1 is treated as page 1.

A perPage of 0 or below disables pagination and returns the full result set.
*/
func WithPagination(page, perPage int64) Option {
	return func(opts *Options) {
		opts.page = page
		opts.perPage = perPage
	}
}

// WithOrder sorts the results by an expression like
// "total desc, name@customer asc". Paths use the same @relation
// qualification as filter keys.
func WithOrder(order string) Option {
	return func(opts *Options) {
		opts.order = order
	}
}

// WithTimezone sets the IANA timezone name used to interpret datetime
// strings in the filters, for example "Asia/Kuala_Lumpur".
//
// The default is UTC.
func WithTimezone(name string) Option {
	return func(opts *Options) {
		opts.timezone = name
	}
}

// WithPreload attaches the named related entities to each returned entry
// with one batched query per relation.
func WithPreload(relations ...string) Option {
	return func(opts *Options) {
		opts.preload = relations
	}
}

// WithPreloadAll recursively preloads every relation of the searched entity
// and of the attached entities, visiting each entity type at most once.
func WithPreloadAll() Option {
	return func(opts *Options) {
		opts.preloadAll = true
	}
}

// WithUseOr combines the top-level filters with OR instead of AND.
func WithUseOr() Option {
	return func(opts *Options) {
		opts.useOr = true
	}
}

// WithDistinct de-duplicates root rows, which joins to has-many relations
// would otherwise multiply.
func WithDistinct() Option {
	return func(opts *Options) {
		opts.distinct = true
	}
}

// WithDroppedFields strips the named filter keys before compilation,
// regardless of what the caller put in the filters. Use it to fence off
// fields that must never be client-filterable.
func WithDroppedFields(names ...string) Option {
	return func(opts *Options) {
		opts.droppedFields = names
	}
}

/*
Search compiles the filters for the given entity into a query plan, runs it,
and returns one page of results.

Filter values that are absent (nil, "", -1 or "-1", or lists of only such
values) contribute no predicate, so callers can pass through UI form state
verbatim. Unknown fields or relations fail with an InvalidArgument error
even when the value is absent.
*/
func (c *Client) Search(ctx context.Context, entity string, filters Filters, opts ...Option) (*PageResult, error) {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	loc := time.UTC
	if options.timezone != "" {
		var err error
		loc, err = time.LoadLocation(options.timezone)
		if err != nil {
			return nil, ErrInvalidTimezone{name: options.timezone, err: err}
		}
	}

	compiler := &filtering.Compiler{
		Schema:        c.schema,
		Timezone:      loc,
		UseOr:         options.useOr,
		DroppedFields: options.droppedFields,
	}
	plan, err := compiler.Compile(entity, filters)
	if err != nil {
		return nil, err
	}

	if options.order != "" {
		order, err := ordering.NewOrder(options.order)
		if err != nil {
			return nil, err
		}
		var paths []filtering.OrderPath
		for _, clause := range order.Clauses() {
			paths = append(paths, filtering.OrderPath{
				Path: clause.Path,
				Desc: clause.Order == ordering.SortOrderDesc,
			})
		}
		if err := compiler.Order(plan, paths); err != nil {
			return nil, err
		}
	}
	plan.Distinct = options.distinct

	result, err := c.run(ctx, plan, options)
	if err != nil {
		return nil, err
	}

	if options.preloadAll || len(options.preload) > 0 {
		var relations []string
		if !options.preloadAll {
			relations = options.preload
		}
		if err := c.runner.Preload(ctx, entity, result.Entries, relations, options.preloadAll); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// run executes the plan, paginated when a positive page size was requested
// and as a single full page otherwise.
func (c *Client) run(ctx context.Context, plan *filtering.Plan, options *Options) (*PageResult, error) {
	if options.perPage <= 0 {
		entries, err := c.runner.Select(ctx, plan, 0, 0)
		if err != nil {
			return nil, err
		}
		total := int64(len(entries))
		return &PageResult{
			Entries:      entries,
			PageNumber:   1,
			PageSize:     total,
			TotalEntries: total,
			TotalPages:   1,
		}, nil
	}

	page := options.page
	if page < 1 {
		page = 1
	}
	total, err := c.runner.Count(ctx, plan)
	if err != nil {
		return nil, err
	}
	entries, err := c.runner.Select(ctx, plan, options.perPage, (page-1)*options.perPage)
	if err != nil {
		return nil, err
	}

	totalPages := (total + options.perPage - 1) / options.perPage
	if totalPages < 1 {
		totalPages = 1
	}
	return &PageResult{
		Entries:      entries,
		PageNumber:   page,
		PageSize:     options.perPage,
		TotalEntries: total,
		TotalPages:   totalPages,
	}, nil
}
