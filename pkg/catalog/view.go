package catalog

import (
	"strings"
	"sync"

	"github.com/huanfeng/connhub-cli/pkg/models"
)

// VisibleWindow describes what a presentation layer should show after the
// visible page was recomputed.
type VisibleWindow struct {
	Items     []models.Application
	PageIndex int
	PageCount int
	Total     int
	Featured  bool
}

// ViewOption configures a ListView
type ViewOption func(*ListView)

// WithPageSize sets the page size
func WithPageSize(size int) ViewOption {
	return func(v *ListView) {
		if size > 0 {
			v.pageSize = size
		}
	}
}

// WithSortKey sets the initial ordering
func WithSortKey(key SortKey) ViewOption {
	return func(v *ListView) { v.sortKey.Set(key) }
}

// WithLocale sets the collation locale for alphabetical ordering
func WithLocale(locale string) ViewOption {
	return func(v *ListView) { v.sorter = NewSorter(locale) }
}

// ListView derives the filtered, sorted and paginated list from a Store.
//
// Every input change bumps a version; setting an equal value does not.
// Derived values are computed on read and memoized until an upstream
// version moves. Changing the query,
// tab, filters or ordering returns to the first page; a reload that
// shrinks the list clamps the page index.
type ListView struct {
	mu       sync.Mutex
	pageSize int
	sorter   *Sorter

	records *Input[[]models.Application]
	query   *Input[string]
	tab     *Input[string]
	filters *Input[FilterState]
	sortKey *Input[SortKey]
	page    *Input[int]

	filtered  *Derived[[]models.Application]
	sorted    *Derived[[]models.Application]
	visible   *Derived[Page[models.Application]]
	featured  *Derived[[]models.Application]
	pageCount *Derived[int]

	onVisible       func(VisibleWindow)
	notifiedVersion uint64
	unsubscribe     func()
}

// NewListView creates a view over store and follows its reloads
func NewListView(store *Store, opts ...ViewOption) *ListView {
	v := &ListView{
		pageSize: DefaultPageSize,
		sorter:   NewSorter("en"),
		records:  NewInputFunc(store.Get(), sameRecords),
		query:    NewInput(""),
		tab:      NewInput(TabAll),
		filters:  NewInputFunc(FilterState{}, FilterState.Equal),
		sortKey:  NewInput(SortAlphabetical),
		page:     NewInput(0),
	}
	for _, opt := range opts {
		opt(v)
	}

	v.filtered = NewDerived(func() []models.Application {
		return Filter(v.records.Get(), v.criteria())
	}, v.records, v.query, v.tab, v.filters)

	v.sorted = NewDerived(func() []models.Application {
		return v.sorter.Sort(v.filtered.Get(), v.sortKey.Get())
	}, v.filtered, v.sortKey)

	v.pageCount = NewDerived(func() int {
		return PageCount(len(v.sorted.Get()), v.pageSize)
	}, v.sorted)

	v.visible = NewDerived(func() Page[models.Application] {
		return Paginate(v.sorted.Get(), v.page.Get(), v.pageSize)
	}, v.sorted, v.page)

	v.featured = NewDerived(func() []models.Application {
		if v.criteria().IsActive() {
			return nil
		}
		return v.records.Get()
	}, v.records, v.query, v.tab, v.filters)

	v.unsubscribe = store.Subscribe(v.reload)
	return v
}

// Close stops following the store
func (v *ListView) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
}

// OnVisible registers a callback run after the visible page is recomputed.
// A memoized read does not trigger it.
func (v *ListView) OnVisible(fn func(VisibleWindow)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.onVisible = fn
}

func (v *ListView) reload(records []models.Application) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.records.Set(records)
	v.clampLocked()
}

// sameRecords reports whether a and b are the same record list. Reloads
// replace the list wholesale, so identity is enough.
func sameRecords(a, b []models.Application) bool {
	return len(a) == len(b) && (len(a) == 0 || &a[0] == &b[0])
}

func (v *ListView) criteria() Criteria {
	return Criteria{
		Query:   v.query.Get(),
		Tab:     v.tab.Get(),
		Filters: v.filters.Get(),
	}
}

func (v *ListView) resetPageLocked() {
	if v.page.Get() != 0 {
		v.page.Set(0)
	}
}

func (v *ListView) clampLocked() {
	w := Window{Index: v.page.Get(), Size: v.pageSize}
	if c := w.Clamp(len(v.sorted.Get())); c.Index != w.Index {
		v.page.Set(c.Index)
	}
}

// SetQuery replaces the free-text query
func (v *ListView) SetQuery(q string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.query.Set(q) {
		v.resetPageLocked()
	}
}

// SetTab selects a category tab; "all" or empty removes the constraint
func (v *ListView) SetTab(tab string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if strings.TrimSpace(tab) == "" {
		tab = TabAll
	}
	if v.tab.Set(tab) {
		v.resetPageLocked()
	}
}

// SetFilters replaces the filter state
func (v *ListView) SetFilters(f FilterState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.filters.Set(f.Clone()) {
		v.resetPageLocked()
	}
}

// UpdateFilters applies fn to the current filter state
func (v *ListView) UpdateFilters(fn func(FilterState) FilterState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.filters.Set(fn(v.filters.Get()).Clone()) {
		v.resetPageLocked()
	}
}

// ToggleFilter flips value in dimension d
func (v *ListView) ToggleFilter(d Dimension, value string) {
	v.UpdateFilters(func(f FilterState) FilterState { return f.Toggle(d, value) })
}

// SetTrending turns the trending filter on or off
func (v *ListView) SetTrending(on bool) {
	v.UpdateFilters(func(f FilterState) FilterState { return f.WithTrending(on) })
}

// ResetFilters clears the query and every filter
func (v *ListView) ResetFilters() {
	v.mu.Lock()
	defer v.mu.Unlock()
	q := v.query.Set("")
	f := v.filters.Set(FilterState{})
	if q || f {
		v.resetPageLocked()
	}
}

// SetSort changes the ordering
func (v *ListView) SetSort(key SortKey) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.sortKey.Set(key) {
		v.resetPageLocked()
	}
}

// NextPage moves forward one page if possible
func (v *ListView) NextPage() {
	v.navigate(func(w Window, total int) Window { return w.Next(total) })
}

// PreviousPage moves back one page if possible
func (v *ListView) PreviousPage() {
	v.navigate(func(w Window, total int) Window { return w.Previous(total) })
}

// GoToPage jumps to page n (zero-based); out-of-range values are ignored
func (v *ListView) GoToPage(n int) {
	v.navigate(func(w Window, total int) Window { return w.GoTo(n, total) })
}

func (v *ListView) navigate(move func(Window, int) Window) {
	v.mu.Lock()
	defer v.mu.Unlock()
	w := Window{Index: v.page.Get(), Size: v.pageSize}
	next := move(w, len(v.sorted.Get()))
	if next.Index != w.Index {
		v.page.Set(next.Index)
	}
}

// Page returns the visible page
func (v *ListView) Page() Page[models.Application] {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clampLocked()
	p := v.visible.Get()
	if ver := v.visible.Version(); ver != v.notifiedVersion {
		v.notifiedVersion = ver
		if v.onVisible != nil {
			v.onVisible(VisibleWindow{
				Items:     p.Items,
				PageIndex: p.Index,
				PageCount: p.Count,
				Total:     p.Total,
				Featured:  len(v.featured.Get()) > 0,
			})
		}
	}
	return p
}

// Sorted returns the full filtered and sorted list
func (v *ListView) Sorted() []models.Application {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sorted.Get()
}

// Featured returns every record while no query, tab or filter is active,
// and nothing otherwise
func (v *ListView) Featured() []models.Application {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.featured.Get()
}

// FilteredCount returns the number of records passing the filters
func (v *ListView) FilteredCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.filtered.Get())
}

// PageCount returns the number of pages of the filtered list
func (v *ListView) PageCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pageCount.Get()
}

// PageIndex returns the current zero-based page index
func (v *ListView) PageIndex() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.clampLocked()
	return v.page.Get()
}

// Query returns the current free-text query
func (v *ListView) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query.Get()
}

// Tab returns the current category tab
func (v *ListView) Tab() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.tab.Get()
}

// Filters returns the current filter state
func (v *ListView) Filters() FilterState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.filters.Get()
}

// SortKey returns the current ordering
func (v *ListView) SortKey() SortKey {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.sortKey.Get()
}

// Records returns the unfiltered records the view is built on
func (v *ListView) Records() []models.Application {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.records.Get()
}

// Stats exposes how often each derived value was computed
func (v *ListView) Stats() map[string]int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return map[string]int{
		"filtered": v.filtered.Computations(),
		"sorted":   v.sorted.Computations(),
		"visible":  v.visible.Computations(),
		"featured": v.featured.Computations(),
	}
}
