package browse

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blogboard/internal/custom_errors"
	"blogboard/internal/logger"
	"blogboard/internal/model"
)

type listCall struct {
	page   int
	search string
}

// fakeLister is a scriptable backend: results per search term, optional
// per-term gates to hold a fetch in flight, and a full call log.
type fakeLister struct {
	mu      sync.Mutex
	calls   []listCall
	posts   map[string][]*model.PostDetailed
	totals  map[string]int
	failAll bool
	gates   map[string]chan struct{}
}

func newFakeLister() *fakeLister {
	return &fakeLister{
		posts:  make(map[string][]*model.PostDetailed),
		totals: make(map[string]int),
		gates:  make(map[string]chan struct{}),
	}
}

func (f *fakeLister) set(search string, total int, posts ...*model.PostDetailed) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[search] = posts
	f.totals[search] = total
}

func (f *fakeLister) gate(search string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[search] = ch
	return ch
}

func (f *fakeLister) FetchPage(ctx context.Context, page, pageSize int, search string) ([]*model.PostDetailed, int, error) {
	f.mu.Lock()
	f.calls = append(f.calls, listCall{page: page, search: search})
	gate := f.gates[search]
	fail := f.failAll
	posts := f.posts[search]
	total := f.totals[search]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if fail {
		return nil, 0, custom_errors.ErrExternalServiceError
	}
	return posts, total, nil
}

func (f *fakeLister) callLog() []listCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]listCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func post(id int64, title string) *model.PostDetailed {
	return &model.PostDetailed{Post: &model.Post{ID: id, Title: title}}
}

func waitForUpdate(t *testing.T, p *Pager) {
	t.Helper()
	select {
	case <-p.Updates():
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for pager update")
	}
}

func TestPager_DebounceCollapsesKeystrokes(t *testing.T) {
	log := logger.New("test")
	lister := newFakeLister()
	lister.set("golang", 1, post(1, "Go post"))
	store := NewBlogStore()
	p := NewPager(lister, store, 6, 30*time.Millisecond, log)
	defer p.Stop()

	ctx := context.Background()
	p.SetSearchTerm(ctx, "g")
	p.SetSearchTerm(ctx, "go")
	p.SetSearchTerm(ctx, "golang")

	waitForUpdate(t, p)

	calls := lister.callLog()
	require.Len(t, calls, 1)
	assert.Equal(t, listCall{page: 1, search: "golang"}, calls[0])
	assert.Equal(t, "golang", p.SearchTerm())
	assert.Equal(t, 1, p.Page())
	assert.Equal(t, 1, store.Len())
}

func TestPager_SearchResetsToPageOne(t *testing.T) {
	log := logger.New("test")
	lister := newFakeLister()
	lister.set("", 13, post(1, "a"), post(2, "b"))
	lister.set("term", 2, post(3, "c"))
	store := NewBlogStore()
	p := NewPager(lister, store, 6, 10*time.Millisecond, log)
	defer p.Stop()

	ctx := context.Background()
	require.NoError(t, p.Load(ctx))
	<-p.Updates()
	require.NoError(t, p.SetPage(ctx, 2))
	<-p.Updates()
	require.Equal(t, 2, p.Page())

	p.SetSearchTerm(ctx, "term")
	waitForUpdate(t, p)

	assert.Equal(t, 1, p.Page())
	assert.Equal(t, "term", p.SearchTerm())
	assert.Equal(t, 2, p.TotalCount())
}

func TestPager_ClearedTermRestoresFullListing(t *testing.T) {
	log := logger.New("test")
	lister := newFakeLister()
	lister.set("", 2, post(1, "a"), post(2, "b"))
	lister.set("x", 1, post(1, "a"))
	store := NewBlogStore()
	p := NewPager(lister, store, 6, 10*time.Millisecond, log)
	defer p.Stop()

	ctx := context.Background()
	require.NoError(t, p.Load(ctx))
	<-p.Updates()

	p.SetSearchTerm(ctx, "x")
	waitForUpdate(t, p)
	require.Equal(t, 1, store.Len())

	p.SetSearchTerm(ctx, "")
	waitForUpdate(t, p)

	assert.Equal(t, "", p.SearchTerm())
	assert.Equal(t, 2, store.Len())
	assert.Equal(t, 2, p.TotalCount())
}

func TestPager_StaleResultDiscarded(t *testing.T) {
	log := logger.New("test")
	lister := newFakeLister()
	lister.set("slow", 1, post(1, "stale"))
	lister.set("fast", 1, post(2, "fresh"))
	slowGate := lister.gate("slow")
	store := NewBlogStore()
	p := NewPager(lister, store, 6, time.Hour, log)
	defer p.Stop()

	ctx := context.Background()

	slowDone := make(chan error, 1)
	go func() {
		slowDone <- p.fetch(ctx, 1, "slow")
	}()

	// Wait until the slow fetch is in flight.
	require.Eventually(t, func() bool {
		return len(lister.callLog()) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, p.fetch(ctx, 1, "fast"))
	<-p.Updates()
	require.Equal(t, "fast", p.SearchTerm())

	close(slowGate)
	require.NoError(t, <-slowDone)

	// The superseded response must not overwrite the fresher one.
	assert.Equal(t, "fast", p.SearchTerm())
	posts := store.Posts()
	require.Len(t, posts, 1)
	assert.Equal(t, "fresh", posts[0].Post.Title)
}

func TestPager_FetchErrorLeavesStateUntouched(t *testing.T) {
	log := logger.New("test")
	lister := newFakeLister()
	lister.set("", 13, post(1, "a"))
	store := NewBlogStore()
	p := NewPager(lister, store, 6, 10*time.Millisecond, log)
	defer p.Stop()

	ctx := context.Background()
	require.NoError(t, p.Load(ctx))
	<-p.Updates()
	require.Equal(t, 1, store.Len())

	lister.mu.Lock()
	lister.failAll = true
	lister.mu.Unlock()

	err := p.SetPage(ctx, 2)
	require.Error(t, err)
	<-p.Updates()

	assert.Equal(t, 1, p.Page())
	assert.Equal(t, "", p.SearchTerm())
	assert.Equal(t, 13, p.TotalCount())
	assert.Equal(t, 1, store.Len())
	assert.ErrorIs(t, p.LastError(), custom_errors.ErrExternalServiceError)
}

func TestPager_SetPageClampsToLastPage(t *testing.T) {
	log := logger.New("test")
	lister := newFakeLister()
	lister.set("", 13, post(1, "a"))
	store := NewBlogStore()
	p := NewPager(lister, store, 6, 10*time.Millisecond, log)
	defer p.Stop()

	ctx := context.Background()
	require.NoError(t, p.Load(ctx))
	<-p.Updates()

	// 13 posts at 6 per page gives 3 pages.
	require.NoError(t, p.SetPage(ctx, 10))
	<-p.Updates()
	assert.Equal(t, 3, p.Page())

	require.NoError(t, p.SetPage(ctx, -2))
	<-p.Updates()
	assert.Equal(t, 1, p.Page())
}

func TestPager_SetPageUsesAppliedTerm(t *testing.T) {
	log := logger.New("test")
	lister := newFakeLister()
	lister.set("go", 13, post(1, "a"))
	store := NewBlogStore()
	p := NewPager(lister, store, 6, 10*time.Millisecond, log)
	defer p.Stop()

	ctx := context.Background()
	p.SetSearchTerm(ctx, "go")
	waitForUpdate(t, p)

	require.NoError(t, p.SetPage(ctx, 2))
	<-p.Updates()

	calls := lister.callLog()
	require.Len(t, calls, 2)
	assert.Equal(t, listCall{page: 2, search: "go"}, calls[1])
}

func TestPager_SetPageSamePageIsNoOp(t *testing.T) {
	log := logger.New("test")
	lister := newFakeLister()
	lister.set("", 13, post(1, "a"))
	store := NewBlogStore()
	p := NewPager(lister, store, 6, 10*time.Millisecond, log)
	defer p.Stop()

	ctx := context.Background()
	require.NoError(t, p.Load(ctx))
	<-p.Updates()

	require.NoError(t, p.SetPage(ctx, 1))
	assert.Len(t, lister.callLog(), 1)
}

func TestPager_NextPrevNavigation(t *testing.T) {
	log := logger.New("test")
	lister := newFakeLister()
	lister.set("", 13, post(1, "a"))
	store := NewBlogStore()
	p := NewPager(lister, store, 6, 10*time.Millisecond, log)
	defer p.Stop()

	ctx := context.Background()
	require.NoError(t, p.Load(ctx))
	<-p.Updates()

	require.NoError(t, p.NextPage(ctx))
	<-p.Updates()
	assert.Equal(t, 2, p.Page())

	require.NoError(t, p.PrevPage(ctx))
	<-p.Updates()
	assert.Equal(t, 1, p.Page())

	// Prev at the first page stays clamped there.
	require.NoError(t, p.PrevPage(ctx))
	assert.Equal(t, 1, p.Page())
}

func TestPager_Buttons(t *testing.T) {
	log := logger.New("test")
	lister := newFakeLister()
	lister.set("", 60, post(1, "a"))
	store := NewBlogStore()
	p := NewPager(lister, store, 6, 10*time.Millisecond, log)
	defer p.Stop()

	ctx := context.Background()
	require.NoError(t, p.Load(ctx))
	<-p.Updates()

	assert.Equal(t, 10, p.TotalPages())
	assert.Equal(t, []int{1, 2, 3, 4, 5, -1, 10}, p.Buttons())
}
