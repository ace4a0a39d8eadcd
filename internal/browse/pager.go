package browse

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"blogboard/internal/logger"
	"blogboard/internal/model"
	"blogboard/internal/pagination"
)

// PostLister is the slice of the backend collaborator the pager needs:
// one page of the filtered, created_at-descending listing plus the
// total match count.
type PostLister interface {
	FetchPage(ctx context.Context, page, pageSize int, search string) ([]*model.PostDetailed, int, error)
}

// Pager drives paginated, searchable listings. Search input is
// debounced: a fetch fires only after the term has been stable for the
// quiet period, and a term change always restarts from page 1.
//
// Every issued fetch is tagged with a monotonically increasing epoch.
// A completion whose epoch is no longer the newest is discarded, so a
// slow superseded response can never overwrite fresher state. On fetch
// failure the previously applied page, term and store contents stay
// untouched.
type Pager struct {
	lister   PostLister
	store    *BlogStore
	log      *logger.Logger
	pageSize int
	quiet    time.Duration

	mu          sync.Mutex
	page        int
	term        string
	pendingTerm string
	totalCount  int
	loaded      bool
	epoch       uint64
	timer       *time.Timer
	lastErr     error

	updates chan struct{}
}

func NewPager(lister PostLister, store *BlogStore, pageSize int, quiet time.Duration, log *logger.Logger) *Pager {
	return &Pager{
		lister:   lister,
		store:    store,
		log:      log,
		pageSize: pageSize,
		quiet:    quiet,
		page:     1,
		updates:  make(chan struct{}, 1),
	}
}

// Load performs the initial, unfiltered page-1 fetch.
func (p *Pager) Load(ctx context.Context) error {
	return p.fetch(ctx, 1, "")
}

// SetSearchTerm records a keystroke. The fetch for it is issued only
// once the term has been stable for the quiet period; keystrokes inside
// the window cancel the previously pending fetch intent.
func (p *Pager) SetSearchTerm(ctx context.Context, term string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.pendingTerm = term
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.quiet, func() {
		p.mu.Lock()
		settled := p.pendingTerm
		p.mu.Unlock()

		// A term change restarts from page 1: the filtered result set
		// may have fewer pages than the current position.
		if err := p.fetch(ctx, 1, settled); err != nil {
			p.log.Debug("Search fetch failed", slog.String("term", settled), slog.String("error", err.Error()))
		}
	})
}

// SetPage navigates to the given page, clamped to [1, totalPages]. The
// fetch uses whatever search term was current at the time of the call.
// Navigating to the page already shown is a no-op.
func (p *Pager) SetPage(ctx context.Context, page int) error {
	p.mu.Lock()
	window := pagination.Window{PageSize: p.pageSize, TotalCount: p.totalCount}
	target := window.Clamp(page)
	term := p.term
	if p.loaded && target == p.page {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	return p.fetch(ctx, target, term)
}

func (p *Pager) NextPage(ctx context.Context) error {
	return p.SetPage(ctx, p.Page()+1)
}

func (p *Pager) PrevPage(ctx context.Context) error {
	return p.SetPage(ctx, p.Page()-1)
}

// Refresh refetches the currently applied page and term.
func (p *Pager) Refresh(ctx context.Context) error {
	p.mu.Lock()
	page, term := p.page, p.term
	p.mu.Unlock()
	return p.fetch(ctx, page, term)
}

// Stop cancels any pending debounce timer.
func (p *Pager) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Pager) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

func (p *Pager) SearchTerm() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.term
}

func (p *Pager) TotalCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalCount
}

func (p *Pager) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	window := pagination.Window{PageSize: p.pageSize, TotalCount: p.totalCount}
	return window.TotalPages()
}

// Buttons returns the page-button layout for the current position.
func (p *Pager) Buttons() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	window := pagination.Window{PageSize: p.pageSize, TotalCount: p.totalCount}
	return pagination.PageButtons(p.page, window.TotalPages())
}

// LastError reports whether the most recent fetch failed. The error is
// a sentinel suitable for a generic retry message, never raw backend
// text.
func (p *Pager) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// Updates signals after every applied fetch or recorded failure.
func (p *Pager) Updates() <-chan struct{} {
	return p.updates
}

func (p *Pager) fetch(ctx context.Context, page int, term string) error {
	p.mu.Lock()
	p.epoch++
	epoch := p.epoch
	p.mu.Unlock()

	posts, total, err := p.lister.FetchPage(ctx, page, p.pageSize, term)

	p.mu.Lock()
	defer p.mu.Unlock()

	if epoch != p.epoch {
		// Superseded while in flight; a newer fetch owns the state now.
		p.log.Debug("Discarding stale fetch result",
			slog.String("term", term),
			slog.Int("page", page))
		return nil
	}

	if err != nil {
		p.log.Error("Failed to fetch page",
			slog.Int("page", page),
			slog.String("term", term),
			slog.String("error", err.Error()))
		p.lastErr = err
		p.notify()
		return err
	}

	p.page = page
	p.term = term
	p.pendingTerm = term
	p.totalCount = total
	p.loaded = true
	p.lastErr = nil
	p.store.ReplaceAll(posts)
	p.notify()
	return nil
}

func (p *Pager) notify() {
	select {
	case p.updates <- struct{}{}:
	default:
	}
}
