package lookup

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
	"github.com/custodia-labs/closet-cli/internal/core/ports/driving"
	"github.com/custodia-labs/closet-cli/internal/logger"
)

// Config tunes a Controller.
type Config struct {
	// MinChars is the shortest trimmed query, in runes, that is looked up.
	MinChars int

	// Debounce is the quiet period before a lookup is dispatched.
	Debounce time.Duration

	// CacheSize bounds the result cache. Zero means unbounded.
	CacheSize int

	// Clock schedules debounce timers. Defaults to TeaClock.
	Clock Clock
}

// ConfigFrom builds a Config from persisted lookup settings.
func ConfigFrom(s domain.LookupSettings) Config {
	return Config{
		MinChars:  s.MinChars,
		Debounce:  s.Debounce,
		CacheSize: s.CacheSize,
	}
}

// debounceMsg fires when a debounce timer elapses.
type debounceMsg struct {
	owner string
	gen   uint64
	query string
}

// ResultMsg carries a finished backend lookup back into Update.
type ResultMsg struct {
	owner  string
	epoch  uint64
	seq    uint64
	Query  string
	Result domain.SearchResult
	Err    error
}

// pendingRequest is the single in-flight lookup. prevState and prevResult
// are what was shown before Loading and come back if the request is
// cancelled from outside.
type pendingRequest struct {
	seq    uint64
	query  string
	cancel context.CancelFunc

	prevState  State
	prevResult domain.SearchResult
}

// Controller owns debouncing, caching, cancellation and stale-response
// rejection for one text input.
type Controller struct {
	id      string
	service driving.LookupService
	cfg     Config
	ctx     context.Context

	query  string
	state  State
	result domain.SearchResult
	cache  resultCache

	// gen identifies the live debounce timer; timerLive is false once it
	// has fired or been cleared.
	gen       uint64
	timerLive bool

	seq     uint64
	pending *pendingRequest

	// epoch changes on Close so that messages from before teardown are
	// recognised and dropped.
	epoch  uint64
	closed bool

	issued  int
	version uint64
}

// NewController creates a controller that looks queries up via service.
func NewController(service driving.LookupService, cfg Config) *Controller {
	if cfg.MinChars < 1 {
		cfg.MinChars = domain.DefaultMinChars
	}
	if cfg.Debounce < 0 {
		cfg.Debounce = 0
	}
	if cfg.Clock == nil {
		cfg.Clock = TeaClock{}
	}

	return &Controller{
		id:      uuid.NewString(),
		service: service,
		cfg:     cfg,
		ctx:     context.Background(),
		state:   StateIdle,
		cache:   newCache(cfg.CacheSize),
	}
}

// WithContext sets the parent context for backend requests.
func (c *Controller) WithContext(ctx context.Context) *Controller {
	c.ctx = ctx
	return c
}

// TextChanged records the input's new text. It reports whether the host's
// dropdown should be open and returns the debounce command, if any.
//
// Input shorter than MinChars resets the controller to idle, clears the
// result and releases the timer and any request without touching the
// network.
func (c *Controller) TextChanged(text string) (bool, tea.Cmd) {
	c.query = strings.TrimSpace(text)

	if !c.meetsMinimum(c.query) {
		c.set(StateIdle, domain.SearchResult{})
		c.clearTimer()
		c.cancelPending()
		return false, nil
	}

	return true, c.ScheduleLookup(c.query)
}

// FocusGained re-schedules the current query when it is long enough.
// The normal debounce path is used; a cached query resolves without I/O.
func (c *Controller) FocusGained() tea.Cmd {
	if !c.meetsMinimum(c.query) {
		return nil
	}
	return c.ScheduleLookup(c.query)
}

// ScheduleLookup supersedes any live timer and starts a new one for q.
// Debouncing is trailing-edge only.
func (c *Controller) ScheduleLookup(q string) tea.Cmd {
	if c.closed {
		return nil
	}
	c.gen++
	c.timerLive = true
	return c.cfg.Clock.After(c.cfg.Debounce, debounceMsg{owner: c.id, gen: c.gen, query: q})
}

// Update consumes the controller's own messages. handled is false for
// messages that belong to someone else.
func (c *Controller) Update(msg tea.Msg) (handled bool, cmd tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.owner != c.id {
			return false, nil
		}
		if c.closed || !c.timerLive || msg.gen != c.gen {
			return true, nil
		}
		c.timerLive = false
		return true, c.executeLookup(msg.query)

	case ResultMsg:
		if msg.owner != c.id {
			return false, nil
		}
		if c.closed || msg.epoch != c.epoch {
			return true, nil
		}
		c.complete(msg)
		return true, nil
	}
	return false, nil
}

// executeLookup resolves q from the cache or starts a backend request.
func (c *Controller) executeLookup(q string) tea.Cmd {
	if cached, ok := c.cache.Get(q); ok {
		// Whatever is still in flight belongs to an older query.
		c.cancelPending()
		c.set(StateReady, cached)
		return nil
	}

	prevState, prevResult := c.state, c.result
	if c.pending != nil {
		prevState, prevResult = c.pending.prevState, c.pending.prevResult
	}
	c.cancelPending()
	c.set(StateLoading, domain.SearchResult{})

	if c.service == nil {
		c.set(StateError, domain.EmptyErrored())
		return nil
	}

	ctx, cancel := context.WithCancel(c.ctx)
	c.seq++
	c.pending = &pendingRequest{
		seq:        c.seq,
		query:      q,
		cancel:     cancel,
		prevState:  prevState,
		prevResult: prevResult,
	}
	c.issued++

	owner, epoch, seq, service := c.id, c.epoch, c.seq, c.service
	return func() tea.Msg {
		result, err := service.Lookup(ctx, q)
		if err == nil && ctx.Err() != nil {
			err = ctx.Err()
		}
		return ResultMsg{owner: owner, epoch: epoch, seq: seq, Query: q, Result: result, Err: err}
	}
}

// complete applies a finished request. Only the current pending request
// may change state; a superseded one that was not cancelled only fills the cache.
func (c *Controller) complete(msg ResultMsg) {
	req := c.pending
	current := req != nil && req.seq == msg.seq
	if current {
		req.cancel()
		c.pending = nil
	}

	if errors.Is(msg.Err, context.Canceled) {
		// Loading never outlives its request: a cancelled current request
		// puts back what was shown before it, without an error.
		if current && c.query == msg.Query {
			c.set(req.prevState, req.prevResult)
		}
		return
	}

	if msg.Err == nil {
		c.cache.Add(msg.Query, msg.Result)
	}

	if !current || c.query != msg.Query {
		logger.Debug("lookup %q: stale response dropped", msg.Query)
		return
	}

	if msg.Err != nil {
		logger.Debug("lookup %q failed: %v", msg.Query, msg.Err)
		c.set(StateError, domain.EmptyErrored())
		return
	}

	c.set(StateReady, msg.Result)
}

func (c *Controller) set(state State, result domain.SearchResult) {
	c.state = state
	c.result = result
	c.version++
}

// Close releases the timer and any in-flight request. Messages produced
// before Close are ignored. Close is idempotent.
func (c *Controller) Close() {
	if c.closed {
		return
	}
	c.closed = true
	c.clearTimer()
	c.cancelPending()
	c.epoch++
}

// Reopen makes a closed controller usable again, keeping its cache and
// query. It is a no-op on an open controller.
func (c *Controller) Reopen() {
	c.closed = false
}

func (c *Controller) clearTimer() {
	c.gen++
	c.timerLive = false
}

func (c *Controller) cancelPending() {
	if c.pending == nil {
		return
	}
	c.pending.cancel()
	c.pending = nil
}

func (c *Controller) meetsMinimum(q string) bool {
	return utf8.RuneCountInString(q) >= c.cfg.MinChars
}

// Query returns the last committed, trimmed query.
func (c *Controller) Query() string {
	return c.query
}

// State returns the display state.
func (c *Controller) State() State {
	return c.state
}

// Result returns the result to display. It is only meaningful in
// StateReady and StateError.
func (c *Controller) Result() domain.SearchResult {
	return c.result
}

// Loading reports whether a lookup is in flight for the current query.
func (c *Controller) Loading() bool {
	return c.state == StateLoading
}

// HasPending reports whether a backend request is outstanding.
func (c *Controller) HasPending() bool {
	return c.pending != nil
}

// TimerLive reports whether a debounce timer is waiting to fire.
func (c *Controller) TimerLive() bool {
	return c.timerLive
}

// Closed reports whether Close has been called.
func (c *Controller) Closed() bool {
	return c.closed
}

// CacheLen returns the number of cached results.
func (c *Controller) CacheLen() int {
	return c.cache.Len()
}

// Issued returns how many backend requests the controller has started.
func (c *Controller) Issued() int {
	return c.issued
}

// Version changes every time State or Result is set.
func (c *Controller) Version() uint64 {
	return c.version
}

// MinChars returns the configured minimum query length.
func (c *Controller) MinChars() int {
	return c.cfg.MinChars
}
