package lookup

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/closet-cli/internal/core/domain"
)

// fakeClock hands timers back to the test instead of sleeping. Running a
// returned command is the same as the timer elapsing.
type fakeClock struct {
	delays []time.Duration
}

func (f *fakeClock) After(d time.Duration, msg tea.Msg) tea.Cmd {
	f.delays = append(f.delays, d)
	return func() tea.Msg { return msg }
}

// fakeService answers from a script and counts calls per query.
type fakeService struct {
	mu      sync.Mutex
	results map[string]domain.SearchResult
	errs    map[string]error
	calls   map[string]int

	// honourCancel makes Lookup return ctx.Err() for cancelled contexts.
	honourCancel bool

	// block, when set, makes Lookup wait for the channel or ctx.
	block chan struct{}
}

func newFakeService() *fakeService {
	return &fakeService{
		results:      make(map[string]domain.SearchResult),
		errs:         make(map[string]error),
		calls:        make(map[string]int),
		honourCancel: true,
	}
}

func (f *fakeService) Lookup(ctx context.Context, query string) (domain.SearchResult, error) {
	f.mu.Lock()
	f.calls[query]++
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return domain.SearchResult{}, ctx.Err()
		}
	}

	if f.honourCancel && ctx.Err() != nil {
		return domain.SearchResult{}, ctx.Err()
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[query]; err != nil {
		return domain.SearchResult{}, err
	}
	if r, ok := f.results[query]; ok {
		return r, nil
	}
	return domain.SearchResult{Tags: []string{}, Items: []string{}, Brands: []string{}}, nil
}

func (f *fakeService) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeService) count(q string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[q]
}

// deliver runs cmd and feeds its message back into the controller,
// returning the follow-up command.
func deliver(c *Controller, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	_, next := c.Update(cmd())
	return next
}

// settle runs a command chain to completion.
func settle(c *Controller, cmd tea.Cmd) {
	for cmd != nil {
		cmd = deliver(c, cmd)
	}
}
