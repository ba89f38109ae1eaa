package page

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"githubsearch/logger"
	"githubsearch/models"
)

// ProfileFetcher loads a user's profile and repositories
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, username string) (*models.ProfileResponse, error)
}

// Notifier shows transient, non-blocking messages to the user
type Notifier interface {
	Error(msg string)
}

// Page drives the search page: it owns the State and turns user actions into
// fetches and reducer actions.
type Page struct {
	fetcher         ProfileFetcher
	notifier        Notifier
	defaultUsername string

	mu    sync.Mutex
	state State
	seq   uint64
	subs  []func(State)
}

// DefaultUsername is searched on Mount when New is given no username
const DefaultUsername = "Guna1301"

// New creates a Page. defaultUsername is searched on Mount.
func New(fetcher ProfileFetcher, notifier Notifier, defaultUsername string) *Page {
	if defaultUsername == "" {
		defaultUsername = DefaultUsername
	}
	return &Page{
		fetcher:         fetcher,
		notifier:        notifier,
		defaultUsername: defaultUsername,
		state:           NewState(),
	}
}

// Subscribe registers fn to be called with every new state
func (p *Page) Subscribe(fn func(State)) {
	p.mu.Lock()
	p.subs = append(p.subs, fn)
	p.mu.Unlock()
}

// Snapshot returns the current state
func (p *Page) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Mount runs the initial search for the default username
func (p *Page) Mount(ctx context.Context) State {
	return p.Search(ctx, p.defaultUsername)
}

// Search submits username. The page enters Loading before Search blocks on
// the fetch, so concurrent observers see loading=true immediately. Search
// returns the state after the fetch has been applied.
func (p *Page) Search(ctx context.Context, username string) State {
	seq := p.begin()

	resp, err := p.fetcher.FetchProfile(ctx, username)
	if err != nil {
		logger.Debug("Search failed", zap.String("username", username), zap.Error(err))
		if p.dispatch(SearchFailed{Seq: seq, Err: err}) && p.notifier != nil {
			p.notifier.Error(err.Error())
		}
		return p.Snapshot()
	}

	p.dispatch(SearchSucceeded{Seq: seq, Profile: resp.UserProfile, Repos: resp.Repos})
	return p.Snapshot()
}

// Sort reorders the displayed repositories
func (p *Page) Sort(sortType models.SortType) State {
	p.dispatch(SortSelected{Type: sortType})
	return p.Snapshot()
}

func (p *Page) begin() uint64 {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	next, subs, _ := p.apply(SearchStarted{Seq: seq})
	p.mu.Unlock()

	notify(subs, next)
	return seq
}

// dispatch applies a and reports whether it was accepted
func (p *Page) dispatch(a Action) bool {
	p.mu.Lock()
	next, subs, ok := p.apply(a)
	p.mu.Unlock()

	if ok {
		notify(subs, next)
	}
	return ok
}

// apply must be called with p.mu held
func (p *Page) apply(a Action) (State, []func(State), bool) {
	ok := accepts(p.state, a)
	p.state = Reduce(p.state, a)
	return p.state, slices.Clone(p.subs), ok
}

func notify(subs []func(State), s State) {
	for _, fn := range subs {
		fn(s)
	}
}
