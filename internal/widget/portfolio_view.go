// Package widget holds PortfolioView, a view that reads the portfolio
// history once per mount and renders it as text.
package widget

import (
	"context"
	"errors"
	"sync"

	"portfoliowidget/internal/domain"
	"portfoliowidget/internal/logger"

	"go.uber.org/zap"
)

var ErrAlreadyMounted = errors.New("portfolio view already mounted")

// HistoryFetcher reads the portfolio history payload. It is called at
// most once per mount.
type HistoryFetcher interface {
	FetchHistory(ctx context.Context) (*domain.PortfolioHistory, error)
}

type Phase int

const (
	Unloaded Phase = iota
	Loaded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// ViewState is everything Render needs. Metrics is nil until a fetch
// succeeds; Err is only set in the Failed phase.
type ViewState struct {
	Phase        Phase
	EquityPoints []domain.HistoryPoint
	Metrics      *domain.Metrics
	Err          error
}

type PortfolioView struct {
	fetcher  HistoryFetcher
	log      *zap.SugaredLogger
	onChange func(ViewState)

	mu        sync.Mutex
	state     ViewState
	mounted   bool
	unmounted bool
	cancel    context.CancelFunc
	done      chan struct{}
}

type Option func(*PortfolioView)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(v *PortfolioView) {
		v.log = log
	}
}

// OnChange registers a callback fired after the state transition has been
// applied. It is never called for a result dropped after Unmount.
func OnChange(fn func(ViewState)) Option {
	return func(v *PortfolioView) {
		v.onChange = fn
	}
}

func NewPortfolioView(fetcher HistoryFetcher, opts ...Option) *PortfolioView {
	v := &PortfolioView{
		fetcher: fetcher,
		log:     logger.Nop(),
		state: ViewState{
			Phase:        Unloaded,
			EquityPoints: []domain.HistoryPoint{},
		},
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Mount starts the one fetch this view will ever make. The fetch runs on
// its own goroutine under a context that Unmount cancels.
func (v *PortfolioView) Mount(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.mounted {
		return ErrAlreadyMounted
	}
	v.mounted = true

	fetchCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel

	if v.unmounted {
		// unmounted before it was ever mounted, nothing to fetch for
		cancel()
		close(v.done)
		return nil
	}

	go v.fetch(fetchCtx)
	return nil
}

func (v *PortfolioView) fetch(ctx context.Context) {
	defer close(v.done)

	history, err := v.fetcher.FetchHistory(ctx)
	v.resolve(history, err)
}

func (v *PortfolioView) resolve(history *domain.PortfolioHistory, err error) {
	v.mu.Lock()
	if v.unmounted {
		v.mu.Unlock()
		v.log.Debugw("dropping portfolio history result after unmount", "error", err)
		return
	}

	if err != nil {
		v.state = ViewState{
			Phase:        Failed,
			EquityPoints: []domain.HistoryPoint{},
			Err:          err,
		}
		v.log.Warnw("portfolio history fetch failed", "error", err)
	} else {
		v.state = loadedState(history)
		v.log.Debugw("portfolio history loaded", "points", len(v.state.EquityPoints))
	}
	state := v.copyState()
	onChange := v.onChange
	v.cancel()
	v.mu.Unlock()

	if onChange != nil {
		onChange(state)
	}
}

// loadedState replaces both fields wholesale, nil parts fall back to the
// same defaults the payload decoder uses
func loadedState(history *domain.PortfolioHistory) ViewState {
	state := ViewState{
		Phase:        Loaded,
		EquityPoints: []domain.HistoryPoint{},
		Metrics:      domain.NewMetrics(),
	}
	if history == nil {
		return state
	}
	if history.Equity != nil {
		state.EquityPoints = history.Equity
	}
	if history.Metrics != nil {
		state.Metrics = history.Metrics
	}
	return state
}

// Unmount cancels an in-flight fetch; anything it resolves to afterwards
// is ignored. Safe to call more than once, and before Mount.
func (v *PortfolioView) Unmount() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.unmounted {
		return
	}
	v.unmounted = true
	if v.cancel != nil {
		v.cancel()
	}
}

// Done is closed once the fetch has settled, whether its result was
// applied or dropped.
func (v *PortfolioView) Done() <-chan struct{} {
	return v.done
}

func (v *PortfolioView) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.copyState()
}

func (v *PortfolioView) copyState() ViewState {
	out := v.state
	out.EquityPoints = append([]domain.HistoryPoint{}, v.state.EquityPoints...)
	out.Metrics = v.state.Metrics.Clone()
	return out
}

func (v *PortfolioView) Render() string {
	return Render(v.State())
}
