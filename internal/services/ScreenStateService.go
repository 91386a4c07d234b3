package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"weatherd/internal/models"
	"weatherd/internal/providers"

	"golang.org/x/sync/errgroup"
)

const (
	UnknownErrorMessage = "An unknown error occurred"
	EmptyCityMessage    = "city name must not be empty"
)

type ScreenStateServiceInterface interface {
	// SubmitQuery publishes Loading and starts fetching weather for city.
	// It returns the query's sequence number without waiting for the result.
	SubmitQuery(city string) uint64
	State() models.ScreenState
	// Subscribe registers fn to be called with every published state.
	// fn runs while the service holds its publish lock and must not call
	// SubmitQuery.
	Subscribe(fn func(models.ScreenState)) (unsubscribe func())
	Close()
}

type ScreenStateService struct {
	repository WeatherRepositoryInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface

	state atomic.Pointer[models.ScreenState]

	mu           sync.Mutex
	latest       uint64
	cancelLatest context.CancelFunc
	observers    map[uint64]func(models.ScreenState)
	nextObserver uint64
	closed       bool

	root     context.Context
	stopRoot context.CancelFunc
	inflight sync.WaitGroup
}

func (ss *ScreenStateService) SubmitQuery(city string) uint64 {
	ss.mu.Lock()
	if ss.closed {
		ss.mu.Unlock()
		return 0
	}
	if ss.cancelLatest != nil {
		ss.cancelLatest()
	}
	ss.latest++
	seq := ss.latest
	ctx, cancel := context.WithCancel(ss.root)
	ss.cancelLatest = cancel
	ss.publishLocked(models.LoadingState(seq))
	ss.inflight.Add(1)
	ss.mu.Unlock()

	go func() {
		defer ss.inflight.Done()
		defer cancel()
		ss.settle(ss.fetch(ctx, seq, city))
	}()
	return seq
}

func (ss *ScreenStateService) fetch(ctx context.Context, seq uint64, city string) models.ScreenState {
	city = strings.TrimSpace(city)
	if city == "" {
		return models.ErrorState(seq, EmptyCityMessage)
	}

	var (
		current  *models.CurrentWeatherResponse
		forecast *models.ForecastResponse
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = ss.repository.GetCurrentWeather(gctx, city)
		return err
	})
	g.Go(func() error {
		var err error
		forecast, err = ss.repository.GetFiveDayForecast(gctx, city)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.ErrorState(seq, errorMessage(err))
	}

	return models.SuccessState(seq, current, models.AggregateToDaily(forecast.List))
}

func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return UnknownErrorMessage
}

// settle publishes a finished query unless a newer one has been issued.
func (ss *ScreenStateService) settle(state models.ScreenState) {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if state.Sequence != ss.latest {
		ss.metrics.IncStaleResults()
		ss.logger.Debugf(providers.TypeApp, "Discarding %s result of query #%d, latest is #%d", state.Phase, state.Sequence, ss.latest)
		return
	}

	if state.Phase == models.PhaseSuccess {
		ss.metrics.IncQueriesTotal(providers.OutcomeSuccess)
	} else {
		ss.metrics.IncQueriesTotal(providers.OutcomeError)
	}
	ss.publishLocked(state)
}

func (ss *ScreenStateService) publishLocked(state models.ScreenState) {
	ss.state.Store(&state)
	for _, fn := range ss.observers {
		fn(state)
	}
}

func (ss *ScreenStateService) State() models.ScreenState {
	return *ss.state.Load()
}

func (ss *ScreenStateService) Subscribe(fn func(models.ScreenState)) func() {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	id := ss.nextObserver
	ss.nextObserver++
	ss.observers[id] = fn

	return func() {
		ss.mu.Lock()
		defer ss.mu.Unlock()
		delete(ss.observers, id)
	}
}

// Wait blocks until every submitted query has settled. It is not part of
// ScreenStateServiceInterface; Close already waits on shutdown.
func (ss *ScreenStateService) Wait() {
	ss.inflight.Wait()
}

// Close cancels the in-flight query and waits for it to settle. Later
// submissions are ignored.
func (ss *ScreenStateService) Close() {
	ss.mu.Lock()
	ss.closed = true
	ss.stopRoot()
	ss.mu.Unlock()

	ss.inflight.Wait()
}

func NewScreenStateService(repository WeatherRepositoryInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ScreenStateServiceInterface {
	root, stop := context.WithCancel(context.Background())
	ss := &ScreenStateService{
		repository: repository,
		logger:     logger,
		metrics:    metrics,
		observers:  make(map[uint64]func(models.ScreenState)),
		root:       root,
		stopRoot:   stop,
	}
	initial := models.InitialState()
	ss.state.Store(&initial)
	return ss
}
