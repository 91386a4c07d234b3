package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
	"weatherd/internal/models"
	"weatherd/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScreenService(repo *testutil.MockRepository) (*ScreenStateService, *testutil.MockMetrics) {
	metrics := &testutil.MockMetrics{}
	ss := NewScreenStateService(repo, &testutil.MockLogger{}, metrics).(*ScreenStateService)
	return ss, metrics
}

// recorder collects every published state.
type recorder struct {
	mu     sync.Mutex
	states []models.ScreenState
}

func (r *recorder) observe(s models.ScreenState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) phases() []models.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Phase, 0, len(r.states))
	for _, s := range r.states {
		out = append(out, s.Phase)
	}
	return out
}

type emptyError struct{}

func (emptyError) Error() string { return "" }

func forecastFor(city string) *models.ForecastResponse {
	return &models.ForecastResponse{List: []models.ForecastSample{
		{Dt: 100, DtTxt: "2024-01-01 00:00:00", Main: models.ForecastMain{TempMax: 10}},
		{Dt: 200, DtTxt: "2024-01-01 03:00:00", Main: models.ForecastMain{TempMax: 15}},
		{Dt: 300, DtTxt: "2024-01-02 00:00:00", Main: models.ForecastMain{TempMax: 8}},
	}}
}

func TestScreenState_StartsInitial(t *testing.T) {
	ss, _ := newScreenService(&testutil.MockRepository{})
	state := ss.State()
	assert.Equal(t, models.PhaseInitial, state.Phase)
	assert.Equal(t, uint64(0), state.Sequence)
}

func TestSubmitQuery_Success(t *testing.T) {
	repo := &testutil.MockRepository{
		CurrentFn: func(_ context.Context, city string) (*models.CurrentWeatherResponse, error) {
			return &models.CurrentWeatherResponse{Name: city, Sys: models.Sys{Country: "GB"}}, nil
		},
		ForecastFn: func(_ context.Context, city string) (*models.ForecastResponse, error) {
			return forecastFor(city), nil
		},
	}
	ss, metrics := newScreenService(repo)
	rec := &recorder{}
	ss.Subscribe(rec.observe)

	seq := ss.SubmitQuery("London")
	ss.Wait()

	assert.Equal(t, uint64(1), seq)
	state := ss.State()
	require.Equal(t, models.PhaseSuccess, state.Phase)
	assert.Equal(t, seq, state.Sequence)
	assert.Equal(t, "London", state.Current.Name)
	require.Len(t, state.Daily, 2)
	assert.Equal(t, 15.0, state.Daily[0].Main.TempMax)
	assert.Equal(t, 8.0, state.Daily[1].Main.TempMax)

	assert.Equal(t, []models.Phase{models.PhaseLoading, models.PhaseSuccess}, rec.phases())
	assert.Equal(t, 1, metrics.QueryCount("success"))
	assert.ElementsMatch(t, []string{"weather:London", "forecast:London"}, repo.Calls)
}

func TestSubmitQuery_PublishesLoadingSynchronously(t *testing.T) {
	release := make(chan struct{})
	repo := &testutil.MockRepository{
		CurrentFn: func(_ context.Context, city string) (*models.CurrentWeatherResponse, error) {
			<-release
			return &models.CurrentWeatherResponse{Name: city}, nil
		},
	}
	ss, _ := newScreenService(repo)

	seq := ss.SubmitQuery("London")

	assert.Equal(t, models.LoadingState(seq), ss.State())
	close(release)
	ss.Wait()
	assert.Equal(t, models.PhaseSuccess, ss.State().Phase)
}

func TestSubmitQuery_ForecastFailureIsError(t *testing.T) {
	repo := &testutil.MockRepository{
		ForecastFn: func(_ context.Context, _ string) (*models.ForecastResponse, error) {
			return nil, errors.New("forecast API returned status 500")
		},
	}
	ss, metrics := newScreenService(repo)

	seq := ss.SubmitQuery("London")
	ss.Wait()

	assert.Equal(t, models.ErrorState(seq, "forecast API returned status 500"), ss.State())
	assert.Equal(t, 1, metrics.QueryCount("error"))
	assert.Equal(t, 0, metrics.QueryCount("success"))
}

func TestSubmitQuery_CurrentFailureCancelsForecast(t *testing.T) {
	forecastCancelled := make(chan struct{})
	repo := &testutil.MockRepository{
		CurrentFn: func(_ context.Context, _ string) (*models.CurrentWeatherResponse, error) {
			return nil, errors.New("weather API returned status 404: city not found")
		},
		ForecastFn: func(ctx context.Context, _ string) (*models.ForecastResponse, error) {
			<-ctx.Done()
			close(forecastCancelled)
			return nil, ctx.Err()
		},
	}
	ss, _ := newScreenService(repo)

	ss.SubmitQuery("Atlantis")
	ss.Wait()

	select {
	case <-forecastCancelled:
	default:
		t.Fatal("forecast fetch was not cancelled")
	}
	state := ss.State()
	assert.Equal(t, models.PhaseError, state.Phase)
	assert.Equal(t, "weather API returned status 404: city not found", state.Message)
}

func TestSubmitQuery_EmptyMessageFallsBack(t *testing.T) {
	repo := &testutil.MockRepository{
		CurrentFn: func(_ context.Context, _ string) (*models.CurrentWeatherResponse, error) {
			return nil, emptyError{}
		},
	}
	ss, _ := newScreenService(repo)

	ss.SubmitQuery("London")
	ss.Wait()

	assert.Equal(t, UnknownErrorMessage, ss.State().Message)
}

func TestSubmitQuery_BlankCity(t *testing.T) {
	for _, city := range []string{"", "   ", "\t\n"} {
		repo := &testutil.MockRepository{}
		ss, _ := newScreenService(repo)
		rec := &recorder{}
		ss.Subscribe(rec.observe)

		seq := ss.SubmitQuery(city)
		ss.Wait()

		assert.Equal(t, models.ErrorState(seq, EmptyCityMessage), ss.State())
		assert.Equal(t, []models.Phase{models.PhaseLoading, models.PhaseError}, rec.phases())
		assert.Equal(t, 0, repo.CallCount())
	}
}

func TestSubmitQuery_TrimsCity(t *testing.T) {
	repo := &testutil.MockRepository{}
	ss, _ := newScreenService(repo)

	ss.SubmitQuery("  Paris ")
	ss.Wait()

	assert.ElementsMatch(t, []string{"weather:Paris", "forecast:Paris"}, repo.Calls)
}

func TestSubmitQuery_LatestQueryWinsWhenOlderFinishesLast(t *testing.T) {
	releaseLondon := make(chan struct{})
	repo := &testutil.MockRepository{
		CurrentFn: func(_ context.Context, city string) (*models.CurrentWeatherResponse, error) {
			if city == "London" {
				<-releaseLondon
			}
			return &models.CurrentWeatherResponse{Name: city}, nil
		},
	}
	ss, metrics := newScreenService(repo)

	parisDone := make(chan struct{})
	ss.Subscribe(func(s models.ScreenState) {
		if s.Phase == models.PhaseSuccess && s.Current.Name == "Paris" {
			close(parisDone)
		}
	})

	london := ss.SubmitQuery("London")
	paris := ss.SubmitQuery("Paris")
	require.Greater(t, paris, london)

	select {
	case <-parisDone:
	case <-time.After(5 * time.Second):
		t.Fatal("Paris query never completed")
	}
	close(releaseLondon)
	ss.Wait()

	state := ss.State()
	require.Equal(t, models.PhaseSuccess, state.Phase)
	assert.Equal(t, "Paris", state.Current.Name)
	assert.Equal(t, paris, state.Sequence)
	assert.Equal(t, 1, metrics.Stale())
}

func TestSubmitQuery_NewQueryCancelsPrevious(t *testing.T) {
	londonCancelled := make(chan struct{})
	repo := &testutil.MockRepository{
		CurrentFn: func(ctx context.Context, city string) (*models.CurrentWeatherResponse, error) {
			if city == "London" {
				<-ctx.Done()
				close(londonCancelled)
				return nil, ctx.Err()
			}
			return &models.CurrentWeatherResponse{Name: city}, nil
		},
	}
	ss, _ := newScreenService(repo)

	ss.SubmitQuery("London")
	ss.SubmitQuery("Paris")
	ss.Wait()

	select {
	case <-londonCancelled:
	default:
		t.Fatal("superseded query was not cancelled")
	}
	assert.Equal(t, "Paris", ss.State().Current.Name)
}

func TestSubmitQuery_SequencesIncrease(t *testing.T) {
	ss, _ := newScreenService(&testutil.MockRepository{})

	var last uint64
	for i := 0; i < 5; i++ {
		seq := ss.SubmitQuery("Rome")
		assert.Greater(t, seq, last)
		last = seq
	}
	ss.Wait()
	assert.Equal(t, last, ss.State().Sequence)
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	ss, _ := newScreenService(&testutil.MockRepository{})
	rec := &recorder{}
	unsubscribe := ss.Subscribe(rec.observe)

	ss.SubmitQuery("Rome")
	ss.Wait()
	unsubscribe()
	ss.SubmitQuery("Milan")
	ss.Wait()

	assert.Equal(t, []models.Phase{models.PhaseLoading, models.PhaseSuccess}, rec.phases())
}

func TestClose_CancelsInFlightAndIgnoresNewQueries(t *testing.T) {
	repo := &testutil.MockRepository{
		CurrentFn: func(ctx context.Context, _ string) (*models.CurrentWeatherResponse, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
	ss, _ := newScreenService(repo)

	ss.SubmitQuery("London")
	ss.Close()

	assert.Equal(t, models.PhaseError, ss.State().Phase)
	assert.Equal(t, uint64(0), ss.SubmitQuery("Paris"))
	assert.Equal(t, uint64(1), ss.State().Sequence)
}

func TestSubmitQuery_ConcurrentCallers(t *testing.T) {
	ss, _ := newScreenService(&testutil.MockRepository{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ss.SubmitQuery("Oslo")
		}()
	}
	wg.Wait()
	ss.Wait()

	state := ss.State()
	assert.Equal(t, models.PhaseSuccess, state.Phase)
	assert.Equal(t, uint64(20), state.Sequence)
}
