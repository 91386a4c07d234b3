package testutil

import (
	"context"
	"sync"
	"time"
	"weatherd/internal/models"
	"weatherd/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu     sync.Mutex
	Logs   []LogEntry
	closed int
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
}

// Closed reports how many times Close was called.
func (m *MockLogger) Closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Entries returns a copy of the recorded entries with the given level.
func (m *MockLogger) Entries(level string) []LogEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []LogEntry
	for _, e := range m.Logs {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// MockRepository implements services.WeatherRepositoryInterface with
// injectable behavior.
type MockRepository struct {
	CurrentFn  func(ctx context.Context, city string) (*models.CurrentWeatherResponse, error)
	ForecastFn func(ctx context.Context, city string) (*models.ForecastResponse, error)

	mu    sync.Mutex
	Calls []string
}

func (m *MockRepository) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *MockRepository) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockRepository) GetCurrentWeather(ctx context.Context, city string) (*models.CurrentWeatherResponse, error) {
	m.record("weather:" + city)
	if m.CurrentFn != nil {
		return m.CurrentFn(ctx, city)
	}
	return &models.CurrentWeatherResponse{Name: city}, nil
}

func (m *MockRepository) GetFiveDayForecast(ctx context.Context, city string) (*models.ForecastResponse, error) {
	m.record("forecast:" + city)
	if m.ForecastFn != nil {
		return m.ForecastFn(ctx, city)
	}
	return &models.ForecastResponse{List: []models.ForecastSample{}}, nil
}

// MockScreenStateService implements services.ScreenStateServiceInterface.
type MockScreenStateService struct {
	mu      sync.Mutex
	Current models.ScreenState
	Queries []string
}

func (m *MockScreenStateService) SubmitQuery(city string) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Queries = append(m.Queries, city)
	m.Current = models.LoadingState(uint64(len(m.Queries)))
	return m.Current.Sequence
}

func (m *MockScreenStateService) State() models.ScreenState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Current
}

func (m *MockScreenStateService) Subscribe(_ func(models.ScreenState)) func() { return func() {} }
func (m *MockScreenStateService) Close()                                       {}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// the domain events tests care about.
type MockMetrics struct {
	mu            sync.Mutex
	Queries       map[string]int
	StaleResults  int
	UpstreamCalls map[string]int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) ObserveUpstreamDuration(endpoint string, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.UpstreamCalls == nil {
		m.UpstreamCalls = make(map[string]int)
	}
	m.UpstreamCalls[endpoint+":"+outcome]++
}

func (m *MockMetrics) IncQueriesTotal(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Queries == nil {
		m.Queries = make(map[string]int)
	}
	m.Queries[outcome]++
}

func (m *MockMetrics) IncStaleResults() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StaleResults++
}

func (m *MockMetrics) Stale() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StaleResults
}

func (m *MockMetrics) QueryCount(outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Queries[outcome]
}

func (m *MockMetrics) UpstreamCount(endpoint, outcome string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.UpstreamCalls[endpoint+":"+outcome]
}
