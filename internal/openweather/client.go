package openweather

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
	"weatherd/internal/models"
	"weatherd/internal/openweather/interfaces"
	"weatherd/internal/providers"
	"weatherd/internal/structures"

	json "github.com/goccy/go-json"
)

const (
	EndpointWeather  = "weather"
	EndpointForecast = "forecast"

	maxErrorBodySize = 64 << 10
)

type Client struct {
	baseURL    *url.URL
	apiKey     string
	units      string
	httpClient *http.Client
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (interfaces.ClientInterface, error) {
	base, err := url.Parse(conf.Weather.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid weather base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid weather base URL %q", conf.Weather.BaseURL)
	}

	units := conf.Weather.Units
	if units == "" {
		units = "metric"
	}

	return &Client{
		baseURL: base,
		apiKey:  conf.Weather.APIKey,
		units:   units,
		// No timeout: callers bound requests through their context.
		httpClient: &http.Client{},
		logger:     logger,
		metrics:    metrics,
	}, nil
}

func (c *Client) GetCurrentWeather(ctx context.Context, city string) (*models.CurrentWeatherResponse, error) {
	var out models.CurrentWeatherResponse
	if err := c.get(ctx, EndpointWeather, city, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetFiveDayForecast(ctx context.Context, city string) (*models.ForecastResponse, error) {
	var out models.ForecastResponse
	if err := c.get(ctx, EndpointForecast, city, &out); err != nil {
		return nil, err
	}
	if out.List == nil {
		return nil, &DecodeError{Endpoint: EndpointForecast, Err: errors.New(`missing "list" field`)}
	}
	return &out, nil
}

func (c *Client) requestURL(endpoint, city string) string {
	u := c.baseURL.JoinPath(endpoint)
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", c.units)
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, endpoint, city string, out any) error {
	start := time.Now()
	err := c.do(ctx, endpoint, city, out)

	outcome := providers.OutcomeSuccess
	if err != nil {
		outcome = providers.OutcomeError
		c.logger.Warnf(providers.TypeUpstream, "GET %s q=%q failed after %s: %s", endpoint, city, time.Since(start), err)
	} else {
		c.logger.Debugf(providers.TypeUpstream, "GET %s q=%q ok in %s", endpoint, city, time.Since(start))
	}
	c.metrics.ObserveUpstreamDuration(endpoint, outcome, time.Since(start))
	return err
}

func (c *Client) do(ctx context.Context, endpoint, city string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(endpoint, city), nil)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: stripURL(err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Endpoint: endpoint, Err: stripURL(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HttpStatusError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Message:  providerMessage(resp.Body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}

// stripURL drops the request URL from transport errors; it carries the
// API key in its query string.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}

// providerMessage extracts {"message": "..."} from an error body.
func providerMessage(body io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	if err != nil || len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Message
}
