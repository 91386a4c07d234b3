package controllers

import (
	"mime"
	"net/http"
	"strconv"
	"time"
	_ "time/tzdata"
	"weatherd/internal/providers"
	"weatherd/internal/services"
	"weatherd/internal/structures"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type WeatherController struct {
	logger   providers.Logger
	service  services.ScreenStateServiceInterface
	cache    providers.CacheProviderInterface
	location *time.Location
}

type queryRequest struct {
	City string `json:"city" validate:"maxLen:200"`
}

type queryResponse struct {
	Sequence uint64 `json:"sequence"`
}

func NewWeatherController(logger providers.Logger, service services.ScreenStateServiceInterface, cache providers.CacheProviderInterface, conf *structures.Config) *WeatherController {
	loc := time.UTC
	if tz := conf.Display.Timezone; tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			logger.Warnf(providers.TypeApp, "Unknown display timezone %q, using UTC: %s", tz, err)
		} else {
			loc = l
		}
	}
	return &WeatherController{
		logger:   logger,
		service:  service,
		cache:    cache,
		location: loc,
	}
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func decodeQuery(r *http.Request) (queryRequest, error) {
	var payload queryRequest
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return payload, err
		}
		payload.City = r.PostForm.Get("city")
		return payload, nil
	}
	err := json.NewDecoder(r.Body).Decode(&payload)
	return payload, err
}

func (wc *WeatherController) SubmitQuery(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	payload, err := decodeQuery(r)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	v := validate.Struct(&payload)
	if !v.Validate() {
		http.Error(w, v.Errors.One(), http.StatusBadRequest)
		return
	}

	seq := wc.service.SubmitQuery(payload.City)
	wc.logger.Infof(providers.TypePost, "Query #%d submitted for %q", seq, payload.City)

	gson, err := json.Marshal(queryResponse{Sequence: seq})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusAccepted, gson)
}

// GetState renders the current screen state. Published states never change,
// so the rendered body is cached under the state's sequence and phase.
func (wc *WeatherController) GetState(w http.ResponseWriter, r *http.Request) {
	state := wc.service.State()
	cacheKey := "state:" + strconv.FormatUint(state.Sequence, 10) + ":" + state.Phase.String()

	if data, ok := wc.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	gson, err := json.Marshal(renderState(state, wc.location))
	if err != nil {
		wc.logger.Errorf(providers.TypeGet, "Unable to render state #%d: %s", state.Sequence, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	wc.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}
