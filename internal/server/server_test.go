package server_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/voltwise/internal/config"
	"github.com/rshade/voltwise/internal/server"
)

func testConfig() config.ServerConfig {
	return config.ServerConfig{
		Address:        "127.0.0.1:0",
		AllowedOrigins: []string{"https://app.example"},
		RateLimit:      100,
		RateWindow:     time.Minute,
	}
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type estimateBody struct {
	Greeting string `json:"greeting"`
	Location string `json:"location"`
	Result   struct {
		HousingType      string  `json:"housing_type"`
		DailyEnergyKWh   float64 `json:"daily_energy_kwh"`
		EfficiencyRating string  `json:"efficiency_rating"`
		CO2YearlyKg      float64 `json:"co2_yearly_kg"`
		Breakdown        []struct {
			Label string `json:"label"`
		} `json:"breakdown"`
	} `json:"result"`
	Comparison struct {
		Status string `json:"status"`
	} `json:"comparison"`
	Projection  []struct{ Day int } `json:"projection"`
	Equivalency struct {
		DisplayText string `json:"display_text"`
	} `json:"equivalency"`
	Tips []struct{ Title string } `json:"tips"`
}

func TestEstimate(t *testing.T) {
	h := server.New(testConfig(), zerolog.Nop()).Handler()

	rec := do(t, h, http.MethodPost, "/v1/estimate", `{
		"housing_type": "2BHK",
		"air_conditioner": true,
		"refrigerator": true,
		"washing_machine": true,
		"resident": {"name": "Asha", "age": 34, "city": "Pune", "area": "Baner"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(server.RequestIDHeader))

	var body estimateBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Hello Asha!", body.Greeting)
	assert.Equal(t, "Location: Baner, Pune | Housing: 2BHK Flat", body.Location)
	assert.Equal(t, "2BHK", body.Result.HousingType)
	assert.InDelta(t, 10.8, body.Result.DailyEnergyKWh, 1e-9)
	assert.Equal(t, "Average", body.Result.EfficiencyRating)
	assert.InDelta(t, 3232.44, body.Result.CO2YearlyKg, 1e-6)
	assert.Len(t, body.Result.Breakdown, 4)
	assert.Equal(t, "Above Average", body.Comparison.Status)
	assert.Equal(t, "Offset by ~148 trees for a year, or driving ~16,836 miles", body.Equivalency.DisplayText)
	assert.Empty(t, body.Projection)
	assert.Len(t, body.Tips, 2)
}

func TestEstimate_Projection(t *testing.T) {
	h := server.New(testConfig(), zerolog.Nop()).Handler()

	rec := do(t, h, http.MethodPost, "/v1/estimate?days=30", `{"housing_type":"1bhk"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var body estimateBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Projection, 30)
	assert.Equal(t, 30, body.Projection[29].Day)
	assert.Empty(t, body.Greeting)
}

func TestEstimate_BadRequests(t *testing.T) {
	h := server.New(testConfig(), zerolog.Nop()).Handler()

	tests := []struct {
		name   string
		target string
		body   string
	}{
		{"malformed json", "/v1/estimate", `{"housing_type":`},
		{"unknown housing type", "/v1/estimate", `{"housing_type":"6BHK"}`},
		{"missing housing type", "/v1/estimate", `{"air_conditioner":true}`},
		{"wrong field type", "/v1/estimate", `{"housing_type":"1BHK","refrigerator":"yes"}`},
		{"age out of range", "/v1/estimate", `{"housing_type":"1BHK","resident":{"age":200}}`},
		{"unknown dwelling", "/v1/estimate", `{"housing_type":"1BHK","resident":{"name":"Asha","dwelling":"Castle"}}`},
		{"days zero", "/v1/estimate?days=0", `{"housing_type":"1BHK"}`},
		{"days too large", "/v1/estimate?days=366", `{"housing_type":"1BHK"}`},
		{"days not a number", "/v1/estimate?days=week", `{"housing_type":"1BHK"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodPost, tt.target, tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var apiErr server.APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.Status)
			assert.NotEmpty(t, apiErr.Error)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := server.New(testConfig(), zerolog.Nop()).Handler()

	tests := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodGet, "/v1/estimate", http.StatusMethodNotAllowed},
		{http.MethodPut, "/v1/estimate", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/v1/housing-types", http.StatusMethodNotAllowed},
		{http.MethodPost, "/v1/housing-types/2bhk", http.StatusMethodNotAllowed},
		{http.MethodPost, "/healthz", http.StatusMethodNotAllowed},
		{http.MethodGet, "/v2/estimate", http.StatusNotFound},
		{http.MethodGet, "/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.target, "")
			require.Equal(t, tt.want, rec.Code)
			assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

			var apiErr server.APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
			assert.Equal(t, tt.want, apiErr.Status)
		})
	}
}

func TestHousingTypes(t *testing.T) {
	h := server.New(testConfig(), zerolog.Nop()).Handler()

	rec := do(t, h, http.MethodGet, "/v1/housing-types", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var infos []struct {
		HousingType     string  `json:"housing_type"`
		BaseLoadKWh     float64 `json:"base_load_kwh"`
		RegionalAverage float64 `json:"regional_average_kwh"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &infos))
	require.Len(t, infos, 3)
	assert.Equal(t, "3BHK", infos[2].HousingType)
	assert.InDelta(t, 4.8, infos[2].BaseLoadKWh, 1e-9)
	assert.InDelta(t, 8.5, infos[2].RegionalAverage, 1e-9)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/housing-types/2bhk", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/v1/housing-types/9bhk", "").Code)
}

func TestHealthz(t *testing.T) {
	h := server.New(testConfig(), zerolog.Nop()).Handler()

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 2
	h := server.New(cfg, zerolog.Nop()).Handler()

	for range 2 {
		require.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/housing-types", "").Code)
	}

	rec := do(t, h, http.MethodGet, "/v1/housing-types", "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	var apiErr server.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "rate limit exceeded", apiErr.Error)

	// Health checks are not rate limited.
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "").Code)
}

func TestCORS(t *testing.T) {
	h := server.New(testConfig(), zerolog.Nop()).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/v1/estimate", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServe_GracefulShutdown(t *testing.T) {
	s := server.New(testConfig(), zerolog.Nop())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, getErr := http.Get(url) //nolint:noctx // Test helper.
		if getErr != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(server.ShutdownTimeout):
		t.Fatal("server did not shut down")
	}
}

func TestRun_BadAddress(t *testing.T) {
	cfg := testConfig()
	cfg.Address = "256.0.0.1:bad"
	require.Error(t, server.New(cfg, zerolog.Nop()).Run(context.Background()))
}

func TestRequestIDHeader(t *testing.T) {
	h := server.New(testConfig(), zerolog.Nop()).Handler()

	tests := []struct {
		name     string
		inbound  string
		wantEcho bool
	}{
		{"absent", "", false},
		{"well formed", "client-req_42.a", true},
		{"ulid", "01HZX3K5Q9M2V7W8Y0ABCDEFGH", true},
		{"too long", strings.Repeat("a", 65), false},
		{"spaces", "abc def", false},
		{"log injection", "abc\\nlevel=error", false},
		{"markup", "<script>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			if tt.inbound != "" {
				req.Header.Set(server.RequestIDHeader, tt.inbound)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(server.RequestIDHeader)
			require.NotEmpty(t, got)
			if tt.wantEcho {
				assert.Equal(t, tt.inbound, got)
				return
			}
			assert.NotEqual(t, tt.inbound, got)
			assert.Len(t, got, 26, "replaced with a generated trace ID")
		})
	}
}
