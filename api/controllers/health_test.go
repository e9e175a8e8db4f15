package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ivetta-Luis-Alberto-114588/front-startup/pkg/config"
)

type stubPinger struct {
	err error
}

func (s stubPinger) Ping(context.Context) error {
	return s.err
}

var testConfig = &config.Config{App: config.AppConfig{Env: config.AppEnvDev}}

func TestHealthLive(t *testing.T) {
	resp := httptest.NewRecorder()
	HealthLive(testConfig).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if got := resp.Header().Get(envHeader); got != config.AppEnvDev {
		t.Fatalf("unexpected env header %q", got)
	}
}

func TestHealthReady(t *testing.T) {
	tests := []struct {
		name       string
		store      Pinger
		remote     Pinger
		wantCode   int
		wantStatus string
	}{
		{name: "all healthy", store: stubPinger{}, remote: stubPinger{}, wantCode: http.StatusOK, wantStatus: "ready"},
		{name: "remote down", store: stubPinger{}, remote: stubPinger{err: errors.New("refused")}, wantCode: http.StatusOK, wantStatus: "degraded"},
		{name: "store down", store: stubPinger{err: errors.New("locked")}, remote: stubPinger{}, wantCode: http.StatusServiceUnavailable},
		{name: "store missing", remote: stubPinger{}, wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := httptest.NewRecorder()
			HealthReady(testConfig, nil, tt.store, tt.remote).ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
			if resp.Code != tt.wantCode {
				t.Fatalf("expected %d got %d", tt.wantCode, resp.Code)
			}
			if tt.wantStatus == "" {
				return
			}
			var envelope struct {
				Data struct {
					Status string `json:"status"`
				} `json:"data"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if envelope.Data.Status != tt.wantStatus {
				t.Fatalf("expected status %s got %s", tt.wantStatus, envelope.Data.Status)
			}
		})
	}
}
