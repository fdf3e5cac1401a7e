package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func newStateServer() *HTTP {
	h := &HTTP{mux: chi.NewRouter()}
	h.mux.Use(h.serverState)
	h.setupHealth()
	h.mux.Get("/v1/spaces", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return h
}

func TestServerStatePhases(t *testing.T) {
	tests := []struct {
		name         string
		state        ServerState
		healthCode   int
		requestsCode int
	}{
		{name: "ready", state: ServerStateReady, healthCode: http.StatusOK, requestsCode: http.StatusOK},
		{name: "grace period drains", state: ServerStateInGracePeriod, healthCode: http.StatusServiceUnavailable, requestsCode: http.StatusOK},
		{name: "cleanup period refuses", state: ServerStateInCleanupPeriod, healthCode: http.StatusServiceUnavailable, requestsCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newStateServer()
			h.setState(tt.state)

			rec := httptest.NewRecorder()
			h.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
			assert.Equal(t, tt.healthCode, rec.Code)

			rec = httptest.NewRecorder()
			h.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/spaces", nil))
			assert.Equal(t, tt.requestsCode, rec.Code)
		})
	}
}

func TestServerStateConcurrentAccess(t *testing.T) {
	h := newStateServer()
	h.setState(ServerStateReady)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		h.setState(ServerStateInGracePeriod)
		h.setState(ServerStateInCleanupPeriod)
	}()

	for range 50 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			h.mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
		}()
	}

	wg.Wait()

	assert.Equal(t, ServerStateInCleanupPeriod, h.State())
}
