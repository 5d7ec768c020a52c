package ops

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"homiio/config"
	domainerrors "homiio/internal/domain/errors"
	"homiio/internal/errors"
	"homiio/internal/infra/metrics"
	"homiio/internal/usecase"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

type stubMigration struct {
	status *usecase.MigrationStatus
	err    error
}

func (s *stubMigration) Migrate(context.Context, *usecase.MigrationOptions) (*usecase.MigrationReport, error) {
	return nil, errors.New("not used")
}

func (s *stubMigration) Status(context.Context) (*usecase.MigrationStatus, error) {
	return s.status, s.err
}

func createTestServer(t *testing.T, migration usecase.MigrationUsecase) (http.Handler, *metrics.Metrics) {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	lc := fxtest.NewLifecycle(t)
	srv := NewServer(ServerParams{
		Lc:        lc,
		Cfg:       cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry:  reg,
		Migration: migration,
	})
	lc.RequireStart()
	t.Cleanup(lc.RequireStop)

	return srv.Handler(), m
}

func get(t *testing.T, h http.Handler, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func TestServer_Health(t *testing.T) {
	h, _ := createTestServer(t, &stubMigration{})

	rec := get(t, h, "/healthz", headerXRequestID, "req-1")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-1", rec.Header().Get(headerXRequestID))
	assert.JSONEq(t, `{"data":{"status":"ok"},"meta":{"request_id":"req-1"}}`, rec.Body.String())
}

func TestServer_MigrationStatus(t *testing.T) {
	h, _ := createTestServer(t, &stubMigration{status: &usecase.MigrationStatus{
		Properties: 10, Embedded: 2, Referenced: 8, Addresses: 5,
	}})

	rec := get(t, h, "/migration/status")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(headerXRequestID))

	var body struct {
		Data usecase.MigrationStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Data.Embedded)
	assert.Equal(t, int64(5), body.Data.Addresses)
	assert.False(t, body.Data.FullyMigrated)
}

func TestServer_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		path     string
		wantCode int
		wantBody string
	}{
		{
			name:     "persistence failure",
			err:      domainerrors.NewDatabaseExecuteError(errors.New("connection refused"), "failed to count"),
			path:     "/migration/status",
			wantCode: http.StatusInternalServerError,
			wantBody: "DATABASE_EXECUTE_FAILED",
		},
		{
			name:     "unknown error is hidden",
			err:      errors.New("boom"),
			path:     "/migration/status",
			wantCode: http.StatusInternalServerError,
			wantBody: "INTERNAL_ERROR",
		},
		{
			name:     "unknown route",
			path:     "/nope",
			wantCode: http.StatusNotFound,
			wantBody: "HTTP_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := createTestServer(t, &stubMigration{err: tt.err})

			rec := get(t, h, tt.path)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotContains(t, rec.Body.String(), "boom")
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	h, m := createTestServer(t, &stubMigration{})
	m.AddMigrationProperties(metrics.OutcomeMigrated, 3)
	m.SetMigrationRemaining(7)

	rec := get(t, h, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `homiio_address_migration_properties_total{outcome="migrated"} 3`)
	assert.Contains(t, rec.Body.String(), "homiio_address_migration_remaining 7")
}
