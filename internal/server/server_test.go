package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal_syncer/internal/domain"
	"deal_syncer/testdata/utils"
)

type fakeSyncer struct {
	mu      sync.Mutex
	gotOpts domain.SyncOptions
	run     *domain.SyncRun
	err     error
	started chan struct{} // closed when Sync begins, if set
	release chan struct{} // Sync blocks on it, if set
	syncCnt int
}

func (f *fakeSyncer) Sync(ctx context.Context, opts domain.SyncOptions) (*domain.SyncRun, error) {
	f.mu.Lock()
	f.gotOpts = opts
	f.syncCnt++
	f.mu.Unlock()

	if f.started != nil {
		close(f.started)
	}
	if f.release != nil {
		<-f.release
	}
	return f.run, f.err
}

func completedRun() *domain.SyncRun {
	startedAt := time.Now().UTC().Add(-42 * time.Second)
	completedAt := startedAt.Add(42 * time.Second)
	return &domain.SyncRun{
		ID:             1,
		StartedAt:      startedAt,
		CompletedAt:    &completedAt,
		Status:         domain.RunStatusCompleted,
		DealsProcessed: 250,
		DealsAdded:     250,
	}
}

func testServer(syncer Syncer) *Server {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(syncer, "cron-secret", logger)
}

func doSync(t *testing.T, srv *Server, target, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHandleSync_Unauthorized(t *testing.T) {
	syncer := &fakeSyncer{run: completedRun()}
	srv := testServer(syncer)

	for _, bearer := range []string{"", "wrong-secret"} {
		rec := doSync(t, srv, "/sync", bearer)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "unauthorized", body["error"])
	}
	assert.Equal(t, 0, syncer.syncCnt)
}

func TestHandleSync_CronSecretAccepted(t *testing.T) {
	syncer := &fakeSyncer{run: completedRun()}
	srv := testServer(syncer)

	rec := doSync(t, srv, "/sync", "cron-secret")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp syncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 250, resp.DealsProcessed)
	assert.Equal(t, 250, resp.DealsAdded)
	assert.InDelta(t, 42.0, resp.DurationSeconds, 0.5)
	assert.Empty(t, resp.Error)
}

func TestHandleSync_SessionAuthAccepted(t *testing.T) {
	syncer := &fakeSyncer{run: completedRun()}
	srv := testServer(syncer).WithSessionAuth(func(r *http.Request) bool {
		return r.Header.Get("X-Session") == "valid"
	})

	req := httptest.NewRequest(http.MethodPost, "/sync", nil)
	req.Header.Set("X-Session", "valid")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleSync_ParsesQueryParams(t *testing.T) {
	syncer := &fakeSyncer{run: completedRun()}
	srv := testServer(syncer)

	rec := doSync(t, srv, "/sync?allDeals=true&clearFirst=true&dryRun=true", "cron-secret")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, domain.SyncOptions{AllDeals: true, ClearFirst: true, DryRun: true}, syncer.gotOpts)
}

func TestHandleSync_DefaultsToIncremental(t *testing.T) {
	syncer := &fakeSyncer{run: completedRun()}
	srv := testServer(syncer)

	rec := doSync(t, srv, "/sync", "cron-secret")
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, domain.SyncOptions{}, syncer.gotOpts)
}

func TestHandleSync_InvalidBoolRejected(t *testing.T) {
	syncer := &fakeSyncer{run: completedRun()}
	srv := testServer(syncer)

	rec := doSync(t, srv, "/sync?dryRun=yes-please", "cron-secret")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "dryRun")
	assert.Equal(t, 0, syncer.syncCnt)
}

func TestHandleSync_FailedRunStillDescribed(t *testing.T) {
	run := completedRun()
	run.Status = domain.RunStatusFailed
	run.DealsProcessed = 120
	run.ErrorCount = 1
	run.ErrorMessage = utils.Ptr("pagination walk: after 3 attempts: remote error: status 500")

	syncer := &fakeSyncer{run: run, err: errors.New("pagination walk: after 3 attempts: remote error: status 500")}
	srv := testServer(syncer)

	rec := doSync(t, srv, "/sync", "cron-secret")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp syncResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "failed", resp.Status)
	assert.Equal(t, 120, resp.DealsProcessed) // partial counts still reported
	assert.Contains(t, resp.Error, "pagination walk")
}

func TestHandleSync_ErrorBeforeRunCreation(t *testing.T) {
	syncer := &fakeSyncer{run: nil, err: errors.New("create sync run: db down")}
	srv := testServer(syncer)

	rec := doSync(t, srv, "/sync", "cron-secret")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "db down")
}

func TestHandleSync_SingleFlight(t *testing.T) {
	syncer := &fakeSyncer{
		run:     completedRun(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	srv := testServer(syncer)

	done := make(chan struct{})
	go func() {
		defer close(done)
		rec := doSync(t, srv, "/sync", "cron-secret")
		assert.Equal(t, http.StatusOK, rec.Code)
	}()

	<-syncer.started
	rec := doSync(t, srv, "/sync", "cron-secret")
	assert.Equal(t, http.StatusConflict, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "sync already running", body["error"])

	close(syncer.release)
	<-done
}

func TestHealthz(t *testing.T) {
	srv := testServer(&fakeSyncer{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleSync_GetRejected(t *testing.T) {
	srv := testServer(&fakeSyncer{run: completedRun()})

	req := httptest.NewRequest(http.MethodGet, "/sync", nil)
	req.Header.Set("Authorization", "Bearer cron-secret")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
