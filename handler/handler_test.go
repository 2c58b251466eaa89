package handler_test

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"tvtv2xmltv/handler"
	"tvtv2xmltv/model"
	"tvtv2xmltv/route"
	"tvtv2xmltv/service"
)

const handlerLineup = `[
	{"channelNumber":"7.1","stationId":12345,"stationCallSign":"WABC","logo":"/logos/wabc.png"},
	{"channelNumber":"7.2","stationId":"12346","stationCallSign":"WABC2"}
]`

const handlerGrid = `[
	[{"startTime":"2026-08-21T12:00:00Z","runTime":30,"title":"News at Noon","type":"N"}],
	[]
]`

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	route.Register(r)
	return r
}

func performRequest(r http.Handler, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func refreshedConfig(t *testing.T) (*model.GuideConfig, *atomic.Int32) {
	t.Helper()
	var logoHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/channels"):
			w.Write([]byte(handlerLineup))
		case strings.Contains(r.URL.Path, "/grid/"):
			w.Write([]byte(handlerGrid))
		case r.URL.Path == "/logos/wabc.png":
			logoHits.Add(1)
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte("png bytes"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return &model.GuideConfig{
		BaseURL:   srv.URL,
		LineupID:  "USA-TEST1",
		UserAgent: "test-agent/1.0",
		Days:      1,
		Location:  time.FixedZone("EDT", -4*3600),
		Language:  "en",
		Output:    filepath.Join(t.TempDir(), "guide.xml"),
		StreamURL: "http://127.0.0.1:5004/auto/v{channel}",
	}, &logoHits
}

// The before-first-run tests rely on running ahead of any refresh in
// this binary, keep them above the tests that load a lineup.

func TestGuideHandlerBeforeFirstRun(t *testing.T) {
	rec := performRequest(testRouter(), http.MethodGet, "/guide.xml")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, "guide not generated yet", rec.Body.String())
}

func TestM3UHandlerBeforeFirstRun(t *testing.T) {
	rec := performRequest(testRouter(), http.MethodGet, "/lineup.m3u")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTXTHandlerBeforeFirstRun(t *testing.T) {
	rec := performRequest(testRouter(), http.MethodGet, "/lineup.txt")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLogoHandlerBeforeFirstRun(t *testing.T) {
	rec := performRequest(testRouter(), http.MethodGet, "/logo/12345")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestChannelListBeforeFirstRun(t *testing.T) {
	rec := performRequest(testRouter(), http.MethodGet, "/api/channels")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())
}

func TestEndpointsAfterRefresh(t *testing.T) {
	cfg, _ := refreshedConfig(t)
	handler.UseConfig(cfg)
	_, err := service.RefreshGuide(cfg)
	require.NoError(t, err)
	router := testRouter()

	written, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)

	rec := performRequest(router, http.MethodGet, "/guide.xml")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/xml; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Equal(t, written, rec.Body.Bytes())

	rec = performRequest(router, http.MethodGet, "/guide.xml.gz")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/gzip", rec.Header().Get("Content-Type"))
	zr, err := gzip.NewReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	unzipped, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.Equal(t, written, unzipped)

	rec = performRequest(router, http.MethodGet, "/lineup.m3u")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, strings.HasPrefix(rec.Body.String(), "#EXTM3U"))

	rec = performRequest(router, http.MethodGet, "/lineup.txt")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "#genre#")

	rec = performRequest(router, http.MethodGet, "/api/channels")
	require.Equal(t, http.StatusOK, rec.Code)
	var channels []handler.Channel
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &channels))
	require.Len(t, channels, 2)
	require.Equal(t, "7.1", channels[0].Number)
	require.Equal(t, "WABC", channels[0].CallSign)
	require.Equal(t, "/logo/12345", channels[0].Logo)
	require.Equal(t, "http://127.0.0.1:5004/auto/v7.1", channels[0].Stream)
	require.Empty(t, channels[1].Logo)

	rec = performRequest(router, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)
	var status handler.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.False(t, status.Refreshing)
	require.Equal(t, service.Ok, status.Stages["lineup"].Status)
	require.Equal(t, service.Ok, status.Stages["day 1"].Status)
	require.Equal(t, cfg.Output, status.Stages["output"].Message)
}

func TestLogoHandlerFetchesUpstreamOnce(t *testing.T) {
	cfg, logoHits := refreshedConfig(t)
	handler.UseConfig(cfg)
	_, err := service.RefreshGuide(cfg)
	require.NoError(t, err)
	router := testRouter()

	rec := performRequest(router, http.MethodGet, "/logo/12345")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Equal(t, "png bytes", rec.Body.String())

	// The second hit is served from the cache.
	rec = performRequest(router, http.MethodGet, "/logo/12345")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "png bytes", rec.Body.String())
	require.Equal(t, int32(1), logoHits.Load())
}

func TestLogoHandlerUnknownStation(t *testing.T) {
	cfg, _ := refreshedConfig(t)
	handler.UseConfig(cfg)
	_, err := service.RefreshGuide(cfg)
	require.NoError(t, err)

	rec := performRequest(testRouter(), http.MethodGet, "/logo/99999")
	require.Equal(t, http.StatusNotFound, rec.Code)

	// Station 12346 exists but carries no logo.
	rec = performRequest(testRouter(), http.MethodGet, "/logo/12346")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRefreshHandlerAccepted(t *testing.T) {
	cfg, _ := refreshedConfig(t)
	handler.UseConfig(cfg)

	rec := performRequest(testRouter(), http.MethodPost, "/api/refresh")
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.JSONEq(t, `{"refreshing":true}`, rec.Body.String())

	// The output file only appears after the refresh flag went up, so
	// flag down plus file present means the background run finished.
	require.Eventually(t, func() bool {
		if service.Refreshing() {
			return false
		}
		_, err := os.Stat(cfg.Output)
		return err == nil
	}, 5*time.Second, 5*time.Millisecond)
}

func TestRefreshHandlerBusy(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(unblock)

	cfg := &model.GuideConfig{
		BaseURL:   srv.URL,
		LineupID:  "USA-TEST1",
		UserAgent: "test-agent/1.0",
		Days:      1,
		Location:  time.UTC,
		Language:  "en",
		Output:    filepath.Join(t.TempDir(), "guide.xml"),
	}
	handler.UseConfig(cfg)
	router := testRouter()

	rec := performRequest(router, http.MethodPost, "/api/refresh")
	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Eventually(t, service.Refreshing, time.Second, 5*time.Millisecond)

	// While the first refresh hangs on the lineup fetch, further
	// requests are turned away.
	rec = performRequest(router, http.MethodPost, "/api/refresh")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"refreshing":true}`, rec.Body.String())

	unblock()
	require.Eventually(t, func() bool { return !service.Refreshing() }, 5*time.Second, 5*time.Millisecond)
}
