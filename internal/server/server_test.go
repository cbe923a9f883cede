package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gordon0907/ark-tribe-log/internal/config"
	tlt "github.com/gordon0907/ark-tribe-log/internal/tribelog/tribelogtest"
)

func testConfig(t *testing.T, data []byte) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "1167393038.arktribe")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write save: %v", err)
	}
	cfg := config.Default()
	cfg.Source.Path = path
	cfg.Server.IconPath = ""
	return cfg
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestServer_Routes(t *testing.T) {
	cfg := testConfig(t, tlt.Lines("Day 1: hello", "Day 2: world").Bytes())
	s, err := New(cfg, zerolog.New(io.Discard), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	rec := get(t, s, "/api/tribelog")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"count":2`) {
		t.Fatalf("tribelog: %d %s", rec.Code, rec.Body.String())
	}
	if strings.Index(rec.Body.String(), "Day 2") > strings.Index(rec.Body.String(), "Day 1") {
		t.Fatalf("expected newest first: %s", rec.Body.String())
	}

	rec = get(t, s, "/")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "<title>ARK Tribe Log</title>") {
		t.Fatalf("page: %d %s", rec.Code, rec.Body.String())
	}

	rec = get(t, s, "/healthz")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"snapshots":false`) {
		t.Fatalf("healthz: %d %s", rec.Code, rec.Body.String())
	}

	rec = get(t, s, "/api/snapshots")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("snapshots without database: expected 503, got %d", rec.Code)
	}

	rec = get(t, s, "/metrics")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "tribelog_decode_total") {
		t.Fatalf("metrics: %d", rec.Code)
	}

	rec = get(t, s, "/sources/types")
	if !strings.Contains(rec.Body.String(), `"file"`) {
		t.Fatalf("sources: %s", rec.Body.String())
	}
}

func TestServer_LenientConfig(t *testing.T) {
	file := tlt.Lines("a", "b")
	file.Declared = 3
	cfg := testConfig(t, file.Bytes())

	s, err := New(cfg, zerolog.New(io.Discard), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if rec := get(t, s, "/api/tribelog"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("strict: expected 500, got %d", rec.Code)
	}

	cfg.Decoder.StrictCount = false
	s, err = New(cfg, zerolog.New(io.Discard), nil)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	if rec := get(t, s, "/api/tribelog"); rec.Code != http.StatusOK {
		t.Fatalf("lenient: expected 200, got %d", rec.Code)
	}
}

func TestSourceSpec(t *testing.T) {
	cfg := config.Default()
	cfg.Source = config.SourceConfig{Type: "o3", Key: "SavedArks/1167393038.arktribe"}
	cfg.Storage = &config.StorageConfig{O3: &config.O3Config{Endpoint: "http://minio:9000", Bucket: "ark"}}

	spec := SourceSpec(cfg)
	if spec.Type != "o3" || spec.Config.String("bucket") != "ark" || spec.Config.String("key") != "SavedArks/1167393038.arktribe" {
		t.Fatalf("unexpected spec %+v", spec)
	}

	cfg.Source = config.SourceConfig{Type: "file", Path: "/tmp/x"}
	if got := SourceSpec(cfg).Config.String("path"); got != "/tmp/x" {
		t.Fatalf("unexpected path %q", got)
	}
}
