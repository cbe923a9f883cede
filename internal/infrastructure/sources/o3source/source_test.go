package o3source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gordon0907/ark-tribe-log/internal/infrastructure/sources"
)

func TestO3Source_ReadsObject(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/ark-saves/SavedArks/1167393038.arktribe" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("tribe"))
	}))
	defer srv.Close()

	reg := sources.NewRegistry()
	reg.Register(&Factory{})

	src, err := reg.Open(sources.SourceSpec{Type: "o3", Config: sources.Config{
		"endpoint": srv.URL,
		"bucket":   "ark-saves",
		"key":      "SavedArks/1167393038.arktribe",
	}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if src.Describe() != "o3://ark-saves/SavedArks/1167393038.arktribe" {
		t.Fatalf("unexpected description %q", src.Describe())
	}
	got, err := src.Read(context.Background())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "tribe" {
		t.Fatalf("expected tribe, got %q", got)
	}
}

func TestO3Source_RequiresKey(t *testing.T) {
	reg := sources.NewRegistry()
	reg.Register(&Factory{})

	_, err := reg.Open(sources.SourceSpec{Type: "o3", Config: sources.Config{"endpoint": "http://localhost:9000", "bucket": "b"}})
	if err == nil {
		t.Fatalf("expected error for missing key")
	}
}
