package storage

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gordon0907/ark-tribe-log/internal/config"
	"github.com/gordon0907/ark-tribe-log/internal/model"
)

const noSuchKey = `<?xml version="1.0" encoding="UTF-8"?>
<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>`

// fakeO3 serves objects from a map under path-style /<bucket>/<key> URLs.
type fakeO3 struct {
	bucket  string
	objects map[string][]byte
}

func (f *fakeO3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key, ok := strings.CutPrefix(r.URL.Path, "/"+f.bucket+"/")
	if !ok {
		http.Error(w, "wrong bucket", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, noSuchKey)
			return
		}
		_, _ = w.Write(body)
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newFakeClient(t *testing.T, objects map[string][]byte) (*O3Client, *fakeO3) {
	t.Helper()
	fake := &fakeO3{bucket: "saves", objects: objects}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := NewO3Client(&config.O3Config{Endpoint: srv.URL, Bucket: "saves", AccessKey: "a", SecretKey: "b"})
	require.NoError(t, err)
	require.NotNil(t, c)
	return c, fake
}

func TestNewO3ClientUnconfigured(t *testing.T) {
	c, err := NewO3Client(nil)
	assert.NoError(t, err)
	assert.Nil(t, c)

	c, err = NewO3Client(&config.O3Config{Endpoint: "http://localhost:9000"})
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestNilClient(t *testing.T) {
	var c *O3Client
	ctx := context.Background()

	_, err := c.GetObject(ctx, "k")
	assert.ErrorIs(t, err, ErrNotConfigured)
	_, err = c.ExportSnapshot(ctx, &model.Snapshot{})
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.NoError(t, c.EnsureBucket(ctx))
	assert.Empty(t, c.Bucket())
}

func TestSnapshotKey(t *testing.T) {
	id := uuid.MustParse("6f1c2d4e-0000-4000-8000-000000000001")
	at := time.Date(2024, 2, 17, 23, 0, 0, 0, time.FixedZone("X", -3*3600))
	assert.Equal(t, "snapshots/2024/02/18/6f1c2d4e-0000-4000-8000-000000000001.json.gz", SnapshotKey(id, at))
}

func TestGetObject(t *testing.T) {
	c, _ := newFakeClient(t, map[string][]byte{"SavedArks/1167393038.arktribe": []byte("save-bytes")})

	got, err := c.GetObject(context.Background(), "SavedArks/1167393038.arktribe")
	require.NoError(t, err)
	assert.Equal(t, "save-bytes", string(got))

	_, err = c.GetObject(context.Background(), "SavedArks/missing.arktribe")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestExportSnapshot(t *testing.T) {
	c, fake := newFakeClient(t, map[string][]byte{})
	snap := &model.Snapshot{
		ID:        uuid.New(),
		Source:    "file:///SavedArks/1167393038.arktribe",
		LineCount: 1,
		Lines:     json.RawMessage(`[[{"text":"Day 1","color":null}]]`),
		State:     model.SnapshotStateStored,
		CreatedAt: time.Date(2024, 2, 17, 12, 0, 0, 0, time.UTC),
	}

	key, err := c.ExportSnapshot(context.Background(), snap)
	require.NoError(t, err)
	assert.Equal(t, SnapshotKey(snap.ID, snap.CreatedAt), key)

	body, ok := fake.objects[key]
	require.True(t, ok, "object %s not uploaded", key)
	zr, err := gzip.NewReader(strings.NewReader(string(body)))
	require.NoError(t, err)
	var got model.Snapshot
	require.NoError(t, json.NewDecoder(zr).Decode(&got))
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, snap.Source, got.Source)
	assert.JSONEq(t, string(snap.Lines), string(got.Lines))
}
