package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodiesEqualIgnoresTimestamps(t *testing.T) {
	a := []byte(`[{"id": 1, "first_name": "Ana", "created_at": "2026-10-17", "updated_at": "2026-10-17"}]`)
	b := []byte(`[{"updated_at": "2026-10-18", "id": 1.0, "first_name": "Ana", "created_at": "2026-10-18"}]`)
	assert.True(t, bodiesEqual(a, b, ignoreSet(nil)))
	assert.False(t, bodiesEqual(a, b, nil))

	c := []byte(`[{"id": 1, "first_name": "Aida"}]`)
	assert.False(t, bodiesEqual(a, c, ignoreSet(nil)))
	assert.False(t, bodiesEqual([]byte("not json"), c, nil))
	assert.True(t, bodiesEqual([]byte("ok\n"), []byte("ok"), nil))
}

func TestCompareRunsBothSides(t *testing.T) {
	tracker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard", r.URL.Path)
		_, _ = w.Write([]byte(`{"total_seniors": 2, "generated_at": "2026-10-17T09:00:00Z"}`))
	}))
	defer tracker.Close()
	legacy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total_seniors": 2}`))
	}))
	defer legacy.Close()

	cmp := &comparer{client: http.DefaultClient, trackerBase: tracker.URL, legacyBase: legacy.URL, ignored: ignoreSet(nil)}
	res := cmp.compare(context.Background(), target{Path: "api/dashboard"})
	require.NoError(t, res.Err)
	assert.True(t, res.StatusMatch)
	assert.True(t, res.BodyMatch)
	assert.Equal(t, "OK", res.verdict())

	cmp.trackerBase = "http://127.0.0.1:1"
	res = cmp.compare(context.Background(), target{Path: "/api"})
	assert.Error(t, res.Err)
	assert.Equal(t, "ERROR", res.verdict())
}

func TestLoadTargetsAndReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "targets.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ignore": ["id"], "targets": [{"path": "/api/seniors", "critical": true}]}`), 0o600))

	file, err := loadTargets(path)
	require.NoError(t, err)
	assert.Len(t, file.Targets, 1)
	assert.Contains(t, ignoreSet(file.Ignore), "id")
	assert.Contains(t, ignoreSet(file.Ignore), "created_at")

	require.NoError(t, os.WriteFile(path, []byte(`{"targets": []}`), 0o600))
	_, err = loadTargets(path)
	assert.Error(t, err)

	var buf bytes.Buffer
	printReport(&buf, []comparison{{Target: file.Targets[0], StatusMatch: true, BodyMatch: false}})
	assert.Contains(t, buf.String(), "DIFF")
	assert.Contains(t, buf.String(), "/api/seniors")
}
