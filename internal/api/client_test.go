package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yunhang/cloudnav/internal/models"
)

func TestFetchSnapshotReturnsCloudData(t *testing.T) {
	snap := &models.Snapshot{
		Links:      []models.LinkItem{{ID: "1", Title: "a", URL: "https://a", CategoryID: "common"}},
		Categories: []models.Category{{ID: "common", Name: "常用"}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/storage", r.URL.Path)
		json.NewEncoder(w).Encode(snap)
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).FetchSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snap.Links, got.Links)
}

func TestFetchSnapshotSignalsUseLocalCache(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "empty links array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"links":[],"categories":[]}`))
			},
		},
		{
			name: "empty object",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{}`))
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`not json`))
			},
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			got, err := NewClient(srv.URL).FetchSnapshot(context.Background())
			assert.NoError(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestPushSnapshotSendsTokenHeader(t *testing.T) {
	var gotToken string
	var gotBody models.Snapshot

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get(AuthHeader)
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	snap := &models.Snapshot{Links: []models.LinkItem{{ID: "1", Title: "a", URL: "https://a"}}}
	err := NewClient(srv.URL).PushSnapshot(context.Background(), snap, "t0ken")
	require.NoError(t, err)
	assert.Equal(t, "t0ken", gotToken)
	assert.Equal(t, snap.Links, gotBody.Links)
}

func TestPushSnapshotDistinguishes401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).PushSnapshot(context.Background(), &models.Snapshot{}, "bad")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPushSnapshotGenericFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).PushSnapshot(context.Background(), &models.Snapshot{}, "t")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}
