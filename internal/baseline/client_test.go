package baseline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Laisky/errors/v2"
	"github.com/stretchr/testify/require"

	"github.com/Laisky/baseline-mcp/library/log"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewClient(ts.URL, WithHTTPClient(ts.Client()), WithLogger(log.Logger.Named("test_client")))
	require.NoError(t, err)
	return client, ts
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	client, err := NewClient("  ")
	require.Nil(t, client)
	require.Error(t, err)
}

func TestSearchFeaturesBuildsRequest(t *testing.T) {
	var gotPath, gotQ, gotLimit string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQ = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"name":"CSS Grid"},{"name":"Subgrid"}]}`))
	})

	features, err := client.SearchFeatures(context.Background(), []string{"css", "grid"}, 99)
	require.NoError(t, err)
	require.Equal(t, "/v1/features", gotPath)
	require.Equal(t, "css grid", gotQ)
	require.Equal(t, "20", gotLimit)
	require.Len(t, features, 2)
	require.Equal(t, "CSS Grid", features[0].Name)
	require.Equal(t, "Subgrid", features[1].Name)
}

func TestSearchFeaturesFallsBackToFeaturesKey(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"features":[{"name":"Popover"}]}`))
	})

	features, err := client.SearchFeatures(context.Background(), []string{"popover"}, 10)
	require.NoError(t, err)
	require.Len(t, features, 1)
	require.Equal(t, "Popover", features[0].Name)
}

func TestFetchJSONNon2xx(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.SearchFeatures(context.Background(), []string{"grid"}, 10)
	require.Error(t, err)
	require.True(t, IsUpstream(err))

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	require.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
	require.Contains(t, err.Error(), "502")
}

func TestFetchJSONInvalidBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	})

	_, err := client.SearchFeatures(context.Background(), []string{"grid"}, 10)
	require.Error(t, err)
	require.True(t, IsUpstream(err))
	require.Contains(t, err.Error(), "decode json body")
}

func TestFetchJSONTransportError(t *testing.T) {
	client, ts := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	ts.Close()

	_, err := client.SearchFeatures(context.Background(), []string{"grid"}, 10)
	require.Error(t, err)
	require.True(t, IsUpstream(err))
}

func TestFetchJSONDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.SearchFeatures(context.Background(), []string{"grid"}, 10)
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}
