package release

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, tag string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/kunal/vetta/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `","html_url":"https://example.com/` + tag + `"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck_UpdateAvailable(t *testing.T) {
	server := releaseServer(t, "v2.0.0")
	checker := NewChecker(WithBaseURL(server.URL))

	result, err := checker.Check(context.Background(), "v1.0.0")
	require.NoError(t, err)
	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "v2.0.0", result.LatestVersion)
	assert.Equal(t, "https://example.com/v2.0.0", result.ReleaseURL)
}

func TestCheck_AlreadyLatest(t *testing.T) {
	server := releaseServer(t, "v1.0.0")
	checker := NewChecker(WithBaseURL(server.URL))

	result, err := checker.Check(context.Background(), "v1.0.0")
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestCheck_NewerLocalBuild(t *testing.T) {
	server := releaseServer(t, "v1.0.0")
	checker := NewChecker(WithBaseURL(server.URL))

	result, err := checker.Check(context.Background(), "v1.1.0")
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestCheck_BareVersionAccepted(t *testing.T) {
	server := releaseServer(t, "v2.0.0")
	checker := NewChecker(WithBaseURL(server.URL))

	result, err := checker.Check(context.Background(), "1.0.0")
	require.NoError(t, err)
	assert.True(t, result.UpdateAvailable)
}

func TestCheck_DevBuild(t *testing.T) {
	checker := NewChecker()
	_, err := checker.Check(context.Background(), "(devel)")
	assert.ErrorIs(t, err, ErrDevBuild)
}

func TestCheck_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	checker := NewChecker(WithBaseURL(server.URL))
	_, err := checker.Check(context.Background(), "v1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestCheck_NonSemverTagRejected(t *testing.T) {
	server := releaseServer(t, "nightly")
	checker := NewChecker(WithBaseURL(server.URL))

	_, err := checker.Check(context.Background(), "v1.0.0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not semver")
}
