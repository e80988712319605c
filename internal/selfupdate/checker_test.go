package selfupdate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/vatly/vatly/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		tag       string
		wantNewer bool
	}{
		{"newer", "v1.0.0", "v1.1.0", true},
		{"same", "v1.1.0", "v1.1.0", false},
		{"older", "v2.0.0", "v1.1.0", false},
		{"no v prefix", "1.0.0", "v1.0.1", true},
		{"devel", "(devel)", "v9.9.9", false},
		{"invalid tag", "v1.0.0", "latest", false},
		{"prerelease is older than release", "v1.2.0", "v1.2.0-rc.1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := releaseServer(t, http.StatusOK, `{"tag_name":"`+tt.tag+`","html_url":"https://example.com/r"}`)
			checker := NewChecker(WithBaseURL(server.URL))

			res, err := checker.Check(context.Background(), &CheckInput{Version: tt.current})
			require.NoError(t, err)
			assert.Equal(t, tt.wantNewer, res.UpdateAvailable)
			assert.Equal(t, tt.tag, res.LatestVersion)
			assert.Equal(t, "https://example.com/r", res.ReleaseURL)
		})
	}
}

func TestCheck_Errors(t *testing.T) {
	t.Run("http status", func(t *testing.T) {
		server := releaseServer(t, http.StatusInternalServerError, "")
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "HTTP 500")
	})

	t.Run("bad json", func(t *testing.T) {
		server := releaseServer(t, http.StatusOK, "{")
		_, err := NewChecker(WithBaseURL(server.URL)).Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
	})

	t.Run("other repository", func(t *testing.T) {
		server := releaseServer(t, http.StatusOK, `{"tag_name":"v2.0.0"}`)
		checker := NewChecker(WithBaseURL(server.URL), WithRepository("someone", "else"))
		_, err := checker.Check(context.Background(), &CheckInput{Version: "v1.0.0"})
		require.Error(t, err)
	})
}

func TestLatestIfNewer(t *testing.T) {
	server := releaseServer(t, http.StatusOK, `{"tag_name":"v1.3.0"}`)
	checker := NewChecker(WithBaseURL(server.URL))

	assert.Equal(t, "v1.3.0", checker.LatestIfNewer(context.Background(), "v1.2.0"))
	assert.Equal(t, "", checker.LatestIfNewer(context.Background(), "v1.3.0"))

	down := NewChecker(WithBaseURL("http://127.0.0.1:1"))
	assert.Equal(t, "", down.LatestIfNewer(context.Background(), "v1.0.0"))
}
