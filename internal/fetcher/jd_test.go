package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<!doctype html>
<html>
<head><title>Acme Careers</title><script>var tracking = 1;</script></head>
<body>
<nav>Home | Jobs</nav>
<h1>Senior Backend Engineer</h1>
<p>We build payment infrastructure in Go.</p>
<ul><li>5+ years of experience</li><li>Strong SQL skills</li></ul>
<footer>© Acme</footer>
</body>
</html>`

func TestFetchJobPosting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(postingHTML))
	}))
	defer srv.Close()

	posting, err := NewFetcher().FetchJobPosting(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Senior Backend Engineer", posting.Title)
	assert.Contains(t, posting.Description, "payment infrastructure in Go")
	assert.Contains(t, posting.Description, "Strong SQL skills")
	assert.NotContains(t, posting.Description, "tracking")
	assert.NotContains(t, posting.Description, "© Acme")
}

func TestFetchJobPostingErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewFetcher().FetchJobPosting(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestFetchJobPostingRejectsBadScheme(t *testing.T) {
	_, err := NewFetcher().FetchJobPosting(context.Background(), "ftp://example.com/job")
	require.Error(t, err)
}
