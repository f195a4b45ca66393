package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobradar/internal/types"
)

func TestHNJobs_ParsesJobRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/jobs", r.URL.Path)
		_, _ = w.Write([]byte(`<html><body><table>
			<tr class="athing"><td>
				<span class="titleline"><a href="https://acme.com/job/1">Acme (YC S23) is hiring backend engineers</a></span>
			</td></tr>
			<tr class="athing"><td>
				<span class="titleline"><a href="item?id=4100">Globex is hiring a platform lead</a></span>
			</td></tr>
			<tr class="athing"><td>
				<span class="titleline"><a href="relative/path">Broken relative link</a></span>
			</td></tr>
		</table></body></html>`))
	}))
	defer srv.Close()

	src := NewHNJobs(testClient(t), srv.URL)
	postings, err := src.Fetch(context.Background(), testProfile())
	require.NoError(t, err)
	require.Len(t, postings, 2)

	first := postings[0]
	assert.Equal(t, types.SourceHNJobs, first.Source)
	assert.Equal(t, "Acme (YC S23) is hiring backend engineers", first.Title)
	assert.Equal(t, "Various (HN)", first.Company)
	assert.Equal(t, "https://acme.com/job/1", first.URL)

	// Discussion-page links resolve against the HN host.
	assert.Equal(t, srv.URL+"/item?id=4100", postings[1].URL)
}

func TestHNJobs_EmptyPage(t *testing.T) {
	page := htmlServer(t, `<html><body><table></table></body></html>`)

	postings, err := NewHNJobs(testClient(t), page.URL).Fetch(context.Background(), testProfile())
	require.NoError(t, err)
	assert.Empty(t, postings)
}

func TestHNJobs_HTTPErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewHNJobs(testClient(t), srv.URL).Fetch(context.Background(), testProfile())
	assert.Error(t, err)
}
