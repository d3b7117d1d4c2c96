package github_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	ghadapter "github.com/mutscore/mutscore/internal/adapters/outbound/github"
	"github.com/mutscore/mutscore/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeComment struct {
	ID      int64  `json:"id"`
	Body    string `json:"body"`
	HTMLURL string `json:"html_url"`
}

// fakeGitHub serves the issue comment endpoints of a single pull request,
// two comments per page.
type fakeGitHub struct {
	mu       sync.Mutex
	comments []fakeComment
	nextID   int64
	auth     string
	created  int
	edited   int
}

func (f *fakeGitHub) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/htrs/issues/7/comments", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.auth = r.Header.Get("Authorization")

		switch r.Method {
		case http.MethodGet:
			page := 1
			fmt.Sscanf(r.URL.Query().Get("page"), "%d", &page)
			start, end := (page-1)*2, page*2
			if start > len(f.comments) {
				start = len(f.comments)
			}
			if end > len(f.comments) {
				end = len(f.comments)
			}
			if end < len(f.comments) {
				w.Header().Set("Link", fmt.Sprintf(`<http://%s%s?page=%d>; rel="next"`, r.Host, r.URL.Path, page+1))
			}
			assert.NoError(t, json.NewEncoder(w).Encode(f.comments[start:end]))
		case http.MethodPost:
			var in fakeComment
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			f.nextID++
			f.created++
			c := fakeComment{ID: f.nextID, Body: in.Body, HTMLURL: fmt.Sprintf("https://github.test/acme/htrs/pull/7#issuecomment-%d", f.nextID)}
			f.comments = append(f.comments, c)
			w.WriteHeader(http.StatusCreated)
			assert.NoError(t, json.NewEncoder(w).Encode(c))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/repos/acme/htrs/issues/comments/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.Method != http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var id int64
		fmt.Sscanf(strings.TrimPrefix(r.URL.Path, "/repos/acme/htrs/issues/comments/"), "%d", &id)
		var in fakeComment
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		for i := range f.comments {
			if f.comments[i].ID == id {
				f.edited++
				f.comments[i].Body = in.Body
				assert.NoError(t, json.NewEncoder(w).Encode(f.comments[i]))
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	return mux
}

func newManager(t *testing.T, fake *fakeGitHub) *ghadapter.CommentManager {
	t.Helper()
	srv := httptest.NewServer(fake.handler(t))
	t.Cleanup(srv.Close)

	client, err := ghadapter.NewClient(context.Background(), "s3cret", srv.URL)
	require.NoError(t, err)
	return ghadapter.NewCommentManager(client.Issues, nil)
}

func target() domain.PullRequest {
	return domain.PullRequest{Owner: "acme", Repo: "htrs", Number: 7, Marker: "mutation-score"}
}

func TestCommentManager_CreatesComment(t *testing.T) {
	fake := &fakeGitHub{}
	m := newManager(t, fake)

	posted, err := m.Post(context.Background(), target(), "Caught 90.00% of mutants! 9/10")
	require.NoError(t, err)

	assert.False(t, posted.Updated)
	assert.Equal(t, int64(1), posted.ID)
	assert.Contains(t, posted.URL, "issuecomment-1")
	assert.Equal(t, 1, fake.created)
	require.Len(t, fake.comments, 1)
	assert.True(t, strings.HasPrefix(fake.comments[0].Body, "<!-- mutscore: mutation-score -->\n"))
	assert.Contains(t, fake.comments[0].Body, "Caught 90.00% of mutants! 9/10")
	assert.Equal(t, "Bearer s3cret", fake.auth)
}

func TestCommentManager_UpdatesExistingComment(t *testing.T) {
	fake := &fakeGitHub{
		nextID: 3,
		comments: []fakeComment{
			{ID: 1, Body: "LGTM"},
			{ID: 2, Body: "nit: typo"},
			{ID: 3, Body: "<!-- mutscore: mutation-score -->\nold report"},
		},
	}
	m := newManager(t, fake)

	posted, err := m.Post(context.Background(), target(), "new report")
	require.NoError(t, err)

	assert.True(t, posted.Updated)
	assert.Equal(t, int64(3), posted.ID)
	assert.Equal(t, 0, fake.created)
	assert.Equal(t, 1, fake.edited)
	assert.Contains(t, fake.comments[2].Body, "new report")
	assert.NotContains(t, fake.comments[2].Body, "old report")
}

func TestCommentManager_DifferentMarkerCreatesNew(t *testing.T) {
	fake := &fakeGitHub{
		nextID:   1,
		comments: []fakeComment{{ID: 1, Body: "<!-- mutscore: other-job -->\nreport"}},
	}
	m := newManager(t, fake)

	posted, err := m.Post(context.Background(), target(), "report")
	require.NoError(t, err)
	assert.False(t, posted.Updated)
	assert.Len(t, fake.comments, 2)
}

func TestCommentManager_NoMarkerAlwaysCreates(t *testing.T) {
	fake := &fakeGitHub{}
	m := newManager(t, fake)

	pr := target()
	pr.Marker = ""
	_, err := m.Post(context.Background(), pr, "one")
	require.NoError(t, err)
	_, err = m.Post(context.Background(), pr, "two")
	require.NoError(t, err)

	assert.Equal(t, 2, fake.created)
	assert.Equal(t, "one", fake.comments[0].Body)
}

func TestCommentManager_TruncatesLargeBody(t *testing.T) {
	fake := &fakeGitHub{}
	m := newManager(t, fake)

	body := strings.Repeat("| Branch | 10 | 9 | 1 | 90.00% |\n", 5000)
	_, err := m.Post(context.Background(), target(), body)
	require.NoError(t, err)

	require.Len(t, fake.comments, 1)
	assert.LessOrEqual(t, len(fake.comments[0].Body), ghadapter.MaxCommentSize)
	assert.Contains(t, fake.comments[0].Body, "Comment truncated due to size limits")
}

func TestCommentManager_MissingTarget(t *testing.T) {
	m := ghadapter.NewCommentManager(nil, nil)
	_, err := m.Post(context.Background(), domain.PullRequest{Owner: "acme"}, "body")
	assert.ErrorIs(t, err, domain.ErrNoPullRequest)
}

func TestCommentManager_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"message":"Resource not accessible by integration"}`)
	}))
	t.Cleanup(srv.Close)

	client, err := ghadapter.NewClient(context.Background(), "t", srv.URL)
	require.NoError(t, err)
	m := ghadapter.NewCommentManager(client.Issues, nil)

	_, err = m.Post(context.Background(), target(), "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "searching for existing comment")
}
