package dailygammon

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mboeker/gammonsync/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(server *httptest.Server) *HTTPClient {
	return &HTTPClient{
		httpClient: server.Client(),
		BaseURL:    server.URL,
		login:      "12345",
		password:   "secret",
	}
}

func TestLogin(t *testing.T) {
	t.Run("posts the credential form", func(t *testing.T) {
		var gotLogin, gotPassword, gotSave string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/bg/login", r.URL.Path)
			require.NoError(t, r.ParseForm())
			gotLogin = r.PostFormValue("login")
			gotPassword = r.PostFormValue("password")
			gotSave = r.PostFormValue("save")
		}))
		defer server.Close()

		client := newTestClient(server)
		err := client.Login(context.Background())

		require.NoError(t, err)
		assert.Equal(t, "12345", gotLogin)
		assert.Equal(t, "secret", gotPassword)
		assert.Equal(t, "1", gotSave)
	})

	t.Run("non-OK status fails", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		err := newTestClient(server).Login(context.Background())
		assert.Error(t, err)
	})
}

func TestFetchMatchPage(t *testing.T) {
	t.Run("returns the page body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/bg/game/4528964/0/list", r.URL.Path)
			fmt.Fprint(w, matchPageHTML)
		}))
		defer server.Close()

		body, err := newTestClient(server).FetchMatchPage(context.Background(), 4528964)

		require.NoError(t, err)
		assert.Contains(t, body, "Alice : 5")
	})

	t.Run("login page means the session is invalid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html><body>Please Login</body></html>")
		}))
		defer server.Close()

		_, err := newTestClient(server).FetchMatchPage(context.Background(), 1)
		assert.ErrorIs(t, err, ErrNotLoggedIn)
	})

	t.Run("non-OK status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newTestClient(server).FetchMatchPage(context.Background(), 1)
		assert.Error(t, err)
	})
}

func TestListSeasonMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bg/user/31672", r.URL.Path)
		fmt.Fprint(w, userPageHTML)
	}))
	defer server.Close()

	matches, err := newTestClient(server).ListSeasonMatches(context.Background(), "31672", "34th-season-4d")

	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "hof19", matches[0].Opponent)
	assert.Equal(t, league.MatchID(4528964), matches[0].MatchID)
}

func TestFetchExport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bg/export/4528964", r.URL.Path)
		fmt.Fprint(w, " Game 7\n  4) Wins 2 points and the match.\n")
	}))
	defer server.Close()

	lines, err := newTestClient(server).FetchExport(context.Background(), 4528964)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Equal(t, " Game 7", lines[0])

	winner, ok := DecideWinner(lines, "Alice", "Bob")
	require.True(t, ok)
	assert.Equal(t, "Alice", winner)
}
