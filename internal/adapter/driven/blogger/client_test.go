package blogger_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/ericfisherdev/chorekit/internal/adapter/driven/blogger"
	"github.com/ericfisherdev/chorekit/internal/domain/model"
)

func TestInsertPost_Draft(t *testing.T) {
	var got map[string]any
	var isDraft, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		isDraft = r.URL.Query().Get("isDraft")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"post-1","url":"https://example.blogspot.com/p1.html","status":"DRAFT"}`)
	}))
	t.Cleanup(server.Close)

	client, err := blogger.NewClient(context.Background(), server.Client(), option.WithEndpoint(server.URL+"/"))
	require.NoError(t, err)

	published, err := client.InsertPost(context.Background(), "blog-9", model.BlogPost{
		Title:   "Sernik",
		Content: "<p>Składniki</p>",
		Draft:   true,
	})

	require.NoError(t, err)
	assert.Contains(t, path, "/blogs/blog-9/posts")
	assert.Equal(t, "true", isDraft)
	assert.Equal(t, "Sernik", got["title"])
	assert.Equal(t, "<p>Składniki</p>", got["content"])
	assert.Equal(t, "DRAFT", got["status"])
	assert.Equal(t, &model.PublishedPost{
		ID:     "post-1",
		URL:    "https://example.blogspot.com/p1.html",
		Status: model.PostStatusDraft,
	}, published)
}

func TestInsertPost_LiveAndError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			assert.Equal(t, "false", r.URL.Query().Get("isDraft"))
			fmt.Fprint(w, `{"id":"post-2"}`)
			return
		}
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"error":{"code":403,"message":"not an author"}}`)
	}))
	t.Cleanup(server.Close)

	client, err := blogger.NewClient(context.Background(), server.Client(), option.WithEndpoint(server.URL+"/"))
	require.NoError(t, err)

	published, err := client.InsertPost(context.Background(), "b", model.BlogPost{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, model.PostStatusLive, published.Status)

	_, err = client.InsertPost(context.Background(), "b", model.BlogPost{Title: "y"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `insert post "y" on blog b`)
}
