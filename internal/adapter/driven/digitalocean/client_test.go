package digitalocean_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	doAdapter "github.com/ericfisherdev/chorekit/internal/adapter/driven/digitalocean"
	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// newTestClient creates a Client backed by the given httptest handler.
func newTestClient(t *testing.T, handler http.Handler) (*doAdapter.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := doAdapter.NewClientWithHTTPClient(server.Client(), server.URL+"/")
	require.NoError(t, err)

	return client, server
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

type dropletJSON struct {
	ID     int               `json:"id"`
	Name   string            `json:"name"`
	Memory int               `json:"memory"`
	Vcpus  int               `json:"vcpus"`
	Region map[string]string `json:"region"`
}

func TestListDroplets_FollowsPagination(t *testing.T) {
	var serverURL string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/droplets", func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "", "1":
			writeJSON(t, w, map[string]any{
				"droplets": []dropletJSON{
					{ID: 1, Name: "web-1", Memory: 1024, Vcpus: 1, Region: map[string]string{"slug": "nyc1"}},
				},
				"links": map[string]any{
					"pages": map[string]string{
						"next": serverURL + "/v2/droplets?page=2&per_page=200",
						"last": serverURL + "/v2/droplets?page=2&per_page=200",
					},
				},
				"meta": map[string]int{"total": 2},
			})
		case "2":
			writeJSON(t, w, map[string]any{
				"droplets": []dropletJSON{
					{ID: 2, Name: "db-1", Memory: 4096, Vcpus: 2, Region: map[string]string{"slug": "fra1"}},
				},
				"links": map[string]any{
					"pages": map[string]string{
						"prev":  serverURL + "/v2/droplets?page=1&per_page=200",
						"first": serverURL + "/v2/droplets?page=1&per_page=200",
					},
				},
				"meta": map[string]int{"total": 2},
			})
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	client, server := newTestClient(t, mux)
	serverURL = server.URL

	droplets, err := client.ListDroplets(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Droplet{
		{ID: 1, Name: "web-1", MemoryMB: 1024, VCPUs: 1, Region: "nyc1"},
		{ID: 2, Name: "db-1", MemoryMB: 4096, VCPUs: 2, Region: "fra1"},
	}, droplets)
}

func TestDeleteDroplet(t *testing.T) {
	var deleted string
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /v2/droplets/{id}", func(w http.ResponseWriter, r *http.Request) {
		deleted = r.PathValue("id")
		w.WriteHeader(http.StatusNoContent)
	})

	client, _ := newTestClient(t, mux)

	require.NoError(t, client.DeleteDroplet(context.Background(), 42))
	assert.Equal(t, "42", deleted)
}

func TestDeleteDroplet_NotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /v2/droplets/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"id":"not_found","message":"The resource you were accessing could not be found."}`)
	})

	client, _ := newTestClient(t, mux)

	err := client.DeleteDroplet(context.Background(), 7)

	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrNotFound)
	assert.Contains(t, err.Error(), "delete droplet 7")
}

func TestListProjects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/projects", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"projects": []map[string]any{
				{"id": "p-1", "name": "default", "is_default": true},
				{"id": "p-2", "name": "scratch", "is_default": false},
			},
			"links": map[string]any{},
			"meta":  map[string]int{"total": 2},
		})
	})

	client, _ := newTestClient(t, mux)

	projects, err := client.ListProjects(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []model.Project{
		{ID: "p-1", Name: "default", IsDefault: true},
		{ID: "p-2", Name: "scratch"},
	}, projects)
}

func TestDeleteProject_Conflict(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /v2/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPreconditionFailed)
		fmt.Fprint(w, `{"id":"precondition_failed","message":"cannot delete a project with resources"}`)
	})

	client, _ := newTestClient(t, mux)

	err := client.DeleteProject(context.Background(), "p-2")

	require.Error(t, err)
	assert.NotErrorIs(t, err, driven.ErrNotFound)
	assert.Contains(t, err.Error(), "delete project p-2")
}

func TestFetchBalance_KeepsUnknownFields(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/customers/my/balance", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, map[string]any{
			"month_to_date_balance": "23.44",
			"account_balance":       "12.23",
			"month_to_date_usage":   "11.21",
			"generated_at":          "2019-07-09T15:01:12Z",
			"extra_field":           "kept",
		})
	})

	client, _ := newTestClient(t, mux)

	doc, err := client.FetchBalance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "23.44", doc["month_to_date_balance"])
	assert.Equal(t, "kept", doc["extra_field"])
}

func TestFetchBalance_KeepsNumbersExact(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v2/customers/my/balance", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"month_to_date_balance":"1.00","id":12345678901234567,"ratio":1.10}`)
	})

	client, _ := newTestClient(t, mux)

	doc, err := client.FetchBalance(context.Background())

	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567"), doc["id"])
	assert.Equal(t, json.Number("1.10"), doc["ratio"])
}
