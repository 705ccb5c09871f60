package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/padelcoach/padelcoach/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(serverUrl string) *Client {
	return NewClient(config.Content{
		BaseUrl:     serverUrl,
		SpaceId:     "space-1",
		Environment: "master",
		AccessToken: "token-1",
	})
}

func TestClient_ListAllModules(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spaces/space-1/environments/master/entries", r.URL.Path)
		assert.Equal(t, "module", r.URL.Query().Get("content_type"))
		assert.Equal(t, "token-1", r.URL.Query().Get("access_token"))

		response := map[string]any{
			"total": 2,
			"skip":  0,
			"limit": 1000,
			"items": []map[string]any{
				{
					"sys": map[string]any{"id": "mod-1"},
					"fields": map[string]any{
						"title":       "Bandeja basics",
						"description": "Defensive overhead fundamentals",
						"level":       "Beginner",
						"duration":    45,
						"topics":      []string{"bandeja", "positioning"},
						"content":     "Long form text",
						"presentation": map[string]any{
							"sys": map[string]any{"id": "asset-1"},
						},
					},
				},
				{
					"sys": map[string]any{"id": "mod-2"},
					"fields": map[string]any{
						"title": "Advanced smash",
						"level": "Advanced",
						"document": map[string]any{
							"sys": map[string]any{"id": "asset-missing"},
						},
					},
				},
			},
			"includes": map[string]any{
				"Asset": []map[string]any{
					{
						"sys": map[string]any{"id": "asset-1"},
						"fields": map[string]any{
							"title": "Bandeja slides",
							"file": map[string]any{
								"url":         "//assets.example.com/bandeja.pdf",
								"fileName":    "bandeja.pdf",
								"contentType": "application/pdf",
							},
						},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	modules, err := client.ListAllModules(context.Background())

	require.NoError(t, err)
	require.Len(t, modules, 2)

	assert.Equal(t, "mod-1", modules[0].ExternalId)
	assert.Equal(t, "Bandeja basics", modules[0].Title)
	assert.Equal(t, Beginner, modules[0].Level)
	assert.Equal(t, 45, modules[0].DurationMinutes)
	assert.Equal(t, []string{"bandeja", "positioning"}, modules[0].Topics)
	require.NotNil(t, modules[0].Presentation)
	assert.Equal(t, "Bandeja slides", modules[0].Presentation.Title)
	assert.Equal(t, "//assets.example.com/bandeja.pdf", modules[0].Presentation.Url)
	assert.Nil(t, modules[0].Document)

	// link to an asset missing from includes resolves to nil
	assert.Equal(t, "mod-2", modules[1].ExternalId)
	assert.Nil(t, modules[1].Document)
}

func TestClient_ListAllExercises(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "exercise", r.URL.Query().Get("content_type"))

		response := map[string]any{
			"total": 1,
			"skip":  0,
			"limit": 1000,
			"items": []map[string]any{
				{
					"sys": map[string]any{"id": "ex-1"},
					"fields": map[string]any{
						"title":       "Wall volleys",
						"description": "Quick hands drill",
						"media": map[string]any{
							"sys": map[string]any{"id": "asset-video"},
						},
					},
				},
			},
			"includes": map[string]any{
				"Asset": []map[string]any{
					{
						"sys": map[string]any{"id": "asset-video"},
						"fields": map[string]any{
							"title": "Wall volleys demo",
							"file": map[string]any{
								"url":         "//assets.example.com/volleys.mp4",
								"fileName":    "volleys.mp4",
								"contentType": "video/mp4",
							},
						},
					},
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	exercises, err := client.ListAllExercises(context.Background())

	require.NoError(t, err)
	require.Len(t, exercises, 1)
	assert.Equal(t, "ex-1", exercises[0].ExternalId)
	assert.Equal(t, "Wall volleys", exercises[0].Title)
	require.NotNil(t, exercises[0].Media)
	assert.Equal(t, "video/mp4", exercises[0].Media.ContentType)
}

func TestClient_PagesThroughAllEntries(t *testing.T) {
	total := 3
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))

		// serve one entry per page to force paging
		var items []map[string]any
		if skip < total {
			items = append(items, map[string]any{
				"sys":    map[string]any{"id": fmt.Sprintf("mod-%d", skip+1)},
				"fields": map[string]any{"title": fmt.Sprintf("Module %d", skip+1)},
			})
		}
		response := map[string]any{
			"total": total,
			"skip":  skip,
			"limit": 1,
			"items": items,
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(response))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	modules, err := client.ListAllModules(context.Background())

	require.NoError(t, err)
	require.Len(t, modules, 3)
	assert.Equal(t, "mod-1", modules[0].ExternalId)
	assert.Equal(t, "mod-3", modules[2].ExternalId)
}

func TestClient_ReturnsErrorOnNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.ListAllModules(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
