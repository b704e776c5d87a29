package gw2api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		BaseURL:        server.URL,
		UnlocksURL:     server.URL + "/unlocks",
		IconCDNURL:     "https://icons.example.com",
		TimeoutSeconds: 5,
	})
}

func TestEntities_FetchesAllLanguages(t *testing.T) {
	var langs []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/items", r.URL.Path)
		assert.Equal(t, "100,101", r.URL.Query().Get("ids"))
		lang := r.URL.Query().Get("lang")
		langs = append(langs, lang)

		fmt.Fprintf(w, `[
			{"id": 100, "name": "Sword (%s)", "icon": "https://render.example.com/file/SIG/1.png"},
			{"id": 101, "name": "Axe (%s)", "icon": ""}
		]`, lang, lang)
	})

	entities, problems, err := client.Entities(context.Background(), "/v2/items", []int{100, 101})
	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.ElementsMatch(t, []string{"de", "en", "es", "fr"}, langs)

	require.Len(t, entities, 2)
	require.Len(t, entities[100], len(Languages))
	assert.Equal(t, "Sword (en)", entities[100][LanguageEn].Name)
	assert.Equal(t, "Sword (fr)", entities[100][LanguageFr].Name)
	assert.JSONEq(t,
		`{"id": 100, "name": "Sword (de)", "icon": "https://render.example.com/file/SIG/1.png"}`,
		string(entities[100][LanguageDe].Raw))
}

func TestEntities_OmittedIDsAreNotAnError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 100, "name": "Sword"}]`)
	})

	entities, problems, err := client.Entities(context.Background(), "/v2/items", []int{100, 999})
	require.NoError(t, err)
	assert.Empty(t, problems)
	assert.Len(t, entities, 1)
	assert.NotContains(t, entities, 999)
}

func TestEntities_MalformedElementIsIsolated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"id": 100, "name": "Sword"},
			{"id": 101, "name": 12345}
		]`)
	})

	entities, problems, err := client.Entities(context.Background(), "/v2/items", []int{100, 101})
	require.NoError(t, err)
	assert.Len(t, entities, 1)
	assert.Contains(t, entities, 100)
	assert.Contains(t, problems, 101)
}

func TestEntities_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, _, err := client.Entities(context.Background(), "/v2/items", []int{100})
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestEntities_EmptyIDList(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an empty id list")
	})

	entities, problems, err := client.Entities(context.Background(), "/v2/items", nil)
	require.NoError(t, err)
	assert.Empty(t, entities)
	assert.Empty(t, problems)
}

func TestEntityIDs(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/items", r.URL.Path)
		fmt.Fprint(w, `[1, 2, 3]`)
	})

	ids, err := client.EntityIDs(context.Background(), "/v2/items")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, ids)
}

func TestBuild(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/build", r.URL.Path)
		fmt.Fprint(w, `{"id": 115267}`)
	})

	id, err := client.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 115267, id)
}

func TestUnlocks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/unlocks", r.URL.Path)
		assert.Equal(t, "skins", r.URL.Query().Get("id"))
		fmt.Fprint(w, `{"total": 1000, "updatedAt": "2026-08-28T00:00:00Z", "data": {"5": 100, "7": 0}}`)
	})

	stats, err := client.Unlocks(context.Background(), "skins")
	require.NoError(t, err)
	assert.Equal(t, 1000, stats.Total)
	assert.Equal(t, 100, stats.Data["5"])
}

func TestUnlocks_RejectsMissingTotal(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data": {"5": 100}}`)
	})

	_, err := client.Unlocks(context.Background(), "skins")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestIconURL(t *testing.T) {
	client := NewClient(Config{IconCDNURL: "https://icons.example.com"})
	assert.Equal(t, "https://icons.example.com/SIG/42-64px.png", client.IconURL("SIG", 42, 64))
}
