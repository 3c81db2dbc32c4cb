package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
)

type fixtureItem struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Src      string `json:"src"`
	Title    string `json:"title"`
	Event    string `json:"event"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Featured bool   `json:"featured"`
}

var fixtureItems = []fixtureItem{
	{ID: "fx-1", Type: "image", Src: "https://cdn.example/fx-1.jpg",
		Title: "Fixture Photo One", Event: "Summer Fest", Author: "maya",
		Date: "2026-07-04T20:15:00Z", Featured: true},
	{ID: "fx-2", Type: "image", Src: "https://cdn.example/fx-2.jpg",
		Title: "Fixture Photo Two", Event: "Summer Fest", Author: "raj",
		Date: "2026-07-04T21:02:00Z"},
	{ID: "fx-3", Type: "video", Src: "https://cdn.example/fx-3.mp4",
		Title: "Fixture Clip Three", Event: "Summer Fest", Author: "maya",
		Date: "2026-07-04T22:30:00Z"},
}

// startFixtureAPI serves a deterministic gallery backend: a paged
// envelope over fixtureItems, honoring the search parameter with a
// substring match so the UI search flow can be exercised end to end.
func startFixtureAPI() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/gallery", func(w http.ResponseWriter, r *http.Request) {
		search := strings.ToLower(r.URL.Query().Get("search"))

		matched := make([]fixtureItem, 0, len(fixtureItems))
		for _, it := range fixtureItems {
			if search != "" && !strings.Contains(strings.ToLower(it.Title), search) {
				continue
			}
			matched = append(matched, it)
		}

		size, _ := strconv.Atoi(r.URL.Query().Get("size"))
		if size <= 0 {
			size = 24
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"content":       matched,
			"number":        0,
			"totalPages":    1,
			"totalElements": len(matched),
			"size":          size,
		})
	})
	return httptest.NewServer(mux)
}
