package server

import (
	"encoding/json"
	"net/http"

	"glassworks/pkg/domain"
)

// LoginView is the data handed to the renderer for the login page.
type LoginView struct {
	Notices []string `json:"notices,omitempty"`
}

// IndexView is the data handed to the renderer for the workshop page:
// parties and items in insertion order, job cards newest first.
type IndexView struct {
	User     domain.User      `json:"user"`
	Notices  []string         `json:"notices,omitempty"`
	Parties  []domain.Party   `json:"parties"`
	Items    []domain.Item    `json:"items"`
	JobCards []domain.JobCard `json:"jobCards"`
}

// Renderer is the rendering collaborator. The server computes view data
// and hands it over; how pages look is not its concern.
type Renderer interface {
	RenderLogin(w http.ResponseWriter, view LoginView)
	RenderIndex(w http.ResponseWriter, view IndexView)
}

// JSONRenderer writes view data as JSON. An HTML template layer can be
// plugged in through Config.Renderer without touching the handlers.
type JSONRenderer struct{}

func (JSONRenderer) RenderLogin(w http.ResponseWriter, view LoginView) {
	writeJSON(w, view)
}

func (JSONRenderer) RenderIndex(w http.ResponseWriter, view IndexView) {
	writeJSON(w, view)
}

func writeJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(payload)
}
