package user

import (
	"encoding/json"
	"net/http"
	"strings"
)

type Repo interface {
	Get() (State, error)
	Put(State) error
}

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// /api/user
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s, err := h.repo.Get()
		if err != nil {
			writeJSON(w, 500, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, 200, s)
		return

	case http.MethodPut:
		// Only the display name is editable; progression numbers move
		// exclusively through the engine.
		var in struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, 400, map[string]any{"error": "bad json"})
			return
		}
		if strings.TrimSpace(in.Username) == "" {
			writeJSON(w, 400, map[string]any{"error": "username is required"})
			return
		}
		s, err := h.repo.Get()
		if err != nil {
			writeJSON(w, 500, map[string]any{"error": err.Error()})
			return
		}
		s.Username = in.Username
		if err := h.repo.Put(s); err != nil {
			writeJSON(w, 500, map[string]any{"error": err.Error()})
			return
		}
		writeJSON(w, 200, s)
		return

	default:
		writeJSON(w, 405, map[string]any{"error": "method not allowed"})
		return
	}
}
