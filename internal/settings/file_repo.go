package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// View is the persisted top-level view selector. Not a progression
// concern, but it shares the persistence boundary.
type View string

const (
	ViewLogin     View = "login"
	ViewDashboard View = "dashboard"
	ViewSettings  View = "settings"
)

func (v View) valid() bool {
	switch v {
	case ViewLogin, ViewDashboard, ViewSettings:
		return true
	}
	return false
}

type state struct {
	View View `json:"view"`
}

type FileRepo struct {
	mu   sync.RWMutex
	path string
	s    state
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{path: filepath.Join(dataDir, "view.json")}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.s = state{View: ViewLogin}
	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var loaded state
	if err := json.Unmarshal(b, &loaded); err != nil || !loaded.View.valid() {
		return nil
	}
	r.s = loaded
	return nil
}

func (r *FileRepo) View() (View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.s.View, nil
}

func (r *FileRepo) SetView(v View) error {
	if !v.valid() {
		v = ViewDashboard
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.s.View = v
	b, err := json.MarshalIndent(r.s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}
