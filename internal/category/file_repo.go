package category

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/Egnoel/habitQuest/internal/config"
)

var ErrNotFound = errors.New("category not found")

// FileRepo persists the ordered category list. A fresh data dir is
// seeded from the config defaults.
type FileRepo struct {
	mu   sync.RWMutex
	path string
	cats []Category
}

func NewFileRepo(dataDir string, seed []config.Category) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{path: filepath.Join(dataDir, "categories.json")}
	if err := r.load(seed); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load(seed []config.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.cats = fromConfig(seed)
			return nil
		}
		return err
	}

	var loaded []Category
	if err := json.Unmarshal(b, &loaded); err != nil {
		r.cats = fromConfig(seed)
		return nil
	}
	r.cats = loaded
	return nil
}

func (r *FileRepo) saveLocked() error {
	b, err := json.MarshalIndent(r.cats, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

func (r *FileRepo) List() ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, len(r.cats))
	copy(out, r.cats)
	return out, nil
}

func (r *FileRepo) Add(c Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, cur := range r.cats {
		if cur.Name == c.Name {
			// Re-adding an existing name updates the icon in place.
			return r.update(c)
		}
	}
	r.cats = append(r.cats, c)
	return r.saveLocked()
}

func (r *FileRepo) update(c Category) error {
	for i := range r.cats {
		if r.cats[i].Name == c.Name {
			r.cats[i] = c
			return r.saveLocked()
		}
	}
	return ErrNotFound
}

func (r *FileRepo) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.cats {
		if r.cats[i].Name == name {
			r.cats = append(r.cats[:i], r.cats[i+1:]...)
			return r.saveLocked()
		}
	}
	return ErrNotFound
}
