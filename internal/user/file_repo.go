package user

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

type FileRepo struct {
	mu    sync.RWMutex
	path  string
	state State
}

func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	r := &FileRepo{path: filepath.Join(dataDir, "user.json")}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			r.state = DefaultState()
			return nil
		}
		return err
	}

	var loaded State
	if err := json.Unmarshal(b, &loaded); err != nil {
		r.state = DefaultState()
		return nil
	}
	r.state = Normalize(loaded)
	return nil
}

func (r *FileRepo) Get() (State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state, nil
}

func (r *FileRepo) Put(s State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = Normalize(s)
	b, err := json.MarshalIndent(r.state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, b, 0o644)
}

// MemoryRepo is the test double for the user store.
type MemoryRepo struct {
	mu    sync.RWMutex
	state State
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{state: DefaultState()}
}

func (r *MemoryRepo) Get() (State, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state, nil
}

func (r *MemoryRepo) Put(s State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = Normalize(s)
	return nil
}
