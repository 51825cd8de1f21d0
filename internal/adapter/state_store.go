package adapter

import (
	"encoding/json"
	"os"
	"path/filepath"

	m "github.com/SikamikanikoBG/codelens/internal/model"
)

const (
	// stateDirName is the tool-specific subdirectory created under the
	// analyzed root for state and reports.
	stateDirName = ".codelens"

	stateFileName = "state.json"

	stateDirPerm  = 0o755
	stateFilePerm = 0o644
)

// StateStore persists the selection state of a project between sessions.
type StateStore interface {
	// Load reads the state side file for root. A missing, unreadable or
	// malformed file is not an error; it yields zero state and found=false
	// so the session starts from defaults.
	Load(root m.Path) (state m.PersistedState, found bool)

	// Save writes the state side file for root, creating the state
	// directory when needed.
	Save(root m.Path, state m.PersistedState) error
}

type stateStore struct{}

// NewStateStore constructs the JSON-file backed StateStore.
func NewStateStore() StateStore {
	return &stateStore{}
}

// StatePath returns the location of the state side file for root.
func StatePath(root m.Path) m.Path {
	return m.Path(filepath.Join(string(root), stateDirName, stateFileName))
}

func (ss *stateStore) Load(root m.Path) (m.PersistedState, bool) {
	data, err := os.ReadFile(string(StatePath(root)))
	if err != nil {
		return m.PersistedState{}, false
	}

	var state m.PersistedState
	if err := json.Unmarshal(data, &state); err != nil {
		return m.PersistedState{}, false
	}

	state.Options = state.Options.Normalize()

	return state, true
}

func (ss *stateStore) Save(root m.Path, state m.PersistedState) error {
	dir := filepath.Join(string(root), stateDirName)
	if err := os.MkdirAll(dir, stateDirPerm); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, stateFileName), data, stateFilePerm)
}
