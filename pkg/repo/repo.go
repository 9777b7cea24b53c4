package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/witscm/wit/pkg/object"
)

// Repo represents an opened wit repository.
type Repo struct {
	RootDir string        // working directory root
	WitDir  string        // .wit/ directory
	Store   *object.Store // content-addressed object store
	Config  *Config
}

// Init creates a new wit repository at path. It creates the .wit/ directory
// structure (objects/, refs/heads/, refs/tags/), a default HEAD pointing at
// refs/heads/main, a description file and the repository config. Returns an
// error if a .wit/ directory already exists.
func Init(path string) (*Repo, error) {
	witDir := filepath.Join(path, ".wit")

	if _, err := os.Stat(witDir); err == nil {
		return nil, fmt.Errorf("init: repository already exists at %s", witDir)
	}

	dirs := []string{
		filepath.Join(witDir, "objects"),
		filepath.Join(witDir, "refs", "heads"),
		filepath.Join(witDir, "refs", "tags"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return nil, fmt.Errorf("init: mkdir %s: %w", d, err)
		}
	}

	headPath := filepath.Join(witDir, "HEAD")
	if err := os.WriteFile(headPath, []byte("ref: refs/heads/main\n"), 0o644); err != nil {
		return nil, fmt.Errorf("init: write HEAD: %w", err)
	}

	descPath := filepath.Join(witDir, "description")
	desc := "Unnamed repository; edit this file 'description' to name the repository.\n"
	if err := os.WriteFile(descPath, []byte(desc), 0o644); err != nil {
		return nil, fmt.Errorf("init: write description: %w", err)
	}

	cfg := DefaultConfig()
	if err := writeConfig(witDir, cfg); err != nil {
		return nil, fmt.Errorf("init: %w", err)
	}

	return &Repo{
		RootDir: path,
		WitDir:  witDir,
		Store:   object.NewStore(witDir),
		Config:  cfg,
	}, nil
}

// Open searches upward from path for a .wit/ directory and opens the
// repository, validating its config. Returns an error if no .wit/
// directory is found.
func Open(path string) (*Repo, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("open: abs path: %w", err)
	}

	cur := abs
	for {
		witDir := filepath.Join(cur, ".wit")
		info, err := os.Stat(witDir)
		if err == nil && info.IsDir() {
			cfg, err := readConfig(witDir)
			if err != nil {
				return nil, fmt.Errorf("open: %w", err)
			}
			return &Repo{
				RootDir: cur,
				WitDir:  witDir,
				Store:   object.NewStore(witDir),
				Config:  cfg,
			}, nil
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			// Reached filesystem root without finding .wit/.
			return nil, fmt.Errorf("open: not a wit repository (or any parent up to /)")
		}
		cur = parent
	}
}
