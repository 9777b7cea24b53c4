package repo

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/witscm/wit/pkg/index"
)

// ReadIndex decodes .wit/index. A repository that has never staged
// anything has no index file; that is reported as-is rather than
// synthesized as empty.
func (r *Repo) ReadIndex() (*index.Index, error) {
	data, err := os.ReadFile(filepath.Join(r.WitDir, "index"))
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	idx, err := index.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	return idx, nil
}
