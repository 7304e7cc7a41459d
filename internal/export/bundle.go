package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/san-kum/pendsim/internal/dynamo"
)

const (
	BundleMetadata   = "metadata.json"
	BundleTrajectory = DefaultFilename
)

// WriteBundle writes a run directory under baseDir holding the run
// metadata and the CSV export, and returns its path. An empty meta.ID
// gets a new uuid.
func WriteBundle(baseDir string, meta Metadata, traj dynamo.Trajectory) (string, error) {
	if len(traj) == 0 {
		return "", dynamo.ErrNoData
	}
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	runDir := filepath.Join(baseDir, meta.ID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, BundleMetadata))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := WriteFile(filepath.Join(runDir, BundleTrajectory), traj); err != nil {
		return "", err
	}
	return runDir, nil
}
