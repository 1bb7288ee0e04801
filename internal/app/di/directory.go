package di

import (
	"os"

	"github.com/Get2Core/fs-project/internal/feature/directory/adapters/sqlite"
	"github.com/Get2Core/fs-project/internal/platform/metrics"
)

const (
	// EnvKeyDirectoryPath is the environment variable holding the store file path.
	EnvKeyDirectoryPath = "DIRECTORY_DB_PATH"
	// DefaultDirectoryPath is used when EnvKeyDirectoryPath is unset.
	DefaultDirectoryPath = "data/companies.db"
)

// DirectoryPath resolves the store path: flag value, then environment, then default.
func DirectoryPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if p := os.Getenv(EnvKeyDirectoryPath); p != "" {
		return p
	}
	return DefaultDirectoryPath
}

// NewDirectory creates the store handle. When m is non-nil, generation swaps update its gauges.
func NewDirectory(path string, m *metrics.Metrics) (*sqlite.Directory, error) {
	d, err := sqlite.NewDirectory(path)
	if err != nil {
		return nil, err
	}
	if m != nil {
		d.OnSwap = m.ObserveGeneration
	}
	return d, nil
}
