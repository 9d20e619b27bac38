package formatter

import (
	"fmt"
	"os"
	"time"

	"github.com/maestro-studio/maestro-cli/internal/shared"
)

// ExportManifest summarizes a bulk export run for later auditing.
type ExportManifest struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Format      string            `json:"format"`
	Total       int               `json:"total"`
	Succeeded   int               `json:"succeeded"`
	Failed      int               `json:"failed"`
	Files       []string          `json:"files"`
	Failures    map[string]string `json:"failures,omitempty"`
}

// WriteExportManifest writes the manifest as pretty JSON next to the
// exported files.
func WriteExportManifest(manifest *ExportManifest, path string) error {
	if manifest.GeneratedAt.IsZero() {
		manifest.GeneratedAt = time.Now()
	}

	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	return nil
}
