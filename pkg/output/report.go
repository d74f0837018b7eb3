package output

import (
	"fmt"
	"os"

	"github.com/sdejongh/conflictsweep/pkg/models"
)

// WriteReport writes the run report to a file
// Format can be "human" or "json"
func WriteReport(report *models.RunReport, path string, format string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	switch format {
	case "json":
		err = writeJSON(report, file)
	default: // "human"
		err = writeHuman(report, file)
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return file.Close()
}
