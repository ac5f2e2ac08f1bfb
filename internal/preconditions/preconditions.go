// Package preconditions validates the CLI's file inputs and outputs before
// the packing engine runs.
package preconditions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateConfigFiles checks that every run-configuration file exists, is a
// regular file, and is readable. Accepts an optional "path:label" form for
// consistency with multi-file CLI invocations.
func ValidateConfigFiles(paths []string) error {
	for _, path := range paths {
		parts := strings.Split(path, ":")
		filePath := parts[0]

		info, err := os.Stat(filePath)
		if err != nil {
			return fmt.Errorf("cannot access file %s: %w", filePath, err)
		}

		if info.IsDir() {
			return fmt.Errorf("%s is a directory, not a file", filePath)
		}

		if !isConfigFile(filePath) {
			return fmt.Errorf("%s is not a recognized config file (must end in .yaml, .yml or .json)", filePath)
		}

		file, err := os.Open(filePath)
		if err != nil {
			return fmt.Errorf("cannot read file %s: %w", filePath, err)
		}
		file.Close()
	}

	return nil
}

func isConfigFile(path string) bool {
	for _, ext := range []string{".yaml", ".yml", ".json"} {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// ValidateOutputPath checks if the output path's parent directory exists
// and is writable, falling back to checking the current directory.
func ValidateOutputPath(path string) error {
	dir := filepath.Dir(path)

	if dir != "." && dir != "/" {
		info, err := os.Stat(dir)
		if err == nil {
			if info.IsDir() && (info.Mode()&0200) != 0 {
				return nil
			}
		}
	}

	dir = "."
	if info, err := os.Stat(dir); err != nil || !info.IsDir() || (info.Mode()&0200) == 0 {
		return fmt.Errorf("output directory is not writable")
	}

	return nil
}
