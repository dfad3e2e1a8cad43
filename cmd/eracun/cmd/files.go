package cmd

import (
	"fmt"
	"path/filepath"
)

// collectFiles expands glob patterns in args into a flat file list.
func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}

		if len(matches) == 0 {
			// Not a pattern; let the read fail later with a clear error.
			files = append(files, arg)
			continue
		}

		files = append(files, matches...)
	}

	return files, nil
}
