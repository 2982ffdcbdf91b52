// Package feed reads the surveillance input files (alert CSVs and the
// epidemic, press-release and visitor workbooks) and writes the output tables
// as CSV or xlsx.
package feed

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrFileNotFound is returned when an input file does not exist. It wraps
	// os.ErrNotExist.
	ErrFileNotFound = fmt.Errorf("input file not found: %w", os.ErrNotExist)

	// ErrUndecodable is returned when a text file is neither UTF-8 nor CP950.
	ErrUndecodable = errors.New("file is neither utf-8 nor cp950")
)

func statInput(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	return nil
}
