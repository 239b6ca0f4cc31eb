// Package workspace prepares the folders used by a variant calling run.
package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-varcall/internal/config"
)

// Prepare removes the temporary folder, empties the output folder and creates every folder the run writes to.
// Hidden entries of the output folder are kept.
func Prepare(cfg config.Config) error {
	err := os.RemoveAll(cfg.TempFolder)
	if err != nil {
		return errors.Wrapf(err, "unable to remove %s", cfg.TempFolder)
	}

	err = Clean(cfg.OutFolder)
	if err != nil {
		return err
	}

	for _, dir := range []string{cfg.FastaFolder, cfg.TempFolder, cfg.OutFolder} {
		err := os.MkdirAll(dir, 0o755)
		if err != nil {
			return errors.Wrapf(err, "unable to create %s", dir)
		}
	}

	return nil
}

// Clean removes every entry of dir whose name does not start with a dot. A missing dir is not an error.
func Clean(dir string) error {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return errors.Wrapf(err, "unable to read %s", dir)
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		err := os.RemoveAll(path)
		if err != nil {
			return errors.Wrapf(err, "unable to remove %s", path)
		}
	}

	return nil
}
