package workflow

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-varcall/internal/config"
	"github.com/askiada/go-varcall/internal/fasta"
)

// Sample is a sequence aligned and compared against the reference.
type Sample struct {
	Name string
	// Path is the FASTA file of the sample.
	Path string
	// IndexPrefix prefixes the index and every intermediate alignment file.
	IndexPrefix string
	// OutPrefix prefixes the VCF files.
	OutPrefix string
}

// DiscoverSamples lists the FASTA files of the configured folder, in name order, leaving out the reference.
func DiscoverSamples(cfg config.Config) ([]Sample, error) {
	entries, err := os.ReadDir(cfg.FastaFolder)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", cfg.FastaFolder)
	}

	reference := filepath.Clean(cfg.ReferencePath())
	samples := []Sample{}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		path := filepath.Join(cfg.FastaFolder, entry.Name())
		if filepath.Clean(path) == reference {
			continue
		}

		name := fasta.SampleName(entry.Name())
		samples = append(samples, Sample{
			Name:        name,
			Path:        path,
			IndexPrefix: filepath.Join(cfg.TempFolder, name),
			OutPrefix:   filepath.Join(cfg.OutFolder, name),
		})
	}

	return samples, nil
}
