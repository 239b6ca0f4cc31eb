// Package fasta converts raw nucleotide sequences into FASTA files.
package fasta

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-varcall/pkg/pipeline"
)

// LineWidth is the number of residues per sequence line.
const LineWidth = 60

// ErrDuplicateSample is returned when two sequence files share a sample name.
var ErrDuplicateSample = errors.New("duplicate sample name")

// Record is one FASTA entry.
type Record struct {
	ID       string
	Sequence string
}

// Format returns the record in FASTA format.
func (r Record) Format() string {
	var b strings.Builder

	b.WriteString(">")
	b.WriteString(r.ID)
	b.WriteString("\n")

	for start := 0; start < len(r.Sequence); start += LineWidth {
		end := start + LineWidth
		if end > len(r.Sequence) {
			end = len(r.Sequence)
		}

		b.WriteString(r.Sequence[start:end])
		b.WriteString("\n")
	}

	return b.String()
}

// SampleName returns the part of fileName before its first dot.
func SampleName(fileName string) string {
	base := filepath.Base(fileName)
	if idx := strings.IndexByte(base, '.'); idx >= 0 {
		return base[:idx]
	}

	return base
}

// ReadRecord reads a raw sequence file. The record id is the sample name with dashes replaced by underscores.
func ReadRecord(path string) (Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Record{}, errors.Wrapf(err, "unable to read sequence %s", path)
	}

	return Record{
		ID:       strings.ReplaceAll(SampleName(path), "-", "_"),
		Sequence: strings.TrimRightFunc(string(raw), isSpace),
	}, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f'
}

// ConvertFolder writes one FASTA file in fastaDir for every regular file of genesDir.
// It returns the written paths in name order. Hidden files are skipped.
// Two files with the same sample name are an error, the first one stays written.
func ConvertFolder(ctx context.Context, genesDir, fastaDir string) ([]string, error) {
	entries, err := os.ReadDir(genesDir)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to read %s", genesDir)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	written := make([]string, 0, len(entries))
	sources := map[string]string{}

	for _, entry := range entries {
		if !entry.Type().IsRegular() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		name := SampleName(entry.Name())
		if previous, ok := sources[name]; ok {
			return written, errors.Wrapf(ErrDuplicateSample, "%s and %s both map to %s", previous, entry.Name(), name)
		}
		sources[name] = entry.Name()

		record, err := ReadRecord(filepath.Join(genesDir, entry.Name()))
		if err != nil {
			return written, err
		}

		out := filepath.Join(fastaDir, name+".fasta")

		_, err = pipeline.NewFileWriteCommand(out).Invoke(ctx, pipeline.Text(record.Format()))
		if err != nil {
			return written, errors.Wrapf(err, "unable to convert %s", entry.Name())
		}

		written = append(written, out)
	}

	return written, nil
}
