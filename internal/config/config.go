// Package config loads the settings of a variant calling run.
//
// Settings come, from lowest to highest priority, from the defaults, an optional YAML file, a dotenv file and the
// process environment.
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultEnvFile is the dotenv file read when no other is given. It may be missing.
const DefaultEnvFile = ".env"

// ErrMissingKey is returned by Validate for a required setting left empty.
var ErrMissingKey = errors.New("missing configuration key")

// Config holds the folders and tool settings of a run.
type Config struct {
	GenesFolder     string `yaml:"genes_folder"`
	FastaFolder     string `yaml:"fasta_folder"`
	TempFolder      string `yaml:"temp_folder"`
	OutFolder       string `yaml:"out_folder"`
	VendorFolder    string `yaml:"vendor_folder"`
	ReferenceGenome string `yaml:"reference_genome"`
	PicardVersion   string `yaml:"picard_version"`
	JavaMaxHeap     string `yaml:"java_max_heap"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		GenesFolder:  "data/genes",
		FastaFolder:  "tmp/fasta",
		TempFolder:   "tmp/work",
		OutFolder:    "out",
		VendorFolder: "vendor",
		JavaMaxHeap:  "1G",
	}
}

// Load reads the configuration. An empty envFile means DefaultEnvFile, which may be absent. An empty yamlFile is
// skipped.
func Load(envFile, yamlFile string) (Config, error) {
	return load(envFile, yamlFile, os.LookupEnv)
}

func load(envFile, yamlFile string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if yamlFile != "" {
		raw, err := os.ReadFile(yamlFile)
		if err != nil {
			return Config{}, errors.Wrapf(err, "unable to read config file %s", yamlFile)
		}

		err = yaml.Unmarshal(raw, &cfg)
		if err != nil {
			return Config{}, errors.Wrapf(err, "unable to parse config file %s", yamlFile)
		}
	}

	dotenv, err := readDotenv(envFile)
	if err != nil {
		return Config{}, err
	}

	for key, field := range cfg.fields() {
		if value, ok := lookup(key); ok && value != "" {
			*field = value

			continue
		}

		if value, ok := dotenv[key]; ok && value != "" {
			*field = value
		}
	}

	return cfg, nil
}

func readDotenv(envFile string) (map[string]string, error) {
	optional := envFile == ""
	if optional {
		envFile = DefaultEnvFile
	}

	values, err := godotenv.Read(envFile)
	if optional && errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}

	if err != nil {
		return nil, errors.Wrapf(err, "unable to read env file %s", envFile)
	}

	return values, nil
}

// fields maps environment keys to the settings they override.
func (c *Config) fields() map[string]*string {
	return map[string]*string{
		"GENES_FOLDER":          &c.GenesFolder,
		"FASTA_FOLDER":          &c.FastaFolder,
		"TEMP_FOLDER":           &c.TempFolder,
		"OUT_FOLDER":            &c.OutFolder,
		"VENDOR_FOLDER":         &c.VendorFolder,
		"REFERENCE_GENOME":      &c.ReferenceGenome,
		"VENDOR_PICARD_VERSION": &c.PicardVersion,
		"JAVA_MAX_HEAP":         &c.JavaMaxHeap,
	}
}

// Validate reports the first required setting left empty.
func (c Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"GENES_FOLDER", c.GenesFolder},
		{"FASTA_FOLDER", c.FastaFolder},
		{"TEMP_FOLDER", c.TempFolder},
		{"OUT_FOLDER", c.OutFolder},
		{"REFERENCE_GENOME", c.ReferenceGenome},
		{"VENDOR_PICARD_VERSION", c.PicardVersion},
	}

	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return errors.Wrap(ErrMissingKey, r.key)
		}
	}

	return nil
}

// ReferencePath returns the FASTA file of the reference genome.
func (c Config) ReferencePath() string {
	return filepath.Join(c.FastaFolder, c.ReferenceGenome+".fasta")
}

// PicardJar returns the path of the Picard jar.
func (c Config) PicardJar() string {
	return filepath.Join(c.VendorFolder, "picard-"+c.PicardVersion+".jar")
}
