// Package config reads the list of stops to monitor.
//
// The file holds one section, busstop, with two parallel lists:
//
//	[busstop]
//	stopid = "490000173RF, 490000173RD"
//	num_services = "5, 3"
//
// TOML is the default format; files ending in .yaml or .yml are read as
// YAML with the same keys. num_busses is accepted as an older spelling of
// num_services.
package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/busstop/pkg/errors"
)

const (
	// FileName is the configuration file looked up in BUSSTOP_HOME and the
	// home directory.
	FileName = "busstop_config.toml"

	// HomeEnv names the environment variable pointing at the directory
	// holding the configuration file.
	HomeEnv = "BUSSTOP_HOME"

	// Section is the required section name.
	Section = "busstop"

	// DefaultPath is reported as the path of the built-in configuration.
	DefaultPath = "(built-in default)"
)

//go:embed busstop_config.toml
var defaultConfig []byte

// Default returns the built-in configuration file.
func Default() []byte {
	return append([]byte(nil), defaultConfig...)
}

// Stop is one configured stop and how many arrivals to show for it.
type Stop struct {
	ID    string
	Count int
}

// Config is a parsed configuration file.
type Config struct {
	Path  string
	Stops []Stop
}

type section struct {
	StopID      List `toml:"stopid" yaml:"stopid"`
	NumServices List `toml:"num_services" yaml:"num_services"`
	NumBusses   List `toml:"num_busses" yaml:"num_busses"`
}

type document struct {
	Busstop *section `toml:"busstop" yaml:"busstop"`
}

type settings struct {
	StopIDs []string `validate:"required,min=1,dive,required"`
	Counts  []string `validate:"required,min=1,dive,required,number"`
}

var validate = validator.New()

// Load reads and validates the configuration at path. An empty path loads
// the built-in default.
//
// Errors carry the codes FILE_NOT_FOUND, CONFIG_SECTION_MISSING or
// CONFIG_INVALID.
func Load(path string) (*Config, error) {
	if path == "" || path == DefaultPath {
		return Parse(defaultConfig, FileName, DefaultPath)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "read %s", path)
	}
	return Parse(data, path, path)
}

// Parse decodes a configuration document. The format is chosen from the
// extension of name; path is recorded in the result.
//
// Stop ids and counts are paired in order. When the lists differ in
// length, entries beyond the shorter list are ignored.
func Parse(data []byte, name, path string) (*Config, error) {
	var doc document
	if err := decode(data, name, &doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "parse %s", path)
	}
	if doc.Busstop == nil {
		return nil, errors.New(errors.ErrCodeConfigSectionMissing, "No section: '%s'", Section)
	}

	counts := doc.Busstop.NumServices
	if len(counts) == 0 {
		counts = doc.Busstop.NumBusses
	}
	s := settings{StopIDs: doc.Busstop.StopID, Counts: counts}
	if err := validate.Struct(s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "validate %s", path)
	}

	n := min(len(s.StopIDs), len(s.Counts))
	cfg := &Config{Path: path, Stops: make([]Stop, 0, n)}
	for i := 0; i < n; i++ {
		count, err := strconv.Atoi(s.Counts[i])
		if err != nil || count < 1 {
			return nil, errors.New(errors.ErrCodeConfigInvalid, "num_services entry %q must be a positive integer", s.Counts[i])
		}
		if err := errors.ValidateStopID(s.StopIDs[i]); err != nil {
			return nil, errors.Wrap(errors.ErrCodeConfigInvalid, err, "stopid entry %d", i+1)
		}
		cfg.Stops = append(cfg.Stops, Stop{ID: s.StopIDs[i], Count: count})
	}
	return cfg, nil
}

func decode(data []byte, name string, v any) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	default:
		_, err := toml.Decode(string(data), v)
		return err
	}
}

// Resolve returns the configuration path to use, in order of precedence:
// explicit, then the file in $BUSSTOP_HOME, then the file in the user's
// home directory, then DefaultPath for the built-in configuration.
//
// An explicit path and a set BUSSTOP_HOME are returned even if the file
// does not exist, so that Load reports it.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if dir := os.Getenv(HomeEnv); dir != "" {
		return findIn(dir, filepath.Join(dir, FileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		return findIn(home, DefaultPath)
	}
	return DefaultPath
}

func findIn(dir, fallback string) string {
	base := strings.TrimSuffix(FileName, filepath.Ext(FileName))
	for _, ext := range []string{".toml", ".yaml", ".yml"} {
		p := filepath.Join(dir, base+ext)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return fallback
}
