// Package config loads driver settings from a .cfront.yaml file.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/strager/cfront/source"
)

// FileName is the configuration file looked up in the working directory
// when no explicit path is given.
const FileName = ".cfront.yaml"

// Output formats.
const (
	FormatSExpr = "sexpr"
	FormatText  = "text"
)

type Config struct {
	// Format selects the AST rendering: "sexpr" or "text".
	Format string `yaml:"format"`
	// Separator is inserted between input files: "none" or "newline".
	Separator string `yaml:"separator"`
	// All prints every top-level statement instead of only the first.
	All bool `yaml:"all"`
	// Types dumps the user-defined types after parsing.
	Types bool `yaml:"types"`
}

// Default returns the settings used when no configuration file exists.
func Default() Config {
	return Config{
		Format:    FormatSExpr,
		Separator: string(source.SeparatorNone),
	}
}

// Decode reads YAML from r on top of the defaults. Unknown keys are an
// error.
func Decode(r io.Reader) (Config, error) {
	conf := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&conf); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// Load reads the configuration at path. If path is empty, FileName is tried
// and its absence is not an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = FileName
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, errors.Wrapf(err, "reading config %s", path)
	}
	conf, err := Decode(bytes.NewReader(data))
	if err != nil {
		return Config{}, errors.WithMessage(err, path)
	}
	return conf, nil
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	switch c.Format {
	case FormatSExpr, FormatText:
	default:
		return errors.Errorf("unknown format %q (want %q or %q)", c.Format, FormatSExpr, FormatText)
	}
	if _, err := source.ParseSeparator(c.Separator); err != nil {
		return err
	}
	return nil
}
