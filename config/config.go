// Package config loads csscolor settings from an optional YAML file, an
// optional .env file and CSSCOLOR_* environment variables, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultFile is read when no config file is given and it exists.
const DefaultFile = ".csscolor.yaml"

// Config is the complete csscolor configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Detector DetectorConfig `yaml:"detector"`
	Locator  LocatorConfig  `yaml:"locator"`
	LSP      LSPConfig      `yaml:"lsp"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"CSSCOLOR_LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error off"`
}

type DetectorConfig struct {
	// Keywords enables named color detection.
	Keywords bool `yaml:"keywords" env:"CSSCOLOR_KEYWORDS"`
}

type LocatorConfig struct {
	CallFilter CallFilterConfig `yaml:"call_filter"`
}

// CallFilterConfig restricts JavaScript scanning to one argument of calls
// to Function. An empty Function scans every string literal.
type CallFilterConfig struct {
	Function string `yaml:"function" env:"CSSCOLOR_CALL_FUNCTION"`
	Argument int    `yaml:"argument" env:"CSSCOLOR_CALL_ARGUMENT" validate:"min=0"`
}

type LSPConfig struct {
	Transport string `yaml:"transport" env:"CSSCOLOR_LSP_TRANSPORT" default:"stdio" validate:"oneof=stdio tcp websocket"`
	Address   string `yaml:"address" env:"CSSCOLOR_LSP_ADDRESS" default:"127.0.0.1:7998" validate:"required_unless=Transport stdio"`
}

// Loader reads configuration through an afero filesystem.
type Loader struct {
	fs       afero.Fs
	lookup   func(string) (string, bool)
	validate *validator.Validate
}

// NewLoader returns a loader reading from fsys and the process
// environment.
func NewLoader(fsys afero.Fs) *Loader {
	return &Loader{
		fs:       fsys,
		lookup:   os.LookupEnv,
		validate: validator.New(),
	}
}

// WithLookup replaces the environment lookup, mainly for tests.
func (l *Loader) WithLookup(lookup func(string) (string, bool)) *Loader {
	l.lookup = lookup
	return l
}

// Load builds the configuration. path may be empty, in which case
// DefaultFile is used when present. Missing env files are ignored.
func (l *Loader) Load(path string, envFiles ...string) (*Config, error) {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := l.loadFile(cfg, path); err != nil {
		return nil, err
	}

	dotenv, err := l.loadEnvFiles(envFiles)
	if err != nil {
		return nil, err
	}
	lookup := func(key string) (string, bool) {
		if v, ok := l.lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
	if err := applyEnv(reflect.ValueOf(cfg).Elem(), lookup); err != nil {
		return nil, err
	}

	if err := l.validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (l *Loader) loadFile(cfg *Config, path string) error {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}

// loadEnvFiles parses the env files that exist. Earlier files win, as with
// godotenv.Load.
func (l *Loader) loadEnvFiles(files []string) (map[string]string, error) {
	values := map[string]string{}
	for _, name := range files {
		f, err := l.fs.Open(name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("open env file %s: %w", name, err)
		}
		parsed, err := godotenv.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse env file %s: %w", name, err)
		}
		for k, v := range parsed {
			if _, ok := values[k]; !ok {
				values[k] = v
			}
		}
	}
	return values, nil
}

// applyEnv sets every field tagged with env from lookup.
func applyEnv(v reflect.Value, lookup func(string) (string, bool)) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		sf := t.Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnv(field, lookup); err != nil {
				return err
			}
			continue
		}

		key := sf.Tag.Get("env")
		if key == "" {
			continue
		}
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		raw = strings.TrimSpace(raw)

		switch field.Kind() {
		case reflect.String:
			field.SetString(raw)
		case reflect.Bool:
			b, err := strconv.ParseBool(raw)
			if err != nil {
				return fmt.Errorf("env %s: %w", key, err)
			}
			field.SetBool(b)
		case reflect.Int:
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("env %s: %w", key, err)
			}
			field.SetInt(int64(n))
		default:
			return fmt.Errorf("env %s: unsupported field type %s", key, field.Type())
		}
	}
	return nil
}
