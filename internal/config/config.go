// Package config handles environment variable loading and configuration resolution.
// Precedence: process environment -> .env file -> defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"

	"github.com/rgonek/content-indexer/internal/content"
	"github.com/rgonek/content-indexer/internal/fs"
	"github.com/rgonek/content-indexer/internal/logging"
)

// Environment keys.
const (
	EnvRoot        = "CONTENT_ROOT"
	EnvFormat      = "CONTENT_FORMAT"
	EnvIndexName   = "CONTENT_INDEX_NAME"
	EnvCollections = "CONTENT_COLLECTIONS"
	EnvLogLevel    = "CONTENT_LOG_LEVEL"
)

// Defaults applied when a key is unset.
const (
	DefaultRoot        = "content"
	DefaultCollections = "blog=blog,events=events,docs=docs"
	DefaultLogLevel    = "info"
)

// Config holds resolved content locations and parsing options.
type Config struct {
	Root      string
	Format    fs.Format
	IndexName string
	// Collections maps a collection key to its directory under Root.
	Collections map[string]string
	LogLevel    string
}

// ErrInvalidConfig is returned when a config value cannot be parsed.
var ErrInvalidConfig = errors.New("invalid configuration")

// Load resolves configuration from environment and optional .env file.
// Values already present in the environment win over the .env file.
func Load(dotEnvPath string) (*Config, error) {
	if dotEnvPath != "" {
		if _, err := os.Stat(dotEnvPath); err == nil {
			// godotenv.Load never overrides variables that are already set.
			_ = godotenv.Load(dotEnvPath)
		}
	}

	root := filepath.Clean(resolve(EnvRoot, DefaultRoot))

	format, err := fs.ParseFormat(os.Getenv(EnvFormat))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvFormat, err)
	}

	collections, err := ParseCollections(root, resolve(EnvCollections, DefaultCollections))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Root:        root,
		Format:      format,
		IndexName:   resolve(EnvIndexName, content.DefaultIndexName),
		Collections: collections,
		LogLevel:    resolve(EnvLogLevel, DefaultLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Validate checks the resolved values.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.IndexName, validation.Required, validation.By(func(value any) error {
			if strings.ContainsAny(value.(string), `/\`) {
				return validation.NewError("config.index_name_path", "must be a file name, not a path")
			}
			return nil
		})),
		validation.Field(&c.Collections, validation.Required),
		validation.Field(&c.LogLevel, validation.By(func(value any) error {
			if _, err := logging.ParseLevel(value.(string)); err != nil {
				return validation.NewError("config.log_level", err.Error())
			}
			return nil
		})),
	)
}

// ParseCollections parses comma-separated key=dir pairs. Relative
// directories are joined under root.
func ParseCollections(root, raw string) (map[string]string, error) {
	collections := map[string]string{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, dir, ok := strings.Cut(pair, "=")
		key, dir = strings.TrimSpace(key), strings.TrimSpace(dir)
		if !ok || key == "" || dir == "" {
			return nil, fmt.Errorf("%w: %s entry %q must be key=dir", ErrInvalidConfig, EnvCollections, pair)
		}
		if strings.Contains(key, "/") {
			return nil, fmt.Errorf("%w: %s key %q must not contain '/'", ErrInvalidConfig, EnvCollections, key)
		}
		if _, dup := collections[key]; dup {
			return nil, fmt.Errorf("%w: %s key %q is repeated", ErrInvalidConfig, EnvCollections, key)
		}
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(root, dir)
		}
		collections[key] = dir
	}
	if len(collections) == 0 {
		return nil, fmt.Errorf("%w: %s names no collections", ErrInvalidConfig, EnvCollections)
	}
	return collections, nil
}

// CollectionKeys returns the configured keys, sorted.
func (c *Config) CollectionKeys() []string {
	keys := make([]string, 0, len(c.Collections))
	for key := range c.Collections {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// resolve returns the environment value for key, or def when it is unset or blank.
func resolve(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
