// Package config loads and saves the dbdoc settings file: database
// connections, the current connection, template and output locations, and
// the tables remembered per connection.
//
// The file is JSONC (comments and trailing commas allowed) and is written
// back atomically.
package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/tailscale/hujson"
)

var (
	// ErrConfigInvalid is returned for unparseable or inconsistent files.
	ErrConfigInvalid = errors.New("invalid config file")
	// ErrConfigNotFound is returned when an explicitly named file is missing.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrConnectionNotFound is returned for an unknown connection name.
	ErrConnectionNotFound = errors.New("connection not found")
)

// Environment variables that override file values.
const (
	EnvDSN       = "DBDOC_DSN"
	EnvDriver    = "DBDOC_DRIVER"
	EnvOutputDir = "DBDOC_OUTPUT_DIR"
	EnvTemplate  = "DBDOC_TEMPLATE"
)

// EnvConnection names the connection built from DBDOC_DSN when no current
// connection is configured.
const EnvConnection = "env"

// Connection is one database to document.
type Connection struct {
	Driver string `json:"driver"`
	DSN    string `json:"dsn"`
	Schema string `json:"schema,omitempty"`
}

// Config holds all configuration options.
type Config struct {
	Connections        map[string]Connection `json:"connections,omitempty"`
	CurrentConnection  string                `json:"current_connection,omitempty"`
	TemplatePath       string                `json:"template_path,omitempty"`
	OutputDir          string                `json:"output_dir,omitempty"`
	TableSheetTemplate string                `json:"table_sheet_template,omitempty"`
	DocTables          map[string][]string   `json:"doc_tables,omitempty"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		OutputDir:          ".",
		TableSheetTemplate: "Table Template",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/dbdoc/config.json, falling back to
// ~/.config/dbdoc/config.json. It returns "" when neither can be determined.
func DefaultPath(env []string) string {
	if xdg := lookup(env, "XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dbdoc", "config.json")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dbdoc", "config.json")
}

// Load reads the config file and applies environment overrides. An empty
// path selects DefaultPath, which may be missing; an explicit path must
// exist. It returns the resolved file path.
func Load(path string, env []string) (Config, string, error) {
	cfg, resolved, err := LoadFile(path, env)
	if err != nil {
		return Config{}, "", err
	}
	cfg = ApplyEnv(cfg, env)
	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, resolved, nil
}

// LoadFile reads the config file without environment overrides. Use it when
// the result is going to be saved back.
func LoadFile(path string, env []string) (Config, string, error) {
	mustExist := path != ""
	if path == "" {
		path = DefaultPath(env)
	}

	cfg := Default()
	if path == "" {
		return cfg, "", nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is user-controlled
	if err != nil {
		if os.IsNotExist(err) {
			if mustExist {
				return Config{}, "", fmt.Errorf("%w: %s", ErrConfigNotFound, path)
			}
			return cfg, path, nil
		}
		return Config{}, "", err
	}

	fileCfg, err := Parse(data)
	if err != nil {
		return Config{}, "", fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return merge(cfg, fileCfg), path, nil
}

// Parse decodes a JSONC document.
func Parse(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(standardized))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	return cfg, nil
}

// Save writes cfg to path atomically, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format config: %w", err)
	}
	data = append(data, '\n')

	return atomic.WriteFile(path, bytes.NewReader(data))
}

// ApplyEnv overrides output directory, template path and the current
// connection from the environment. Maps are copied, never shared with cfg.
func ApplyEnv(cfg Config, env []string) Config {
	if v := lookup(env, EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
	if v := lookup(env, EnvTemplate); v != "" {
		cfg.TemplatePath = v
	}

	dsn, driver := lookup(env, EnvDSN), lookup(env, EnvDriver)
	if dsn == "" && driver == "" {
		return cfg
	}

	conns := make(map[string]Connection, len(cfg.Connections)+1)
	for k, v := range cfg.Connections {
		conns[k] = v
	}
	name := cfg.CurrentConnection
	if name == "" {
		name = EnvConnection
	}
	conn := conns[name]
	if dsn != "" {
		conn.DSN = dsn
	}
	if driver != "" {
		conn.Driver = driver
	}
	conns[name] = conn

	cfg.Connections = conns
	cfg.CurrentConnection = name
	return cfg
}

// Validate checks that every connection is usable and that the current
// connection exists.
func (c Config) Validate() error {
	for name, conn := range c.Connections {
		if conn.Driver == "" || conn.DSN == "" {
			return fmt.Errorf("%w: connection %q needs driver and dsn", ErrConfigInvalid, name)
		}
	}
	if c.CurrentConnection != "" {
		if _, ok := c.Connections[c.CurrentConnection]; !ok {
			return fmt.Errorf("%w: current_connection %q is not defined", ErrConfigInvalid, c.CurrentConnection)
		}
	}
	return nil
}

// Connection returns the named connection, or the current one when name is
// empty.
func (c Config) Connection(name string) (Connection, error) {
	if name == "" {
		name = c.CurrentConnection
	}
	conn, ok := c.Connections[name]
	if !ok {
		return Connection{}, fmt.Errorf("%w: %q", ErrConnectionNotFound, name)
	}
	return conn, nil
}

// RememberedTables returns the table selection stored for a connection.
func (c Config) RememberedTables(connection string) []string {
	return c.DocTables[connection]
}

// Remember stores tables as the selection for a connection. An empty
// selection forgets it.
func (c *Config) Remember(connection string, tables []string) {
	if len(tables) == 0 {
		delete(c.DocTables, connection)
		return
	}
	if c.DocTables == nil {
		c.DocTables = make(map[string][]string)
	}
	c.DocTables[connection] = append([]string(nil), tables...)
}

func merge(base, overlay Config) Config {
	if overlay.Connections != nil {
		base.Connections = overlay.Connections
	}
	if overlay.CurrentConnection != "" {
		base.CurrentConnection = overlay.CurrentConnection
	}
	if overlay.TemplatePath != "" {
		base.TemplatePath = overlay.TemplatePath
	}
	if overlay.OutputDir != "" {
		base.OutputDir = overlay.OutputDir
	}
	if overlay.TableSheetTemplate != "" {
		base.TableSheetTemplate = overlay.TableSheetTemplate
	}
	if overlay.DocTables != nil {
		base.DocTables = overlay.DocTables
	}
	return base
}

// lookup searches env (KEY=value entries) and falls back to os.Getenv when
// env is nil.
func lookup(env []string, key string) string {
	if env == nil {
		return os.Getenv(key)
	}
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, key+"="); ok {
			return after
		}
	}
	return ""
}
