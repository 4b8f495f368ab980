package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// App is the typed view of one environment block.
type App struct {
	Port     int      `json:"port"`
	Host     string   `json:"host"`
	Database Database `json:"database"`
	Log      Log      `json:"log"`
}

// Database holds connection parameters for the backing store.
type Database struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	Database string `json:"database"`
	MaxConns int32  `json:"max_conns"`
	MinConns int32  `json:"min_conns"`
}

// URL renders the block as a postgres:// connection string.
func (d Database) URL() string {
	host := d.Host
	if d.Port > 0 {
		host = fmt.Sprintf("%s:%d", d.Host, d.Port)
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   host,
		Path:   "/" + d.Database,
	}
	return u.String()
}

// Log holds file logging settings.
type Log struct {
	Directory string `json:"directory"`
}

// Config is a loaded configuration scoped to the active environment.
type Config struct {
	// Env is the active environment name ("development", "production", ...).
	Env string

	// App is the decoded active environment block.
	App App

	// raw keeps the active block for dotted-path lookups.
	raw map[string]any
}

// IsProduction reports whether the active environment is "production".
// Error responses switch to generic messages in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads and validates the JSON config file at path.
// The top-level "env" (or "app_env") key selects the active block. Unknown
// keys or type mismatches inside any environment block fail the load.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(ErrReadFile, err)
	}
	return Parse(data)
}

// Parse validates raw JSON config bytes. See Load.
func Parse(data []byte) (*Config, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, errors.Join(ErrParseFile, err)
	}

	env, err := activeEnv(top)
	if err != nil {
		return nil, err
	}

	blockRaw, ok := top[env]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnv, env)
	}

	// Every environment block is validated, not just the active one, so a
	// typo in the production block fails in development too.
	var app App
	var raw map[string]any
	for name, block := range top {
		if name == "env" || name == "app_env" {
			continue
		}
		if err := decodeStrict(block, &App{}); err != nil {
			return nil, fmt.Errorf("%w: environment %q: %w", ErrSchema, name, err)
		}
	}
	if err := decodeStrict(blockRaw, &app); err != nil {
		return nil, fmt.Errorf("%w: environment %q: %w", ErrSchema, env, err)
	}
	if err := json.Unmarshal(blockRaw, &raw); err != nil {
		return nil, errors.Join(ErrParseFile, err)
	}

	return &Config{Env: env, App: app, raw: raw}, nil
}

// activeEnv resolves the top-level env/app_env selector.
func activeEnv(top map[string]json.RawMessage) (string, error) {
	for _, key := range []string{"env", "app_env"} {
		blob, ok := top[key]
		if !ok {
			continue
		}
		var env string
		if err := json.Unmarshal(blob, &env); err != nil {
			return "", fmt.Errorf("%w: %q must be a string", ErrSchema, key)
		}
		if env != "" {
			return env, nil
		}
	}
	return "", ErrNoEnv
}

// decodeStrict unmarshals JSON into v, rejecting unknown keys.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Get returns the raw value at a dotted path in the active environment
// block, e.g. "database.host". Returns ErrKeyNotFound when any path segment
// is missing.
func (c *Config) Get(path string) (any, error) {
	var cur any = map[string]any(c.raw)
	for _, part := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, path)
		}
		cur, ok = m[part]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrKeyNotFound, path)
		}
	}
	return cur, nil
}

// String returns the string value at a dotted path.
func (c *Config) String(path string) (string, error) {
	v, err := c.Get(path)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, want string", ErrTypeMismatch, path, v)
	}
	return s, nil
}

// Int returns the integer value at a dotted path.
// JSON numbers decode as float64; fractional values are a type mismatch.
func (c *Config) Int(path string) (int, error) {
	v, err := c.Get(path)
	if err != nil {
		return 0, err
	}
	f, ok := v.(float64)
	if !ok || f != float64(int(f)) {
		return 0, fmt.Errorf("%w: %q is %T, want integer", ErrTypeMismatch, path, v)
	}
	return int(f), nil
}

// Bool returns the boolean value at a dotted path.
func (c *Config) Bool(path string) (bool, error) {
	v, err := c.Get(path)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%w: %q is %T, want bool", ErrTypeMismatch, path, v)
	}
	return b, nil
}
