package config

import "errors"

var (
	ErrReadFile     = errors.New("config: failed to read config file")
	ErrParseFile    = errors.New("config: failed to parse config file")
	ErrNoEnv        = errors.New("config: no active environment declared (env or app_env)")
	ErrUnknownEnv   = errors.New("config: active environment has no matching block")
	ErrSchema       = errors.New("config: schema validation failed")
	ErrKeyNotFound  = errors.New("config: key not found")
	ErrTypeMismatch = errors.New("config: value has unexpected type")
)
