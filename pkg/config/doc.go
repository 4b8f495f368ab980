// Package config loads JSON application configuration with per-environment blocks.
//
// The config file declares the active environment at the top level and one
// block per named environment:
//
//	{
//	  "env": "development",
//	  "development": {
//	    "port": 8080,
//	    "host": "127.0.0.1",
//	    "database": {
//	      "host": "localhost",
//	      "port": 5432,
//	      "user": "app",
//	      "password": "secret",
//	      "database": "app_dev",
//	      "max_conns": 10,
//	      "min_conns": 2
//	    },
//	    "log": {"directory": "./logs"}
//	  },
//	  "production": { ... }
//	}
//
// "app_env" is accepted as an alias for "env". Loading fails at startup when
// the file is missing, a block contains unknown keys, or a value has the
// wrong type; configuration errors are never deferred to request time.
//
// # Usage
//
//	cfg, err := config.Load("config.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	addr := fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port)
//	pool, err := db.Connect(ctx, db.Config{ConnectionString: cfg.App.Database.URL()})
//
// Dotted-path lookups are scoped to the active environment block:
//
//	dir, err := cfg.String("log.directory")
//	port, err := cfg.Int("database.port")
package config
