package store

import (
	"context"
	"fmt"
)

// Options selects and configures a backend.
type Options struct {
	Driver        string `yaml:"driver" koanf:"driver"`
	SQLitePath    string `yaml:"sqlite_path" koanf:"sqlite_path"`
	RedisAddr     string `yaml:"redis_addr" koanf:"redis_addr"`
	RedisPassword string `yaml:"redis_password" koanf:"redis_password"`
	RedisDB       int    `yaml:"redis_db" koanf:"redis_db"`
	RedisPrefix   string `yaml:"redis_prefix" koanf:"redis_prefix"`
}

// Drivers lists the accepted Options.Driver values.
var Drivers = []string{"sqlite", "redis", "memory"}

// Open returns the backend named by opts.Driver.
func Open(ctx context.Context, opts Options) (PositionStore, error) {
	switch opts.Driver {
	case "", "sqlite":
		return OpenSQLite(opts.SQLitePath)
	case "redis":
		return NewRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.RedisPrefix)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
