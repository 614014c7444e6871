package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis stores the offset under a prefixed key.
type Redis struct {
	client *redis.Client
	key    string
}

// NewRedis connects to addr and verifies the connection.
func NewRedis(ctx context.Context, addr, password string, db int, prefix string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &Redis{client: client, key: prefix + PositionKey}, nil
}

func (r *Redis) Load(ctx context.Context) (Position, bool, error) {
	raw, err := r.client.Get(ctx, r.key).Result()
	if errors.Is(err, redis.Nil) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, fmt.Errorf("reading position: %w", err)
	}
	pos, err := decode(raw)
	if err != nil {
		return Position{}, false, err
	}
	return pos, true, nil
}

func (r *Redis) Save(ctx context.Context, pos Position) error {
	raw, err := encode(pos)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("writing position: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
