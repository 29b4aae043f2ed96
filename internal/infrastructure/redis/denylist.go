package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// KeyPrefix is shared with the auth service that writes revoked token ids on logout.
const KeyPrefix = "auth:token:blacklist:"

type existsCmdable interface {
	Exists(ctx context.Context, keys ...string) *redis.IntCmd
}

type Denylist struct {
	rdb existsCmdable
}

func NewDenylist(rdb existsCmdable) *Denylist {
	return &Denylist{rdb: rdb}
}

func (d *Denylist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := d.rdb.Exists(ctx, KeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Connect opens a client and checks it with PING.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
