package redis

import (
	"github.com/redis/go-redis/v9"
)

// Client is the subset of go-redis the repositories and caches use. Single
// node, cluster and sentinel clients all satisfy it.
type Client interface {
	redis.UniversalClient
}
