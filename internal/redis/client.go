// Package redis builds go-redis clients for the build store and the
// reference cache
package redis

import (
	"crypto/tls"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/simui-api/internal/errors"
)

// Options tunes the connection pool shared by every client mode
type Options struct {
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	ConnMaxIdleTime time.Duration
	MaxRetries      int
	UseTLS          bool
	// ReadOnly routes reads to replicas in cluster mode
	ReadOnly bool
}

func (o *Options) tlsConfig() *tls.Config {
	if !o.UseTLS {
		return nil
	}
	return &tls.Config{
		InsecureSkipVerify: true, // #nosec G402 self-signed certs in dev clusters
	}
}

// NewClient creates a client for a single node
func NewClient(endpoint string, opts *Options) (Client, error) {
	if endpoint == "" {
		return nil, errors.InvalidArgument("redis endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	return redis.NewClient(&redis.Options{
		Addr:            endpoint,
		Password:        opts.Password,
		DB:              opts.DB,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
		TLSConfig:       opts.tlsConfig(),
	}), nil
}

// NewClusterClient creates a cluster client. DB is ignored in cluster mode.
func NewClusterClient(endpoints []string, opts *Options) (Client, error) {
	if len(endpoints) == 0 {
		return nil, errors.InvalidArgument("at least one redis endpoint is required")
	}
	if opts == nil {
		opts = &Options{}
	}

	return redis.NewClusterClient(&redis.ClusterOptions{
		Addrs:           endpoints,
		Password:        opts.Password,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
		ReadOnly:        opts.ReadOnly,
		TLSConfig:       opts.tlsConfig(),
	}), nil
}

// NewFailoverClient creates a client that follows the master elected by
// sentinels
func NewFailoverClient(masterName string, sentinelAddrs []string, opts *Options) (Client, error) {
	vb := errors.NewValidationBuilder()
	if masterName == "" {
		vb.RequiredField("master_name")
	}
	if len(sentinelAddrs) == 0 {
		vb.RequiredField("sentinel_addrs")
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &Options{}
	}

	return redis.NewFailoverClient(&redis.FailoverOptions{
		MasterName:      masterName,
		SentinelAddrs:   sentinelAddrs,
		Password:        opts.Password,
		DB:              opts.DB,
		MinIdleConns:    opts.MinIdleConns,
		PoolSize:        opts.PoolSize,
		ConnMaxIdleTime: opts.ConnMaxIdleTime,
		MaxRetries:      opts.MaxRetries,
		TLSConfig:       opts.tlsConfig(),
	}), nil
}

// Open picks the client mode: sentinel when masterName is set, cluster when
// addrs holds more than one comma separated endpoint, else a single node
func Open(addrs, masterName string, opts *Options) (Client, error) {
	var endpoints []string
	for _, a := range strings.Split(addrs, ",") {
		if a = strings.TrimSpace(a); a != "" {
			endpoints = append(endpoints, a)
		}
	}

	switch {
	case masterName != "":
		return NewFailoverClient(masterName, endpoints, opts)
	case len(endpoints) > 1:
		return NewClusterClient(endpoints, opts)
	case len(endpoints) == 1:
		return NewClient(endpoints[0], opts)
	default:
		return nil, errors.InvalidArgument("redis endpoint is required")
	}
}
