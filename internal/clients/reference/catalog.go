// Package reference is the client for the simulator's static reference data:
// description tables shipped with the web assets.
package reference

//go:generate mockgen -destination=mock/mock_catalog.go -package=referencemock github.com/KirkDiggler/simui-api/internal/clients/reference Catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/KirkDiggler/simui-api/internal/entities/sim"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/redis"
)

// EnchantDescriptionsPath is the asset holding enchant descriptions keyed by
// enchant effect ID
const EnchantDescriptionsPath = "/wotlk/assets/enchants/descriptions.json"

const cacheKeyPrefix = "reference:"

// Catalog serves reference description tables
type Catalog interface {
	// Descriptions returns the table at path. The first call fetches it and
	// every later call is served from memory. The returned map must not be
	// modified.
	Descriptions(ctx context.Context, path string) (map[int32]string, error)

	// EnchantDescription returns the description of an enchant, or its name
	// when descriptions are unavailable
	EnchantDescription(ctx context.Context, enchant sim.Enchant) string
}

// Config configures the catalog
type Config struct {
	// BaseURL of the asset host (optional, defaults to https://wowsims.github.io)
	BaseURL string
	// HTTPTimeout for asset requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// HTTPClient overrides the client built from HTTPTimeout (optional)
	HTTPClient *http.Client
	// Redis is an optional second-level cache shared between processes
	Redis redis.Client
	// RedisTTL of second-level entries (optional, defaults to 24 hours)
	RedisTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://wowsims.github.io"
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return errors.InvalidArgumentf("base URL %q must be http or https", cfg.BaseURL)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.RedisTTL == 0 {
		cfg.RedisTTL = 24 * time.Hour
	}
	return nil
}

type catalog struct {
	baseURL  string
	http     *http.Client
	redis    redis.Client
	redisTTL time.Duration

	group singleflight.Group
	mu    sync.RWMutex
	cache map[string]map[int32]string
}

// New creates a catalog
func New(cfg *Config) (Catalog, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid reference config")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &catalog{
		baseURL:  cfg.BaseURL,
		http:     httpClient,
		redis:    cfg.Redis,
		redisTTL: cfg.RedisTTL,
		cache:    make(map[string]map[int32]string),
	}, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog Catalog
)

// Default returns the process-wide catalog, created on first use
func Default() Catalog {
	defaultOnce.Do(func() {
		c, err := New(&Config{})
		if err != nil {
			// defaults always validate
			panic(err)
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

func (c *catalog) cached(path string) (map[int32]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	table, ok := c.cache[path]
	return table, ok
}

// Descriptions returns the table at path. Concurrent first calls share one
// fetch. A caller whose ctx ends stops waiting, but the fetch keeps going for
// the others. Failures are not cached, so the next call retries.
func (c *catalog) Descriptions(ctx context.Context, path string) (map[int32]string, error) {
	if table, ok := c.cached(path); ok {
		return table, nil
	}

	ch := c.group.DoChan(path, func() (interface{}, error) {
		return c.load(context.WithoutCancel(ctx), path)
	})

	select {
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, errors.DeadlineExceededf("gave up waiting for %s", path)
		}
		return nil, errors.Canceledf("gave up waiting for %s", path)
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(map[int32]string), nil
	}
}

func (c *catalog) load(ctx context.Context, path string) (map[int32]string, error) {
	if table, ok := c.cached(path); ok {
		return table, nil
	}

	table := c.loadShared(ctx, path)
	if table == nil {
		var err error
		table, err = c.fetch(ctx, path)
		if err != nil {
			return nil, err
		}
		c.storeShared(ctx, path, table)
	}

	c.mu.Lock()
	c.cache[path] = table
	c.mu.Unlock()
	return table, nil
}

func (c *catalog) fetch(ctx context.Context, path string) (map[int32]string, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.FetchFailure(err, path)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.FetchFailure(err, path)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.FetchFailure(errors.Unavailablef("unexpected status %s", resp.Status), path)
	}

	var raw map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.FetchFailure(err, path)
	}
	table, err := parseTable(raw)
	if err != nil {
		return nil, errors.FetchFailure(err, path)
	}

	slog.Info("fetched reference data",
		"path", path,
		"entries", len(table),
		"duration", time.Since(start))
	return table, nil
}

func parseTable(raw map[string]string) (map[int32]string, error) {
	table := make(map[int32]string, len(raw))
	for key, desc := range raw {
		id, err := strconv.ParseInt(key, 10, 32)
		if err != nil {
			return nil, errors.InvalidArgumentf("invalid id %q", key)
		}
		table[int32(id)] = desc
	}
	return table, nil
}

// loadShared reads the second-level cache. A miss returns a nil table. Redis
// errors are logged and treated as a miss.
func (c *catalog) loadShared(ctx context.Context, path string) map[int32]string {
	if c.redis == nil {
		return nil
	}

	raw, err := c.redis.HGetAll(ctx, cacheKeyPrefix+path).Result()
	if err != nil {
		slog.Warn("reference cache read failed", "path", path, "error", err)
		return nil
	}
	if len(raw) == 0 {
		return nil
	}

	table, err := parseTable(raw)
	if err != nil {
		slog.Warn("reference cache entry is corrupt", "path", path, "error", err)
		return nil
	}
	return table
}

func (c *catalog) storeShared(ctx context.Context, path string, table map[int32]string) {
	if c.redis == nil || len(table) == 0 {
		return
	}

	fields := make(map[string]interface{}, len(table))
	for id, desc := range table {
		fields[strconv.FormatInt(int64(id), 10)] = desc
	}

	key := cacheKeyPrefix + path
	pipe := c.redis.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, c.redisTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Warn("reference cache write failed", "path", path, "error", err)
	}
}

// EnchantDescription never fails: when descriptions cannot be fetched the
// enchant name is used.
func (c *catalog) EnchantDescription(ctx context.Context, enchant sim.Enchant) string {
	table, err := c.Descriptions(ctx, EnchantDescriptionsPath)
	if err != nil {
		slog.Warn("using enchant name, descriptions unavailable",
			"effect_id", enchant.EffectID,
			"error", err)
		return enchant.Name
	}
	if desc := table[enchant.EffectID]; desc != "" {
		return desc
	}
	return enchant.Name
}
