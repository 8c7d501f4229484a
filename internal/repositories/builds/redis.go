package builds

import (
	"context"
	"encoding/json"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/simui-api/internal/entities"
	"github.com/KirkDiggler/simui-api/internal/errors"
	"github.com/KirkDiggler/simui-api/internal/pkg/clock"
	"github.com/KirkDiggler/simui-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/simui-api/internal/redis"
)

const (
	buildKeyPrefix = "build:"

	// Error messages
	errBuildIDEmpty  = "build ID cannot be empty"
	errSnapshotEmpty = "snapshot cannot be nil"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client      redisclient.Client
	Clock       clock.Clock
	IDGenerator idgen.Generator
	// TTL expires builds that are not updated. Zero keeps them forever.
	TTL time.Duration
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	vb := errors.NewValidationBuilder()
	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.TTL < 0 {
		vb.InvalidField("TTL", "cannot be negative")
	}
	return vb.Build()
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
	idGen  idgen.Generator
	ttl    time.Duration
}

// NewRedis creates a Redis-backed build repository
func NewRedis(cfg *Config) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
		idGen:  cfg.IDGenerator,
		ttl:    cfg.TTL,
	}, nil
}

var _ Repository = (*redisRepository)(nil)

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Snapshot == nil {
		return nil, errors.InvalidArgument(errSnapshotEmpty)
	}

	now := r.clock.Now()
	build := &entities.Build{
		ID:        r.idGen.Generate(),
		Snapshot:  input.Snapshot,
		CreatedAt: now,
		UpdatedAt: now,
	}

	data, err := json.Marshal(build)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal build")
	}

	ok, err := r.client.SetNX(ctx, GetKey(build.ID), data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create build %s", build.ID)
	}
	if !ok {
		return nil, errors.AlreadyExistsf("build %s already exists", build.ID)
	}

	return &CreateOutput{Build: build}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBuildIDEmpty)
	}

	build, err := r.get(ctx, r.client, input.ID)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Build: build}, nil
}

func (r *redisRepository) get(ctx context.Context, c redis.Cmdable, id string) (*entities.Build, error) {
	result, err := c.Get(ctx, GetKey(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("build %s not found", id)
		}
		return nil, errors.Wrapf(err, "failed to get build %s", id)
	}

	var build entities.Build
	if err := json.Unmarshal([]byte(result), &build); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal build %s", id)
	}
	return &build, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBuildIDEmpty)
	}
	if input.Snapshot == nil {
		return nil, errors.InvalidArgument(errSnapshotEmpty)
	}

	key := GetKey(input.ID)
	var build *entities.Build
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		existing, err := r.get(ctx, tx, input.ID)
		if err != nil {
			return err
		}
		if existing.Revision != input.Revision {
			return errors.Abortedf("build %s is at revision %d, edit was based on %d",
				input.ID, existing.Revision, input.Revision).
				WithMeta("build_id", input.ID).
				WithMeta("revision", existing.Revision)
		}

		build = &entities.Build{
			ID:        existing.ID,
			Revision:  existing.Revision + 1,
			Snapshot:  input.Snapshot,
			CreatedAt: existing.CreatedAt,
			UpdatedAt: r.clock.Now(),
		}
		data, err := json.Marshal(build)
		if err != nil {
			return errors.Wrap(err, "failed to marshal build")
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		return err
	}, key)
	switch {
	case err == redis.TxFailedErr:
		return nil, errors.Abortedf("build %s changed during update", input.ID).
			WithMeta("build_id", input.ID)
	case err != nil:
		return nil, errors.Wrapf(err, "failed to update build %s", input.ID)
	}

	return &UpdateOutput{Build: build}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errBuildIDEmpty)
	}

	deleted, err := r.client.Del(ctx, GetKey(input.ID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete build %s", input.ID)
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("build %s not found", input.ID)
	}

	return &DeleteOutput{}, nil
}

// GetKey returns the Redis key of a build
func GetKey(id string) string {
	return buildKeyPrefix + id
}
