// Package settings holds runtime switches RH can flip without a redeploy.
package settings

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"

	"github.com/redis/go-redis/v9"
)

// KeyCoachValidationOnly is the Redis key holding the coach-validation switch.
const KeyCoachValidationOnly = "trainhub:settings:coach_validation_only"

// Static keeps the switch in process memory. Used when Redis is not configured.
type Static struct {
	coachOnly atomic.Bool
}

func NewStatic(coachValidationOnly bool) *Static {
	s := &Static{}
	s.coachOnly.Store(coachValidationOnly)
	return s
}

func (s *Static) CoachValidationOnly(context.Context) (bool, error) {
	return s.coachOnly.Load(), nil
}

func (s *Static) SetCoachValidationOnly(_ context.Context, enabled bool) error {
	s.coachOnly.Store(enabled)
	return nil
}

// Redis shares the switch across instances. A missing key falls back to the
// configured default.
type Redis struct {
	client   redis.UniversalClient
	fallback bool
}

func NewRedis(client redis.UniversalClient, fallback bool) *Redis {
	return &Redis{client: client, fallback: fallback}
}

func (r *Redis) CoachValidationOnly(ctx context.Context) (bool, error) {
	v, err := r.client.Get(ctx, KeyCoachValidationOnly).Result()
	if errors.Is(err, redis.Nil) {
		return r.fallback, nil
	}
	if err != nil {
		return false, err
	}
	enabled, err := strconv.ParseBool(v)
	if err != nil {
		return r.fallback, nil
	}
	return enabled, nil
}

func (r *Redis) SetCoachValidationOnly(ctx context.Context, enabled bool) error {
	return r.client.Set(ctx, KeyCoachValidationOnly, strconv.FormatBool(enabled), 0).Err()
}
