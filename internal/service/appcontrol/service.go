package appcontrol

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"portail-rh/internal/domain"
)

const controlKey = "app:control"

type Service interface {
	Get(ctx context.Context) (*domain.AppControl, error)
	Set(ctx context.Context, actor *domain.User, input domain.UpdateAppControlInput) (*domain.AppControl, error)
}

type service struct {
	redis *redis.Client
}

func NewService(redisClient *redis.Client) Service {
	return &service{redis: redisClient}
}

// Get returns the control document. A missing key means the portal was
// never locked, so the default unlocked document is returned.
func (s *service) Get(ctx context.Context) (*domain.AppControl, error) {
	data, err := s.redis.Get(ctx, controlKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return &domain.AppControl{Locked: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get control document: %w", err)
	}

	var control domain.AppControl
	if err := json.Unmarshal(data, &control); err != nil {
		return nil, fmt.Errorf("decode control document: %w", err)
	}
	return &control, nil
}

func (s *service) Set(ctx context.Context, actor *domain.User, input domain.UpdateAppControlInput) (*domain.AppControl, error) {
	control := &domain.AppControl{
		Locked:      input.Locked,
		Message:     input.Message,
		LastUpdated: time.Now().UTC(),
		UpdatedBy:   actor.Email,
	}

	data, err := json.Marshal(control)
	if err != nil {
		return nil, err
	}

	// No TTL: the lock stays until an admin flips it back.
	if err := s.redis.Set(ctx, controlKey, data, 0).Err(); err != nil {
		return nil, fmt.Errorf("store control document: %w", err)
	}
	return control, nil
}
