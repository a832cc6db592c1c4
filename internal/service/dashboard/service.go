package dashboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"portail-rh/internal/domain"
	"portail-rh/internal/repository"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 5 * time.Minute
)

// Stats is the admin dashboard summary.
type Stats struct {
	TotalRequests   int64 `json:"total_requests"`
	PendingRequests int64 `json:"pending_requests"`
	ChefApproved    int64 `json:"chef_approved"`
	ChefRejected    int64 `json:"chef_rejected"`
	Approved        int64 `json:"approved"`
	Rejected        int64 `json:"rejected"`
	ActiveUsers     int64 `json:"active_users"`
}

type Service interface {
	GetStats(ctx context.Context) (*Stats, error)
}

type service struct {
	reqRepo  repository.RequestRepository
	userRepo repository.UserRepository
	redis    *redis.Client
}

func NewService(reqRepo repository.RequestRepository, userRepo repository.UserRepository, redisClient *redis.Client) Service {
	return &service{reqRepo: reqRepo, userRepo: userRepo, redis: redisClient}
}

func (s *service) GetStats(ctx context.Context) (*Stats, error) {
	// Redis being down degrades to a direct query, never an error.
	if cached, err := s.redis.Get(ctx, statsCacheKey).Bytes(); err == nil {
		var stats Stats
		if err := json.Unmarshal(cached, &stats); err == nil {
			return &stats, nil
		}
	}

	stats, err := s.computeStats(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		s.redis.Set(ctx, statsCacheKey, data, statsCacheTTL)
	}

	return stats, nil
}

func (s *service) computeStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var err error
	if stats.TotalRequests, err = s.reqRepo.CountAll(ctx); err != nil {
		return nil, err
	}

	byStatus := []struct {
		status domain.RequestStatus
		dest   *int64
	}{
		{domain.StatusEnAttente, &stats.PendingRequests},
		{domain.StatusChefApprouve, &stats.ChefApproved},
		{domain.StatusChefRejete, &stats.ChefRejected},
		{domain.StatusApprouvee, &stats.Approved},
		{domain.StatusRejetee, &stats.Rejected},
	}
	for _, c := range byStatus {
		if *c.dest, err = s.reqRepo.CountByStatus(ctx, c.status); err != nil {
			return nil, err
		}
	}

	if stats.ActiveUsers, err = s.userRepo.CountActive(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
