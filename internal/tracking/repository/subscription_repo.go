package repository

import (
	"context"
	"fmt"
	"slices"

	"github.com/redis/go-redis/v9"

	"github.com/GoSim-25-26J-441/sample-tracking-overview/internal/tracking/domain"
)

const (
	subscriptionKeyPrefix = "tracking:subscriptions:" // Set of project codes: tracking:subscriptions:{user_id}
	subscriberKeyPrefix   = "tracking:subscribers:"   // Set of user IDs: tracking:subscribers:{project_code}
)

// SubscriptionRepository stores project subscriptions in Redis.
type SubscriptionRepository struct {
	client *redis.Client
}

func NewSubscriptionRepository(client *redis.Client) *SubscriptionRepository {
	return &SubscriptionRepository{client: client}
}

// ForUser scopes the repository to the subscriptions of one user.
func (r *SubscriptionRepository) ForUser(userID string) *UserSubscriptions {
	return &UserSubscriptions{repo: r, userID: userID}
}

// Subscribers lists the users subscribed to a project.
func (r *SubscriptionRepository) Subscribers(ctx context.Context, projectCode string) ([]string, error) {
	users, err := r.client.SMembers(ctx, subscriberKeyPrefix+projectCode).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get subscribers: %w", err)
	}
	slices.Sort(users)
	return users, nil
}

// UserSubscriptions is the subscription store of one user.
type UserSubscriptions struct {
	repo   *SubscriptionRepository
	userID string
}

func (s *UserSubscriptions) key() string { return subscriptionKeyPrefix + s.userID }

func (s *UserSubscriptions) FindAll(ctx context.Context) ([]domain.Subscription, error) {
	codes, err := s.repo.client.SMembers(ctx, s.key()).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}
	slices.Sort(codes)

	subs := make([]domain.Subscription, 0, len(codes))
	for _, c := range codes {
		subs = append(subs, domain.Subscription{ProjectCode: c})
	}
	return subs, nil
}

func (s *UserSubscriptions) Subscribe(ctx context.Context, projectCode string) error {
	pipe := s.repo.client.TxPipeline()
	pipe.SAdd(ctx, s.key(), projectCode)
	pipe.SAdd(ctx, subscriberKeyPrefix+projectCode, s.userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}
	return nil
}

func (s *UserSubscriptions) Unsubscribe(ctx context.Context, projectCode string) error {
	pipe := s.repo.client.TxPipeline()
	pipe.SRem(ctx, s.key(), projectCode)
	pipe.SRem(ctx, subscriberKeyPrefix+projectCode, s.userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}
