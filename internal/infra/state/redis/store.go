package redisstate

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"room-decorator/internal/repository"
)

// Store is the redis implementation of the repository.Store contract.
// Every key is namespaced with a configurable prefix so multiple
// deployments can share one redis instance.
type Store struct {
	client    *redis.Client
	keyPrefix string
}

// NewStore creates a redis-backed Store.
func NewStore(client *redis.Client, keyPrefix string) *Store {
	if client == nil {
		panic("redis client cannot be nil for Store")
	}
	return &Store{client: client, keyPrefix: keyPrefix}
}

func (s *Store) prefixed(key string) string {
	return s.keyPrefix + key
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.prefixed(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("redis: get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefixed(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.prefixed(key)).Err(); err != nil {
		return fmt.Errorf("redis: del %s: %w", key, err)
	}
	return nil
}

func (s *Store) AddToSet(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := s.client.SAdd(ctx, s.prefixed(key), args...).Err(); err != nil {
		return fmt.Errorf("redis: sadd %s: %w", key, err)
	}
	return nil
}

func (s *Store) RemoveFromSet(ctx context.Context, key string, members ...string) error {
	if len(members) == 0 {
		return nil
	}
	args := make([]interface{}, len(members))
	for i, m := range members {
		args[i] = m
	}
	if err := s.client.SRem(ctx, s.prefixed(key), args...).Err(); err != nil {
		return fmt.Errorf("redis: srem %s: %w", key, err)
	}
	return nil
}

func (s *Store) SetMembers(ctx context.Context, key string) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.prefixed(key)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: smembers %s: %w", key, err)
	}
	return members, nil
}

func (s *Store) IsSetMember(ctx context.Context, key, member string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, s.prefixed(key), member).Result()
	if err != nil {
		return false, fmt.Errorf("redis: sismember %s: %w", key, err)
	}
	return ok, nil
}

func (s *Store) AddScored(ctx context.Context, key, member string, score float64) error {
	err := s.client.ZAdd(ctx, s.prefixed(key), &redis.Z{Score: score, Member: member}).Err()
	if err != nil {
		return fmt.Errorf("redis: zadd %s: %w", key, err)
	}
	return nil
}

func (s *Store) IncrementScore(ctx context.Context, key, member string, delta float64) (float64, error) {
	score, err := s.client.ZIncrBy(ctx, s.prefixed(key), delta, member).Result()
	if err != nil {
		return 0, fmt.Errorf("redis: zincrby %s: %w", key, err)
	}
	return score, nil
}

func (s *Store) RemoveScored(ctx context.Context, key, member string) error {
	if err := s.client.ZRem(ctx, s.prefixed(key), member).Err(); err != nil {
		return fmt.Errorf("redis: zrem %s: %w", key, err)
	}
	return nil
}

// RangeDescending relies on redis ordering equal scores by member
// descending under ZREVRANGE; members with equal scores are re-sorted
// ascending here so the tie-break matches the documented contract.
func (s *Store) RangeDescending(ctx context.Context, key string, start, stop int64) ([]string, error) {
	zs, err := s.client.ZRevRangeWithScores(ctx, s.prefixed(key), start, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: zrevrange %s: %w", key, err)
	}
	members := make([]string, len(zs))
	for i, z := range zs {
		members[i] = z.Member.(string)
	}
	// Reverse each run of equal scores: ZREVRANGE yields ties in member
	// descending order, the contract wants ascending.
	for i := 0; i < len(zs); {
		j := i + 1
		for j < len(zs) && zs[j].Score == zs[i].Score {
			j++
		}
		for l, r := i, j-1; l < r; l, r = l+1, r-1 {
			members[l], members[r] = members[r], members[l]
		}
		i = j
	}
	return members, nil
}

func (s *Store) RankDescending(ctx context.Context, key, member string) (int64, error) {
	rank, err := s.client.ZRevRank(ctx, s.prefixed(key), member).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("redis: zrevrank %s: %w", key, err)
	}
	return rank, nil
}
