package pool

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// key layout shared with the original loader scripts
const (
	seqKeyPrefix = "sequences:length:"
	metaSuffix   = ":metadata"
)

// RedisStore keeps each length bucket in a redis set under
// sequences:length:<n> with build metadata alongside
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to redis at the passed address
func NewRedisStore(addr string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Ping verifies the connection
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the client's connections
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func seqKey(length int) string {
	return seqKeyPrefix + strconv.Itoa(length)
}

// Members returns every sequence of the length
func (s *RedisStore) Members(ctx context.Context, length int) ([]string, error) {
	members, err := s.client.SMembers(ctx, seqKey(length)).Result()
	if err != nil {
		return nil, fmt.Errorf("pool: reading members for length %d: %w", length, err)
	}
	return members, nil
}

// AddMembers merges sequences into the length's set
func (s *RedisStore) AddMembers(ctx context.Context, length int, seqs []string) error {
	if len(seqs) == 0 {
		return nil
	}

	args := make([]interface{}, len(seqs))
	for i, seq := range seqs {
		args[i] = seq
	}

	if err := s.client.SAdd(ctx, seqKey(length), args...).Err(); err != nil {
		return fmt.Errorf("pool: adding members for length %d: %w", length, err)
	}
	return nil
}

// Count returns the size of the length's set
func (s *RedisStore) Count(ctx context.Context, length int) (int, error) {
	n, err := s.client.SCard(ctx, seqKey(length)).Result()
	if err != nil {
		return 0, fmt.Errorf("pool: counting length %d: %w", length, err)
	}
	return int(n), nil
}

// RandomSample returns up to n distinct members of the length's set
func (s *RedisStore) RandomSample(ctx context.Context, length int, n int) ([]string, error) {
	members, err := s.client.SRandMemberN(ctx, seqKey(length), int64(n)).Result()
	if err != nil {
		return nil, fmt.Errorf("pool: sampling length %d: %w", length, err)
	}
	return members, nil
}

// Lengths scans for every populated bucket
func (s *RedisStore) Lengths(ctx context.Context) ([]int, error) {
	keys, err := s.client.Keys(ctx, seqKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("pool: listing lengths: %w", err)
	}

	var lengths []int
	for _, key := range keys {
		if strings.HasSuffix(key, metaSuffix) {
			continue
		}
		length, err := strconv.Atoi(strings.TrimPrefix(key, seqKeyPrefix))
		if err != nil {
			continue
		}
		lengths = append(lengths, length)
	}

	return lengths, nil
}

// SetMetadata stores build information as JSON next to the set
func (s *RedisStore) SetMetadata(ctx context.Context, length int, meta Metadata) error {
	payload, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	if err := s.client.Set(ctx, seqKey(length)+metaSuffix, payload, 0).Err(); err != nil {
		return fmt.Errorf("pool: writing metadata for length %d: %w", length, err)
	}
	return nil
}

// Metadata returns the recorded build information
func (s *RedisStore) Metadata(ctx context.Context, length int) (Metadata, error) {
	payload, err := s.client.Get(ctx, seqKey(length)+metaSuffix).Result()
	if err == redis.Nil {
		return Metadata{}, nil
	}
	if err != nil {
		return Metadata{}, fmt.Errorf("pool: reading metadata for length %d: %w", length, err)
	}

	var meta Metadata
	if err := json.Unmarshal([]byte(payload), &meta); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}
