// Copyright 2024 Nokia
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package backend

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/iptecharch/ofc-server/pkg/config"
	"github.com/iptecharch/ofc-server/pkg/utils"
)

// redisStore keeps the running configuration serialized under a single key.
// Commits are optimistic: they fail if the key changed since Begin.
type redisStore struct {
	client *redis.Client
	key    string
}

func newRedisStore(ctx context.Context, cfg *config.RedisConfig) (*redisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed connecting to redis %s: %w", cfg.Address, err)
	}
	return &redisStore{
		client: client,
		key:    cfg.Key,
	}, nil
}

func (s *redisStore) portKey(port string) string {
	return s.key + ":port:" + port
}

// getter is satisfied by both the client and a watched transaction.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *redisStore) get(ctx context.Context, c getter) (string, error) {
	v, err := c.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return v, err
}

func (s *redisStore) GetConfig(ctx context.Context) (string, error) {
	return s.get(ctx, s.client)
}

func (s *redisStore) Begin(ctx context.Context) (Txn, error) {
	base, err := s.get(ctx, s.client)
	if err != nil {
		return nil, err
	}
	return &redisTxn{store: s, base: base}, nil
}

func (s *redisStore) Close() error {
	return s.client.Close()
}

func (s *redisStore) SetPortConfig(ctx context.Context, port, leaf, value string) error {
	return s.client.HSet(ctx, s.portKey(port), leaf, value).Err()
}

// PortConfig returns the configuration applied to port.
func (s *redisStore) PortConfig(ctx context.Context, port string) (map[string]string, error) {
	return s.client.HGetAll(ctx, s.portKey(port)).Result()
}

type redisTxn struct {
	store *redisStore
	// value of the key when the transaction began
	base   string
	staged *string
	closed bool
}

func (t *redisTxn) Stage(_ context.Context, c *Change) error {
	if t.closed {
		return ErrTxnClosed
	}
	v, err := utils.SerializeDocument(c.Result)
	if err != nil {
		return err
	}
	t.staged = &v
	return nil
}

func (t *redisTxn) Commit(ctx context.Context) error {
	if t.closed {
		return ErrTxnClosed
	}
	t.closed = true
	if t.staged == nil {
		return nil
	}
	key := t.store.key
	err := t.store.client.Watch(ctx, func(tx *redis.Tx) error {
		cur, err := t.store.get(ctx, tx)
		if err != nil {
			return err
		}
		if cur != t.base {
			return redis.TxFailedErr
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if *t.staged == "" {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, *t.staged, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		log.Errorf("redis commit on %s failed: %v", key, err)
		return err
	}
	return nil
}

func (t *redisTxn) Abort(_ context.Context) error {
	if t.closed {
		return ErrTxnClosed
	}
	t.closed = true
	t.staged = nil
	return nil
}
