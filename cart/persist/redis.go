package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/0nyxlabs/merchanding/cart"
)

// RedisPersister keeps the serialized cart item table as a RedisJSON document
// at the namespace key.
type RedisPersister struct {
	cache *redis.Client
	key   string
}

func NewRedisPersister(cache *redis.Client, namespace string) *RedisPersister {
	return &RedisPersister{cache: cache, key: namespace}
}

func (p *RedisPersister) Load(c context.Context) ([]cart.Item, error) {
	jsonCache, err := p.cache.JSONGet(c, p.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed finding cart in cache key=%s with error=%w", p.key, err)
	}
	if jsonCache == "" {
		return nil, nil
	}

	items := []cart.Item{}
	err = json.Unmarshal([]byte(jsonCache), &items)
	if err != nil {
		return nil, fmt.Errorf("failed unmarshaling cached cart key=%s with error=%w", p.key, err)
	}
	return items, nil
}

func (p *RedisPersister) Save(c context.Context, items []cart.Item) error {
	err := p.cache.JSONSet(c, p.key, "$", items).Err()
	if err != nil {
		return fmt.Errorf("failed inserting cart to cache key=%s with error=%w", p.key, err)
	}
	return nil
}

func (p *RedisPersister) Delete(c context.Context) error {
	err := p.cache.JSONDel(c, p.key, "$").Err()
	if err != nil {
		return fmt.Errorf("failed deleting cart from cache key=%s with error=%w", p.key, err)
	}
	return nil
}
