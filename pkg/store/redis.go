package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/passages/pkg/story"
)

// RedisSaver keeps each passage in the hash <prefix>:passage:<id> and the
// ids of a story in the set <prefix>:story:<story>. New ids come from INCR on
// <prefix>:seq, which Reserve raises atomically.
type RedisSaver struct {
	client *redis.Client
	prefix string
	logger *log.Logger
}

// NewRedisSaver connects to addr and checks the connection.
func NewRedisSaver(ctx context.Context, addr, prefix string, logger *log.Logger) (*RedisSaver, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", addr, err)
	}
	return &RedisSaver{client: client, prefix: prefix, logger: orDiscard(logger)}, nil
}

func (s *RedisSaver) Save(ctx context.Context, ref story.SaveRef, delta story.Delta) (string, error) {
	id := ref.ID
	if id == "" {
		n, err := s.client.Incr(ctx, seqKey(s.prefix)).Result()
		if err != nil {
			return "", fmt.Errorf("allocate passage id: %w", err)
		}
		id = strconv.FormatInt(n, 10)
	}

	values, err := hashValues(delta)
	if err != nil {
		return "", err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, passageKey(s.prefix, id), values...)
		if ref.Story != "" {
			pipe.SAdd(ctx, storyKey(s.prefix, ref.Story), id)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("save passage %s: %w", id, err)
	}
	s.logger.Debug("redis store saved passage", "id", id, "fields", delta.Fields())
	return id, nil
}

// reserveScript raises the sequence to ARGV[1] unless it is already there.
var reserveScript = redis.NewScript(`
local cur = tonumber(redis.call("GET", KEYS[1]) or "0")
local n = tonumber(ARGV[1])
if n > cur then
	redis.call("SET", KEYS[1], n)
end
return cur
`)

func (s *RedisSaver) Reserve(ctx context.Context, id string) error {
	n, ok := seqNumber(id)
	if !ok {
		return nil
	}
	if err := reserveScript.Run(ctx, s.client, []string{seqKey(s.prefix)}, n).Err(); err != nil {
		return fmt.Errorf("reserve passage id %s: %w", id, err)
	}
	return nil
}

func (s *RedisSaver) Close() error { return s.client.Close() }

func seqKey(prefix string) string            { return prefix + ":seq" }
func passageKey(prefix, id string) string    { return prefix + ":passage:" + id }
func storyKey(prefix, storyID string) string { return prefix + ":story:" + storyID }

// hashValues flattens delta into HSET field/value pairs in field order.
// Strings are stored as-is, numbers in their shortest form and everything
// else as JSON.
func hashValues(delta story.Delta) ([]any, error) {
	out := make([]any, 0, 2*len(delta))
	for _, field := range delta.Fields() {
		var v string
		switch x := delta[field].(type) {
		case string:
			v = x
		case float64:
			v = strconv.FormatFloat(x, 'f', -1, 64)
		default:
			data, err := json.Marshal(x)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", field, err)
			}
			v = string(data)
		}
		out = append(out, field, v)
	}
	return out, nil
}

var _ Store = (*RedisSaver)(nil)
