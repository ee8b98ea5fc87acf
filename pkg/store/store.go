// Package store provides the persistence backends passages save through.
//
// Every backend implements [story.Saver]: it receives the attribute delta of
// one passage and returns the passage's persisted id, allocating the next
// number of a per-backend sequence for passages that have none yet. Ids that
// already exist elsewhere, such as in a story file, are announced with
// [Store.Reserve] so the sequence never hands them out again.
//
//   - [NullSaver] keeps only the sequence, in memory.
//   - [FileSaver] writes one JSON document per passage.
//   - [RedisSaver] keeps a hash per passage and a set per story.
//   - [MongoSaver] upserts one document per passage.
//
// [Open] picks a backend from a [Config].
package store

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/passages/pkg/story"
)

// Backend names accepted in [Config].
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Store is a [story.Saver] holding resources that must be released.
type Store interface {
	story.Saver

	// Reserve moves the id sequence past id so that it is never allocated
	// to a new passage. Ids that are not positive integers are ignored.
	Reserve(ctx context.Context, id string) error

	Close() error
}

// Config selects and configures a backend. It maps onto the [store] table of
// the CLI config file.
type Config struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPrefix   string `toml:"redis_prefix"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Backend:       BackendFile,
		RedisAddr:     "localhost:6379",
		RedisPrefix:   "passages",
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "passages",
	}
}

// Open connects the backend named by cfg.Backend. An empty backend means
// [BackendNone]. logger may be nil.
func Open(ctx context.Context, cfg Config, logger *log.Logger) (Store, error) {
	logger = orDiscard(logger)
	switch cfg.Backend {
	case "", BackendNone:
		return NewNullSaver(), nil
	case BackendFile:
		return NewFileSaver(cfg.Dir, logger)
	case BackendRedis:
		return NewRedisSaver(ctx, cfg.RedisAddr, cfg.RedisPrefix, logger)
	case BackendMongo:
		return NewMongoSaver(ctx, cfg.MongoURI, cfg.MongoDatabase, logger)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// seqNumber parses a sequence id. ok is false for ids the sequence could
// never have produced.
func seqNumber(id string) (n int64, ok bool) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
