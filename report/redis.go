package report

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis"

	"github.com/pontem-network/flashloan-loadgen/errors"
)

// Client is the subset of the redis client used by the RedisSink
type Client interface {
	RPush(key string, values ...interface{}) *redis.IntCmd
	Close() error
}

type RedisSinkProps struct {
	Addr string
	Key  string
}

// RedisSink appends the records of a run to the redis list
// <key>:<runId>, so that the results of several generators can be
// collected in a single place
type RedisSink struct {
	client Client
	key    string
}

// NewRedisSink creates a sink connected to a single redis instance
func NewRedisSink(props RedisSinkProps) *RedisSink {
	return NewRedisSinkWithClient(redis.NewClient(&redis.Options{
		Addr: props.Addr,
	}), props.Key)
}

func NewRedisSinkWithClient(client Client, key string) *RedisSink {
	return &RedisSink{client: client, key: key}
}

// ListKey returns the key of the list that holds the records of a run
func (s *RedisSink) ListKey(runID string) string {
	return s.key + ":" + runID
}

// Write implementation of Sink for RedisSink
func (s *RedisSink) Write(ctx context.Context, record Record) error {
	serialized, err := json.Marshal(record)
	if err != nil {
		return errors.New(errors.ErrReport, err)
	}

	if err := s.client.RPush(s.ListKey(record.RunID), string(serialized)).Err(); err != nil {
		return errors.New(errors.ErrReport, err)
	}

	return nil
}

// Close implementation of Sink for RedisSink
func (s *RedisSink) Close() error {
	return s.client.Close()
}
