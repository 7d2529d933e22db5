package activity

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Publisher appends events to the activity stream. A Publisher without a
// redis client drops events, so the api runs the same with redis disabled.
type Publisher struct {
	queue  *redis.Client
	stream string
	maxLen int64
}

func NewPublisher(queue *redis.Client, stream string) *Publisher {
	return &Publisher{
		queue:  queue,
		stream: stream,
		maxLen: 10000,
	}
}

func (p *Publisher) Publish(ctx context.Context, event Event) error {
	if p == nil || p.queue == nil {
		return nil
	}
	_, err := p.queue.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: event.Values(),
	}).Result()
	return err
}
