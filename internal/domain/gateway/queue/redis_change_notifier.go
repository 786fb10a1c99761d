package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"surfcast-api/internal/domain/model"
	"surfcast-api/pkg/redis"
)

const ChangesChannel = "location-changes"

// RedisChangeNotifier publishes changes on a redis channel so every instance sees them
type RedisChangeNotifier struct {
	client    *redis.Client
	publisher *redis.Publisher
	channel   string
}

var _ ChangeNotifier = (*RedisChangeNotifier)(nil)

func NewRedisChangeNotifier(client *redis.Client) *RedisChangeNotifier {
	return &RedisChangeNotifier{
		client:    client,
		publisher: redis.NewPublisher(client),
		channel:   ChangesChannel,
	}
}

func (n *RedisChangeNotifier) Notify(ctx context.Context, change model.LocationChange) error {
	if err := n.publisher.PublishJSON(ctx, n.channel, change); err != nil {
		return fmt.Errorf("failed to notify %s change: %w", change.Type, err)
	}
	return nil
}

func (n *RedisChangeNotifier) Subscribe(ctx context.Context) (<-chan model.LocationChange, error) {
	ch := make(chan model.LocationChange, subscriberBuffer)

	subscriber := redis.NewSubscriber(n.client, redis.HandlerFunc(func(ctx context.Context, channel, payload string) error {
		var change model.LocationChange
		if err := json.Unmarshal([]byte(payload), &change); err != nil {
			return fmt.Errorf("failed to decode change: %w", err)
		}
		select {
		case ch <- change:
		case <-ctx.Done():
		}
		return nil
	}))
	if err := subscriber.Subscribe(ctx, n.channel); err != nil {
		return nil, err
	}

	go func() {
		defer close(ch)
		defer func() { _ = subscriber.Close() }()
		subscriber.Start(ctx)
	}()
	return ch, nil
}
