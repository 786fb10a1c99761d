package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"surfcast-api/pkg/log"
)

// MessageHandler processes one message received on a channel
type MessageHandler interface {
	HandleMessage(ctx context.Context, channel string, payload string) error
}

// HandlerFunc adapts a function to MessageHandler
type HandlerFunc func(ctx context.Context, channel string, payload string) error

func (f HandlerFunc) HandleMessage(ctx context.Context, channel string, payload string) error {
	return f(ctx, channel, payload)
}

// Publisher publishes messages on namespaced channels
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// Channel returns the full channel name for channel
func (p *Publisher) Channel(channel string) string {
	return p.client.config.namespaced(channel)
}

// Publish sends a raw string/bytes message
func (p *Publisher) Publish(ctx context.Context, channel string, message any) error {
	if err := p.client.client.Publish(ctx, p.Channel(channel), message).Err(); err != nil {
		return fmt.Errorf("failed to publish on %s: %w", channel, err)
	}
	return nil
}

// PublishJSON encodes message as JSON before publishing
func (p *Publisher) PublishJSON(ctx context.Context, channel string, message any) error {
	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return p.Publish(ctx, channel, data)
}

// Subscriber delivers messages from namespaced channels to a handler
type Subscriber struct {
	client    *Client
	handler   MessageHandler
	mu        sync.Mutex
	sub       *redis.PubSub
	running   atomic.Bool
	processed atomic.Int64
	failed    atomic.Int64
}

func NewSubscriber(client *Client, handler MessageHandler) *Subscriber {
	return &Subscriber{client: client, handler: handler}
}

// Subscribe opens the subscription and waits for the server confirmation
func (s *Subscriber) Subscribe(ctx context.Context, channels ...string) error {
	if len(channels) == 0 {
		return fmt.Errorf("at least one channel is required")
	}
	names := make([]string, len(channels))
	for i, channel := range channels {
		names[i] = s.client.config.namespaced(channel)
	}

	sub := s.client.client.Subscribe(ctx, names...)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("failed to subscribe to %v: %w", names, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub != nil {
		_ = s.sub.Close()
	}
	s.sub = sub
	return nil
}

// Start delivers messages sequentially until ctx is done or Close is called. It blocks.
func (s *Subscriber) Start(ctx context.Context) {
	s.mu.Lock()
	sub := s.sub
	s.mu.Unlock()
	if sub == nil {
		log.Error("redis subscriber started without subscription")
		return
	}

	s.running.Store(true)
	defer s.running.Store(false)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-ch:
			if !ok {
				return
			}
			if err := s.handler.HandleMessage(ctx, m.Channel, m.Payload); err != nil {
				s.failed.Add(1)
				log.Warnf("redis subscriber failed to handle message on %s: %v", m.Channel, err)
				continue
			}
			s.processed.Add(1)
		}
	}
}

// Close ends the subscription
func (s *Subscriber) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sub == nil {
		return nil
	}
	err := s.sub.Close()
	s.sub = nil
	return err
}

// Stats reports whether the subscriber loop is running and how many messages it handled
func (s *Subscriber) Stats() (running bool, processed, failed int64) {
	return s.running.Load(), s.processed.Load(), s.failed.Load()
}
