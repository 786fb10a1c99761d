package queue

import (
	"context"
	"sync"

	"surfcast-api/internal/domain/model"
	"surfcast-api/pkg/log"
)

const subscriberBuffer = 16

// LocalChangeNotifier delivers changes to subscribers of the same process.
// A subscriber whose buffer is full misses the change instead of blocking writers.
type LocalChangeNotifier struct {
	mu          sync.RWMutex
	subscribers map[chan model.LocationChange]struct{}
}

var _ ChangeNotifier = (*LocalChangeNotifier)(nil)

func NewLocalChangeNotifier() *LocalChangeNotifier {
	return &LocalChangeNotifier{subscribers: make(map[chan model.LocationChange]struct{})}
}

func (n *LocalChangeNotifier) Notify(ctx context.Context, change model.LocationChange) error {
	n.mu.RLock()
	defer n.mu.RUnlock()

	for ch := range n.subscribers {
		select {
		case ch <- change:
		default:
			log.Warnf("dropping %s change for a slow subscriber", change.Type)
		}
	}
	return nil
}

func (n *LocalChangeNotifier) Subscribe(ctx context.Context) (<-chan model.LocationChange, error) {
	ch := make(chan model.LocationChange, subscriberBuffer)

	n.mu.Lock()
	n.subscribers[ch] = struct{}{}
	n.mu.Unlock()

	go func() {
		<-ctx.Done()
		n.mu.Lock()
		delete(n.subscribers, ch)
		n.mu.Unlock()
		close(ch)
	}()
	return ch, nil
}
