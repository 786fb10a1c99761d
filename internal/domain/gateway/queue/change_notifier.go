package queue

import (
	"context"

	"surfcast-api/internal/domain/model"
)

// ChangeNotifier fans out location changes after successful writes
type ChangeNotifier interface {
	Notify(ctx context.Context, change model.LocationChange) error
	// Subscribe streams changes until ctx is done, then closes the channel
	Subscribe(ctx context.Context) (<-chan model.LocationChange, error)
}
