package location

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"surfcast-api/internal/domain/entity"
	"surfcast-api/internal/domain/gateway/db"
	"surfcast-api/internal/domain/gateway/queue"
	"surfcast-api/internal/domain/model"
	"surfcast-api/pkg/log"
	"surfcast-api/pkg/msg"
)

type locationUseCase struct {
	dbGateway db.LocationGateway
	notifier  queue.ChangeNotifier
	clock     clockwork.Clock
}

func NewLocationUseCase(dbGateway db.LocationGateway, notifier queue.ChangeNotifier, clock clockwork.Clock) UseCase {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &locationUseCase{
		dbGateway: dbGateway,
		notifier:  notifier,
		clock:     clock,
	}
}

func (uc *locationUseCase) List(ctx context.Context, page int, size int) (*model.Page[entity.SavedLocation], error) {
	locations, err := uc.dbGateway.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}
	return model.Paginate(locations, page, size), nil
}

func (uc *locationUseCase) Get(ctx context.Context, id string) (*entity.SavedLocation, error) {
	location, err := uc.dbGateway.FindByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", entity.ErrLocationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find location %s: %w", id, err)
	}
	return location, nil
}

// Add appends the location after the current last one. The epoch update date marks it as never refreshed.
func (uc *locationUseCase) Add(ctx context.Context, dto model.AddLocationDTO) (*entity.SavedLocation, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	location := dto.ToEntity()

	existing, err := uc.dbGateway.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}

	orderIndex := 0
	background := entity.DefaultBackground()
	for _, saved := range existing {
		if saved.ID() == location.ID {
			return nil, fmt.Errorf("%w: %s", entity.ErrLocationExists, location.ID)
		}
		orderIndex = max(orderIndex, saved.CustomOrderIndex+1)
	}
	if len(existing) > 0 {
		background = existing[len(existing)-1].Background
	}
	if dto.Background != nil {
		background = *dto.Background
	}

	saved := entity.SavedLocation{
		Location:         location,
		DateCreated:      uc.clock.Now(),
		DateUpdated:      time.Unix(0, 0),
		Weather:          []entity.WeatherSample{},
		CustomOrderIndex: orderIndex,
		Background:       background,
	}
	if err := uc.dbGateway.UpsertMany(ctx, []entity.SavedLocation{saved}); err != nil {
		return nil, fmt.Errorf("failed to save location %s: %w", location.ID, err)
	}

	log.Info(msg.GetMessage("location.added", location.Title, orderIndex), zap.String("location_id", location.ID))
	uc.notify(ctx, model.LocationAdded, location.ID)
	return &saved, nil
}

func (uc *locationUseCase) Delete(ctx context.Context, id string) error {
	err := uc.dbGateway.Delete(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return fmt.Errorf("%w: %s", entity.ErrLocationNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("failed to delete location %s: %w", id, err)
	}

	log.Info(msg.GetMessage("location.deleted", id), zap.String("location_id", id))
	uc.notify(ctx, model.LocationDeleted, id)
	return nil
}

func (uc *locationUseCase) Reorder(ctx context.Context, ids []string) ([]entity.SavedLocation, error) {
	existing, err := uc.dbGateway.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}

	byID := make(map[string]entity.SavedLocation, len(existing))
	for _, location := range existing {
		byID[location.ID()] = location
	}

	ordered := make([]entity.SavedLocation, 0, len(existing))
	listed := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := listed[id]; dup {
			return nil, errors.Join(model.ErrInvalidLocation, fmt.Errorf("location %s listed twice", id))
		}
		location, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", entity.ErrLocationNotFound, id)
		}
		listed[id] = struct{}{}
		ordered = append(ordered, location)
	}
	for _, location := range existing {
		if _, ok := listed[location.ID()]; !ok {
			ordered = append(ordered, location)
		}
	}

	for i := range ordered {
		ordered[i].CustomOrderIndex = i
	}
	if err := uc.dbGateway.UpsertMany(ctx, ordered); err != nil {
		return nil, fmt.Errorf("failed to save location order: %w", err)
	}

	changed := make([]string, len(ordered))
	for i, location := range ordered {
		changed[i] = location.ID()
	}
	uc.notify(ctx, model.LocationsReordered, changed...)
	return ordered, nil
}

func (uc *locationUseCase) ChangeBackground(ctx context.Context, id string, background entity.BackgroundVariant) (*entity.SavedLocation, error) {
	if err := background.Validate(); err != nil {
		return nil, errors.Join(model.ErrInvalidLocation, err)
	}

	location, err := uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	location.Background = background
	if err := uc.dbGateway.UpsertMany(ctx, []entity.SavedLocation{*location}); err != nil {
		return nil, fmt.Errorf("failed to save background of %s: %w", id, err)
	}

	log.Info(msg.GetMessage("location.background.changed", id, background), zap.String("location_id", id))
	uc.notify(ctx, model.BackgroundChanged, id)
	return location, nil
}

func (uc *locationUseCase) PreviewLocations() []entity.SavedLocation {
	now := uc.clock.Now()
	return []entity.SavedLocation{
		{
			Location:    entity.Location{ID: "preview-kuta", Latitude: -8.72, Longitude: 115.17, Perpendicular: 80, Title: "Kuta Beach"},
			DateCreated: now,
			DateUpdated: time.Unix(0, 0),
			Weather:     []entity.WeatherSample{},
			Background:  entity.Aurora(1),
		},
		{
			Location:         entity.Location{ID: "preview-uluwatu", Latitude: -8.82, Longitude: 115.09, Perpendicular: 120, Title: "Uluwatu"},
			DateCreated:      now,
			DateUpdated:      time.Unix(0, 0),
			Weather:          []entity.WeatherSample{},
			CustomOrderIndex: 1,
			Background:       entity.Aurora(2),
		},
	}
}

func (uc *locationUseCase) notify(ctx context.Context, changeType model.LocationChangeType, ids ...string) {
	if uc.notifier == nil {
		return
	}
	change := model.LocationChange{Type: changeType, LocationIDs: ids, At: uc.clock.Now()}
	if err := uc.notifier.Notify(ctx, change); err != nil {
		log.Warn(msg.GetMessage("location.change.notify.failure", changeType), zap.Error(err))
	}
}
