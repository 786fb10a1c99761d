package weather

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"surfcast-api/internal/domain/entity"
	"surfcast-api/internal/domain/forecast"
	"surfcast-api/internal/domain/gateway/api"
	"surfcast-api/internal/domain/gateway/db"
	"surfcast-api/internal/domain/gateway/queue"
	"surfcast-api/internal/domain/model"
	"surfcast-api/pkg/log"
	"surfcast-api/pkg/msg"
)

const timelineHours = 4

// Providers groups the upstream gateways of a refresh. Marine and Atmospheric are mandatory.
type Providers struct {
	Marine      api.MarineGateway
	Atmospheric api.AtmosphericGateway
	Tides       api.TideGateway
	Ratings     api.RatingGateway
	SurfHeights api.SurfHeightGateway
}

type weatherUseCase struct {
	queueName   string
	providers   Providers
	dbGateway   db.LocationGateway
	notifier    queue.ChangeNotifier
	queueSender queue.Sender
	clock       clockwork.Clock
	registry    *refreshRegistry
}

// NewWeatherUseCase builds the refresh orchestrator. A nil queueSender makes RefreshAllStale refresh in process.
func NewWeatherUseCase(queueName string, queueSender queue.Sender, providers Providers, dbGateway db.LocationGateway,
	notifier queue.ChangeNotifier, clock clockwork.Clock) UseCase {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &weatherUseCase{
		queueName:   queueName,
		providers:   providers,
		dbGateway:   dbGateway,
		notifier:    notifier,
		queueSender: queueSender,
		clock:       clock,
		registry:    newRefreshRegistry(),
	}
}

// RefreshLocation runs one refresh of id. A second call while the first is running returns ErrRefreshInProgress.
func (uc *weatherUseCase) RefreshLocation(ctx context.Context, id string) (*entity.SavedLocation, error) {
	previous, ok := uc.registry.begin(id, uc.clock.Now())
	if !ok {
		return nil, ErrRefreshInProgress
	}

	log.Info(msg.GetMessage("forecast.refresh.start", id), zap.String("location_id", id))
	location, err := uc.refresh(ctx, id)

	switch {
	case err == nil:
		uc.registry.finish(id, refreshEntry{state: model.RefreshLoaded, updatedAt: location.DateUpdated})
		log.Info(msg.GetMessage("forecast.refresh.success", id, len(location.Weather)), zap.String("location_id", id))
		return location, nil
	case errors.Is(err, entity.ErrLocationNotFound), ctx.Err() != nil:
		uc.registry.finish(id, previous)
	default:
		uc.registry.finish(id, refreshEntry{state: model.RefreshFailed, err: err.Error(), updatedAt: uc.clock.Now()})
	}

	log.Warn(msg.GetMessage("forecast.refresh.failure", id, err), zap.String("location_id", id), zap.Error(err))
	return nil, err
}

func (uc *weatherUseCase) refresh(ctx context.Context, id string) (*entity.SavedLocation, error) {
	location, err := uc.findLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	in, err := uc.fetchSeries(ctx, location.Location)
	if err != nil {
		return nil, err
	}

	samples, report, err := forecast.MergeSeriesWithReport(*in)
	if err != nil {
		return nil, fmt.Errorf("failed to merge forecast series: %w", err)
	}
	if report.Skipped > 0 || report.Truncated > 0 || report.OrphanDropped > 0 {
		log.Debug(msg.GetMessage("forecast.merge.report", id),
			zap.String("location_id", id),
			zap.Int("truncated", report.Truncated),
			zap.Int("skipped", report.Skipped),
			zap.Int("backfilled", report.Backfilled),
			zap.Int("orphan_dropped", report.OrphanDropped))
	}

	// nothing is written once the caller gave up
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	location.Weather = samples
	location.DateUpdated = uc.clock.Now()
	if err := uc.dbGateway.UpsertMany(ctx, []entity.SavedLocation{*location}); err != nil {
		return nil, fmt.Errorf("failed to save refreshed location: %w", err)
	}

	uc.notify(ctx, model.LocationRefreshed, id)
	return location, nil
}

// fetchSeries calls the mandatory providers in an errgroup and the optional ones alongside.
// An optional provider failure is logged and leaves its map empty.
func (uc *weatherUseCase) fetchSeries(ctx context.Context, location entity.Location) (*forecast.MergeInput, error) {
	in := &forecast.MergeInput{
		Tides:       map[int64]float64{},
		Ratings:     map[int64]entity.SurfRating{},
		SurfHeights: map[int64]forecast.SurfHeight{},
	}

	var wg sync.WaitGroup
	if uc.providers.Tides != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tides, err := uc.providers.Tides.FetchTides(ctx, location)
			if err != nil {
				uc.warnOptional("tides", location.ID, err)
				return
			}
			in.Tides = tides
		}()
	}
	if uc.providers.Ratings != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ratings, err := uc.providers.Ratings.FetchRatings(ctx, location)
			if err != nil {
				uc.warnOptional("ratings", location.ID, err)
				return
			}
			in.Ratings = ratings
		}()
	}
	if uc.providers.SurfHeights != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			heights, err := uc.providers.SurfHeights.FetchSurfHeights(ctx, location)
			if err != nil {
				uc.warnOptional("surf heights", location.ID, err)
				return
			}
			in.SurfHeights = heights
		}()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		marine, err := uc.providers.Marine.FetchMarine(groupCtx, location.Latitude, location.Longitude)
		if err != nil {
			return fmt.Errorf("marine forecast: %w: %w", forecast.ErrProviderUnavailable, err)
		}
		in.Marine = *marine
		return nil
	})
	group.Go(func() error {
		atmospheric, err := uc.providers.Atmospheric.FetchAtmospheric(groupCtx, location.Latitude, location.Longitude)
		if err != nil {
			return fmt.Errorf("atmospheric forecast: %w: %w", forecast.ErrProviderUnavailable, err)
		}
		in.Atmospheric = *atmospheric
		return nil
	})

	err := group.Wait()
	wg.Wait()
	if err != nil {
		return nil, err
	}
	return in, nil
}

func (uc *weatherUseCase) warnOptional(provider, id string, err error) {
	log.Warn(msg.GetMessage("forecast.provider.optional.failure", provider, id),
		zap.String("location_id", id),
		zap.String("provider", provider),
		zap.Error(err))
}

// RefreshState returns IDLE for locations never refreshed in this process
func (uc *weatherUseCase) RefreshState(id string) model.RefreshStatus {
	return uc.registry.status(id)
}

// Summary reads the stored samples and derives the indicators at the current instant
func (uc *weatherUseCase) Summary(ctx context.Context, id string) (*model.ForecastSummary, error) {
	location, err := uc.findLocation(ctx, id)
	if err != nil {
		return nil, err
	}
	return buildSummary(*location, uc.clock.Now()), nil
}

// EnsureFresh refreshes stale data first. A failed refresh still returns the stored data.
func (uc *weatherUseCase) EnsureFresh(ctx context.Context, id string) (*model.ForecastSummary, error) {
	location, err := uc.findLocation(ctx, id)
	if err != nil {
		return nil, err
	}

	if forecast.NeedsRefresh(*location, uc.clock.Now()) {
		refreshed, err := uc.RefreshLocation(ctx, id)
		switch {
		case err == nil:
			location = refreshed
		case errors.Is(err, entity.ErrLocationNotFound),
			errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded):
			return nil, err
		case errors.Is(err, ErrRefreshInProgress):
			log.Debug(msg.GetMessage("forecast.refresh.in-progress", id), zap.String("location_id", id))
		default:
			log.Warn(msg.GetMessage("forecast.ensure-fresh.stale", id), zap.String("location_id", id), zap.Error(err))
		}
	}

	return buildSummary(*location, uc.clock.Now()), nil
}

// RefreshAllStale scans every location once. Per location failures are reported in the result, not returned.
func (uc *weatherUseCase) RefreshAllStale(ctx context.Context, requestID string) (*model.RefreshAllResult, error) {
	log.Info(msg.GetMessage("forecast.refresh-all.start"), zap.String("request_id", requestID))

	locations, err := uc.dbGateway.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch locations: %w", err)
	}

	result := &model.RefreshAllResult{
		RequestID: requestID,
		Scanned:   len(locations),
		Stale:     []string{},
		Enqueued:  []string{},
		Refreshed: []string{},
		Failed:    []string{},
	}

	now := uc.clock.Now()
	for _, location := range locations {
		if forecast.NeedsRefresh(location, now) {
			result.Stale = append(result.Stale, location.ID())
		}
	}

	if len(result.Stale) > 0 {
		if uc.queueSender != nil {
			uc.enqueueRefreshes(ctx, requestID, result)
		} else {
			uc.refreshInProcess(ctx, requestID, result)
		}
	}

	log.Info(msg.GetMessage("forecast.refresh-all.done"),
		zap.String("request_id", requestID),
		zap.Int("scanned", result.Scanned),
		zap.Int("stale", len(result.Stale)),
		zap.Int("enqueued", len(result.Enqueued)),
		zap.Int("refreshed", len(result.Refreshed)),
		zap.Int("failed", len(result.Failed)))
	return result, nil
}

func (uc *weatherUseCase) enqueueRefreshes(ctx context.Context, requestID string, result *model.RefreshAllResult) {
	messages := make([]queue.BatchMessage, len(result.Stale))
	byMessageID := make(map[string]string, len(result.Stale))
	for i, id := range result.Stale {
		// batch entry ids only allow alphanumerics, hyphens and underscores
		messageID := fmt.Sprintf("refresh-%d", i)
		byMessageID[messageID] = id
		messages[i] = queue.BatchMessage{
			MessageID: messageID,
			Body:      model.RefreshMessage{LocationID: id, RequestID: requestID},
		}
	}

	batch, err := uc.queueSender.SendMessageBatch(ctx, uc.queueName, messages)
	if err != nil {
		log.Warn(msg.GetMessage("forecast.refresh-all.enqueue.failure"),
			zap.String("request_id", requestID),
			zap.Error(err))
		result.Failed = append(result.Failed, result.Stale...)
		return
	}

	for _, messageID := range batch.Successful {
		result.Enqueued = append(result.Enqueued, byMessageID[messageID])
	}
	for _, messageID := range batch.Failed {
		id := byMessageID[messageID]
		log.Warn(msg.GetMessage("forecast.refresh-all.enqueue.failure"),
			zap.String("request_id", requestID),
			zap.String("location_id", id))
		result.Failed = append(result.Failed, id)
	}
}

func (uc *weatherUseCase) refreshInProcess(ctx context.Context, requestID string, result *model.RefreshAllResult) {
	for _, id := range result.Stale {
		if ctx.Err() != nil {
			result.Failed = append(result.Failed, id)
			continue
		}
		_, err := uc.RefreshLocation(ctx, id)
		switch {
		case err == nil:
			result.Refreshed = append(result.Refreshed, id)
		case errors.Is(err, ErrRefreshInProgress):
			log.Debug(msg.GetMessage("forecast.refresh.in-progress", id), zap.String("request_id", requestID))
		default:
			result.Failed = append(result.Failed, id)
		}
	}
}

func (uc *weatherUseCase) findLocation(ctx context.Context, id string) (*entity.SavedLocation, error) {
	location, err := uc.dbGateway.FindByID(ctx, id)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", entity.ErrLocationNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find location %s: %w", id, err)
	}
	return location, nil
}

func (uc *weatherUseCase) notify(ctx context.Context, changeType model.LocationChangeType, ids ...string) {
	if uc.notifier == nil {
		return
	}
	change := model.LocationChange{Type: changeType, LocationIDs: ids, At: uc.clock.Now()}
	if err := uc.notifier.Notify(ctx, change); err != nil {
		log.Warn(msg.GetMessage("location.change.notify.failure", changeType), zap.Error(err))
	}
}

// buildSummary evaluates every indicator in the zone of the stored samples
func buildSummary(location entity.SavedLocation, now time.Time) *model.ForecastSummary {
	samples := location.Weather
	if len(samples) > 0 {
		now = now.In(samples[0].Date.Location())
	}

	summary := &model.ForecastSummary{
		Location:     location,
		GeneratedAt:  now,
		NeedsRefresh: forecast.NeedsRefresh(location, now),
		Now:          forecast.Now(samples, now),
		Today:        forecast.Today(samples, now),
		Timeline:     timeline(samples, now),
	}

	if extremum, trend := forecast.NextTideExtremumWithTrend(samples, now); extremum != nil {
		summary.NextTide = &model.TideExtremum{Sample: *extremum, Trend: trend}
	}
	if wind, ok := forecast.ClassifySample(summary.Now, location.Location.Perpendicular); ok {
		summary.Wind = &wind
	}
	return summary
}

// timeline resolves now and the start of the next hours that are still today
func timeline(samples []entity.WeatherSample, now time.Time) []model.TimelineEntry {
	entries := []model.TimelineEntry{{Date: now, Sample: forecast.Closest(samples, now)}}

	startOfHour := time.Date(now.Year(), now.Month(), now.Day(), now.Hour(), 0, 0, 0, now.Location())
	for offset := 0; offset < timelineHours; offset++ {
		date := startOfHour.Add(time.Duration(offset) * time.Hour)
		if date.Day() != now.Day() {
			break
		}
		entries = append(entries, model.TimelineEntry{Date: date, Sample: forecast.Closest(samples, date)})
	}
	return entries
}
