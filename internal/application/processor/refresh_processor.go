package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"surfcast-api/internal/domain/entity"
	"surfcast-api/internal/domain/model"
	"surfcast-api/internal/domain/usecase/weather"
	"surfcast-api/pkg/log"
	"surfcast-api/pkg/msg"
)

type RefreshProcessor struct {
	weatherUseCase weather.UseCase
}

func NewRefreshProcessor(weatherUseCase weather.UseCase) *RefreshProcessor {
	return &RefreshProcessor{
		weatherUseCase: weatherUseCase,
	}
}

// HandleMessage implements the sqs.Handler interface. Messages for deleted locations and
// locations already refreshing are acknowledged; any other failure leaves the message for redelivery.
func (p *RefreshProcessor) HandleMessage(ctx context.Context, message *types.Message) error {
	if message == nil || message.Body == nil {
		return fmt.Errorf("received nil message or message body")
	}

	var refresh model.RefreshMessage
	if err := json.Unmarshal([]byte(aws.ToString(message.Body)), &refresh); err != nil {
		return fmt.Errorf("failed to unmarshal message body: %w", err)
	}
	if refresh.LocationID == "" {
		return fmt.Errorf("message %s has no location id", aws.ToString(message.MessageId))
	}

	log.Info(msg.GetMessage("processor.refresh.received", refresh.LocationID),
		zap.String("message_id", aws.ToString(message.MessageId)),
		zap.String("request_id", refresh.RequestID))

	_, err := p.weatherUseCase.RefreshLocation(ctx, refresh.LocationID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrLocationNotFound), errors.Is(err, weather.ErrRefreshInProgress):
		log.Warn(msg.GetMessage("processor.refresh.skipped", refresh.LocationID),
			zap.String("request_id", refresh.RequestID),
			zap.Error(err))
		return nil
	default:
		return fmt.Errorf("failed to refresh location %s: %w", refresh.LocationID, err)
	}
}
