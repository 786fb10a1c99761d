package sqs

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"surfcast-api/pkg/log"
)

// HandlerFunc defines a function that handles a SQS Message
type HandlerFunc func(ctx context.Context, msg *types.Message) error

// HandleMessage implements the Handler interface for HandlerFunc
func (f HandlerFunc) HandleMessage(ctx context.Context, msg *types.Message) error {
	return f(ctx, msg)
}

// Handler processes a SQS Message. Returning nil deletes the message from the queue.
type Handler interface {
	HandleMessage(ctx context.Context, msg *types.Message) error
}

// HealthStatus of a worker
type HealthStatus string

const (
	StatusUp   HealthStatus = "UP"
	StatusDown HealthStatus = "DOWN"
)

// WorkerHealth is returned by Worker.HealthCheck
type WorkerHealth struct {
	Status  HealthStatus
	Details map[string]string
}

// WorkerConfig defines the configuration options for a Worker
type WorkerConfig struct {
	MaxNumberOfMessages int32
	WaitTimeSeconds     int32
	PoolSize            int
	// ErrorBackoff is the pause after a failed ReceiveMessage call
	ErrorBackoff time.Duration
}

// Worker polls and processes messages from a SQS queue
type Worker struct {
	sqsClient           SQSClient
	queueName           string
	queueURL            string
	maxNumberOfMessages int32
	waitTimeSeconds     int32
	poolSize            int
	errorBackoff        time.Duration
	handler             Handler

	running   atomic.Bool
	processed atomic.Int64
	failed    atomic.Int64
	lastError atomic.Value
}

// NewWorker creates and returns a new Worker.
//
// Zero config fields default to MaxNumberOfMessages 10, WaitTimeSeconds 20, PoolSize 1
// and ErrorBackoff 1s. MaxNumberOfMessages must be within 1..10 and WaitTimeSeconds within 1..20.
func NewWorker(ctx context.Context, sqsClient SQSClient, queueName string, handler Handler, config *WorkerConfig) (*Worker, error) {
	w := &Worker{
		sqsClient:           sqsClient,
		queueName:           queueName,
		maxNumberOfMessages: 10,
		waitTimeSeconds:     20,
		poolSize:            1,
		errorBackoff:        time.Second,
		handler:             handler,
	}

	if config != nil {
		if config.MaxNumberOfMessages != 0 {
			w.maxNumberOfMessages = config.MaxNumberOfMessages
		}
		if config.WaitTimeSeconds != 0 {
			w.waitTimeSeconds = config.WaitTimeSeconds
		}
		if config.PoolSize != 0 {
			w.poolSize = config.PoolSize
		}
		if config.ErrorBackoff != 0 {
			w.errorBackoff = config.ErrorBackoff
		}
	}

	if w.maxNumberOfMessages < 1 || w.maxNumberOfMessages > 10 {
		return nil, errors.New("maxNumberOfMessages must be between 1 and 10")
	}
	if w.waitTimeSeconds < 1 || w.waitTimeSeconds > 20 {
		return nil, errors.New("waitTimeSeconds must be between 1 and 20")
	}
	if w.poolSize < 1 {
		return nil, errors.New("poolSize must be greater than 0")
	}

	output, err := sqsClient.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(queueName)})
	if err != nil {
		return nil, fmt.Errorf("unable to get queue URL: %w", err)
	}
	w.queueURL = aws.ToString(output.QueueUrl)

	return w, nil
}

// Start polls with PoolSize goroutines until ctx is canceled. It blocks.
func (w *Worker) Start(ctx context.Context) {
	w.running.Store(true)
	defer w.running.Store(false)

	var wg sync.WaitGroup
	for i := 0; i < w.poolSize; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.pollMessages(ctx)
		}()
	}
	wg.Wait()
}

func (w *Worker) pollMessages(ctx context.Context) {
	for ctx.Err() == nil {
		output, err := w.sqsClient.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(w.queueURL),
			MaxNumberOfMessages: w.maxNumberOfMessages,
			WaitTimeSeconds:     w.waitTimeSeconds,
		})
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			w.lastError.Store(err.Error())
			log.Errorf("failed to receive messages from %s: %v", w.queueName, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(w.errorBackoff):
			}
			continue
		}

		for i := range output.Messages {
			w.handleMessage(ctx, &output.Messages[i])
		}
	}
}

func (w *Worker) handleMessage(ctx context.Context, msg *types.Message) {
	if err := w.handler.HandleMessage(ctx, msg); err != nil {
		w.failed.Add(1)
		w.lastError.Store(err.Error())
		log.Errorf("error processing message ID %s: %v", aws.ToString(msg.MessageId), err)
		return
	}
	w.processed.Add(1)

	_, err := w.sqsClient.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(w.queueURL),
		ReceiptHandle: msg.ReceiptHandle,
	})
	if err != nil {
		log.Errorf("failed to delete message ID %s: %v", aws.ToString(msg.MessageId), err)
		return
	}
	log.Debugf("successfully deleted message ID %s", aws.ToString(msg.MessageId))
}

// HealthCheck reports UP while the polling loop is running
func (w *Worker) HealthCheck() WorkerHealth {
	details := map[string]string{
		"queue":     w.queueName,
		"processed": strconv.FormatInt(w.processed.Load(), 10),
		"failed":    strconv.FormatInt(w.failed.Load(), 10),
	}
	if last, ok := w.lastError.Load().(string); ok && last != "" {
		details["last_error"] = last
	}

	if !w.running.Load() {
		return WorkerHealth{Status: StatusDown, Details: details}
	}
	return WorkerHealth{Status: StatusUp, Details: details}
}
