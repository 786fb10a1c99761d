package sqs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

type fakeSQS struct {
	mu            sync.Mutex
	urlCalls      int
	sent          []string
	batchCalls    int
	failBatchID   string
	receiveQueue  [][]types.Message
	deleted       []string
	receiveCalled chan struct{}
}

func (f *fakeSQS) GetQueueUrl(ctx context.Context, in *sqs.GetQueueUrlInput, _ ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urlCalls++
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String("https://sqs.local/000000000000/" + aws.ToString(in.QueueName))}, nil
}

func (f *fakeSQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, aws.ToString(in.MessageBody))
	return &sqs.SendMessageOutput{}, nil
}

func (f *fakeSQS) SendMessageBatch(ctx context.Context, in *sqs.SendMessageBatchInput, _ ...func(*sqs.Options)) (*sqs.SendMessageBatchOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.batchCalls++
	out := &sqs.SendMessageBatchOutput{}
	for _, e := range in.Entries {
		if aws.ToString(e.Id) == f.failBatchID {
			out.Failed = append(out.Failed, types.BatchResultErrorEntry{Id: e.Id})
			continue
		}
		out.Successful = append(out.Successful, types.SendMessageBatchResultEntry{Id: e.Id})
	}
	return out, nil
}

func (f *fakeSQS) ReceiveMessage(ctx context.Context, in *sqs.ReceiveMessageInput, _ ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error) {
	f.mu.Lock()
	if len(f.receiveQueue) > 0 {
		batch := f.receiveQueue[0]
		f.receiveQueue = f.receiveQueue[1:]
		f.mu.Unlock()
		return &sqs.ReceiveMessageOutput{Messages: batch}, nil
	}
	f.mu.Unlock()

	select {
	case f.receiveCalled <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (f *fakeSQS) DeleteMessage(ctx context.Context, in *sqs.DeleteMessageInput, _ ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, aws.ToString(in.ReceiptHandle))
	return &sqs.DeleteMessageOutput{}, nil
}

func TestSender_SendMessage(t *testing.T) {
	client := &fakeSQS{}
	sender := NewSender(client)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := sender.SendMessage(ctx, "location-refresh", map[string]string{"locationId": "kuta"}); err != nil {
			t.Fatalf("SendMessage() error = %v", err)
		}
	}
	if len(client.sent) != 2 || client.sent[0] != `{"locationId":"kuta"}` {
		t.Errorf("sent = %v", client.sent)
	}
	if client.urlCalls != 1 {
		t.Errorf("GetQueueUrl calls = %d, want 1", client.urlCalls)
	}
}

func TestSender_SendMessageBatch(t *testing.T) {
	client := &fakeSQS{failBatchID: "msg-7"}
	sender := NewSender(client)

	messages := make([]BatchMessage, 23)
	for i := range messages {
		messages[i] = BatchMessage{MessageID: fmt.Sprintf("msg-%d", i), Body: i}
	}
	messages[3].Body = make(chan int)

	result, err := sender.SendMessageBatch(context.Background(), "location-refresh", messages)
	if err != nil {
		t.Fatalf("SendMessageBatch() error = %v", err)
	}

	sort.Strings(result.Failed)
	if want := []string{"msg-3", "msg-7"}; fmt.Sprint(result.Failed) != fmt.Sprint(want) {
		t.Errorf("Failed = %v, want %v", result.Failed, want)
	}
	if len(result.Successful) != 21 {
		t.Errorf("len(Successful) = %d, want 21", len(result.Successful))
	}
	if client.batchCalls != 3 {
		t.Errorf("batch calls = %d, want 3", client.batchCalls)
	}
}

func TestSender_SendMessageBatchEmpty(t *testing.T) {
	result, err := NewSender(&fakeSQS{}).SendMessageBatch(context.Background(), "q", nil)
	if err != nil || len(result.Successful) != 0 || len(result.Failed) != 0 {
		t.Errorf("SendMessageBatch(nil) = (%v, %v)", result, err)
	}
}

func TestNewWorker_Validation(t *testing.T) {
	tests := []struct {
		name    string
		config  *WorkerConfig
		wantErr bool
	}{
		{"defaults", nil, false},
		{"too many messages", &WorkerConfig{MaxNumberOfMessages: 11}, true},
		{"wait too long", &WorkerConfig{WaitTimeSeconds: 21}, true},
		{"negative pool", &WorkerConfig{PoolSize: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWorker(context.Background(), &fakeSQS{}, "q", HandlerFunc(func(context.Context, *types.Message) error { return nil }), tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewWorker() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWorker_Start(t *testing.T) {
	client := &fakeSQS{
		receiveQueue: [][]types.Message{{
			{MessageId: aws.String("1"), ReceiptHandle: aws.String("rh-1"), Body: aws.String(`ok`)},
			{MessageId: aws.String("2"), ReceiptHandle: aws.String("rh-2"), Body: aws.String(`fail`)},
		}},
		receiveCalled: make(chan struct{}, 1),
	}
	handler := HandlerFunc(func(ctx context.Context, msg *types.Message) error {
		if aws.ToString(msg.Body) == "fail" {
			return errors.New("boom")
		}
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	worker, err := NewWorker(ctx, client, "location-refresh", handler, &WorkerConfig{WaitTimeSeconds: 1})
	if err != nil {
		t.Fatalf("NewWorker() error = %v", err)
	}

	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	select {
	case <-client.receiveCalled:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not drain the queue")
	}

	health := worker.HealthCheck()
	if health.Status != StatusUp {
		t.Errorf("HealthCheck() status = %s, want UP", health.Status)
	}
	if health.Details["processed"] != "1" || health.Details["failed"] != "1" {
		t.Errorf("HealthCheck() details = %v", health.Details)
	}

	cancel()
	<-done

	client.mu.Lock()
	defer client.mu.Unlock()
	if len(client.deleted) != 1 || client.deleted[0] != "rh-1" {
		t.Errorf("deleted = %v, want [rh-1]", client.deleted)
	}
	if worker.HealthCheck().Status != StatusDown {
		t.Error("HealthCheck() status after stop should be DOWN")
	}
}
