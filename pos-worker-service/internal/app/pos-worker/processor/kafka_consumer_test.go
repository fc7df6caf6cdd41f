package processor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"webpos/pkg/money"
	"webpos/pos-worker-service/internal/app/pos-worker/entity"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNewKafkaConsumer(t *testing.T) {
	// Arrange
	statsSvc := new(MockSalesStatsService)

	// Act
	consumer := NewKafkaConsumer([]string{"localhost:9092"}, "pos_events", "pos-worker", 1, 10e6, statsSvc)
	defer consumer.reader.Close()

	// Assert
	assert.NotNil(t, consumer.reader)
	assert.Equal(t, "pos_events", consumer.reader.Config().Topic)
	assert.Equal(t, "pos-worker", consumer.reader.Config().GroupID)
	assert.NotNil(t, consumer.stopChan)
	assert.NotNil(t, consumer.doneChan)
	assert.Equal(t, initialRetryBackoff, consumer.retryBackoff)
}

func TestKafkaConsumer_ProcessMessage_Success(t *testing.T) {
	// Arrange
	statsSvc := new(MockSalesStatsService)
	consumer := &KafkaConsumer{statsSvc: statsSvc}
	ctx := context.Background()

	total := money.MustParse("12.50")
	event := entity.POSEvent{
		EventID:     "evt-9",
		EventType:   entity.EventTypeSaleCreated,
		SaleID:      9,
		TotalAmount: &total,
		Items:       []entity.EventLineItem{{ProductID: 1, Quantity: 2}},
		Timestamp:   time.Now(),
	}
	payload, _ := json.Marshal(event)

	statsSvc.On("ProcessEvent", ctx, mock.MatchedBy(func(e *entity.POSEvent) bool {
		return e.EventID == "evt-9" && e.SaleID == 9 && e.TotalAmount.Cents() == 1250 && len(e.Items) == 1
	})).Return(nil)

	// Act
	err := consumer.processMessage(ctx, kafka.Message{Key: []byte("9"), Value: payload})

	// Assert
	assert.NoError(t, err)
	statsSvc.AssertExpectations(t)
}

func TestKafkaConsumer_ProcessMessage_InvalidJSON(t *testing.T) {
	tests := []struct {
		name  string
		value []byte
	}{
		{name: "garbage", value: []byte("invalid json {{{")},
		{name: "empty", value: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statsSvc := new(MockSalesStatsService)
			consumer := &KafkaConsumer{statsSvc: statsSvc}

			err := consumer.processMessage(context.Background(), kafka.Message{Value: tt.value})

			assert.ErrorIs(t, err, errMalformedEvent)
			statsSvc.AssertNotCalled(t, "ProcessEvent", mock.Anything, mock.Anything)
		})
	}
}

func TestKafkaConsumer_ProcessMessage_ServiceError(t *testing.T) {
	// Arrange
	statsSvc := new(MockSalesStatsService)
	consumer := &KafkaConsumer{statsSvc: statsSvc}
	ctx := context.Background()
	payload := []byte(`{"event_id":"evt-1","event_type":"SALE_CREATED","total_amount":1.00}`)

	statsSvc.On("ProcessEvent", ctx, mock.Anything).Return(errors.New("redis down"))

	// Act
	err := consumer.processMessage(ctx, kafka.Message{Value: payload})

	// Assert
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errMalformedEvent)
	assert.Contains(t, err.Error(), "failed to process SALE_CREATED event")
}

func TestKafkaConsumer_HandleMessage(t *testing.T) {
	payload := []byte(`{"event_id":"evt-2","event_type":"SALE_CREATED","sale_id":2,"total_amount":4.00}`)

	tests := []struct {
		name          string
		value         []byte
		failures      int
		expectedErr   error
		expectedCalls int
	}{
		{name: "succeeds first time", value: payload, failures: 0, expectedCalls: 1},
		{name: "retries until success", value: payload, failures: 3, expectedCalls: 4},
		{name: "malformed is not retried", value: []byte("{{"), expectedErr: errMalformedEvent, expectedCalls: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			statsSvc := new(MockSalesStatsService)
			consumer := &KafkaConsumer{statsSvc: statsSvc, stopChan: make(chan struct{}), retryBackoff: time.Millisecond}
			ctx := context.Background()

			if tt.failures > 0 {
				statsSvc.On("ProcessEvent", ctx, mock.Anything).Return(errors.New("redis down")).Times(tt.failures)
			}
			statsSvc.On("ProcessEvent", ctx, mock.Anything).Return(nil)

			// Act
			err := consumer.handleMessage(ctx, kafka.Message{Value: tt.value})

			// Assert
			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				assert.NoError(t, err)
			}
			statsSvc.AssertNumberOfCalls(t, "ProcessEvent", tt.expectedCalls)
		})
	}
}

func TestKafkaConsumer_HandleMessage_StopsWhileRetrying(t *testing.T) {
	payload := []byte(`{"event_id":"evt-3","event_type":"SALE_CREATED","sale_id":3,"total_amount":1.00}`)

	tests := []struct {
		name        string
		stop        func(cancel context.CancelFunc, stopChan chan struct{})
		expectedErr error
	}{
		{
			name:        "context cancelled",
			stop:        func(cancel context.CancelFunc, _ chan struct{}) { cancel() },
			expectedErr: context.Canceled,
		},
		{
			name:        "consumer stopped",
			stop:        func(_ context.CancelFunc, stopChan chan struct{}) { close(stopChan) },
			expectedErr: errConsumerStopped,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			statsSvc := new(MockSalesStatsService)
			stopChan := make(chan struct{})
			consumer := &KafkaConsumer{statsSvc: statsSvc, stopChan: stopChan, retryBackoff: time.Hour}
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			statsSvc.On("ProcessEvent", mock.Anything, mock.Anything).
				Run(func(mock.Arguments) { tt.stop(cancel, stopChan) }).
				Return(errors.New("redis down"))

			// Act
			err := consumer.handleMessage(ctx, kafka.Message{Value: payload})

			// Assert
			assert.ErrorIs(t, err, tt.expectedErr)
			statsSvc.AssertNumberOfCalls(t, "ProcessEvent", 1)
		})
	}
}
