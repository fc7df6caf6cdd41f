package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"webpos/pkg/logger"
	"webpos/pkg/metrics"
	"webpos/pos-worker-service/internal/app/pos-worker/entity"
	"webpos/pos-worker-service/internal/app/pos-worker/repository"
)

var ErrInvalidDate = errors.New("date must be formatted as YYYY-MM-DD")

type SalesStatsService struct {
	stats repository.SalesStatsRepository
}

func NewSalesStatsService(stats repository.SalesStatsRepository) *SalesStatsService {
	return &SalesStatsService{stats: stats}
}

// ProcessEvent folds SALE_CREATED events into the daily stats and ignores the rest.
func (s *SalesStatsService) ProcessEvent(ctx context.Context, event *entity.POSEvent) error {
	if event.EventType != entity.EventTypeSaleCreated {
		metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "skipped").Inc()
		logger.Debug().Str("event_type", event.EventType).Str("event_id", event.EventID).Msg("Event ignored")
		return nil
	}

	if event.EventID == "" || event.TotalAmount == nil {
		metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "invalid").Inc()
		return fmt.Errorf("sale event %q is missing required fields", event.EventID)
	}

	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}
	date := timestamp.UTC().Format(entity.DateLayout)

	applied, err := s.stats.RecordSale(ctx, event.EventID, date, event.TotalAmount.Cents(), event.Items)
	if err != nil {
		metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "failed").Inc()
		return err
	}
	if !applied {
		metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "duplicate").Inc()
		logger.Info().Str("event_id", event.EventID).Msg("Duplicate sale event skipped")
		return nil
	}

	metrics.WorkerEventsProcessed.WithLabelValues(event.EventType, "success").Inc()
	logger.Debug().
		Str("event_id", event.EventID).
		Int64("sale_id", event.SaleID).
		Str("date", date).
		Msg("Sale recorded in daily stats")
	return nil
}

func (s *SalesStatsService) GetDaily(ctx context.Context, date string) (*entity.DailySales, error) {
	if _, err := time.Parse(entity.DateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return s.stats.GetDaily(ctx, date)
}
