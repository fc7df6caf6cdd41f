package mocks

import (
	"context"

	"webpos/pos-worker-service/internal/app/pos-worker/entity"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MockArchiveRepository struct {
	mock.Mock
}

func (m *MockArchiveRepository) Insert(ctx context.Context, archive *entity.BackupArchive) error {
	args := m.Called(ctx, archive)
	return args.Error(0)
}

func (m *MockArchiveRepository) List(ctx context.Context) ([]*entity.BackupArchive, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BackupArchive), args.Error(1)
}

func (m *MockArchiveRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.BackupArchive, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BackupArchive), args.Error(1)
}

func (m *MockArchiveRepository) Prune(ctx context.Context, keep int) (int64, error) {
	args := m.Called(ctx, keep)
	return args.Get(0).(int64), args.Error(1)
}

type MockSalesStatsRepository struct {
	mock.Mock
}

func (m *MockSalesStatsRepository) RecordSale(ctx context.Context, eventID, date string, amountCents int64, items []entity.EventLineItem) (bool, error) {
	args := m.Called(ctx, eventID, date, amountCents, items)
	return args.Bool(0), args.Error(1)
}

func (m *MockSalesStatsRepository) GetDaily(ctx context.Context, date string) (*entity.DailySales, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DailySales), args.Error(1)
}
