package processor

import (
	"context"

	"webpos/pos-worker-service/internal/app/pos-worker/entity"

	"github.com/stretchr/testify/mock"
)

type MockBackupArchiveService struct {
	mock.Mock
}

func (m *MockBackupArchiveService) RunBackup(ctx context.Context) (*entity.BackupArchive, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BackupArchive), args.Error(1)
}

func (m *MockBackupArchiveService) ListArchives(ctx context.Context) ([]*entity.BackupArchive, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.BackupArchive), args.Error(1)
}

func (m *MockBackupArchiveService) RestoreArchive(ctx context.Context, id string) (*entity.RestoreResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.RestoreResult), args.Error(1)
}

type MockSalesStatsService struct {
	mock.Mock
}

func (m *MockSalesStatsService) ProcessEvent(ctx context.Context, event *entity.POSEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockSalesStatsService) GetDaily(ctx context.Context, date string) (*entity.DailySales, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.DailySales), args.Error(1)
}
