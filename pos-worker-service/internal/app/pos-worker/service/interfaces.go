package service

import (
	"context"

	"webpos/pos-worker-service/internal/app/pos-worker/entity"
)

// POSClient talks to the pos-service backup endpoints.
type POSClient interface {
	FetchBackup(ctx context.Context) ([]byte, error)
	RestoreBackup(ctx context.Context, snapshot []byte) (*entity.RestoreResult, error)
}

type BackupArchiveServiceInterface interface {
	// RunBackup pulls a snapshot from pos-service, stores it and prunes old archives.
	RunBackup(ctx context.Context) (*entity.BackupArchive, error)
	ListArchives(ctx context.Context) ([]*entity.BackupArchive, error)
	RestoreArchive(ctx context.Context, id string) (*entity.RestoreResult, error)
}

type SalesStatsServiceInterface interface {
	ProcessEvent(ctx context.Context, event *entity.POSEvent) error
	GetDaily(ctx context.Context, date string) (*entity.DailySales, error)
}
