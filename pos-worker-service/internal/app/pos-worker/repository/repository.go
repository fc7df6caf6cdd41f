package repository

import (
	"context"
	"errors"

	"webpos/pos-worker-service/internal/app/pos-worker/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrArchiveNotFound = errors.New("backup archive not found")

type ArchiveRepository interface {
	Insert(ctx context.Context, archive *entity.BackupArchive) error
	// List returns archives newest first, without payloads.
	List(ctx context.Context) ([]*entity.BackupArchive, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.BackupArchive, error)
	// Prune deletes everything except the newest keep archives and reports how many were removed.
	// A keep below one removes nothing.
	Prune(ctx context.Context, keep int) (int64, error)
}

type SalesStatsRepository interface {
	// RecordSale applies a sale once per event ID; false means the event was already counted.
	RecordSale(ctx context.Context, eventID, date string, amountCents int64, items []entity.EventLineItem) (bool, error)
	GetDaily(ctx context.Context, date string) (*entity.DailySales, error)
}
