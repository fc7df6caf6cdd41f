package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"webpos/pkg/logger"
	"webpos/pkg/metrics"
	"webpos/pos-worker-service/internal/app/pos-worker/entity"
	"webpos/pos-worker-service/internal/app/pos-worker/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrInvalidArchiveID = errors.New("invalid archive id")
	ErrInvalidSnapshot  = errors.New("invalid backup snapshot")
)

type BackupArchiveService struct {
	client    POSClient
	archives  repository.ArchiveRepository
	retention int
}

func NewBackupArchiveService(client POSClient, archives repository.ArchiveRepository, retention int) *BackupArchiveService {
	return &BackupArchiveService{
		client:    client,
		archives:  archives,
		retention: retention,
	}
}

func (s *BackupArchiveService) RunBackup(ctx context.Context) (archive *entity.BackupArchive, err error) {
	start := time.Now()
	defer func() {
		records := 0
		if archive != nil {
			records = archive.Records
		}
		metrics.ObserveBackup("archive", start, records, err)
	}()

	payload, err := s.client.FetchBackup(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch backup: %w", err)
	}

	var summary entity.SnapshotSummary
	if err := json.Unmarshal(payload, &summary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}

	snapshotTime := summary.Timestamp
	if snapshotTime.IsZero() {
		snapshotTime = start.UTC()
	}

	archive = &entity.BackupArchive{
		SnapshotTimestamp: snapshotTime,
		Records:           summary.Records(),
		Payload:           string(payload),
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.archives.Insert(ctx, archive); err != nil {
		return nil, err
	}

	pruned, err := s.archives.Prune(ctx, s.retention)
	if err != nil {
		// the new archive is already stored
		logger.Error().Err(err).Msg("Failed to prune backup archives")
	}

	logger.Info().
		Str("archive_id", archive.ID.Hex()).
		Int("records", archive.Records).
		Int64("pruned", pruned).
		Msg("Backup archived")

	return archive, nil
}

func (s *BackupArchiveService) ListArchives(ctx context.Context) ([]*entity.BackupArchive, error) {
	return s.archives.List(ctx)
}

// RestoreArchive replays a stored snapshot through pos-service.
func (s *BackupArchiveService) RestoreArchive(ctx context.Context, id string) (*entity.RestoreResult, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidArchiveID, id)
	}

	archive, err := s.archives.GetByID(ctx, oid)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := s.client.RestoreBackup(ctx, []byte(archive.Payload))
	metrics.ObserveBackup("archive_restore", start, archive.Records, err)
	if err != nil {
		return nil, fmt.Errorf("failed to restore archive %s: %w", id, err)
	}

	logger.Info().Str("archive_id", id).Int("records", archive.Records).Msg("Backup archive restored")
	return result, nil
}
