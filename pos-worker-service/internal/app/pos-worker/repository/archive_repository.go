package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"webpos/pkg/logger"
	"webpos/pos-worker-service/internal/app/pos-worker/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ArchiveCollection = "backup_archives"

type archiveRepository struct {
	collection *mongo.Collection
}

func NewArchiveRepository(db *mongo.Database) ArchiveRepository {
	collection := db.Collection(ArchiveCollection)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_idx"),
		},
		{
			Keys:    bson.D{{Key: "snapshot_timestamp", Value: -1}},
			Options: options.Index().SetName("snapshot_timestamp_idx"),
		},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn().Err(err).Str("collection", ArchiveCollection).Msg("Failed to create indexes")
	}

	return &archiveRepository{collection: collection}
}

func (r *archiveRepository) Insert(ctx context.Context, archive *entity.BackupArchive) error {
	if archive.CreatedAt.IsZero() {
		archive.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, archive)
	if err != nil {
		return fmt.Errorf("failed to insert backup archive: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		archive.ID = oid
	}
	return nil
}

func (r *archiveRepository) List(ctx context.Context) ([]*entity.BackupArchive, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetProjection(bson.M{"payload": 0})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list backup archives: %w", err)
	}
	defer cursor.Close(ctx)

	archives := make([]*entity.BackupArchive, 0)
	if err := cursor.All(ctx, &archives); err != nil {
		return nil, fmt.Errorf("failed to decode backup archives: %w", err)
	}
	return archives, nil
}

func (r *archiveRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.BackupArchive, error) {
	var archive entity.BackupArchive
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&archive)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrArchiveNotFound
		}
		return nil, fmt.Errorf("failed to get backup archive: %w", err)
	}
	return &archive, nil
}

func (r *archiveRepository) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64(keep)).
		SetProjection(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to find expired archives: %w", err)
	}
	defer cursor.Close(ctx)

	var stale []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &stale); err != nil {
		return 0, fmt.Errorf("failed to decode expired archives: %w", err)
	}
	if len(stale) == 0 {
		return 0, nil
	}

	ids := make([]primitive.ObjectID, len(stale))
	for i, doc := range stale {
		ids[i] = doc.ID
	}

	result, err := r.collection.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("failed to prune backup archives: %w", err)
	}
	return result.DeletedCount, nil
}
