package service

import (
	"context"
	"fmt"
	"time"

	"webpos/pkg/logger"
	"webpos/pkg/metrics"
	"webpos/pos-service/internal/app/pos/entity"
	"webpos/pos-service/internal/app/pos/infrastructure"
	"webpos/pos-service/internal/app/pos/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// snapshotTable binds one table of a snapshot to its model and row slice.
type snapshotTable struct {
	name  string
	model interface{}
	rows  interface{}
}

// snapshotTables lists the tables of snap in insert order: parents before children.
func snapshotTables(snap *entity.BackupSnapshot) []snapshotTable {
	return []snapshotTable{
		{name: "categories", model: &entity.Category{}, rows: &snap.Categories},
		{name: "staff", model: &entity.Staff{}, rows: &snap.Staff},
		{name: "printers", model: &entity.Printer{}, rows: &snap.Printers},
		{name: "taxes", model: &entity.Tax{}, rows: &snap.Taxes},
		{name: "discounts", model: &entity.Discount{}, rows: &snap.Discounts},
		{name: "products", model: &entity.Product{}, rows: &snap.Products},
		{name: "sales", model: &entity.Sale{}, rows: &snap.Sales},
		{name: "sale_items", model: &entity.SaleItem{}, rows: &snap.SaleItems},
	}
}

// deleteOrder clears children before the tables they reference.
var deleteOrder = []string{
	"sale_items", "sales", "products", "categories", "staff", "printers", "taxes", "discounts",
}

type BackupService struct {
	tx        repository.Transactor
	snapshots repository.SnapshotRepository
	cache     repository.LookupCache
	publisher infrastructure.MessagePublisher
	now       func() time.Time
}

func NewBackupService(
	tx repository.Transactor,
	snapshots repository.SnapshotRepository,
	cache repository.LookupCache,
	publisher infrastructure.MessagePublisher,
) *BackupService {
	return &BackupService{
		tx:        tx,
		snapshots: snapshots,
		cache:     cache,
		publisher: publisher,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateBackup reads every table concurrently into one snapshot.
func (s *BackupService) CreateBackup(ctx context.Context) (*entity.BackupSnapshot, error) {
	start := time.Now()
	snap := &entity.BackupSnapshot{Timestamp: s.now()}

	g, gctx := errgroup.WithContext(ctx)
	for _, table := range snapshotTables(snap) {
		table := table
		g.Go(func() error {
			if err := s.snapshots.ReadAll(gctx, table.rows); err != nil {
				return fmt.Errorf("%s: %w", table.name, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		metrics.ObserveBackup("create", start, 0, err)
		return nil, storage("failed to create backup", err)
	}

	normalizeSnapshot(snap)
	metrics.ObserveBackup("create", start, snap.RecordCount(), nil)
	logger.Info().Int("records", snap.RecordCount()).Msg("Backup created")

	return snap, nil
}

// RestoreBackup replaces the whole dataset with snap in one transaction.
func (s *BackupService) RestoreBackup(ctx context.Context, snap *entity.BackupSnapshot) (*entity.RestoreResult, error) {
	start := time.Now()

	if err := checkReferences(snap); err != nil {
		metrics.ObserveBackup("restore", start, 0, err)
		return nil, err
	}

	tables := snapshotTables(snap)
	models := make(map[string]interface{}, len(tables))
	for _, t := range tables {
		models[t.name] = t.model
	}

	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		for _, name := range deleteOrder {
			if err := s.snapshots.DeleteAll(ctx, models[name]); err != nil {
				return fmt.Errorf("failed to clear %s: %w", name, err)
			}
		}

		for _, t := range tables {
			if err := s.snapshots.InsertAll(ctx, t.rows); err != nil {
				return fmt.Errorf("failed to restore %s: %w", t.name, err)
			}
		}

		for _, t := range tables {
			if err := s.snapshots.ResetSequence(ctx, t.name); err != nil {
				return err
			}
		}
		return nil
	})

	records := snap.RecordCount()
	if err != nil {
		metrics.ObserveBackup("restore", start, 0, err)
		return nil, storage("failed to restore backup", err)
	}
	metrics.ObserveBackup("restore", start, records, nil)

	if err := s.cache.InvalidateAll(ctx); err != nil {
		logger.Warn().Err(err).Msg("Failed to invalidate lookup cache after restore")
	}

	event := entity.POSEvent{
		EventID:   uuid.NewString(),
		EventType: entity.EventBackupRestored,
		Records:   records,
		Timestamp: s.now(),
	}
	if err := publishEvent(ctx, s.publisher, "backup", event); err != nil {
		logger.Warn().Err(err).Msg("Failed to publish backup restored event")
	}

	logger.Info().Int("records", records).Time("snapshot_timestamp", snap.Timestamp).Msg("Backup restored")

	return &entity.RestoreResult{
		Success: true,
		Message: fmt.Sprintf("Successfully restored %d records from backup created at %s",
			records, snap.Timestamp.UTC().Format(time.RFC3339Nano)),
	}, nil
}

// normalizeSnapshot turns nil slices into empty ones so every table is
// present in the JSON document.
func normalizeSnapshot(snap *entity.BackupSnapshot) {
	if snap.Categories == nil {
		snap.Categories = []entity.Category{}
	}
	if snap.Products == nil {
		snap.Products = []entity.Product{}
	}
	if snap.Staff == nil {
		snap.Staff = []entity.Staff{}
	}
	if snap.Printers == nil {
		snap.Printers = []entity.Printer{}
	}
	if snap.Taxes == nil {
		snap.Taxes = []entity.Tax{}
	}
	if snap.Discounts == nil {
		snap.Discounts = []entity.Discount{}
	}
	if snap.Sales == nil {
		snap.Sales = []entity.Sale{}
	}
	if snap.SaleItems == nil {
		snap.SaleItems = []entity.SaleItem{}
	}
}

// checkReferences rejects snapshots whose rows point at ids missing from the
// snapshot itself, before anything is deleted.
func checkReferences(snap *entity.BackupSnapshot) error {
	categories := make(map[int64]bool, len(snap.Categories))
	for _, c := range snap.Categories {
		categories[c.ID] = true
	}
	staff := make(map[int64]bool, len(snap.Staff))
	for _, st := range snap.Staff {
		staff[st.ID] = true
	}
	products := make(map[int64]bool, len(snap.Products))
	for _, p := range snap.Products {
		products[p.ID] = true
		if !categories[p.CategoryID] {
			return brokenReference("products", p.ID, "category_id", p.CategoryID)
		}
	}
	sales := make(map[int64]bool, len(snap.Sales))
	for _, sale := range snap.Sales {
		sales[sale.ID] = true
		if !staff[sale.StaffID] {
			return brokenReference("sales", sale.ID, "staff_id", sale.StaffID)
		}
	}
	for _, item := range snap.SaleItems {
		if !sales[item.SaleID] {
			return brokenReference("sale_items", item.ID, "sale_id", item.SaleID)
		}
		if !products[item.ProductID] {
			return brokenReference("sale_items", item.ID, "product_id", item.ProductID)
		}
	}
	return nil
}

func brokenReference(table string, id int64, field string, ref int64) error {
	return validation(ReasonInvalidInput,
		fmt.Sprintf("snapshot %s row %d references missing %s %d", table, id, field, ref),
		map[string]interface{}{"table": table, "id": id, "field": field, "reference": ref})
}
