package entity

import (
	"encoding/json"
	"strconv"
	"time"

	"webpos/pkg/money"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	EventTypeSaleCreated    = "SALE_CREATED"
	EventTypeBackupRestored = "BACKUP_RESTORED"
)

// POSEvent is the message published by pos-service on the pos_events topic.
type POSEvent struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	SaleID        int64           `json:"sale_id,omitempty"`
	StaffID       int64           `json:"staff_id,omitempty"`
	TotalAmount   *money.Money    `json:"total_amount,omitempty"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	ItemsCount    int             `json:"items_count,omitempty"`
	Items         []EventLineItem `json:"items,omitempty"`
	Records       int             `json:"records,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
}

type EventLineItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// BackupArchive is one stored snapshot. Payload is the snapshot JSON exactly
// as returned by the POS API.
type BackupArchive struct {
	ID                primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SnapshotTimestamp time.Time          `json:"snapshot_timestamp" bson:"snapshot_timestamp"`
	Records           int                `json:"records" bson:"records"`
	Payload           string             `json:"-" bson:"payload"`
	CreatedAt         time.Time          `json:"created_at" bson:"created_at"`
}

// SnapshotSummary is the part of a backup snapshot the worker inspects.
type SnapshotSummary struct {
	Timestamp  time.Time         `json:"timestamp"`
	Categories []json.RawMessage `json:"categories"`
	Products   []json.RawMessage `json:"products"`
	Staff      []json.RawMessage `json:"staff"`
	Printers   []json.RawMessage `json:"printers"`
	Taxes      []json.RawMessage `json:"taxes"`
	Discounts  []json.RawMessage `json:"discounts"`
	Sales      []json.RawMessage `json:"sales"`
	SaleItems  []json.RawMessage `json:"sale_items"`
}

func (s *SnapshotSummary) Records() int {
	return len(s.Categories) + len(s.Products) + len(s.Staff) + len(s.Printers) +
		len(s.Taxes) + len(s.Discounts) + len(s.Sales) + len(s.SaleItems)
}

type RestoreResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DailySales aggregates SALE_CREATED events of one UTC day.
type DailySales struct {
	Date       string          `json:"date"`
	Count      int64           `json:"count"`
	Amount     money.Money     `json:"amount"`
	ProductQty map[int64]int64 `json:"product_qty"`
}

const (
	DateLayout            = "2006-01-02"
	RedisKeyPrefixDaily   = "sales:daily:"
	FieldCount            = "count"
	FieldAmountCents      = "amount_cents"
	FieldProductQtyPrefix = "product_qty:"
)

func DailySalesKey(date string) string {
	return RedisKeyPrefixDaily + date
}

func ProcessedEventKey(eventID string) string {
	return RedisKeyProcessedEvent + eventID
}

func ProductQtyField(productID int64) string {
	return FieldProductQtyPrefix + strconv.FormatInt(productID, 10)
}
