package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-leads-dashboard/components/leads"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type record struct {
	ID         uint      `gorm:"primaryKey"`
	Payload    []byte    `gorm:"type:jsonb;not null"`
	LeadCount  int       `gorm:"not null"`
	CapturedAt time.Time `gorm:"index;not null"`
}

func (record) TableName() string {
	return "lead_snapshots"
}

// OpenPostgres connects to postgres with the settings used by the service.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("snapshot: database url is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
		Logger:                 logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("snapshot: database handle: %w", err)
	}
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// GormStore persists snapshots in the lead_snapshots table.
type GormStore struct {
	db   *gorm.DB
	keep int
	now  func() time.Time
}

// GormStoreOption customizes the gorm store.
type GormStoreOption func(*GormStore)

// WithKeep sets how many snapshots survive pruning.
func WithKeep(keep int) GormStoreOption {
	return func(s *GormStore) {
		if keep > 0 {
			s.keep = keep
		}
	}
}

// NewGormStore migrates the snapshot table and returns a store.
func NewGormStore(db *gorm.DB, opts ...GormStoreOption) (*GormStore, error) {
	if db == nil {
		return nil, fmt.Errorf("snapshot: db is required")
	}
	store := &GormStore{db: db, keep: DefaultKeep, now: time.Now}
	for _, opt := range opts {
		opt(store)
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("snapshot: migrate: %w", err)
	}
	return store, nil
}

// Save inserts a snapshot and prunes the oldest rows beyond the retention limit.
func (s *GormStore) Save(ctx context.Context, items []leads.Lead) error {
	payload, err := encodeLeads(items)
	if err != nil {
		return err
	}
	row := record{
		Payload:    payload,
		LeadCount:  len(items),
		CapturedAt: s.now().UTC(),
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("snapshot: insert: %w", err)
		}
		var stale []uint
		if err := tx.Model(&record{}).
			Order("captured_at DESC, id DESC").
			Offset(s.keep).
			Pluck("id", &stale).Error; err != nil {
			return fmt.Errorf("snapshot: list stale: %w", err)
		}
		if len(stale) == 0 {
			return nil
		}
		if err := tx.Delete(&record{}, stale).Error; err != nil {
			return fmt.Errorf("snapshot: prune: %w", err)
		}
		return nil
	})
}

// Latest returns the newest stored snapshot.
func (s *GormStore) Latest(ctx context.Context) (Snapshot, error) {
	var row record
	err := s.db.WithContext(ctx).Order("captured_at DESC, id DESC").First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("snapshot: load latest: %w", err)
	}
	return row.toSnapshot()
}

func (r record) toSnapshot() (Snapshot, error) {
	items, err := decodeLeads(r.Payload)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{
		ID:         r.ID,
		Leads:      items,
		CapturedAt: r.CapturedAt,
	}, nil
}
