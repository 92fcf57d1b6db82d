package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Record is the row the database backend stores the snapshot in.
type Record struct {
	StateKey  string    `gorm:"column:state_key;primaryKey;size:191"`
	Payload   string    `gorm:"column:payload;type:text"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName overrides the table name.
func (Record) TableName() string {
	return "sync_states"
}

// DBStore keeps the snapshot in one row of the sync_states table.
type DBStore struct {
	db  *gorm.DB
	key string
}

// NewDBStore creates a store for the row identified by key.
func NewDBStore(db *gorm.DB, key string) *DBStore {
	return &DBStore{db: db, key: key}
}

// Migrate creates the sync_states table if needed.
func (s *DBStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to migrate sync_states: %w", err)
	}
	return nil
}

// Load reads the row. Returns nil and no error if it does not exist.
func (s *DBStore) Load(ctx context.Context) (*SyncState, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("state_key = ?", s.key).Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query state: %w", err)
	}
	return Decode([]byte(rec.Payload))
}

// Save upserts the row in a single statement.
func (s *DBStore) Save(ctx context.Context, st *SyncState) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}

	rec := Record{StateKey: s.key, Payload: string(data), UpdatedAt: time.Now()}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Clear deletes the row.
func (s *DBStore) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("state_key = ?", s.key).Delete(&Record{}).Error; err != nil {
		return fmt.Errorf("failed to delete state: %w", err)
	}
	return nil
}
