package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/mockmentor-backend/internal/platform/logger"
	"github.com/yungbote/mockmentor-backend/internal/types"
)

// GormStore keeps session records in a single SQL table, one row per session
// with the full document in a JSON column. Works against sqlite and postgres.
type GormStore struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGormStore(db *gorm.DB, baseLog *logger.Logger) *GormStore {
	var storeLog *logger.Logger
	if baseLog != nil {
		storeLog = baseLog.With("store", "GormStore")
	}
	return &GormStore{db: db, log: storeLog}
}

func (s *GormStore) Create(ctx context.Context, record *types.SessionRecord) error {
	row, err := rowFromRecord(record)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("%w: insert %s: %v", ErrStorage, record.ID, err)
	}
	return nil
}

func (s *GormStore) Load(ctx context.Context, id string) (*types.SessionRecord, error) {
	var row types.SessionRow
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: select %s: %v", ErrStorage, id, err)
	}
	var record types.SessionRecord
	if err := json.Unmarshal(row.Record, &record); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}
	if err := record.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &record, nil
}

func (s *GormStore) Save(ctx context.Context, record *types.SessionRecord) error {
	row, err := rowFromRecord(record)
	if err != nil {
		return err
	}
	// Single-row UPDATE keeps the swap atomic for concurrent readers.
	res := s.db.WithContext(ctx).Model(&types.SessionRow{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"record":     row.Record,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("%w: update %s: %v", ErrStorage, record.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, record.ID)
	}
	return nil
}

func rowFromRecord(record *types.SessionRecord) (*types.SessionRow, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal %s: %v", ErrStorage, record.ID, err)
	}
	now := time.Now().UTC()
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	return &types.SessionRow{
		ID:         record.ID,
		Difficulty: record.Metadata.Difficulty,
		Topic:      record.Metadata.Topic,
		Type:       record.Metadata.Type,
		Record:     datatypes.JSON(data),
		CreatedAt:  createdAt,
		UpdatedAt:  now,
	}, nil
}

var _ Store = (*GormStore)(nil)
