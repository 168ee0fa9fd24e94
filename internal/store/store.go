package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	appLog "schedtrack/internal/log"
	"schedtrack/internal/model"
	"schedtrack/internal/sched"
)

// Keys for persisted view settings.
const (
	KeyFilter = "currentFilter"
	KeySearch = "searchQuery"
)

// Setting is one persisted key-value pair.
type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string
}

// Store persists schedules and view settings in a local sqlite file.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the sqlite database at path and migrates
// the schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := db.AutoMigrate(&model.Schedule{}, &Setting{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// LoadSchedules reads every persisted schedule with best-effort defaulting:
// rows missing id, title or date are dropped, time is renormalized, the
// datetime is recomputed only when absent (a pre-existing value wins, for
// forward compatibility), and a missing createdAt defaults to now.
func (s *Store) LoadSchedules(ctx context.Context, now time.Time) ([]model.Schedule, error) {
	var rows []model.Schedule
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load schedules: %w", err)
	}

	out := make([]model.Schedule, 0, len(rows))
	for _, r := range rows {
		if r.ID == 0 || r.Title == "" || r.Date == "" {
			appLog.Debug("dropping corrupt schedule row", "id", r.ID)
			continue
		}
		r.Time = sched.NormalizeTime(r.Time)
		if r.DateTime == "" {
			r.DateTime = sched.BuildDateTime(r.Date, r.Time)
		}
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		out = append(out, r)
	}
	return out, nil
}

// SaveSchedule inserts or replaces one schedule by id.
func (s *Store) SaveSchedule(ctx context.Context, sc model.Schedule) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&sc).Error
	if err != nil {
		return fmt.Errorf("save schedule %d: %w", sc.ID, err)
	}
	return nil
}

// DeleteSchedule removes one schedule by id. Deleting an absent id is not an
// error.
func (s *Store) DeleteSchedule(ctx context.Context, id int64) error {
	if err := s.db.WithContext(ctx).Delete(&model.Schedule{}, id).Error; err != nil {
		return fmt.Errorf("delete schedule %d: %w", id, err)
	}
	return nil
}

// Setting returns the persisted value for key, or def when unset.
func (s *Store) Setting(ctx context.Context, key, def string) (string, error) {
	var row Setting
	err := s.db.WithContext(ctx).First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return def, nil
	}
	if err != nil {
		return def, fmt.Errorf("load setting %s: %w", key, err)
	}
	return row.Value, nil
}

// SetSetting writes one setting value.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&Setting{Key: key, Value: value}).Error
	if err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}
	return nil
}
