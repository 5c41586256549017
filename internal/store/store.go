// Package store persists parsed records. The Store interface is the only
// thing the rest of the program depends on; GormStore implements it on top
// of a MySQL database.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/specialistvlad/mpipgo/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Store durably saves one record at a location.
type Store interface {
	Save(ctx context.Context, loc Location, rec *model.ParsedRecord) error
	Close() error
}

// RecordRow is the database row of one stored record. The headline fields
// are columns so they can be queried; the full record is kept as JSON.
type RecordRow struct {
	ID        string    `gorm:"primarykey;type:varchar(64)" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Collection    string `gorm:"type:varchar(255);not null;index" json:"collection"`
	Filename      string `gorm:"type:varchar(255);not null" json:"filename"`
	Path          string `gorm:"type:varchar(1024)" json:"filepath"`
	InterfaceType string `gorm:"type:varchar(50);not null;index" json:"interface_type"`

	BatchSize          *int     `gorm:"index" json:"batch_size"`
	NumNodes           int      `gorm:"index" json:"num_nodes"`
	NumProcesses       int      `json:"num_processes"`
	TotalMPIPercentage *float64 `json:"total_mpi_percentage"`

	ParsedAt time.Time `json:"parsing_timestamp"`
	Payload  string    `gorm:"type:longtext;not null" json:"payload"`
}

// TableName implements gorm's tabler interface.
func (RecordRow) TableName() string {
	return "experiment_records"
}

// NewRecordRow flattens rec into a RecordRow stored at loc.
func NewRecordRow(loc Location, rec *model.ParsedRecord) (*RecordRow, error) {
	payload, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode record %s: %w", rec.Filename, err)
	}
	return &RecordRow{
		ID:                 loc.ID,
		Collection:         loc.Collection,
		Filename:           rec.Filename,
		Path:               rec.Path,
		InterfaceType:      rec.InterfaceType,
		BatchSize:          rec.RunInfo.BatchSize,
		NumNodes:           rec.RunInfo.NumNodes,
		NumProcesses:       rec.RunInfo.NumProcesses,
		TotalMPIPercentage: rec.Summary.TotalMPIPercentage,
		ParsedAt:           rec.ParsingTimestamp,
		Payload:            string(payload),
	}, nil
}

// GormStore is a Store backed by gorm.
type GormStore struct {
	db *gorm.DB
}

// Open connects to the MySQL database named in creds and migrates the
// schema.
func Open(creds *Credentials) (*GormStore, error) {
	db, err := gorm.Open(mysql.Open(creds.Database.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return NewGormStore(db)
}

// NewGormStore wraps an existing gorm handle and migrates the schema.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&RecordRow{}); err != nil {
		return nil, fmt.Errorf("database migration failed: %w", err)
	}
	return &GormStore{db: db}, nil
}

// Save inserts rec as a new row.
func (s *GormStore) Save(ctx context.Context, loc Location, rec *model.ParsedRecord) error {
	row, err := NewRecordRow(loc, rec)
	if err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to store %s: %w", loc, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
