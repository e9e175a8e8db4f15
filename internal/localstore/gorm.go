package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GuestCartRecord is the row holding a serialized guest cart.
type GuestCartRecord struct {
	Key       string    `gorm:"column:store_key;primaryKey;size:128"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (GuestCartRecord) TableName() string { return "guest_cart_records" }

type gormConn interface {
	DB() *gorm.DB
	Ping(ctx context.Context) error
}

// GormBackend persists records in sqlite or postgres.
type GormBackend struct {
	conn gormConn
	now  func() time.Time
}

// NewGormBackend migrates the guest cart table and returns the backend.
func NewGormBackend(ctx context.Context, conn gormConn) (*GormBackend, error) {
	if conn == nil || conn.DB() == nil {
		return nil, fmt.Errorf("database connection required")
	}
	if err := conn.DB().WithContext(ctx).AutoMigrate(&GuestCartRecord{}); err != nil {
		return nil, fmt.Errorf("migrate guest cart records: %w", err)
	}
	return &GormBackend{
		conn: conn,
		now:  func() time.Time { return time.Now().UTC() },
	}, nil
}

// db binds the connection to ctx.
func (g *GormBackend) db(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return g.conn.DB()
	}
	return g.conn.DB().WithContext(ctx)
}

func (g *GormBackend) Read(ctx context.Context, key string) ([]byte, error) {
	var row GuestCartRecord
	err := g.db(ctx).Where("store_key = ?", key).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(row.Payload), nil
}

func (g *GormBackend) Write(ctx context.Context, key string, payload []byte) error {
	row := GuestCartRecord{Key: key, Payload: string(payload), UpdatedAt: g.now()}
	return g.db(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "store_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
}

func (g *GormBackend) Delete(ctx context.Context, key string) error {
	return g.db(ctx).Where("store_key = ?", key).Delete(&GuestCartRecord{}).Error
}

func (g *GormBackend) Ping(ctx context.Context) error {
	return g.conn.Ping(ctx)
}
