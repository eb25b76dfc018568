package repository

import (
	"context"
	"time"

	"sharklink/internal/config"
	"sharklink/internal/model"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MySQLRepository handles the durable view-event archive
type MySQLRepository struct {
	db *gorm.DB
}

// NewMySQLRepository creates a new MySQL repository
func NewMySQLRepository(cfg *config.MySQLConfig) *MySQLRepository {
	// Configure GORM logger
	var gormLogger logger.Interface
	if zerolog.GlobalLevel() > zerolog.DebugLevel {
		gormLogger = logger.Default.LogMode(logger.Silent)
	} else {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MySQL")
	}

	// Auto migrate tables
	if err := db.AutoMigrate(&model.ViewEvent{}); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	log.Info().Msg("MySQL connected successfully")

	return &MySQLRepository{db: db}
}

// GetDB returns the GORM DB instance
func (r *MySQLRepository) GetDB() *gorm.DB {
	return r.db
}

// SaveViewEvent archives a view event
func (r *MySQLRepository) SaveViewEvent(ctx context.Context, event *model.ViewEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

// GetViewEvents retrieves archived view events for a link, newest first
func (r *MySQLRepository) GetViewEvents(ctx context.Context, linkID string, limit int) ([]model.ViewEvent, error) {
	var events []model.ViewEvent
	query := r.db.WithContext(ctx).
		Where("link_id = ?", linkID).
		Order("viewed_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&events).Error
	return events, err
}

// CountViewEvents returns the number of archived view events for a link
func (r *MySQLRepository) CountViewEvents(ctx context.Context, linkID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.ViewEvent{}).
		Where("link_id = ?", linkID).
		Count(&count).Error
	return count, err
}

// Close closes the database connection
func (r *MySQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
