package migration

import (
	"context"
	"errors"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// migrators are applied in order. Every applied version is recorded in the
// migrations table so a restarted binary only runs the missing tail.
var migrators = []func(ctx context.Context) error{
	migrate0000,
	migrate0001,
}

func Migrate(ctx context.Context) error {
	if err := xcontext.DB(ctx).AutoMigrate(&entity.Migration{}); err != nil {
		return err
	}

	lastVersion := -1
	var last entity.Migration
	err := xcontext.DB(ctx).Order("version DESC").Take(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err == nil {
		lastVersion = last.Version
	}

	for version := lastVersion + 1; version < len(migrators); version++ {
		if err := migrators[version](ctx); err != nil {
			return err
		}

		record := entity.Migration{Version: version}
		if err := xcontext.DB(ctx).Create(&record).Error; err != nil {
			return err
		}

		xcontext.Logger(ctx).Infof("Applied migration version %d", version)
	}

	return nil
}
