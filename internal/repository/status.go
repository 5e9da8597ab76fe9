package repository

import (
	"context"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type StatusRepository interface {
	Create(ctx context.Context, data *entity.Status) error
	GetByID(ctx context.Context, id int64) (*entity.Status, error)
	DeleteByID(ctx context.Context, id int64) error
	GetListByUserID(ctx context.Context, userID string, offset, limit int) ([]entity.Status, error)
	GetFeed(ctx context.Context, userID string, followingQuery *gorm.DB, offset, limit int) ([]entity.Status, error)
	CountByUserID(ctx context.Context, userID string) (int64, error)
}

type statusRepository struct{}

func NewStatusRepository() *statusRepository {
	return &statusRepository{}
}

func (r *statusRepository) Create(ctx context.Context, data *entity.Status) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *statusRepository) GetByID(ctx context.Context, id int64) (*entity.Status, error) {
	var record entity.Status
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *statusRepository) DeleteByID(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).Delete(&entity.Status{}, "id=?", id).Error
}

func (r *statusRepository) GetListByUserID(
	ctx context.Context, userID string, offset, limit int,
) ([]entity.Status, error) {
	var records []entity.Status
	err := xcontext.DB(ctx).
		Where("user_id=?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

// GetFeed returns the statuses of the given user together with the statuses
// of everyone in followingQuery, newest first. Ties on created_at break by
// the larger (later-generated) id.
func (r *statusRepository) GetFeed(
	ctx context.Context, userID string, followingQuery *gorm.DB, offset, limit int,
) ([]entity.Status, error) {
	var records []entity.Status
	err := xcontext.DB(ctx).
		Where("user_id=? OR user_id IN (?)", userID, followingQuery).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *statusRepository) CountByUserID(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Status{}).
		Where("user_id=?", userID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
