package repository

import (
	"context"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type PasswordResetRepository interface {
	Upsert(ctx context.Context, data *entity.PasswordReset) error
	GetByEmail(ctx context.Context, email string) (*entity.PasswordReset, error)
	DeleteByEmail(ctx context.Context, email string) error
}

type passwordResetRepository struct{}

func NewPasswordResetRepository() *passwordResetRepository {
	return &passwordResetRepository{}
}

func (r *passwordResetRepository) Upsert(ctx context.Context, data *entity.PasswordReset) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"token_digest", "expired_at"}),
	}).Create(data).Error
}

func (r *passwordResetRepository) GetByEmail(ctx context.Context, email string) (*entity.PasswordReset, error) {
	var record entity.PasswordReset
	if err := xcontext.DB(ctx).Take(&record, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *passwordResetRepository) DeleteByEmail(ctx context.Context, email string) error {
	return xcontext.DB(ctx).Delete(&entity.PasswordReset{}, "email=?", email).Error
}
