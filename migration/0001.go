package migration

import (
	"context"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/pkg/xcontext"
)

func migrate0001(ctx context.Context) error {
	return xcontext.DB(ctx).Migrator().CreateTable(&entity.PasswordReset{})
}
