package repository_test

import (
	"testing"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/internal/repository"
	"github.com/statusx-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_userRepository_duplicatedEmail(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewUserRepository(&testutil.MockRedisClient{})

	err := repo.Create(ctx, &entity.User{
		Base:  entity.Base{ID: "another-user"},
		Name:  "Another User",
		Email: testutil.User1.Email,
	})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
