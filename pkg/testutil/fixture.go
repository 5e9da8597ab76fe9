package testutil

import (
	"context"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/internal/repository"
)

var (
	User1 = entity.User{
		Base:        entity.Base{ID: "user1"},
		Name:        "User 1",
		Email:       "user1@example.com",
		IsActivated: true,
	}

	User2 = entity.User{
		Base:        entity.Base{ID: "user2"},
		Name:        "User 2",
		Email:       "user2@example.com",
		IsActivated: true,
	}

	User3 = entity.User{
		Base:        entity.Base{ID: "user3"},
		Name:        "User 3",
		Email:       "user3@example.com",
		IsActivated: true,
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository(&MockRedisClient{})

	for _, user := range []entity.User{User1, User2, User3} {
		record := user
		if err := userRepo.Create(ctx, &record); err != nil {
			panic(err)
		}
	}
}
