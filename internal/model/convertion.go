package model

import (
	"strconv"
	"time"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/pkg/gravatar"
)

const DefaultTimeLayout string = time.RFC3339Nano

func ConvertUser(user *entity.User, avatarSize int, followers, followings int64, includeSensitive bool) User {
	if user == nil {
		return User{}
	}

	email := user.Email
	createdAt := user.CreatedAt.Format(DefaultTimeLayout)
	if !includeSensitive {
		email = ""
		createdAt = ""
	}

	return User{
		ID:         user.ID,
		Name:       user.Name,
		Email:      email,
		AvatarURL:  gravatar.URL(user.Email, avatarSize),
		CreatedAt:  createdAt,
		Followers:  followers,
		Followings: followings,
	}
}

func ConvertShortUser(user *entity.User, avatarSize int) User {
	if user == nil {
		return User{}
	}

	return User{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: gravatar.URL(user.Email, avatarSize),
	}
}

func ConvertStatus(status *entity.Status, author User) Status {
	if status == nil {
		return Status{}
	}

	return Status{
		ID:        strconv.FormatInt(status.ID, 10),
		Content:   status.Content,
		CreatedAt: status.CreatedAt.Format(DefaultTimeLayout),
		Author:    author,
	}
}
