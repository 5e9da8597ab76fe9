package domain

import (
	"context"
	"errors"
	"net/mail"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/internal/model"
	"github.com/statusx-lab/backend/internal/repository"
	"github.com/statusx-lab/backend/pkg/crypto"
	"github.com/statusx-lab/backend/pkg/errorx"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type UserDomain interface {
	GetMe(context.Context, *model.GetMeRequest) (*model.GetMeResponse, error)
	GetUser(context.Context, *model.GetUserRequest) (*model.GetUserResponse, error)
	GetUsers(context.Context, *model.GetUsersRequest) (*model.GetUsersResponse, error)
	Update(context.Context, *model.UpdateUserRequest) (*model.UpdateUserResponse, error)
}

type userDomain struct {
	userRepo     repository.UserRepository
	followerRepo repository.FollowerRepository
}

func NewUserDomain(
	userRepo repository.UserRepository,
	followerRepo repository.FollowerRepository,
) *userDomain {
	return &userDomain{userRepo: userRepo, followerRepo: followerRepo}
}

func (d *userDomain) loadCounts(ctx context.Context, userID string) (int64, int64, error) {
	followers, err := d.followerRepo.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	followings, err := d.followerRepo.CountFollowings(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	return followers, followings, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	followers, followings, err := d.loadCounts(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	avatarSize := xcontext.Configs(ctx).Gravatar.Size
	resp := model.GetMeResponse(model.ConvertUser(user, avatarSize, followers, followings, true))
	return &resp, nil
}

func (d *userDomain) GetUser(
	ctx context.Context, req *model.GetUserRequest,
) (*model.GetUserResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty user id")
	}

	user, err := d.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	followers, followings, err := d.loadCounts(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	avatarSize := xcontext.Configs(ctx).Gravatar.Size
	resp := model.GetUserResponse(model.ConvertUser(user, avatarSize, followers, followings, false))
	return &resp, nil
}

func (d *userDomain) GetUsers(
	ctx context.Context, req *model.GetUsersRequest,
) (*model.GetUsersResponse, error) {
	if req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative offset")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow negative limit")
	}

	if req.Limit > apiCfg.MaxLimit {
		return nil, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	users, err := d.userRepo.GetList(ctx, req.Offset, req.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user list: %v", err)
		return nil, errorx.Unknown
	}

	clientUsers := []model.User{}
	avatarSize := xcontext.Configs(ctx).Gravatar.Size
	for i := range users {
		clientUsers = append(clientUsers, model.ConvertShortUser(&users[i], avatarSize))
	}

	return &model.GetUsersResponse{Users: clientUsers}, nil
}

func (d *userDomain) Update(
	ctx context.Context, req *model.UpdateUserRequest,
) (*model.UpdateUserResponse, error) {
	violations := &errorx.Violations{}

	if len(req.Name) > entity.MaxNameLength {
		violations.Add("name", "must not be longer than %d characters", entity.MaxNameLength)
	}

	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			violations.Add("email", "is not a valid address")
		} else if len(req.Email) > entity.MaxEmailLength {
			violations.Add("email", "must not be longer than %d characters", entity.MaxEmailLength)
		}
	}

	if req.Password != "" {
		checkPassword(violations, req.Password, req.PasswordConfirmation)
	}

	if err := violations.Error(); err != nil {
		return nil, err
	}

	if req.Email != "" {
		_, err := d.userRepo.GetByEmail(ctx, req.Email)
		if err == nil {
			return nil, errorx.New(errorx.AlreadyExists, "This email was already registered")
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
			return nil, errorx.Unknown
		}
	}

	update := &entity.User{Name: req.Name, Email: req.Email}
	if req.Password != "" {
		passwordHash, err := crypto.HashPassword(req.Password)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
			return nil, errorx.Unknown
		}

		update.PasswordHash = passwordHash
	}

	err := d.userRepo.UpdateByID(ctx, xcontext.RequestUserID(ctx), update)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateUserResponse{}, nil
}
