package domain

import (
	"context"

	"github.com/statusx-lab/backend/internal/client"
	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/internal/event"
	"github.com/statusx-lab/backend/internal/model"
	"github.com/statusx-lab/backend/internal/repository"
	"github.com/statusx-lab/backend/pkg/errorx"
	"github.com/statusx-lab/backend/pkg/xcontext"
)

type FollowerDomain interface {
	Follow(context.Context, *model.FollowRequest) (*model.FollowResponse, error)
	Unfollow(context.Context, *model.UnfollowRequest) (*model.UnfollowResponse, error)
	IsFollowing(context.Context, *model.IsFollowingRequest) (*model.IsFollowingResponse, error)
	GetFollowers(context.Context, *model.GetFollowersRequest) (*model.GetFollowersResponse, error)
	GetFollowings(context.Context, *model.GetFollowingsRequest) (*model.GetFollowingsResponse, error)
}

type followerDomain struct {
	followerRepo       repository.FollowerRepository
	userRepo           repository.UserRepository
	notificationCaller client.NotificationCaller
}

func NewFollowerDomain(
	followerRepo repository.FollowerRepository,
	userRepo repository.UserRepository,
	notificationCaller client.NotificationCaller,
) *followerDomain {
	return &followerDomain{
		followerRepo:       followerRepo,
		userRepo:           userRepo,
		notificationCaller: notificationCaller,
	}
}

func mergeUserIDs(userID string, userIDs []string) []string {
	merged := []string{}
	seen := map[string]bool{}
	for _, id := range append([]string{userID}, userIDs...) {
		if id == "" || seen[id] {
			continue
		}

		seen[id] = true
		merged = append(merged, id)
	}

	return merged
}

func (d *followerDomain) Follow(
	ctx context.Context, req *model.FollowRequest,
) (*model.FollowResponse, error) {
	followingIDs := mergeUserIDs(req.UserID, req.UserIDs)
	if len(followingIDs) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty user id")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	for _, id := range followingIDs {
		if id == requestUserID {
			return nil, errorx.New(errorx.BadRequest, "Not allow following yourself")
		}
	}

	followings, err := d.userRepo.GetByIDs(ctx, followingIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users to follow: %v", err)
		return nil, errorx.Unknown
	}

	if len(followings) != len(followingIDs) {
		return nil, errorx.New(errorx.NotFound, "Not found user")
	}

	err = d.followerRepo.Create(ctx, requestUserID, followingIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create followers: %v", err)
		return nil, errorx.Unknown
	}

	for _, id := range followingIDs {
		ev := event.New(
			event.FollowUserEvent{FollowerID: requestUserID, FollowingID: id},
			event.Metadata{To: id},
		)
		if err := d.notificationCaller.Emit(ctx, ev); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot emit follow event: %v", err)
		}
	}

	return &model.FollowResponse{}, nil
}

func (d *followerDomain) Unfollow(
	ctx context.Context, req *model.UnfollowRequest,
) (*model.UnfollowResponse, error) {
	followingIDs := mergeUserIDs(req.UserID, req.UserIDs)
	if len(followingIDs) == 0 {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty user id")
	}

	requestUserID := xcontext.RequestUserID(ctx)
	for _, id := range followingIDs {
		// Deleting a non-existing edge is a no-op.
		if err := d.followerRepo.Delete(ctx, requestUserID, id); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete follower: %v", err)
			return nil, errorx.Unknown
		}
	}

	return &model.UnfollowResponse{}, nil
}

func (d *followerDomain) IsFollowing(
	ctx context.Context, req *model.IsFollowingRequest,
) (*model.IsFollowingResponse, error) {
	if req.UserID == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty user id")
	}

	followingIDs, err := d.followerRepo.GetFollowingIDs(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following ids: %v", err)
		return nil, errorx.Unknown
	}

	for _, id := range followingIDs {
		if id == req.UserID {
			return &model.IsFollowingResponse{Following: true}, nil
		}
	}

	return &model.IsFollowingResponse{Following: false}, nil
}

func (d *followerDomain) clampPaging(ctx context.Context, offset, limit int) (int, int, error) {
	if offset < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Not allow negative offset")
	}

	apiCfg := xcontext.Configs(ctx).ApiServer
	if limit == 0 {
		limit = apiCfg.DefaultLimit
	}

	if limit < 0 {
		return 0, 0, errorx.New(errorx.BadRequest, "Not allow negative limit")
	}

	if limit > apiCfg.MaxLimit {
		return 0, 0, errorx.New(errorx.BadRequest, "Exceed the maximum of limit (%d)", apiCfg.MaxLimit)
	}

	return offset, limit, nil
}

func (d *followerDomain) assembleUsers(
	ctx context.Context, userIDs []string,
) ([]model.User, error) {
	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	userMap := map[string]entity.User{}
	for _, user := range users {
		userMap[user.ID] = user
	}

	clientUsers := []model.User{}
	avatarSize := xcontext.Configs(ctx).Gravatar.Size
	for _, id := range userIDs {
		if user, ok := userMap[id]; ok {
			clientUsers = append(clientUsers, model.ConvertShortUser(&user, avatarSize))
		}
	}

	return clientUsers, nil
}

func (d *followerDomain) GetFollowers(
	ctx context.Context, req *model.GetFollowersRequest,
) (*model.GetFollowersResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	offset, limit, err := d.clampPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	followers, err := d.followerRepo.GetFollowers(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followers: %v", err)
		return nil, errorx.Unknown
	}

	followerIDs := []string{}
	for _, f := range followers {
		followerIDs = append(followerIDs, f.FollowerID)
	}

	clientUsers, err := d.assembleUsers(ctx, followerIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get follower users: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFollowersResponse{Users: clientUsers}, nil
}

func (d *followerDomain) GetFollowings(
	ctx context.Context, req *model.GetFollowingsRequest,
) (*model.GetFollowingsResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	offset, limit, err := d.clampPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	followings, err := d.followerRepo.GetFollowings(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get followings: %v", err)
		return nil, errorx.Unknown
	}

	followingIDs := []string{}
	for _, f := range followings {
		followingIDs = append(followingIDs, f.FollowingID)
	}

	clientUsers, err := d.assembleUsers(ctx, followingIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get following users: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFollowingsResponse{Users: clientUsers}, nil
}
