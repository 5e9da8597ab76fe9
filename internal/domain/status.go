package domain

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/statusx-lab/backend/internal/client"
	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/internal/event"
	"github.com/statusx-lab/backend/internal/model"
	"github.com/statusx-lab/backend/internal/repository"
	"github.com/statusx-lab/backend/pkg/errorx"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type StatusDomain interface {
	Create(context.Context, *model.CreateStatusRequest) (*model.CreateStatusResponse, error)
	Delete(context.Context, *model.DeleteStatusRequest) (*model.DeleteStatusResponse, error)
	GetUserStatuses(context.Context, *model.GetUserStatusesRequest) (*model.GetUserStatusesResponse, error)
	GetFeed(context.Context, *model.GetFeedRequest) (*model.GetFeedResponse, error)
}

type statusDomain struct {
	statusRepo         repository.StatusRepository
	followerRepo       repository.FollowerRepository
	userRepo           repository.UserRepository
	notificationCaller client.NotificationCaller
}

func NewStatusDomain(
	statusRepo repository.StatusRepository,
	followerRepo repository.FollowerRepository,
	userRepo repository.UserRepository,
	notificationCaller client.NotificationCaller,
) *statusDomain {
	return &statusDomain{
		statusRepo:         statusRepo,
		followerRepo:       followerRepo,
		userRepo:           userRepo,
		notificationCaller: notificationCaller,
	}
}

func (d *statusDomain) Create(
	ctx context.Context, req *model.CreateStatusRequest,
) (*model.CreateStatusResponse, error) {
	violations := &errorx.Violations{}
	if strings.TrimSpace(req.Content) == "" {
		violations.Add("content", "is required")
	} else if len(req.Content) > entity.MaxStatusLength {
		violations.Add("content", "must not be longer than %d characters", entity.MaxStatusLength)
	}

	if err := violations.Error(); err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)
	author, err := d.userRepo.GetByID(ctx, requestUserID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get author: %v", err)
		return nil, errorx.Unknown
	}

	status := &entity.Status{
		SnowFlakeBase: entity.SnowFlakeBase{ID: xcontext.SnowFlake(ctx).Generate().Int64()},
		UserID:        requestUserID,
		Content:       req.Content,
	}

	if err := d.statusRepo.Create(ctx, status); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create status: %v", err)
		return nil, errorx.Unknown
	}

	ev := event.New(
		event.StatusCreatedEvent{
			StatusID: strconv.FormatInt(status.ID, 10),
			UserID:   requestUserID,
		},
		event.Metadata{To: requestUserID},
	)
	if err := d.notificationCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit status created event: %v", err)
	}

	avatarSize := xcontext.Configs(ctx).Gravatar.Size
	resp := model.ConvertStatus(status, model.ConvertShortUser(author, avatarSize))
	return &model.CreateStatusResponse{Status: resp}, nil
}

func (d *statusDomain) Delete(
	ctx context.Context, req *model.DeleteStatusRequest,
) (*model.DeleteStatusResponse, error) {
	id, err := strconv.ParseInt(req.ID, 10, 64)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid status id")
	}

	status, err := d.statusRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found status")
		}

		xcontext.Logger(ctx).Errorf("Cannot get status: %v", err)
		return nil, errorx.Unknown
	}

	if status.UserID != xcontext.RequestUserID(ctx) {
		return nil, errorx.New(errorx.PermissionDenied, "Only the author can delete a status")
	}

	if err := d.statusRepo.DeleteByID(ctx, id); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete status: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DeleteStatusResponse{}, nil
}

func (d *statusDomain) assembleStatuses(
	ctx context.Context, statuses []entity.Status,
) ([]model.Status, error) {
	authorIDs := []string{}
	seen := map[string]bool{}
	for _, status := range statuses {
		if !seen[status.UserID] {
			seen[status.UserID] = true
			authorIDs = append(authorIDs, status.UserID)
		}
	}

	authors, err := d.userRepo.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	authorMap := map[string]entity.User{}
	for _, author := range authors {
		authorMap[author.ID] = author
	}

	clientStatuses := []model.Status{}
	avatarSize := xcontext.Configs(ctx).Gravatar.Size
	for i := range statuses {
		author := authorMap[statuses[i].UserID]
		clientStatuses = append(clientStatuses, model.ConvertStatus(&statuses[i], model.ConvertShortUser(&author, avatarSize)))
	}

	return clientStatuses, nil
}

func (d *statusDomain) clampPaging(ctx context.Context, offset, limit int) (int, int, error) {
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

func (d *statusDomain) GetUserStatuses(
	ctx context.Context, req *model.GetUserStatusesRequest,
) (*model.GetUserStatusesResponse, error) {
	userID := req.UserID
	if userID == "" {
		userID = xcontext.RequestUserID(ctx)
	}

	offset, limit, err := d.clampPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	if _, err := d.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	statuses, err := d.statusRepo.GetListByUserID(ctx, userID, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get statuses: %v", err)
		return nil, errorx.Unknown
	}

	clientStatuses, err := d.assembleStatuses(ctx, statuses)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get status authors: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetUserStatusesResponse{Statuses: clientStatuses}, nil
}

func (d *statusDomain) GetFeed(
	ctx context.Context, req *model.GetFeedRequest,
) (*model.GetFeedResponse, error) {
	offset, limit, err := d.clampPaging(ctx, req.Offset, req.Limit)
	if err != nil {
		return nil, err
	}

	requestUserID := xcontext.RequestUserID(ctx)
	if _, err := d.userRepo.GetByID(ctx, requestUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	followingQuery := d.followerRepo.FollowingQuery(ctx, requestUserID)
	statuses, err := d.statusRepo.GetFeed(ctx, requestUserID, followingQuery, offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get feed: %v", err)
		return nil, errorx.Unknown
	}

	clientStatuses, err := d.assembleStatuses(ctx, statuses)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get status authors: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetFeedResponse{Statuses: clientStatuses}, nil
}
