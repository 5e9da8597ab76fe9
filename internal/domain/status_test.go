package domain

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/internal/model"
	"github.com/statusx-lab/backend/internal/repository"
	"github.com/statusx-lab/backend/pkg/errorx"
	"github.com/statusx-lab/backend/pkg/testutil"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newStatusDomain() *statusDomain {
	return NewStatusDomain(
		repository.NewStatusRepository(),
		repository.NewFollowerRepository(),
		repository.NewUserRepository(&testutil.MockRedisClient{}),
		&testutil.MockNotificationCaller{},
	)
}

func insertStatus(t *testing.T, ctx context.Context, id int64, userID, content string, at time.Time) {
	t.Helper()
	statusRepo := repository.NewStatusRepository()
	require.NoError(t, statusRepo.Create(ctx, &entity.Status{
		SnowFlakeBase: entity.SnowFlakeBase{ID: id, CreatedAt: at},
		UserID:        userID,
		Content:       content,
	}))
}

func Test_statusDomain_Create(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newStatusDomain()

	resp, err := domain.Create(ctx, &model.CreateStatusRequest{Content: "hello world"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Status.ID)
	require.Equal(t, "hello world", resp.Status.Content)
	require.Equal(t, testutil.User1.ID, resp.Status.Author.ID)

	_, err = domain.Create(ctx, &model.CreateStatusRequest{Content: "  "})
	require.Error(t, err)

	_, err = domain.Create(ctx, &model.CreateStatusRequest{
		Content: strings.Repeat("a", entity.MaxStatusLength+1),
	})
	require.Error(t, err)
}

func Test_statusDomain_Delete(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newStatusDomain()

	resp, err := domain.Create(ctx, &model.CreateStatusRequest{Content: "hello world"})
	require.NoError(t, err)

	// Someone else cannot delete the status.
	ctx2 := xcontext.WithRequestUserID(ctx, testutil.User2.ID)
	_, err = domain.Delete(ctx2, &model.DeleteStatusRequest{ID: resp.Status.ID})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Only the author can delete a status"), err)

	_, err = domain.Delete(ctx, &model.DeleteStatusRequest{ID: resp.Status.ID})
	require.NoError(t, err)

	_, err = domain.Delete(ctx, &model.DeleteStatusRequest{ID: resp.Status.ID})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.NotFound, "Not found status"), err)
}

func Test_statusDomain_GetUserStatuses(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newStatusDomain()

	base := time.Now()
	insertStatus(t, ctx, 1, testutil.User1.ID, "first", base)
	insertStatus(t, ctx, 2, testutil.User1.ID, "second", base.Add(time.Minute))
	insertStatus(t, ctx, 3, testutil.User2.ID, "another author", base)

	resp, err := domain.GetUserStatuses(ctx, &model.GetUserStatusesRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Statuses, 2)
	require.Equal(t, "second", resp.Statuses[0].Content)
	require.Equal(t, "first", resp.Statuses[1].Content)
	require.Equal(t, testutil.User1.ID, resp.Statuses[0].Author.ID)

	_, err = domain.GetUserStatuses(ctx, &model.GetUserStatusesRequest{
		UserID: "unknown-user",
		Limit:  10,
	})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)
}

func Test_statusDomain_GetFeed(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newStatusDomain()

	followerRepo := repository.NewFollowerRepository()
	require.NoError(t, followerRepo.Create(ctx, testutil.User1.ID, []string{testutil.User2.ID}))

	base := time.Now()
	insertStatus(t, ctx, 1, testutil.User2.ID, "hello", base)
	insertStatus(t, ctx, 2, testutil.User1.ID, "self", base.Add(50*time.Second))
	insertStatus(t, ctx, 3, testutil.User2.ID, "world", base.Add(100*time.Second))
	insertStatus(t, ctx, 4, testutil.User3.ID, "not followed", base.Add(100*time.Second))

	resp, err := domain.GetFeed(ctx, &model.GetFeedRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Statuses, 3)
	require.Equal(t, "world", resp.Statuses[0].Content)
	require.Equal(t, "self", resp.Statuses[1].Content)
	require.Equal(t, "hello", resp.Statuses[2].Content)
	require.Equal(t, testutil.User2.ID, resp.Statuses[0].Author.ID)
	require.Equal(t, "User 2", resp.Statuses[0].Author.Name)
}

func Test_statusDomain_GetFeed_tieBreak(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newStatusDomain()

	at := time.Now()
	insertStatus(t, ctx, 10, testutil.User1.ID, "older", at)
	insertStatus(t, ctx, 20, testutil.User1.ID, "newer", at)

	// On equal timestamps the later-generated id comes first.
	resp, err := domain.GetFeed(ctx, &model.GetFeedRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Statuses, 2)
	require.Equal(t, "newer", resp.Statuses[0].Content)
	require.Equal(t, "older", resp.Statuses[1].Content)
}

func Test_statusDomain_GetFeed_paging(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newStatusDomain()

	base := time.Now()
	insertStatus(t, ctx, 1, testutil.User1.ID, "first", base)
	insertStatus(t, ctx, 2, testutil.User1.ID, "second", base.Add(time.Minute))
	insertStatus(t, ctx, 3, testutil.User1.ID, "third", base.Add(2*time.Minute))

	// The default limit applies when the request does not give one.
	resp, err := domain.GetFeed(ctx, &model.GetFeedRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Statuses, 1)
	require.Equal(t, "third", resp.Statuses[0].Content)

	// Restart the scan from where the previous page stopped.
	resp, err = domain.GetFeed(ctx, &model.GetFeedRequest{Offset: 1, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Statuses, 2)
	require.Equal(t, "second", resp.Statuses[0].Content)
	require.Equal(t, "first", resp.Statuses[1].Content)
}
