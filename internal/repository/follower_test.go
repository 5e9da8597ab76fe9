package repository_test

import (
	"testing"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/internal/repository"
	"github.com/statusx-lab/backend/pkg/testutil"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_followerRepository_singleEdge(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewFollowerRepository()

	require.NoError(t, repo.Create(ctx, testutil.User1.ID, []string{testutil.User2.ID}))

	// Creating the same edge again leaves a single row.
	require.NoError(t, repo.Create(ctx, testutil.User1.ID, []string{testutil.User2.ID}))

	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follower{}).Count(&count).Error
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	// The same row backs both directions of the relationship.
	followers, err := repo.GetFollowers(ctx, testutil.User2.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	require.Equal(t, testutil.User1.ID, followers[0].FollowerID)

	followings, err := repo.GetFollowings(ctx, testutil.User1.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, followings, 1)
	require.Equal(t, testutil.User2.ID, followings[0].FollowingID)

	counted, err := repo.CountFollowers(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), counted)
}

func Test_followerRepository_skipSelfEdge(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := repository.NewFollowerRepository()

	err := repo.Create(ctx, testutil.User1.ID, []string{testutil.User1.ID, testutil.User2.ID})
	require.NoError(t, err)

	followingIDs, err := repo.GetFollowingIDs(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, []string{testutil.User2.ID}, followingIDs)
}
