package domain

import (
	"testing"

	"github.com/statusx-lab/backend/internal/model"
	"github.com/statusx-lab/backend/internal/repository"
	"github.com/statusx-lab/backend/pkg/crypto"
	"github.com/statusx-lab/backend/pkg/errorx"
	"github.com/statusx-lab/backend/pkg/gravatar"
	"github.com/statusx-lab/backend/pkg/testutil"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func newUserDomain() *userDomain {
	return NewUserDomain(
		repository.NewUserRepository(&testutil.MockRedisClient{}),
		repository.NewFollowerRepository(),
	)
}

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomain()

	resp, err := domain.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ID, resp.ID)
	require.Equal(t, testutil.User1.Email, resp.Email)
	require.Equal(t, gravatar.URL(testutil.User1.Email, gravatar.DefaultSize), resp.AvatarURL)
}

func Test_userDomain_GetMe_avatarSize(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomain()

	cfg := xcontext.Configs(ctx)
	cfg.Gravatar.Size = 42
	ctx = xcontext.WithConfigs(ctx, cfg)

	resp, err := domain.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, gravatar.URL(testutil.User1.Email, 42), resp.AvatarURL)
	require.Contains(t, resp.AvatarURL, "?s=42")
}

func Test_userDomain_GetUser(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	userDomain := newUserDomain()
	followerDomain := newFollowerDomain()

	_, err := followerDomain.Follow(ctx, &model.FollowRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)

	resp, err := userDomain.GetUser(ctx, &model.GetUserRequest{UserID: testutil.User2.ID})
	require.NoError(t, err)
	require.Equal(t, testutil.User2.ID, resp.ID)
	require.Equal(t, int64(1), resp.Followers)
	require.Equal(t, int64(0), resp.Followings)

	// The public view hides the email.
	require.Empty(t, resp.Email)

	_, err = userDomain.GetUser(ctx, &model.GetUserRequest{UserID: "unknown-user"})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.NotFound, "Not found user"), err)
}

func Test_userDomain_GetUsers(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomain()

	resp, err := domain.GetUsers(ctx, &model.GetUsersRequest{Limit: 10})
	require.NoError(t, err)
	require.Len(t, resp.Users, 3)
}

func Test_userDomain_Update(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)
	domain := newUserDomain()
	userRepo := repository.NewUserRepository(&testutil.MockRedisClient{})

	_, err := domain.Update(ctx, &model.UpdateUserRequest{
		Name:                 "Renamed User",
		Password:             "newpassword",
		PasswordConfirmation: "newpassword",
	})
	require.NoError(t, err)

	user, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, "Renamed User", user.Name)
	require.True(t, crypto.ComparePassword(user.PasswordHash, "newpassword"))

	_, err = domain.Update(ctx, &model.UpdateUserRequest{Email: testutil.User2.Email})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.AlreadyExists, "This email was already registered"), err)
}
