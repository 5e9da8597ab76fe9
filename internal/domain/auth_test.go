package domain

import (
	"testing"

	"github.com/statusx-lab/backend/internal/event"
	"github.com/statusx-lab/backend/internal/model"
	"github.com/statusx-lab/backend/internal/repository"
	"github.com/statusx-lab/backend/pkg/errorx"
	"github.com/statusx-lab/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newAuthDomain() *authDomain {
	return NewAuthDomain(
		repository.NewUserRepository(&testutil.MockRedisClient{}),
		repository.NewPasswordResetRepository(),
		&testutil.MockNotificationCaller{},
	)
}

func Test_authDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newAuthDomain()

	resp, err := domain.Register(ctx, &model.RegisterRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "s3cret",
		PasswordConfirmation: "s3cret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.User.ID)
	require.Equal(t, "Alice", resp.User.Name)
	require.Equal(t, "alice@example.com", resp.User.Email)
	require.Contains(t, resp.User.AvatarURL, "gravatar.com/avatar/")

	userRepo := repository.NewUserRepository(&testutil.MockRedisClient{})
	user, err := userRepo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.False(t, user.IsActivated)
	require.GreaterOrEqual(t, len(user.ActivationToken), 30)
	require.NotEqual(t, "s3cret", user.PasswordHash)
}

func Test_authDomain_Register_validation(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newAuthDomain()

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Email:                "not-an-address",
		Password:             "short",
		PasswordConfirmation: "different",
	})
	require.Error(t, err)

	var verr errorx.ValidationError
	require.ErrorAs(t, err, &verr)

	fields := []string{}
	for _, v := range verr.Violations {
		fields = append(fields, v.Field)
	}
	require.ElementsMatch(t, []string{"name", "email", "password", "password_confirmation"}, fields)
}

func Test_authDomain_Register_duplicatedEmail(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	domain := newAuthDomain()

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Name:                 "Another User 1",
		Email:                testutil.User1.Email,
		Password:             "s3cret",
		PasswordConfirmation: "s3cret",
	})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.AlreadyExists, "This email was already registered"), err)
}

func Test_authDomain_Register_distinctActivationTokens(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newAuthDomain()
	userRepo := repository.NewUserRepository(&testutil.MockRedisClient{})

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "s3cret",
		PasswordConfirmation: "s3cret",
	})
	require.NoError(t, err)

	_, err = domain.Register(ctx, &model.RegisterRequest{
		Name:                 "Bob",
		Email:                "bob@example.com",
		Password:             "s3cret",
		PasswordConfirmation: "s3cret",
	})
	require.NoError(t, err)

	alice, err := userRepo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	bob, err := userRepo.GetByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.NotEqual(t, alice.ActivationToken, bob.ActivationToken)
}

func Test_authDomain_Activate_and_Login(t *testing.T) {
	ctx := testutil.MockContext()
	domain := newAuthDomain()
	userRepo := repository.NewUserRepository(&testutil.MockRedisClient{})

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "s3cret",
		PasswordConfirmation: "s3cret",
	})
	require.NoError(t, err)

	// The account cannot login before it is activated.
	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.NotActivated, "This account has not been activated yet"), err)

	user, err := userRepo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	_, err = domain.Activate(ctx, &model.ActivateUserRequest{
		Email: "alice@example.com",
		Token: "wrong-token",
	})
	require.Error(t, err)

	_, err = domain.Activate(ctx, &model.ActivateUserRequest{
		Email: "alice@example.com",
		Token: user.ActivationToken,
	})
	require.NoError(t, err)

	resp, err := domain.Login(ctx, &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)
	require.Equal(t, errorx.New(errorx.Unauthenticated, "Invalid email or password"), err)
}

func Test_authDomain_ResetPassword(t *testing.T) {
	ctx := testutil.MockContext()

	var resetToken string
	caller := &testutil.MockNotificationCaller{}
	domain := NewAuthDomain(
		repository.NewUserRepository(&testutil.MockRedisClient{}),
		repository.NewPasswordResetRepository(),
		caller,
	)

	_, err := domain.Register(ctx, &model.RegisterRequest{
		Name:                 "Alice",
		Email:                "alice@example.com",
		Password:             "s3cret",
		PasswordConfirmation: "s3cret",
	})
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(&testutil.MockRedisClient{})
	user, err := userRepo.GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)

	_, err = domain.Activate(ctx, &model.ActivateUserRequest{
		Email: user.Email,
		Token: user.ActivationToken,
	})
	require.NoError(t, err)

	_, err = domain.RequestPasswordReset(ctx, &model.RequestPasswordResetRequest{
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	require.Len(t, caller.Emitted, 2)
	require.Equal(t, "password_reset_requested", caller.Emitted[1].Op)

	resetToken = caller.Emitted[1].Data.(event.PasswordResetRequestedEvent).ResetToken
	require.GreaterOrEqual(t, len(resetToken), 30)

	_, err = domain.ResetPassword(ctx, &model.ResetPasswordRequest{
		Email:                "alice@example.com",
		Token:                "wrong-token",
		Password:             "newpassword",
		PasswordConfirmation: "newpassword",
	})
	require.Error(t, err)

	_, err = domain.ResetPassword(ctx, &model.ResetPasswordRequest{
		Email:                "alice@example.com",
		Token:                resetToken,
		Password:             "newpassword",
		PasswordConfirmation: "newpassword",
	})
	require.NoError(t, err)

	_, err = domain.Login(ctx, &model.LoginRequest{
		Email:    "alice@example.com",
		Password: "newpassword",
	})
	require.NoError(t, err)
}
