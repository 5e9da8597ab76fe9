package domain

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/statusx-lab/backend/internal/client"
	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/internal/event"
	"github.com/statusx-lab/backend/internal/model"
	"github.com/statusx-lab/backend/internal/repository"
	"github.com/statusx-lab/backend/pkg/crypto"
	"github.com/statusx-lab/backend/pkg/errorx"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	Register(context.Context, *model.RegisterRequest) (*model.RegisterResponse, error)
	Activate(context.Context, *model.ActivateUserRequest) (*model.ActivateUserResponse, error)
	Login(context.Context, *model.LoginRequest) (*model.LoginResponse, error)
	RequestPasswordReset(context.Context, *model.RequestPasswordResetRequest) (*model.RequestPasswordResetResponse, error)
	ResetPassword(context.Context, *model.ResetPasswordRequest) (*model.ResetPasswordResponse, error)
}

type authDomain struct {
	userRepo           repository.UserRepository
	passwordResetRepo  repository.PasswordResetRepository
	notificationCaller client.NotificationCaller
}

func NewAuthDomain(
	userRepo repository.UserRepository,
	passwordResetRepo repository.PasswordResetRepository,
	notificationCaller client.NotificationCaller,
) *authDomain {
	return &authDomain{
		userRepo:           userRepo,
		passwordResetRepo:  passwordResetRepo,
		notificationCaller: notificationCaller,
	}
}

func checkPassword(violations *errorx.Violations, password, confirmation string) {
	if len(password) < entity.MinPasswordLength {
		violations.Add("password", "must have at least %d characters", entity.MinPasswordLength)
	}

	if password != confirmation {
		violations.Add("password_confirmation", "does not match the password")
	}
}

func (d *authDomain) Register(
	ctx context.Context, req *model.RegisterRequest,
) (*model.RegisterResponse, error) {
	violations := &errorx.Violations{}

	if req.Name == "" {
		violations.Add("name", "is required")
	} else if len(req.Name) > entity.MaxNameLength {
		violations.Add("name", "must not be longer than %d characters", entity.MaxNameLength)
	}

	if req.Email == "" {
		violations.Add("email", "is required")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		violations.Add("email", "is not a valid address")
	} else if len(req.Email) > entity.MaxEmailLength {
		violations.Add("email", "must not be longer than %d characters", entity.MaxEmailLength)
	}

	checkPassword(violations, req.Password, req.PasswordConfirmation)

	if err := violations.Error(); err != nil {
		return nil, err
	}

	_, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "This email was already registered")
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	activationToken, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate activation token: %v", err)
		return nil, errorx.Unknown
	}

	user := &entity.User{
		Base:            entity.Base{ID: uuid.NewString()},
		Name:            req.Name,
		Email:           req.Email,
		PasswordHash:    passwordHash,
		ActivationToken: activationToken,
		IsActivated:     false,
	}

	if err := d.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errorx.New(errorx.AlreadyExists, "This email was already registered")
		}

		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	ev := event.New(
		event.UserRegisteredEvent{
			UserID:          user.ID,
			Email:           user.Email,
			ActivationToken: user.ActivationToken,
		},
		event.Metadata{To: user.ID},
	)
	if err := d.notificationCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit user registered event: %v", err)
	}

	avatarSize := xcontext.Configs(ctx).Gravatar.Size
	return &model.RegisterResponse{User: model.ConvertUser(user, avatarSize, 0, 0, true)}, nil
}

func (d *authDomain) Activate(
	ctx context.Context, req *model.ActivateUserRequest,
) (*model.ActivateUserResponse, error) {
	if req.Email == "" || req.Token == "" {
		return nil, errorx.New(errorx.BadRequest, "Not allow an empty email or token")
	}

	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if user.IsActivated {
		return &model.ActivateUserResponse{}, nil
	}

	if req.Token != user.ActivationToken {
		return nil, errorx.New(errorx.BadRequest, "Invalid activation token")
	}

	err = d.userRepo.UpdateByID(ctx, user.ID, &entity.User{IsActivated: true})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot activate user: %v", err)
		return nil, errorx.Unknown
	}

	return &model.ActivateUserResponse{}, nil
}

func (d *authDomain) Login(
	ctx context.Context, req *model.LoginRequest,
) (*model.LoginResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	if !crypto.ComparePassword(user.PasswordHash, req.Password) {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid email or password")
	}

	if !user.IsActivated {
		return nil, errorx.New(errorx.NotActivated, "This account has not been activated yet")
	}

	accessToken, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.LoginResponse{AccessToken: accessToken}, nil
}

func (d *authDomain) RequestPasswordReset(
	ctx context.Context, req *model.RequestPasswordResetRequest,
) (*model.RequestPasswordResetResponse, error) {
	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	resetToken, err := crypto.GenerateRandomString()
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate reset token: %v", err)
		return nil, errorx.Unknown
	}

	err = d.passwordResetRepo.Upsert(ctx, &entity.PasswordReset{
		Email:       user.Email,
		TokenDigest: crypto.SHA256([]byte(resetToken)),
		ExpiredAt:   time.Now().Add(xcontext.Configs(ctx).Auth.PasswordResetExpiration),
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot save password reset: %v", err)
		return nil, errorx.Unknown
	}

	ev := event.New(
		event.PasswordResetRequestedEvent{Email: user.Email, ResetToken: resetToken},
		event.Metadata{To: user.ID},
	)
	if err := d.notificationCaller.Emit(ctx, ev); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot emit password reset event: %v", err)
	}

	return &model.RequestPasswordResetResponse{}, nil
}

func (d *authDomain) ResetPassword(
	ctx context.Context, req *model.ResetPasswordRequest,
) (*model.ResetPasswordResponse, error) {
	violations := &errorx.Violations{}
	checkPassword(violations, req.Password, req.PasswordConfirmation)
	if err := violations.Error(); err != nil {
		return nil, err
	}

	user, err := d.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by email: %v", err)
		return nil, errorx.Unknown
	}

	reset, err := d.passwordResetRepo.GetByEmail(ctx, user.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.BadRequest, "Invalid reset token")
		}

		xcontext.Logger(ctx).Errorf("Cannot get password reset: %v", err)
		return nil, errorx.Unknown
	}

	if time.Now().After(reset.ExpiredAt) {
		return nil, errorx.New(errorx.TokenExpired, "The reset token has expired")
	}

	if crypto.SHA256([]byte(req.Token)) != reset.TokenDigest {
		return nil, errorx.New(errorx.BadRequest, "Invalid reset token")
	}

	passwordHash, err := crypto.HashPassword(req.Password)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot hash password: %v", err)
		return nil, errorx.Unknown
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	err = d.userRepo.UpdateByID(ctx, user.ID, &entity.User{PasswordHash: passwordHash})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update password: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.passwordResetRepo.DeleteByEmail(ctx, user.Email); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete password reset: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return &model.ResetPasswordResponse{}, nil
}
