package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"github.com/statusx-lab/backend/pkg/xredis"
)

type UserRepository interface {
	Create(ctx context.Context, data *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]entity.User, error)
	GetList(ctx context.Context, offset, limit int) ([]entity.User, error)
	UpdateByID(ctx context.Context, id string, data *entity.User) error
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	redisClient xredis.Client
}

func NewUserRepository(redisClient xredis.Client) *userRepository {
	return &userRepository{redisClient: redisClient}
}

func (r *userRepository) cacheKeyByID(userID string) string {
	return fmt.Sprintf("cache:user:%s", userID)
}

func (r *userRepository) cache(ctx context.Context, users ...entity.User) {
	redisKV := map[string]any{}
	for _, record := range users {
		redisKV[r.cacheKeyByID(record.ID)] = record
	}

	if err := r.redisClient.MSet(ctx, redisKV); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot multiple set for user redis: %v", err)
	}
}

func (r *userRepository) fromCacheByID(ctx context.Context, ids ...string) []entity.User {
	keys := []string{}
	for _, id := range ids {
		keys = append(keys, r.cacheKeyByID(id))
	}

	var records []entity.User
	values, err := r.redisClient.MGet(ctx, keys...)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot multiple get user from redis: %v", err)
		return nil
	}

	for i := range keys {
		if values[i] == nil {
			continue
		}

		s, ok := values[i].(string)
		if !ok {
			xcontext.Logger(ctx).Warnf("Invalid type of user %T", values[i])
			continue
		}

		var result entity.User
		if err := json.Unmarshal([]byte(s), &result); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot unmarshal user object: %v", err)
			continue
		}

		records = append(records, result)
	}

	return records
}

func (r *userRepository) invalidateCache(ctx context.Context, ids ...string) {
	keys := []string{}
	for _, id := range ids {
		keys = append(keys, r.cacheKeyByID(id))
	}

	if err := r.redisClient.Del(ctx, keys...); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate user cache: %v", err)
	}
}

func (r *userRepository) Create(ctx context.Context, data *entity.User) error {
	if err := xcontext.DB(ctx).Create(data).Error; err != nil {
		return err
	}

	r.cache(ctx, *data)
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if cached := r.fromCacheByID(ctx, id); len(cached) == 1 {
		return &cached[0], nil
	}

	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "id=?", id).Error; err != nil {
		return nil, err
	}

	r.cache(ctx, record)
	return &record, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var record entity.User
	if err := xcontext.DB(ctx).Take(&record, "email=?", email).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []string) ([]entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	records := r.fromCacheByID(ctx, ids...)

	cachedIDs := map[string]bool{}
	for _, record := range records {
		cachedIDs[record.ID] = true
	}

	missedIDs := []string{}
	for _, id := range ids {
		if !cachedIDs[id] {
			missedIDs = append(missedIDs, id)
		}
	}

	if len(missedIDs) == 0 {
		return records, nil
	}

	var missed []entity.User
	if err := xcontext.DB(ctx).Where("id IN (?)", missedIDs).Find(&missed).Error; err != nil {
		return nil, err
	}

	r.cache(ctx, missed...)
	return append(records, missed...), nil
}

func (r *userRepository) GetList(ctx context.Context, offset, limit int) ([]entity.User, error) {
	var records []entity.User
	err := xcontext.DB(ctx).
		Order("created_at ASC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *userRepository) UpdateByID(ctx context.Context, id string, data *entity.User) error {
	updateMap := map[string]any{}
	if data.Name != "" {
		updateMap["name"] = data.Name
	}

	if data.Email != "" {
		updateMap["email"] = data.Email
	}

	if data.PasswordHash != "" {
		updateMap["password_hash"] = data.PasswordHash
	}

	if data.IsActivated {
		updateMap["is_activated"] = true
	}

	if len(updateMap) == 0 {
		return nil
	}

	err := xcontext.DB(ctx).Model(&entity.User{}).Where("id=?", id).Updates(updateMap).Error
	if err != nil {
		return err
	}

	r.invalidateCache(ctx, id)
	return nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
