package repository

import (
	"context"

	"github.com/statusx-lab/backend/internal/entity"
	"github.com/statusx-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowerRepository interface {
	Create(ctx context.Context, followerID string, followingIDs []string) error
	Delete(ctx context.Context, followerID, followingID string) error
	Get(ctx context.Context, followerID, followingID string) (*entity.Follower, error)
	GetFollowingIDs(ctx context.Context, followerID string) ([]string, error)
	FollowingQuery(ctx context.Context, followerID string) *gorm.DB
	GetFollowers(ctx context.Context, followingID string, offset, limit int) ([]entity.Follower, error)
	GetFollowings(ctx context.Context, followerID string, offset, limit int) ([]entity.Follower, error)
	CountFollowers(ctx context.Context, followingID string) (int64, error)
	CountFollowings(ctx context.Context, followerID string) (int64, error)
}

type followerRepository struct{}

func NewFollowerRepository() *followerRepository {
	return &followerRepository{}
}

func (r *followerRepository) Create(ctx context.Context, followerID string, followingIDs []string) error {
	records := []entity.Follower{}
	for _, followingID := range followingIDs {
		if followingID == followerID {
			continue
		}

		records = append(records, entity.Follower{
			FollowerID:  followerID,
			FollowingID: followingID,
		})
	}

	if len(records) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&records).Error
}

func (r *followerRepository) Delete(ctx context.Context, followerID, followingID string) error {
	return xcontext.DB(ctx).
		Where("follower_id=? AND following_id=?", followerID, followingID).
		Delete(&entity.Follower{}).Error
}

func (r *followerRepository) Get(ctx context.Context, followerID, followingID string) (*entity.Follower, error) {
	var record entity.Follower
	err := xcontext.DB(ctx).
		Take(&record, "follower_id=? AND following_id=?", followerID, followingID).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *followerRepository) GetFollowingIDs(ctx context.Context, followerID string) ([]string, error) {
	var ids []string
	err := xcontext.DB(ctx).Model(&entity.Follower{}).
		Where("follower_id=?", followerID).
		Pluck("following_id", &ids).Error
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// FollowingQuery returns an unexecuted query selecting the ids of every user
// the follower follows. It is meant to be embedded as a subquery.
func (r *followerRepository) FollowingQuery(ctx context.Context, followerID string) *gorm.DB {
	return xcontext.DB(ctx).Model(&entity.Follower{}).
		Select("following_id").
		Where("follower_id=?", followerID)
}

func (r *followerRepository) GetFollowers(
	ctx context.Context, followingID string, offset, limit int,
) ([]entity.Follower, error) {
	var records []entity.Follower
	err := xcontext.DB(ctx).
		Where("following_id=?", followingID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followerRepository) GetFollowings(
	ctx context.Context, followerID string, offset, limit int,
) ([]entity.Follower, error) {
	var records []entity.Follower
	err := xcontext.DB(ctx).
		Where("follower_id=?", followerID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *followerRepository) CountFollowers(ctx context.Context, followingID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follower{}).
		Where("following_id=?", followingID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *followerRepository) CountFollowings(ctx context.Context, followerID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follower{}).
		Where("follower_id=?", followerID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}
