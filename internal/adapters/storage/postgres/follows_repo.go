package postgres

import (
	"context"

	"gorm.io/gorm"

	"pet-social/internal/domain/follows"
)

type followRepo struct{ s *Store }

func (r *followRepo) Create(ctx context.Context, followerID, petID int64) (follows.Follow, error) {
	row := followRow{FollowerID: followerID, FollowedPetID: petID, CreatedAt: r.s.now()}
	if err := r.s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return follows.Follow{}, translate(err)
	}
	return followFromRow(row), nil
}

func (r *followRepo) Get(ctx context.Context, followerID, petID int64) (follows.Follow, error) {
	var row followRow
	err := r.s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_pet_id = ?", followerID, petID).
		First(&row).Error
	if err != nil {
		return follows.Follow{}, translate(err)
	}
	return followFromRow(row), nil
}

func (r *followRepo) Delete(ctx context.Context, followerID, petID int64) (bool, error) {
	res := r.s.db.WithContext(ctx).
		Where("follower_id = ? AND followed_pet_id = ?", followerID, petID).
		Delete(&followRow{})
	if res.Error != nil {
		return false, translate(res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *followRepo) ListByFollower(ctx context.Context, followerID int64) ([]follows.Follow, error) {
	return findFollows(r.s.db.WithContext(ctx).Where("follower_id = ?", followerID))
}

func (r *followRepo) ListByPet(ctx context.Context, petID int64) ([]follows.Follow, error) {
	return findFollows(r.s.db.WithContext(ctx).Where("followed_pet_id = ?", petID))
}

func findFollows(q *gorm.DB) ([]follows.Follow, error) {
	var rows []followRow
	if err := q.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]follows.Follow, 0, len(rows))
	for _, row := range rows {
		out = append(out, followFromRow(row))
	}
	return out, nil
}
