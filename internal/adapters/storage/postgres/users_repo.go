package postgres

import (
	"context"

	"pet-social/internal/domain/users"
	"pet-social/internal/platform/apperr"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	u = u.WithDefaults()
	u.ID = 0
	u.CreatedAt = r.s.now()
	row := userToRow(u)
	if err := r.s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return users.User{}, translate(err)
	}
	return userFromRow(row), nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (users.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return r.first(ctx, "username = ?", username)
}

func (r *userRepo) first(ctx context.Context, query string, arg any) (users.User, error) {
	var row userRow
	if err := r.s.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		return users.User{}, translate(err)
	}
	return userFromRow(row), nil
}

func (r *userRepo) Update(ctx context.Context, id int64, p users.Patch) (users.User, error) {
	u, err := r.GetByID(ctx, id)
	if err != nil {
		return users.User{}, err
	}
	cols := userPatchColumns(p)
	if len(cols) == 0 {
		return u, nil
	}
	p.Apply(&u)
	row := userToRow(u)
	res := r.s.db.WithContext(ctx).Model(&userRow{ID: id}).Select(cols).Updates(&row)
	if res.Error != nil {
		return users.User{}, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return users.User{}, apperr.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func userPatchColumns(p users.Patch) []string {
	var cols []string
	for col, set := range map[string]bool{
		"name":     p.Name != nil,
		"bio":      p.Bio != nil,
		"avatar":   p.Avatar != nil,
		"location": p.Location != nil,
		"password": p.Password != nil,
	} {
		if set {
			cols = append(cols, col)
		}
	}
	return cols
}
