package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"pet-social/internal/domain/posts"
	"pet-social/internal/platform/apperr"
)

const (
	incLikes    = "likes_count + 1"
	decLikes    = "CASE WHEN likes_count > 0 THEN likes_count - 1 ELSE 0 END"
	incComments = "comments_count + 1"
	decComments = "CASE WHEN comments_count > 0 THEN comments_count - 1 ELSE 0 END"
)

type postRepo struct{ s *Store }

func (r *postRepo) Create(ctx context.Context, p posts.Post) (posts.Post, error) {
	p = p.WithDefaults()
	row := postRow{
		PetID:     p.PetID,
		UserID:    p.UserID,
		ImageURL:  p.ImageURL,
		Caption:   p.Caption,
		Location:  p.Location,
		CreatedAt: r.s.now(),
	}
	if err := r.s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return posts.Post{}, translate(err)
	}
	return postFromRow(row), nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (posts.Post, error) {
	var row postRow
	if err := r.s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return posts.Post{}, translate(err)
	}
	return postFromRow(row), nil
}

func (r *postRepo) ListByPet(ctx context.Context, petID int64) ([]posts.Post, error) {
	return findPosts(r.s.db.WithContext(ctx).Where("pet_id = ?", petID))
}

func (r *postRepo) ListByUser(ctx context.Context, userID int64) ([]posts.Post, error) {
	return findPosts(r.s.db.WithContext(ctx).Where("user_id = ?", userID))
}

// ListFeed filtra por mascotas propias ∪ seguidas con dos subconsultas.
func (r *postRepo) ListFeed(ctx context.Context, userID int64) ([]posts.Post, error) {
	db := r.s.db.WithContext(ctx)
	owned := db.Model(&petRow{}).Select("id").Where("owner_id = ?", userID)
	followed := db.Model(&followRow{}).Select("followed_pet_id").Where("follower_id = ?", userID)
	return findPosts(db.Where("pet_id IN (?) OR pet_id IN (?)", owned, followed))
}

func findPosts(q *gorm.DB) ([]posts.Post, error) {
	var rows []postRow
	if err := q.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	return postsFromRows(rows), nil
}

func (r *postRepo) Update(ctx context.Context, id int64, pa posts.Patch) (posts.Post, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return posts.Post{}, err
	}
	pa.Apply(&p)
	err = r.s.db.WithContext(ctx).Model(&postRow{}).Where("id = ?", id).
		Updates(map[string]any{"caption": p.Caption, "location": p.Location}).Error
	if err != nil {
		return posts.Post{}, translate(err)
	}
	return p, nil
}

// Delete borra el post junto con sus likes y comentarios.
func (r *postRepo) Delete(ctx context.Context, id int64) error {
	return r.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&postRow{}, id)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return apperr.ErrNotFound
		}
		if err := tx.Where("post_id = ?", id).Delete(&likeRow{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&commentRow{}).Error
	})
}

func (r *postRepo) CreateLike(ctx context.Context, userID, postID int64) (posts.Like, error) {
	row := likeRow{UserID: userID, PostID: postID, CreatedAt: r.s.now()}
	err := r.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return translate(err)
		}
		return bump(tx, postID, "likes_count", incLikes)
	})
	if err != nil {
		return posts.Like{}, err
	}
	return likeFromRow(row), nil
}

func (r *postRepo) GetLike(ctx context.Context, userID, postID int64) (posts.Like, error) {
	var row likeRow
	err := r.s.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&row).Error
	if err != nil {
		return posts.Like{}, translate(err)
	}
	return likeFromRow(row), nil
}

var errNoLike = errors.New("like not found")

func (r *postRepo) DeleteLike(ctx context.Context, userID, postID int64) (bool, error) {
	err := r.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND post_id = ?", userID, postID).Delete(&likeRow{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errNoLike
		}
		return bump(tx, postID, "likes_count", decLikes)
	})
	if errors.Is(err, errNoLike) {
		return false, nil
	}
	if err != nil {
		return false, translate(err)
	}
	return true, nil
}

func (r *postRepo) ListLikes(ctx context.Context, postID int64) ([]posts.Like, error) {
	var rows []likeRow
	if err := r.s.db.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]posts.Like, 0, len(rows))
	for _, row := range rows {
		out = append(out, likeFromRow(row))
	}
	return out, nil
}

func (r *postRepo) CreateComment(ctx context.Context, c posts.Comment) (posts.Comment, error) {
	row := commentRow{
		PostID:    c.PostID,
		UserID:    c.UserID,
		Content:   c.Content,
		CreatedAt: r.s.now(),
	}
	err := r.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return translate(err)
		}
		return bump(tx, c.PostID, "comments_count", incComments)
	})
	if err != nil {
		return posts.Comment{}, err
	}
	return commentFromRow(row), nil
}

func (r *postRepo) GetComment(ctx context.Context, id int64) (posts.Comment, error) {
	var row commentRow
	if err := r.s.db.WithContext(ctx).First(&row, id).Error; err != nil {
		return posts.Comment{}, translate(err)
	}
	return commentFromRow(row), nil
}

func (r *postRepo) ListComments(ctx context.Context, postID int64) ([]posts.Comment, error) {
	var rows []commentRow
	if err := r.s.db.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	out := make([]posts.Comment, 0, len(rows))
	for _, row := range rows {
		out = append(out, commentFromRow(row))
	}
	return out, nil
}

func (r *postRepo) DeleteComment(ctx context.Context, id int64) error {
	return r.s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row commentRow
		if err := tx.First(&row, id).Error; err != nil {
			return translate(err)
		}
		if err := tx.Delete(&commentRow{}, id).Error; err != nil {
			return err
		}
		return bump(tx, row.PostID, "comments_count", decComments)
	})
}

// bump ajusta un contador con una expresión SQL atómica. Si el post no
// existe no hace nada: el store no valida claves foráneas.
func bump(tx *gorm.DB, postID int64, column, expr string) error {
	return tx.Model(&postRow{}).Where("id = ?", postID).
		UpdateColumn(column, gorm.Expr(expr)).Error
}
