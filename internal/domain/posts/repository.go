package posts

import "context"

type Repository interface {
	Create(ctx context.Context, p Post) (Post, error)
	GetByID(ctx context.Context, id int64) (Post, error)
	ListByPet(ctx context.Context, petID int64) ([]Post, error)
	ListByUser(ctx context.Context, userID int64) ([]Post, error)
	// ListFeed devuelve los posts de mascotas propias + seguidas, más nuevos primero.
	ListFeed(ctx context.Context, userID int64) ([]Post, error)
	Update(ctx context.Context, id int64, p Patch) (Post, error)
	Delete(ctx context.Context, id int64) error

	// CreateLike incrementa likes_count en la misma operación.
	CreateLike(ctx context.Context, userID, postID int64) (Like, error)
	GetLike(ctx context.Context, userID, postID int64) (Like, error)
	// DeleteLike devuelve false (sin tocar contadores) si el like no existe.
	DeleteLike(ctx context.Context, userID, postID int64) (bool, error)
	ListLikes(ctx context.Context, postID int64) ([]Like, error)

	// CreateComment incrementa comments_count en la misma operación.
	CreateComment(ctx context.Context, c Comment) (Comment, error)
	GetComment(ctx context.Context, id int64) (Comment, error)
	ListComments(ctx context.Context, postID int64) ([]Comment, error)
	DeleteComment(ctx context.Context, id int64) error
}
