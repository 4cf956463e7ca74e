package posts

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pet-social/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Get("/feed", feedHandler(svc, log))

	r.Post("/posts", createPostHandler(svc, log))
	r.Get("/posts/{postID}", getPostHandler(svc, log))
	r.Patch("/posts/{postID}", updatePostHandler(svc, log))
	r.Delete("/posts/{postID}", deletePostHandler(svc, log))
	r.Get("/pets/{petID}/posts", listByPetHandler(svc, log))
	r.Get("/users/{userID}/posts", listByUserHandler(svc, log))

	r.Post("/posts/{postID}/like", likeHandler(svc, log))
	r.Delete("/posts/{postID}/like", unlikeHandler(svc, log))
	r.Get("/posts/{postID}/likes", listLikesHandler(svc, log))

	r.Post("/posts/{postID}/comments", createCommentHandler(svc, log))
	r.Get("/posts/{postID}/comments", listCommentsHandler(svc, log))
	r.Delete("/comments/{commentID}", deleteCommentHandler(svc, log))
}

type createPostRequest struct {
	PetID    int64  `json:"petId" validate:"required,gt=0"`
	ImageURL string `json:"imageUrl" validate:"required"`
	Caption  string `json:"caption" validate:"max=2200"`
	Location string `json:"location" validate:"max=120"`
}

type updatePostRequest struct {
	Caption  *string `json:"caption" validate:"omitempty,max=2200"`
	Location *string `json:"location" validate:"omitempty,max=120"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=1000"`
}

type PostResponse struct {
	ID            int64     `json:"id"`
	PetID         int64     `json:"petId"`
	UserID        int64     `json:"userId"`
	ImageURL      string    `json:"imageUrl"`
	Caption       string    `json:"caption"`
	Location      string    `json:"location"`
	LikesCount    int       `json:"likesCount"`
	CommentsCount int       `json:"commentsCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

type likeResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	PostID    int64     `json:"postId"`
	CreatedAt time.Time `json:"createdAt"`
}

type commentResponse struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// feedHandler godoc
// @Summary      Feed: posts de mascotas propias y seguidas, más nuevos primero
// @Tags         posts
// @Produce      json
// @Param        limit   query     int  false  "Máximo (default 50, tope 200)"
// @Param        offset  query     int  false  "Desplazamiento"
// @Success      200     {array}   PostResponse
// @Router       /feed [get]
func feedHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		limit, offset := httpx.Page(r, DefaultFeedLimit, MaxFeedLimit)
		items, err := svc.Feed(r.Context(), uid, limit, offset)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponses(items))
	}
}

// createPostHandler godoc
// @Summary      Publicar
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      createPostRequest  true  "Post"
// @Success      201   {object}  PostResponse
// @Failure      403   {object}  httpx.ErrorResponse
// @Router       /posts [post]
func createPostHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		var req createPostRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		p, err := svc.Create(r.Context(), uid, CreateInput{
			PetID:    req.PetID,
			ImageURL: req.ImageURL,
			Caption:  req.Caption,
			Location: req.Location,
		})
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toPostResponse(p))
	}
}

func getPostHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "postID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		viewer, _ := httpx.UserID(r)

		p, err := svc.Get(r.Context(), id, viewer)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponse(p))
	}
}

func updatePostHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		id, err := httpx.IDParam(r, "postID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		var req updatePostRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		p, err := svc.Update(r.Context(), id, uid, Patch{Caption: req.Caption, Location: req.Location})
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponse(p))
	}
}

func deletePostHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		id, err := httpx.IDParam(r, "postID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		if err := svc.Delete(r.Context(), id, uid); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func listByPetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, err := httpx.IDParam(r, "petID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		viewer, _ := httpx.UserID(r)

		items, err := svc.ListByPet(r.Context(), petID, viewer)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponses(items))
	}
}

func listByUserHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := httpx.IDParam(r, "userID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		viewer, _ := httpx.UserID(r)

		items, err := svc.ListByUser(r.Context(), userID, viewer)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponses(items))
	}
}

// likeHandler godoc
// @Summary      Dar like
// @Tags         posts
// @Produce      json
// @Param        postID  path      int  true  "Post ID"
// @Success      200     {object}  PostResponse
// @Failure      409     {object}  httpx.ErrorResponse
// @Router       /posts/{postID}/like [post]
func likeHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		id, err := httpx.IDParam(r, "postID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		p, err := svc.Like(r.Context(), uid, id)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponse(p))
	}
}

// unlikeHandler godoc
// @Summary      Quitar like
// @Tags         posts
// @Produce      json
// @Param        postID  path      int  true  "Post ID"
// @Success      200     {object}  PostResponse
// @Failure      404     {object}  httpx.ErrorResponse
// @Router       /posts/{postID}/like [delete]
func unlikeHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		id, err := httpx.IDParam(r, "postID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		p, err := svc.Unlike(r.Context(), uid, id)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toPostResponse(p))
	}
}

func listLikesHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "postID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		viewer, _ := httpx.UserID(r)

		items, err := svc.Likes(r.Context(), id, viewer)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		out := make([]likeResponse, 0, len(items))
		for _, l := range items {
			out = append(out, likeResponse(l))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

// createCommentHandler godoc
// @Summary      Comentar
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        postID  path      int             true  "Post ID"
// @Param        body    body      commentRequest  true  "Comentario"
// @Success      201     {object}  commentResponse
// @Router       /posts/{postID}/comments [post]
func createCommentHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		id, err := httpx.IDParam(r, "postID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		var req commentRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		c, err := svc.Comment(r.Context(), uid, id, req.Content)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, commentResponse(c))
	}
}

func listCommentsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpx.IDParam(r, "postID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		viewer, _ := httpx.UserID(r)

		items, err := svc.Comments(r.Context(), id, viewer)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		out := make([]commentResponse, 0, len(items))
		for _, c := range items {
			out = append(out, commentResponse(c))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func deleteCommentHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		id, err := httpx.IDParam(r, "commentID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		if err := svc.DeleteComment(r.Context(), id, uid); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toPostResponse(p Post) PostResponse {
	return PostResponse(p)
}

func toPostResponses(items []Post) []PostResponse {
	out := make([]PostResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPostResponse(p))
	}
	return out
}
