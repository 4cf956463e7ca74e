package follows

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pet-social/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Post("/pets/{petID}/follow", followHandler(svc, log))
	r.Get("/pets/{petID}/follow", followStatusHandler(svc, log))
	r.Delete("/pets/{petID}/follow", unfollowHandler(svc, log))
	r.Get("/pets/{petID}/followers", followersHandler(svc, log))
	r.Get("/me/following", followingHandler(svc, log))
}

type FollowResponse struct {
	ID            int64     `json:"id"`
	FollowerID    int64     `json:"followerId"`
	FollowedPetID int64     `json:"followedPetId"`
	CreatedAt     time.Time `json:"createdAt"`
}

// followHandler godoc
// @Summary      Seguir mascota
// @Tags         follows
// @Produce      json
// @Param        petID  path      int  true  "Pet ID"
// @Success      201    {object}  FollowResponse
// @Failure      409    {object}  httpx.ErrorResponse
// @Router       /pets/{petID}/follow [post]
func followHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		petID, err := httpx.IDParam(r, "petID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		f, err := svc.Follow(r.Context(), uid, petID)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, FollowResponse(f))
	}
}

type followStatusResponse struct {
	Following bool `json:"following"`
}

// followStatusHandler godoc
// @Summary      ¿Sigo a esta mascota?
// @Tags         follows
// @Produce      json
// @Param        petID  path      int  true  "Pet ID"
// @Success      200    {object}  followStatusResponse
// @Failure      404    {object}  httpx.ErrorResponse
// @Router       /pets/{petID}/follow [get]
func followStatusHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		petID, err := httpx.IDParam(r, "petID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		ok, err := svc.IsFollowing(r.Context(), uid, petID)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, followStatusResponse{Following: ok})
	}
}

// unfollowHandler godoc
// @Summary      Dejar de seguir
// @Tags         follows
// @Param        petID  path  int  true  "Pet ID"
// @Success      204
// @Failure      404    {object}  httpx.ErrorResponse
// @Router       /pets/{petID}/follow [delete]
func unfollowHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		petID, err := httpx.IDParam(r, "petID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		if err := svc.Unfollow(r.Context(), uid, petID); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func followersHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, err := httpx.IDParam(r, "petID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		viewer, _ := httpx.UserID(r)

		items, err := svc.Followers(r.Context(), petID, viewer)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

func followingHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		items, err := svc.Following(r.Context(), uid)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponses(items))
	}
}

func toResponses(items []Follow) []FollowResponse {
	out := make([]FollowResponse, 0, len(items))
	for _, f := range items {
		out = append(out, FollowResponse(f))
	}
	return out
}
