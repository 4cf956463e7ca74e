package matches

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pet-social/internal/domain/pets"
	"pet-social/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Get("/matches/potential", potentialHandler(svc, log))
	r.Post("/matches/swipe", swipeHandler(svc, log))
	r.Get("/matches", listHandler(svc, log))
}

type swipeRequest struct {
	PetID          int64     `json:"petId" validate:"required,gt=0"`
	TargetPetID    int64     `json:"targetPetId" validate:"required,gt=0,nefield=PetID"`
	SwipeDirection Direction `json:"swipeDirection" validate:"required,oneof=left right"`
}

type MatchResponse struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	PetID1         int64     `json:"petId1"`
	PetID2         int64     `json:"petId2"`
	SwipeDirection Direction `json:"swipeDirection"`
	IsMatch        bool      `json:"isMatch"`
	CreatedAt      time.Time `json:"createdAt"`
}

type swipeResponse struct {
	Match  MatchResponse `json:"match"`
	Mutual bool          `json:"mutual"`
}

// potentialHandler godoc
// @Summary      Candidatos para swipe
// @Tags         matches
// @Produce      json
// @Success      200  {array}  pets.PetResponse
// @Router       /matches/potential [get]
func potentialHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		items, err := svc.Potential(r.Context(), uid)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, pets.ToResponses(items))
	}
}

// swipeHandler godoc
// @Summary      Swipe sobre otra mascota
// @Tags         matches
// @Accept       json
// @Produce      json
// @Param        body  body      swipeRequest  true  "Swipe"
// @Success      201   {object}  swipeResponse
// @Failure      409   {object}  httpx.ErrorResponse
// @Router       /matches/swipe [post]
func swipeHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		var req swipeRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		res, err := svc.Swipe(r.Context(), uid, SwipeInput{
			PetID:       req.PetID,
			TargetPetID: req.TargetPetID,
			Direction:   req.SwipeDirection,
		})
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, swipeResponse{Match: MatchResponse(res.Match), Mutual: res.Mutual})
	}
}

// listHandler godoc
// @Summary      Mis swipes / matches
// @Tags         matches
// @Produce      json
// @Param        mutual  query    bool  false  "Solo matches mutuos"
// @Success      200     {array}  MatchResponse
// @Router       /matches [get]
func listHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		items, err := svc.List(r.Context(), uid, httpx.QueryBool(r, "mutual"))
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		out := make([]MatchResponse, 0, len(items))
		for _, m := range items {
			out = append(out, MatchResponse(m))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
