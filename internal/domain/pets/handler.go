package pets

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pet-social/internal/platform/apperr"
	"pet-social/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Post("/pets", createPetHandler(svc, log))
	r.Get("/pets", listMyPetsHandler(svc, log))
	r.Get("/pets/public", listPublicHandler(svc, log))
	r.Get("/pets/{petID}", getPetHandler(svc, log))
	r.Patch("/pets/{petID}", updatePetHandler(svc, log))
	r.Get("/users/{userID}/pets", listUserPetsHandler(svc, log))
}

type createPetRequest struct {
	Name                string   `json:"name" validate:"required,max=80"`
	Species             string   `json:"species" validate:"required,max=40"`
	Breed               string   `json:"breed" validate:"max=80"`
	Age                 int      `json:"age" validate:"gte=0,lte=100"`
	Gender              Gender   `json:"gender" validate:"omitempty,oneof=male female unknown"`
	Weight              float64  `json:"weight" validate:"gte=0"`
	Color               string   `json:"color" validate:"max=40"`
	Bio                 string   `json:"bio" validate:"max=1000"`
	IsPublic            *bool    `json:"isPublic"`
	Photos              []string `json:"photos" validate:"omitempty,dive,required"`
	MicrochipID         string   `json:"microchipId" validate:"max=64"`
	LastVaccinationDate string   `json:"lastVaccinationDate"` // YYYY-MM-DD o RFC3339
	NextCheckupDate     string   `json:"nextCheckupDate"`
	HealthTips          string   `json:"healthTips"`
}

type updatePetRequest struct {
	// Punteros para PATCH real: nil = no tocar.
	Name                *string   `json:"name" validate:"omitempty,max=80"`
	Species             *string   `json:"species" validate:"omitempty,max=40"`
	Breed               *string   `json:"breed" validate:"omitempty,max=80"`
	Age                 *int      `json:"age" validate:"omitempty,gte=0,lte=100"`
	Gender              *Gender   `json:"gender" validate:"omitempty,oneof=male female unknown"`
	Weight              *float64  `json:"weight" validate:"omitempty,gte=0"`
	Color               *string   `json:"color"`
	Bio                 *string   `json:"bio" validate:"omitempty,max=1000"`
	IsPublic            *bool     `json:"isPublic"`
	Photos              *[]string `json:"photos"`
	MicrochipID         *string   `json:"microchipId"`
	LastVaccinationDate *string   `json:"lastVaccinationDate"`
	NextCheckupDate     *string   `json:"nextCheckupDate"`
	HealthTips          *string   `json:"healthTips"`
}

type PetResponse struct {
	ID                  int64      `json:"id"`
	OwnerID             int64      `json:"ownerId"`
	UserID              int64      `json:"userId"` // alias de ownerId para clientes viejos
	Name                string     `json:"name"`
	Species             string     `json:"species"`
	Breed               string     `json:"breed"`
	Age                 int        `json:"age"`
	Gender              Gender     `json:"gender"`
	Weight              float64    `json:"weight"`
	Color               string     `json:"color"`
	Bio                 string     `json:"bio"`
	IsPublic            bool       `json:"isPublic"`
	Photos              []string   `json:"photos"`
	MicrochipID         string     `json:"microchipId,omitempty"`
	LastVaccinationDate *time.Time `json:"lastVaccinationDate,omitempty"`
	NextCheckupDate     *time.Time `json:"nextCheckupDate,omitempty"`
	HealthTips          string     `json:"healthTips,omitempty"`
	CreatedAt           time.Time  `json:"createdAt"`
}

// createPetHandler godoc
// @Summary      Crear mascota
// @Tags         pets
// @Accept       json
// @Produce      json
// @Param        body  body      createPetRequest  true  "Mascota"
// @Success      201   {object}  PetResponse
// @Failure      400   {object}  httpx.ErrorResponse
// @Router       /pets [post]
func createPetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		var req createPetRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		vacc, err := parseDate("lastVaccinationDate", req.LastVaccinationDate)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		checkup, err := parseDate("nextCheckupDate", req.NextCheckupDate)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		p, err := svc.Create(r.Context(), uid, CreateInput{
			Name:                req.Name,
			Species:             req.Species,
			Breed:               req.Breed,
			Age:                 req.Age,
			Gender:              req.Gender,
			Weight:              req.Weight,
			Color:               req.Color,
			Bio:                 req.Bio,
			IsPublic:            req.IsPublic,
			Photos:              req.Photos,
			MicrochipID:         req.MicrochipID,
			LastVaccinationDate: vacc,
			NextCheckupDate:     checkup,
			HealthTips:          req.HealthTips,
		})
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, ToResponse(p))
	}
}

// listMyPetsHandler godoc
// @Summary      Mis mascotas
// @Tags         pets
// @Produce      json
// @Success      200  {array}  PetResponse
// @Router       /pets [get]
func listMyPetsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		items, err := svc.ListByOwner(r.Context(), uid)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponses(items))
	}
}

// listPublicHandler godoc
// @Summary      Mascotas públicas
// @Tags         pets
// @Produce      json
// @Success      200  {array}  PetResponse
// @Router       /pets/public [get]
func listPublicHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListPublic(r.Context())
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponses(items))
	}
}

// listUserPetsHandler: mascotas de otro usuario; las privadas solo las ve el dueño.
func listUserPetsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, err := httpx.IDParam(r, "userID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		viewer, _ := httpx.UserID(r)

		items, err := svc.ListByOwner(r.Context(), ownerID)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		visible := make([]Pet, 0, len(items))
		for _, p := range items {
			if p.VisibleTo(viewer) {
				visible = append(visible, p)
			}
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponses(visible))
	}
}

// getPetHandler godoc
// @Summary      Perfil de mascota
// @Tags         pets
// @Produce      json
// @Param        petID  path      int  true  "Pet ID"
// @Success      200    {object}  PetResponse
// @Failure      404    {object}  httpx.ErrorResponse
// @Router       /pets/{petID} [get]
func getPetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, err := httpx.IDParam(r, "petID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		viewer, _ := httpx.UserID(r)

		p, err := svc.Get(r.Context(), petID, viewer)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(p))
	}
}

// updatePetHandler godoc
// @Summary      Actualizar mascota (solo dueño)
// @Tags         pets
// @Accept       json
// @Produce      json
// @Param        petID  path      int               true  "Pet ID"
// @Param        body   body      updatePetRequest  true  "Campos a modificar"
// @Success      200    {object}  PetResponse
// @Failure      403    {object}  httpx.ErrorResponse
// @Router       /pets/{petID} [patch]
func updatePetHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
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

		var req updatePetRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		patch := Patch{
			Name:        req.Name,
			Species:     req.Species,
			Breed:       req.Breed,
			Age:         req.Age,
			Gender:      req.Gender,
			Weight:      req.Weight,
			Color:       req.Color,
			Bio:         req.Bio,
			IsPublic:    req.IsPublic,
			Photos:      req.Photos,
			MicrochipID: req.MicrochipID,
			HealthTips:  req.HealthTips,
		}
		if req.LastVaccinationDate != nil {
			if patch.LastVaccinationDate, err = parseDate("lastVaccinationDate", *req.LastVaccinationDate); err != nil {
				httpx.WriteError(w, r, log, err)
				return
			}
		}
		if req.NextCheckupDate != nil {
			if patch.NextCheckupDate, err = parseDate("nextCheckupDate", *req.NextCheckupDate); err != nil {
				httpx.WriteError(w, r, log, err)
				return
			}
		}

		updated, err := svc.Update(r.Context(), petID, uid, patch)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(updated))
	}
}

// parseDate acepta YYYY-MM-DD o RFC3339; vacío = nil.
func parseDate(field, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s must be YYYY-MM-DD or RFC3339", apperr.ErrInvalidInput, field)
}

func ToResponse(p Pet) PetResponse {
	photos := p.Photos
	if photos == nil {
		photos = []string{}
	}
	return PetResponse{
		ID:                  p.ID,
		OwnerID:             p.OwnerID,
		UserID:              p.OwnerID,
		Name:                p.Name,
		Species:             p.Species,
		Breed:               p.Breed,
		Age:                 p.Age,
		Gender:              p.Gender,
		Weight:              p.Weight,
		Color:               p.Color,
		Bio:                 p.Bio,
		IsPublic:            p.IsPublic,
		Photos:              photos,
		MicrochipID:         p.MicrochipID,
		LastVaccinationDate: p.LastVaccinationDate,
		NextCheckupDate:     p.NextCheckupDate,
		HealthTips:          p.HealthTips,
		CreatedAt:           p.CreatedAt,
	}
}

func ToResponses(items []Pet) []PetResponse {
	out := make([]PetResponse, 0, len(items))
	for _, p := range items {
		out = append(out, ToResponse(p))
	}
	return out
}
