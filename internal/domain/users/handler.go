package users

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pet-social/internal/platform/httpx"
	"pet-social/internal/ports/auth"
)

// RegisterAuthRoutes monta /auth/*. issuer nil = modo dev (sin token).
func RegisterAuthRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer, log *zap.Logger) {
	r.Post("/auth/register", registerHandler(svc, issuer, log))
	r.Post("/auth/login", loginHandler(svc, issuer, log))
}

func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Get("/me", meHandler(svc, log))
	r.Patch("/me", updateMeHandler(svc, log))
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=120"`
	Location string `json:"location" validate:"max=120"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateMeRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=120"`
	Bio      *string `json:"bio" validate:"omitempty,max=500"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
	Location *string `json:"location" validate:"omitempty,max=120"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
}

type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar"`
	Location  string    `json:"location"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  UserResponse `json:"user"`
}

// registerHandler godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Datos de registro"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  httpx.ErrorResponse
// @Failure      409   {object}  httpx.ErrorResponse
// @Router       /auth/register [post]
func registerHandler(svc *Service, issuer auth.TokenIssuer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Email:    req.Email,
			Username: req.Username,
			Password: req.Password,
			Name:     req.Name,
			Location: req.Location,
		})
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		resp, err := newAuthResponse(r, issuer, u)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, resp)
	}
}

// loginHandler godoc
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credenciales"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  httpx.ErrorResponse
// @Router       /auth/login [post]
func loginHandler(svc *Service, issuer auth.TokenIssuer, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		u, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		resp, err := newAuthResponse(r, issuer, u)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, resp)
	}
}

// meHandler godoc
// @Summary      Perfil del usuario autenticado
// @Tags         users
// @Produce      json
// @Success      200  {object}  UserResponse
// @Failure      401  {object}  httpx.ErrorResponse
// @Router       /me [get]
func meHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		u, err := svc.Get(r.Context(), uid)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(u))
	}
}

// updateMeHandler godoc
// @Summary      Actualizar perfil
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      updateMeRequest  true  "Campos a modificar"
// @Success      200   {object}  UserResponse
// @Router       /me [patch]
func updateMeHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		var req updateMeRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		u, err := svc.UpdateProfile(r.Context(), uid, Patch{
			Name:     req.Name,
			Bio:      req.Bio,
			Avatar:   req.Avatar,
			Location: req.Location,
			Password: req.Password,
		})
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ToResponse(u))
	}
}

func newAuthResponse(r *http.Request, issuer auth.TokenIssuer, u User) (authResponse, error) {
	resp := authResponse{User: ToResponse(u)}
	if issuer == nil {
		return resp, nil
	}
	token, err := issuer.Issue(r.Context(), auth.Claims{UserID: u.ID, Username: u.Username})
	if err != nil {
		return authResponse{}, err
	}
	resp.Token = token
	return resp, nil
}

// ToResponse nunca expone el hash.
func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		Bio:       u.Bio,
		Avatar:    u.Avatar,
		Location:  u.Location,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
