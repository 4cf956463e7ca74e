package media

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pet-social/internal/platform/apperr"
	"pet-social/internal/platform/httpx"
)

type UploadResponse struct {
	URL string `json:"url"`
}

func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Post("/uploads", uploadHandler(svc, log))
}

// uploadHandler godoc
// @Summary      Subir imagen
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Imagen (jpeg, png, gif, webp)"
// @Success      201   {object}  UploadResponse
// @Failure      400   {object}  httpx.ErrorResponse
// @Failure      401   {object}  httpx.ErrorResponse
// @Router       /uploads [post]
func uploadHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxSize+1<<20)
		file, header, err := r.FormFile("file")
		if err != nil {
			httpx.WriteError(w, r, log, apperr.ErrInvalidInput)
			return
		}
		defer file.Close()

		url, err := svc.Upload(r.Context(), uid, header.Filename, header.Header.Get("Content-Type"), header.Size, file)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, UploadResponse{URL: url})
	}
}
