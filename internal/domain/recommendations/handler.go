package recommendations

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"pet-social/internal/platform/httpx"
)

func RegisterRoutes(r chi.Router, svc *Service, log *zap.Logger) {
	r.Get("/pets/{petID}/recommendations", getRecommendationsHandler(svc, log))
}

// getRecommendationsHandler godoc
// @Summary      Recomendaciones de cuidado (cacheadas en la mascota)
// @Tags         pets
// @Produce      json
// @Param        petID    path      int   true   "Pet ID"
// @Param        refresh  query     bool  false  "Regenerar (solo dueño)"
// @Success      200      {object}  Document
// @Failure      404      {object}  httpx.ErrorResponse
// @Router       /pets/{petID}/recommendations [get]
func getRecommendationsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, err := httpx.IDParam(r, "petID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		viewer, _ := httpx.UserID(r)

		doc, err := svc.ForViewer(r.Context(), petID, viewer, httpx.QueryBool(r, "refresh"))
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, doc)
	}
}
