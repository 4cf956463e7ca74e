package medical

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
	r.Post("/pets/{petID}/medical-records", createRecordHandler(svc, log))
	r.Get("/pets/{petID}/medical-records", listRecordsHandler(svc, log))
	r.Get("/medical-records/{recordID}", getRecordHandler(svc, log))
	r.Patch("/medical-records/{recordID}", updateRecordHandler(svc, log))
	r.Delete("/medical-records/{recordID}", deleteRecordHandler(svc, log))
}

type prescriptionDTO struct {
	Name      string `json:"name" validate:"required"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

type createRecordRequest struct {
	Type          string            `json:"type" validate:"required,max=32"`
	Date          string            `json:"date"` // YYYY-MM-DD o RFC3339, opcional
	Diagnosis     string            `json:"diagnosis"`
	Treatment     string            `json:"treatment"`
	Notes         string            `json:"notes" validate:"max=4000"`
	Cost          float64           `json:"cost" validate:"gte=0"`
	VetName       string            `json:"vetName"`
	Prescriptions []prescriptionDTO `json:"prescriptions" validate:"omitempty,dive"`
	NextDueDate   string            `json:"nextDueDate"`
	Completed     bool              `json:"completed"`
}

type updateRecordRequest struct {
	Type          *string            `json:"type" validate:"omitempty,max=32"`
	Date          *string            `json:"date"`
	Diagnosis     *string            `json:"diagnosis"`
	Treatment     *string            `json:"treatment"`
	Notes         *string            `json:"notes" validate:"omitempty,max=4000"`
	Cost          *float64           `json:"cost" validate:"omitempty,gte=0"`
	VetName       *string            `json:"vetName"`
	Prescriptions *[]prescriptionDTO `json:"prescriptions"`
	NextDueDate   *string            `json:"nextDueDate"`
	Completed     *bool              `json:"completed"`
}

type RecordResponse struct {
	ID            int64          `json:"id"`
	PetID         int64          `json:"petId"`
	Type          string         `json:"type"`
	Date          time.Time      `json:"date"`
	Diagnosis     string         `json:"diagnosis"`
	Treatment     string         `json:"treatment"`
	Notes         string         `json:"notes"`
	Cost          float64        `json:"cost"`
	VetName       string         `json:"vetName"`
	Prescriptions []Prescription `json:"prescriptions"`
	NextDueDate   *time.Time     `json:"nextDueDate,omitempty"`
	Completed     bool           `json:"completed"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// createRecordHandler godoc
// @Summary      Crear registro médico (solo dueño)
// @Tags         medical
// @Accept       json
// @Produce      json
// @Param        petID  path      int                  true  "Pet ID"
// @Param        body   body      createRecordRequest  true  "Registro"
// @Success      201    {object}  RecordResponse
// @Failure      403    {object}  httpx.ErrorResponse
// @Router       /pets/{petID}/medical-records [post]
func createRecordHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
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
		var req createRecordRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		date, err := parseTime("date", req.Date)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		due, err := parseTime("nextDueDate", req.NextDueDate)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		rec, err := svc.Create(r.Context(), uid, petID, CreateInput{
			Type:          req.Type,
			Date:          date,
			Diagnosis:     req.Diagnosis,
			Treatment:     req.Treatment,
			Notes:         req.Notes,
			Cost:          req.Cost,
			VetName:       req.VetName,
			Prescriptions: toPrescriptions(req.Prescriptions),
			NextDueDate:   due,
			Completed:     req.Completed,
		})
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, toRecordResponse(rec))
	}
}

// listRecordsHandler godoc
// @Summary      Historial médico, más reciente primero
// @Tags         medical
// @Produce      json
// @Param        petID  path     int  true  "Pet ID"
// @Success      200    {array}  RecordResponse
// @Router       /pets/{petID}/medical-records [get]
func listRecordsHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
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
		items, err := svc.List(r.Context(), uid, petID)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		out := make([]RecordResponse, 0, len(items))
		for _, rec := range items {
			out = append(out, toRecordResponse(rec))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func getRecordHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		id, err := httpx.IDParam(r, "recordID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		rec, err := svc.Get(r.Context(), uid, id)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

// updateRecordHandler godoc
// @Summary      Actualizar registro médico
// @Tags         medical
// @Accept       json
// @Produce      json
// @Param        recordID  path      int                  true  "Record ID"
// @Param        body      body      updateRecordRequest  true  "Campos a modificar"
// @Success      200       {object}  RecordResponse
// @Router       /medical-records/{recordID} [patch]
func updateRecordHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		id, err := httpx.IDParam(r, "recordID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		var req updateRecordRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}

		patch := Patch{
			Type:      req.Type,
			Diagnosis: req.Diagnosis,
			Treatment: req.Treatment,
			Notes:     req.Notes,
			Cost:      req.Cost,
			VetName:   req.VetName,
			Completed: req.Completed,
		}
		if req.Date != nil {
			if patch.Date, err = parseTime("date", *req.Date); err != nil {
				httpx.WriteError(w, r, log, err)
				return
			}
		}
		if req.NextDueDate != nil {
			if patch.NextDueDate, err = parseTime("nextDueDate", *req.NextDueDate); err != nil {
				httpx.WriteError(w, r, log, err)
				return
			}
		}
		if req.Prescriptions != nil {
			if err := httpx.Validate(struct {
				Items []prescriptionDTO `validate:"dive"`
			}{*req.Prescriptions}); err != nil {
				httpx.WriteError(w, r, log, err)
				return
			}
			rx := toPrescriptions(*req.Prescriptions)
			patch.Prescriptions = &rx
		}

		rec, err := svc.Update(r.Context(), uid, id, patch)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toRecordResponse(rec))
	}
}

func deleteRecordHandler(svc *Service, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, err := httpx.UserID(r)
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		id, err := httpx.IDParam(r, "recordID")
		if err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		if err := svc.Delete(r.Context(), uid, id); err != nil {
			httpx.WriteError(w, r, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func parseTime(field, v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s must be RFC3339 or YYYY-MM-DD", apperr.ErrInvalidInput, field)
}

func toPrescriptions(in []prescriptionDTO) []Prescription {
	out := make([]Prescription, 0, len(in))
	for _, p := range in {
		out = append(out, Prescription(p))
	}
	return out
}

func toRecordResponse(r Record) RecordResponse {
	return RecordResponse(r)
}
