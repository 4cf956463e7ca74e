package medical

import "time"

// Prescription es un medicamento indicado dentro de un registro.
type Prescription struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`    // "2 ml", "50 mg"
	Frequency string `json:"frequency"` // texto por ahora: "cada 12h"
	Duration  string `json:"duration"`
}

// Record es un registro clínico de una mascota.
type Record struct {
	ID    int64
	PetID int64

	Type      string // checkup, vaccination, surgery, ...
	Date      time.Time
	Diagnosis string
	Treatment string
	Notes     string
	Cost      float64
	VetName   string

	Prescriptions []Prescription
	NextDueDate   *time.Time
	Completed     bool

	CreatedAt time.Time
}

type Patch struct {
	Type          *string
	Date          *time.Time
	Diagnosis     *string
	Treatment     *string
	Notes         *string
	Cost          *float64
	VetName       *string
	Prescriptions *[]Prescription
	NextDueDate   *time.Time
	Completed     *bool
}

func (pa Patch) Apply(r *Record) {
	if pa.Type != nil {
		r.Type = *pa.Type
	}
	if pa.Date != nil {
		r.Date = *pa.Date
	}
	if pa.Diagnosis != nil {
		r.Diagnosis = *pa.Diagnosis
	}
	if pa.Treatment != nil {
		r.Treatment = *pa.Treatment
	}
	if pa.Notes != nil {
		r.Notes = *pa.Notes
	}
	if pa.Cost != nil {
		r.Cost = *pa.Cost
	}
	if pa.VetName != nil {
		r.VetName = *pa.VetName
	}
	if pa.Prescriptions != nil {
		r.Prescriptions = append([]Prescription{}, (*pa.Prescriptions)...)
	}
	if pa.NextDueDate != nil {
		t := *pa.NextDueDate
		r.NextDueDate = &t
	}
	if pa.Completed != nil {
		r.Completed = *pa.Completed
	}
}

func (r Record) WithDefaults() Record {
	if r.Prescriptions == nil {
		r.Prescriptions = []Prescription{}
	}
	return r
}
