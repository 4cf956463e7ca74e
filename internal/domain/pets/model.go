package pets

import (
	"encoding/json"
	"time"
)

// Gender define el sexo de la mascota.
// @Enum male, female, unknown
type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderUnknown Gender = "unknown"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnknown:
		return true
	}
	return false
}

// Pet es el perfil de una mascota: la unidad que se sigue y se "matchea".
type Pet struct {
	ID      int64
	OwnerID int64

	Name    string
	Species string
	Breed   string
	Age     int
	Gender  Gender
	Weight  float64
	Color   string
	Bio     string

	// IsPublic controla si aparece en descubrimiento (potential matches).
	IsPublic bool
	Photos   []string

	MicrochipID         string
	LastVaccinationDate *time.Time
	NextCheckupDate     *time.Time
	HealthTips          string

	// Recommendations es el documento generado, opaco para el store.
	// nil = todavía no generado.
	Recommendations json.RawMessage

	CreatedAt time.Time
}

// Patch es un update parcial: nil = no tocar.
type Patch struct {
	Name                *string
	Species             *string
	Breed               *string
	Age                 *int
	Gender              *Gender
	Weight              *float64
	Color               *string
	Bio                 *string
	IsPublic            *bool
	Photos              *[]string
	MicrochipID         *string
	LastVaccinationDate *time.Time
	NextCheckupDate     *time.Time
	HealthTips          *string
}

// Apply mezcla los campos presentes sobre p. Nunca resetea lo no enviado.
func (pa Patch) Apply(p *Pet) {
	if pa.Name != nil {
		p.Name = *pa.Name
	}
	if pa.Species != nil {
		p.Species = *pa.Species
	}
	if pa.Breed != nil {
		p.Breed = *pa.Breed
	}
	if pa.Age != nil {
		p.Age = *pa.Age
	}
	if pa.Gender != nil {
		p.Gender = *pa.Gender
	}
	if pa.Weight != nil {
		p.Weight = *pa.Weight
	}
	if pa.Color != nil {
		p.Color = *pa.Color
	}
	if pa.Bio != nil {
		p.Bio = *pa.Bio
	}
	if pa.IsPublic != nil {
		p.IsPublic = *pa.IsPublic
	}
	if pa.Photos != nil {
		p.Photos = append([]string{}, (*pa.Photos)...)
	}
	if pa.MicrochipID != nil {
		p.MicrochipID = *pa.MicrochipID
	}
	if pa.LastVaccinationDate != nil {
		t := *pa.LastVaccinationDate
		p.LastVaccinationDate = &t
	}
	if pa.NextCheckupDate != nil {
		t := *pa.NextCheckupDate
		p.NextCheckupDate = &t
	}
	if pa.HealthTips != nil {
		p.HealthTips = *pa.HealthTips
	}
}

// VisibleTo: una mascota privada solo la ve su dueño.
func (p Pet) VisibleTo(viewerID int64) bool {
	return p.IsPublic || p.OwnerID == viewerID
}

// WithDefaults completa los opcionales omitidos. IsPublic lo decide el caller
// (CreateInput usa *bool para distinguir "no enviado" => true).
func (p Pet) WithDefaults() Pet {
	if p.Photos == nil {
		p.Photos = []string{}
	}
	if p.Gender == "" {
		p.Gender = GenderUnknown
	}
	return p
}
