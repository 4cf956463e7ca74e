package recommendations

import (
	"context"
	"encoding/json"
)

// Document es el resultado del generador externo. Se guarda opaco sobre la mascota.
type Document struct {
	TrainingPlan           TrainingPlan           `json:"trainingPlan"`
	BreedingAdvice         BreedingAdvice         `json:"breedingAdvice"`
	CareGuidelines         CareGuidelines         `json:"careGuidelines"`
	MedicalRecommendations MedicalRecommendations `json:"medicalRecommendations"`
}

type TrainingPlan struct {
	Goals     []string `json:"goals"`
	Exercises []string `json:"exercises"`
	Schedule  string   `json:"schedule"`
}

type BreedingAdvice struct {
	Considerations []string `json:"considerations"`
	HealthChecks   []string `json:"healthChecks"`
	Timing         string   `json:"timing"`
}

type CareGuidelines struct {
	Diet        []string `json:"diet"`
	Grooming    []string `json:"grooming"`
	Exercise    []string `json:"exercise"`
	Environment []string `json:"environment"`
}

type MedicalRecommendations struct {
	Vaccinations     []string `json:"vaccinations"`
	Screenings       []string `json:"screenings"`
	Warnings         []string `json:"warnings"`
	CheckupFrequency string   `json:"checkupFrequency"`
}

// Subject son los atributos de la mascota que recibe el generador.
type Subject struct {
	Name    string
	Species string
	Breed   string
	Age     int
	Gender  string
}

// Generator es el colaborador externo (IA generativa).
type Generator interface {
	Generate(ctx context.Context, s Subject) (Document, error)
}

// GeneratorFunc adapta una función a Generator.
type GeneratorFunc func(ctx context.Context, s Subject) (Document, error)

func (f GeneratorFunc) Generate(ctx context.Context, s Subject) (Document, error) { return f(ctx, s) }

func (d Document) Marshal() (json.RawMessage, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

func Unmarshal(raw json.RawMessage) (Document, error) {
	var d Document
	err := json.Unmarshal(raw, &d)
	return d, err
}
