package recommendations

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Fallback es el documento estático que se devuelve cuando el generador falla.
// Es determinístico: mismo Subject => mismo documento.
func Fallback(s Subject) Document {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = "your pet"
	}
	species := strings.ToLower(strings.TrimSpace(s.Species))
	if species == "" {
		species = "pet"
	}

	return Document{
		TrainingPlan: TrainingPlan{
			Goals:     []string{fmt.Sprintf("Reinforce basic commands with %s", name), "Build a calm daily routine"},
			Exercises: []string{"Short positive-reinforcement sessions (5-10 minutes)", "Leash or handling practice"},
			Schedule:  "Daily, two short sessions",
		},
		BreedingAdvice: BreedingAdvice{
			Considerations: []string{"Consult a veterinarian before any breeding decision", "Confirm temperament and genetic screening"},
			HealthChecks:   []string{"Full physical exam", "Breed-specific genetic tests"},
			Timing:         "Only after full physical maturity and veterinary clearance",
		},
		CareGuidelines: CareGuidelines{
			Diet:        []string{fmt.Sprintf("Age-appropriate %s food in measured portions", species), "Fresh water at all times"},
			Grooming:    []string{"Regular brushing", "Nail and dental checks"},
			Exercise:    []string{"Daily activity suited to age and breed"},
			Environment: []string{"Safe, clean resting area", "Enrichment toys"},
		},
		MedicalRecommendations: MedicalRecommendations{
			Vaccinations:     []string{"Keep core vaccinations up to date"},
			Screenings:       []string{"Annual wellness exam", "Parasite prevention"},
			Warnings:         []string{"Seek care for changes in appetite, energy or behavior"},
			CheckupFrequency: "Every 12 months",
		},
	}
}

// Outcome se reporta por cada llamada al generador envuelto.
type Outcome string

const (
	OutcomeGenerated Outcome = "generated"
	OutcomeFallback  Outcome = "fallback"
)

type fallbackGenerator struct {
	next      Generator
	log       *zap.Logger
	onOutcome func(Outcome)
}

// WithFallback envuelve un Generator: cualquier error se loguea y se reemplaza
// por Fallback(s). El resultado nunca es un error.
func WithFallback(next Generator, log *zap.Logger, onOutcome func(Outcome)) Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if onOutcome == nil {
		onOutcome = func(Outcome) {}
	}
	return &fallbackGenerator{next: next, log: log, onOutcome: onOutcome}
}

func (g *fallbackGenerator) Generate(ctx context.Context, s Subject) (Document, error) {
	doc, _ := g.generate(ctx, s)
	return doc, nil
}

func (g *fallbackGenerator) generate(ctx context.Context, s Subject) (Document, Outcome) {
	if g.next == nil {
		g.onOutcome(OutcomeFallback)
		return Fallback(s), OutcomeFallback
	}
	doc, err := g.next.Generate(ctx, s)
	if err != nil {
		g.log.Warn("recommendation generator failed, using fallback",
			zap.String("pet", s.Name),
			zap.Error(err),
		)
		g.onOutcome(OutcomeFallback)
		return Fallback(s), OutcomeFallback
	}
	g.onOutcome(OutcomeGenerated)
	return doc, OutcomeGenerated
}

// outcomeOf corre gen e informa si el documento salió del fallback.
func outcomeOf(ctx context.Context, gen Generator, s Subject) (Document, Outcome, error) {
	if fg, ok := gen.(*fallbackGenerator); ok {
		doc, o := fg.generate(ctx, s)
		return doc, o, nil
	}
	doc, err := gen.Generate(ctx, s)
	return doc, OutcomeGenerated, err
}
