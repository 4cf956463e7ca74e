package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-social/internal/domain/recommendations"
)

const reply = "Here you go:\n```json\n{\"trainingPlan\":{\"goals\":[\"sit\"],\"exercises\":[],\"schedule\":\"daily\"}," +
	"\"breedingAdvice\":{\"considerations\":[],\"healthChecks\":[],\"timing\":\"\"}," +
	"\"careGuidelines\":{\"diet\":[\"kibble\"],\"grooming\":[],\"exercise\":[],\"environment\":[]}," +
	"\"medicalRecommendations\":{\"vaccinations\":[],\"screenings\":[],\"warnings\":[],\"checkupFrequency\":\"yearly\"}}\n```"

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Contains(t, req.Messages[1].Content, "Name: Rex")

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": reply}}},
		})
	}))
	defer srv.Close()

	g, err := New(Options{BaseURL: srv.URL + "/v1/chat/completions", APIKey: "key", Model: "test-model"})
	require.NoError(t, err)

	doc, err := g.Generate(context.Background(), recommendations.Subject{Name: "Rex", Species: "dog", Age: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"sit"}, doc.TrainingPlan.Goals)
	assert.Equal(t, []string{"kibble"}, doc.CareGuidelines.Diet)
	assert.Equal(t, "yearly", doc.MedicalRecommendations.CheckupFrequency)
}

func TestGenerateUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	g, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), recommendations.Subject{Name: "Rex"})
	assert.Error(t, err)
}

func TestGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	g, err := New(Options{BaseURL: srv.URL})
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), recommendations.Subject{})
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestParseReply(t *testing.T) {
	doc, err := ParseReply(`noise {"trainingPlan":{"goals":["a {b}"]}} trailing`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a {b}"}, doc.TrainingPlan.Goals)

	_, err = ParseReply("no json here")
	assert.ErrorIs(t, err, ErrEmptyReply)

	_, err = ParseReply("```\n{not json}\n```")
	assert.Error(t, err)
}
