package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"quiz-llm/internal/llm"
)

const goodAnalysisJSON = `{"nickname": "El Estratega Sereno", "traits": "Sos **curioso** como Ada Lovelace.", "jobs": "Investigación, **diseño de producto**.", "partner": "Alguien **estable**, al estilo de Keanu Reeves."}`

func TestAnalyzeHappyPath(t *testing.T) {
	llmClient := &llm.MockClient{Response: goodAnalysisJSON}
	svc := NewAnalysisService(llmClient, zap.NewNop())

	result, err := svc.Analyze(context.Background(), sampleScores())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Nickname != "El Estratega Sereno" {
		t.Fatalf("expected nickname, got %q", result.Nickname)
	}
	if result.Traits == "" || result.Jobs == "" || result.Partner == "" {
		t.Fatalf("expected all four sections populated, got %+v", result)
	}
	if llmClient.Calls() != 1 {
		t.Fatalf("expected exactly one llm call, got %d", llmClient.Calls())
	}
	if len(llmClient.LastSchema()) == 0 {
		t.Fatalf("expected schema to be sent with the request")
	}
	if !strings.Contains(llmClient.LastPrompt(), "3.5") {
		t.Fatalf("expected prompt to embed the scores, got:\n%s", llmClient.LastPrompt())
	}
}

func TestAnalyzeCleansMarkdownFences(t *testing.T) {
	llmClient := &llm.MockClient{Response: "```json\n" + goodAnalysisJSON + "\n```"}
	svc := NewAnalysisService(llmClient, zap.NewNop())

	result, err := svc.Analyze(context.Background(), sampleScores())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Nickname != "El Estratega Sereno" {
		t.Fatalf("expected nickname, got %q", result.Nickname)
	}
}

func TestAnalyzeParsesWrappedJSONObject(t *testing.T) {
	llmClient := &llm.MockClient{Response: "Aquí está tu análisis:\n" + goodAnalysisJSON + "\nfin"}
	svc := NewAnalysisService(llmClient, zap.NewNop())

	if _, err := svc.Analyze(context.Background(), sampleScores()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestAnalyzeTransportFailure(t *testing.T) {
	llmClient := &llm.MockClient{Err: errors.New("connection refused")}
	svc := NewAnalysisService(llmClient, zap.NewNop())

	_, err := svc.Analyze(context.Background(), sampleScores())
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed, got %v", err)
	}
}

func TestAnalyzeMissingFieldIsAnError(t *testing.T) {
	llmClient := &llm.MockClient{
		Response: `{"nickname": "X", "traits": "Y", "partner": "Z"}`,
	}
	svc := NewAnalysisService(llmClient, zap.NewNop())

	_, err := svc.Analyze(context.Background(), sampleScores())
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed for missing jobs field, got %v", err)
	}
}

func TestAnalyzeEmptyFieldIsAnError(t *testing.T) {
	llmClient := &llm.MockClient{
		Response: `{"nickname": "X", "traits": "Y", "jobs": "   ", "partner": "Z"}`,
	}
	svc := NewAnalysisService(llmClient, zap.NewNop())

	_, err := svc.Analyze(context.Background(), sampleScores())
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed for blank jobs field, got %v", err)
	}
}

func TestAnalyzeNonJSONResponseIsAnError(t *testing.T) {
	llmClient := &llm.MockClient{Response: "Lo siento, no puedo procesar eso."}
	svc := NewAnalysisService(llmClient, zap.NewNop())

	_, err := svc.Analyze(context.Background(), sampleScores())
	if !errors.Is(err, ErrAnalysisFailed) {
		t.Fatalf("expected ErrAnalysisFailed for plain text, got %v", err)
	}
}
