package service

import (
	"encoding/json"
	"strings"
	"testing"

	"quiz-llm/internal/domain"
)

func sampleScores() domain.TraitScores {
	return domain.TraitScores{
		domain.TraitOpenness:          3.5,
		domain.TraitConscientiousness: 2.0,
		domain.TraitExtraversion:      0.5,
		domain.TraitAgreeableness:     4.0,
		domain.TraitNeuroticism:       1.5,
	}
}

func TestBuildPromptEmbedsScoresToOneDecimal(t *testing.T) {
	prompt := AnalysisPromptBuilder{}.BuildPrompt(sampleScores())

	for _, fragment := range []string{"3.5", "2.0", "0.5", "4.0", "1.5"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("expected prompt to contain score %s:\n%s", fragment, prompt)
		}
	}
}

func TestBuildPromptRequestsFourSectionsAndEmphasis(t *testing.T) {
	prompt := AnalysisPromptBuilder{}.BuildPrompt(sampleScores())

	for _, fragment := range []string{"nickname", "traits", "jobs", "partner", "**negrita**"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("expected prompt to mention %q:\n%s", fragment, prompt)
		}
	}
}

func TestBuildSchemaRequiresFourStringFields(t *testing.T) {
	schema := AnalysisPromptBuilder{}.BuildSchema()

	var parsed struct {
		Type       string `json:"type"`
		Properties map[string]struct {
			Type string `json:"type"`
		} `json:"properties"`
		Required             []string `json:"required"`
		AdditionalProperties bool     `json:"additionalProperties"`
	}
	if err := json.Unmarshal(schema, &parsed); err != nil {
		t.Fatalf("expected schema to be valid JSON, got %v", err)
	}

	if parsed.Type != "object" {
		t.Fatalf("expected object schema, got %s", parsed.Type)
	}
	if parsed.AdditionalProperties {
		t.Fatalf("expected additionalProperties false")
	}
	if len(parsed.Required) != 4 {
		t.Fatalf("expected 4 required fields, got %d", len(parsed.Required))
	}
	for _, field := range []string{"nickname", "traits", "jobs", "partner"} {
		prop, ok := parsed.Properties[field]
		if !ok {
			t.Fatalf("expected schema property %s", field)
		}
		if prop.Type != "string" {
			t.Fatalf("expected %s to be string, got %s", field, prop.Type)
		}
		found := false
		for _, required := range parsed.Required {
			if required == field {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %s to be required", field)
		}
	}
}

func TestBuildPromptIsPure(t *testing.T) {
	scores := sampleScores()
	first := AnalysisPromptBuilder{}.BuildPrompt(scores)
	second := AnalysisPromptBuilder{}.BuildPrompt(scores)
	if first != second {
		t.Fatalf("expected identical prompts for identical scores")
	}
}
