package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"go.uber.org/zap"

	"quiz-llm/internal/domain"
	"quiz-llm/internal/llm"
)

// ErrAnalysisFailed cubre cualquier falla del análisis externo: transporte,
// status, o JSON malformado/incompleto. El usuario recibe siempre el mismo
// mensaje genérico; el detalle queda en los logs del operador.
var ErrAnalysisFailed = errors.New("analysis failed")

// AnalysisService invoca al LLM con los puntajes y parsea la interpretación.
// Una sola llamada por invocación, sin retry ni timeout propio: el reintento
// es decisión del usuario y el timeout lo pone el transporte.
type AnalysisService struct {
	llmClient llm.LLMClient
	builder   AnalysisPromptBuilder
	logger    *zap.Logger
}

func NewAnalysisService(llmClient llm.LLMClient, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		llmClient: llmClient,
		logger:    logger,
	}
}

// Analyze convierte los puntajes en el resultado narrativo de cuatro secciones.
// Todo o nada: nunca devuelve un resultado parcial.
func (s *AnalysisService) Analyze(ctx context.Context, scores domain.TraitScores) (domain.AnalysisResult, error) {
	prompt := s.builder.BuildPrompt(scores)
	schema := s.builder.BuildSchema()

	raw, err := s.llmClient.GenerateStructured(ctx, prompt, schema)
	if err != nil {
		s.logger.Warn("llm generate failed", zap.Error(err))
		return domain.AnalysisResult{}, ErrAnalysisFailed
	}

	result, err := parseAnalysisResult(raw)
	if err != nil {
		s.logger.Warn("llm response parse failed", zap.Error(err), zap.String("raw", raw))
		return domain.AnalysisResult{}, ErrAnalysisFailed
	}
	return result, nil
}

// parseAnalysisResult valida solo la forma: los cuatro campos presentes y no
// vacíos. No se juzga el contenido.
func parseAnalysisResult(raw string) (domain.AnalysisResult, error) {
	cleaned := cleanJSONFences(raw)
	candidate := firstJSONObject(cleaned)
	if candidate == "" {
		candidate = firstJSONObject(raw)
	}
	if candidate == "" {
		return domain.AnalysisResult{}, errors.New("no JSON object in response")
	}

	var parsed struct {
		Nickname *string `json:"nickname"`
		Traits   *string `json:"traits"`
		Jobs     *string `json:"jobs"`
		Partner  *string `json:"partner"`
	}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return domain.AnalysisResult{}, err
	}

	fields := map[string]*string{
		"nickname": parsed.Nickname,
		"traits":   parsed.Traits,
		"jobs":     parsed.Jobs,
		"partner":  parsed.Partner,
	}
	for name, value := range fields {
		if value == nil || strings.TrimSpace(*value) == "" {
			return domain.AnalysisResult{}, errors.New("missing field: " + name)
		}
	}

	return domain.AnalysisResult{
		Nickname: *parsed.Nickname,
		Traits:   *parsed.Traits,
		Jobs:     *parsed.Jobs,
		Partner:  *parsed.Partner,
	}, nil
}
