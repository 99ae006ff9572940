package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"quiz-llm/internal/domain"
)

// AnalysisPromptBuilder arma el pedido al LLM a partir de los cinco puntajes.
// El prompt guía el contenido; el schema JSON es el contrato que el proveedor
// debe cumplir y lo único que se valida a la vuelta.
type AnalysisPromptBuilder struct{}

var traitLabels = map[domain.Trait]string{
	domain.TraitOpenness:          "Apertura a la experiencia",
	domain.TraitConscientiousness: "Responsabilidad",
	domain.TraitExtraversion:      "Extraversión",
	domain.TraitAgreeableness:     "Amabilidad",
	domain.TraitNeuroticism:       "Neuroticismo",
}

// BuildPrompt genera el bloque de instrucciones con cada puntaje a un decimal.
func (AnalysisPromptBuilder) BuildPrompt(scores domain.TraitScores) string {
	var sb strings.Builder

	sb.WriteString("Eres un psicólogo experto en el modelo Big Five. Una persona completó un test de personalidad y obtuvo estos puntajes, en escala de 0 a 4:\n\n")
	for _, trait := range domain.AllTraits() {
		sb.WriteString(fmt.Sprintf("- %s: %.1f\n", traitLabels[trait], scores[trait]))
	}

	sb.WriteString("\nEscribe un análisis cálido y directo, en segunda persona, con estas cuatro secciones:\n")
	sb.WriteString("1. nickname: un apodo llamativo y breve que capture su personalidad.\n")
	sb.WriteString("2. traits: una descripción detallada de sus rasgos, mencionando figuras públicas con un perfil comparable.\n")
	sb.WriteString("3. jobs: los tipos de trabajo donde encajaría mejor y por qué.\n")
	sb.WriteString("4. partner: qué tipo de pareja le conviene, mencionando figuras públicas con un perfil comparable.\n")
	sb.WriteString("\nResalta las frases clave con énfasis inline usando **negrita**.\n")
	sb.WriteString("Devuelve SOLO un JSON con exactamente estos cuatro campos de texto: nickname, traits, jobs, partner.\n")

	return sb.String()
}

// analysisSchema exige las cuatro secciones como strings obligatorios.
const analysisSchema = `{
	"type": "object",
	"properties": {
		"nickname": {"type": "string"},
		"traits": {"type": "string"},
		"jobs": {"type": "string"},
		"partner": {"type": "string"}
	},
	"required": ["nickname", "traits", "jobs", "partner"],
	"additionalProperties": false
}`

// BuildSchema devuelve el schema de salida requerido.
func (AnalysisPromptBuilder) BuildSchema() json.RawMessage {
	return json.RawMessage(analysisSchema)
}
