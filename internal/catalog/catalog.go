package catalog

import (
	"fmt"

	"quiz-llm/internal/domain"
)

// Cuestionario fijo: diez ítems Likert (0-4), dos por dimensión Big Five,
// uno directo y uno invertido. El orden define solo cómo se muestra en la UI.
var questions = []domain.Question{
	{ID: 1, Text: "Disfruto ser el centro de atención en las reuniones sociales.", Trait: domain.TraitExtraversion},
	{ID: 2, Text: "Me resulta fácil confiar en las personas y perdonar sus errores.", Trait: domain.TraitAgreeableness},
	{ID: 3, Text: "Planifico mis tareas con antelación y cumplo los plazos que me fijo.", Trait: domain.TraitConscientiousness},
	{ID: 4, Text: "Mantengo la calma incluso cuando estoy bajo mucha presión.", Trait: domain.TraitNeuroticism, Inverted: true},
	{ID: 5, Text: "Me preocupo con frecuencia por cosas que podrían salir mal.", Trait: domain.TraitNeuroticism},
	{ID: 6, Text: "Después de estar con mucha gente necesito quedarme solo para recargar energía.", Trait: domain.TraitExtraversion, Inverted: true},
	{ID: 7, Text: "Cuando hay un conflicto, prefiero imponer mi punto de vista antes que ceder.", Trait: domain.TraitAgreeableness, Inverted: true},
	{ID: 8, Text: "Tiendo a dejar las cosas importantes para último momento.", Trait: domain.TraitConscientiousness, Inverted: true},
	{ID: 9, Text: "Me atraen las ideas nuevas, abstractas o poco convencionales.", Trait: domain.TraitOpenness},
	{ID: 10, Text: "Prefiero la rutina conocida antes que probar algo distinto.", Trait: domain.TraitOpenness, Inverted: true},
}

// Pair agrupa los dos ítems de una dimensión según su polaridad.
type Pair struct {
	Positive domain.Question
	Negative domain.Question
}

// Size devuelve la cantidad de preguntas del cuestionario.
func Size() int {
	return len(questions)
}

// All devuelve las preguntas en orden de presentación. Copia defensiva.
func All() []domain.Question {
	out := make([]domain.Question, len(questions))
	copy(out, questions)
	return out
}

// ByID busca una pregunta por identificador.
func ByID(id int) (domain.Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Question{}, false
}

// ForTrait devuelve el par directo/invertido de una dimensión. Un error acá
// es un defecto del cuestionario, no una condición de runtime: Validate lo
// detecta al arrancar el proceso.
func ForTrait(trait domain.Trait) (Pair, error) {
	var pair Pair
	var positives, negatives int
	for _, q := range questions {
		if q.Trait != trait {
			continue
		}
		if q.Inverted {
			pair.Negative = q
			negatives++
		} else {
			pair.Positive = q
			positives++
		}
	}
	if positives != 1 || negatives != 1 {
		return Pair{}, fmt.Errorf("catalog: trait %s has %d positive and %d negative questions, want 1 and 1", trait, positives, negatives)
	}
	return pair, nil
}

// Validate verifica los invariantes del cuestionario: ids únicos y positivos,
// y exactamente un ítem por polaridad para cada dimensión.
func Validate() error {
	seen := make(map[int]bool, len(questions))
	for _, q := range questions {
		if q.ID <= 0 {
			return fmt.Errorf("catalog: question %q has non-positive id %d", q.Text, q.ID)
		}
		if seen[q.ID] {
			return fmt.Errorf("catalog: duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
	}
	for _, trait := range domain.AllTraits() {
		if _, err := ForTrait(trait); err != nil {
			return err
		}
	}
	if len(questions) != 2*len(domain.AllTraits()) {
		return fmt.Errorf("catalog: expected %d questions, got %d", 2*len(domain.AllTraits()), len(questions))
	}
	return nil
}
