package service

import (
	"quiz-llm/internal/catalog"
	"quiz-llm/internal/domain"
)

// ScoreAnswers calcula el puntaje de cada dimensión a partir de las respuestas
// crudas. Devuelve ok=false mientras falte responder algún ítem del
// cuestionario: los puntajes solo existen con el set completo.
//
// Por dimensión: p es la respuesta al ítem directo y n la del invertido; el
// invertido se refleja sobre el punto medio de la escala (4-n) para cancelar
// el sesgo de redacción, y se promedia con el directo. El resultado queda en
// la misma escala [0,4], con fracciones válidas.
func ScoreAnswers(answers map[int]int) (domain.TraitScores, bool) {
	for _, q := range catalog.All() {
		if _, ok := answers[q.ID]; !ok {
			return nil, false
		}
	}

	scores := make(domain.TraitScores, len(domain.AllTraits()))
	for _, trait := range domain.AllTraits() {
		pair, err := catalog.ForTrait(trait)
		if err != nil {
			// Invariante del catálogo roto: Validate lo ataja al arrancar.
			panic(err)
		}
		p := float64(answers[pair.Positive.ID])
		n := float64(answers[pair.Negative.ID])
		scores[trait] = (p + (domain.AnswerMax - n)) / 2
	}
	return scores, true
}
