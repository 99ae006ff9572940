package domain

// Escala Likert de las respuestas crudas.
const (
	AnswerMin = 0
	AnswerMax = 4
)

// Question es un ítem del cuestionario. Inverted indica polaridad negativa:
// la respuesta mide lo opuesto al rasgo y se refleja antes de promediar.
type Question struct {
	ID       int    `json:"id"`
	Text     string `json:"text"`
	Trait    Trait  `json:"trait"`
	Inverted bool   `json:"inverted"`
}
