package domain

// Trait identifica una de las cinco dimensiones Big Five que puntúa el test.
type Trait string

const (
	TraitOpenness          Trait = "openness"
	TraitConscientiousness Trait = "conscientiousness"
	TraitExtraversion      Trait = "extraversion"
	TraitAgreeableness     Trait = "agreeableness"
	TraitNeuroticism       Trait = "neuroticism"
)

// AllTraits devuelve las dimensiones en orden estable para prompts y reportes.
func AllTraits() []Trait {
	return []Trait{
		TraitOpenness,
		TraitConscientiousness,
		TraitExtraversion,
		TraitAgreeableness,
		TraitNeuroticism,
	}
}

// TraitScores mapea cada dimensión a su puntaje normalizado en [0,4].
type TraitScores map[Trait]float64

// Clone copia los puntajes para que el snapshot de un análisis no comparta memoria.
func (s TraitScores) Clone() TraitScores {
	if s == nil {
		return nil
	}
	out := make(TraitScores, len(s))
	for t, v := range s {
		out[t] = v
	}
	return out
}
