package domain

import "time"

// SessionState es el estado derivado de una sesión de test.
type SessionState string

const (
	StateCollecting SessionState = "collecting"
	StateReady      SessionState = "ready"
	StateAnalyzing  SessionState = "analyzing"
	StateDisplaying SessionState = "displaying"
)

// Session es el estado completo de un intento del test. Vive en el session
// store mientras dura la interacción y se borra entero con el TTL o el reset.
type Session struct {
	ID      string          `json:"id"`
	Answers map[int]int     `json:"answers"`
	Scores  TraitScores     `json:"scores,omitempty"`
	Result  *AnalysisResult `json:"result,omitempty"`

	// Analyzing marca que hay exactamente un análisis en vuelo, con su hora
	// de inicio: si el proceso que lo lanzó murió, un marcador viejo se
	// puede retomar en vez de quedar trabado hasta el TTL.
	// Generation se incrementa en cada análisis y en cada reset; un análisis
	// que termina con una generación vieja descarta su resultado.
	Analyzing         bool       `json:"analyzing"`
	AnalysisStartedAt *time.Time `json:"analysis_started_at,omitempty"`
	Generation        int        `json:"generation"`
	LastError         string     `json:"last_error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone devuelve una copia profunda de la sesión. Los mapas y punteros no se
// comparten: una sesión que sale de un store es un snapshot, no un alias del
// estado interno.
func (s Session) Clone() Session {
	out := s
	if s.Answers != nil {
		out.Answers = make(map[int]int, len(s.Answers))
		for id, value := range s.Answers {
			out.Answers[id] = value
		}
	}
	out.Scores = s.Scores.Clone()
	if s.Result != nil {
		result := *s.Result
		out.Result = &result
	}
	if s.AnalysisStartedAt != nil {
		startedAt := *s.AnalysisStartedAt
		out.AnalysisStartedAt = &startedAt
	}
	return out
}

// State deriva el estado visible a partir de los datos, sin campo redundante.
func (s *Session) State() SessionState {
	switch {
	case s.Analyzing:
		return StateAnalyzing
	case s.Result != nil:
		return StateDisplaying
	case s.Scores != nil:
		return StateReady
	default:
		return StateCollecting
	}
}
