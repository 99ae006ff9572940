package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"quiz-llm/internal/catalog"
	"quiz-llm/internal/domain"
	"quiz-llm/internal/store"
)

var (
	// ErrUnknownQuestion indica un id de pregunta fuera del cuestionario.
	ErrUnknownQuestion = errors.New("unknown question id")
	// ErrAnswerOutOfRange indica una respuesta fuera de la escala Likert.
	ErrAnswerOutOfRange = errors.New("answer value out of range")
	// ErrAnswersIncomplete indica que se pidió el análisis sin responder todo.
	ErrAnswersIncomplete = errors.New("answers incomplete")
)

// Mensaje genérico que ve el usuario cuando falla el análisis. El detalle
// real solo va a los logs.
const analysisErrorMessage = "could not generate analysis"

// Un análisis en vuelo más viejo que esto se considera abandonado (el
// proceso que lo lanzó murió sin completar) y puede retomarse. El cliente
// HTTP del LLM corta a los 60s, así que dos minutos alcanzan de sobra.
const analysisStaleAfter = 2 * time.Minute

// SessionService es la máquina de estados de cada sesión de test: acumula
// respuestas, deriva los puntajes al completarse el cuestionario, lanza el
// análisis con garantía de vuelo único y resetea todo.
type SessionService struct {
	sessions    store.SessionStore
	analysisSvc *AnalysisService
	logger      *zap.Logger
	ttl         time.Duration

	// Un mutex por sesión serializa las mutaciones; la llamada al LLM corre
	// fuera del lock para no bloquear a las demás operaciones de la sesión.
	locks sync.Map
}

func NewSessionService(sessions store.SessionStore, analysisSvc *AnalysisService, logger *zap.Logger, ttl time.Duration) *SessionService {
	return &SessionService{
		sessions:    sessions,
		analysisSvc: analysisSvc,
		logger:      logger,
		ttl:         ttl,
	}
}

// analysisMarkerStale decide si un análisis marcado en vuelo quedó huérfano.
// Un marcador sin hora de inicio se trata como fresco por conservadurismo.
func analysisMarkerStale(session domain.Session) bool {
	if session.AnalysisStartedAt == nil {
		return false
	}
	return time.Since(*session.AnalysisStartedAt) >= analysisStaleAfter
}

func (s *SessionService) lock(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Create inicializa una sesión vacía en estado collecting.
func (s *SessionService) Create(ctx context.Context) (domain.Session, error) {
	now := time.Now().UTC()
	session := domain.Session{
		ID:        uuid.NewString(),
		Answers:   make(map[int]int),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Save(ctx, session, s.ttl); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Get devuelve el estado actual de una sesión.
func (s *SessionService) Get(ctx context.Context, id string) (domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// SubmitAnswer registra una respuesta (last-write-wins por pregunta) y
// recalcula los puntajes si el cuestionario quedó completo. Se acepta en
// cualquier estado; un análisis en vuelo ya trabaja sobre su snapshot y no
// se ve afectado.
func (s *SessionService) SubmitAnswer(ctx context.Context, id string, questionID, value int) (domain.Session, error) {
	if _, ok := catalog.ByID(questionID); !ok {
		return domain.Session{}, ErrUnknownQuestion
	}
	if value < domain.AnswerMin || value > domain.AnswerMax {
		return domain.Session{}, ErrAnswerOutOfRange
	}

	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	if session.Answers == nil {
		session.Answers = make(map[int]int)
	}
	session.Answers[questionID] = value
	if scores, ok := ScoreAnswers(session.Answers); ok {
		session.Scores = scores
	} else {
		session.Scores = nil
	}
	session.UpdatedAt = time.Now().UTC()

	if err := s.sessions.Save(ctx, session, s.ttl); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// RequestAnalysis dispara la única invocación externa de la sesión. Si ya hay
// un análisis en vuelo es un no-op y devuelve el estado tal cual; si los
// puntajes no están definidos es un error de precondición. Al completar, el
// resultado solo se aplica si la generación sigue vigente: un reset (o un
// análisis más nuevo) en el medio lo descarta.
func (s *SessionService) RequestAnalysis(ctx context.Context, id string) (domain.Session, error) {
	mu := s.lock(id)
	mu.Lock()

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		mu.Unlock()
		return domain.Session{}, err
	}
	if session.Analyzing && !analysisMarkerStale(session) {
		mu.Unlock()
		return session, nil
	}
	if session.Scores == nil {
		mu.Unlock()
		return session, ErrAnswersIncomplete
	}
	if session.Analyzing {
		// Marcador abandonado (crash entre el lanzamiento y el callback con
		// el backend de Redis): retomar. El salto de generación descarta lo
		// que pudiera llegar del intento muerto.
		s.logger.Warn("taking over stale in-flight analysis",
			zap.String("session_id", id),
			zap.Int("generation", session.Generation),
		)
	}

	now := time.Now().UTC()
	session.Analyzing = true
	session.AnalysisStartedAt = &now
	session.Generation++
	session.LastError = ""
	session.UpdatedAt = now
	generation := session.Generation
	snapshot := session.Scores.Clone()

	if err := s.sessions.Save(ctx, session, s.ttl); err != nil {
		mu.Unlock()
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	mu.Unlock()

	result, analyzeErr := s.analysisSvc.Analyze(ctx, snapshot)

	mu.Lock()
	defer mu.Unlock()

	current, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}
	if !current.Analyzing || current.Generation != generation {
		s.logger.Info("discarding stale analysis outcome",
			zap.String("session_id", id),
			zap.Int("generation", generation),
		)
		return current, nil
	}

	current.Analyzing = false
	current.AnalysisStartedAt = nil
	current.UpdatedAt = time.Now().UTC()
	if analyzeErr != nil {
		current.LastError = analysisErrorMessage
		if err := s.sessions.Save(ctx, current, s.ttl); err != nil {
			return domain.Session{}, fmt.Errorf("save session: %w", err)
		}
		return current, analyzeErr
	}

	current.Result = &result
	current.LastError = ""
	if err := s.sessions.Save(ctx, current, s.ttl); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	return current, nil
}

// Reset vuelve la sesión al estado inicial desde cualquier estado. No cancela
// una llamada en vuelo: el salto de generación hace que su resultado se
// descarte al llegar.
func (s *SessionService) Reset(ctx context.Context, id string) (domain.Session, error) {
	mu := s.lock(id)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return domain.Session{}, err
	}

	session.Answers = make(map[int]int)
	session.Scores = nil
	session.Result = nil
	session.Analyzing = false
	session.AnalysisStartedAt = nil
	session.LastError = ""
	session.Generation++
	session.UpdatedAt = time.Now().UTC()

	if err := s.sessions.Save(ctx, session, s.ttl); err != nil {
		return domain.Session{}, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}
