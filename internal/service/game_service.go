package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"lingotaboo/internal/ai"
	"lingotaboo/internal/models"
)

// MinDescriptionLength is the minimum trimmed length of a submission.
const MinDescriptionLength = 5

// MaxSessionListLimit is the hard cap on sessions returned per list request.
const MaxSessionListLimit = 50

// defaultSessionListLimit applies when the caller does not ask for a limit.
const defaultSessionListLimit = 20

// SessionStore is the persistence boundary for game sessions and their
// transcripts.
type SessionStore interface {
	Create(ctx context.Context, session *models.GameSession) error
	GetForUser(ctx context.Context, sessionID string, userID int64) (*models.GameSession, error)
	Update(ctx context.Context, session *models.GameSession) error
	ListForUser(ctx context.Context, userID int64, targetLanguage string, limit int) ([]models.SessionSummary, error)
	ListHistoryForUser(ctx context.Context, userID int64, targetLanguage string, limit int) ([]models.SessionSummary, error)
	NextSeq(ctx context.Context, sessionID string) (int, error)
	AppendMessage(ctx context.Context, message *models.SessionMessage) error
	GetMessages(ctx context.Context, sessionID string) ([]models.SessionMessage, error)
	CountAttempts(ctx context.Context, sessionID string) (int, error)
}

// GameService is the Taboo session engine: it owns the session state
// machine, the cumulative word discovery, scoring and the transcript.
// Every call takes the acting user ID explicitly; the engine holds no
// ambient request state.
type GameService struct {
	sessions   SessionStore
	cards      CardStore
	translator ai.Translator
	evaluator  ai.Evaluator
	examples   ai.ExampleGenerator
	usage      *UsageService

	locks         *sessionLocks
	oracleTimeout time.Duration
}

// NewGameService creates a new game service
func NewGameService(sessions SessionStore, cards CardStore, translator ai.Translator, evaluator ai.Evaluator, examples ai.ExampleGenerator, usage *UsageService, oracleTimeout time.Duration) *GameService {
	if oracleTimeout <= 0 {
		oracleTimeout = 30 * time.Second
	}
	return &GameService{
		sessions:      sessions,
		cards:         cards,
		translator:    translator,
		evaluator:     evaluator,
		examples:      examples,
		usage:         usage,
		locks:         newSessionLocks(),
		oracleTimeout: oracleTimeout,
	}
}

// oracleContext bounds an oracle call independently of the enclosing
// request, so a stalled upstream cannot hold a session lock forever.
func (s *GameService) oracleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.oracleTimeout)
}

// StartSession creates a session for one user's attempt at one card. The
// card's key words and answer word are translated when its language differs
// from the target, and both snapshots are frozen on the session. Start is
// atomic: a translation failure creates nothing.
func (s *GameService) StartSession(ctx context.Context, userID int64, cardID, targetLanguage string) (*models.GameSession, error) {
	targetLanguage = strings.TrimSpace(targetLanguage)
	if targetLanguage == "" {
		return nil, models.NewValidationError("targetLanguage", "target language is required")
	}

	card, err := s.cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if !card.IsActive {
		return nil, models.ErrCardInactive
	}

	answerWord := card.AnswerWord
	translatedWords := card.KeyWords
	var translationUsage models.TokenUsage

	if !strings.EqualFold(card.Language, targetLanguage) {
		oracleCtx, cancel := s.oracleContext(ctx)
		translation, err := s.translator.Translate(oracleCtx, card.KeyWords, card.AnswerWord, card.Language, targetLanguage)
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrTranslationFailed, err)
		}

		answerWord = translation.AnswerWord
		translatedWords = translation.Words
		translationUsage = translation.Usage
	}

	now := time.Now()
	session := &models.GameSession{
		ID:                 uuid.NewString(),
		CardID:             card.ID,
		UserID:             userID,
		TargetLanguage:     targetLanguage,
		AnswerWord:         answerWord,
		OriginalKeyWords:   append([]string(nil), card.KeyWords...),
		TranslatedKeyWords: append([]string(nil), translatedWords...),
		Status:             models.StatusInitialized,
		WordsFound:         []string{},
		Score:              0,
		StartedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	if err := s.cards.IncrementUsage(ctx, card.ID); err != nil {
		log.Printf("Warning: failed to increment usage for card %s: %v", card.ID, err)
	}

	s.usage.Record(ctx, models.UsageEvent{
		UserID:           userID,
		SessionID:        session.ID,
		RequestType:      models.RequestTypeTranslation,
		PromptTokens:     translationUsage.PromptTokens,
		CompletionTokens: translationUsage.CompletionTokens,
	})

	return session, nil
}

// SubmitResult is the evaluation summary returned for one submission.
type SubmitResult struct {
	WordsFoundThisAttempt []string
	WordsFound            []string
	WordsMissed           []string
	Score                 int
	IsGameComplete        bool
	AnswerMentioned       bool
	Fallback              bool
	AIExample             string
}

// Submit evaluates one description against the session's key words and
// folds the result into the cumulative state. The oracle reports which
// words the description used, but the engine filters that report against
// the session's translated key word set before accepting anything. An
// oracle failure fails the submission with nothing recorded, so a retry
// starts clean.
func (s *GameService) Submit(ctx context.Context, userID int64, sessionID, description string, includeExample bool) (*SubmitResult, error) {
	unlock := s.locks.Acquire(sessionID)
	defer unlock()

	session, err := s.sessions.GetForUser(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status.Terminal() {
		return nil, models.ErrAlreadyCompleted
	}

	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) < MinDescriptionLength {
		return nil, models.NewValidationError("description",
			fmt.Sprintf("description must be at least %d characters", MinDescriptionLength))
	}

	oracleCtx, cancel := s.oracleContext(ctx)
	eval, err := s.evaluator.Evaluate(oracleCtx, description, session.TranslatedKeyWords, session.AnswerWord, session.TargetLanguage)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrEvaluationFailed, err)
	}

	if session.Status == models.StatusInitialized {
		session.Status = models.StatusInProgress
	}

	// The engine, not the oracle, owns the membership invariant: anything
	// reported outside the translated key word set is dropped, and matches
	// take the key word's canonical spelling.
	wordsUsed := ai.MatchKeyWords(eval.WordsUsed, session.TranslatedKeyWords)

	// Diff this attempt's words against the accumulated set, then union.
	// Rediscovering a word is a no-op.
	already := make(map[string]bool, len(session.WordsFound))
	for _, w := range session.WordsFound {
		already[strings.ToLower(w)] = true
	}

	wordsFoundThisAttempt := []string{}
	for _, w := range wordsUsed {
		if !already[strings.ToLower(w)] {
			wordsFoundThisAttempt = append(wordsFoundThisAttempt, w)
			session.WordsFound = append(session.WordsFound, w)
			already[strings.ToLower(w)] = true
		}
	}

	session.Score = models.ComputeScore(len(session.WordsFound), len(session.TranslatedKeyWords))

	completed := session.AllWordsFound()
	if completed && session.Status.CanTransitionTo(models.StatusCompleted) {
		now := time.Now()
		session.Status = models.StatusCompleted
		session.CompletedAt = &now
		session.UserDescription = description
		session.EvaluationResult = &models.EvaluationResult{
			WordsUsed:       wordsUsed,
			AnswerMentioned: eval.AnswerMentioned,
			Quality:         eval.Quality,
			Fallback:        eval.Fallback,
		}
	}

	attemptCount, err := s.sessions.CountAttempts(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	attemptCount++

	missed := session.WordsMissed()

	seq, err := s.sessions.NextSeq(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	descriptionEntry := &models.SessionMessage{
		SessionID: sessionID,
		Seq:       seq,
		Role:      models.MessageRoleDescription,
		Body: models.MessageBody{
			Description:  description,
			AttemptCount: attemptCount,
		},
		CreatedAt: now,
	}
	evaluationEntry := &models.SessionMessage{
		SessionID: sessionID,
		Seq:       seq + 1,
		Role:      models.MessageRoleEvaluation,
		Body: models.MessageBody{
			WordsFoundThisAttempt: wordsFoundThisAttempt,
			WordsFoundTotal:       append([]string(nil), session.WordsFound...),
			WordsMissed:           missed,
			Score:                 session.Score,
			AnswerMentioned:       eval.AnswerMentioned,
			Fallback:              eval.Fallback,
		},
		CreatedAt: now,
	}

	if err := s.sessions.AppendMessage(ctx, descriptionEntry); err != nil {
		return nil, err
	}
	if err := s.sessions.AppendMessage(ctx, evaluationEntry); err != nil {
		return nil, err
	}

	var exampleUsage models.TokenUsage
	if completed && includeExample {
		session.AIExampleDescription, exampleUsage = s.generateExample(ctx, session)
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	combinedUsage := eval.Usage
	combinedUsage.Add(exampleUsage)
	s.usage.Record(ctx, models.UsageEvent{
		UserID:           userID,
		SessionID:        sessionID,
		RequestType:      models.RequestTypeEvaluation,
		PromptTokens:     combinedUsage.PromptTokens,
		CompletionTokens: combinedUsage.CompletionTokens,
		AttemptCount:     attemptCount,
		GameCompleted:    completed,
	})

	return &SubmitResult{
		WordsFoundThisAttempt: wordsFoundThisAttempt,
		WordsFound:            append([]string(nil), session.WordsFound...),
		WordsMissed:           missed,
		Score:                 session.Score,
		IsGameComplete:        completed,
		AnswerMentioned:       eval.AnswerMentioned,
		Fallback:              eval.Fallback,
		AIExample:             session.AIExampleDescription,
	}, nil
}

// FinishResult is the final summary for an explicitly finished session.
type FinishResult struct {
	WordsFound   []string
	WordsMissed  []string
	Score        int
	AttemptCount int
	AIExample    string
}

// Finish terminates a session before full word discovery, freezing the
// score as it stands. At least one recorded submission is required.
func (s *GameService) Finish(ctx context.Context, userID int64, sessionID string, includeExample bool) (*FinishResult, error) {
	unlock := s.locks.Acquire(sessionID)
	defer unlock()

	session, err := s.sessions.GetForUser(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}
	if session.Status.Terminal() {
		return nil, models.ErrAlreadyCompleted
	}

	attemptCount, err := s.sessions.CountAttempts(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if attemptCount == 0 {
		return nil, models.NewValidationError("session", "cannot finish a session with zero attempts")
	}

	now := time.Now()
	session.Status = models.StatusCompleted
	session.CompletedAt = &now
	session.UserDescription = s.lastDescription(ctx, sessionID)

	if session.EvaluationResult == nil {
		session.EvaluationResult = &models.EvaluationResult{
			WordsUsed: append([]string(nil), session.WordsFound...),
		}
	}
	session.EvaluationResult.FinishedByUser = true

	missed := session.WordsMissed()

	seq, err := s.sessions.NextSeq(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	finishedEntry := &models.SessionMessage{
		SessionID: sessionID,
		Seq:       seq,
		Role:      models.MessageRoleFinished,
		Body: models.MessageBody{
			WordsFoundTotal: append([]string(nil), session.WordsFound...),
			WordsMissed:     missed,
			Score:           session.Score,
			AttemptCount:    attemptCount,
			FinishedByUser:  true,
		},
		CreatedAt: now,
	}
	if err := s.sessions.AppendMessage(ctx, finishedEntry); err != nil {
		return nil, err
	}

	var exampleUsage models.TokenUsage
	if includeExample {
		session.AIExampleDescription, exampleUsage = s.generateExample(ctx, session)
	}

	if err := s.sessions.Update(ctx, session); err != nil {
		return nil, err
	}

	s.usage.Record(ctx, models.UsageEvent{
		UserID:           userID,
		SessionID:        sessionID,
		RequestType:      models.RequestTypeExample,
		PromptTokens:     exampleUsage.PromptTokens,
		CompletionTokens: exampleUsage.CompletionTokens,
		AttemptCount:     attemptCount,
		GameCompleted:    true,
	})

	return &FinishResult{
		WordsFound:   append([]string(nil), session.WordsFound...),
		WordsMissed:  missed,
		Score:        session.Score,
		AttemptCount: attemptCount,
		AIExample:    session.AIExampleDescription,
	}, nil
}

// generateExample asks the oracle for an exemplar description. The example
// is a bonus: any failure degrades to no example and never fails the
// enclosing operation.
func (s *GameService) generateExample(ctx context.Context, session *models.GameSession) (string, models.TokenUsage) {
	if s.examples == nil {
		return "", models.TokenUsage{}
	}

	oracleCtx, cancel := s.oracleContext(ctx)
	defer cancel()

	example, usage, err := s.examples.GenerateExample(oracleCtx, session.AnswerWord, session.TranslatedKeyWords, session.TargetLanguage)
	if err != nil {
		log.Printf("Warning: example generation failed for session %s: %v", session.ID, err)
		return "", usage
	}
	return example, usage
}

// lastDescription returns the most recent submitted description, or "".
func (s *GameService) lastDescription(ctx context.Context, sessionID string) string {
	messages, err := s.sessions.GetMessages(ctx, sessionID)
	if err != nil {
		log.Printf("Warning: failed to load transcript for session %s: %v", sessionID, err)
		return ""
	}

	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == models.MessageRoleDescription {
			return messages[i].Body.Description
		}
	}
	return ""
}

// SessionDetail is the full read model of one session.
type SessionDetail struct {
	Session    *models.GameSession
	Messages   []models.SessionMessage
	Category   string
	Difficulty string
}

// GetSession returns the full session detail including the transcript.
// Card detail is attached best-effort: a deactivated or missing card never
// breaks an existing session.
func (s *GameService) GetSession(ctx context.Context, userID int64, sessionID string) (*SessionDetail, error) {
	session, err := s.sessions.GetForUser(ctx, sessionID, userID)
	if err != nil {
		return nil, err
	}

	messages, err := s.sessions.GetMessages(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	detail := &SessionDetail{Session: session, Messages: messages}

	if card, err := s.cards.GetByID(ctx, session.CardID); err == nil {
		detail.Category = card.Category
		detail.Difficulty = card.Difficulty
	}

	return detail, nil
}

// ListSessions returns the user's session summaries most-recent-first.
// The limit is capped at MaxSessionListLimit.
func (s *GameService) ListSessions(ctx context.Context, userID int64, targetLanguage string, limit int) ([]models.SessionSummary, error) {
	if limit <= 0 {
		limit = defaultSessionListLimit
	}
	if limit > MaxSessionListLimit {
		limit = MaxSessionListLimit
	}

	summaries, err := s.sessions.ListForUser(ctx, userID, targetLanguage, limit)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []models.SessionSummary{}
	}
	return summaries, nil
}
