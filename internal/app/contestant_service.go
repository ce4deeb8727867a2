package app

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"millionaire-quiz-service/internal/domain"
	"millionaire-quiz-service/internal/session"
	"millionaire-quiz-service/internal/sharecode"
)

// ContestantStore abstracts how quiz configurations are persisted
// (in-memory, JSON file, Postgres). Create assigns the contestant ID and
// per-question IDs.
type ContestantStore interface {
	List(ctx context.Context) ([]domain.Contestant, error)
	Get(ctx context.Context, id string) (domain.Contestant, error)
	Create(ctx context.Context, c domain.NewContestant) (domain.Contestant, error)
	Delete(ctx context.Context, id string) error
}

// ShareCodeStore maps short lookup codes to encoded share payloads.
type ShareCodeStore interface {
	Save(ctx context.Context, payload string) (string, error)
	Lookup(ctx context.Context, code string) (string, error)
}

// ContestantService contains the contestant use cases: CRUD, share-code
// export/import, and starting play sessions.
type ContestantService struct {
	store      ContestantStore
	codes      ShareCodeStore
	sessionCfg session.Config
	log        zerolog.Logger
}

func NewContestantService(store ContestantStore, codes ShareCodeStore, sessionCfg session.Config, log zerolog.Logger) *ContestantService {
	return &ContestantService{
		store:      store,
		codes:      codes,
		sessionCfg: sessionCfg,
		log:        log.With().Str("component", "contestant_service").Logger(),
	}
}

func (s *ContestantService) List(ctx context.Context) ([]domain.Contestant, error) {
	return s.store.List(ctx)
}

func (s *ContestantService) Get(ctx context.Context, id string) (domain.Contestant, error) {
	return s.store.Get(ctx, id)
}

// Create validates and stores a new quiz configuration. Malformed payloads
// never reach the store, let alone a session.
func (s *ContestantService) Create(ctx context.Context, c domain.NewContestant) (domain.Contestant, error) {
	if err := domain.ValidateNewContestant(c); err != nil {
		return domain.Contestant{}, err
	}
	created, err := s.store.Create(ctx, c)
	if err != nil {
		return domain.Contestant{}, fmt.Errorf("create contestant: %w", err)
	}
	s.log.Info().Str("contestant_id", created.ID).Int("questions", len(created.Questions)).Msg("contestant created")
	return created, nil
}

func (s *ContestantService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// ShareInfo is the export payload: the full portable code plus, when a code
// store is configured, a short lookup code mapped server-side.
type ShareInfo struct {
	Payload string `json:"payload"`
	Code    string `json:"code,omitempty"`
}

// Share exports a stored contestant as a portable share code.
func (s *ContestantService) Share(ctx context.Context, id string) (ShareInfo, error) {
	contestant, err := s.store.Get(ctx, id)
	if err != nil {
		return ShareInfo{}, err
	}
	info := ShareInfo{Payload: sharecode.Encode(contestant)}
	if s.codes != nil {
		code, err := s.codes.Save(ctx, info.Payload)
		if err != nil {
			return ShareInfo{}, fmt.Errorf("save share code: %w", err)
		}
		info.Code = code
	}
	return info, nil
}

var lookupCodePattern = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{6}$`)

// Import decodes a share code (a full payload, a share URL, or a short
// lookup code) and stores the configuration under a fresh identity. Decode
// failures surface as domain.ErrInvalidShareCode and are recoverable.
func (s *ContestantService) Import(ctx context.Context, code string) (domain.Contestant, error) {
	payload := code
	if s.codes != nil && lookupCodePattern.MatchString(code) {
		stored, err := s.codes.Lookup(ctx, code)
		if err != nil {
			if errors.Is(err, domain.ErrShareCodeNotFound) {
				return domain.Contestant{}, err
			}
			return domain.Contestant{}, fmt.Errorf("lookup share code: %w", err)
		}
		payload = stored
	}

	insert, err := sharecode.Decode(payload)
	if err != nil {
		return domain.Contestant{}, err
	}
	if err := domain.ValidateNewContestant(insert); err != nil {
		return domain.Contestant{}, fmt.Errorf("%w: %v", domain.ErrInvalidShareCode, err)
	}
	created, err := s.store.Create(ctx, insert)
	if err != nil {
		return domain.Contestant{}, fmt.Errorf("import contestant: %w", err)
	}
	s.log.Info().Str("contestant_id", created.ID).Msg("contestant imported from share code")
	return created, nil
}

// StartSession prepares and starts a play session for a stored contestant.
// A contestant without questions cannot start (domain.ErrNoQuestions).
func (s *ContestantService) StartSession(ctx context.Context, contestantID string) (*session.Engine, domain.Contestant, error) {
	contestant, err := s.store.Get(ctx, contestantID)
	if err != nil {
		return nil, domain.Contestant{}, err
	}
	engine, err := session.NewWithConfig(contestant, s.sessionCfg)
	if err != nil {
		return nil, domain.Contestant{}, err
	}
	s.log.Info().Str("contestant_id", contestantID).Int("questions", len(contestant.Questions)).Msg("session started")
	return engine, contestant, nil
}
