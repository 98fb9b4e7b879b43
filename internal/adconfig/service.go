package adconfig

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/fulmenhq/gofulmen/logging"
	"go.uber.org/zap"
)

// ErrNotFound is returned by a Repository when no settings blob exists yet.
var ErrNotFound = errors.New("ad settings not found")

// Repository persists the settings blob under SettingsKey.
type Repository interface {
	Load() ([]byte, error)
	Save(payload []byte) error
}

// Subscriber receives a settings copy after each committed update.
type Subscriber func(Settings)

// Service owns the in-memory settings, persistence, change notification,
// and loader-script activation.
//
// Activation happens at most once per process: the first committed state
// with a publisher id and ads globally enabled triggers the Activator,
// later updates never re-trigger it.
type Service struct {
	mu        sync.Mutex
	settings  Settings
	repo      Repository
	activator Activator
	logger    *logging.Logger
	activated bool
	subs      []Subscriber
}

// NewService builds a service seeded with the defaults. repo and activator
// may be nil; logger must not be.
func NewService(repo Repository, activator Activator, logger *logging.Logger) *Service {
	return &Service{
		settings:  DefaultSettings(),
		repo:      repo,
		activator: activator,
		logger:    logger,
	}
}

// LoadInitial reads the persisted blob and merges it over the defaults.
// A missing blob keeps the defaults. A malformed blob is logged and
// discarded, also keeping the defaults. The loaded state may trigger
// activation.
func (s *Service) LoadInitial() {
	if s.repo == nil {
		return
	}

	payload, err := s.repo.Load()
	if errors.Is(err, ErrNotFound) {
		return
	}
	if err != nil {
		s.logger.Warn("Failed to load ad settings", zap.Error(err))
		return
	}

	merged, err := MergeStored(payload)
	if err != nil {
		s.logger.Warn("Discarding malformed ad settings payload", zap.Error(err))
		return
	}

	s.mu.Lock()
	s.settings = merged
	s.mu.Unlock()

	s.maybeActivate(merged)
}

// Settings returns a copy of the current settings.
func (s *Service) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Clone()
}

// Update replaces the settings, persists them best-effort, notifies
// subscribers, and evaluates activation. A persistence failure is logged
// but never rolls back the in-memory state.
func (s *Service) Update(settings Settings) {
	committed := settings.Clone()
	for key, placement := range committed.Placements {
		if placement.Format == "" {
			placement.Format = FormatAuto
			committed.Placements[key] = placement
		}
	}

	s.mu.Lock()
	s.settings = committed
	subs := append([]Subscriber(nil), s.subs...)
	s.mu.Unlock()

	s.persist(committed)

	for _, sub := range subs {
		sub(committed.Clone())
	}

	s.maybeActivate(committed)
}

// Subscribe registers a change callback. Callbacks run synchronously on
// the updating goroutine, after persistence.
func (s *Service) Subscribe(sub Subscriber) {
	if sub == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, sub)
}

func (s *Service) persist(settings Settings) {
	if s.repo == nil {
		return
	}
	payload, err := json.Marshal(settings)
	if err != nil {
		s.logger.Warn("Failed to encode ad settings", zap.Error(err))
		return
	}
	if err := s.repo.Save(payload); err != nil {
		s.logger.Warn("Failed to persist ad settings", zap.Error(err))
	}
}

func (s *Service) maybeActivate(settings Settings) {
	if s.activator == nil || !settings.ShouldActivate() {
		return
	}

	s.mu.Lock()
	if s.activated {
		s.mu.Unlock()
		return
	}
	s.activated = true
	s.mu.Unlock()

	s.activator.Activate(settings.PublisherID)
	s.logger.Info("AdSense loader activated", zap.String("publisher_id", settings.PublisherID))
}
