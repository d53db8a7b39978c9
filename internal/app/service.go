package app

import (
	"fmt"
	"sync"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/semla/internal/auth"
	"github.com/shrimpsizemoose/semla/internal/catalog"
	"github.com/shrimpsizemoose/semla/internal/models"
	"github.com/shrimpsizemoose/semla/internal/protection"
	"github.com/shrimpsizemoose/semla/internal/roster"
	"github.com/shrimpsizemoose/semla/internal/store"
)

// Service is the application context that replaces the module-scope
// state of the platform this reimplements. It owns the store, the
// in-memory snapshot of all three collections, the single transient
// session, and the content-protection policy.
//
// Every mutation clones the snapshot, applies the change, persists the
// clone, and only then swaps it in. A persist failure is returned to
// the caller for retry and never corrupts the in-memory state.
type Service struct {
	Config     *Config
	Store      store.EntityStore
	Session    *auth.Session
	Protection *protection.Policy

	mu   sync.Mutex
	snap *models.Snapshot
}

func NewService(configPath string) (*Service, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	entityStore, err := NewStore(config.Database.DSN, config.Database.MigrationsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to init store: %w", err)
	}

	return &Service{
		Config:     config,
		Store:      entityStore,
		Session:    &auth.Session{},
		Protection: protection.NewPolicy(config.Protection.BlockedChords),
	}, nil
}

// Init restores the collections from durable storage, or seeds the
// built-in administrators when no prior state exists.
func (s *Service) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.Store.Load()
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if snap == nil {
		snap = models.SeedSnapshot()
		if err := s.Store.Persist(snap); err != nil {
			return fmt.Errorf("failed to persist seed snapshot: %w", err)
		}
		logger.Info.Printf("No prior state found, seeded %d administrator accounts", len(snap.Accounts))
	}

	s.snap = snap
	return nil
}

// Teardown performs a final persist, closes the store and clears the
// session.
func (s *Service) Teardown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	if s.snap != nil {
		if err := s.Store.Persist(s.snap); err != nil {
			errs = append(errs, fmt.Errorf("final persist: %w", err))
		}
	}
	if err := s.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}

	s.Session.Logout()
	s.Protection.Teardown()

	if len(errs) > 0 {
		return fmt.Errorf("errors while closing: %v", errs)
	}
	return nil
}

// mutate runs apply on a clone of the snapshot and swaps the clone in
// only after it has been persisted.
func (s *Service) mutate(apply func(*models.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snap.Clone()
	if err := apply(next); err != nil {
		return err
	}
	if err := s.Store.Persist(next); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}
	s.snap = next
	return nil
}

// Login authenticates against the live accounts collection and, on
// success, starts the single session and installs the protection
// policy. The returned view is where the gate routes the account.
func (s *Service) Login(handle, secret string) (*models.Account, auth.View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := auth.Authenticate(handle, secret, s.snap.Accounts)
	if err != nil {
		return nil, "", err
	}

	s.Session.Start(account)
	s.Protection.Install()
	return account, auth.ResolveView(*account), nil
}

// Logout clears the session and tears the protection policy down. Pure
// in-memory, no store interaction.
func (s *Service) Logout() {
	s.Session.Logout()
	s.Protection.Teardown()
}

// CurrentView re-reads the session account from the snapshot, so an
// approval or removal that happened after login is reflected. A removed
// account resolves to no view at all.
func (s *Service) CurrentView() (auth.View, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	held := s.Session.Account()
	if held == nil {
		return "", false
	}
	for _, account := range s.snap.Accounts {
		if account.ID == held.ID {
			return auth.ResolveView(account), true
		}
	}
	return "", false
}

func (s *Service) Register(name, handle, secret string, role models.Role) (models.Account, error) {
	account, err := roster.Register(name, handle, secret, role)
	if err != nil {
		return models.Account{}, err
	}

	err = s.mutate(func(snap *models.Snapshot) error {
		snap.Accounts = append(snap.Accounts, account)
		return nil
	})
	if err != nil {
		return models.Account{}, err
	}
	return account, nil
}

func (s *Service) Approve(accountID string) error {
	return s.mutate(func(snap *models.Snapshot) error {
		snap.Accounts = roster.Approve(accountID, snap.Accounts)
		return nil
	})
}

func (s *Service) Remove(accountID string) error {
	return s.mutate(func(snap *models.Snapshot) error {
		snap.Accounts = roster.Remove(accountID, snap.Accounts)
		return nil
	})
}

func (s *Service) Publish(teacherID, title, videoURL, pdfURL string) (models.CoursePackage, error) {
	var published models.CoursePackage
	err := s.mutate(func(snap *models.Snapshot) error {
		teacher, ok := findAccount(teacherID, snap.Accounts)
		if !ok {
			return catalog.ErrTeacherNotApproved
		}
		course, courses, err := catalog.Publish(teacher, title, videoURL, pdfURL, snap.Courses)
		if err != nil {
			return err
		}
		published = course
		snap.Courses = courses
		return nil
	})
	if err != nil {
		return models.CoursePackage{}, err
	}
	return published, nil
}

func (s *Service) Unpublish(courseID, teacherID string) error {
	return s.mutate(func(snap *models.Snapshot) error {
		courses, err := catalog.Unpublish(courseID, teacherID, snap.Courses)
		if err != nil {
			return err
		}
		snap.Courses = courses
		return nil
	})
}

// Enroll resolves a course code for a joining student. Read-only.
func (s *Service) Enroll(code string) (*models.CoursePackage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return catalog.Enroll(code, s.snap.Courses)
}

// Snapshot returns a deep copy of the current collections for read-only
// use by the presentation and ops surfaces.
func (s *Service) Snapshot() *models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

func findAccount(id string, accounts []models.Account) (models.Account, bool) {
	for _, account := range accounts {
		if account.ID == id {
			return account, true
		}
	}
	return models.Account{}, false
}
