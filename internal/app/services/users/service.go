package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/R3E-Network/commerce_layer/internal/app/domain/user"
	"github.com/R3E-Network/commerce_layer/internal/app/storage"
	"github.com/R3E-Network/commerce_layer/pkg/clock"
	"github.com/R3E-Network/commerce_layer/pkg/idgen"
	"github.com/R3E-Network/commerce_layer/pkg/logger"
)

// ErrInvalidUser marks user input the service refuses to store.
var ErrInvalidUser = errors.New("invalid user")

// Service manages user records.
type Service struct {
	store storage.UserStore
	ids   idgen.Generator
	now   clock.Func
	log   *logger.Logger
}

// Option customises a Service.
type Option func(*Service)

// WithIDGenerator overrides the identifier generator.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(s *Service) {
		if gen != nil {
			s.ids = gen
		}
	}
}

// WithClock overrides the time source.
func WithClock(fn clock.Func) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// New constructs a user service.
func New(store storage.UserStore, log *logger.Logger, opts ...Option) *Service {
	if log == nil {
		log = logger.NewDefault("users")
	}
	s := &Service{store: store, ids: idgen.NewSequence(1), now: clock.System, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every user in insertion order.
func (s *Service) List(ctx context.Context) ([]user.User, error) {
	return s.store.ListUsers(ctx)
}

// Get fetches a user by identifier.
func (s *Service) Get(ctx context.Context, id string) (user.User, error) {
	return s.store.GetUser(ctx, id)
}

// Create registers a new user.
func (s *Service) Create(ctx context.Context, name, email string, age int) (user.User, error) {
	u := user.User{Name: name, Email: email, Age: age}
	if err := validate(u); err != nil {
		return user.User{}, err
	}

	id, err := idgen.Unused(s.ids, func(id string) (bool, error) {
		_, err := s.store.GetUser(ctx, id)
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return err == nil, err
	})
	if err != nil {
		return user.User{}, fmt.Errorf("allocate user id: %w", err)
	}

	now := s.now()
	u.ID = id
	u.CreatedAt = now
	u.UpdatedAt = now
	if err := s.store.PutUser(ctx, u); err != nil {
		return user.User{}, err
	}
	s.log.WithField("user_id", u.ID).Info("user created")
	return u, nil
}

// Replace overwrites name, email and age of an existing user.
func (s *Service) Replace(ctx context.Context, id, name, email string, age int) (user.User, error) {
	existing, err := s.store.GetUser(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	updated := existing
	updated.Name, updated.Email, updated.Age = name, email, age
	if err := validate(updated); err != nil {
		return user.User{}, err
	}
	updated.UpdatedAt = clock.After(existing.UpdatedAt, s.now())
	if err := s.store.PutUser(ctx, updated); err != nil {
		return user.User{}, err
	}
	s.log.WithField("user_id", id).Info("user replaced")
	return updated, nil
}

// Patch merges the fields present in patch into an existing user.
func (s *Service) Patch(ctx context.Context, id string, patch user.Patch) (user.User, error) {
	existing, err := s.store.GetUser(ctx, id)
	if err != nil {
		return user.User{}, err
	}
	updated := existing
	patch.Apply(&updated)
	if err := validate(updated); err != nil {
		return user.User{}, err
	}
	updated.UpdatedAt = clock.After(existing.UpdatedAt, s.now())
	if err := s.store.PutUser(ctx, updated); err != nil {
		return user.User{}, err
	}
	s.log.WithField("user_id", id).Info("user patched")
	return updated, nil
}

// Delete removes a user and reports whether it existed. Orders owned by the
// user are left in place.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.store.DeleteUser(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.WithField("user_id", id).Info("user deleted")
	}
	return deleted, nil
}

func validate(u user.User) error {
	if strings.TrimSpace(u.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidUser)
	}
	if !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: email %q is malformed", ErrInvalidUser, u.Email)
	}
	if u.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", ErrInvalidUser)
	}
	return nil
}
