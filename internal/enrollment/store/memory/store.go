// Package memory is the in-process enrollment engine used for local runs and tests.
//
// Transactions are serialised behind one mutex. Each transaction works on a copy
// of the state that replaces the live state only when fn succeeds, so a failed
// transition leaves nothing behind.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"trainhub/internal/enrollment/models"
	"trainhub/internal/enrollment/service"
	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
	"trainhub/pkg/platform/sentinel"
)

const defaultTxTimeout = 5 * time.Second

type state struct {
	users         map[id.UserID]models.User
	sessions      map[id.SessionID]models.Session
	interests     map[id.InterestID]models.Interest
	registrations map[id.RegistrationID]models.Registration
}

func newState() *state {
	return &state{
		users:         make(map[id.UserID]models.User),
		sessions:      make(map[id.SessionID]models.Session),
		interests:     make(map[id.InterestID]models.Interest),
		registrations: make(map[id.RegistrationID]models.Registration),
	}
}

// clone copies the maps. Records are values; the pointer fields they carry are
// replaced, never mutated in place, by the lifecycle code.
func (st *state) clone() *state {
	c := &state{
		users:         make(map[id.UserID]models.User, len(st.users)),
		sessions:      make(map[id.SessionID]models.Session, len(st.sessions)),
		interests:     make(map[id.InterestID]models.Interest, len(st.interests)),
		registrations: make(map[id.RegistrationID]models.Registration, len(st.registrations)),
	}
	for k, v := range st.users {
		v.Roles = append([]id.Role(nil), v.Roles...)
		c.users[k] = v
	}
	for k, v := range st.sessions {
		c.sessions[k] = v
	}
	for k, v := range st.interests {
		c.interests[k] = v
	}
	for k, v := range st.registrations {
		c.registrations[k] = v
	}
	return c
}

// Store is the in-memory engine. It implements service.StoreTx.
type Store struct {
	mu      sync.Mutex
	state   *state
	timeout time.Duration
}

type Option func(*Store)

// WithTimeout sets the transaction timeout applied when the caller has no deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.timeout = d
	}
}

func New(opts ...Option) *Store {
	s := &Store{state: newState(), timeout: defaultTxTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunInTx runs fn against a private copy of the state and publishes the copy on success.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, store service.Store) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline && s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	work := s.state.clone()
	if err := fn(ctx, &txStore{st: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	s.state = work
	return nil
}

// PutUser inserts or replaces a user. Users are provisioned by the account system.
func (s *Store) PutUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	u.Roles = append([]id.Role(nil), user.Roles...)
	s.state.users[u.ID] = u
}

// PutSession inserts or replaces a session. Sessions are managed by the catalog.
func (s *Store) PutSession(session *models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.sessions[session.ID] = *session
}

// txStore implements service.Store over a transaction's working copy.
type txStore struct {
	st *state
}

func (t *txStore) LockUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	return t.GetUser(ctx, userID)
}

func (t *txStore) GetUser(_ context.Context, userID id.UserID) (*models.User, error) {
	u, ok := t.st.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	u.Roles = append([]id.Role(nil), u.Roles...)
	return &u, nil
}

func (t *txStore) UpdateUser(_ context.Context, user *models.User) error {
	if _, ok := t.st.users[user.ID]; !ok {
		return sentinel.ErrNotFound
	}
	t.st.users[user.ID] = *user
	return nil
}

func (t *txStore) DeleteUser(_ context.Context, userID id.UserID) error {
	if _, ok := t.st.users[userID]; !ok {
		return sentinel.ErrNotFound
	}
	for k, v := range t.st.interests {
		if v.UserID == userID {
			delete(t.st.interests, k)
		}
	}
	for k, v := range t.st.registrations {
		if v.UserID == userID {
			delete(t.st.registrations, k)
		}
	}
	delete(t.st.users, userID)
	return nil
}

func (t *txStore) LockSession(_ context.Context, sessionID id.SessionID) (*models.Session, error) {
	sess, ok := t.st.sessions[sessionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &sess, nil
}

func (t *txStore) CountActiveRegistrations(_ context.Context, sessionID id.SessionID) (int, error) {
	n := 0
	for _, r := range t.st.registrations {
		if r.SessionID == sessionID && r.Status.IsActive() {
			n++
		}
	}
	return n, nil
}

func (t *txStore) CreateInterest(_ context.Context, in *models.Interest) error {
	if _, ok := t.st.interests[in.ID]; ok {
		return sentinel.ErrConflict
	}
	if in.FormationID != nil && in.Status.IsActive() {
		for _, existing := range t.st.interests {
			if existing.UserID == in.UserID && existing.Status.IsActive() && existing.Targets(*in.FormationID) {
				return sentinel.ErrConflict
			}
		}
	}
	t.st.interests[in.ID] = *in
	return nil
}

func (t *txStore) UpdateInterest(_ context.Context, in *models.Interest) error {
	if _, ok := t.st.interests[in.ID]; !ok {
		return sentinel.ErrNotFound
	}
	t.st.interests[in.ID] = *in
	return nil
}

func (t *txStore) GetInterest(_ context.Context, interestID id.InterestID) (*models.Interest, error) {
	in, ok := t.st.interests[interestID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &in, nil
}

func (t *txStore) DeleteInterest(_ context.Context, interestID id.InterestID) error {
	if _, ok := t.st.interests[interestID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(t.st.interests, interestID)
	for k, r := range t.st.registrations {
		if r.InterestID != nil && *r.InterestID == interestID {
			r.InterestID = nil
			t.st.registrations[k] = r
		}
	}
	return nil
}

func (t *txStore) FindActiveInterest(_ context.Context, userID id.UserID, formationID id.FormationID) (*models.Interest, error) {
	for _, in := range t.st.interests {
		if in.UserID == userID && in.Status.IsActive() && in.Targets(formationID) {
			return &in, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (t *txStore) ListInterestsByUser(_ context.Context, userID id.UserID) ([]*models.Interest, error) {
	var out []*models.Interest
	for _, in := range t.st.interests {
		if in.UserID == userID {
			out = append(out, &in)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ExpressedAt.Before(out[j].ExpressedAt)
	})
	return out, nil
}

func (t *txStore) CreateRegistration(_ context.Context, r *models.Registration) error {
	if _, ok := t.st.registrations[r.ID]; ok {
		return sentinel.ErrConflict
	}
	for _, existing := range t.st.registrations {
		if existing.UserID == r.UserID && existing.FormationID == r.FormationID && existing.Status != models.RegistrationCancelled {
			return sentinel.ErrConflict
		}
	}
	t.st.registrations[r.ID] = *r
	return nil
}

func (t *txStore) UpdateRegistration(_ context.Context, r *models.Registration) error {
	if _, ok := t.st.registrations[r.ID]; !ok {
		return sentinel.ErrNotFound
	}
	t.st.registrations[r.ID] = *r
	return nil
}

func (t *txStore) GetRegistration(_ context.Context, registrationID id.RegistrationID) (*models.Registration, error) {
	r, ok := t.st.registrations[registrationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &r, nil
}

func (t *txStore) HasRegistrationFor(_ context.Context, userID id.UserID, formationID id.FormationID) (bool, error) {
	for _, r := range t.st.registrations {
		if r.UserID == userID && r.FormationID == formationID && r.Status != models.RegistrationCancelled {
			return true, nil
		}
	}
	return false, nil
}

func (t *txStore) ListRegistrationsByUser(_ context.Context, userID id.UserID) ([]*models.Registration, error) {
	var out []*models.Registration
	for _, r := range t.st.registrations {
		if r.UserID == userID {
			out = append(out, &r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegisteredAt.Before(out[j].RegisteredAt)
	})
	return out, nil
}

var _ service.StoreTx = (*Store)(nil)
