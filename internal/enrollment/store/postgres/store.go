// Package postgres is the PostgreSQL enrollment engine.
//
// Concurrency relies on row locks: LockUser and LockSession take
// SELECT ... FOR UPDATE so the last P1 slot or the last seat goes to exactly one
// transaction. Partial unique indexes back the uniqueness rules.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"trainhub/internal/enrollment/models"
	id "trainhub/pkg/domain"
	"trainhub/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements service.Store on a transaction (or the pool for seeding).
type Store struct {
	q querier
}

// New returns a Store running outside any transaction. Used for provisioning users
// and sessions; lifecycle operations go through Tx.
func New(db *sql.DB) *Store {
	return &Store{q: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// isUniqueViolation recognises the unique_violation SQLSTATE from either driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

func nullUUID(p *uuid.UUID) uuid.NullUUID {
	if p == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *p, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// ---- users ----

const userColumns = `id, roles, coach_id, p1_used, p2_used, archived, archived_at`

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u          models.User
		userID     uuid.UUID
		roles      []string
		coachID    uuid.NullUUID
		archivedAt sql.NullTime
	)
	if err := row.Scan(&userID, pq.Array(&roles), &coachID, &u.Ledger.P1Used, &u.Ledger.P2Used, &u.Archived, &archivedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	u.ID = id.UserID(userID)
	u.Roles = id.ParseRoles(roles)
	if coachID.Valid {
		c := id.UserID(coachID.UUID)
		u.CoachID = &c
	}
	u.ArchivedAt = timePtr(archivedAt)
	return &u, nil
}

func (s *Store) LockUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, uuid.UUID(userID))
	return scanUser(row)
}

func (s *Store) GetUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, uuid.UUID(userID))
	return scanUser(row)
}

func rolesToStrings(roles []id.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func coachUUID(u *models.User) uuid.NullUUID {
	if u.CoachID == nil {
		return uuid.NullUUID{}
	}
	c := uuid.UUID(*u.CoachID)
	return nullUUID(&c)
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE users
		SET roles = $2, coach_id = $3, p1_used = $4, p2_used = $5, archived = $6, archived_at = $7
		WHERE id = $1
	`, uuid.UUID(u.ID), pq.Array(rolesToStrings(u.Roles)), coachUUID(u), u.Ledger.P1Used, u.Ledger.P2Used, u.Archived, nullTime(u.ArchivedAt))
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return expectOne(res, "update user")
}

// UpsertUser provisions or refreshes a user from the account system.
func (s *Store) UpsertUser(ctx context.Context, u *models.User) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO users (id, roles, coach_id, p1_used, p2_used, archived, archived_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			roles = EXCLUDED.roles,
			coach_id = EXCLUDED.coach_id
	`, uuid.UUID(u.ID), pq.Array(rolesToStrings(u.Roles)), coachUUID(u), u.Ledger.P1Used, u.Ledger.P2Used, u.Archived, nullTime(u.ArchivedAt))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (s *Store) DeleteUser(ctx context.Context, userID id.UserID) error {
	// interests and registrations go with the user (ON DELETE CASCADE)
	res, err := s.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, uuid.UUID(userID))
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return expectOne(res, "delete user")
}

// ---- sessions ----

func (s *Store) LockSession(ctx context.Context, sessionID id.SessionID) (*models.Session, error) {
	var (
		sess        models.Session
		sid, formID uuid.UUID
	)
	err := s.q.QueryRowContext(ctx, `
		SELECT id, formation_id, capacity, start_date FROM sessions WHERE id = $1 FOR UPDATE
	`, uuid.UUID(sessionID)).Scan(&sid, &formID, &sess.Capacity, &sess.StartDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("lock session: %w", err)
	}
	sess.ID = id.SessionID(sid)
	sess.FormationID = id.FormationID(formID)
	return &sess, nil
}

// UpsertSession provisions a session from the catalog.
func (s *Store) UpsertSession(ctx context.Context, sess *models.Session) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO sessions (id, formation_id, capacity, start_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			formation_id = EXCLUDED.formation_id,
			capacity = EXCLUDED.capacity,
			start_date = EXCLUDED.start_date
	`, uuid.UUID(sess.ID), uuid.UUID(sess.FormationID), sess.Capacity, sess.StartDate)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *Store) CountActiveRegistrations(ctx context.Context, sessionID id.SessionID) (int, error) {
	var n int
	err := s.q.QueryRowContext(ctx, `
		SELECT count(*) FROM registrations WHERE session_id = $1 AND status IN ('pending', 'validated')
	`, uuid.UUID(sessionID)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active registrations: %w", err)
	}
	return n, nil
}

// ---- interests ----

const interestColumns = `id, user_id, formation_id, custom_title, priority, status, coach_status,
	expressed_at, coach_validated_at, decided_at, decided_by`

func scanInterest(row rowScanner) (*models.Interest, error) {
	var (
		in                   models.Interest
		iid, uid             uuid.UUID
		formationID, decider uuid.NullUUID
		priority, status     string
		coachStatus          sql.NullString
		coachAt, decidedAt   sql.NullTime
	)
	err := row.Scan(&iid, &uid, &formationID, &in.CustomTitle, &priority, &status, &coachStatus,
		&in.ExpressedAt, &coachAt, &decidedAt, &decider)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan interest: %w", err)
	}
	in.ID = id.InterestID(iid)
	in.UserID = id.UserID(uid)
	if formationID.Valid {
		f := id.FormationID(formationID.UUID)
		in.FormationID = &f
	}
	in.Priority = id.Priority(priority)
	in.Status = models.InterestStatus(status)
	if coachStatus.Valid {
		cs := models.CoachStatus(coachStatus.String)
		in.CoachStatus = &cs
	}
	in.CoachValidatedAt = timePtr(coachAt)
	in.DecidedAt = timePtr(decidedAt)
	if decider.Valid {
		d := id.UserID(decider.UUID)
		in.DecidedBy = &d
	}
	return &in, nil
}

func interestArgs(in *models.Interest) []any {
	var formationID uuid.NullUUID
	if in.FormationID != nil {
		f := uuid.UUID(*in.FormationID)
		formationID = nullUUID(&f)
	}
	var coachStatus sql.NullString
	if in.CoachStatus != nil {
		coachStatus = sql.NullString{String: string(*in.CoachStatus), Valid: true}
	}
	var decider uuid.NullUUID
	if in.DecidedBy != nil {
		d := uuid.UUID(*in.DecidedBy)
		decider = nullUUID(&d)
	}
	return []any{
		uuid.UUID(in.ID), uuid.UUID(in.UserID), formationID, in.CustomTitle, string(in.Priority), string(in.Status),
		coachStatus, in.ExpressedAt, nullTime(in.CoachValidatedAt), nullTime(in.DecidedAt), decider,
	}
}

func (s *Store) CreateInterest(ctx context.Context, in *models.Interest) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO interests (`+interestColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, interestArgs(in)...)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert interest: %w", err)
	}
	return nil
}

func (s *Store) UpdateInterest(ctx context.Context, in *models.Interest) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE interests
		SET user_id = $2, formation_id = $3, custom_title = $4, priority = $5, status = $6, coach_status = $7,
			expressed_at = $8, coach_validated_at = $9, decided_at = $10, decided_by = $11
		WHERE id = $1
	`, interestArgs(in)...)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update interest: %w", err)
	}
	return expectOne(res, "update interest")
}

func (s *Store) GetInterest(ctx context.Context, interestID id.InterestID) (*models.Interest, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+interestColumns+` FROM interests WHERE id = $1`, uuid.UUID(interestID))
	return scanInterest(row)
}

func (s *Store) DeleteInterest(ctx context.Context, interestID id.InterestID) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM interests WHERE id = $1`, uuid.UUID(interestID))
	if err != nil {
		return fmt.Errorf("delete interest: %w", err)
	}
	return expectOne(res, "delete interest")
}

func (s *Store) FindActiveInterest(ctx context.Context, userID id.UserID, formationID id.FormationID) (*models.Interest, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT `+interestColumns+` FROM interests
		WHERE user_id = $1 AND formation_id = $2 AND status IN ('pending', 'approved')
		LIMIT 1
	`, uuid.UUID(userID), uuid.UUID(formationID))
	return scanInterest(row)
}

func (s *Store) ListInterestsByUser(ctx context.Context, userID id.UserID) ([]*models.Interest, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+interestColumns+` FROM interests WHERE user_id = $1 ORDER BY expressed_at
	`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list interests: %w", err)
	}
	defer rows.Close()

	var out []*models.Interest
	for rows.Next() {
		in, err := scanInterest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interests: %w", err)
	}
	return out, nil
}

// ---- registrations ----

const registrationColumns = `id, user_id, session_id, formation_id, priority, status, registered_at,
	interest_id, quota_reserved, decided_at, decided_by`

func scanRegistration(row rowScanner) (*models.Registration, error) {
	var (
		r                   models.Registration
		rid, uid, sid, fid  uuid.UUID
		interestID, decider uuid.NullUUID
		priority, status    string
		decidedAt           sql.NullTime
	)
	err := row.Scan(&rid, &uid, &sid, &fid, &priority, &status, &r.RegisteredAt,
		&interestID, &r.QuotaReserved, &decidedAt, &decider)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("scan registration: %w", err)
	}
	r.ID = id.RegistrationID(rid)
	r.UserID = id.UserID(uid)
	r.SessionID = id.SessionID(sid)
	r.FormationID = id.FormationID(fid)
	r.Priority = id.Priority(priority)
	r.Status = models.RegistrationStatus(status)
	if interestID.Valid {
		i := id.InterestID(interestID.UUID)
		r.InterestID = &i
	}
	r.DecidedAt = timePtr(decidedAt)
	if decider.Valid {
		d := id.UserID(decider.UUID)
		r.DecidedBy = &d
	}
	return &r, nil
}

func registrationArgs(r *models.Registration) []any {
	var interestID uuid.NullUUID
	if r.InterestID != nil {
		i := uuid.UUID(*r.InterestID)
		interestID = nullUUID(&i)
	}
	var decider uuid.NullUUID
	if r.DecidedBy != nil {
		d := uuid.UUID(*r.DecidedBy)
		decider = nullUUID(&d)
	}
	return []any{
		uuid.UUID(r.ID), uuid.UUID(r.UserID), uuid.UUID(r.SessionID), uuid.UUID(r.FormationID),
		string(r.Priority), string(r.Status), r.RegisteredAt, interestID, r.QuotaReserved,
		nullTime(r.DecidedAt), decider,
	}
}

func (s *Store) CreateRegistration(ctx context.Context, r *models.Registration) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO registrations (`+registrationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, registrationArgs(r)...)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert registration: %w", err)
	}
	return nil
}

func (s *Store) UpdateRegistration(ctx context.Context, r *models.Registration) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE registrations
		SET user_id = $2, session_id = $3, formation_id = $4, priority = $5, status = $6, registered_at = $7,
			interest_id = $8, quota_reserved = $9, decided_at = $10, decided_by = $11
		WHERE id = $1
	`, registrationArgs(r)...)
	if err != nil {
		if isUniqueViolation(err) {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("update registration: %w", err)
	}
	return expectOne(res, "update registration")
}

func (s *Store) GetRegistration(ctx context.Context, registrationID id.RegistrationID) (*models.Registration, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+registrationColumns+` FROM registrations WHERE id = $1`, uuid.UUID(registrationID))
	return scanRegistration(row)
}

func (s *Store) HasRegistrationFor(ctx context.Context, userID id.UserID, formationID id.FormationID) (bool, error) {
	var exists bool
	err := s.q.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM registrations
			WHERE user_id = $1 AND formation_id = $2 AND status <> 'cancelled'
		)
	`, uuid.UUID(userID), uuid.UUID(formationID)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return exists, nil
}

func (s *Store) ListRegistrationsByUser(ctx context.Context, userID id.UserID) ([]*models.Registration, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT `+registrationColumns+` FROM registrations WHERE user_id = $1 ORDER BY registered_at
	`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var out []*models.Registration
	for rows.Next() {
		r, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate registrations: %w", err)
	}
	return out, nil
}

func expectOne(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}
