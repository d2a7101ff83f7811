//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"trainhub/internal/enrollment/lifecycle"
	"trainhub/internal/enrollment/models"
	"trainhub/internal/enrollment/policy"
	"trainhub/internal/enrollment/service"
	pgstore "trainhub/internal/enrollment/store/postgres"
	"trainhub/internal/settings"
	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
	"trainhub/pkg/platform/audit/publisher"
	auditpg "trainhub/pkg/platform/audit/store/postgres"
	"trainhub/pkg/testutil/containers"
)

type PostgresEngineSuite struct {
	suite.Suite
	ctx     context.Context
	pg      *containers.PostgresContainer
	store   *pgstore.Store
	outbox  *auditpg.Store
	svc     *service.Service
	rh      *models.User
	session *models.Session
}

func TestPostgresEngineSuite(t *testing.T) {
	suite.Run(t, new(PostgresEngineSuite))
}

func (s *PostgresEngineSuite) SetupSuite() {
	s.ctx = context.Background()
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = pgstore.New(s.pg.DB)
	s.outbox = auditpg.New(s.pg.DB)
}

func (s *PostgresEngineSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(s.ctx, "outbox", "registrations", "interests", "sessions", "users"))

	svc, err := service.New(pgstore.NewTx(s.pg.DB, 5*time.Second), settings.NewStatic(false),
		service.WithAuditPublisher(publisher.New(s.outbox)),
	)
	s.Require().NoError(err)
	s.svc = svc

	s.rh = s.seedUser(id.RoleRH)
	s.session = s.seedSession(id.FormationID(uuid.New()), 1)
}

func (s *PostgresEngineSuite) seedUser(roles ...id.Role) *models.User {
	u := &models.User{ID: id.UserID(uuid.New()), Roles: roles}
	s.Require().NoError(s.store.UpsertUser(s.ctx, u))
	return u
}

func (s *PostgresEngineSuite) seedSession(formationID id.FormationID, capacity int) *models.Session {
	sess := &models.Session{ID: id.SessionID(uuid.New()), FormationID: formationID, Capacity: capacity, StartDate: time.Now().AddDate(0, 1, 0).UTC()}
	s.Require().NoError(s.store.UpsertSession(s.ctx, sess))
	return sess
}

func actorOf(u *models.User) policy.Actor {
	return policy.Actor{ID: u.ID, Roles: u.Roles}
}

func (s *PostgresEngineSuite) outboxSize() int {
	entries, err := s.outbox.FetchUnpublished(s.ctx, 1000)
	s.Require().NoError(err)
	return len(entries)
}

func (s *PostgresEngineSuite) TestInterestRoundTripWritesOutbox() {
	user := s.seedUser(id.RoleConsultant)
	formationID := id.FormationID(uuid.New())

	in, err := s.svc.ExpressInterest(s.ctx, actorOf(user), service.ExpressInterestRequest{FormationID: &formationID, Priority: id.PriorityP1})
	s.Require().NoError(err)

	stored, err := s.store.GetInterest(s.ctx, in.ID)
	s.Require().NoError(err)
	s.Equal(models.InterestPending, stored.Status)
	s.Equal(formationID, *stored.FormationID)

	ledger, err := s.svc.GetLedger(s.ctx, actorOf(user), user.ID)
	s.Require().NoError(err)
	s.Equal(1, ledger.P1Used)
	s.Equal(1, s.outboxSize())

	_, err = s.svc.ExpressInterest(s.ctx, actorOf(user), service.ExpressInterestRequest{FormationID: &formationID, Priority: id.PriorityP3})
	s.Equal(dErrors.CodeDuplicateInterest, dErrors.CodeOf(err))
	s.Equal(1, s.outboxSize(), "a failed transition leaves no audit row")

	_, err = s.svc.WithdrawInterest(s.ctx, actorOf(user), in.ID)
	s.Require().NoError(err)
	ledger, err = s.svc.GetLedger(s.ctx, actorOf(user), user.ID)
	s.Require().NoError(err)
	s.Equal(models.QuotaLedger{}, ledger)
	s.Equal(2, s.outboxSize())
}

func (s *PostgresEngineSuite) TestConversionAndArchive() {
	user := s.seedUser(id.RoleConsultant)
	big := s.seedSession(id.FormationID(uuid.New()), 10)

	in, err := s.svc.ExpressInterest(s.ctx, actorOf(user), service.ExpressInterestRequest{FormationID: &big.FormationID, Priority: id.PriorityP2})
	s.Require().NoError(err)
	_, err = s.svc.DecideInterest(s.ctx, actorOf(s.rh), in.ID, lifecycle.ActionApprove, lifecycle.ActingRH)
	s.Require().NoError(err)

	reg, err := s.svc.CreateRegistration(s.ctx, actorOf(user), service.CreateRegistrationRequest{SessionID: big.ID})
	s.Require().NoError(err)
	s.Equal(models.RegistrationValidated, reg.Status)
	s.True(reg.QuotaReserved)

	stored, err := s.store.GetRegistration(s.ctx, reg.ID)
	s.Require().NoError(err)
	s.Require().NotNil(stored.InterestID)
	s.Equal(in.ID, *stored.InterestID)

	res, err := s.svc.ArchiveUser(s.ctx, actorOf(s.rh), user.ID)
	s.Require().NoError(err)
	s.Equal(1, res.CancelledRegistrations)

	archived, err := s.store.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.True(archived.Archived)
	s.Equal(models.QuotaLedger{}, archived.Ledger)

	interests, err := s.store.ListInterestsByUser(s.ctx, user.ID)
	s.Require().NoError(err)
	registrations, err := s.store.ListRegistrationsByUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(models.ExpectedLedger(interests, registrations), archived.Ledger)
}

func (s *PostgresEngineSuite) TestPendingInterestBlocksRegistration() {
	user := s.seedUser(id.RoleConsultant)
	big := s.seedSession(id.FormationID(uuid.New()), 10)

	_, err := s.svc.ExpressInterest(s.ctx, actorOf(user), service.ExpressInterestRequest{FormationID: &big.FormationID, Priority: id.PriorityP1})
	s.Require().NoError(err)

	_, err = s.svc.CreateRegistration(s.ctx, actorOf(user), service.CreateRegistrationRequest{SessionID: big.ID, Priority: id.PriorityP1})
	s.Equal(dErrors.CodeInvalidTransition, dErrors.CodeOf(err))

	registrations, err := s.store.ListRegistrationsByUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Empty(registrations)
}

func (s *PostgresEngineSuite) TestArchiveLeavesHistoryUntouched() {
	user := s.seedUser(id.RoleConsultant)
	course := s.seedSession(id.FormationID(uuid.New()), 10)
	formationID := id.FormationID(uuid.New())

	in, err := s.svc.ExpressInterest(s.ctx, actorOf(user), service.ExpressInterestRequest{FormationID: &formationID, Priority: id.PriorityP2})
	s.Require().NoError(err)
	_, err = s.svc.DecideInterest(s.ctx, actorOf(s.rh), in.ID, lifecycle.ActionReject, lifecycle.ActingRH)
	s.Require().NoError(err)

	reg, err := s.svc.CreateRegistration(s.ctx, actorOf(user), service.CreateRegistrationRequest{SessionID: course.ID, Priority: id.PriorityP1})
	s.Require().NoError(err)
	_, err = s.svc.DecideRegistration(s.ctx, actorOf(s.rh), reg.ID, lifecycle.ActionValidate)
	s.Require().NoError(err)
	_, err = s.svc.DecideRegistration(s.ctx, actorOf(s.rh), reg.ID, lifecycle.ActionComplete)
	s.Require().NoError(err)

	interestBefore, err := s.store.GetInterest(s.ctx, in.ID)
	s.Require().NoError(err)
	regBefore, err := s.store.GetRegistration(s.ctx, reg.ID)
	s.Require().NoError(err)

	res, err := s.svc.ArchiveUser(s.ctx, actorOf(s.rh), user.ID)
	s.Require().NoError(err)
	s.Zero(res.WithdrawnInterests)
	s.Zero(res.CancelledRegistrations)

	interestAfter, err := s.store.GetInterest(s.ctx, in.ID)
	s.Require().NoError(err)
	s.Equal(models.InterestRejected, interestAfter.Status)
	s.Equal(interestBefore.DecidedAt, interestAfter.DecidedAt)
	s.Equal(interestBefore.DecidedBy, interestAfter.DecidedBy)

	regAfter, err := s.store.GetRegistration(s.ctx, reg.ID)
	s.Require().NoError(err)
	s.Equal(models.RegistrationCompleted, regAfter.Status)
	s.Equal(regBefore.DecidedAt, regAfter.DecidedAt)
	s.Equal(regBefore.DecidedBy, regAfter.DecidedBy)

	archived, err := s.store.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(models.QuotaLedger{P1Used: 1}, archived.Ledger)

	interests, err := s.store.ListInterestsByUser(s.ctx, user.ID)
	s.Require().NoError(err)
	registrations, err := s.store.ListRegistrationsByUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(models.ExpectedLedger(interests, registrations), archived.Ledger)
}

func (s *PostgresEngineSuite) TestRowLocksSerialiseLastP1Slot() {
	user := s.seedUser(id.RoleConsultant)
	const attempts = 8

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ok  int
		rej int
	)
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			formationID := id.FormationID(uuid.New())
			_, err := s.svc.ExpressInterest(s.ctx, actorOf(user), service.ExpressInterestRequest{FormationID: &formationID, Priority: id.PriorityP1})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if dErrors.HasCode(err, dErrors.CodeQuotaExceeded) {
				rej++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, ok)
	s.Equal(attempts-1, rej)
	stored, err := s.store.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(1, stored.Ledger.P1Used)
}

func (s *PostgresEngineSuite) TestRowLocksSerialiseLastSeat() {
	const attempts = 5
	users := make([]*models.User, attempts)
	for i := range users {
		users[i] = s.seedUser(id.RoleConsultant)
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		full int
	)
	for _, u := range users {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svc.CreateRegistration(s.ctx, actorOf(u), service.CreateRegistrationRequest{SessionID: s.session.ID, Priority: id.PriorityP3})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if dErrors.HasCode(err, dErrors.CodeCapacityExceeded) {
				full++
			}
		}()
	}
	wg.Wait()

	s.Equal(1, ok)
	s.Equal(attempts-1, full)
	count, err := s.store.CountActiveRegistrations(s.ctx, s.session.ID)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *PostgresEngineSuite) TestDeleteUserCascades() {
	user := s.seedUser(id.RoleConsultant)
	in, err := s.svc.ExpressInterest(s.ctx, actorOf(user), service.ExpressInterestRequest{CustomTitle: "Terraform at scale", Priority: id.PriorityP3})
	s.Require().NoError(err)

	s.Require().NoError(s.svc.DeleteUser(s.ctx, actorOf(s.rh), user.ID))

	_, err = s.svc.GetInterest(s.ctx, actorOf(s.rh), in.ID)
	s.Equal(dErrors.CodeNotFound, dErrors.CodeOf(err))
}
