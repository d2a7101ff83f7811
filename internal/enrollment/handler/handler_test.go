package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"trainhub/internal/enrollment/handler/mocks"
	"trainhub/internal/enrollment/lifecycle"
	"trainhub/internal/enrollment/models"
	"trainhub/internal/enrollment/policy"
	"trainhub/internal/enrollment/service"
	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
	"trainhub/pkg/platform/middleware/auth"
	"trainhub/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/service-mocks.go -package=mocks Service

// tokenTable resolves bearer tokens to fixed claims.
type tokenTable map[string]*auth.JWTClaims

func (t tokenTable) ValidateToken(token string) (*auth.JWTClaims, error) {
	if c, ok := t[token]; ok {
		return c, nil
	}
	return nil, errors.New("unknown token")
}

type EnrollmentHandlerSuite struct {
	suite.Suite
	svc        *mocks.MockService
	router     chi.Router
	consultant id.UserID
	rh         id.UserID
}

func TestEnrollmentHandlerSuite(t *testing.T) {
	suite.Run(t, new(EnrollmentHandlerSuite))
}

func (s *EnrollmentHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.svc = mocks.NewMockService(ctrl)
	s.consultant = id.UserID(uuid.New())
	s.rh = id.UserID(uuid.New())

	tokens := tokenTable{
		"consultant-token": {UserID: s.consultant.String(), Roles: []string{"consultant"}},
		"rh-token":         {UserID: s.rh.String(), Roles: []string{"rh"}},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.router = chi.NewRouter()
	New(s.svc, logger, tokens, 0).Register(s.router)
}

func (s *EnrollmentHandlerSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	req := testutil.WithBearer(testutil.NewJSONRequest(s.T(), method, path, body), token)
	return testutil.DoRequest(s.router, req)
}

func (s *EnrollmentHandlerSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	return testutil.DecodeJSON(s.T(), w)
}

func (s *EnrollmentHandlerSuite) TestAuthentication() {
	s.Run("missing token is rejected", func() {
		w := s.do(http.MethodPost, "/interests", "", map[string]string{"priority": "P1"})
		s.Equal(http.StatusUnauthorized, w.Code)
	})

	s.Run("unknown token is rejected", func() {
		w := s.do(http.MethodGet, "/interests/"+uuid.NewString(), "forged", nil)
		s.Equal(http.StatusUnauthorized, w.Code)
	})
}

func (s *EnrollmentHandlerSuite) TestExpressInterest() {
	formationID := id.FormationID(uuid.New())

	s.Run("creates an interest for the caller", func() {
		interest := &models.Interest{
			ID:          id.InterestID(uuid.New()),
			UserID:      s.consultant,
			FormationID: &formationID,
			Priority:    id.PriorityP1,
			Status:      models.InterestPending,
			ExpressedAt: time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC),
		}
		s.svc.EXPECT().ExpressInterest(gomock.Any(), policy.Actor{ID: s.consultant, Roles: []id.Role{id.RoleConsultant}}, service.ExpressInterestRequest{
			FormationID: &formationID,
			Priority:    id.PriorityP1,
		}).Return(interest, nil)

		w := s.do(http.MethodPost, "/interests", "consultant-token", map[string]string{
			"formation_id": formationID.String(),
			"priority":     "p1",
		})

		s.Equal(http.StatusCreated, w.Code)
		body := s.decode(w)
		s.Equal(interest.ID.String(), body["id"])
		s.Equal("P1", body["priority"])
		s.Equal("pending", body["status"])
	})

	s.Run("invalid priority never reaches the service", func() {
		w := s.do(http.MethodPost, "/interests", "consultant-token", map[string]string{"priority": "P9", "custom_title": "Go"})
		testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, "invalid_input")
	})

	s.Run("unknown fields are rejected", func() {
		w := s.do(http.MethodPost, "/interests", "consultant-token", map[string]string{"priority": "P1", "tier": "gold"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("quota exhaustion is a conflict", func() {
		s.svc.EXPECT().ExpressInterest(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeQuotaExceeded, "P1 quota already used this year"))

		w := s.do(http.MethodPost, "/interests", "consultant-token", map[string]string{"custom_title": "Rust", "priority": "P1"})
		s.Equal(http.StatusConflict, w.Code)
		body := s.decode(w)
		s.Equal("quota_exceeded", body["error"])
		s.Equal("P1 quota already used this year", body["error_description"])
	})
}

func (s *EnrollmentHandlerSuite) TestDecideInterest() {
	interestID := id.InterestID(uuid.New())
	path := "/interests/" + interestID.String() + "/decision"

	s.Run("passes action and capacity through", func() {
		s.svc.EXPECT().DecideInterest(gomock.Any(), gomock.Any(), interestID, lifecycle.ActionApprove, lifecycle.ActingCoach).
			Return(&models.Interest{ID: interestID, Status: models.InterestApproved, Priority: id.PriorityP2}, nil)

		w := s.do(http.MethodPost, path, "consultant-token", map[string]string{"action": "approve", "as": "coach"})
		s.Equal(http.StatusOK, w.Code)
		s.Equal("approved", s.decode(w)["status"])
	})

	s.Run("rejects unknown capacity", func() {
		w := s.do(http.MethodPost, path, "rh-token", map[string]string{"action": "approve", "as": "manager"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("rejects malformed id", func() {
		w := s.do(http.MethodPost, "/interests/nope/decision", "rh-token", map[string]string{"action": "approve", "as": "rh"})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("terminal interest is an invalid transition", func() {
		s.svc.EXPECT().DecideInterest(gomock.Any(), gomock.Any(), interestID, lifecycle.ActionApprove, lifecycle.ActingRH).
			Return(nil, dErrors.New(dErrors.CodeInvalidTransition, "interest is rejected"))

		w := s.do(http.MethodPost, path, "rh-token", map[string]string{"action": "approve", "as": "rh"})
		testutil.AssertStatusAndError(s.T(), w, http.StatusConflict, "invalid_transition")
	})
}

func (s *EnrollmentHandlerSuite) TestWithdrawAndGetInterest() {
	interestID := id.InterestID(uuid.New())
	s.svc.EXPECT().WithdrawInterest(gomock.Any(), gomock.Any(), interestID).
		Return(&models.Interest{ID: interestID, Status: models.InterestWithdrawn}, nil)
	w := s.do(http.MethodPost, "/interests/"+interestID.String()+"/withdraw", "consultant-token", nil)
	s.Equal(http.StatusOK, w.Code)

	s.svc.EXPECT().GetInterest(gomock.Any(), gomock.Any(), interestID).
		Return(nil, dErrors.New(dErrors.CodeForbidden, "not allowed to view this interest"))
	w = s.do(http.MethodGet, "/interests/"+interestID.String(), "consultant-token", nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *EnrollmentHandlerSuite) TestCreateRegistration() {
	sessionID := id.SessionID(uuid.New())
	other := id.UserID(uuid.New())

	s.Run("rh registers someone else", func() {
		s.svc.EXPECT().CreateRegistration(gomock.Any(), policy.Actor{ID: s.rh, Roles: []id.Role{id.RoleRH}}, service.CreateRegistrationRequest{
			SessionID: sessionID,
			Priority:  id.PriorityP3,
			UserID:    &other,
		}).Return(&models.Registration{ID: id.RegistrationID(uuid.New()), UserID: other, SessionID: sessionID, Priority: id.PriorityP3, Status: models.RegistrationPending}, nil)

		w := s.do(http.MethodPost, "/registrations", "rh-token", map[string]string{
			"session_id": sessionID.String(),
			"priority":   "P3",
			"user_id":    other.String(),
		})
		s.Equal(http.StatusCreated, w.Code)
		s.Equal(other.String(), s.decode(w)["user_id"])
	})

	s.Run("priority may be omitted when converting", func() {
		s.svc.EXPECT().CreateRegistration(gomock.Any(), gomock.Any(), service.CreateRegistrationRequest{SessionID: sessionID}).
			Return(&models.Registration{ID: id.RegistrationID(uuid.New()), SessionID: sessionID, Priority: id.PriorityP1, Status: models.RegistrationValidated}, nil)

		w := s.do(http.MethodPost, "/registrations", "consultant-token", map[string]string{"session_id": sessionID.String()})
		s.Equal(http.StatusCreated, w.Code)
		s.Equal("P1", s.decode(w)["priority"])
	})

	s.Run("invalid priority never reaches the service", func() {
		w := s.do(http.MethodPost, "/registrations", "consultant-token", map[string]string{
			"session_id": sessionID.String(),
			"priority":   "P7",
		})
		testutil.AssertStatusAndError(s.T(), w, http.StatusBadRequest, "invalid_input")
	})

	s.Run("full session is a conflict", func() {
		s.svc.EXPECT().CreateRegistration(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeCapacityExceeded, "session is full"))

		w := s.do(http.MethodPost, "/registrations", "consultant-token", map[string]string{
			"session_id": sessionID.String(),
			"priority":   "P3",
		})
		testutil.AssertStatusAndError(s.T(), w, http.StatusConflict, "capacity_exceeded")
	})

	s.Run("missing session id", func() {
		w := s.do(http.MethodPost, "/registrations", "consultant-token", map[string]string{"priority": "P3"})
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *EnrollmentHandlerSuite) TestDecideRegistration() {
	registrationID := id.RegistrationID(uuid.New())
	path := "/registrations/" + registrationID.String() + "/decision"

	s.svc.EXPECT().DecideRegistration(gomock.Any(), gomock.Any(), registrationID, lifecycle.ActionCancel).
		Return(&models.Registration{ID: registrationID, Status: models.RegistrationCancelled}, nil)
	w := s.do(http.MethodPost, path, "consultant-token", map[string]string{"action": "cancel"})
	s.Equal(http.StatusOK, w.Code)
	s.Equal("cancelled", s.decode(w)["status"])

	w = s.do(http.MethodPost, path, "consultant-token", map[string]string{"action": "approve"})
	s.Equal(http.StatusBadRequest, w.Code)

	s.svc.EXPECT().GetRegistration(gomock.Any(), gomock.Any(), registrationID).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "registration not found"))
	w = s.do(http.MethodGet, "/registrations/"+registrationID.String(), "consultant-token", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *EnrollmentHandlerSuite) TestGetLedger() {
	s.svc.EXPECT().GetLedger(gomock.Any(), gomock.Any(), s.consultant).
		Return(models.QuotaLedger{P1Used: 1}, nil)

	w := s.do(http.MethodGet, "/users/"+s.consultant.String()+"/quota", "consultant-token", nil)
	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal(float64(1), body["p1_used"])
	s.Equal(float64(0), body["p2_used"])
}

func (s *EnrollmentHandlerSuite) TestAdminRoutes() {
	userID := id.UserID(uuid.New())

	s.Run("non rh callers are forbidden before the service", func() {
		w := s.do(http.MethodPost, "/admin/users/"+userID.String()+"/archive", "consultant-token", nil)
		s.Equal(http.StatusForbidden, w.Code)
	})

	s.Run("archive returns the cascade summary", func() {
		s.svc.EXPECT().ArchiveUser(gomock.Any(), gomock.Any(), userID).Return(&service.ArchiveResult{
			User:                   &models.User{ID: userID, Archived: true},
			WithdrawnInterests:     2,
			CancelledRegistrations: 1,
		}, nil)

		w := s.do(http.MethodPost, "/admin/users/"+userID.String()+"/archive", "rh-token", nil)
		s.Equal(http.StatusOK, w.Code)
		body := s.decode(w)
		s.Equal(float64(2), body["withdrawn_interests"])
		s.Equal(float64(1), body["cancelled_registrations"])
	})

	s.Run("delete user", func() {
		s.svc.EXPECT().DeleteUser(gomock.Any(), gomock.Any(), userID).Return(nil)
		w := s.do(http.MethodDelete, "/admin/users/"+userID.String(), "rh-token", nil)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("delete interest", func() {
		interestID := id.InterestID(uuid.New())
		s.svc.EXPECT().DeleteInterest(gomock.Any(), gomock.Any(), interestID).Return(nil)
		w := s.do(http.MethodDelete, "/admin/interests/"+interestID.String(), "rh-token", nil)
		s.Equal(http.StatusNoContent, w.Code)
	})

	s.Run("toggle coach validation only", func() {
		s.svc.EXPECT().SetCoachValidationOnly(gomock.Any(), gomock.Any(), true).Return(nil)
		w := s.do(http.MethodPut, "/admin/settings/coach-validation-only", "rh-token", map[string]bool{"enabled": true})
		s.Equal(http.StatusOK, w.Code)
		s.Equal(true, s.decode(w)["coach_validation_only"])

		s.svc.EXPECT().CoachValidationOnly(gomock.Any()).Return(true, nil)
		w = s.do(http.MethodGet, "/admin/settings/coach-validation-only", "rh-token", nil)
		s.Equal(http.StatusOK, w.Code)
	})

	s.Run("toggle requires enabled", func() {
		w := s.do(http.MethodPut, "/admin/settings/coach-validation-only", "rh-token", map[string]string{})
		s.Equal(http.StatusBadRequest, w.Code)
	})

	s.Run("internal errors hide their cause", func() {
		s.svc.EXPECT().DeleteUser(gomock.Any(), gomock.Any(), userID).
			Return(dErrors.Wrap(errors.New("pq: connection reset"), dErrors.CodeInternal, "persistence failure"))
		w := s.do(http.MethodDelete, "/admin/users/"+userID.String(), "rh-token", nil)
		s.Equal(http.StatusInternalServerError, w.Code)
		s.NotContains(w.Body.String(), "connection reset")
	})
}
