package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"trainhub/internal/enrollment/lifecycle"
	"trainhub/internal/enrollment/models"
	"trainhub/internal/enrollment/policy"
	"trainhub/internal/enrollment/service"
	id "trainhub/pkg/domain"
	dErrors "trainhub/pkg/domain-errors"
	"trainhub/pkg/platform/httputil"
	"trainhub/pkg/platform/middleware/admin"
	"trainhub/pkg/platform/middleware/auth"
	"trainhub/pkg/platform/middleware/ratelimit"
	request "trainhub/pkg/platform/middleware/request"
	"trainhub/pkg/requestcontext"
)

// Service defines the enrollment operations exposed over HTTP.
type Service interface {
	ExpressInterest(ctx context.Context, actor policy.Actor, req service.ExpressInterestRequest) (*models.Interest, error)
	DecideInterest(ctx context.Context, actor policy.Actor, interestID id.InterestID, action lifecycle.Action, acting lifecycle.Acting) (*models.Interest, error)
	WithdrawInterest(ctx context.Context, actor policy.Actor, interestID id.InterestID) (*models.Interest, error)
	DeleteInterest(ctx context.Context, actor policy.Actor, interestID id.InterestID) error
	GetInterest(ctx context.Context, actor policy.Actor, interestID id.InterestID) (*models.Interest, error)
	CreateRegistration(ctx context.Context, actor policy.Actor, req service.CreateRegistrationRequest) (*models.Registration, error)
	DecideRegistration(ctx context.Context, actor policy.Actor, registrationID id.RegistrationID, action lifecycle.Action) (*models.Registration, error)
	GetRegistration(ctx context.Context, actor policy.Actor, registrationID id.RegistrationID) (*models.Registration, error)
	ArchiveUser(ctx context.Context, actor policy.Actor, userID id.UserID) (*service.ArchiveResult, error)
	DeleteUser(ctx context.Context, actor policy.Actor, userID id.UserID) error
	GetLedger(ctx context.Context, actor policy.Actor, userID id.UserID) (models.QuotaLedger, error)
	CoachValidationOnly(ctx context.Context) (bool, error)
	SetCoachValidationOnly(ctx context.Context, actor policy.Actor, enabled bool) error
}

// Handler handles the interest, registration and admin endpoints.
type Handler struct {
	logger       *slog.Logger
	svc          Service
	jwtValidator auth.JWTValidator
	rateLimit    int
}

// New creates a new enrollment Handler. rateLimit is requests per minute per actor; zero disables it.
func New(svc Service, logger *slog.Logger, jwtValidator auth.JWTValidator, rateLimit int) *Handler {
	return &Handler{
		logger:       logger,
		svc:          svc,
		jwtValidator: jwtValidator,
		rateLimit:    rateLimit,
	}
}

// Register registers the enrollment routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(h.jwtValidator, h.logger))
		r.Use(ratelimit.PerMinute(h.rateLimit))
		r.Use(request.ContentTypeJSON)

		r.Post("/interests", h.handleExpressInterest)
		r.Get("/interests/{interestID}", h.handleGetInterest)
		r.Post("/interests/{interestID}/decision", h.handleDecideInterest)
		r.Post("/interests/{interestID}/withdraw", h.handleWithdrawInterest)

		r.Post("/registrations", h.handleCreateRegistration)
		r.Get("/registrations/{registrationID}", h.handleGetRegistration)
		r.Post("/registrations/{registrationID}/decision", h.handleDecideRegistration)

		r.Get("/users/{userID}/quota", h.handleGetLedger)

		r.Route("/admin", func(r chi.Router) {
			r.Use(admin.RequireRole(id.RoleRH, h.logger))
			r.Delete("/interests/{interestID}", h.handleDeleteInterest)
			r.Post("/users/{userID}/archive", h.handleArchiveUser)
			r.Delete("/users/{userID}", h.handleDeleteUser)
			r.Get("/settings/coach-validation-only", h.handleGetSetting)
			r.Put("/settings/coach-validation-only", h.handleSetSetting)
		})
	})
}

func (h *Handler) handleExpressInterest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ExpressInterestRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid express interest request", err)
		return
	}
	req.Normalize()
	cmd, err := req.ToCommand()
	if err != nil {
		h.fail(ctx, w, "invalid express interest request", err)
		return
	}

	in, err := h.svc.ExpressInterest(ctx, actorFrom(ctx), cmd)
	if err != nil {
		h.fail(ctx, w, "failed to express interest", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, in)
}

func (h *Handler) handleGetInterest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	interestID, err := id.ParseInterestID(chi.URLParam(r, "interestID"))
	if err != nil {
		h.fail(ctx, w, "invalid interest id", err)
		return
	}
	in, err := h.svc.GetInterest(ctx, actorFrom(ctx), interestID)
	if err != nil {
		h.fail(ctx, w, "failed to get interest", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, in)
}

func (h *Handler) handleDecideInterest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	interestID, err := id.ParseInterestID(chi.URLParam(r, "interestID"))
	if err != nil {
		h.fail(ctx, w, "invalid interest id", err)
		return
	}
	var req InterestDecisionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid interest decision", err)
		return
	}
	action, acting, err := req.Parse()
	if err != nil {
		h.fail(ctx, w, "invalid interest decision", err)
		return
	}

	in, err := h.svc.DecideInterest(ctx, actorFrom(ctx), interestID, action, acting)
	if err != nil {
		h.fail(ctx, w, "failed to decide interest", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, in)
}

func (h *Handler) handleWithdrawInterest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	interestID, err := id.ParseInterestID(chi.URLParam(r, "interestID"))
	if err != nil {
		h.fail(ctx, w, "invalid interest id", err)
		return
	}
	in, err := h.svc.WithdrawInterest(ctx, actorFrom(ctx), interestID)
	if err != nil {
		h.fail(ctx, w, "failed to withdraw interest", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, in)
}

func (h *Handler) handleDeleteInterest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	interestID, err := id.ParseInterestID(chi.URLParam(r, "interestID"))
	if err != nil {
		h.fail(ctx, w, "invalid interest id", err)
		return
	}
	if err := h.svc.DeleteInterest(ctx, actorFrom(ctx), interestID); err != nil {
		h.fail(ctx, w, "failed to delete interest", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleCreateRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateRegistrationRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid registration request", err)
		return
	}
	cmd, err := req.ToCommand()
	if err != nil {
		h.fail(ctx, w, "invalid registration request", err)
		return
	}

	reg, err := h.svc.CreateRegistration(ctx, actorFrom(ctx), cmd)
	if err != nil {
		h.fail(ctx, w, "failed to create registration", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, reg)
}

func (h *Handler) handleGetRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	registrationID, err := id.ParseRegistrationID(chi.URLParam(r, "registrationID"))
	if err != nil {
		h.fail(ctx, w, "invalid registration id", err)
		return
	}
	reg, err := h.svc.GetRegistration(ctx, actorFrom(ctx), registrationID)
	if err != nil {
		h.fail(ctx, w, "failed to get registration", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

func (h *Handler) handleDecideRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	registrationID, err := id.ParseRegistrationID(chi.URLParam(r, "registrationID"))
	if err != nil {
		h.fail(ctx, w, "invalid registration id", err)
		return
	}
	var req RegistrationDecisionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid registration decision", err)
		return
	}
	action, err := lifecycle.ParseRegistrationDecision(req.Action)
	if err != nil {
		h.fail(ctx, w, "invalid registration decision", err)
		return
	}

	reg, err := h.svc.DecideRegistration(ctx, actorFrom(ctx), registrationID, action)
	if err != nil {
		h.fail(ctx, w, "failed to decide registration", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reg)
}

func (h *Handler) handleGetLedger(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		h.fail(ctx, w, "invalid user id", err)
		return
	}
	ledger, err := h.svc.GetLedger(ctx, actorFrom(ctx), userID)
	if err != nil {
		h.fail(ctx, w, "failed to get quota", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LedgerResponse{
		UserID: userID.String(),
		P1Used: ledger.P1Used,
		P2Used: ledger.P2Used,
	})
}

func (h *Handler) handleArchiveUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		h.fail(ctx, w, "invalid user id", err)
		return
	}
	res, err := h.svc.ArchiveUser(ctx, actorFrom(ctx), userID)
	if err != nil {
		h.fail(ctx, w, "failed to archive user", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		h.fail(ctx, w, "invalid user id", err)
		return
	}
	if err := h.svc.DeleteUser(ctx, actorFrom(ctx), userID); err != nil {
		h.fail(ctx, w, "failed to delete user", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleGetSetting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	enabled, err := h.svc.CoachValidationOnly(ctx)
	if err != nil {
		h.fail(ctx, w, "failed to read setting", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SettingResponse{CoachValidationOnly: enabled})
}

func (h *Handler) handleSetSetting(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req SettingRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.fail(ctx, w, "invalid setting request", err)
		return
	}
	if err := req.Validate(); err != nil {
		h.fail(ctx, w, "invalid setting request", err)
		return
	}
	if err := h.svc.SetCoachValidationOnly(ctx, actorFrom(ctx), *req.Enabled); err != nil {
		h.fail(ctx, w, "failed to update setting", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, SettingResponse{CoachValidationOnly: *req.Enabled})
}

// fail logs client errors at warn and everything else at error, then writes the envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	requestID := request.GetRequestID(ctx)
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", requestID,
			"error", err.Error(),
		)
	}
	httputil.WriteError(w, err)
}

func actorFrom(ctx context.Context) policy.Actor {
	return policy.Actor{
		ID:    requestcontext.UserID(ctx),
		Roles: requestcontext.Roles(ctx),
	}
}
