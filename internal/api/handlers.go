package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ernitpt/goal-gift-service/pkg/errors"
	"github.com/ernitpt/goal-gift-service/pkg/submit"
	"github.com/ernitpt/goal-gift-service/pkg/wizard"
)

// Response helpers

type apiResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *apiError   `json:"error,omitempty"`
}

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: status >= 200 && status < 300,
		Data:    data,
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := apiResponse{
		Success: false,
		Error: &apiError{
			Code:    code,
			Message: message,
		},
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("failed to encode error response", "error", err)
	}
}

// respondMappedError maps a service error to an HTTP status by its code.
func (s *Server) respondMappedError(w http.ResponseWriter, err error) {
	code := errors.Code(err)
	message := err.Error()

	var goalErr *errors.GoalError
	if stderrors.As(err, &goalErr) {
		message = goalErr.Message
	}

	s.respondError(w, statusForCode(code), code, message)
}

// respondSubmitError is respondMappedError with the submission flow's
// user-facing copy instead of the raw service message.
func (s *Server) respondSubmitError(w http.ResponseWriter, err error) {
	code := errors.Code(err)
	s.respondError(w, statusForCode(code), code, submit.UserMessage(err))
}

// statusForCode maps service error codes to HTTP statuses.
func statusForCode(code string) int {
	switch code {
	case errors.ErrCodeGiftNotFound, errors.ErrCodeGoalNotFound, errors.ErrCodeExperienceNotFound:
		return http.StatusNotFound
	case errors.ErrCodeGiftAlreadyClaimed, errors.ErrCodeSubmissionInFlight:
		return http.StatusConflict
	case errors.ErrCodeAuthRequired:
		return http.StatusUnauthorized
	case errors.ErrCodeValidationFailed, errors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Health

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Goals

func (s *Server) handleSubmitGoal(w http.ResponseWriter, r *http.Request) {
	var req submitGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error())
		return
	}

	cfg, err := req.Configuration.toDomain()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error())
		return
	}

	outcome, err := s.submitter.Submit(r.Context(), submit.Request{
		UserID:        r.Header.Get("X-User-ID"),
		DeviceID:      r.Header.Get("X-Device-ID"),
		GiftID:        req.GiftID,
		Confirmed:     req.Confirmed,
		RequireReward: req.RequireReward,
		Configuration: cfg,
	})
	if err != nil {
		s.respondSubmitError(w, err)
		return
	}

	status := http.StatusCreated
	if outcome.RedirectToSignup {
		status = http.StatusAccepted
	}
	s.respondJSON(w, status, submitGoalResponse{
		Goal:             outcome.Goal,
		RedirectToSignup: outcome.RedirectToSignup,
	})
}

// handleValidateGoal runs the full rule set over a configuration in one
// shot, the single-page variant of the wizard. Nothing is persisted.
func (s *Server) handleValidateGoal(w http.ResponseWriter, r *http.Request) {
	var req submitGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "invalid request body")
		return
	}

	cfg, err := req.Configuration.toDomain()
	if err != nil {
		s.respondError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error())
		return
	}

	requireReward := req.RequireReward && req.GiftID == ""
	failed := wizard.ValidateConfiguration(&cfg, requireReward)

	fieldErrors := make(map[string]string, len(failed))
	for field, msg := range failed {
		fieldErrors[string(field)] = msg
	}

	s.respondJSON(w, http.StatusOK, validateGoalResponse{
		Valid:  len(fieldErrors) == 0,
		Errors: fieldErrors,
	})
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goalID := chi.URLParam(r, "goalID")

	goal, err := s.goals.GetGoal(r.Context(), goalID)
	if err != nil {
		s.respondMappedError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, goal)
}

// Gifts

func (s *Server) handleClaimGift(w http.ResponseWriter, r *http.Request) {
	giftID := chi.URLParam(r, "giftID")

	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		s.respondError(w, http.StatusUnauthorized, errors.ErrCodeAuthRequired, "sign in to claim a gift")
		return
	}

	if err := s.gifts.ClaimGift(r.Context(), giftID, userID); err != nil {
		s.respondMappedError(w, err)
		return
	}

	gift, err := s.gifts.GetGift(r.Context(), giftID)
	if err != nil {
		s.respondMappedError(w, err)
		return
	}

	s.respondJSON(w, http.StatusOK, claimGiftResponse{Gift: gift})
}

// Experiences

func (s *Server) handleListExperiences(w http.ResponseWriter, r *http.Request) {
	if partner := r.URL.Query().Get("partner"); partner != "" {
		s.respondJSON(w, http.StatusOK, s.experiences.GetExperiencesByPartner(partner))
		return
	}
	s.respondJSON(w, http.StatusOK, s.experiences.GetAllExperiences())
}

func (s *Server) handleGetExperience(w http.ResponseWriter, r *http.Request) {
	experienceID := chi.URLParam(r, "experienceID")

	exp := s.experiences.GetExperienceByID(experienceID)
	if exp == nil {
		s.respondError(w, http.StatusNotFound, errors.ErrCodeExperienceNotFound, "experience not found")
		return
	}

	s.respondJSON(w, http.StatusOK, exp)
}

// Categories

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.catalog.Categories)
}

// Drafts

func (s *Server) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	deviceID := r.Header.Get("X-Device-ID")
	if deviceID == "" {
		s.respondError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "X-Device-ID header is required")
		return
	}

	cfg, err := s.submitter.RestoreDraft(r.Context(), deviceID)
	if err != nil {
		s.respondMappedError(w, err)
		return
	}
	if cfg == nil {
		s.respondError(w, http.StatusNotFound, errors.ErrCodeGoalNotFound, "no draft for this device")
		return
	}

	s.respondJSON(w, http.StatusOK, cfg)
}
