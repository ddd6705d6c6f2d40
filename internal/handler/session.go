package handler

import (
	"cartridge-quiz/internal/dto"
	"cartridge-quiz/internal/service"
	"cartridge-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler handles quiz session HTTP requests
type SessionHandler struct {
	service   service.SessionService
	validator *validation.Validator
}

// NewSessionHandler creates a new SessionHandler instance
func NewSessionHandler(service service.SessionService) *SessionHandler {
	return &SessionHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// RegisterRoutes mounts the session routes on the given router.
func (h *SessionHandler) RegisterRoutes(api fiber.Router) {
	api.Post("/sessions", h.StartSession)
	api.Get("/sessions/:id", h.GetSession)
	api.Post("/sessions/:id/answer", h.SelectAnswer)
	api.Post("/sessions/:id/advance", h.Advance)
	api.Post("/sessions/:id/unlock", h.UnlockResults)
	api.Get("/sessions/:id/results", h.GetResults)
	api.Post("/sessions/:id/restart", h.Restart)
	api.Post("/sessions/:id/share", h.Share)
	api.Get("/share/:token", h.ResolveShare)
}

// StartSession godoc
// @Summary Start a quiz session
// @Description Creates a session, generates its question sequence and returns the first question
// @Tags sessions
// @Accept json
// @Produce json
// @Success 201 {object} dto.SessionStateResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *fiber.Ctx) error {
	state, err := h.service.StartSession(c.Context())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(state)
}

// GetSession godoc
// @Summary Get session state
// @Description Returns the current state of a quiz session
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [get]
func (h *SessionHandler) GetSession(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateSessionID(id); len(errs) > 0 {
		return errs
	}

	state, err := h.service.GetSession(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(state)
}

// SelectAnswer godoc
// @Summary Select an answer
// @Description Stores the answer for the current question without evaluating it
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.SelectAnswerRequest true "Selected answer"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/answer [post]
func (h *SessionHandler) SelectAnswer(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateSessionID(id); len(errs) > 0 {
		return errs
	}

	var req dto.SelectAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	state, err := h.service.SelectAnswer(c.Context(), id, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(state)
}

// Advance godoc
// @Summary Advance to the next question
// @Description Evaluates the pending answer, updates score and streak, and moves forward
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.AdvanceResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/advance [post]
func (h *SessionHandler) Advance(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateSessionID(id); len(errs) > 0 {
		return errs
	}

	result, err := h.service.Advance(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// UnlockResults godoc
// @Summary Unlock the results
// @Description Satisfies the email gate and reveals the results summary
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.UnlockResultsRequest true "Email capture form"
// @Success 200 {object} dto.ResultsResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/unlock [post]
func (h *SessionHandler) UnlockResults(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateSessionID(id); len(errs) > 0 {
		return errs
	}

	var req dto.UnlockResultsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateUnlockRequest(req.Email); len(errs) > 0 {
		return errs
	}

	results, err := h.service.UnlockResults(c.Context(), id, req.Email, req.Subscribe)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// GetResults godoc
// @Summary Get the results summary
// @Description Returns the results once the email gate has been satisfied
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.ResultsResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/results [get]
func (h *SessionHandler) GetResults(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateSessionID(id); len(errs) > 0 {
		return errs
	}

	results, err := h.service.GetResults(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// Restart godoc
// @Summary Restart the session
// @Description Returns the session to the landing state, clearing all progress
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/restart [post]
func (h *SessionHandler) Restart(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateSessionID(id); len(errs) > 0 {
		return errs
	}

	state, err := h.service.Restart(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(state)
}

// Share godoc
// @Summary Report a social share
// @Description Records the share and returns a stateless share link
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.ShareRequest true "Share platform"
// @Success 200 {object} dto.ShareResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/share [post]
func (h *SessionHandler) Share(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateSessionID(id); len(errs) > 0 {
		return errs
	}

	var req dto.ShareRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateShareRequest(req.Platform); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Share(c.Context(), id, req.Platform)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ResolveShare godoc
// @Summary Resolve a share link
// @Description Verifies a share token and returns the shared results summary
// @Tags sessions
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} dto.SharedSummaryResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /share/{token} [get]
func (h *SessionHandler) ResolveShare(c *fiber.Ctx) error {
	summary, err := h.service.ResolveShare(c.Params("token"))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}
