package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"InvestGuide/internal/domain/models"
	"InvestGuide/internal/service/llm"
	"InvestGuide/internal/service/transcript"
	"InvestGuide/internal/session"
	"InvestGuide/internal/simulation"
	"InvestGuide/internal/usecase"
	xhttp "InvestGuide/pkg/http"
	xlogger "InvestGuide/pkg/logger"
	xutil "InvestGuide/pkg/util"
)

// AdvisorEchoHandler exposes the advisory session lifecycle over HTTP.
type AdvisorEchoHandler struct {
	logger     *xlogger.Logger
	advisor    *usecase.Advisor
	transcript *transcript.Channel
}

func NewAdvisorEchoHandler(logger *xlogger.Logger, advisor *usecase.Advisor, transcript *transcript.Channel) *AdvisorEchoHandler {
	return &AdvisorEchoHandler{logger: logger, advisor: advisor, transcript: transcript}
}

func (h *AdvisorEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/healthz", h.Health)
	g.POST("/sessions", h.CreateSession)
	g.POST("/sessions/:id/scenario", h.SubmitScenario)
	g.POST("/sessions/:id/matches", h.PreviewMatches)
	g.POST("/sessions/:id/simulate", h.Simulate)
	g.POST("/sessions/:id/narrative", h.AppendNarrative)
	g.GET("/sessions/:id/transcript", h.Transcript)
	g.GET("/sessions/:id/history", h.History)
	g.POST("/sessions/:id/reset", h.Reset)
}

// sessionView is the API shape of a session: histories in submission order,
// each round labeled by its number.
type sessionView struct {
	ID                    string                 `json:"id"`
	Round                 int                    `json:"round"`
	MaxRounds             int                    `json:"max_rounds"`
	Limited               bool                   `json:"limited"`
	RecommendationHistory []models.RoundRecord   `json:"recommendation_history"`
	SimulationHistory     []models.SimulationRun `json:"simulation_history"`
	PendingNarrative      string                 `json:"pending_narrative,omitempty"`
}

func viewOf(s *session.Session) sessionView {
	return sessionView{
		ID:                    s.ID,
		Round:                 s.Round,
		MaxRounds:             s.MaxRounds,
		Limited:               s.Limited(),
		RecommendationHistory: s.RecommendationHistory,
		SimulationHistory:     s.SimulationHistory,
		PendingNarrative:      s.PendingNarrative,
	}
}

func (h *AdvisorEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *AdvisorEchoHandler) CreateSession(c echo.Context) error {
	s, err := h.advisor.CreateSession(c.Request().Context())
	if err != nil {
		h.logger.Error("session create failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.CreatedResponse(c, viewOf(s))
}

func (h *AdvisorEchoHandler) SubmitScenario(c echo.Context) error {
	req := &models.ScenarioRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	var sim *simulation.Input
	if req.Simulation != nil {
		in := simulationInput(req.Simulation)
		sim = &in
	}

	res, err := h.advisor.SubmitScenario(c.Request().Context(), c.Param("id"), req.Profile.Profile(), sim)
	if err != nil {
		return h.advisoryError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AdvisorEchoHandler) PreviewMatches(c echo.Context) error {
	req := &models.ProfileRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	matches, err := h.advisor.PreviewMatches(c.Request().Context(), c.Param("id"), req.Profile())
	if err != nil {
		return h.advisoryError(c, err)
	}
	return xhttp.ListResponse(c, matches, int64(len(matches)))
}

func (h *AdvisorEchoHandler) Simulate(c echo.Context) error {
	req := &models.SimulationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	run, err := h.advisor.Simulate(c.Request().Context(), c.Param("id"), simulationInput(req))
	if err != nil {
		return h.advisoryError(c, err)
	}
	return xhttp.SuccessResponse(c, run)
}

func (h *AdvisorEchoHandler) AppendNarrative(c echo.Context) error {
	req := &models.NarrativeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	s, err := h.advisor.AppendNarrative(c.Request().Context(), c.Param("id"), req.Text)
	if err != nil {
		return h.advisoryError(c, err)
	}
	return xhttp.SuccessResponse(c, viewOf(s))
}

// Transcript upgrades to the websocket speech-to-text channel.
func (h *AdvisorEchoHandler) Transcript(c echo.Context) error {
	id := c.Param("id")
	if _, err := h.advisor.Session(c.Request().Context(), id); err != nil {
		return h.advisoryError(c, err)
	}
	return h.transcript.Serve(c.Response(), c.Request(), id)
}

func (h *AdvisorEchoHandler) History(c echo.Context) error {
	s, err := h.advisor.Session(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.advisoryError(c, err)
	}

	view := viewOf(s)
	// Optional tail limit on the recommendation history.
	if limit := xutil.ParseIntDefault(c.QueryParam("limit"), 0); limit > 0 && limit < len(view.RecommendationHistory) {
		view.RecommendationHistory = view.RecommendationHistory[len(view.RecommendationHistory)-limit:]
	}
	return xhttp.SuccessResponse(c, view)
}

func (h *AdvisorEchoHandler) Reset(c echo.Context) error {
	s, err := h.advisor.Reset(c.Request().Context(), c.Param("id"))
	if err != nil {
		return h.advisoryError(c, err)
	}
	return xhttp.SuccessResponse(c, viewOf(s))
}

// advisoryError maps domain errors onto API responses. Generator failures are
// retriable 502s; the session was left untouched.
func (h *AdvisorEchoHandler) advisoryError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("session not found").WithError(err))
	case errors.Is(err, session.ErrRoundLimit):
		return xhttp.AppErrorResponse(c, xhttp.NewAppError(
			"ERR_ROUND_LIMIT", "",
			"scenario limit reached for this session, reset to continue",
			http.StatusConflict,
		).WithError(err))
	case errors.Is(err, llm.ErrService):
		return xhttp.AppErrorResponse(c, xhttp.NewAppError(
			"ERR_RECOMMENDATION_SERVICE", "",
			"recommendation service is unavailable, please try again",
			http.StatusBadGateway,
		).WithError(err))
	default:
		h.logger.Error("advisory request failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}

func simulationInput(req *models.SimulationRequest) simulation.Input {
	return simulation.Input{
		Label:               req.Label,
		StartingBalance:     req.StartingBalance,
		AnnualReturnPct:     req.AnnualReturnPct,
		ShockReturnPct:      req.ShockReturnPct,
		MonthlyContribution: req.MonthlyContribution,
		DurationYears:       req.DurationYears,
		ShockIntervalYears:  req.ShockIntervalYears,
	}
}
