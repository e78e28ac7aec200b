package api

import (
	"github.com/labstack/echo/v4"

	"InvestGuide/internal/domain/models"
	"InvestGuide/internal/service/allocation"
	"InvestGuide/internal/simulation"
	"InvestGuide/internal/usecase"
	xhttp "InvestGuide/pkg/http"
)

// PlanningEchoHandler exposes the stateless planning endpoints: catalog
// browsing, market outlook, budgeting, and allocation templates. None of
// these touch session round accounting.
type PlanningEchoHandler struct {
	advisor *usecase.Advisor
}

func NewPlanningEchoHandler(advisor *usecase.Advisor) *PlanningEchoHandler {
	return &PlanningEchoHandler{advisor: advisor}
}

func (h *PlanningEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/strategies", h.Strategies)
	g.POST("/outlook", h.Outlook)
	g.POST("/budget", h.Budget)
	g.GET("/allocations", h.Allocations)
	g.GET("/allocations/:profile", h.Allocation)
}

func (h *PlanningEchoHandler) Strategies(c echo.Context) error {
	catalog := h.advisor.Catalog()
	return xhttp.ListResponse(c, catalog, int64(len(catalog)))
}

func (h *PlanningEchoHandler) Outlook(c echo.Context) error {
	req := &models.OutlookRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res := simulation.Outlook(req.Amount, req.Years, req.BearPct, req.NeutralPct, req.BullPct)
	return xhttp.SuccessResponse(c, res)
}

func (h *PlanningEchoHandler) Budget(c echo.Context) error {
	req := &models.BudgetRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	res := simulation.Budget(req.MonthlyIncome, req.MonthlyExpenses, req.StudentLoanBalance)
	return xhttp.SuccessResponse(c, res)
}

func (h *PlanningEchoHandler) Allocations(c echo.Context) error {
	return xhttp.SuccessResponse(c, allocation.Profiles())
}

func (h *PlanningEchoHandler) Allocation(c echo.Context) error {
	a, err := allocation.ForRiskProfile(c.Param("profile"))
	if err != nil {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
	}
	return xhttp.SuccessResponse(c, a)
}
