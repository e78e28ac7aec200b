package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"InvestGuide/internal/domain/models"
	"InvestGuide/internal/service/llm"
	"InvestGuide/internal/service/transcript"
	"InvestGuide/internal/session"
	"InvestGuide/internal/usecase"
	"InvestGuide/pkg/cache"
	xlogger "InvestGuide/pkg/logger"
)

func errTextService() error {
	return fmt.Errorf("%w: upstream timeout", llm.ErrService)
}

type fixedGenerator struct {
	reply string
	err   error
}

func (g fixedGenerator) Generate(context.Context, string, string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordRound(string)             {}
func (noopMetrics) RecordGeneratorLatency(float64) {}
func (noopMetrics) RecordError(string)             {}
func (noopMetrics) RecordMatchScore(int)           {}
func (noopMetrics) RecordSessionCreated()          {}
func (noopMetrics) RecordSimulation()              {}

type dropPublisher struct{}

func (dropPublisher) Publish(context.Context, *models.RoundEvent) error { return nil }
func (dropPublisher) Close() error                                      { return nil }

type dropArchiver struct{}

func (dropArchiver) Archive(context.Context, *models.RoundEvent) error { return nil }
func (dropArchiver) Health(context.Context) error                      { return nil }
func (dropArchiver) Close() error                                      { return nil }

type narrativeAppender struct{ advisor *usecase.Advisor }

func (a narrativeAppender) Append(ctx context.Context, sessionID, text string) error {
	_, err := a.advisor.AppendNarrative(ctx, sessionID, text)
	return err
}

func newTestServer(t *testing.T, gen fixedGenerator) *echo.Echo {
	t.Helper()

	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	catalog := []models.StrategyRecord{
		{Name: "Index Fund Core", Goals: "Wealth Growth", RiskTolerance: "Medium", Horizon: "Long (7+ years)", KnowledgeLevel: "Beginner", Description: "Broad index funds"},
		{Name: "Bond Ladder", Goals: "Capital Preservation", RiskTolerance: "Low", Horizon: "Short (1-3 years)", KnowledgeLevel: "Intermediate", Description: "Staggered bonds"},
	}

	store := session.NewStore(mc, time.Hour, 3)
	advisor := usecase.NewAdvisor(catalog, store, gen, dropPublisher{}, dropArchiver{}, noopMetrics{}, log, 3)

	channel := transcript.NewChannel(narrativeAppender{advisor: advisor}, log)
	e := echo.New()
	NewAdvisorEchoHandler(log, advisor, channel).RegisterRoutes(e)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var envelope map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return rec, envelope
}

func createSession(t *testing.T, e *echo.Echo) string {
	t.Helper()
	_, envelope := doJSON(t, e, http.MethodPost, "/api/sessions", "")
	data, ok := envelope["data"].(map[string]interface{})
	if !ok {
		t.Fatalf("unexpected create response: %v", envelope)
	}
	id, _ := data["id"].(string)
	if id == "" {
		t.Fatalf("missing session id in %v", data)
	}
	return id
}

const scenarioBody = `{
	"profile": {
		"goals": ["Wealth Growth"],
		"horizon": "Long (7+ years)",
		"risk_tolerance": "Medium",
		"knowledge_level": "Beginner",
		"monthly_income": 4200,
		"current_savings": 10000
	}
}`

func TestScenarioEndpoint(t *testing.T) {
	e := newTestServer(t, fixedGenerator{reply: "Index funds suit you."})
	id := createSession(t, e)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/sessions/"+id+"/scenario", scenarioBody)
	if envelope["status"].(float64) != http.StatusOK {
		t.Fatalf("unexpected status in envelope: %v", envelope)
	}

	data := envelope["data"].(map[string]interface{})
	if data["recommendation"] != "Index funds suit you." {
		t.Fatalf("unexpected recommendation: %v", data["recommendation"])
	}
	if data["round"].(float64) != 1 || data["next_round"].(float64) != 2 {
		t.Fatalf("unexpected round accounting: %v", data)
	}
}

func TestScenarioEndpointValidation(t *testing.T) {
	e := newTestServer(t, fixedGenerator{reply: "x"})
	id := createSession(t, e)

	body := `{"profile": {"horizon": "Long", "risk_tolerance": "Extreme", "knowledge_level": "Beginner"}}`
	_, envelope := doJSON(t, e, http.MethodPost, "/api/sessions/"+id+"/scenario", body)
	if envelope["status"].(float64) != http.StatusBadRequest {
		t.Fatalf("expected validation failure, got %v", envelope)
	}
}

func TestScenarioEndpointUnknownSession(t *testing.T) {
	e := newTestServer(t, fixedGenerator{reply: "x"})

	_, envelope := doJSON(t, e, http.MethodPost, "/api/sessions/nope/scenario", scenarioBody)
	if envelope["status"].(float64) != http.StatusNotFound {
		t.Fatalf("expected 404 envelope, got %v", envelope)
	}
}

func TestScenarioEndpointRoundLimit(t *testing.T) {
	e := newTestServer(t, fixedGenerator{reply: "x"})
	id := createSession(t, e)

	for i := 0; i < 3; i++ {
		_, envelope := doJSON(t, e, http.MethodPost, "/api/sessions/"+id+"/scenario", scenarioBody)
		if envelope["status"].(float64) != http.StatusOK {
			t.Fatalf("round %d failed: %v", i+1, envelope)
		}
	}

	_, envelope := doJSON(t, e, http.MethodPost, "/api/sessions/"+id+"/scenario", scenarioBody)
	if envelope["status"].(float64) != http.StatusConflict {
		t.Fatalf("expected conflict envelope, got %v", envelope)
	}
	errs := envelope["data"].([]interface{})
	first := errs[0].(map[string]interface{})
	if first["code"] != "ERR_ROUND_LIMIT" {
		t.Fatalf("expected ERR_ROUND_LIMIT, got %v", first)
	}
}

func TestScenarioEndpointGeneratorDown(t *testing.T) {
	e := newTestServer(t, fixedGenerator{err: errTextService()})
	id := createSession(t, e)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/sessions/"+id+"/scenario", scenarioBody)
	if envelope["status"].(float64) != http.StatusBadGateway {
		t.Fatalf("expected bad gateway envelope, got %v", envelope)
	}
	errs := envelope["data"].([]interface{})
	first := errs[0].(map[string]interface{})
	if first["code"] != "ERR_RECOMMENDATION_SERVICE" {
		t.Fatalf("expected ERR_RECOMMENDATION_SERVICE, got %v", first)
	}
}

func TestSimulateEndpoint(t *testing.T) {
	e := newTestServer(t, fixedGenerator{reply: "x"})
	id := createSession(t, e)

	body := `{"starting_balance": 1000, "annual_return_pct": 7, "shock_return_pct": -15, "duration_years": 6, "shock_interval_years": 6}`
	_, envelope := doJSON(t, e, http.MethodPost, "/api/sessions/"+id+"/simulate", body)
	if envelope["status"].(float64) != http.StatusOK {
		t.Fatalf("simulate failed: %v", envelope)
	}

	data := envelope["data"].(map[string]interface{})
	values := data["portfolio_value"].([]interface{})
	if len(values) != 7 {
		t.Fatalf("expected 7 points, got %d", len(values))
	}
	if values[6].(float64) != 1192.17 {
		t.Fatalf("unexpected final value %v", values[6])
	}
	if data["label"] != "Scenario" {
		t.Fatalf("expected default label, got %v", data["label"])
	}
}

func TestNarrativeAndHistoryEndpoints(t *testing.T) {
	e := newTestServer(t, fixedGenerator{reply: "x"})
	id := createSession(t, e)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/sessions/"+id+"/narrative", `{"text": "I have student loans."}`)
	data := envelope["data"].(map[string]interface{})
	if data["pending_narrative"] != "I have student loans." {
		t.Fatalf("narrative not recorded: %v", data)
	}

	_, envelope = doJSON(t, e, http.MethodGet, "/api/sessions/"+id+"/history", "")
	data = envelope["data"].(map[string]interface{})
	if data["round"].(float64) != 1 {
		t.Fatalf("unexpected history view: %v", data)
	}
}

func TestResetEndpoint(t *testing.T) {
	e := newTestServer(t, fixedGenerator{reply: "x"})
	id := createSession(t, e)

	doJSON(t, e, http.MethodPost, "/api/sessions/"+id+"/scenario", scenarioBody)

	_, envelope := doJSON(t, e, http.MethodPost, "/api/sessions/"+id+"/reset", "")
	data := envelope["data"].(map[string]interface{})
	if data["round"].(float64) != 1 || data["limited"].(bool) {
		t.Fatalf("reset did not clear session: %v", data)
	}
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestServer(t, fixedGenerator{})

	_, envelope := doJSON(t, e, http.MethodGet, "/api/healthz", "")
	data := envelope["data"].(map[string]interface{})
	if data["status"] != "ok" {
		t.Fatalf("unexpected health payload: %v", envelope)
	}
}
