package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"InvestGuide/internal/domain/models"
	"InvestGuide/internal/service/llm"
	"InvestGuide/internal/session"
	"InvestGuide/internal/simulation"
	"InvestGuide/pkg/cache"
	xlogger "InvestGuide/pkg/logger"
)

type stubGenerator struct {
	reply string
	err   error
	calls int
	last  string
}

func (g *stubGenerator) Generate(_ context.Context, _, user string) (string, error) {
	g.calls++
	g.last = user
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

type stubPublisher struct {
	mu     sync.Mutex
	events []*models.RoundEvent
	err    error
}

func (p *stubPublisher) Publish(_ context.Context, e *models.RoundEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *stubPublisher) Close() error { return nil }

type stubArchiver struct {
	events []*models.RoundEvent
}

func (a *stubArchiver) Archive(_ context.Context, e *models.RoundEvent) error {
	a.events = append(a.events, e)
	return nil
}

func (a *stubArchiver) Health(context.Context) error { return nil }
func (a *stubArchiver) Close() error                 { return nil }

type stubMetrics struct {
	rounds map[string]int
	errs   map[string]int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{rounds: map[string]int{}, errs: map[string]int{}}
}

func (m *stubMetrics) RecordRound(outcome string)     { m.rounds[outcome]++ }
func (m *stubMetrics) RecordGeneratorLatency(float64) {}
func (m *stubMetrics) RecordError(kind string)        { m.errs[kind]++ }
func (m *stubMetrics) RecordMatchScore(int)           {}
func (m *stubMetrics) RecordSessionCreated()          {}
func (m *stubMetrics) RecordSimulation()              {}

func testCatalog() []models.StrategyRecord {
	return []models.StrategyRecord{
		{Name: "Index Fund Core", Goals: "Wealth Growth", RiskTolerance: "Medium", Horizon: "Long (7+ years)", KnowledgeLevel: "Beginner", Description: "Broad index funds"},
		{Name: "Bond Ladder", Goals: "Capital Preservation", RiskTolerance: "Low", Horizon: "Short (1-3 years)", KnowledgeLevel: "Intermediate", Description: "Staggered bonds"},
		{Name: "Dividend Focus", Goals: "Passive Income", RiskTolerance: "Medium", Horizon: "Medium (3-7 years)", KnowledgeLevel: "Intermediate", Description: "Dividend stocks"},
	}
}

func testProfile() models.UserProfile {
	return models.UserProfile{
		Goals:          []string{"Wealth Growth"},
		Horizon:        "Long (7+ years)",
		RiskTolerance:  "Medium",
		KnowledgeLevel: "Beginner",
	}
}

type fixture struct {
	advisor   *Advisor
	generator *stubGenerator
	publisher *stubPublisher
	archiver  *stubArchiver
	metrics   *stubMetrics
	store     *session.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mc := cache.NewMemoryCache()
	t.Cleanup(func() { _ = mc.Close() })

	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}

	f := &fixture{
		generator: &stubGenerator{reply: "Start with a broad index fund."},
		publisher: &stubPublisher{},
		archiver:  &stubArchiver{},
		metrics:   newStubMetrics(),
		store:     session.NewStore(mc, time.Hour, 3),
	}
	f.advisor = NewAdvisor(testCatalog(), f.store, f.generator, f.publisher, f.archiver, f.metrics, log, 3)
	return f
}

func (f *fixture) newSession(t *testing.T) string {
	t.Helper()
	s, err := f.advisor.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return s.ID
}

func TestSubmitScenarioCompletesRound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.newSession(t)

	res, err := f.advisor.SubmitScenario(ctx, id, testProfile(), nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Round != 1 || res.NextRound != 2 || res.Limited {
		t.Fatalf("unexpected round accounting: %+v", res)
	}
	if res.Recommendation != "Start with a broad index fund." {
		t.Fatalf("unexpected recommendation: %q", res.Recommendation)
	}
	if len(res.Matches) != 3 || res.Matches[0].Strategy.Name != "Index Fund Core" {
		t.Fatalf("unexpected matches: %+v", res.Matches)
	}

	s, err := f.advisor.Session(ctx, id)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if s.Round != 2 || len(s.RecommendationHistory) != 1 {
		t.Fatalf("round not persisted: round=%d history=%d", s.Round, len(s.RecommendationHistory))
	}
	if len(f.publisher.events) != 1 || len(f.archiver.events) != 1 {
		t.Fatalf("expected round event on both side channels, got publish=%d archive=%d",
			len(f.publisher.events), len(f.archiver.events))
	}
	if f.publisher.events[0].TopStrategy != "Index Fund Core" {
		t.Fatalf("unexpected event: %+v", f.publisher.events[0])
	}
	if f.metrics.rounds["completed"] != 1 {
		t.Fatalf("expected completed round metric, got %v", f.metrics.rounds)
	}
}

func TestSubmitScenarioGeneratorFailureLeavesSessionUntouched(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.newSession(t)

	f.generator.err = fmt.Errorf("%w: upstream timeout", llm.ErrService)

	_, err := f.advisor.SubmitScenario(ctx, id, testProfile(), nil)
	if !errors.Is(err, llm.ErrService) {
		t.Fatalf("expected ErrService, got %v", err)
	}

	s, err := f.advisor.Session(ctx, id)
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if s.Round != 1 || len(s.RecommendationHistory) != 0 || len(s.SimulationHistory) != 0 {
		t.Fatalf("failed generation must not touch the session: %+v", s)
	}
	if len(f.publisher.events) != 0 {
		t.Fatal("no event may be published for a failed round")
	}
	if f.metrics.rounds["generator_error"] != 1 {
		t.Fatalf("expected generator_error metric, got %v", f.metrics.rounds)
	}

	// The round was not consumed, so an immediate retry succeeds.
	f.generator.err = nil
	res, err := f.advisor.SubmitScenario(ctx, id, testProfile(), nil)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if res.Round != 1 {
		t.Fatalf("retry must consume round 1, got %d", res.Round)
	}
}

func TestSubmitScenarioRoundLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.newSession(t)

	for i := 1; i <= 3; i++ {
		res, err := f.advisor.SubmitScenario(ctx, id, testProfile(), nil)
		if err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
		if res.Round != i {
			t.Fatalf("expected round %d, got %d", i, res.Round)
		}
		if i == 3 && !res.Limited {
			t.Fatal("final round result must report the session as limited")
		}
	}

	generatorCalls := f.generator.calls
	_, err := f.advisor.SubmitScenario(ctx, id, testProfile(), nil)
	if !errors.Is(err, session.ErrRoundLimit) {
		t.Fatalf("expected ErrRoundLimit, got %v", err)
	}
	if f.generator.calls != generatorCalls {
		t.Fatal("rejected submission must not call the generator")
	}
	if f.metrics.rounds["rejected_limit"] != 1 {
		t.Fatalf("expected rejected_limit metric, got %v", f.metrics.rounds)
	}
}

func TestSubmitScenarioWithSimulation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.newSession(t)

	sim := &simulation.Input{
		Label:           "Round 1",
		StartingBalance: 1000,
		AnnualReturnPct: 7,
		DurationYears:   5,
	}
	res, err := f.advisor.SubmitScenario(ctx, id, testProfile(), sim)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Simulation == nil || res.Simulation.Label != "Round 1" {
		t.Fatalf("expected simulation in result, got %+v", res.Simulation)
	}
	if len(res.Simulation.PortfolioValue) != 6 {
		t.Fatalf("expected 6 points, got %d", len(res.Simulation.PortfolioValue))
	}

	s, _ := f.advisor.Session(ctx, id)
	if len(s.SimulationHistory) != 1 {
		t.Fatalf("simulation not persisted, history=%d", len(s.SimulationHistory))
	}
}

func TestSubmitScenarioMergesPendingNarrative(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.newSession(t)

	if _, err := f.advisor.AppendNarrative(ctx, id, "I just paid off my car."); err != nil {
		t.Fatalf("append narrative: %v", err)
	}

	profile := testProfile()
	profile.NarrativeContext = "I want to buy a house."
	if _, err := f.advisor.SubmitScenario(ctx, id, profile, nil); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if !strings.Contains(f.generator.last, "I want to buy a house. I just paid off my car.") {
		t.Fatalf("expected typed and pending narrative merged in prompt:\n%s", f.generator.last)
	}

	s, _ := f.advisor.Session(ctx, id)
	if s.PendingNarrative != "" {
		t.Fatalf("pending narrative must be consumed by the round, got %q", s.PendingNarrative)
	}
}

func TestSubmitScenarioPublishFailureKeepsRound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.newSession(t)

	f.publisher.err = errors.New("broker down")

	res, err := f.advisor.SubmitScenario(ctx, id, testProfile(), nil)
	if err != nil {
		t.Fatalf("publish failure must not fail the round: %v", err)
	}
	if res.Round != 1 {
		t.Fatalf("unexpected round: %d", res.Round)
	}
	if f.metrics.errs["round_publish"] != 1 {
		t.Fatalf("expected round_publish error metric, got %v", f.metrics.errs)
	}
	if len(f.archiver.events) != 1 {
		t.Fatal("archive must still receive the event")
	}
}

func TestPreviewMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.newSession(t)

	matches, err := f.advisor.PreviewMatches(ctx, id, testProfile())
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if len(matches) != 3 || matches[0].Score != 4 {
		t.Fatalf("unexpected matches: %+v", matches)
	}
	if f.generator.calls != 0 {
		t.Fatal("preview must not call the generator")
	}

	s, _ := f.advisor.Session(ctx, id)
	if s.Round != 1 {
		t.Fatal("preview must not consume a round")
	}
}

func TestSimulateStandalone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.newSession(t)

	run, err := f.advisor.Simulate(ctx, id, simulation.Input{StartingBalance: 500, AnnualReturnPct: 5, DurationYears: 3})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if len(run.PortfolioValue) != 4 {
		t.Fatalf("expected 4 points, got %d", len(run.PortfolioValue))
	}

	s, _ := f.advisor.Session(ctx, id)
	if len(s.SimulationHistory) != 1 {
		t.Fatal("simulation not recorded in session history")
	}
	if s.Round != 1 {
		t.Fatal("standalone simulation must not consume a round")
	}
}

func TestResetRestoresSubmissions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	id := f.newSession(t)

	for i := 0; i < 3; i++ {
		if _, err := f.advisor.SubmitScenario(ctx, id, testProfile(), nil); err != nil {
			t.Fatalf("round %d: %v", i+1, err)
		}
	}
	if _, err := f.advisor.SubmitScenario(ctx, id, testProfile(), nil); !errors.Is(err, session.ErrRoundLimit) {
		t.Fatalf("expected ErrRoundLimit, got %v", err)
	}

	s, err := f.advisor.Reset(ctx, id)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if s.Round != 1 || len(s.RecommendationHistory) != 0 {
		t.Fatalf("reset did not clear the session: %+v", s)
	}

	res, err := f.advisor.SubmitScenario(ctx, id, testProfile(), nil)
	if err != nil {
		t.Fatalf("post-reset submit: %v", err)
	}
	if res.Round != 1 {
		t.Fatalf("expected fresh round 1 after reset, got %d", res.Round)
	}
}

func TestUnknownSession(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.advisor.SubmitScenario(ctx, "missing", testProfile(), nil); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("submit: expected ErrNotFound, got %v", err)
	}
	if _, err := f.advisor.Reset(ctx, "missing"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("reset: expected ErrNotFound, got %v", err)
	}
}
