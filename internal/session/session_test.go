package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/quizforge/mocktest/internal/session"
)

/* ---------------- In-memory fakes satisfying session.AttemptStore ---------------- */

type fakeStore struct {
	mu sync.Mutex

	snap      session.AttemptSnapshot
	loadErr   error
	startErr  error
	updateErr error
	submitErr error

	startedAt time.Time
	result    session.Result

	startCalls  int
	submitCalls int
	submitDelay time.Duration
	progress    []session.Progress
}

func (s *fakeStore) Load(ctx context.Context, attemptID string) (*session.AttemptSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	snap := s.snap
	return &snap, nil
}

func (s *fakeStore) Start(ctx context.Context, attemptID string) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startCalls++
	if s.startErr != nil {
		return time.Time{}, s.startErr
	}
	return s.startedAt, nil
}

func (s *fakeStore) UpdateProgress(ctx context.Context, attemptID string, p session.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	s.progress = append(s.progress, p)
	return nil
}

func (s *fakeStore) Submit(ctx context.Context, attemptID string) (*session.Result, error) {
	s.mu.Lock()
	s.submitCalls++
	delay := s.submitDelay
	s.mu.Unlock()
	if delay > 0 {
		time.Sleep(delay)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	r := s.result
	return &r, nil
}

func (s *fakeStore) lastAnswers() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.progress) - 1; i >= 0; i-- {
		if s.progress[i].Answers != nil {
			return *s.progress[i].Answers
		}
	}
	return nil
}

type fakeGuard struct {
	mu       sync.Mutex
	armed    bool
	disarmed int
}

func (g *fakeGuard) Arm() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.armed = true
}

func (g *fakeGuard) Disarm() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.armed = false
	g.disarmed++
}

func (g *fakeGuard) isArmed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.armed
}

// fakeClock is an adjustable time source shared with the session.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func freshSnapshot(questions int) session.AttemptSnapshot {
	qs := make([]session.Question, questions)
	for i := range qs {
		qs[i] = session.Question{
			ID:      fmt.Sprintf("q%d", i+1),
			Text:    fmt.Sprintf("Question %d", i+1),
			Options: []string{"A", "B", "C", "D"},
		}
	}
	return session.AttemptSnapshot{
		AttemptID:       "att-1",
		TestID:          "7",
		TestTitle:       "Sample Mock Test",
		DurationMinutes: 30,
		Questions:       qs,
		TotalQuestions:  questions,
	}
}

func newStarted(t *testing.T, store *fakeStore, clock *fakeClock, guard session.Guard) *session.Session {
	t.Helper()
	if clock == nil {
		clock = &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	}
	store.startedAt = clock.Now()
	s := session.New(session.Options{
		Store:        store,
		Guard:        guard,
		Now:          clock.Now,
		TickInterval: time.Millisecond,
	})
	if err := s.Load(context.Background(), "att-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return s
}

func waitForPhase(t *testing.T, s *session.Session, want session.Phase) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.Phase() == want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("phase = %s, want %s", s.Phase(), want)
}

/* ---------------- Lifecycle ---------------- */

func TestLoadFreshAttemptShowsInstructions(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(5)}
	s := session.New(session.Options{Store: store})
	defer s.Close()

	if err := s.Load(context.Background(), "att-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Phase(); got != session.PhaseInstructions {
		t.Fatalf("phase = %s, want %s", got, session.PhaseInstructions)
	}
	if got := len(s.Instructions()); got != 8 {
		t.Fatalf("default instructions = %d items, want 8", got)
	}
}

func TestLoadUsesBackendInstructionsWhenPresent(t *testing.T) {
	snap := freshSnapshot(3)
	snap.Instructions = []string{"Only one rule."}
	store := &fakeStore{snap: snap}
	s := session.New(session.Options{Store: store})
	defer s.Close()

	if err := s.Load(context.Background(), "att-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Instructions(); len(got) != 1 || got[0] != "Only one rule." {
		t.Fatalf("instructions = %v", got)
	}
}

func TestStartTransitionsToInProgress(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	store := &fakeStore{snap: freshSnapshot(5)}
	guard := &fakeGuard{}
	s := newStarted(t, store, clock, guard)
	defer s.Close()

	if got := s.Phase(); got != session.PhaseInProgress {
		t.Fatalf("phase = %s, want %s", got, session.PhaseInProgress)
	}
	if got := s.RemainingSeconds(); got != 30*60 {
		t.Fatalf("RemainingSeconds = %d, want %d", got, 30*60)
	}
	if !guard.isArmed() {
		t.Fatal("guard should be armed while in progress")
	}
	if store.startCalls != 1 {
		t.Fatalf("startCalls = %d, want 1", store.startCalls)
	}
}

func TestStartFailureStaysInInstructions(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(5), startErr: errors.New("boom")}
	s := session.New(session.Options{Store: store})
	defer s.Close()

	if err := s.Load(context.Background(), "att-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("Start should fail")
	}
	if got := s.Phase(); got != session.PhaseInstructions {
		t.Fatalf("phase = %s, want %s (retry must stay possible)", got, session.PhaseInstructions)
	}

	store.mu.Lock()
	store.startErr = nil
	store.startedAt = time.Now()
	store.mu.Unlock()
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("retry Start: %v", err)
	}
	if got := s.Phase(); got != session.PhaseInProgress {
		t.Fatalf("phase after retry = %s", got)
	}
}

func TestLoadResumeDerivesRemainingFromStartedAt(t *testing.T) {
	// Attempt started 10 minutes ago; a fresh session must see 20 minutes
	// left, not the full duration.
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start.Add(10 * time.Minute)}
	snap := freshSnapshot(5)
	snap.StartedAt = &start
	store := &fakeStore{snap: snap}
	s := session.New(session.Options{Store: store, Now: clock.Now, TickInterval: time.Minute})
	defer s.Close()

	if err := s.Load(context.Background(), "att-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Phase(); got != session.PhaseInProgress {
		t.Fatalf("phase = %s, want %s", got, session.PhaseInProgress)
	}
	if got := s.RemainingSeconds(); got != 20*60 {
		t.Fatalf("RemainingSeconds = %d, want %d", got, 20*60)
	}
}

func TestLoadExpiredAttemptClampsAtZero(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	clock := &fakeClock{now: start.Add(2 * time.Hour)}
	snap := freshSnapshot(5)
	snap.StartedAt = &start
	store := &fakeStore{snap: snap}
	s := session.New(session.Options{Store: store, Now: clock.Now, TickInterval: time.Millisecond})
	defer s.Close()

	if err := s.Load(context.Background(), "att-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.RemainingSeconds(); got != 0 {
		t.Fatalf("RemainingSeconds = %d, want 0", got)
	}
}

func TestLoadSubmittedAttemptEntersReview(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(25 * time.Minute)
	score, pct := 4, 80.0
	snap := freshSnapshot(5)
	snap.StartedAt = &start
	snap.SubmittedAt = &end
	snap.Score = &score
	snap.Percentage = &pct
	store := &fakeStore{snap: snap}
	s := session.New(session.Options{Store: store})
	defer s.Close()

	if err := s.Load(context.Background(), "att-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Phase(); got != session.PhaseSubmitted {
		t.Fatalf("phase = %s, want %s", got, session.PhaseSubmitted)
	}
	r := s.Result()
	if r == nil || r.Score != 4 || r.Percentage != 80.0 {
		t.Fatalf("Result = %+v", r)
	}
	if err := s.SelectAnswer("q1", 0); !errors.Is(err, session.ErrWrongPhase) {
		t.Fatalf("SelectAnswer in review = %v, want ErrWrongPhase", err)
	}
}

func TestLoadNotFoundPropagates(t *testing.T) {
	store := &fakeStore{loadErr: session.ErrNotFound}
	s := session.New(session.Options{Store: store})
	defer s.Close()

	err := s.Load(context.Background(), "missing")
	if !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("Load err = %v, want ErrNotFound", err)
	}
	if got := s.Phase(); got != session.PhaseLoading {
		t.Fatalf("phase = %s, want %s", got, session.PhaseLoading)
	}
}

/* ---------------- Answers, marks, navigation ---------------- */

func TestQuestionStats(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(5)}
	s := newStarted(t, store, nil, nil)
	defer s.Close()

	if err := s.SelectAnswer("q1", 2); err != nil {
		t.Fatalf("SelectAnswer: %v", err)
	}
	if err := s.ToggleMark("q3"); err != nil {
		t.Fatalf("ToggleMark: %v", err)
	}
	s.GoTo(2)

	got := s.QuestionStats()
	want := session.Stats{Answered: 1, Unanswered: 4, Marked: 1, NotVisited: 3}
	if got != want {
		t.Fatalf("QuestionStats = %+v, want %+v", got, want)
	}
}

func TestVisitedIsMonotonic(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(5)}
	s := newStarted(t, store, nil, nil)
	defer s.Close()

	// Visit q2 by navigation, then leave it and unmark a marked question;
	// neither may ever revert to not-visited.
	s.GoTo(1)
	s.GoTo(0)
	if got := s.Status(1); got != session.StatusNotAnswered {
		t.Fatalf("q2 status = %s, want %s", got, session.StatusNotAnswered)
	}

	if err := s.ToggleMark("q3"); err != nil {
		t.Fatalf("mark: %v", err)
	}
	if err := s.ToggleMark("q3"); err != nil {
		t.Fatalf("unmark: %v", err)
	}
	if got := s.Status(2); got != session.StatusNotAnswered {
		t.Fatalf("q3 status after unmark = %s, want %s", got, session.StatusNotAnswered)
	}
}

func TestStatusPriorities(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(4)}
	s := newStarted(t, store, nil, nil)
	defer s.Close()

	if err := s.SelectAnswer("q1", 0); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleMark("q1"); err != nil {
		t.Fatal(err)
	}
	if err := s.ToggleMark("q2"); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectAnswer("q3", 1); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		index int
		want  session.QuestionStatus
	}{
		{0, session.StatusMarkedAnswered},
		{1, session.StatusMarked},
		{2, session.StatusAnswered},
		{3, session.StatusNotVisited},
	}
	for _, c := range cases {
		if got := s.Status(c.index); got != c.want {
			t.Errorf("Status(%d) = %s, want %s", c.index, got, c.want)
		}
	}
}

func TestNavigationBounds(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(3)}
	s := newStarted(t, store, nil, nil)
	defer s.Close()

	s.Previous()
	if got := s.CurrentIndex(); got != 0 {
		t.Fatalf("Previous at 0 moved to %d", got)
	}
	s.GoTo(2)
	s.Next()
	if got := s.CurrentIndex(); got != 2 {
		t.Fatalf("Next at last moved to %d", got)
	}
	s.GoTo(99)
	if got := s.CurrentIndex(); got != 2 {
		t.Fatalf("out-of-bounds GoTo moved to %d", got)
	}
}

func TestSelectAnswerPanicsOnBadOptionIndex(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(3)}
	s := newStarted(t, store, nil, nil)
	defer s.Close()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-range option index")
		}
	}()
	_ = s.SelectAnswer("q1", 9)
}

func TestSelectAnswerPanicsOnUnknownQuestion(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(3)}
	s := newStarted(t, store, nil, nil)
	defer s.Close()

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on unknown question id")
		}
	}()
	_ = s.SelectAnswer("nope", 0)
}

func TestLastWriteWinsPerQuestion(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(3)}
	s := newStarted(t, store, nil, nil)

	if err := s.SelectAnswer("q1", 0); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectAnswer("q1", 3); err != nil {
		t.Fatal(err)
	}
	if err := s.SelectAnswer("q2", 1); err != nil {
		t.Fatal(err)
	}
	s.Close()

	got := store.lastAnswers()
	want := map[string]int{"q1": 3, "q2": 1}
	if len(got) != len(want) || got["q1"] != 3 || got["q2"] != 1 {
		t.Fatalf("last persisted answers = %v, want %v", got, want)
	}

	q := s.CurrentQuestion()
	if q.SelectedAnswer == nil || *q.SelectedAnswer != 3 {
		t.Fatalf("CurrentQuestion().SelectedAnswer = %v, want 3", q.SelectedAnswer)
	}
}

func TestPersistFailureKeepsLocalState(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(3), updateErr: errors.New("network down")}
	s := newStarted(t, store, nil, nil)
	defer s.Close()

	if err := s.SelectAnswer("q1", 1); err != nil {
		t.Fatalf("SelectAnswer must not surface persist errors, got %v", err)
	}
	if got := s.Status(0); got != session.StatusAnswered {
		t.Fatalf("q1 status = %s, want %s", got, session.StatusAnswered)
	}
}

/* ---------------- Submission ---------------- */

func TestSubmitStoresResultAndDisarmsGuard(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(5), result: session.Result{Score: 3, TotalQuestions: 5, Percentage: 60}}
	guard := &fakeGuard{}
	s := newStarted(t, store, nil, guard)
	defer s.Close()

	if err := s.Submit(context.Background(), session.TriggerManual); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if got := s.Phase(); got != session.PhaseSubmitted {
		t.Fatalf("phase = %s", got)
	}
	if r := s.Result(); r == nil || r.Score != 3 || r.Percentage != 60 {
		t.Fatalf("Result = %+v", r)
	}
	if guard.isArmed() {
		t.Fatal("guard must be disarmed after submission")
	}
}

func TestSubmitIsIdempotentUnderConcurrentTriggers(t *testing.T) {
	store := &fakeStore{
		snap:        freshSnapshot(5),
		result:      session.Result{Score: 2, TotalQuestions: 5, Percentage: 40},
		submitDelay: 20 * time.Millisecond,
	}
	s := newStarted(t, store, nil, nil)
	defer s.Close()

	var wg sync.WaitGroup
	for _, trig := range []session.SubmitTrigger{session.TriggerManual, session.TriggerEscape, session.TriggerTimer} {
		wg.Add(1)
		go func(tr session.SubmitTrigger) {
			defer wg.Done()
			_ = s.Submit(context.Background(), tr)
		}(trig)
	}
	wg.Wait()

	waitForPhase(t, s, session.PhaseSubmitted)
	store.mu.Lock()
	calls := store.submitCalls
	store.mu.Unlock()
	if calls != 1 {
		t.Fatalf("submitCalls = %d, want 1", calls)
	}
}

func TestSubmitFailureRevertsToInProgress(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(5), submitErr: errors.New("gateway timeout")}
	s := newStarted(t, store, nil, nil)
	defer s.Close()

	if err := s.SelectAnswer("q1", 1); err != nil {
		t.Fatal(err)
	}

	if err := s.Submit(context.Background(), session.TriggerManual); err == nil {
		t.Fatal("Submit should fail")
	}
	if got := s.Phase(); got != session.PhaseInProgress {
		t.Fatalf("phase = %s, want %s", got, session.PhaseInProgress)
	}
	if got := s.Status(0); got != session.StatusAnswered {
		t.Fatalf("answers must survive a failed submit, q1 status = %s", got)
	}

	store.mu.Lock()
	store.submitErr = nil
	store.result = session.Result{Score: 1, TotalQuestions: 5, Percentage: 20}
	store.mu.Unlock()
	if err := s.Submit(context.Background(), session.TriggerManual); err != nil {
		t.Fatalf("retry Submit: %v", err)
	}
	if got := s.Phase(); got != session.PhaseSubmitted {
		t.Fatalf("phase after retry = %s", got)
	}
}

func TestSubmitBeforeStartIsRejected(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(5)}
	s := session.New(session.Options{Store: store})
	defer s.Close()

	if err := s.Load(context.Background(), "att-1"); err != nil {
		t.Fatal(err)
	}
	if err := s.Submit(context.Background(), session.TriggerManual); !errors.Is(err, session.ErrWrongPhase) {
		t.Fatalf("Submit from instructions = %v, want ErrWrongPhase", err)
	}
}

func TestTimerExpiryAutoSubmitsOnce(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	store := &fakeStore{snap: freshSnapshot(5), result: session.Result{Score: 0, TotalQuestions: 5, Percentage: 0}}
	guard := &fakeGuard{}
	s := newStarted(t, store, clock, guard)
	defer s.Close()

	clock.Advance(31 * time.Minute)
	waitForPhase(t, s, session.PhaseSubmitted)

	store.mu.Lock()
	calls := store.submitCalls
	store.mu.Unlock()
	if calls != 1 {
		t.Fatalf("submitCalls = %d, want 1", calls)
	}
	if guard.isArmed() {
		t.Fatal("guard must be disarmed after auto-submit")
	}
	if got := s.RemainingSeconds(); got != 0 {
		t.Fatalf("RemainingSeconds = %d, want 0", got)
	}
}

func TestExpiryAutoSubmitRetriesAfterStoreFailure(t *testing.T) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	store := &fakeStore{
		snap:      freshSnapshot(5),
		submitErr: errors.New("gateway timeout"),
		result:    session.Result{Score: 0, TotalQuestions: 5, Percentage: 0},
	}
	guard := &fakeGuard{}
	s := newStarted(t, store, clock, guard)
	defer s.Close()

	clock.Advance(31 * time.Minute)

	// The first auto-submit fails; the session must stay in progress and
	// keep firing the expiry path rather than strand an expired attempt.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		store.mu.Lock()
		calls := store.submitCalls
		store.mu.Unlock()
		if calls >= 1 {
			break
		}
		time.Sleep(time.Millisecond)
	}
	store.mu.Lock()
	if store.submitCalls == 0 {
		store.mu.Unlock()
		t.Fatal("auto-submit never fired after expiry")
	}
	store.submitErr = nil
	store.mu.Unlock()

	waitForPhase(t, s, session.PhaseSubmitted)
	if guard.isArmed() {
		t.Fatal("guard must be disarmed once the retried submit lands")
	}
	if got := s.RemainingSeconds(); got != 0 {
		t.Fatalf("RemainingSeconds = %d, want 0", got)
	}
}

func TestMutationsAfterCloseAreRejected(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(3)}
	s := newStarted(t, store, nil, nil)
	s.Close()

	if err := s.SelectAnswer("q1", 0); !errors.Is(err, session.ErrWrongPhase) {
		t.Fatalf("SelectAnswer after Close = %v, want ErrWrongPhase", err)
	}
	if err := s.ToggleMark("q2"); !errors.Is(err, session.ErrWrongPhase) {
		t.Fatalf("ToggleMark after Close = %v, want ErrWrongPhase", err)
	}
	s.GoTo(1)
	if got := s.CurrentIndex(); got != 0 {
		t.Fatalf("GoTo after Close moved to %d", got)
	}
	if err := s.Submit(context.Background(), session.TriggerManual); !errors.Is(err, session.ErrWrongPhase) {
		t.Fatalf("Submit after Close = %v, want ErrWrongPhase", err)
	}
}

func TestReviewModeRemainingDerivesFromStartedAt(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	score, pct := 2, 40.0
	clock := &fakeClock{now: start.Add(2 * time.Hour)}
	snap := freshSnapshot(5)
	snap.StartedAt = &start
	snap.SubmittedAt = &end
	snap.Score = &score
	snap.Percentage = &pct
	store := &fakeStore{snap: snap}
	s := session.New(session.Options{Store: store, Now: clock.Now})
	defer s.Close()

	if err := s.Load(context.Background(), "att-1"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s.Phase(); got != session.PhaseSubmitted {
		t.Fatalf("phase = %s, want %s", got, session.PhaseSubmitted)
	}
	if got := s.RemainingSeconds(); got != 0 {
		t.Fatalf("RemainingSeconds reviewing an expired attempt = %d, want 0", got)
	}
}

func TestSubmitWaitsForQueuedProgressWrites(t *testing.T) {
	store := &fakeStore{snap: freshSnapshot(5), result: session.Result{Score: 5, TotalQuestions: 5, Percentage: 100}}
	s := newStarted(t, store, nil, nil)
	defer s.Close()

	for i := 0; i < 5; i++ {
		if err := s.SelectAnswer(fmt.Sprintf("q%d", i+1), 1); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Submit(context.Background(), session.TriggerManual); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	got := store.lastAnswers()
	if len(got) != 5 {
		t.Fatalf("last persisted answers before submit had %d entries, want 5: %v", len(got), got)
	}
}
