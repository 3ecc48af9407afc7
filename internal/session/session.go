package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Notifier receives user-facing events from a session. Hosts render these
// however they like (terminal output, webview bridge). All callbacks are
// invoked while the session lock is held, so they must not call back into
// the session.
type Notifier interface {
	PhaseChanged(phase Phase)
	Tick(remainingSeconds int)
	Toast(message string)
}

// NopNotifier discards all events.
type NopNotifier struct{}

func (NopNotifier) PhaseChanged(Phase) {}
func (NopNotifier) Tick(int)           {}
func (NopNotifier) Toast(string)       {}

// Options configures a Session. Store is required; everything else has a
// working default.
type Options struct {
	Store    AttemptStore
	Notifier Notifier
	Guard    Guard
	// Now and TickInterval are injectable for tests.
	Now          func() time.Time
	TickInterval time.Duration
}

// Session drives one timed attempt from load to submission. Local state is
// authoritative for the lifetime of the session: mutations apply immediately
// and are persisted in the background as full snapshots, so a late or failed
// write is corrected by the next one. Only Load, Start and Submit block on
// the store, because they gate phase transitions.
//
// The browser this behavior comes from is single-threaded; here one mutex
// serializes user operations, timer callbacks and persistence snapshots.
type Session struct {
	store    AttemptStore
	notifier Notifier
	guard    Guard
	now      func() time.Time
	tick     time.Duration

	mu           sync.Mutex
	phase        Phase
	attemptID    string
	testID       string
	testTitle    string
	duration     time.Duration
	instructions []string
	questions    []Question
	answers      map[string]int
	marked       map[string]bool
	visited      map[string]bool
	current      int
	startedAt    time.Time
	result       *Result
	timer        *timer
	starting     bool
	closed       bool

	persistCh chan Progress
	persists  sync.WaitGroup
	closeOnce sync.Once
}

func New(opts Options) *Session {
	if opts.Store == nil {
		panic("session: Options.Store is required")
	}
	s := &Session{
		store:    opts.Store,
		notifier: opts.Notifier,
		guard:    opts.Guard,
		now:      opts.Now,
		tick:     opts.TickInterval,
		phase:    PhaseLoading,
		answers:  make(map[string]int),
		marked:   make(map[string]bool),
		visited:  make(map[string]bool),
	}
	if s.notifier == nil {
		s.notifier = NopNotifier{}
	}
	if s.guard == nil {
		s.guard = NopGuard{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.tick <= 0 {
		s.tick = time.Second
	}
	s.persistCh = make(chan Progress, 16)
	go s.persistWorker()
	return s
}

// Load fetches the attempt and reconstructs local state. The resulting phase
// depends on the stored timestamps: no startedAt means Instructions, a
// startedAt without submittedAt resumes straight into InProgress, and a
// submittedAt lands in Submitted review mode. Remaining time is derived from
// startedAt, so time lost while disconnected still counts.
func (s *Session) Load(ctx context.Context, attemptID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseLoading {
		return ErrWrongPhase
	}

	snap, err := s.store.Load(ctx, attemptID)
	if err != nil {
		return fmt.Errorf("loading attempt %s: %w", attemptID, err)
	}

	s.attemptID = snap.AttemptID
	s.testID = snap.TestID
	s.testTitle = snap.TestTitle
	s.duration = time.Duration(snap.DurationMinutes) * time.Minute
	s.questions = snap.Questions

	s.instructions = snap.Instructions
	if len(s.instructions) == 0 {
		s.instructions = defaultInstructions
	}

	for id, idx := range snap.Answers {
		s.answers[id] = idx
	}
	for _, q := range snap.Questions {
		if q.SelectedAnswer != nil {
			s.answers[q.ID] = *q.SelectedAnswer
		}
	}
	for _, id := range snap.MarkedQuestions {
		s.marked[id] = true
	}
	for _, id := range snap.VisitedQuestions {
		s.visited[id] = true
	}
	for id := range s.answers {
		s.visited[id] = true
	}
	for id := range s.marked {
		s.visited[id] = true
	}
	if snap.StartedAt != nil {
		s.startedAt = *snap.StartedAt
	}

	s.current = snap.CurrentQuestionIndex
	if s.current < 0 || s.current >= len(s.questions) {
		s.current = 0
	}

	switch {
	case snap.SubmittedAt != nil:
		s.phase = PhaseSubmitted
		if snap.Score != nil && snap.Percentage != nil {
			s.result = &Result{
				Score:          *snap.Score,
				TotalQuestions: snap.TotalQuestions,
				Percentage:     *snap.Percentage,
			}
		}
	case snap.StartedAt != nil:
		s.enterInProgressLocked()
	default:
		s.phase = PhaseInstructions
	}

	s.notifier.PhaseChanged(s.phase)
	return nil
}

// Start marks the attempt started and begins the countdown. Only valid from
// the Instructions phase; a failed start stays there so the user can retry.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.closed || s.phase != PhaseInstructions || s.starting {
		s.mu.Unlock()
		return ErrWrongPhase
	}
	s.starting = true
	s.mu.Unlock()

	startedAt, err := s.store.Start(ctx, s.attemptID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.starting = false
	if err != nil {
		s.notifier.Toast("Failed to start test. Please try again.")
		return fmt.Errorf("starting attempt %s: %w", s.attemptID, err)
	}

	s.startedAt = startedAt
	s.enterInProgressLocked()
	s.notifier.PhaseChanged(s.phase)
	s.notifier.Toast("Test started! Timer is now running.")
	return nil
}

// enterInProgressLocked arms the guard, marks the current question visited
// and starts the countdown goroutine.
func (s *Session) enterInProgressLocked() {
	s.phase = PhaseInProgress
	if len(s.questions) > 0 {
		s.visited[s.questions[s.current].ID] = true
	}
	s.guard.Arm()

	s.timer = newTimer(s.now, s.startedAt, s.duration)
	go s.timer.run(s.tick, s.onTick, s.onExpire)
}

func (s *Session) onTick(remaining time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase != PhaseInProgress {
		return
	}
	s.notifier.Tick(int(remaining / time.Second))
}

func (s *Session) onExpire() {
	s.mu.Lock()
	inProgress := s.phase == PhaseInProgress
	s.mu.Unlock()
	if !inProgress {
		return
	}
	if err := s.Submit(context.Background(), TriggerTimer); err != nil {
		log.Warn().Err(err).Str("attemptID", s.attemptID).Msg("Auto-submit on timer expiry failed")
	}
}

// SelectAnswer records an answer for a question. The question id must belong
// to the loaded set and the option index must be within the question's
// option list; violating either is a caller bug, not a runtime condition.
func (s *Session) SelectAnswer(questionID string, optionIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase != PhaseInProgress {
		return ErrWrongPhase
	}

	q := s.questionByIDLocked(questionID)
	if q == nil {
		panic(fmt.Sprintf("session: unknown question id %q", questionID))
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		panic(fmt.Sprintf("session: option index %d out of range for question %s (%d options)",
			optionIndex, questionID, len(q.Options)))
	}

	s.answers[questionID] = optionIndex
	s.visited[questionID] = true

	answers := s.answersCopyLocked()
	visited := s.visitedCopyLocked()
	s.persist(Progress{Answers: &answers, VisitedQuestions: &visited})
	return nil
}

// ToggleMark flips a question's membership in the marked-for-review set.
func (s *Session) ToggleMark(questionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase != PhaseInProgress {
		return ErrWrongPhase
	}
	if s.questionByIDLocked(questionID) == nil {
		panic(fmt.Sprintf("session: unknown question id %q", questionID))
	}

	if s.marked[questionID] {
		delete(s.marked, questionID)
	} else {
		s.marked[questionID] = true
		s.visited[questionID] = true
	}

	marked := s.markedCopyLocked()
	visited := s.visitedCopyLocked()
	s.persist(Progress{MarkedQuestions: &marked, VisitedQuestions: &visited})
	return nil
}

// GoTo moves the current question pointer. Out-of-bounds targets are no-ops.
func (s *Session) GoTo(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase != PhaseInProgress {
		return
	}
	if index < 0 || index >= len(s.questions) {
		return
	}

	s.current = index
	s.visited[s.questions[index].ID] = true

	idx := index
	visited := s.visitedCopyLocked()
	s.persist(Progress{CurrentQuestionIndex: &idx, VisitedQuestions: &visited})
}

func (s *Session) Next() {
	s.mu.Lock()
	target := s.current + 1
	s.mu.Unlock()
	s.GoTo(target)
}

func (s *Session) Previous() {
	s.mu.Lock()
	target := s.current - 1
	s.mu.Unlock()
	s.GoTo(target)
}

// Submit finalizes the attempt. All triggers (manual, timer expiry, escape
// key) converge here; the Submitting phase guards against a second submit
// racing the first, and a submit against an already-finished session is a
// silent no-op. On store failure the phase reverts to InProgress with local
// state intact, so the user can retry.
func (s *Session) Submit(ctx context.Context, trigger SubmitTrigger) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrWrongPhase
	}
	switch s.phase {
	case PhaseSubmitting, PhaseSubmitted:
		s.mu.Unlock()
		return nil
	case PhaseInProgress:
	default:
		s.mu.Unlock()
		return ErrWrongPhase
	}
	s.phase = PhaseSubmitting
	s.notifier.PhaseChanged(s.phase)
	s.mu.Unlock()

	// Let in-flight snapshot writes land so the server scores the answers
	// the user actually sees.
	s.persists.Wait()

	result, err := s.store.Submit(ctx, s.attemptID)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.phase = PhaseInProgress
		// The timer goroutine exits after signalling expiry, so a failed
		// submit of an expired attempt re-arms it; the expiry fires again
		// on the next tick and the auto-submit retries until the store
		// recovers.
		if !s.closed && s.timer != nil && s.timer.remaining() == 0 {
			s.timer.stop()
			s.timer = newTimer(s.now, s.startedAt, s.duration)
			go s.timer.run(s.tick, s.onTick, s.onExpire)
		}
		s.notifier.PhaseChanged(s.phase)
		s.notifier.Toast("Failed to submit test. Please try again.")
		return fmt.Errorf("submitting attempt %s: %w", s.attemptID, err)
	}

	s.result = result
	s.phase = PhaseSubmitted
	if s.timer != nil {
		s.timer.stop()
	}
	s.guard.Disarm()
	s.notifier.PhaseChanged(s.phase)

	switch trigger {
	case TriggerTimer:
		s.notifier.Toast("Time's up! Test auto-submitted.")
	case TriggerEscape:
		s.notifier.Toast("Test submitted successfully via ESC key!")
	default:
		s.notifier.Toast("Test submitted successfully!")
	}
	return nil
}

// Close tears the session down: the timer stops, the guard is released and
// queued persistence calls are drained. Mutations after Close are rejected
// with ErrWrongPhase.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.stop()
	}
	s.guard.Disarm()
	s.mu.Unlock()
	s.persists.Wait()
	s.closeOnce.Do(func() { close(s.persistCh) })
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// RemainingSeconds reports the time left on the attempt: the full duration
// before it starts, and the deadline-derived remainder once a start
// timestamp exists, so an expired attempt reads zero even in review mode.
func (s *Session) RemainingSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		return int(s.timer.remaining() / time.Second)
	}
	if s.startedAt.IsZero() {
		return int(s.duration / time.Second)
	}
	left := s.startedAt.Add(s.duration).Sub(s.now())
	if left < 0 {
		left = 0
	}
	return int(left / time.Second)
}

// CurrentIndex returns the current question pointer.
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentQuestion returns the question under the pointer, with any local
// answer applied.
func (s *Session) CurrentQuestion() Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.questions[s.current]
	if idx, ok := s.answers[q.ID]; ok {
		v := idx
		q.SelectedAnswer = &v
	}
	return q
}

// Questions returns a copy of the loaded question set with local answers
// applied.
func (s *Session) Questions() []Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Question, len(s.questions))
	copy(out, s.questions)
	for i := range out {
		if idx, ok := s.answers[out[i].ID]; ok {
			v := idx
			out[i].SelectedAnswer = &v
		}
	}
	return out
}

// Instructions returns the instruction list shown before starting.
func (s *Session) Instructions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.instructions
}

// TestTitle returns the title of the test being attempted.
func (s *Session) TestTitle() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.testTitle
}

// Result returns the scored outcome, or nil before submission.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Status derives the palette status of the question at the given index.
func (s *Session) Status(index int) QuestionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return deriveStatus(s.questions[index].ID, s.answers, s.marked, s.visited)
}

// QuestionStats summarizes statuses across all questions.
func (s *Session) QuestionStats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	var st Stats
	for _, q := range s.questions {
		if _, ok := s.answers[q.ID]; ok {
			st.Answered++
		} else {
			st.Unanswered++
		}
		if s.marked[q.ID] {
			st.Marked++
		}
		if !s.visited[q.ID] {
			st.NotVisited++
		}
	}
	return st
}

func (s *Session) questionByIDLocked(id string) *Question {
	for i := range s.questions {
		if s.questions[i].ID == id {
			return &s.questions[i]
		}
	}
	return nil
}

func (s *Session) answersCopyLocked() map[string]int {
	out := make(map[string]int, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

func (s *Session) markedCopyLocked() []string {
	out := make([]string, 0, len(s.marked))
	for _, q := range s.questions {
		if s.marked[q.ID] {
			out = append(out, q.ID)
		}
	}
	return out
}

func (s *Session) visitedCopyLocked() []string {
	out := make([]string, 0, len(s.visited))
	for _, q := range s.questions {
		if s.visited[q.ID] {
			out = append(out, q.ID)
		}
	}
	return out
}

// persist queues a snapshot write. Writes are sent one at a time in the
// order the mutations happened; failures are logged and swallowed. Local
// state is never rolled back, and because every write is a full snapshot,
// the next one carries a dropped change forward.
func (s *Session) persist(p Progress) {
	s.persists.Add(1)
	s.persistCh <- p
}

func (s *Session) persistWorker() {
	for p := range s.persistCh {
		if err := s.store.UpdateProgress(context.Background(), s.attemptID, p); err != nil {
			log.Warn().Err(err).Str("attemptID", s.attemptID).Msg("Failed to persist attempt progress")
		}
		s.persists.Done()
	}
}
