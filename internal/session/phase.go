package session

// Phase is the lifecycle state of an attempt session. Transitions only move
// forward: Loading -> Instructions -> InProgress -> Submitting -> Submitted.
// A session that resumes an already-started attempt skips Instructions.
type Phase string

const (
	PhaseLoading      Phase = "LOADING"
	PhaseInstructions Phase = "INSTRUCTIONS"
	PhaseInProgress   Phase = "IN_PROGRESS"
	PhaseSubmitting   Phase = "SUBMITTING"
	PhaseSubmitted    Phase = "SUBMITTED"
)

// SubmitTrigger records what initiated a submission. The manual trigger is
// the normal flow; timer and escape converge on the same submission path.
type SubmitTrigger string

const (
	TriggerManual SubmitTrigger = "manual"
	TriggerTimer  SubmitTrigger = "timer"
	TriggerEscape SubmitTrigger = "escape"
)
