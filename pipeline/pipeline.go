package pipeline

import (
	"log"
	"sync"
	"time"

	"kampung-service-server/clock"
)

// Outcome is the terminal result of a verification pipeline run. The demo
// client picks the outcome it wants to exercise; the pipeline just delivers
// it after the staged delays.
type Outcome string

const (
	OutcomeSuccess           Outcome = "success"
	OutcomeSyncError         Outcome = "sync_error"
	OutcomeTimeout           Outcome = "timeout"
	OutcomeInvalidInfo       Outcome = "invalid_info"
	OutcomeInsufficientFunds Outcome = "insufficient_funds"
	OutcomeConfirmationError Outcome = "confirmation_error"
)

// IsSuccess reports whether the outcome allows the caller's success transition
func (o Outcome) IsSuccess() bool {
	return o == OutcomeSuccess
}

// Message returns the user-facing text for a failure outcome. Every failure
// kind maps to one distinct message and is retryable.
func (o Outcome) Message() string {
	switch o {
	case OutcomeSyncError:
		return "We could not sync your booking with the village hub. Please try again."
	case OutcomeTimeout:
		return "Payment gateway is unreachable. Please try again."
	case OutcomeInvalidInfo:
		return "Invalid payment information provided."
	case OutcomeInsufficientFunds:
		return "Insufficient funds in your account."
	case OutcomeConfirmationError:
		return "Could not confirm job completion. Check your connection and retry."
	}
	return ""
}

// Stage is one step of a pipeline; Delay is the time spent in the stage
// before advancing to the next one (or resolving, for the last stage).
type Stage struct {
	Label string        `json:"label"`
	Delay time.Duration `json:"-"`
}

// Run is one in-flight pipeline execution. The current stage index is
// observable so a view can render "stage k of n" while waiting.
type Run struct {
	mu      sync.Mutex
	stages  []Stage
	stage   int
	done    bool
	outcome Outcome
}

// CurrentStage returns the 1-based stage index and whether the run resolved
func (r *Run) CurrentStage() (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stage, r.done
}

// Outcome returns the terminal outcome; only meaningful once done is true
func (r *Run) Outcome() (Outcome, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcome, r.done
}

// Stages returns the stage labels for rendering
func (r *Run) Stages() []Stage {
	return r.stages
}

// Runner schedules verification pipelines on the injected clock
type Runner struct {
	clk clock.Clock
}

func NewRunner(clk clock.Clock) *Runner {
	return &Runner{clk: clk}
}

// Start kicks off a pipeline run. Stage 1 is current immediately; each
// stage's delay elapses before the next becomes current, and the last
// stage's delay elapses before onDone fires with the configured outcome.
// onDone is called exactly once, from a timer callback; callers are
// responsible for re-checking entity state before applying the success
// transition (cancellation may have interleaved).
func (p *Runner) Start(name string, stages []Stage, outcome Outcome, onDone func(Outcome)) *Run {
	run := &Run{stages: stages, stage: 1}
	log.Printf("⏳ Pipeline %q started (%d stages, outcome %s)", name, len(stages), outcome)

	offset := time.Duration(0)
	for i, stage := range stages {
		offset += stage.Delay
		if i == len(stages)-1 {
			p.clk.AfterFunc(offset, func() {
				run.mu.Lock()
				run.done = true
				run.outcome = outcome
				run.mu.Unlock()
				log.Printf("⏳ Pipeline %q resolved: %s", name, outcome)
				if onDone != nil {
					onDone(outcome)
				}
			})
			continue
		}
		next := i + 2 // stage indexes are 1-based
		p.clk.AfterFunc(offset, func() {
			run.mu.Lock()
			if !run.done {
				run.stage = next
			}
			run.mu.Unlock()
			log.Printf("⏳ Pipeline %q advanced to stage %d/%d", name, next, len(stages))
		})
	}

	return run
}
