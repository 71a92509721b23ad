package wizard

import (
	"sync"

	"github.com/google/uuid"
)

// Store keeps per-session wizard state in memory. Sessions are keyed by the
// cookie session ID; state does not survive a restart, which matches the
// product's no-persistence stance.
type Store struct {
	mu     sync.Mutex
	states map[string]*state
}

type state struct {
	bundle Bundle
	runs   map[Step]*run
}

type run struct {
	id      string
	gen     uint64
	status  Status
	percent int
	phase   string
	err     string
}

func NewStore() *Store {
	return &Store{states: make(map[string]*state)}
}

func (s *Store) state(sid string) *state {
	st, ok := s.states[sid]
	if !ok {
		st = &state{runs: make(map[Step]*run)}
		s.states[sid] = st
	}
	return st
}

// Bundle returns a copy of the session's bundle.
func (s *Store) Bundle(sid string) Bundle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state(sid).bundle
}

// SetIdea replaces the idea section and clears every downstream section and
// run: a new idea invalidates all derived results.
func (s *Store) SetIdea(sid string, idea Idea) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(sid)
	st.bundle = Bundle{Idea: &idea}
	for step, r := range st.runs {
		r.gen++ // orphan in-flight goroutines
		delete(st.runs, step)
	}
}

// EditPromotion replaces the promotion text. Any SNS test result no longer
// reflects the content, so the upload section and its run are cleared.
func (s *Store) EditPromotion(sid, text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(sid)
	if st.bundle.AIContent == nil {
		return false
	}
	c := *st.bundle.AIContent
	c.Promotion = text
	st.bundle.AIContent = &c
	st.bundle.Upload = nil
	if r, ok := st.runs[StepUpload]; ok {
		r.gen++
		delete(st.runs, StepUpload)
	}
	return true
}

// Drop removes all wizard state for a session (logout).
func (s *Store) Drop(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[sid]; ok {
		for _, r := range st.runs {
			r.gen++
		}
	}
	delete(s.states, sid)
}

// begin creates (or supersedes) the run for a step and returns the run ID and
// generation token the worker goroutine must present on every write.
func (s *Store) begin(sid string, step Step) (string, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(sid)
	r, ok := st.runs[step]
	if !ok {
		r = &run{}
		st.runs[step] = r
	}
	r.gen++
	r.id = uuid.NewString()
	r.status = StatusRunning
	r.percent = 0
	r.phase = ""
	r.err = ""
	return r.id, r.gen
}

// running reports whether a live run exists for the step.
func (s *Store) running(sid string, step Step) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state(sid).runs[step]
	return ok && r.status == StatusRunning
}

// progress returns the visible state of a step's run. A step with no run
// reports StatusWaiting.
func (s *Store) progress(sid string, step Step) Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(sid)
	r, ok := st.runs[step]
	if !ok {
		return Progress{Status: StatusWaiting}
	}
	p := Progress{Status: r.status, Percent: r.percent, Phase: r.phase, Err: r.err}
	if step == StepAIContent && st.bundle.AIContent != nil {
		p.Degraded = st.bundle.AIContent.Degraded
	}
	return p
}

// update applies a progress change if gen still identifies the live run.
// Superseded goroutines fail the check and their writes are dropped.
func (s *Store) update(sid string, step Step, gen uint64, percent int, phase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state(sid).runs[step]
	if !ok || r.gen != gen {
		return
	}
	if percent > r.percent {
		r.percent = percent
	}
	if phase != "" {
		r.phase = phase
	}
}

// finish completes the live run and merges the produced section via apply.
func (s *Store) finish(sid string, step Step, gen uint64, apply func(*Bundle)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(sid)
	r, ok := st.runs[step]
	if !ok || r.gen != gen {
		return false
	}
	apply(&st.bundle)
	r.status = StatusDone
	r.percent = 100
	return true
}

// fail marks the live run failed.
func (s *Store) fail(sid string, step Step, gen uint64, msg string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state(sid).runs[step]
	if !ok || r.gen != gen {
		return false
	}
	r.status = StatusFailed
	r.err = msg
	return true
}
