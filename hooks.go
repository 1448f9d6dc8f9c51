package sevm

// Hook is a step observer: PreStep runs before the opcode at the current pc
// executes, PostStep after. Either may be nil. Ported from the teacher's
// PreRun/PostRun breakpoint mechanism (hook.go/hooks/breakpoint.go), with
// the REPL-facing breakpoint types and JSON (de)serialization dropped --
// nothing reads a saved breakpoint file once the REPL is gone (spec.md
// section 10).
type Hook struct {
	PreStep  func(*VM)
	PostStep func(*VM)
}

// Hooks is an ordered list of observers, run in registration order. A test
// harness can use this to implement single-stepping with breakpoints or to
// log every instruction executed, without touching exec1 itself.
type Hooks struct {
	hooks []Hook
}

func (h *Hooks) Add(hook Hook) {
	h.hooks = append(h.hooks, hook)
}

func (h *Hooks) runPre(m *VM) {
	for _, hk := range h.hooks {
		if hk.PreStep != nil {
			hk.PreStep(m)
		}
	}
}

func (h *Hooks) runPost(m *VM) {
	for _, hk := range h.hooks {
		if hk.PostStep != nil {
			hk.PostStep(m)
		}
	}
}

// StepWithHooks runs one step with observers firing around it, rather than
// the plain Step entrypoint.
func StepWithHooks(m *VM, h *Hooks) {
	h.runPre(m)
	Step(m)
	h.runPost(m)
}
