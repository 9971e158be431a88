package interp

import "github.com/cwbudde/go-es5ix/internal/object"

// This file gives the recursive execStatement/evalExpression dispatcher in
// statements.go/expressions.go a genuine Step() surface (spec.md §4.2/§6.2)
// without rewriting it into an explicit, non-recursive state machine: the
// statement tree walk runs on its own goroutine ("the worker"), parked on a
// pair of unbuffered rendezvous channels, and every existing countStep()
// call site (one per statement, one per while-loop iteration) becomes a handoff
// point back to whichever goroutine — host or worker — is supposed to be
// running. The host and worker alternate strictly (a send always pairs with
// a receive before either side touches shared Interpreter state again), so
// no field here needs a mutex: Go's channel happens-before guarantee is the
// only synchronization primitive in play. spec.md §9 describes a simpler
// single-flag pause for async natives ("no concurrency primitive is
// required"); this module needs one anyway to also make Step() resumable
// at ordinary statement boundaries, not just at async calls — see
// DESIGN.md "Step machine".

type workerState int

const (
	stateNotStarted workerState = iota
	stateReady
	stateAsyncPaused
	stateDone
)

type stepOutcome int

const (
	outcomeStepped stepOutcome = iota
	outcomeAsyncPaused
	outcomeDone
)

// asyncDelivery is what the host hands the worker at a rendezvous: either
// a bare step grant (zero value) or the resumed value/error for whichever
// call is parked in suspendForAsyncResult.
type asyncDelivery struct {
	value object.Value
	err   error
}

type hostSignal struct {
	kind stepOutcome
}

// stepWorker is the pair of unbuffered channels the host and the goroutine
// running execStatement rendezvous on.
type stepWorker struct {
	toWorker chan asyncDelivery
	toHost   chan hostSignal
}

func newStepWorker() *stepWorker {
	return &stepWorker{
		toWorker: make(chan asyncDelivery),
		toHost:   make(chan hostSignal),
	}
}

// pause hands control to the host and blocks until the host grants the
// next delivery. Called from the worker goroutine only.
func (w *stepWorker) pause(kind stepOutcome) asyncDelivery {
	w.toHost <- hostSignal{kind: kind}
	return <-w.toWorker
}

// ensureWorker lazily starts the goroutine that drives i.program.Body
// through execStatement. It is only ever called from the host side.
func (i *Interpreter) ensureWorker() {
	if i.worker != nil {
		return
	}
	i.worker = newStepWorker()
	i.workerState = stateReady
	go i.runWorker(i.worker)
}

// runWorker walks i.program.Body starting at i.processedIdx (so statements
// appended via AppendCode after a prior Run/Step completed are picked up),
// pausing at every countStep() rendezvous until the host grants the next
// step. It owns i.runResult/i.runErr/i.processedIdx once it starts and
// publishes them only immediately before signaling outcomeDone, which the
// host only reads after receiving that signal.
func (i *Interpreter) runWorker(w *stepWorker) {
	<-w.toWorker // wait for the first step grant before touching program state

	root := i.frames[0]
	last := i.runResult
	var finalErr error
	idx := i.processedIdx

walk:
	for ; idx < len(i.program.Body); idx++ {
		stmt := i.program.Body[idx]
		comp, err := i.execStatement(root, stmt)
		if err != nil {
			finalErr = err
			break walk
		}
		switch comp.Type {
		case CompletionThrow:
			finalErr = &HostError{Guest: newGuestError(i.frames, comp.Value)}
			break walk
		case CompletionReturn:
			last = comp.Value
			idx++
			break walk
		}
		if comp.Type == CompletionNormal && comp.Value != nil {
			last = comp.Value
		}
	}

	i.processedIdx = idx
	i.runResult = last
	i.runErr = finalErr
	w.toHost <- hostSignal{kind: outcomeDone}
}

// grant sends delivery to the parked worker and waits for its next signal.
// Called from the host side only.
func (i *Interpreter) grant(delivery asyncDelivery) hostSignal {
	i.worker.toWorker <- delivery
	return <-i.worker.toHost
}

func (i *Interpreter) applySignal(sig hostSignal) (bool, error) {
	switch sig.kind {
	case outcomeDone:
		i.workerState = stateDone
		return false, i.runErr
	case outcomeAsyncPaused:
		i.workerState = stateAsyncPaused
		return true, nil
	default:
		i.workerState = stateReady
		return true, nil
	}
}

// Step advances the engine to the next countStep() rendezvous (ordinarily
// the next statement or loop iteration boundary) or to completion, per
// spec.md §6.2's step(): "Advance until the next user-code step or
// completion; returns whether work remains." If the engine is parked on an
// async native call, Step does not itself resume it — that would silently
// deliver an empty value to whatever is waiting on the real result — the
// host must call Resume/ResumeValue/ResumeError instead.
func (i *Interpreter) Step() (bool, error) {
	if i.workerState == stateDone {
		if i.runErr != nil || len(i.program.Body) <= i.processedIdx {
			return false, i.runErr
		}
		i.worker = nil // fresh code appended after completion: restart the walk
	}
	if i.workerState == stateAsyncPaused {
		return true, nil
	}
	i.ensureWorker()
	sig := i.grant(asyncDelivery{})
	return i.applySignal(sig)
}

// Run executes every statement appended so far to completion, or until an
// async native call suspends it, or until an uncaught exception/step-budget
// overrun ends it — spec.md §6.2 run(): "Step until paused_, exception, or
// completion; returns paused_." (the Go signature here returns the last
// completion value instead, matching this package's existing Run contract
// and every caller of it).
func (i *Interpreter) Run() (object.Value, error) {
	for {
		more, err := i.Step()
		if err != nil {
			return nil, err
		}
		if !more || i.workerState == stateAsyncPaused {
			return i.runResult, nil
		}
	}
}

// suspendForAsyncResult is callNative's hook for a KindAsyncFn call: it
// parks the worker exactly as spec.md §4.5 describes ("the engine sets
// paused_ = true and returns"), then resumes with whatever ResumeValue or
// ResumeError eventually delivers as that call's own result.
func (i *Interpreter) suspendForAsyncResult() (object.Value, *GuestError) {
	if i.worker == nil {
		// No host driving Step/Run around this call (e.g. a unit test that
		// invokes callNative directly) — there's no rendezvous partner to
		// park against, so fall back to the synchronous pre-review
		// behavior rather than deadlock.
		return object.Undefined{}, nil
	}
	delivery := i.worker.pause(outcomeAsyncPaused)
	if delivery.err != nil {
		if ge, ok := delivery.err.(*GuestError); ok {
			return nil, ge
		}
		return nil, &GuestError{Value: i.newErrorObject("Error", delivery.err.Error())}
	}
	if delivery.value == nil {
		return object.Undefined{}, nil
	}
	return delivery.value, nil
}

// Suspend asks the engine to pause at the next countStep() rendezvous —
// the host-discretionary "between any two steps" suspension point spec.md
// §5 describes, distinct from the automatic pause an async native call
// triggers.
func (i *Interpreter) Suspend() { i.pauseRequested = true }

// Paused reports whether the engine is currently parked awaiting a
// host-driven Resume/ResumeValue/ResumeError.
func (i *Interpreter) Paused() bool { return i.workerState == stateAsyncPaused }

// Resume continues a paused engine with no particular value, for a plain
// Suspend()-triggered pause.
func (i *Interpreter) Resume() (bool, error) { return i.ResumeValue(object.Undefined{}) }

// ResumeValue delivers v as the result of whatever async native call is
// currently parked (or is ignored, for a plain Suspend()-triggered pause)
// and continues stepping until the next rendezvous.
func (i *Interpreter) ResumeValue(v object.Value) (bool, error) {
	if i.workerState != stateAsyncPaused {
		return i.workerState != stateDone, nil
	}
	sig := i.grant(asyncDelivery{value: v})
	return i.applySignal(sig)
}

// ResumeError delivers err so the parked async native call throws it as a
// guest exception instead of returning a value.
func (i *Interpreter) ResumeError(err error) (bool, error) {
	if i.workerState != stateAsyncPaused {
		return i.workerState != stateDone, nil
	}
	sig := i.grant(asyncDelivery{err: err})
	return i.applySignal(sig)
}
