package cloud

// =============================================================================
// Scheduler state machine
// =============================================================================
//
// The scheduler is a pure reducer: step(event) returns the next machine and a
// list of effects for the Cloud to execute. It never touches the scene, the
// loop or the clock, which keeps every ordering rule testable in isolation.

type phase int

const (
	phaseIdle phase = iota
	phasePlacing
	phaseReconciling
)

func (p phase) String() string {
	switch p {
	case phasePlacing:
		return "placing"
	case phaseReconciling:
		return "reconciling"
	}
	return "idle"
}

type eventKind int

const (
	evSubmit     eventKind = iota // a new job replaces the pending slot
	evTick                        // the deferred start fired
	evPlaced                      // placement finished for the running job
	evReconciled                  // the scene resolved the running job
	evDestroy                     // the component is torn down
)

type event struct {
	kind      eventKind
	job       *Job
	abandoned bool
}

type effectKind int

const (
	effArm       effectKind = iota // defer a start to the next loop tick
	effDisarm                      // drop an armed deferred start
	effPlace                       // run placement for job
	effReconcile                   // reconcile job into the scene
	effClear                       // remove all scene content
	effMeasure                     // update containment status from the scene
	effComplete                    // store job as completed and emit RenderComplete
	effCoalesced                   // job was replaced in the pending slot
	effDiscard                     // placement result for job arrived stale
	effCancel                      // cancel in-flight placement
)

type effect struct {
	kind effectKind
	job  *Job
}

type machine struct {
	phase     phase
	armed     bool
	pending   *Job
	running   *Job
	destroyed bool
}

// busy reports whether a start is armed or a pipeline step is running.
func (m machine) busy() bool {
	return m.armed || m.phase != phaseIdle
}

// idle reports whether nothing is armed, running or pending.
func (m machine) idle() bool {
	return !m.busy() && m.pending == nil
}

func (m machine) step(ev event) (machine, []effect) {
	if m.destroyed {
		return m, nil
	}
	switch ev.kind {
	case evSubmit:
		return m.submit(ev.job)
	case evTick:
		return m.tick()
	case evPlaced:
		return m.placed(ev.job)
	case evReconciled:
		return m.reconciled(ev.abandoned)
	case evDestroy:
		return m.destroy()
	}
	return m, nil
}

func (m machine) submit(job *Job) (machine, []effect) {
	var effs []effect
	if m.pending != nil {
		effs = append(effs, effect{kind: effCoalesced, job: m.pending})
	}
	m.pending = job
	if !m.busy() {
		m.armed = true
		effs = append(effs, effect{kind: effArm})
	}
	return m, effs
}

func (m machine) tick() (machine, []effect) {
	m.armed = false
	if m.phase != phaseIdle || m.pending == nil {
		return m, nil
	}
	job := m.pending
	m.pending = nil
	m.running = job

	switch {
	case len(job.Words) == 0:
		effs := []effect{{kind: effClear, job: job}}
		if job.viewportValid() {
			effs = append(effs, effect{kind: effMeasure, job: job})
		}
		m.running = nil
		return m, append(effs, effect{kind: effComplete, job: job})
	case job.RefreshLayout && job.viewportValid():
		m.phase = phasePlacing
		return m, []effect{{kind: effPlace, job: job}}
	default:
		m.phase = phaseReconciling
		return m, []effect{{kind: effReconcile, job: job}}
	}
}

func (m machine) placed(job *Job) (machine, []effect) {
	if m.phase != phasePlacing {
		return m, nil
	}
	if m.pending != nil {
		// A newer job exists: drop this result and move on to it.
		m.phase = phaseIdle
		m.running = nil
		m.armed = true
		return m, []effect{{kind: effDiscard, job: job}, {kind: effArm}}
	}
	m.phase = phaseReconciling
	m.running = job
	return m, []effect{{kind: effReconcile, job: job}}
}

func (m machine) reconciled(abandoned bool) (machine, []effect) {
	if m.phase != phaseReconciling {
		return m, nil
	}
	job := m.running
	m.phase = phaseIdle
	m.running = nil

	if m.pending != nil {
		var effs []effect
		if !abandoned && job.viewportValid() {
			effs = append(effs, effect{kind: effMeasure, job: job})
		}
		m.armed = true
		return m, append(effs, effect{kind: effArm})
	}
	var effs []effect
	if job.viewportValid() {
		effs = append(effs, effect{kind: effMeasure, job: job})
	}
	return m, append(effs, effect{kind: effComplete, job: job})
}

func (m machine) destroy() (machine, []effect) {
	effs := []effect{{kind: effCancel}}
	if m.armed {
		effs = append(effs, effect{kind: effDisarm})
	}
	effs = append(effs, effect{kind: effClear})
	return machine{destroyed: true}, effs
}
