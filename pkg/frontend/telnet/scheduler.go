package telnet

// SchedulerGuard narrows a host scheduler to what an embedded line
// editor legitimately needs. Deferred callbacks and background tasks
// pass through; Stop and Close are swallowed, so an editor that thinks
// it owns the loop cannot halt the scheduler every other session runs
// on. Readiness registration panics: bridges are fed data by their
// transport and must never register their own descriptors, so a call
// here is a wiring bug, not a runtime condition.
type SchedulerGuard struct {
	host Scheduler
}

func NewSchedulerGuard(host Scheduler) *SchedulerGuard {
	return &SchedulerGuard{host: host}
}

func (g *SchedulerGuard) CallLater(fn func()) {
	g.host.CallLater(fn)
}

func (g *SchedulerGuard) Submit(fn func()) {
	g.host.Submit(fn)
}

// Stop is ignored. The host scheduler is shared.
func (g *SchedulerGuard) Stop() {}

// Close is ignored. The host scheduler is shared.
func (g *SchedulerGuard) Close() {}

func (g *SchedulerGuard) AddReader(fd int, cb func()) {
	panic("telnet: guarded scheduler does not support descriptor registration")
}

func (g *SchedulerGuard) RemoveReader(fd int) {
	panic("telnet: guarded scheduler does not support descriptor registration")
}
