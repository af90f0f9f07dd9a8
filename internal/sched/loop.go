// Package sched is a small deferred-callback scheduler standing in for
// the host application's shared event loop. The telnet front end never
// hands it to sessions directly; each bridge sees it through a
// SchedulerGuard.
package sched

import "sync"

// Loop runs queued callbacks on a single goroutine, in order. Submit
// runs work off-loop. Stop and Close end the loop after draining
// whatever is already queued.
type Loop struct {
	fns  chan func()
	done chan struct{}
	once sync.Once
}

func NewLoop() *Loop {
	l := &Loop{
		fns:  make(chan func(), 128),
		done: make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.fns:
			fn()
		case <-l.done:
			for {
				select {
				case fn := <-l.fns:
					fn()
				default:
					return
				}
			}
		}
	}
}

// CallLater queues fn to run on the loop goroutine. Dropped if the loop
// has been stopped.
func (l *Loop) CallLater(fn func()) {
	select {
	case l.fns <- fn:
	case <-l.done:
	}
}

// Submit runs fn as a background task.
func (l *Loop) Submit(fn func()) {
	go fn()
}

func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

func (l *Loop) Close() {
	l.Stop()
}

// AddReader and RemoveReader exist to satisfy the scheduler surface; no
// component in this repository polls descriptors.
func (l *Loop) AddReader(fd int, cb func()) {
	panic("sched: readiness polling is not implemented")
}

func (l *Loop) RemoveReader(fd int) {
	panic("sched: readiness polling is not implemented")
}
