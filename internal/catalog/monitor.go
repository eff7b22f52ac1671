package catalog

import "context"

// Monitor is the progress/cancellation handle threaded through every
// catalog call (spec §5). A Monitor in "stale" mode refuses to trigger
// network/disk reads and only returns already-cached answers; a "live"
// monitor performs real introspection reads.
type Monitor struct {
	live      bool
	cancelled func() bool
}

// NewLiveMonitor returns a monitor that permits real introspection I/O,
// for use when the data source has extra-metadata-read enabled.
func NewLiveMonitor(ctx context.Context) *Monitor {
	return &Monitor{live: true, cancelled: func() bool { return ctx.Err() != nil }}
}

// NewStaleMonitor returns a monitor restricted to cached answers, for use
// when extra-metadata-read is disabled or during child enumeration's
// default path (spec §5).
func NewStaleMonitor(ctx context.Context) *Monitor {
	return &Monitor{live: false, cancelled: func() bool { return ctx.Err() != nil }}
}

// AllowsIO reports whether this monitor may perform a live catalog read.
func (m *Monitor) AllowsIO() bool {
	return m != nil && m.live
}

// Cancelled reports whether the caller's context has been cancelled since
// the monitor was created.
func (m *Monitor) Cancelled() bool {
	return m != nil && m.cancelled != nil && m.cancelled()
}
