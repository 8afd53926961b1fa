package fx

// Frame is handed to every effect during one scheduler tick.
type Frame struct {
	DeltaTime float64
	Commands  *Commands
}

func newFrame(dt float64) *Frame {
	return &Frame{
		DeltaTime: dt,
		Commands:  &Commands{},
	}
}

// Commands buffers work requested by effects during a tick. It runs once
// every effect has been updated.
type Commands struct {
	spawns []Effect
	defers []func()
}

// Spawn queues an effect to start on the next tick.
func (c *Commands) Spawn(e Effect) {
	c.spawns = append(c.spawns, e)
}

// Defer queues a function to run at the end of the tick.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Flush adds queued effects to s and runs deferred functions, resetting the
// buffer.
func (c *Commands) Flush(s *Scheduler) {
	for _, e := range c.spawns {
		s.Add(e)
	}
	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.defers = c.defers[:0]
}
