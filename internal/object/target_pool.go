package object

// TargetPool is the arena of live targets. Active targets occupy
// slots[0:n]; slots past n are free. Activation takes slots[n] and removal
// swaps the removed slot with the last active one, so a slot is only ever
// reused after it has left the active range.
//
// A pooled arena pre-allocates every slot once and never allocates again.
// An unpooled arena allocates a fresh Target per activation and drops the
// reference on release.
type TargetPool struct {
	spec      *TargetSpec
	slots     []*Target
	n         int
	pooled    bool
	allocated int
}

// NewTargetPool creates an arena holding at most capacity live targets.
func NewTargetPool(spec *TargetSpec, capacity int, pooled bool) *TargetPool {
	if capacity < 0 {
		capacity = 0
	}
	p := &TargetPool{
		spec:   spec,
		slots:  make([]*Target, capacity),
		pooled: pooled,
	}
	if pooled {
		for i := range p.slots {
			p.slots[i] = NewTarget(spec)
		}
		p.allocated = capacity
	}
	return p
}

// Activate resets a free slot into a fresh random target and returns it.
// It returns false when every slot is in use.
func (p *TargetPool) Activate(field Field, rng *Rand) (*Target, bool) {
	if p.n >= len(p.slots) {
		return nil, false
	}
	t := p.slots[p.n]
	if t == nil || !p.pooled {
		t = NewTarget(p.spec)
		p.slots[p.n] = t
		p.allocated++
	}
	t.Reset(field, rng)
	p.n++
	return t, true
}

// Release removes the i-th active target.
func (p *TargetPool) Release(i int) {
	if i < 0 || i >= p.n {
		panic("object: target index out of range")
	}
	last := p.n - 1
	p.slots[i], p.slots[last] = p.slots[last], p.slots[i]
	if !p.pooled {
		p.slots[last] = nil
	}
	p.n--
}

// Sweep releases every target marked destroyed and returns how many were
// released. Iterates from the end so swapped-in targets were already visited.
func (p *TargetPool) Sweep() int {
	released := 0
	for i := p.n - 1; i >= 0; i-- {
		if p.slots[i].IsDestroyed() {
			p.Release(i)
			released++
		}
	}
	return released
}

// Active returns the live targets. The slice is only valid until the next
// Activate, Release or Sweep.
func (p *TargetPool) Active() []*Target {
	return p.slots[:p.n]
}

// Len returns the number of live targets.
func (p *TargetPool) Len() int {
	return p.n
}

// Cap returns the maximum number of live targets.
func (p *TargetPool) Cap() int {
	return len(p.slots)
}

// Allocated returns how many Target values the arena has allocated so far.
func (p *TargetPool) Allocated() int {
	return p.allocated
}
