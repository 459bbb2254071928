package ablzw

// monitor tracks the dictionary's recent output/input bit ratio so the
// encoder can flush after a stretch of incompressible input. It only
// accumulates samples once the dictionary is full — a growing dictionary
// is never flushed, so output inflation while the dictionary grows is not
// limited by the monitor.
type monitor struct {
	ratio float64
	warm  uint32
}

// monitorDecay is the EWMA decay rate, alpha = 2^-12.
// monitorWarmup is the number of post-fill symbols the monitor must see
// before it will recommend a flush, so a brief unlucky run right after
// filling doesn't trigger a premature CLEAR.
const (
	monitorDecay  = 1.0 / 4096
	monitorWarmup = 256
)

func newMonitor() *monitor {
	return &monitor{}
}

// reset restores the monitor to its just-created state, mirroring a CLEAR.
func (m *monitor) reset() {
	m.ratio = 0
	m.warm = 0
}

// update folds in one emitted symbol's (inputBits, outputBits) sample.
// Samples before the dictionary is full are ignored.
func (m *monitor) update(full bool, inputBits, outputBits float64) {
	if !full || inputBits == 0 {
		return
	}
	sample := outputBits / inputBits
	if m.warm == 0 {
		m.ratio = sample
	} else {
		m.ratio += monitorDecay * (sample - m.ratio)
	}
	if m.warm < monitorWarmup {
		m.warm++
	}
}

// shouldFlush reports whether the smoothed ratio indicates the dictionary
// is net inflating the stream, past the warm-up window.
func (m *monitor) shouldFlush() bool {
	return m.warm >= monitorWarmup && m.ratio > 1.0
}
