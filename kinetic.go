package tview

import (
	"math"
	"time"
)

const kineticSamples = 8

// KineticConfig tunes inertial scrolling.
type KineticConfig struct {
	// Interval is the animation tick period.
	Interval time.Duration
	// Decay multiplies the velocity once per Interval. Must be in (0, 1).
	Decay float64
	// MinVelocity in lines per second below which the motion stops.
	MinVelocity float64
	// MaxSampleAge drops drag samples older than this at release time.
	MaxSampleAge time.Duration
}

// DefaultKineticConfig returns the tuning used by NewList.
func DefaultKineticConfig() KineticConfig {
	return KineticConfig{
		Interval:     30 * time.Millisecond,
		Decay:        0.85,
		MinVelocity:  4,
		MaxSampleAge: 100 * time.Millisecond,
	}
}

// withDefaults replaces unusable fields by their defaults.
func (c KineticConfig) withDefaults() KineticConfig {
	d := DefaultKineticConfig()
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.Decay <= 0 || c.Decay >= 1 || math.IsNaN(c.Decay) {
		c.Decay = d.Decay
	}
	if c.MinVelocity <= 0 || math.IsNaN(c.MinVelocity) {
		c.MinVelocity = d.MinVelocity
	}
	if c.MaxSampleAge <= 0 {
		c.MaxSampleAge = d.MaxSampleAge
	}
	return c
}

type kineticSample struct {
	at       time.Time
	position int
}

// Kinetic estimates the release velocity of a drag and integrates a decaying
// motion from it. Drag samples carry the time the pointer event was read, not
// the time it was handled, so a burst of queued moves keeps its real pace.
type Kinetic struct {
	config KineticConfig

	samples [kineticSamples]kineticSample
	count   int
	next    int

	steady   bool
	velocity float64 // lines per second
	position float64
}

// NewKinetic returns a steady engine.
func NewKinetic(config KineticConfig) *Kinetic {
	return &Kinetic{
		config: config.withDefaults(),
		steady: true,
	}
}

// Config returns the effective configuration.
func (k *Kinetic) Config() KineticConfig {
	return k.config
}

func (k *Kinetic) record(position int, at time.Time) {
	k.samples[k.next] = kineticSample{at: at, position: position}
	k.next = (k.next + 1) % kineticSamples
	k.count = min(k.count+1, kineticSamples)
}

// MouseDown starts a new drag at position, discarding any motion.
func (k *Kinetic) MouseDown(position int, at time.Time) {
	k.count, k.next = 0, 0
	k.Stop()
	k.position = float64(position)
	k.record(position, at)
}

// MouseMove records a drag sample.
func (k *Kinetic) MouseMove(position int, at time.Time) {
	k.record(position, at)
}

// MouseUp ends the drag and derives the release velocity from the samples
// that are younger than MaxSampleAge.
func (k *Kinetic) MouseUp(position int, at time.Time) {
	k.record(position, at)
	k.position = float64(position)

	last := k.samples[(k.next+kineticSamples-1)%kineticSamples]
	oldest := last
	for i := 1; i < k.count; i++ {
		s := k.samples[(k.next+kineticSamples-1-i)%kineticSamples]
		if last.at.Sub(s.at) > k.config.MaxSampleAge {
			break
		}
		oldest = s
	}

	elapsed := last.at.Sub(oldest.at).Seconds()
	k.velocity = 0
	if elapsed > 0 {
		k.velocity = float64(last.position-oldest.position) / elapsed
	}
	k.steady = math.Abs(k.velocity) < k.config.MinVelocity
	if k.steady {
		k.velocity = 0
	}
}

// Tick advances the motion by one Interval and returns the new position.
func (k *Kinetic) Tick() (position int, steady bool) {
	if k.steady {
		return int(math.Round(k.position)), true
	}
	k.position += k.velocity * k.config.Interval.Seconds()
	k.velocity *= k.config.Decay
	if math.Abs(k.velocity) < k.config.MinVelocity {
		k.Stop()
	}
	return int(math.Round(k.position)), k.steady
}

// Stop ends the motion immediately.
func (k *Kinetic) Stop() {
	k.steady = true
	k.velocity = 0
}

func (k *Kinetic) IsSteady() bool { return k.steady }
func (k *Kinetic) Velocity() float64 { return k.velocity }
func (k *Kinetic) Position() int { return int(math.Round(k.position)) }
func (k *Kinetic) Interval() time.Duration { return k.config.Interval }

// MaxTicks returns an upper bound of ticks before a motion started at
// velocity v becomes steady.
func (k *Kinetic) MaxTicks(v float64) int {
	v = math.Abs(v)
	if v < k.config.MinVelocity {
		return 0
	}
	return int(math.Ceil(math.Log(k.config.MinVelocity/v)/math.Log(k.config.Decay))) + 1
}
