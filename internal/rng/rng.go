package rng

// Mulberry32 is a single-word-state PRNG. The constants are part of the
// replay contract: two engines with the same seed must produce identical
// shuffles on every platform, so all arithmetic is explicit unsigned 32-bit
// wrapping. Do not substitute another generator.
type Mulberry32 struct {
	state uint32
}

func New(seed uint32) *Mulberry32 {
	return &Mulberry32{state: seed}
}

// Uint32 advances the stream and returns the raw 32-bit output word.
func (m *Mulberry32) Uint32() uint32 {
	m.state += 0x6D2B79F5
	t := m.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Float64 returns the next output mapped uniformly onto [0, 1).
func (m *Mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296.0
}

// Intn returns floor(Float64() * n). Used by the Fisher-Yates shuffle; the
// truncating map is part of the contract, not an accident.
func (m *Mulberry32) Intn(n int) int {
	return int(m.Float64() * float64(n))
}
