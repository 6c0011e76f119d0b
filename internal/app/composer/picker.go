package composer

import (
	"math/rand"
	"sync"
	"time"
)

// Picker chooses a template variant. Intn returns a value in [0, n).
type Picker interface {
	Intn(n int) int
}

// PickerFunc adapts a function to Picker.
type PickerFunc func(n int) int

func (f PickerFunc) Intn(n int) int { return f(n) }

// First always picks the first variant.
var First = PickerFunc(func(int) int { return 0 })

type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(n)
}

// NewPicker returns a goroutine-safe seeded picker. Seed 0 seeds from the clock.
func NewPicker(seed int64) Picker {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedRand{rnd: rand.New(rand.NewSource(seed))}
}

func pick(p Picker, variants []string) string {
	switch len(variants) {
	case 0:
		return ""
	case 1:
		return variants[0]
	}
	i := p.Intn(len(variants))
	if i < 0 || i >= len(variants) {
		i = 0
	}
	return variants[i]
}
