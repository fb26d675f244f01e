// Package oracle picks punishments and motivational lines from fixed tiers.
package oracle

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

type Severity string

const (
	SeverityMild     Severity = "MILD"
	SeverityStandard Severity = "STANDARD"
	SeverityBrutal   Severity = "BRUTAL"
)

// Verdict is one selected punishment.
type Verdict struct {
	Severity Severity
	Text     string
}

func (v Verdict) String() string {
	return fmt.Sprintf("[%s] %s", v.Severity, v.Text)
}

var tierMild = []string{
	"Drink a glass of water.",
	"Take 3 deep breaths.",
	"Stretch for 1 minute.",
}

var tierStandard = []string{
	"20 Push-ups. Now.",
	"Wall Sit (60 seconds).",
	"Write 'I have no discipline' 10 times.",
	"Clean your toilet.",
}

var tierBrutal = []string{
	"Cold Shower (2 minutes).",
	"100 Burpees.",
	"Donate $10 to a charity you hate.",
	"Call your mother and tell her you love her (but don't explain why).",
}

var resistLines = []string{
	"Temptation denied. The machine approves.",
	"One urge down. Keep the ledger clean.",
	"Discipline logged. Carry on, soldier.",
	"The Oracle nods. Barely.",
	"Resistance recorded. Your future self says thanks.",
}

// Oracle is a stateless selector over the tier lists. The lock only guards the
// random source, which is shared between the chat and web surfaces.
type Oracle struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func New() *Oracle {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource exists so tests can pin the roll sequence.
func NewWithSource(src rand.Source) *Oracle {
	return &Oracle{rng: rand.New(src)}
}

// Consult picks a tier by an independent uniform roll (20% mild, 60% standard,
// 20% brutal) and a verdict uniformly within the tier.
func (o *Oracle) Consult() Verdict {
	o.mu.Lock()
	defer o.mu.Unlock()

	roll := o.rng.Float64()
	switch {
	case roll < 0.2:
		return Verdict{SeverityMild, tierMild[o.rng.Intn(len(tierMild))]}
	case roll < 0.8:
		return Verdict{SeverityStandard, tierStandard[o.rng.Intn(len(tierStandard))]}
	default:
		return Verdict{SeverityBrutal, tierBrutal[o.rng.Intn(len(tierBrutal))]}
	}
}

// Encourage returns a motivational line for the success path.
func (o *Oracle) Encourage() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return resistLines[o.rng.Intn(len(resistLines))]
}
