// Package foi holds the triage decision pieces: case references, the
// acknowledgement template, request classification and the allocation
// prompt handed back to the agent.
package foi

import (
	"fmt"
	"math/rand/v2"
)

// RefGenerator produces case references for new FOI requests.
type RefGenerator interface {
	NewRef() string
}

// RandomRef generates references of the form "CAM" plus 4 random digits.
// References are human-facing tracking labels; uniqueness is not guaranteed
// and collisions are not checked.
type RandomRef struct{}

// NewRef returns a fresh reference, e.g. "CAM4821".
func (RandomRef) NewRef() string {
	return fmt.Sprintf("CAM%d", 1000+rand.IntN(9000))
}
