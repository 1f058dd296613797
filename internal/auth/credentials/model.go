package credentials

import "slices"

// Capability is a named permission a principal may hold.
type Capability string

const (
	// CapabilityAdmin is required for every catalog write.
	CapabilityAdmin Capability = "admin"
)

// Principal is an identity that can log in. Principals are loaded at
// startup and never mutated afterwards.
type Principal struct {
	ID           string
	Verifier     string
	Capabilities []Capability
}

func (p *Principal) HasCapability(c Capability) bool {
	return slices.Contains(p.Capabilities, c)
}

func (p *Principal) clone() *Principal {
	cp := *p
	cp.Capabilities = slices.Clone(p.Capabilities)
	return &cp
}
