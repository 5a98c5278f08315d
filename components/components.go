// Package components defines the value types and ECS components shared by the
// board model, the agents and the turn driver.
package components

// Role selects which side of the pursuit an agent plays.
type Role uint8

const (
	RoleSeeker Role = iota // Searches for the hottest cells
	RoleHider              // Flees toward the coldest cells
)

func (r Role) String() string {
	switch r {
	case RoleSeeker:
		return "seeker"
	case RoleHider:
		return "hider"
	default:
		return "unknown"
	}
}

// SeekerTag marks the seeker entity.
type SeekerTag struct{}

// HiderTag marks a hider entity.
type HiderTag struct{}

// Flare is a live stimulus on the board. It is removed once the game clock
// reaches ExpiresAt.
type Flare struct {
	Pos       Position
	ExpiresAt int
	FiredBy   uint32 // Actor ID of the hider that shot it
}
