package camera

import (
	"fmt"
	"strings"
)

// Mode selects which camera configuration is live.
type Mode int

const (
	ModeUnlocked Mode = iota
	ModeLocked

	modeCount = 2
)

func (m Mode) String() string {
	switch m {
	case ModeUnlocked:
		return "unlocked"
	case ModeLocked:
		return "locked"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == ModeLocked {
		return ModeUnlocked
	}
	return ModeLocked
}

func (m Mode) valid() bool {
	return m >= 0 && m < modeCount
}

// ParseMode accepts "unlocked" or "locked" in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unlocked", "free":
		return ModeUnlocked, nil
	case "locked", "forward", "strafe":
		return ModeLocked, nil
	default:
		return ModeUnlocked, fmt.Errorf("camera: unknown mode %q", s)
	}
}

// StateNameSet is the ordered list of animation states cycled through in a mode.
type StateNameSet []string

// At returns the state at idx, or "" when idx is out of range.
func (s StateNameSet) At(idx int) string {
	if idx < 0 || idx >= len(s) {
		return ""
	}
	return s[idx]
}

// Axes is a horizontal/vertical look angle pair.
type Axes struct {
	X float64
	Y float64
}
