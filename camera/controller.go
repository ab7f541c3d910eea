// Package camera holds the forward-lock camera mode state machine.
//
// A ModeController flips between an unlocked free-look rig and a locked
// strafe rig. Flips requested while airborne are held until the owner reports
// a landing. All collaborators are optional; when one is missing the step
// that needs it does nothing.
package camera

import "log/slog"

// Config seeds a ModeController. Every field may be left zero.
type Config struct {
	Initial  Mode
	Unlocked StateNameSet
	Locked   StateNameSet

	UnlockedRig Rig
	LockedRig   Rig
	Driver      StateDriver
	Recenter    Recenterer

	Grounded     func() bool
	InputPresent func() bool

	Logger *slog.Logger
}

// ModeController owns the camera mode, the per-mode state cycle index and the
// deferred mode-change flag. It is not safe for concurrent use.
type ModeController struct {
	mode        Mode
	cycleIndex  int
	pending     bool
	recentering bool

	states   [modeCount]StateNameSet
	rigs     [modeCount]Rig
	driver   StateDriver
	recenter Recenterer

	grounded     func() bool
	inputPresent func() bool

	listeners      [modeCount][]listenerEntry
	nextListenerID uint64

	logger *slog.Logger
}

func NewModeController(cfg Config) *ModeController {
	mode := cfg.Initial
	if !mode.valid() {
		mode = ModeUnlocked
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &ModeController{
		mode:         mode,
		driver:       cfg.Driver,
		recenter:     cfg.Recenter,
		grounded:     cfg.Grounded,
		inputPresent: cfg.InputPresent,
		logger:       logger.With("component", "camera_mode"),
	}
	c.states[ModeUnlocked] = append(StateNameSet(nil), cfg.Unlocked...)
	c.states[ModeLocked] = append(StateNameSet(nil), cfg.Locked...)
	c.rigs[ModeUnlocked] = cfg.UnlockedRig
	c.rigs[ModeLocked] = cfg.LockedRig
	return c
}

func (c *ModeController) Mode() Mode { return c.mode }

func (c *ModeController) CycleIndex() int { return c.cycleIndex }

func (c *ModeController) Pending() bool { return c.pending }

func (c *ModeController) Recentering() bool { return c.recentering }

// ActiveState returns the state name the cycle index points at.
func (c *ModeController) ActiveState() string {
	return c.states[c.mode].At(c.cycleIndex)
}

// StateNames returns a copy of the state set for m.
func (c *ModeController) StateNames(m Mode) StateNameSet {
	if !m.valid() {
		return nil
	}
	return append(StateNameSet(nil), c.states[m]...)
}

func (c *ModeController) SetRig(m Mode, r Rig) {
	if m.valid() {
		c.rigs[m] = r
	}
}

func (c *ModeController) SetStateDriver(d StateDriver) { c.driver = d }

func (c *ModeController) SetRecenterer(r Recenterer) { c.recenter = r }

func (c *ModeController) SetGroundedQuery(fn func() bool) { c.grounded = fn }

func (c *ModeController) SetInputQuery(fn func() bool) { c.inputPresent = fn }

// SetStateNames replaces the state set of m. Replacing the active set resets
// the cycle and reapplies its first state.
func (c *ModeController) SetStateNames(m Mode, names StateNameSet) {
	if !m.valid() {
		return
	}
	c.states[m] = append(StateNameSet(nil), names...)
	if m != c.mode {
		return
	}
	c.cycleIndex = 0
	c.play(c.states[m].At(0))
}

// Init brings rig visibility in line with the current mode and applies the
// first state of the active set. Call once after the collaborators are bound.
func (c *ModeController) Init() {
	c.cycleIndex = 0
	c.applyRigVisibility()
	c.play(c.states[c.mode].At(0))
}

// RequestModeChange commits immediately when grounded, otherwise defers the
// commit until OnLanded. Without a grounded query it does nothing.
func (c *ModeController) RequestModeChange() {
	if c.grounded == nil {
		return
	}
	if c.grounded() {
		c.CommitModeChange()
		return
	}
	if !c.pending {
		c.logger.Debug("mode change deferred until landing", "mode", c.mode)
	}
	c.pending = true
}

// OnLanded commits a deferred mode change, if any.
func (c *ModeController) OnLanded() {
	if !c.pending {
		return
	}
	c.CommitModeChange()
}

// CommitModeChange flips the mode unconditionally.
func (c *ModeController) CommitModeChange() {
	c.pending = false
	c.mode = c.mode.Toggle()
	c.cycleIndex = -1
	c.AdvanceState()
	c.logger.Info("camera mode started", "mode", c.mode, "state", c.ActiveState())
	c.notify(c.mode)
	c.applyRigVisibility()
}

// AdvanceState moves to the next state of the active set, wrapping after the
// last one. The look axes of the other rig's live camera are carried over to
// the active rig first.
//
// The copy always reads from the rig of the other mode, so calling this to
// cycle within a mode overwrites the current look with that rig's last axes.
// Call it right after the mode flips, as CommitModeChange does.
func (c *ModeController) AdvanceState() {
	set := c.states[c.mode]
	if len(set) == 0 {
		c.cycleIndex = 0
	} else {
		c.cycleIndex = (c.cycleIndex + 1) % len(set)
		if c.cycleIndex < 0 {
			c.cycleIndex += len(set)
		}
	}

	from, to := c.rigs[c.mode.Toggle()], c.rigs[c.mode]
	if from != nil && to != nil {
		if axes, ok := from.LiveAxes(); ok {
			to.SetAxes(axes)
		}
	}

	c.play(set.At(c.cycleIndex))
}

// RequestRecenter turns on recentering when no movement or look input is
// present. Without an input query or a recenter rig it does nothing.
func (c *ModeController) RequestRecenter() {
	if c.inputPresent == nil || c.recenter == nil {
		return
	}
	if c.inputPresent() {
		return
	}
	c.recentering = true
	c.recenter.SetRecenter(true)
	c.logger.Debug("recenter enabled")
}

// Tick runs once per frame. Recentering stops as soon as input resumes.
func (c *ModeController) Tick() {
	if !c.recentering || c.inputPresent == nil || c.recenter == nil {
		return
	}
	if !c.inputPresent() {
		return
	}
	c.stopRecenter("input")
}

// StopRecenter turns recentering off when the recenter action is released.
func (c *ModeController) StopRecenter() {
	if !c.recentering || c.recenter == nil {
		return
	}
	c.stopRecenter("released")
}

func (c *ModeController) stopRecenter(reason string) {
	c.recentering = false
	c.recenter.SetRecenter(false)
	c.logger.Debug("recenter disabled", "reason", reason)
}

func (c *ModeController) applyRigVisibility() {
	if r := c.rigs[c.mode.Toggle()]; r != nil {
		r.SetActive(false)
	}
	if r := c.rigs[c.mode]; r != nil {
		r.SetActive(true)
	}
}

func (c *ModeController) play(state string) {
	if c.driver == nil || state == "" {
		return
	}
	c.driver.Play(state)
}
