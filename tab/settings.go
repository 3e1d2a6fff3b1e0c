package tab

import "github.com/javanhut/Zoha/logx"

// FontInc grows the font scale of every terminal by one step
func (c *Controller) FontInc() {
	c.changeFontScale("font-inc", func(s *State) { s.setFontScale(s.fontScale + FontScaleStep) })
}

// FontDec shrinks the font scale of every terminal by one step
func (c *Controller) FontDec() {
	c.changeFontScale("font-dec", func(s *State) { s.setFontScale(s.fontScale - FontScaleStep) })
}

// FontReset restores the default font scale on every terminal
func (c *Controller) FontReset() {
	c.changeFontScale("font-reset", func(s *State) { s.setFontScale(DefaultFontScale) })
}

func (c *Controller) changeFontScale(op string, update func(*State)) {
	release := c.state.Borrow()
	defer release()

	update(c.state)
	scale := c.state.fontScale
	log := logx.WithOp(c.log, op)
	c.state.registry.Each(func(slot int, s *Session) {
		if err := s.ApplyFontScale(scale); err != nil {
			logx.WithErr(logx.WithSlot(log, slot), err).Warn("font scale not applied")
		}
	})
	log.Debug("font scale broadcast", "scale", scale, "sessions", c.state.registry.Len())
}

// ToggleTransparency flips transparency and pushes the new background to
// every terminal.
func (c *Controller) ToggleTransparency() {
	release := c.state.Borrow()
	defer release()

	c.state.transparency = !c.state.transparency
	colors := c.colorsLocked()
	log := logx.WithOp(c.log, "toggle-transparency")
	c.state.registry.Each(func(slot int, s *Session) {
		if err := s.ApplyColors(colors); err != nil {
			logx.WithErr(logx.WithSlot(log, slot), err).Warn("colors not applied")
		}
	})
	log.Debug("transparency broadcast", "enabled", c.state.transparency, "alpha", colors.Background.A)
}

// colorsLocked derives terminal colours from the config and the
// transparency flag: configured opacity when enabled, opaque otherwise.
func (c *Controller) colorsLocked() Colors {
	cc := c.state.cfg.Color
	alpha := 1.0
	if c.state.transparency {
		alpha = cc.Opacity
	}
	return Colors{
		Foreground:       cc.Foreground.WithAlpha(1),
		Background:       cc.Background.WithAlpha(alpha),
		Cursor:           cc.Cursor.WithAlpha(1),
		CursorForeground: cc.CursorForeground.WithAlpha(1),
		Palette:          cc.PaletteColors(),
	}
}

// applySettingsLocked brings a new session up to the current global settings
func (c *Controller) applySettingsLocked(sess *Session) {
	if err := sess.ApplyFontScale(c.state.fontScale); err != nil {
		logx.WithErr(c.log, err).Warn("font scale not applied", "session", sess.ID())
	}
	if err := sess.ApplyColors(c.colorsLocked()); err != nil {
		logx.WithErr(c.log, err).Warn("colors not applied", "session", sess.ID())
	}
}
