package grid

// Invalidate requests a layout pass. Under [InvalidateCoalesce] every call
// made before the scheduler's next tick collapses into one pass; under
// [InvalidateImmediate] the pass runs before Invalidate returns.
func (g *Grid) Invalidate() {
	g.mu.Lock()
	if g.disabled {
		g.mu.Unlock()
		return
	}
	notes := g.invalidateLocked()
	g.mu.Unlock()
	notify(notes)
}

// Refresh runs a pass now, replacing any pass that was scheduled.
func (g *Grid) Refresh() {
	g.mu.Lock()
	if g.disabled {
		g.mu.Unlock()
		return
	}
	g.cancelPendingLocked()
	notes := g.layout()
	g.mu.Unlock()
	notify(notes)
}

// Resync measures the container again. When the width differs from the
// stored one the column count is recomputed and the layout invalidated.
// It reports whether the width changed.
func (g *Grid) Resync() bool {
	g.mu.Lock()
	if g.disabled {
		g.mu.Unlock()
		return false
	}
	changed, notes := g.resyncLocked()
	g.mu.Unlock()
	notify(notes)
	return changed
}

func (g *Grid) resyncLocked() (bool, []notice) {
	w := g.container.Width()
	if w == g.width {
		return false, nil
	}
	prev := g.columns
	g.width = w
	g.columns = Columns(w, g.cellWidth)
	g.logger.Debug("container resized", "width", w, "columns", g.columns, "previous_columns", prev)
	return true, g.invalidateLocked()
}

func (g *Grid) invalidateLocked() []notice {
	if g.cfg.Invalidation == InvalidateImmediate {
		g.cancelPendingLocked()
		return g.layout()
	}
	if g.pending != nil {
		return nil
	}
	g.pendingID++
	id := g.pendingID
	g.pending = g.sched.Schedule(0, func() { g.runScheduled(id) })
	return nil
}

// runScheduled runs the pass scheduled under id unless it was cancelled or
// superseded while waiting for the lock.
func (g *Grid) runScheduled(id uint64) {
	g.mu.Lock()
	if g.disabled || g.pending == nil || g.pendingID != id {
		g.mu.Unlock()
		return
	}
	g.pending = nil
	notes := g.layout()
	g.mu.Unlock()
	notify(notes)
}

func (g *Grid) cancelPendingLocked() {
	if g.pending != nil {
		g.pending()
		g.pending = nil
	}
}

// onViewportResize restarts the resize quiet window.
func (g *Grid) onViewportResize() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.disabled {
		return
	}
	if g.resizeTimer != nil {
		g.resizeTimer()
	}
	g.resizeID++
	id := g.resizeID
	g.resizeTimer = g.sched.Schedule(g.cfg.ResizeDebounce(), func() { g.resizeSettled(id) })
}

func (g *Grid) resizeSettled(id uint64) {
	g.mu.Lock()
	if g.disabled || g.resizeID != id {
		g.mu.Unlock()
		return
	}
	g.resizeTimer = nil
	_, notes := g.resyncLocked()
	g.mu.Unlock()
	notify(notes)
}
