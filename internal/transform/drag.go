package transform

// Drag tracks a single pointer drag of the foreground image. The zero value is
// idle.
type Drag struct {
	active  bool
	originX float64
	originY float64
}

// DragAllowed reports whether a drag may start. Dragging needs an image, is
// blocked during export, and does not apply in full-background mode.
func DragAllowed(hasImage, exporting, fullBackground bool) bool {
	return hasImage && !exporting && !fullBackground
}

// Start captures the pointer offset from the current translation. A second
// Start while active is ignored so only one session exists.
func (d *Drag) Start(px, py float64, current Image) bool {
	if d.active {
		return false
	}
	d.active = true
	d.originX = px - current.X
	d.originY = py - current.Y
	return true
}

// Move returns the new translation for pointer (px, py). ok is false when no
// drag is active and the event should be ignored.
func (d *Drag) Move(px, py float64) (x, y float64, ok bool) {
	if !d.active {
		return 0, 0, false
	}
	return px - d.originX, py - d.originY, true
}

// Apply moves t with the pointer, clamped to the position bounds.
func (d *Drag) Apply(t Image, px, py float64) (Image, bool) {
	x, y, ok := d.Move(px, py)
	if !ok {
		return t, false
	}
	return SetPosition(t, x, y), true
}

// End finishes the session.
func (d *Drag) End() {
	d.active = false
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}
