package pcd8544

import "image"

// boundingBox is the inclusive region of the framebuffer, in controller coordinates, that
// changed since the last flush.
type boundingBox struct {
	xMin, yMin int
	xMax, yMax int
}

// reset puts the box in its empty state: any widen call afterwards yields exactly the
// widened region.
func (b *boundingBox) reset() {
	b.xMin, b.xMax = Width-1, 0
	b.yMin, b.yMax = Height-1, 0
}

func (b *boundingBox) widen(xMin, yMin, xMax, yMax int) {
	b.xMin = min(b.xMin, xMin)
	b.xMax = max(b.xMax, xMax)
	b.yMin = min(b.yMin, yMin)
	b.yMax = max(b.yMax, yMax)
}

func (b *boundingBox) empty() bool {
	return b.xMin > b.xMax || b.yMin > b.yMax
}

// clip returns the box limited to the panel.
func (b *boundingBox) clip() (xMin, yMin, xMax, yMax int) {
	return clamp(b.xMin, 0, Width-1), clamp(b.yMin, 0, Height-1),
		clamp(b.xMax, 0, Width-1), clamp(b.yMax, 0, Height-1)
}

// rect converts the box to a half-open rectangle, empty boxes yield the zero rectangle.
func (b *boundingBox) rect() image.Rectangle {
	if b.empty() {
		return image.Rectangle{}
	}
	return image.Rect(b.xMin, b.yMin, b.xMax+1, b.yMax+1)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// UpdateBoundingBox widens the region sent by the next call to Display so it includes the
// box from (xMin, yMin) to (xMax, yMax), both corners inclusive and in controller
// (unrotated) coordinates. The region never shrinks until it has been flushed.
func (d *Dev) UpdateBoundingBox(xMin, yMin, xMax, yMax int) {
	d.dirty.widen(xMin, yMin, xMax, yMax)
}

// Dirty returns the region that will be sent by the next call to Display, in controller
// coordinates. It is empty if nothing changed.
func (d *Dev) Dirty() image.Rectangle {
	return d.dirty.rect()
}

func (d *Dev) markAllDirty() {
	d.UpdateBoundingBox(0, 0, Width-1, Height-1)
}
