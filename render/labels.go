package render

import "image"

// placer implements first-wins label placement: a label is drawn only if no
// previously placed label's box intersects its own.
type placer struct {
	boxes []image.Rectangle
}

// tryClaim reserves the box unless it collides with an earlier claim.
func (p *placer) tryClaim(r image.Rectangle) bool {
	for _, b := range p.boxes {
		if b.Overlaps(r) {
			return false
		}
	}
	p.boxes = append(p.boxes, r)
	return true
}

// claim reserves the box unconditionally; focused-track labels always render
// but still exclude later labels from their space.
func (p *placer) claim(r image.Rectangle) {
	p.boxes = append(p.boxes, r)
}
