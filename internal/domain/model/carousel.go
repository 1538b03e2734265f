package model

// SwipeThreshold is the horizontal distance in pixels a touch gesture must
// travel before it pages the carousel.
const SwipeThreshold = 50.0

// Carousel is the position of one topic's past-articles carousel.
// Count is the number of past articles; Index is kept in [0, Count-1].
type Carousel struct {
	Index int
	Count int
}

// Clamp bounds the index to the current article count.
func (c Carousel) Clamp() Carousel {
	if c.Count <= 0 || c.Index < 0 {
		c.Index = 0
		return c
	}
	if c.Index > c.Count-1 {
		c.Index = c.Count - 1
	}
	return c
}

// CanPrev reports whether the previous control is enabled.
func (c Carousel) CanPrev() bool {
	return c.Index > 0
}

// CanNext reports whether the next control is enabled.
func (c Carousel) CanNext() bool {
	return c.Index < c.Count-1
}

// Paged reports whether more than one past article exists, in which case
// the counter and navigation are shown.
func (c Carousel) Paged() bool {
	return c.Count > 1
}

// Next moves one article forward, stopping at the last one.
func (c Carousel) Next() Carousel {
	c = c.Clamp()
	if c.CanNext() {
		c.Index++
	}
	return c
}

// Prev moves one article back, stopping at the first one.
func (c Carousel) Prev() Carousel {
	c = c.Clamp()
	if c.CanPrev() {
		c.Index--
	}
	return c
}

// Swipe pages according to a touch gesture. A left swipe moves forward and a
// right swipe moves back. Missing positions leave the carousel untouched.
func (c Carousel) Swipe(start, end *float64) Carousel {
	if start == nil || end == nil {
		return c.Clamp()
	}
	distance := *start - *end
	switch {
	case distance > SwipeThreshold:
		return c.Next()
	case distance < -SwipeThreshold:
		return c.Prev()
	default:
		return c.Clamp()
	}
}

// AutoAdvance is a single auto-play step: forward, wrapping to the first
// article after the last. Carousels with fewer than two articles stay put.
func (c Carousel) AutoAdvance() Carousel {
	c = c.Clamp()
	if !c.Paged() {
		return c
	}
	if c.Index >= c.Count-1 {
		c.Index = 0
		return c
	}
	c.Index++
	return c
}

// CarouselPosition is the visible slot of one topic's carousel.
type CarouselPosition struct {
	Topic Topic
	Index int
	Count int
}
