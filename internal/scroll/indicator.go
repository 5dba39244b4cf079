package scroll

// boxIndicator is the fallback indicator for hosts that do not make their
// own. It draws nothing and only keeps the bookkeeping.
type boxIndicator struct {
	size      Size
	center    Point
	hidden    bool
	animating bool
}

// defaultIndicatorSize is the footprint of a standard small spinner.
const defaultIndicatorSize = 22

func newBoxIndicator() *boxIndicator {
	return &boxIndicator{size: Size{Width: defaultIndicatorSize, Height: defaultIndicatorSize}, hidden: true}
}

func (b *boxIndicator) StartAnimating() { b.animating = true }
func (b *boxIndicator) StopAnimating() { b.animating = false }
func (b *boxIndicator) IsAnimating() bool { return b.animating }
func (b *boxIndicator) SetHidden(hidden bool) { b.hidden = hidden }
func (b *boxIndicator) Hidden() bool { return b.hidden }
func (b *boxIndicator) Size() Size { return b.size }
func (b *boxIndicator) Center() Point { return b.center }
func (b *boxIndicator) SetCenter(p Point) { b.center = p }
