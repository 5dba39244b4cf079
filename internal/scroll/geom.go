package scroll

import "fmt"

// Direction selects the axis that is monitored and padded.
type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ParseDirection accepts "vertical"/"v" and "horizontal"/"h".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "vertical", "v", "":
		return Vertical, nil
	case "horizontal", "h":
		return Horizontal, nil
	}
	return Vertical, fmt.Errorf("unknown direction %q", s)
}

// Point is a position in content coordinates.
type Point struct{ X, Y float64 }

// Size is an extent in host units.
type Size struct{ Width, Height float64 }

// Insets are the padding a host adds around its content, in host units.
type Insets struct{ Top, Left, Bottom, Right float64 }

func (d Direction) main(p Point) float64 {
	if d == Horizontal {
		return p.X
	}
	return p.Y
}

func (d Direction) withMain(p Point, v float64) Point {
	if d == Horizontal {
		p.X = v
	} else {
		p.Y = v
	}
	return p
}

func (d Direction) length(s Size) float64 {
	if d == Horizontal {
		return s.Width
	}
	return s.Height
}

func (d Direction) crossLength(s Size) float64 {
	if d == Horizontal {
		return s.Height
	}
	return s.Width
}

func (d Direction) leading(in Insets) float64 {
	if d == Horizontal {
		return in.Left
	}
	return in.Top
}

func (d Direction) trailing(in Insets) float64 {
	if d == Horizontal {
		return in.Right
	}
	return in.Bottom
}

// growTrailing returns in with delta added to the trailing edge of the axis.
func (d Direction) growTrailing(in Insets, delta float64) Insets {
	if d == Horizontal {
		in.Right += delta
	} else {
		in.Bottom += delta
	}
	return in
}

func (d Direction) point(main, cross float64) Point {
	if d == Horizontal {
		return Point{X: main, Y: cross}
	}
	return Point{X: cross, Y: main}
}
