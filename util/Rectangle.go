package util

// Dimension is a plain width/height pair used to size a Rectangle or a buffer.
type Dimension struct {
	Width  uint32
	Height uint32
}

// Rectangle describes a region of an image by its upper-left Origin and Size.
type Rectangle struct {
	Origin Point
	Size   Dimension
}

// NewRectangle builds a Rectangle from explicit coordinates and extents.
func NewRectangle(x int32, y int32, width uint32, height uint32) Rectangle {
	return Rectangle{
		Origin: Point{X: x, Y: y},
		Size:   Dimension{Width: width, Height: height},
	}
}

// ComputeLowerCorner returns the exclusive bottom-right corner of the rectangle.
func (r Rectangle) ComputeLowerCorner() Point {
	return Point{
		X: r.Origin.X + int32(r.Size.Width),
		Y: r.Origin.Y + int32(r.Size.Height),
	}
}
