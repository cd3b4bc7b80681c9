package vec

import "math"

// Vec2 is a 2D vector with float64 components. It is a value type;
// all operations return a new vector.
type Vec2 struct {
	X, Y float64
}

func New(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{X: v.X + w.X, Y: v.Y + w.Y}
}

func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{X: v.X - w.X, Y: v.Y - w.Y}
}

func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

func (v Vec2) Dot(w Vec2) float64 {
	return v.X*w.X + v.Y*w.Y
}

// Norm2 is the squared Euclidean norm.
func (v Vec2) Norm2() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Norm() float64 {
	return math.Sqrt(v.Norm2())
}

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}
