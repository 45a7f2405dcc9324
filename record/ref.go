package record

import "github.com/go-gl/mathgl/mgl64"

// Ref is a live reference into storage owned by someone else, typically a
// cursor. Writes through a Ref are immediately visible to the owner.
type Ref[T any] struct {
	p *T
}

func NewRef[T any](p *T) Ref[T] {
	return Ref[T]{p: p}
}

// Valid reports whether the reference is bound.
func (r Ref[T]) Valid() bool {
	return r.p != nil
}

func (r Ref[T]) Get() T {
	return *r.p
}

func (r Ref[T]) Set(v T) {
	*r.p = v
}

// Location is the engine's view of a record's position: always a Vec3,
// whatever the dimension of the underlying storage.
type Location interface {
	Get() mgl64.Vec3
	Set(v mgl64.Vec3)
}

// Vec3Ref aliases a 3D position.
type Vec3Ref struct {
	Ref[mgl64.Vec3]
}

func NewVec3Ref(p *mgl64.Vec3) Vec3Ref {
	return Vec3Ref{NewRef(p)}
}

// Vec2Ref aliases a 2D position. Z reads as zero and is dropped on write.
type Vec2Ref struct {
	p *mgl64.Vec2
}

func NewVec2Ref(p *mgl64.Vec2) Vec2Ref {
	return Vec2Ref{p: p}
}

func (r Vec2Ref) Get() mgl64.Vec3 {
	return r.p.Vec3(0)
}

func (r Vec2Ref) Set(v mgl64.Vec3) {
	r.p[0] = v[0]
	r.p[1] = v[1]
}
