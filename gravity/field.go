package gravity

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/assert"
	"github.com/oomph-ac/gravctl/game"
	"github.com/sasha-s/go-deadlock"
)

// Field is the set of gravity sources active in a world. Sources are registered when they are
// activated and unregistered when they are deactivated. A Field is safe for concurrent use:
// queries may run in parallel while registration is exclusive.
type Field struct {
	mu       deadlock.RWMutex
	sources  *orderedmap.OrderedMap[Source, struct{}]
	fallback Source
}

// NewField returns an empty Field without a fallback source.
func NewField() *Field {
	return &Field{sources: orderedmap.NewOrderedMap[Source, struct{}]()}
}

// Register adds a source to the field. Registering a source twice is a programming error.
func (f *Field) Register(src Source) {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.sources.Get(src)
	assert.IsTrue(!ok, game.ErrorDuplicateGravitySource, src)
	if !ok {
		f.sources.Set(src, struct{}{})
	}
}

// Unregister removes a source from the field. Unregistering a source that was never registered
// is a programming error.
func (f *Field) Unregister(src Source) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ok := f.sources.Delete(src)
	assert.IsTrue(ok, game.ErrorUnknownGravitySource, src)
}

// Registered returns true if the source is part of the field.
func (f *Field) Registered(src Source) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	_, ok := f.sources.Get(src)
	return ok
}

// Len returns the amount of registered sources.
func (f *Field) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sources.Len()
}

// SetFallback sets the source that answers queries no registered source reaches. A nil source
// removes the fallback.
func (f *Field) SetFallback(src Source) {
	f.mu.Lock()
	f.fallback = src
	f.mu.Unlock()
}

// GravityAt returns the sum of the gravity of all registered sources at the position. If the
// sum is zero the fallback source is queried instead, if one is set.
func (f *Field) GravityAt(pos mgl32.Vec3) mgl32.Vec3 {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var g mgl32.Vec3
	for el := f.sources.Front(); el != nil; el = el.Next() {
		g = g.Add(el.Key.GravityAt(pos))
	}
	if game.IsZero(g) && f.fallback != nil {
		return f.fallback.GravityAt(pos)
	}
	return g
}

// UpAxisAt returns the direction opposite to the gravity at the position. It returns false if
// there is no gravity at the position, in which case callers should keep their previous axis.
func (f *Field) UpAxisAt(pos mgl32.Vec3) (mgl32.Vec3, bool) {
	return UpAxis(f.GravityAt(pos))
}

// UpAxis returns the normalized negation of the gravity vector, or false if it is zero.
func UpAxis(g mgl32.Vec3) (mgl32.Vec3, bool) {
	if game.IsZero(g) {
		return mgl32.Vec3{}, false
	}
	return game.SafeNormalize(g.Mul(-1)), true
}
