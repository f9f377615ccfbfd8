package collision

import "github.com/jakecoffman/cp"

// DebugVector is one named vector captured while resolving a contact.
type DebugVector struct {
	Obstacle int
	Name     string
	Vec      cp.Vector
}

// DebugLog collects the decomposition vectors of a tick for visualisation.
// It is owned by the caller, which resets it at the start of each tick. A
// nil *DebugLog records nothing.
type DebugLog struct {
	vectors []DebugVector
}

func (l *DebugLog) Reset() {
	if l == nil {
		return
	}
	l.vectors = l.vectors[:0]
}

func (l *DebugLog) add(obstacle int, name string, v cp.Vector) {
	if l == nil {
		return
	}
	l.vectors = append(l.vectors, DebugVector{Obstacle: obstacle, Name: name, Vec: v})
}

// Vectors returns the captured vectors in capture order.
func (l *DebugLog) Vectors() []DebugVector {
	if l == nil {
		return nil
	}
	return append([]DebugVector(nil), l.vectors...)
}

// Lookup returns the most recent vector captured under name.
func (l *DebugLog) Lookup(name string) (cp.Vector, bool) {
	if l == nil {
		return cp.Vector{}, false
	}
	for i := len(l.vectors) - 1; i >= 0; i-- {
		if l.vectors[i].Name == name {
			return l.vectors[i].Vec, true
		}
	}
	return cp.Vector{}, false
}

func (l *DebugLog) Len() int {
	if l == nil {
		return 0
	}
	return len(l.vectors)
}
