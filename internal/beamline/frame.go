package beamline

import "fmt"

// FrameOrigin selects where a frame's local origin sits relative to its
// geometry. It is carried as placement metadata for downstream position
// queries; it does not change construction order.
type FrameOrigin int

const (
	// OriginAtEntrance places the local origin at the frame entrance.
	OriginAtEntrance FrameOrigin = iota
	// OriginAtCenter places the local origin at the geometric centre.
	OriginAtCenter
	// OriginAtExit places the local origin at the frame exit.
	OriginAtExit
)

// FrameVisitor receives every frame of a pre-order traversal.
type FrameVisitor interface {
	ActOn(f LatticeFrame)
}

// LatticeFrame is a node in the frame tree: either a SequenceFrame grouping
// sub-frames, or a ComponentFrame holding a single component occurrence.
type LatticeFrame interface {
	ModelEntity
	// Length returns the frame's geometric length in metres.
	Length() float64
	// Traverse visits this frame and, in stored order, every frame it
	// contains, pre-order (parent before children, children before later
	// siblings). The traversal order defines the physical beamline order.
	Traverse(v FrameVisitor)
}

// SequenceFrame is a named container of frames in beamline order. Its
// children may be appended until ConsolidateConstruction is called, after
// which the frame's structure and cumulative length are frozen.
type SequenceFrame struct {
	name         string
	origin       FrameOrigin
	children     []LatticeFrame
	consolidated bool
	length       float64
}

// NewSequenceFrame creates an empty frame with the given name and origin
// policy.
func NewSequenceFrame(name string, origin FrameOrigin) *SequenceFrame {
	return &SequenceFrame{name: name, origin: origin}
}

func (s *SequenceFrame) Name() string { return s.name }

func (*SequenceFrame) Type() string { return "SequenceFrame" }

// Origin returns the frame's origin policy.
func (s *SequenceFrame) Origin() FrameOrigin { return s.origin }

// AppendFrame adds f as the last child. Panics if the frame has already
// been consolidated: frozen frames must keep their geometry stable.
func (s *SequenceFrame) AppendFrame(f LatticeFrame) {
	if s.consolidated {
		panic(fmt.Sprintf("beamline: append to consolidated frame %q", s.name))
	}
	s.children = append(s.children, f)
}

// Children returns the frame's children in beamline order. The returned
// slice must not be modified.
func (s *SequenceFrame) Children() []LatticeFrame { return s.children }

// Length returns the sum of the children's lengths. After consolidation the
// cached value is returned, so the answer is stable even if a child frame
// were somehow mutated later.
func (s *SequenceFrame) Length() float64 {
	if s.consolidated {
		return s.length
	}
	var total float64
	for _, c := range s.children {
		total += c.Length()
	}
	return total
}

// ConsolidateConstruction freezes the frame and all nested sequence frames,
// fixing their cumulative lengths. Idempotent.
func (s *SequenceFrame) ConsolidateConstruction() {
	if s.consolidated {
		return
	}
	for _, c := range s.children {
		if sf, ok := c.(*SequenceFrame); ok {
			sf.ConsolidateConstruction()
		}
	}
	s.length = s.Length()
	s.consolidated = true
}

// Consolidated reports whether the frame's structure has been frozen.
func (s *SequenceFrame) Consolidated() bool { return s.consolidated }

// Traverse visits the frame itself, then each child in stored order,
// recursing into nested frames before moving to later siblings.
func (s *SequenceFrame) Traverse(v FrameVisitor) {
	v.ActOn(s)
	for _, c := range s.children {
		c.Traverse(v)
	}
}

// ComponentFrame is a positioned occurrence of an accelerator component
// within the frame tree. The component may be shared between several
// occurrences; the registry deduplicates it by identity. An empty occurrence
// (nil component) is a valid zero-length placeholder.
type ComponentFrame struct {
	component     AcceleratorComponent
	beamlineIndex int
}

// NewComponentFrame creates an occurrence of component, which may be nil
// for an empty placeholder. The occurrence has no beamline index until it
// is appended to a model's flat lattice.
func NewComponentFrame(component AcceleratorComponent) *ComponentFrame {
	return &ComponentFrame{component: component, beamlineIndex: -1}
}

// Name returns the component's name, or "UNNAMED" for an empty occurrence.
func (c *ComponentFrame) Name() string {
	if c.component == nil {
		return "UNNAMED"
	}
	return c.component.Name()
}

func (*ComponentFrame) Type() string { return "ComponentFrame" }

// Length returns the component's length, or 0 for an empty occurrence.
func (c *ComponentFrame) Length() float64 {
	if c.component == nil {
		return 0
	}
	return c.component.Length()
}

// IsComponent reports whether the occurrence carries a component instance.
func (c *ComponentFrame) IsComponent() bool { return c.component != nil }

// Component returns the carried component, or nil.
func (c *ComponentFrame) Component() AcceleratorComponent { return c.component }

// BeamlineIndex returns the occurrence's position in the flat lattice, or
// -1 if it has not been appended to a model. Indices are assigned once at
// insertion and never renumbered.
func (c *ComponentFrame) BeamlineIndex() int { return c.beamlineIndex }

// SetBeamlineIndex records the lattice position. Used by ModelConstructor.
func (c *ComponentFrame) SetBeamlineIndex(i int) { c.beamlineIndex = i }

// Traverse visits the occurrence itself; component frames have no children.
func (c *ComponentFrame) Traverse(v FrameVisitor) {
	v.ActOn(c)
}
