// Package beamline builds an in-memory model of a particle-accelerator
// beamline: a tree of nested frames (girders, sections, rings) whose leaves
// are accelerator components, plus a flattened, ordered lattice of those
// components suitable for tracking codes.
//
// Construction follows a stack discipline driven by ModelConstructor: open a
// frame, append components or pre-built sub-frames, close the frame, repeat
// to any depth. Every entity introduced along the way is registered exactly
// once in the model's ElementRegistry, and every component occurrence is
// appended to the flat lattice with a stable, insertion-time index.
package beamline

// ModelEntity is anything that can be placed in an accelerator model:
// frames, component occurrences and component definitions alike.
//
// Entities are identified by pointer: two occurrences referencing the same
// component value share one registry entry. All ModelEntity implementations
// in this package are pointer types for that reason.
type ModelEntity interface {
	// Name returns the entity's name, which need not be unique.
	Name() string
	// Type returns the entity's type tag used for statistics grouping,
	// e.g. "Quadrupole" or "SequenceFrame".
	Type() string
}

// AcceleratorComponent is a physical beamline element with a geometric
// length along the reference trajectory. Zero-length components (markers,
// monitors) are valid.
type AcceleratorComponent interface {
	ModelEntity
	// Length returns the component's geometric length in metres.
	Length() float64
}
