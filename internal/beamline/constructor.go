package beamline

// ModelConstructor builds an AcceleratorModel through a stack-discipline
// protocol: the root frame is pushed when a model is started, NewFrame and
// EndFrame open and close nested frames, and the various Append operations
// add content to whichever frame is currently on top of the stack.
//
// The constructor exclusively owns the in-progress model until GetModel
// hands it off. Misuse of the protocol (appending with no model in progress,
// closing more frames than were opened, finishing with frames still open)
// is a programming error in the driver, not recoverable input, and panics.
//
// ModelConstructor is not safe for concurrent use; construction is a
// single-threaded, synchronous activity.
type ModelConstructor struct {
	current    *AcceleratorModel
	frameStack []*SequenceFrame
}

// NewModelConstructor creates a constructor with a fresh model already in
// progress.
func NewModelConstructor() *ModelConstructor {
	mc := &ModelConstructor{}
	mc.NewModel()
	return mc
}

// NewModel discards any in-progress model and starts a fresh one with an
// empty "GLOBAL" root frame, which becomes the initial append target. Safe
// to call at any time, including mid-construction: the old model and any
// open frames are dropped together.
func (mc *ModelConstructor) NewModel() {
	mc.frameStack = mc.frameStack[:0]

	global := NewSequenceFrame("GLOBAL", OriginAtEntrance)
	mc.current = &AcceleratorModel{
		globalFrame: global,
		elements:    NewElementRegistry(),
	}
	mc.current.elements.Add(global)
	mc.frameStack = append(mc.frameStack, global)
}

// InProgress reports whether a model is currently under construction.
func (mc *ModelConstructor) InProgress() bool { return mc.current != nil }

// NewFrame registers frame and pushes it onto the stack, making it the new
// append target. The frame is attached to its parent when EndFrame is
// called.
func (mc *ModelConstructor) NewFrame(frame *SequenceFrame) {
	mc.mustBeBuilding("NewFrame")
	if frame == nil {
		panic("beamline: NewFrame with nil frame")
	}
	mc.current.elements.Add(frame)
	mc.frameStack = append(mc.frameStack, frame)
}

// EndFrame closes the current frame and appends it as a child of the frame
// beneath it. Panics if only the root remains open: the root is popped by
// GetModel alone.
func (mc *ModelConstructor) EndFrame() {
	mc.mustBeBuilding("EndFrame")
	if len(mc.frameStack) < 2 {
		panic("beamline: EndFrame without matching NewFrame")
	}
	top := len(mc.frameStack) - 1
	closed := mc.frameStack[top]
	mc.frameStack = mc.frameStack[:top]
	mc.top().AppendFrame(closed)
}

// AppendDrift constructs an anonymous drift of the given length and appends
// it as a component occurrence to the current frame.
func (mc *ModelConstructor) AppendDrift(length float64) {
	mc.mustBeBuilding("AppendDrift")
	mc.AppendComponentFrame(NewComponentFrame(NewDrift("UNNAMED", length)))
}

// AppendComponentFrame registers cf (and its component, if it carries one),
// appends cf to the flat lattice with the next free index, and attaches it
// to the current frame. Re-appending a shared component instance through a
// second occurrence registers nothing new: the registry deduplicates by
// identity.
func (mc *ModelConstructor) AppendComponentFrame(cf *ComponentFrame) {
	mc.mustBeBuilding("AppendComponentFrame")
	if cf == nil {
		panic("beamline: AppendComponentFrame with nil frame")
	}
	mc.current.elements.Add(cf)
	if cf.IsComponent() {
		mc.current.elements.Add(cf.Component())
	}
	mc.current.lattice = append(mc.current.lattice, cf)
	cf.SetBeamlineIndex(len(mc.current.lattice) - 1)
	mc.top().AppendFrame(cf)
}

// AppendFrame splices a pre-built sub-tree into the model. The sub-tree is
// traversed pre-order: every discovered entity is registered, and every
// component occurrence is appended to the flat lattice in traversal order,
// exactly as if it had been appended directly. The sub-frame itself is then
// attached, whole, as a single child of the current frame. The flat lattice
// and the frame tree deliberately carry the same content twice, once for
// tracking order and once for geometry.
func (mc *ModelConstructor) AppendFrame(frame *SequenceFrame) {
	mc.mustBeBuilding("AppendFrame")
	if frame == nil {
		panic("beamline: AppendFrame with nil frame")
	}
	frame.Traverse(&elementExtractor{model: mc.current})
	mc.top().AppendFrame(frame)
}

// AddModelElement registers a standalone entity, typically a component
// definition that has not been placed yet, without touching the frame
// stack or the lattice.
func (mc *ModelConstructor) AddModelElement(e ModelEntity) {
	mc.mustBeBuilding("AddModelElement")
	mc.current.elements.Add(e)
}

// GetModel finishes construction: it requires exactly the root frame to be
// open, consolidates the frame tree so cumulative geometry is frozen, and
// hands the model to the caller. The constructor's state is cleared; call
// NewModel to start another model.
func (mc *ModelConstructor) GetModel() *AcceleratorModel {
	mc.mustBeBuilding("GetModel")
	if len(mc.frameStack) != 1 {
		panic("beamline: GetModel with frames still open")
	}
	mc.frameStack = mc.frameStack[:0]

	m := mc.current
	mc.current = nil
	m.globalFrame.ConsolidateConstruction()
	return m
}

func (mc *ModelConstructor) top() *SequenceFrame {
	return mc.frameStack[len(mc.frameStack)-1]
}

func (mc *ModelConstructor) mustBeBuilding(op string) {
	if mc.current == nil {
		panic("beamline: " + op + " with no model in progress")
	}
}

// elementExtractor feeds a traversal into the model's registry and lattice.
// Plain sequence frames are registry-only; component occurrences are also
// pushed onto the lattice and stamped with their insertion index. Both
// branches are expected cases.
type elementExtractor struct {
	model *AcceleratorModel
}

func (x *elementExtractor) ActOn(f LatticeFrame) {
	x.model.elements.Add(f)
	cf, ok := f.(*ComponentFrame)
	if !ok {
		return
	}
	if cf.IsComponent() {
		x.model.elements.Add(cf.Component())
	}
	x.model.lattice = append(x.model.lattice, cf)
	cf.SetBeamlineIndex(len(x.model.lattice) - 1)
}
