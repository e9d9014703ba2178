package core

import "testing"

func TestSlotTrackerTracksMostRecentSave(t *testing.T) {
	st := NewSlotTracker()
	st.RecordFrame(1<<2, 0) // frame 0 saves into slot 2
	st.RecordFrame(0, 0)    // frame 1 saves nothing
	idx := st.RecordFrame(1<<2, 0) // frame 2 overwrites slot 2
	if idx != 2 {
		t.Fatalf("RecordFrame returned index %d, want 2", idx)
	}
	if got := st.slotAt[2][1]; got != 0 {
		t.Fatalf("slotAt[2][1] = %d, want 0 (frame 0 is still the most recent saver)", got)
	}
	if got := st.slotAt[2][2]; got != 2 {
		t.Fatalf("slotAt[2][2] = %d, want 2 (frame 2 just overwrote slot 2)", got)
	}
}

func TestSlotTrackerUnsavedSlotStaysUnset(t *testing.T) {
	st := NewSlotTracker()
	st.RecordFrame(0, 0)
	st.RecordFrame(0, 0)
	if got := st.slotAt[0][1]; got != -1 {
		t.Fatalf("slotAt[0][1] = %d, want -1 (slot 0 was never saved into)", got)
	}
}

func TestRequiredFramesAlwaysIncludesTarget(t *testing.T) {
	st := NewSlotTracker()
	st.RecordFrame(1<<0, 0)
	st.RecordFrame(0, 0)
	req := st.RequiredFrames(1)
	if !req[1] {
		t.Fatal("RequiredFrames must always include the target frame itself")
	}
}

func TestRequiredFramesFollowsReferenceChain(t *testing.T) {
	st := NewSlotTracker()
	st.RecordFrame(1<<0, 0)    // frame 0: saves into slot 0
	st.RecordFrame(0, 1<<0)    // frame 1: references slot 0 as of frame 0
	st.RecordFrame(0, 0)       // frame 2: references nothing

	req := st.RequiredFrames(1)
	if !req[0] {
		t.Fatal("frame 1 references slot 0, which frame 0 last saved into - frame 0 must be required")
	}
	if req[2] {
		t.Fatal("frame 2 is not a dependency of frame 1 and must not be pulled in")
	}
}

func TestRequiredFramesSlotProjectionAtTargetIsSeeded(t *testing.T) {
	st := NewSlotTracker()
	st.RecordFrame(1<<3, 0) // frame 0 saves into slot 3
	st.RecordFrame(0, 0)    // frame 1 doesn't reference anything itself...
	// ...but is asked about while slot 3 still points at frame 0, so the
	// worklist's own-slot-state seed at t must pull frame 0 in too.
	req := st.RequiredFrames(1)
	if !req[0] {
		t.Fatal("RequiredFrames must seed with every slot's projection at t, not just t's own references")
	}
}

func TestRequiredFramesFrameZeroHasNoDependencies(t *testing.T) {
	st := NewSlotTracker()
	st.RecordFrame(0, 0xFF) // frame 0 claims to reference every slot, but there is no frame before it
	req := st.RequiredFrames(0)
	if len(req) != 1 || !req[0] {
		t.Fatalf("RequiredFrames(0) = %v, want just {0}", req)
	}
}
