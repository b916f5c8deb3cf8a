package core

import "testing"

func TestParseActionRoundTrip(t *testing.T) {
	for a := ActionNone; a <= ActionPause; a++ {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v, expected %v", a.String(), got, ok, a)
		}
	}
	if _, ok := ParseAction("jump"); ok {
		t.Error("ParseAction(jump) should fail")
	}
}

func TestInputFrameListAndEmpty(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("new frame should be empty")
	}

	f.Set(ActionNone)
	if !f.Empty() {
		t.Error("frame with only ActionNone should be empty")
	}

	f.Set(ActionHardDrop)
	f.Set(ActionLeft)
	got := f.List()
	if len(got) != 2 || got[0] != ActionLeft || got[1] != ActionHardDrop {
		t.Errorf("List() = %v, expected [left hard_drop]", got)
	}

	c := f.Clone()
	f.Clear()
	if !f.Empty() || c.Empty() {
		t.Error("Clear() should not affect clones")
	}
}
