package ui

import "testing"

func TestViewerOpenClose(t *testing.T) {
	var v Viewer

	if v.IsOpen() {
		t.Fatal("zero Viewer should be closed")
	}

	if !v.Open(1, 3) {
		t.Fatal("Open(1, 3) rejected")
	}
	if !v.IsOpen() || v.Index() != 1 {
		t.Errorf("state after open: open=%v index=%d", v.IsOpen(), v.Index())
	}

	v.Close()
	if v.IsOpen() {
		t.Error("still open after Close")
	}
}

func TestViewerOpenOutOfRange(t *testing.T) {
	var v Viewer

	if v.Open(3, 3) {
		t.Error("Open(3, 3) accepted out-of-range index")
	}
	if v.Open(-1, 3) {
		t.Error("Open(-1, 3) accepted negative index")
	}
	if v.Open(0, 0) {
		t.Error("Open on an empty page accepted")
	}
}

func TestViewerCircularNavigation(t *testing.T) {
	var v Viewer
	v.Open(2, 3)

	// Next from the last item wraps to the first.
	if prev := v.Next(3); prev != 2 {
		t.Errorf("Next returned %d, want previous index 2", prev)
	}
	if v.Index() != 0 {
		t.Errorf("Index = %d, want 0 after wrap", v.Index())
	}

	// Prev from the first item wraps to the last.
	if prev := v.Prev(3); prev != 0 {
		t.Errorf("Prev returned %d, want previous index 0", prev)
	}
	if v.Index() != 2 {
		t.Errorf("Index = %d, want 2 after wrap", v.Index())
	}
}

func TestViewerSingleItemNavigation(t *testing.T) {
	var v Viewer
	v.Open(0, 1)

	v.Next(1)
	if v.Index() != 0 {
		t.Errorf("Index = %d, want 0 on a one-item page", v.Index())
	}
	v.Prev(1)
	if v.Index() != 0 {
		t.Errorf("Index = %d, want 0 on a one-item page", v.Index())
	}
}

func TestViewerNavigationResetsPlaying(t *testing.T) {
	var v Viewer
	v.Open(0, 3)
	v.SetPlaying(true)

	v.Next(3)
	if v.Playing() {
		t.Error("playing survived navigation to another item")
	}

	v.SetPlaying(true)
	v.Prev(3)
	if v.Playing() {
		t.Error("playing survived navigation to another item")
	}

	v.SetPlaying(true)
	v.Close()
	if v.Playing() {
		t.Error("playing survived close")
	}
}
