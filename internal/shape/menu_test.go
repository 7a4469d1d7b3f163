package shape_test

import (
	"testing"

	"github.com/inamate/sketchpad/internal/shape"
)

func TestMenuRotateTwiceNinety(t *testing.T) {
	it := newRect(100, 100)
	menu := &scriptedMenu{choices: []string{"Rotate 90°", "Rotate 90°"}}
	prompt := &scriptedPrompter{}

	it.ContextMenu(pt(10, 10), menu, prompt)
	it.ContextMenu(pt(10, 10), menu, prompt)
	if it.Rotation() != 180 {
		t.Fatalf("rotation = %v, want 180", it.Rotation())
	}
}

func TestMenuRotations(t *testing.T) {
	tests := []struct {
		choice string
		start  float64
		want   float64
		action shape.Action
	}{
		{"Rotate 45°", 0, 45, shape.ActionRotate45},
		{"Rotate 180°", 270, 90, shape.ActionRotate180},
		{"Rotate -45°", 0, 315, shape.ActionRotateMinus45},
		{"Reset Rotation", 135, 0, shape.ActionResetRotation},
	}
	for _, tt := range tests {
		it := newRect(100, 100)
		it.SetRotation(tt.start)
		got := it.ContextMenu(pt(0, 0), &scriptedMenu{choices: []string{tt.choice}}, &scriptedPrompter{})
		if got != tt.action {
			t.Errorf("%s: action %v, want %v", tt.choice, got, tt.action)
		}
		if it.Rotation() != tt.want {
			t.Errorf("%s: rotation %v, want %v", tt.choice, it.Rotation(), tt.want)
		}
	}
}

func TestMenuShowsAllEntries(t *testing.T) {
	menu := &scriptedMenu{}
	newRect(50, 50).ContextMenu(pt(0, 0), menu, &scriptedPrompter{})
	want := []string{"Rotate 45°", "Rotate 90°", "Rotate 180°", "Rotate -45°", "Reset Rotation", "Manual Resize", "Delete"}
	if len(menu.shown) != 1 || len(menu.shown[0]) != len(want) {
		t.Fatalf("shown %v", menu.shown)
	}
	for i, l := range want {
		if menu.shown[0][i] != l {
			t.Errorf("entry %d = %q, want %q", i, menu.shown[0][i], l)
		}
	}
}

func TestMenuDismissedChangesNothing(t *testing.T) {
	it := newRect(100, 100)
	if got := it.ContextMenu(pt(0, 0), &scriptedMenu{}, &scriptedPrompter{}); got != shape.ActionNone {
		t.Fatalf("action %v", got)
	}
	if it.Rotation() != 0 || it.Width() != 100 || it.Deleted() {
		t.Fatal("dismissed menu mutated item")
	}
}

func TestManualResize(t *testing.T) {
	tests := []struct {
		name    string
		answers []answer
		wantW   float64
		wantH   float64
		asked   int
	}{
		{"both confirmed", []answer{{300, true}, {150, true}}, 300, 150, 2},
		{"width cancelled", []answer{{300, false}}, 100, 80, 1},
		{"height cancelled", []answer{{300, true}, {150, false}}, 100, 80, 2},
		{"out of range", []answer{{1200, true}, {150, true}}, 100, 80, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			it := newRect(100, 80)
			prompt := &scriptedPrompter{answers: tt.answers}
			it.ContextMenu(pt(0, 0), &scriptedMenu{choices: []string{"Manual Resize"}}, prompt)
			if it.Width() != tt.wantW || it.Height() != tt.wantH {
				t.Fatalf("size %vx%v, want %vx%v", it.Width(), it.Height(), tt.wantW, tt.wantH)
			}
			if len(prompt.asked) != tt.asked {
				t.Fatalf("asked %v", prompt.asked)
			}
		})
	}
}

func TestMenuDelete(t *testing.T) {
	it := newRect(100, 100)
	o := &fakeOwner{}
	it.SetOwner(o)
	if got := it.ContextMenu(pt(0, 0), &scriptedMenu{choices: []string{"Delete"}}, &scriptedPrompter{}); got != shape.ActionDelete {
		t.Fatalf("action %v", got)
	}
	if !it.Deleted() || len(o.detached) != 1 {
		t.Fatal("item not removed from owner")
	}
}
