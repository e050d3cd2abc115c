package tracker

import (
	"errors"
	"testing"
)

// TestRectGeometry tests dimension and centroid calculations
func TestRectGeometry(t *testing.T) {

	r := NewRect(10, 20, 50, 100)

	if r.Width() != 40 {
		t.Errorf("expected width 40, got %v", r.Width())
	}

	if r.Height() != 80 {
		t.Errorf("expected height 80, got %v", r.Height())
	}

	if r.Area() != 3200 {
		t.Errorf("expected area 3200, got %v", r.Area())
	}

	if r.Centroid() != (Point{X: 30, Y: 60}) {
		t.Errorf("expected centroid (30,60), got %v", r.Centroid())
	}
}

// TestRectValid tests rejection of degenerate bounding boxes
func TestRectValid(t *testing.T) {

	tests := []struct {
		name    string
		rect    Rect
		wantErr bool
	}{
		{
			name:    "valid box",
			rect:    NewRect(0, 0, 10, 10),
			wantErr: false,
		},
		{
			name:    "zero width",
			rect:    NewRect(10, 0, 10, 10),
			wantErr: true,
		},
		{
			name:    "zero height",
			rect:    NewRect(0, 10, 10, 10),
			wantErr: true,
		},
		{
			name:    "inverted corners",
			rect:    NewRect(10, 10, 0, 0),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {

			err := tt.rect.Valid()

			if tt.wantErr && !errors.Is(err, ErrDegenerateRect) {
				t.Errorf("expected ErrDegenerateRect, got %v", err)
			}

			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// TestVerticalDisplacement tests displacement relative to the mean of
// prior history
func TestVerticalDisplacement(t *testing.T) {

	obj := &TrackedObject{
		Centroid: Point{X: 0, Y: 100},
		History:  []Point{{X: 0, Y: 100}},
	}

	if obj.VerticalDisplacement() != 0 {
		t.Errorf("expected zero displacement for single entry, got %v",
			obj.VerticalDisplacement())
	}

	// prior history mean is (100+200)/2 = 150, current position 400
	obj.History = append(obj.History, Point{X: 0, Y: 200}, Point{X: 0, Y: 400})
	obj.Centroid = Point{X: 0, Y: 400}

	if !almostEqual(obj.VerticalDisplacement(), 250, 1e-9) {
		t.Errorf("expected displacement 250, got %v", obj.VerticalDisplacement())
	}

	// upward movement is negative
	obj.History = []Point{{X: 0, Y: 500}, {X: 0, Y: 300}}
	obj.Centroid = Point{X: 0, Y: 300}

	if !almostEqual(obj.VerticalDisplacement(), -200, 1e-9) {
		t.Errorf("expected displacement -200, got %v", obj.VerticalDisplacement())
	}
}
