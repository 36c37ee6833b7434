package viewer

import (
	"image"
	"testing"
)

func pages(n int) []image.Image {
	out := make([]image.Image, n)
	for i := range out {
		out[i] = image.NewRGBA(image.Rect(0, 0, i+1, 1))
	}
	return out
}

func TestNavigateThreePages(t *testing.T) {
	s := NewSession("doc.pdf", "", pages(3))
	if s.Index != 0 {
		t.Fatalf("expected index 0, got %d", s.Index)
	}
	steps := []struct {
		changed bool
		index   int
	}{{true, 1}, {true, 2}, {false, 2}}
	for i, step := range steps {
		if got := s.Next(); got != step.changed {
			t.Fatalf("step %d: Next() = %v, want %v", i, got, step.changed)
		}
		if s.Index != step.index {
			t.Fatalf("step %d: index %d, want %d", i, s.Index, step.index)
		}
	}
}

func TestNextReachesLastPageAndStops(t *testing.T) {
	for n := 1; n <= 6; n++ {
		s := NewSession("", "", pages(n))
		moves := 0
		for i := 0; i < n+2; i++ {
			if s.Next() {
				moves++
			}
		}
		if moves != n-1 || s.Index != n-1 {
			t.Fatalf("n=%d: moves=%d index=%d", n, moves, s.Index)
		}
	}
}

func TestPreviousAtFirstPageIsNoop(t *testing.T) {
	s := NewSession("", "", pages(2))
	if s.Previous() {
		t.Fatalf("Previous at index 0 must not move")
	}
	s.Next()
	if !s.Previous() || s.Index != 0 {
		t.Fatalf("expected to return to page 0, at %d", s.Index)
	}
}

func TestShowBounds(t *testing.T) {
	s := NewSession("", "", pages(4))
	if s.Show(-1) || s.Show(4) {
		t.Fatalf("out of range Show must be a no-op")
	}
	if !s.Show(3) || s.Page().Bounds().Dx() != 4 {
		t.Fatalf("Show(3) did not select the last page")
	}
	if s.Show(3) {
		t.Fatalf("Show of the current page reports no change")
	}
	if !s.First() || s.Index != 0 {
		t.Fatalf("First did not move to page 0")
	}
	if !s.Last() || s.Index != 3 {
		t.Fatalf("Last did not move to page 3")
	}
}

func TestEmptySession(t *testing.T) {
	s := NewSession("", "", nil)
	if s.Index != -1 || s.Page() != nil {
		t.Fatalf("empty session must have no current page")
	}
	if s.Next() || s.Previous() || s.First() || s.Last() {
		t.Fatalf("navigation on an empty session must be a no-op")
	}

	var none *Session
	if none.Next() || none.PageCount() != 0 || none.Page() != nil {
		t.Fatalf("nil session must be inert")
	}
}
