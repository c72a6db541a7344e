package renderer

import "testing"

func TestStarfieldDeterministic(t *testing.T) {
	a := NewStarfield(7, 50)
	b := NewStarfield(7, 50)

	if a.Len() != 50 {
		t.Fatalf("Len = %d, want 50", a.Len())
	}
	for i := range a.Stars() {
		if a.Stars()[i] != b.Stars()[i] {
			t.Fatalf("star %d differs between equal seeds", i)
		}
	}
}

func TestStarfieldBounds(t *testing.T) {
	s := NewStarfield(3, 200)
	for i, st := range s.Stars() {
		if st.X < 0 || st.X >= 1 || st.Y < 0 || st.Y >= 1 {
			t.Errorf("star %d out of screen: (%v, %v)", i, st.X, st.Y)
		}
		for _, tm := range []float64{0, 1.5, 10, 100} {
			v := s.Brightness(i, tm)
			if v < 0 || v > st.Base+1e-9 {
				t.Errorf("star %d brightness at %v = %v, want [0, %v]", i, tm, v, st.Base)
			}
		}
	}
}
