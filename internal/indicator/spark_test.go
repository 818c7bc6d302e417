package indicator

import "testing"

func TestNormalize(t *testing.T) {
	out := Normalize([]float64{1, 3, 2})
	want := []float64{0, 1, 0.5}
	if len(out) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(out))
	}
	for i := range want {
		if !almostEqual(out[i], want[i]) {
			t.Errorf("point %d: expected %.4f, got %.4f", i, want[i], out[i])
		}
	}
}

func TestNormalize_Flat(t *testing.T) {
	out := Normalize([]float64{7, 7, 7})
	for i, v := range out {
		if v != 0.5 {
			t.Errorf("point %d: expected 0.5 for flat series, got %.4f", i, v)
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	if out := Normalize(nil); out != nil {
		t.Error("expected nil for empty input")
	}
}
