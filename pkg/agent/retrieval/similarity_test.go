package retrieval

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float64
	}{
		{
			name: "identical vectors",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2, 3},
			want: 1.0,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0.0,
		},
		{
			name: "opposite vectors",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: -1.0,
		},
		{
			name: "length mismatch defined as zero",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2},
			want: 0.0,
		},
		{
			name: "zero vector",
			a:    []float32{0, 0, 0},
			b:    []float32{1, 2, 3},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > epsilon {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityIsSymmetric(t *testing.T) {
	a := []float32{0.3, -0.7, 0.12, 0.5}
	b := []float32{-0.1, 0.9, 0.33, -0.2}

	if math.Abs(CosineSimilarity(a, b)-CosineSimilarity(b, a)) > epsilon {
		t.Errorf("CosineSimilarity is not symmetric: sim(a,b)=%v sim(b,a)=%v",
			CosineSimilarity(a, b), CosineSimilarity(b, a))
	}
}

func TestCosineSimilaritySelfIsOne(t *testing.T) {
	v := []float32{0.25, -1.5, 3.75, 0.001}
	if got := CosineSimilarity(v, v); math.Abs(got-1.0) > 1e-6 {
		t.Errorf("sim(v,v) = %v, want 1.0", got)
	}
}
