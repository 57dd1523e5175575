package parallel

import (
	"sync/atomic"
	"testing"
)

func TestExecutorCoversEveryIndexOnce(t *testing.T) {
	tests := []struct {
		name string
		exec Executor
		n    int
	}{
		{"serial empty", Serial{}, 0},
		{"serial", Serial{}, 1000},
		{"pool below threshold", NewPool(4, 64), 10},
		{"pool exact multiple", NewPool(4, 1), 400},
		{"pool uneven", NewPool(3, 1), 1001},
		{"pool more workers than items", NewPool(16, 1), 5},
		{"single worker pool", NewPool(1, 1), 77},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.exec.Close()

			hits := make([]int32, tt.n)
			tt.exec.For(tt.n, func(start, end int) {
				for i := start; i < end; i++ {
					atomic.AddInt32(&hits[i], 1)
				}
			})

			for i, h := range hits {
				if h != 1 {
					t.Fatalf("index %d visited %d times, want 1", i, h)
				}
			}
		})
	}
}

func TestPoolReusableAfterClose(t *testing.T) {
	p := NewPool(4, 1)

	var total atomic.Int64
	sum := func(start, end int) {
		for i := start; i < end; i++ {
			total.Add(int64(i))
		}
	}

	p.For(100, sum)
	p.Close()
	p.Close()
	p.For(100, sum)
	p.Close()

	want := int64(2 * 4950)
	if got := total.Load(); got != want {
		t.Errorf("sum = %d, want %d", got, want)
	}
}

func TestNewSelectsSerialForOneWorker(t *testing.T) {
	if _, ok := New(1, 0).(Serial); !ok {
		t.Error("New(1, 0) should return Serial")
	}
	p, ok := New(0, 0).(*Pool)
	if !ok {
		t.Fatal("New(0, 0) should return *Pool")
	}
	if p.Workers() < 1 {
		t.Errorf("Workers() = %d, want >= 1", p.Workers())
	}
	if p.threshold != DefaultThreshold {
		t.Errorf("threshold = %d, want %d", p.threshold, DefaultThreshold)
	}
}

func BenchmarkPoolFor(b *testing.B) {
	p := NewPool(0, 0)
	defer p.Close()
	data := make([]float32, 10000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.For(len(data), func(start, end int) {
			for j := start; j < end; j++ {
				data[j] = data[j]*0.5 + 1
			}
		})
	}
}
