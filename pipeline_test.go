package pivot

import (
	"sync/atomic"
	"testing"
)

func TestTask(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		size    int
	}{
		{"serial", 1, 10},
		{"no workers", 0, 3},
		{"single item", 8, 1},
		{"empty", 4, 0},
		{"even chunks", 4, 8},
		{"uneven chunks", 3, 10},
		{"more workers than items", 16, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]*int64, tt.size)
			for i := range data {
				data[i] = new(int64)
			}

			var calls atomic.Int64
			task(tt.workers, data, func(counter *int64) {
				atomic.AddInt64(counter, 1)
				calls.Add(1)
			})

			if calls.Load() != int64(tt.size) {
				t.Errorf("Expected %d calls, got %d", tt.size, calls.Load())
			}
			for i, counter := range data {
				if *counter != 1 {
					t.Errorf("Element %d visited %d times", i, *counter)
				}
			}
		})
	}
}
