package gallery

import (
	"reflect"
	"testing"
)

func TestWindow(t *testing.T) {
	tests := []struct {
		name       string
		totalPages int
		current    int
		want       []int
	}{
		{"no pages", 0, 0, nil},
		{"single page", 1, 0, []int{0}},
		{"all fit", 3, 1, []int{0, 1, 2}},
		{"exactly five", 5, 4, []int{0, 1, 2, 3, 4}},
		{"clamped at start", 20, 0, []int{0, 1, 2, 3, 4}},
		{"still clamped at start", 20, 2, []int{0, 1, 2, 3, 4}},
		{"centered", 20, 3, []int{1, 2, 3, 4, 5}},
		{"centered mid", 20, 10, []int{8, 9, 10, 11, 12}},
		{"last centered position", 20, 16, []int{14, 15, 16, 17, 18}},
		{"clamped at end", 20, 17, []int{15, 16, 17, 18, 19}},
		{"still clamped at end", 20, 19, []int{15, 16, 17, 18, 19}},
		{"six pages start", 6, 0, []int{0, 1, 2, 3, 4}},
		{"six pages end", 6, 5, []int{1, 2, 3, 4, 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Window(tt.totalPages, tt.current)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Window(%d, %d) = %v, want %v", tt.totalPages, tt.current, got, tt.want)
			}
		})
	}
}

func TestWindowWidthNeverExceedsFive(t *testing.T) {
	for total := 1; total <= 30; total++ {
		for cur := 0; cur < total; cur++ {
			w := Window(total, cur)
			if len(w) > WindowSize {
				t.Fatalf("Window(%d, %d) has %d entries", total, cur, len(w))
			}
			found := false
			for _, p := range w {
				if p == cur {
					found = true
				}
				if p < 0 || p >= total {
					t.Fatalf("Window(%d, %d) contains out-of-range page %d", total, cur, p)
				}
			}
			if !found {
				t.Fatalf("Window(%d, %d) does not contain the current page", total, cur)
			}
		}
	}
}
