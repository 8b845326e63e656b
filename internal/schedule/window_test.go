package schedule

import (
	"testing"
	"time"

	"github.com/krasivo-app/SalonBookingService/pkg/types"
)

func at(h, m int) time.Time {
	return time.Date(2026, 3, 2, h, m, 0, 0, time.UTC) // Monday
}

func mustTimeString(s string) types.TimeString {
	ts, err := types.NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func win(sh, sm, eh, em int) Window {
	return Window{Start: at(sh, sm), End: at(eh, em)}
}

func TestWindowOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Window
		want bool
	}{
		{"real overlap", win(11, 30, 12, 0), win(11, 20, 11, 40), true},
		{"touching left", win(11, 30, 12, 0), win(11, 0, 11, 30), false},
		{"touching right", win(11, 30, 12, 0), win(12, 0, 12, 30), false},
		{"contained", win(10, 0, 12, 0), win(10, 30, 11, 0), true},
		{"disjoint", win(9, 0, 10, 0), win(14, 0, 15, 0), false},
		{"identical", win(9, 0, 10, 0), win(9, 0, 10, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
			// Пересечение симметрично
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps() reversed = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWindowIntersect(t *testing.T) {
	got, ok := win(9, 0, 17, 0).Intersect(win(12, 0, 20, 0))
	if !ok {
		t.Fatal("expected non-empty intersection")
	}
	if !got.Start.Equal(at(12, 0)) || !got.End.Equal(at(17, 0)) {
		t.Errorf("Intersect() = %v-%v, want 12:00-17:00", got.Start, got.End)
	}

	if _, ok := win(9, 0, 12, 0).Intersect(win(12, 0, 17, 0)); ok {
		t.Error("touching windows must not intersect")
	}
}

func TestWindowSubtract(t *testing.T) {
	tests := []struct {
		name string
		w    Window
		cut  Window
		want []Window
	}{
		{
			name: "no overlap keeps window",
			w:    win(9, 0, 17, 0),
			cut:  win(18, 0, 19, 0),
			want: []Window{win(9, 0, 17, 0)},
		},
		{
			name: "cut fully covers window",
			w:    win(9, 0, 17, 0),
			cut:  win(8, 0, 18, 0),
			want: []Window{},
		},
		{
			name: "cut strictly inside splits into two",
			w:    win(9, 0, 17, 0),
			cut:  win(12, 0, 13, 0),
			want: []Window{win(9, 0, 12, 0), win(13, 0, 17, 0)},
		},
		{
			name: "cut trims left edge",
			w:    win(9, 0, 17, 0),
			cut:  win(8, 0, 11, 0),
			want: []Window{win(11, 0, 17, 0)},
		},
		{
			name: "cut trims right edge",
			w:    win(9, 0, 17, 0),
			cut:  win(15, 0, 18, 0),
			want: []Window{win(9, 0, 15, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.w.Subtract(tt.cut)
			if len(got) != len(tt.want) {
				t.Fatalf("Subtract() returned %d windows, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if !got[i].Start.Equal(tt.want[i].Start) || !got[i].End.Equal(tt.want[i].End) {
					t.Errorf("Subtract()[%d] = %v-%v, want %v-%v",
						i, got[i].Start, got[i].End, tt.want[i].Start, tt.want[i].End)
				}
			}
		})
	}
}

func TestSubtractAllOverlappingCuts(t *testing.T) {
	// Перекрывающиеся выходные вычитают один участок дважды - результат тот же
	got := SubtractAll([]Window{win(9, 0, 17, 0)}, []Window{win(10, 0, 12, 0), win(11, 0, 13, 0)})
	want := []Window{win(9, 0, 10, 0), win(13, 0, 17, 0)}
	if len(got) != len(want) {
		t.Fatalf("SubtractAll() returned %d windows, want %d", len(got), len(want))
	}
	for i := range got {
		if !got[i].Start.Equal(want[i].Start) || !got[i].End.Equal(want[i].End) {
			t.Errorf("SubtractAll()[%d] = %v-%v, want %v-%v",
				i, got[i].Start, got[i].End, want[i].Start, want[i].End)
		}
	}
}
