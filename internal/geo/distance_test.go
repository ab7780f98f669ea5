package geo

import (
	"math"
	"testing"
)

func TestHaversineMiles(t *testing.T) {
	toronto := Point{Lat: 43.6532, Lng: -79.3832}
	ottawa := Point{Lat: 45.4215, Lng: -75.6972}

	got := HaversineMiles(toronto, ottawa)
	// Great-circle distance Toronto-Ottawa is about 220 miles.
	if math.Abs(got-220) > 5 {
		t.Fatalf("HaversineMiles(toronto, ottawa) = %v, want ~220", got)
	}
	if d := HaversineMiles(toronto, toronto); d != 0 {
		t.Fatalf("distance to self = %v, want 0", d)
	}
	if a, b := HaversineMiles(toronto, ottawa), HaversineMiles(ottawa, toronto); math.Abs(a-b) > 1e-9 {
		t.Fatalf("distance not symmetric: %v vs %v", a, b)
	}
}

func TestPathMiles(t *testing.T) {
	if d := PathMiles(nil); d != 0 {
		t.Fatalf("PathMiles(nil) = %v, want 0", d)
	}
	if d := PathMiles([]Point{{Lat: 43.65, Lng: -79.38}}); d != 0 {
		t.Fatalf("PathMiles(one point) = %v, want 0", d)
	}

	a := Point{Lat: 43.6532, Lng: -79.3832}
	b := Point{Lat: 43.7615, Lng: -79.4111}
	c := Point{Lat: 43.8561, Lng: -79.3370}
	want := HaversineMiles(a, b) + HaversineMiles(b, c)
	if got := PathMiles([]Point{a, b, c}); math.Abs(got-want) > 1e-9 {
		t.Fatalf("PathMiles = %v, want %v", got, want)
	}
}
