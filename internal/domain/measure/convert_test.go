package measure

import (
	"math"
	"testing"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestConvert_Identity(t *testing.T) {
	units := []Unit{Kilogram, Gram, Liter, Milliliter, Count, Package}
	quantities := []float64{0, 1, 0.25, 1234.5678, -3.5}

	for _, u := range units {
		for _, q := range quantities {
			if got := Convert(q, u, u, PackageSpec{Size: 7}); got != q {
				t.Errorf("Convert(%v, %s, %s) = %v, want exact %v", q, u, u, got, q)
			}
		}
	}
}

func TestConvert_MassAndVolume(t *testing.T) {
	tests := []struct {
		name     string
		qty      float64
		from, to Unit
		want     float64
	}{
		{"kg to g", 1.5, Kilogram, Gram, 1500},
		{"g to kg", 250, Gram, Kilogram, 0.25},
		{"l to ml", 0.75, Liter, Milliliter, 750},
		{"ml to l", 330, Milliliter, Liter, 0.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Convert(tt.qty, tt.from, tt.to, PackageSpec{})
			if !almostEqual(got, tt.want) {
				t.Errorf("Convert(%v, %s, %s) = %v, want %v", tt.qty, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestConvert_RoundTripSameFamily(t *testing.T) {
	pairs := [][2]Unit{
		{Kilogram, Gram},
		{Liter, Milliliter},
	}

	for _, p := range pairs {
		for _, q := range []float64{0.001, 1, 3.14159, 98765.4321} {
			back := Convert(Convert(q, p[0], p[1], PackageSpec{}), p[1], p[0], PackageSpec{})
			if !almostEqual(back, q) {
				t.Errorf("round trip %s<->%s lost precision: %v -> %v", p[0], p[1], q, back)
			}
		}
	}
}

func TestConvert_Package(t *testing.T) {
	pack := PackageSpec{Size: 500, Unit: Gram}

	// 2 packages of 500 g each
	if got := Convert(2, Package, Gram, pack); !almostEqual(got, 1000) {
		t.Errorf("package->g = %v, want 1000", got)
	}

	// 1500 g is 3 packages
	if got := Convert(1500, Gram, Package, pack); !almostEqual(got, 3) {
		t.Errorf("g->package = %v, want 3", got)
	}

	// Round trip through package
	back := Convert(Convert(1, Package, Gram, pack), Gram, Package, pack)
	if !almostEqual(back, 1) {
		t.Errorf("package round trip = %v, want 1", back)
	}
}

func TestConvert_PackageCountException(t *testing.T) {
	// Package sized in grams, ingredient counted in units: 1 package = 1 un.
	pack := PackageSpec{Size: 500, Unit: Gram}

	if got := Convert(3, Package, Count, pack); got != 3 {
		t.Errorf("mixed-dimension package->count = %v, want 3", got)
	}
	if got := Convert(3, Count, Package, pack); got != 3 {
		t.Errorf("mixed-dimension count->package = %v, want 3", got)
	}

	// Package sized in count units scales normally.
	countPack := PackageSpec{Size: 6, Unit: Count}
	if got := Convert(2, Package, Count, countPack); !almostEqual(got, 12) {
		t.Errorf("count package->count = %v, want 12", got)
	}
	if got := Convert(12, Count, Package, countPack); !almostEqual(got, 2) {
		t.Errorf("count->count package = %v, want 2", got)
	}
}

func TestConvert_PackageZeroSizeGuard(t *testing.T) {
	if got := Convert(42, Gram, Package, PackageSpec{Size: 0}); got != 42 {
		t.Errorf("zero package size must pass quantity through, got %v", got)
	}
}

func TestConvert_UndefinedPairsFallBackToIdentity(t *testing.T) {
	tests := []struct {
		from, to Unit
	}{
		{Gram, Count},
		{Count, Liter},
		{Kilogram, Milliliter},
	}

	for _, tt := range tests {
		if got := Convert(5, tt.from, tt.to, PackageSpec{}); got != 5 {
			t.Errorf("Convert(5, %s, %s) = %v, want identity fallback 5", tt.from, tt.to, got)
		}
	}
}

func TestUnit_Family(t *testing.T) {
	tests := []struct {
		unit Unit
		want Family
	}{
		{Kilogram, FamilyMass},
		{Gram, FamilyMass},
		{Liter, FamilyVolume},
		{Milliliter, FamilyVolume},
		{Count, FamilyCount},
		{Package, FamilyPackage},
		{Unit("furlong"), FamilyNone},
	}

	for _, tt := range tests {
		if got := tt.unit.Family(); got != tt.want {
			t.Errorf("%q.Family() = %v, want %v", tt.unit, got, tt.want)
		}
	}

	if Unit("furlong").Valid() {
		t.Error("unknown unit must not be valid")
	}
	if Package.ValidBase() {
		t.Error("package must not be a valid base unit")
	}
}
