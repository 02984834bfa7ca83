package atmos

import (
	"math"
	"testing"
)

func TestUS76SeaLevel(t *testing.T) {
	a := NewUS76()
	p, rho := a.At(0)

	if p != SeaLevelPressure {
		t.Errorf("sea-level pressure: got %v, want %v", p, SeaLevelPressure)
	}
	if math.Abs(rho-SeaLevelDensity) > 0.001 {
		t.Errorf("sea-level density: got %v, want ~%v", rho, SeaLevelDensity)
	}
}

func TestUS76Tropopause(t *testing.T) {
	a := NewUS76()

	// 11 km geopotential is ~11020 m geometric.
	p, rho := a.At(11020)
	if math.Abs(p-22632) > 50 {
		t.Errorf("tropopause pressure: got %v, want ~22632", p)
	}
	if math.Abs(rho-0.3639) > 0.002 {
		t.Errorf("tropopause density: got %v, want ~0.3639", rho)
	}
}

func TestUS76AboveTable(t *testing.T) {
	a := NewUS76()
	p, rho := a.At(120000)
	if p != 0 || rho != 0 {
		t.Errorf("above 86 km must be exact vacuum, got p=%v rho=%v", p, rho)
	}
}

func TestUS76NegativeClamps(t *testing.T) {
	a := NewUS76()
	p0, rho0 := a.At(0)
	p, rho := a.At(-500)
	if p != p0 || rho != rho0 {
		t.Errorf("negative altitude must clamp to sea level, got p=%v rho=%v", p, rho)
	}
}

func TestUS76Monotone(t *testing.T) {
	a := NewUS76()
	prevP := math.Inf(1)
	for z := 0.0; z <= 80000; z += 1000 {
		p, rho := a.At(z)
		if p >= prevP {
			t.Fatalf("pressure not strictly decreasing at z=%v: %v >= %v", z, p, prevP)
		}
		if rho < 0 {
			t.Fatalf("negative density at z=%v", z)
		}
		prevP = p
	}
}

func TestUS76CacheTransparent(t *testing.T) {
	a := NewUS76()
	p1, rho1 := a.At(5000)
	a.At(30000)
	p2, rho2 := a.At(5000)
	if p1 != p2 || rho1 != rho2 {
		t.Errorf("cache changed a result: (%v,%v) vs (%v,%v)", p1, rho1, p2, rho2)
	}

	fresh := NewUS76()
	p3, rho3 := fresh.At(5000)
	if p1 != p3 || rho1 != rho3 {
		t.Errorf("cached and fresh queries differ: (%v,%v) vs (%v,%v)", p1, rho1, p3, rho3)
	}
}

func TestExponential(t *testing.T) {
	a := NewExponential()

	p, rho := a.At(0)
	if p != SeaLevelPressure || rho != SeaLevelDensity {
		t.Errorf("sea level: got p=%v rho=%v", p, rho)
	}

	p, _ = a.At(8500)
	want := SeaLevelPressure / math.E
	if math.Abs(p-want) > 1 {
		t.Errorf("one scale height: got %v, want %v", p, want)
	}
}

func TestGravity(t *testing.T) {
	if g := Gravity(0); g != 9.80665 {
		t.Errorf("surface gravity: got %v", g)
	}
	if g := Gravity(100000); g >= 9.80665 || g < 9.4 {
		t.Errorf("gravity at 100 km out of range: %v", g)
	}
}
