package models

import (
	"math"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

// Projectile slot layout. x is downrange, y crosswind, z vertical.
const (
	ProjVx = iota
	ProjX
	ProjVy
	ProjY
	ProjVz
	ProjZ
	ProjLen
)

// G is the uniform vertical gravitational acceleration used by the
// projectile model.
const G = -9.81

// Projectile is a spin-stabilized body subject to quadratic drag against
// the wind-relative velocity and Magnus lift from backspin. The defaults
// describe a regulation golf ball at sea level.
//
// Parameters are plain fields fixed before the first step; the model does
// no validation, and non-physical values (zero mass, negative density)
// propagate NaN rather than erroring.
type Projectile struct {
	ode.Phase

	Mass    float64 // kg
	Area    float64 // frontal area, m^2
	Density float64 // air density, kg/m^3
	Cd      float64

	WindVx, WindVy float64 // horizontal wind, no vertical component

	Rx, Ry, Rz float64 // spin axis unit vector
	Omega      float64 // spin rate, rad/s
	Radius     float64 // m
}

// NewProjectile returns a golf ball at rest at the origin. Set fields and
// call Launch before stepping.
func NewProjectile() *Projectile {
	return &Projectile{
		Phase:   ode.NewPhase(0, make([]float64, ProjLen)...),
		Mass:    0.0459,
		Area:    0.0014,
		Density: 1.225,
		Cd:      0.22,
		Rx:      0, Ry: 1, Rz: 0,
		Omega:  300,
		Radius: 0.0214,
	}
}

// Launch resets the body to a fresh launch condition at s=0: loft is the
// elevation angle in radians, measured in the x-z plane.
func (p *Projectile) Launch(x0, y0, z0, speed, loft float64) {
	vx := speed * math.Cos(loft)
	vz := speed * math.Sin(loft)
	p.Reset(0, vx, x0, 0, y0, vz, z0)
}

func (p *Projectile) VX() float64 { return p.At(ProjVx) }
func (p *Projectile) VY() float64 { return p.At(ProjVy) }
func (p *Projectile) VZ() float64 { return p.At(ProjVz) }
func (p *Projectile) X() float64  { return p.At(ProjX) }
func (p *Projectile) Y() float64  { return p.At(ProjY) }
func (p *Projectile) Z() float64  { return p.At(ProjZ) }

func (p *Projectile) Derive(s float64, q, dq ode.State, ds, scale float64) ode.State {
	var tmp [ProjLen]float64
	for i := range tmp {
		tmp[i] = q[i] + scale*dq[i]
	}

	vx := tmp[ProjVx]
	vy := tmp[ProjVy]
	vz := tmp[ProjVz]

	// Velocity relative to the air mass. The wind carries no vertical
	// component.
	vax := vx - p.WindVx
	vay := vy - p.WindVy
	vaz := vz

	// The 1e-8 term keeps the magnitude strictly positive so the drag
	// direction is defined at rest.
	va := math.Sqrt(vax*vax+vay*vay+vaz*vaz) + 1e-8

	fd := 0.5 * p.Density * p.Area * p.Cd * va * va
	fdx := -fd * vax / va
	fdy := -fd * vay / va
	fdz := -fd * vaz / va

	v := math.Sqrt(vx*vx+vy*vy+vz*vz) + 1e-8

	// Empirical backspin lift correlation; zero spin gives Cl = 0
	// and no lateral force.
	cl := -0.05 + math.Sqrt(0.0025+0.36*math.Abs(p.Radius*p.Omega/v))
	fm := 0.5 * p.Density * p.Area * cl * v * v
	fmx := (vy*p.Rz - p.Ry*vz) * fm / v
	fmy := -(vx*p.Rz - p.Rx*vz) * fm / v
	fmz := (vx*p.Ry - p.Rx*vy) * fm / v

	out := make(ode.State, ProjLen)
	out[ProjVx] = ds * (fdx + fmx) / p.Mass
	out[ProjX] = ds * vx
	out[ProjVy] = ds * (fdy + fmy) / p.Mass
	out[ProjY] = ds * vy
	out[ProjVz] = ds * (G + (fdz+fmz)/p.Mass)
	out[ProjZ] = ds * vz
	return out
}
