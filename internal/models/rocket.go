package models

import (
	"math"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/atmos"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

// Rocket slot layout. Motion is confined to the x-z plane; the y slots are
// carried but never change.
const (
	RocketVx = iota
	RocketX
	RocketVy
	RocketY
	RocketVz
	RocketZ
	RocketMdot
	RocketMass
	RocketOmega
	RocketTheta
	RocketLen
)

// Rocket is a multi-engine ascent vehicle with altitude-interpolated
// thrust, quadratic drag, inverse-square gravity, and linearly depleting
// mass. Pitch is purely kinematic: theta integrates omega, omega has no
// dynamics, so the pitch profile is whatever the initial state prescribes.
//
// The model never cuts its own burn. Thrust and mass loss continue until
// the driver zeros the engine count and the mdot slot (see
// scenario.Burnout); keeping cutoff outside the model is deliberate.
type Rocket struct {
	ode.Phase

	NumEngines     int
	SeaLevelThrust float64 // per engine, N
	VacuumThrust   float64 // per engine, N
	Cd             float64
	Diameter       float64 // m

	Atmosphere atmos.Model
}

// NewRocket returns a single-stage nine-engine vehicle loosely shaped like
// a small orbital booster, flying in a US76 atmosphere. Set fields and call
// Launch before stepping.
func NewRocket() *Rocket {
	return &Rocket{
		Phase:          ode.NewPhase(0, make([]float64, RocketLen)...),
		NumEngines:     9,
		SeaLevelThrust: 845000,
		VacuumThrust:   914000,
		Cd:             0.25,
		Diameter:       3.66,
		Atmosphere:     atmos.NewUS76(),
	}
}

// Launch resets the vehicle on the pad: initial mass, per-engine propellant
// mass flow rate, pitch angle and pitch rate, at rest at altitude z0.
func (r *Rocket) Launch(mass, massFlowRate, theta0, omega0, z0 float64) {
	q := make([]float64, RocketLen)
	q[RocketZ] = z0
	q[RocketMdot] = massFlowRate
	q[RocketMass] = mass
	q[RocketOmega] = omega0
	q[RocketTheta] = theta0
	r.Reset(0, q...)
}

func (r *Rocket) Mass() float64     { return r.At(RocketMass) }
func (r *Rocket) Altitude() float64 { return r.At(RocketZ) }
func (r *Rocket) Theta() float64    { return r.At(RocketTheta) }
func (r *Rocket) VX() float64       { return r.At(RocketVx) }
func (r *Rocket) VZ() float64       { return r.At(RocketVz) }

// Thrust returns the total thrust at an ambient pressure, interpolating
// each engine linearly between its vacuum and sea-level ratings by
// pressure/101325. Ratio 1 gives exactly the sea-level rating, ratio 0
// exactly the vacuum rating.
func (r *Rocket) Thrust(pressure float64) float64 {
	ratio := pressure / atmos.SeaLevelPressure
	perEngine := r.VacuumThrust + (r.SeaLevelThrust-r.VacuumThrust)*ratio
	return perEngine * float64(r.NumEngines)
}

// FrontalArea returns 0.25 pi d^2.
func (r *Rocket) FrontalArea() float64 {
	return 0.25 * math.Pi * r.Diameter * r.Diameter
}

func (r *Rocket) Derive(s float64, q, dq ode.State, ds, scale float64) ode.State {
	var tmp [RocketLen]float64
	for i := range tmp {
		tmp[i] = q[i] + scale*dq[i]
	}

	vx := tmp[RocketVx]
	vy := tmp[RocketVy]
	vz := tmp[RocketVz]
	z := tmp[RocketZ]
	mdot := tmp[RocketMdot]
	mass := tmp[RocketMass]
	omega := tmp[RocketOmega]
	theta := tmp[RocketTheta]

	pressure, density := r.Atmosphere.At(z)
	thrust := r.Thrust(pressure)

	v := math.Sqrt(vx*vx+vy*vy+vz*vz) + 1e-8
	drag := 0.5 * r.Cd * density * v * v * r.FrontalArea()

	g := atmos.Gravity(z)

	// Net force in the plane of flight. The lift term is written out but
	// this vehicle generates none.
	lift := 0.0
	fx := (thrust-drag)*math.Cos(theta) - lift*math.Sin(theta)
	fz := (thrust-drag)*math.Sin(theta) + lift*math.Cos(theta) - mass*g

	out := make(ode.State, RocketLen)
	out[RocketVx] = ds * fx / mass
	out[RocketX] = ds * vx
	out[RocketVy] = 0
	out[RocketY] = 0
	out[RocketVz] = ds * fz / mass
	out[RocketZ] = ds * vz
	out[RocketMdot] = 0
	out[RocketMass] = ds * -mdot * float64(r.NumEngines)
	out[RocketOmega] = 0
	out[RocketTheta] = ds * omega
	return out
}
