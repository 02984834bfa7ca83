// Package atmos provides atmosphere models mapping altitude to ambient
// pressure and density. The rocket model consumes these through the Model
// interface; the core never depends on a particular implementation.
package atmos

import "math"

// Standard sea-level constants shared by the models.
const (
	SeaLevelPressure = 101325.0 // Pa
	SeaLevelDensity  = 1.225    // kg/m^3
	EarthRadius      = 6356766.0
	g0               = 9.80665
)

// Model returns ambient pressure (Pa) and density (kg/m^3) at a geometric
// altitude in meters. Implementations must be deterministic: repeated
// queries at the same altitude give identical results, so callers may treat
// a query as side-effect-free even when the implementation caches.
type Model interface {
	At(altitude float64) (pressure, density float64)
}

// gasConstant is the specific gas constant of dry air, J/(kg K).
const gasConstant = 287.053

// us76Layer is one lapse-rate layer of the 1976 US Standard Atmosphere,
// keyed by geopotential base altitude.
type us76Layer struct {
	baseAlt  float64 // m, geopotential
	baseTemp float64 // K
	basePres float64 // Pa
	lapse    float64 // K/m
}

var us76Layers = []us76Layer{
	{0, 288.15, 101325.0, -0.0065},
	{11000, 216.65, 22632.06, 0},
	{20000, 216.65, 5474.889, 0.001},
	{32000, 228.65, 868.0187, 0.0028},
	{47000, 270.65, 110.9063, 0},
	{51000, 270.65, 66.93887, -0.0028},
	{71000, 214.65, 3.956420, -0.002},
}

// us76Top is the geopotential ceiling of the table (86 km geometric).
const us76Top = 84852.0

// US76 is the 1976 US Standard Atmosphere up to 86 km geometric altitude.
// Above the table it returns (0, 0), which makes the vacuum end of the
// engine thrust interpolation exactly reachable; below zero it clamps to
// sea level. It remembers the last queried altitude, which only short-cuts
// repeated identical queries and never changes a result. Not safe for
// concurrent use; give each body its own instance.
type US76 struct {
	lastAlt      float64
	lastPressure float64
	lastDensity  float64
	cached       bool
}

func NewUS76() *US76 {
	return &US76{}
}

func (a *US76) At(altitude float64) (pressure, density float64) {
	if a.cached && altitude == a.lastAlt {
		return a.lastPressure, a.lastDensity
	}

	pressure, density = us76Lookup(altitude)

	a.lastAlt = altitude
	a.lastPressure = pressure
	a.lastDensity = density
	a.cached = true
	return pressure, density
}

func us76Lookup(altitude float64) (pressure, density float64) {
	if altitude < 0 {
		altitude = 0
	}

	// Geometric to geopotential altitude.
	h := EarthRadius * altitude / (EarthRadius + altitude)
	if h > us76Top {
		return 0, 0
	}

	layer := us76Layers[0]
	for _, l := range us76Layers {
		if h < l.baseAlt {
			break
		}
		layer = l
	}

	dh := h - layer.baseAlt
	var temp float64
	if layer.lapse == 0 {
		temp = layer.baseTemp
		pressure = layer.basePres * math.Exp(-g0*dh/(gasConstant*temp))
	} else {
		temp = layer.baseTemp + layer.lapse*dh
		pressure = layer.basePres * math.Pow(layer.baseTemp/temp, g0/(gasConstant*layer.lapse))
	}

	density = pressure / (gasConstant * temp)
	return pressure, density
}

// Exponential is a single-scale-height atmosphere, p0 e^(-h/H) and
// rho0 e^(-h/H). Cruder than US76 but cheap and monotone to any altitude.
type Exponential struct {
	P0   float64
	Rho0 float64
	H    float64 // scale height, m
}

func NewExponential() *Exponential {
	return &Exponential{P0: SeaLevelPressure, Rho0: SeaLevelDensity, H: 8500}
}

func (a *Exponential) At(altitude float64) (pressure, density float64) {
	if altitude < 0 {
		altitude = 0
	}
	f := math.Exp(-altitude / a.H)
	return a.P0 * f, a.Rho0 * f
}

// Gravity returns the inverse-square local gravitational acceleration at a
// geometric altitude, g0 Re^2/(Re+z)^2.
func Gravity(altitude float64) float64 {
	r := EarthRadius + altitude
	return g0 * EarthRadius * EarthRadius / (r * r)
}
