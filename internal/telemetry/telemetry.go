// Package telemetry publishes ascent state as Prometheus gauges and serves
// them over HTTP for scraping. It is the one long-running surface of the
// program, so it logs structured logfmt rather than printing.
package telemetry

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jyunfan2015/physics-for-game-programmers/internal/atmos"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/models"
	"github.com/jyunfan2015/physics-for-game-programmers/internal/ode"
)

var (
	altitudeGauge   = prometheus.NewGauge(prometheus.GaugeOpts{Name: "trajsim_altitude_meters"})
	velocityGauge   = prometheus.NewGauge(prometheus.GaugeOpts{Name: "trajsim_vertical_velocity_mps"})
	speedGauge      = prometheus.NewGauge(prometheus.GaugeOpts{Name: "trajsim_speed_mps"})
	massGauge       = prometheus.NewGauge(prometheus.GaugeOpts{Name: "trajsim_mass_kg"})
	dragGauge       = prometheus.NewGauge(prometheus.GaugeOpts{Name: "trajsim_drag_newton"})
	airDensityGauge = prometheus.NewGauge(prometheus.GaugeOpts{Name: "trajsim_air_density_kg_per_m3"})
	thrustGauge     = prometheus.NewGauge(prometheus.GaugeOpts{Name: "trajsim_thrust_newton"})

	engineThrustGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trajsim_engine_thrust_newton",
			Help: "Current thrust of each engine (in Newtons)",
		},
		[]string{"engine_id"},
	)
)

func init() {
	prometheus.MustRegister(
		altitudeGauge, velocityGauge, speedGauge, massGauge,
		dragGauge, airDensityGauge, thrustGauge, engineThrustGauge,
	)
}

// Publisher feeds the gauges from rocket samples. It implements
// sim.Observer and is installed alongside the scenario's own observers.
type Publisher struct {
	rocket *models.Rocket
	atm    atmos.Model
	logger log.Logger

	logEvery   int
	samples    int
	maxEngines int
}

// NewPublisher builds a publisher with its own atmosphere instance; atm
// must not be the model's (the gauges query it between the model's own
// lookups). logEvery controls how often a sample is also logged.
func NewPublisher(r *models.Rocket, atm atmos.Model, logger log.Logger, logEvery int) *Publisher {
	if logEvery <= 0 {
		logEvery = 100
	}
	return &Publisher{
		rocket:     r,
		atm:        atm,
		logger:     logger,
		logEvery:   logEvery,
		maxEngines: r.NumEngines,
	}
}

func (p *Publisher) OnStep(s float64, q ode.State) {
	z := q[models.RocketZ]
	vx := q[models.RocketVx]
	vz := q[models.RocketVz]
	mass := q[models.RocketMass]

	pressure, rho := p.atm.At(z)
	speed := math.Sqrt(vx*vx + vz*vz)
	drag := 0.5 * p.rocket.Cd * rho * speed * speed * p.rocket.FrontalArea()
	thrust := p.rocket.Thrust(pressure)

	altitudeGauge.Set(z)
	velocityGauge.Set(vz)
	speedGauge.Set(speed)
	massGauge.Set(mass)
	dragGauge.Set(drag)
	airDensityGauge.Set(rho)
	thrustGauge.Set(thrust)

	perEngine := 0.0
	if p.rocket.NumEngines > 0 {
		perEngine = thrust / float64(p.rocket.NumEngines)
	}
	for i := 1; i <= p.maxEngines; i++ {
		v := perEngine
		if i > p.rocket.NumEngines {
			v = 0 // shut down at burnout
		}
		engineThrustGauge.WithLabelValues(strconv.Itoa(i)).Set(v)
	}

	p.samples++
	if p.samples%p.logEvery == 1 {
		p.logger.Log("level", "info", "subsys", "telemetry",
			"t", s, "alt(m)", z, "vz(m/s)", vz, "mass(kg)", mass,
			"thrust(N)", thrust, "drag(N)", drag)
	}
}

// Serve exposes /metrics on addr and blocks until the listener fails.
func Serve(addr string, logger log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	logger.Log("level", "info", "subsys", "telemetry", "listening", addr)
	return http.Serve(ln, mux)
}
