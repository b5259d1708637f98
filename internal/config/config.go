// Package config holds the run options recognized by the coordinator. It
// deliberately does not parse CLI flags itself (spec: CLI argument parsing
// is out of scope) — the thin cmd/ wrapper decodes viper-backed config into
// this struct, grounded in the teacher's lib/config viper.Get* idiom.
package config

import "time"

// Strategy selects an interaction policy (spec §4.4).
type Strategy string

const (
	StrategyRandomWalk   Strategy = "random_walk"
	StrategyModelGuided  Strategy = "model_guided"
	StrategyDOMMaximizer Strategy = "dom_maximizer"
)

// Options is the subset of configuration implementers must recognize
// (spec §6).
type Options struct {
	Strategy         Strategy
	CompareAll       bool
	MaxActions       int
	Passive          bool
	Headless         bool
	Timeout          time.Duration
	BaselineDuration time.Duration
	WModel           float64
	FoxhoundPath     string
	ChromePath       string
	Proxy            string
}

// WithDefaults returns a copy of o with every zero-valued field set to the
// spec's documented default.
func (o Options) WithDefaults() Options {
	if o.Strategy == "" {
		o.Strategy = StrategyRandomWalk
	}
	if o.MaxActions == 0 {
		o.MaxActions = 50
	}
	if o.Timeout == 0 {
		o.Timeout = 30 * time.Second
	}
	if o.BaselineDuration == 0 {
		o.BaselineDuration = 3000 * time.Millisecond
	}
	if o.WModel == 0 {
		o.WModel = 25
	}
	return o
}

// PerURLWallClockCeiling is the default overall per-URL timeout (spec §5).
const PerURLWallClockCeiling = 300 * time.Second

// ExtraHeaders are the fixed headers the controller attaches to every
// context (spec §6).
var ExtraHeaders = map[string]string{
	"Referer":          "http://ias-lab.de",
	"X-IAS-Project":    "pasiphae",
}
