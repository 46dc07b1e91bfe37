package config

import "fmt"

// Config holds every tunable knob for a synoptic run. It is never
// constructed directly; use New with Options.
type Config struct {
	useFSMChecker           bool
	noRefinement            bool
	noCoarsening            bool
	extraChecks             bool
	randomSeed              int64
	incomingTransitionSplit bool
	kTailsK                 int
	warshallClosure         bool

	err error
}

// Option configures a Config via functional arguments. An Option given
// an invalid value records that as err, surfaced by New.
type Option func(*Config)

// defaults mirrors the teacher's DefaultOptions: every knob starts at
// its safe, conservative value.
func defaults() Config {
	return Config{
		useFSMChecker:           true,
		noRefinement:            false,
		noCoarsening:            false,
		extraChecks:             false,
		randomSeed:              0,
		incomingTransitionSplit: false,
		kTailsK:                 1,
		warshallClosure:         false,
	}
}

// New builds a Config from defaults, then applies opts left to right.
// If any Option recorded a violation, New returns that error instead of
// a Config.
func New(opts ...Option) (*Config, error) {
	c := defaults()
	for _, opt := range opts {
		opt(&c)
	}
	if c.err != nil {
		return nil, c.err
	}
	return &c, nil
}

// UseFSMChecker reports whether the (in-scope) FSM checker should run,
// as opposed to the (out-of-scope) external LTL checker.
func (c *Config) UseFSMChecker() bool { return c.useFSMChecker }

// NoRefinement reports whether bisim.Refine should be skipped.
func (c *Config) NoRefinement() bool { return c.noRefinement }

// NoCoarsening reports whether bisim.Coarsen should be skipped.
func (c *Config) NoCoarsening() bool { return c.noCoarsening }

// ExtraChecks reports the extra-checks setting. No package reads
// it: partition.Graph.Apply runs CheckSanity after every operation
// whether or not it is set.
func (c *Config) ExtraChecks() bool { return c.extraChecks }

// RandomSeed returns the configured RNG seed (0 means "use the
// package-default seed", per RNG's policy).
func (c *Config) RandomSeed() int64 { return c.randomSeed }

// IncomingTransitionSplit reports whether candidate splits should also
// be generated from incoming transitions, not just outgoing ones.
func (c *Config) IncomingTransitionSplit() bool { return c.incomingTransitionSplit }

// KTailsK returns the k-Tails window used by bisim's equivalence test.
func (c *Config) KTailsK() int { return c.kTailsK }

// WarshallClosure reports whether transitive-closure computation
// should use the dense Warshall matrix instead of per-source DFS.
func (c *Config) WarshallClosure() bool { return c.warshallClosure }

// WithFSMChecker selects the FSM checker (true) or requests the
// external LTL checker (false, rejected by synoptic.Run with
// ErrExternalCheckerUnsupported).
func WithFSMChecker(use bool) Option {
	return func(c *Config) { c.useFSMChecker = use }
}

// WithNoRefinement disables the bisimulation refinement pass.
func WithNoRefinement(v bool) Option {
	return func(c *Config) { c.noRefinement = v }
}

// WithNoCoarsening disables the bisimulation coarsening pass.
func WithNoCoarsening(v bool) Option {
	return func(c *Config) { c.noCoarsening = v }
}

// WithExtraChecks records the extra-checks setting (see
// ExtraChecks; Apply's CheckSanity pass runs regardless).
func WithExtraChecks(v bool) Option {
	return func(c *Config) { c.extraChecks = v }
}

// WithRandomSeed sets the RNG seed bisim derives its shuffle streams
// from. 0 means "use the package-default seed" (RNG's policy).
func WithRandomSeed(seed int64) Option {
	return func(c *Config) { c.randomSeed = seed }
}

// WithIncomingTransitionSplit enables generating candidate splits from
// incoming transitions in addition to outgoing ones.
func WithIncomingTransitionSplit(v bool) Option {
	return func(c *Config) { c.incomingTransitionSplit = v }
}

// WithKTailsK sets the k-Tails window width. k must be >= 0; k == 0
// reduces equivalence to "same event type", with no successor
// comparison at all.
func WithKTailsK(k int) Option {
	return func(c *Config) {
		if k < 0 {
			c.err = fmt.Errorf("%w: k-Tails window must be >= 0, got %d", ErrOptionViolation, k)
			return
		}
		c.kTailsK = k
	}
}

// WithWarshallClosure selects the dense Warshall transitive-closure
// algorithm over the default per-source DFS.
func WithWarshallClosure(v bool) Option {
	return func(c *Config) { c.warshallClosure = v }
}
