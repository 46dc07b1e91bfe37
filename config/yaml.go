package config

import "gopkg.in/yaml.v3"

// yamlDoc mirrors Config's fields for serialization; Config itself
// keeps its fields unexported so every mutation goes through an
// Option, but a run's configuration still needs to round-trip to disk
// for reproducibility.
type yamlDoc struct {
	UseFSMChecker           bool  `yaml:"use_fsm_checker"`
	NoRefinement            bool  `yaml:"no_refinement"`
	NoCoarsening            bool  `yaml:"no_coarsening"`
	ExtraChecks             bool  `yaml:"extra_checks"`
	RandomSeed              int64 `yaml:"random_seed"`
	IncomingTransitionSplit bool  `yaml:"incoming_transition_split"`
	KTailsK                 int   `yaml:"k_tails_k"`
	WarshallClosure         bool  `yaml:"warshall_closure"`
}

// MarshalYAML renders c as YAML bytes.
func (c *Config) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(yamlDoc{
		UseFSMChecker:           c.useFSMChecker,
		NoRefinement:            c.noRefinement,
		NoCoarsening:            c.noCoarsening,
		ExtraChecks:             c.extraChecks,
		RandomSeed:              c.randomSeed,
		IncomingTransitionSplit: c.incomingTransitionSplit,
		KTailsK:                 c.kTailsK,
		WarshallClosure:         c.warshallClosure,
	})
}

// LoadYAML populates a fresh Config from YAML bytes, applying the same
// defaults New() would before the document's fields overwrite them.
func LoadYAML(data []byte) (*Config, error) {
	doc := yamlDoc{}
	d := defaults()
	doc.UseFSMChecker = d.useFSMChecker
	doc.KTailsK = d.kTailsK

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return New(
		WithFSMChecker(doc.UseFSMChecker),
		WithNoRefinement(doc.NoRefinement),
		WithNoCoarsening(doc.NoCoarsening),
		WithExtraChecks(doc.ExtraChecks),
		WithRandomSeed(doc.RandomSeed),
		WithIncomingTransitionSplit(doc.IncomingTransitionSplit),
		WithKTailsK(doc.KTailsK),
		WithWarshallClosure(doc.WarshallClosure),
	)
}
