package config

// Expectations is the top-level structure parsed from an expectations YAML file.
type Expectations struct {
	Verify VerifyExpectations `yaml:"verify"`
}

// VerifyExpectations tunes what the verification checks require of a log.
type VerifyExpectations struct {
	ExpectedTools  []string `yaml:"expected_tools"`
	MinReadyActors int      `yaml:"min_ready_actors"`
}
