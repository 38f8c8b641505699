package model

// World is the world level a message is rooted in, lowest to highest.
// It is decorative classification used by batch reporting; it never
// gates delivery.
type World int

const (
	WorldAsija  World = iota // action, the most literal level
	WorldJezira              // formation
	WorldBerija              // creation
	WorldAzilut              // emanation, the highest level
)

func (w World) String() string {
	switch w {
	case WorldAsija:
		return "asija"
	case WorldJezira:
		return "jezira"
	case WorldBerija:
		return "berija"
	case WorldAzilut:
		return "azilut"
	default:
		return "unknown"
	}
}

// Verdict is the immutable output of the anchoring check for one message.
type Verdict struct {
	Anchored       bool     `yaml:"anchored" json:"anchored"`
	Score          float64  `yaml:"score" json:"score"` // always in [0,1]
	MissingAspects []string `yaml:"missing_aspects,omitempty" json:"missing_aspects,omitempty"`
	Remediation    []string `yaml:"remediation,omitempty" json:"remediation,omitempty"`
	World          World    `yaml:"world" json:"world"`
}

// Register is one of the four fixed interpretive registers a message can
// be classified into. The set is closed; it is never extended at runtime.
type Register int

const (
	RegisterLiteral   Register = iota // plain surface reading
	RegisterAllusive                  // hinted meaning
	RegisterHomiletic                 // expounded meaning
	RegisterEsoteric                  // hidden meaning
)

func (r Register) String() string {
	switch r {
	case RegisterLiteral:
		return "literal"
	case RegisterAllusive:
		return "allusive"
	case RegisterHomiletic:
		return "homiletic"
	case RegisterEsoteric:
		return "esoteric"
	default:
		return "unknown"
	}
}

// Interpretation is one ranked reading of a text at a single register.
// IsSentinel marks the "nothing found at this register" result.
type Interpretation struct {
	Register   Register `json:"register"`
	Label      string   `json:"label"`
	IsSentinel bool     `json:"is_sentinel"`
}
