package entities

// ClaimID identifies an evidence-backed statement shown to users.
type ClaimID string

const (
	ClaimNerveCompression  ClaimID = "diagnosis_nerve_compression"
	ClaimAirwayObstruction ClaimID = "diagnosis_airway_obstruction"
	ClaimCervicalTension   ClaimID = "diagnosis_cervical_tension"
	ClaimLumbarExtension   ClaimID = "diagnosis_lumbar_extension"
	ClaimPositionFallback  ClaimID = "diagnosis_position_fallback"
)

// ProductClaimID returns the claim that backs the given product's pitch.
func ProductClaimID(id ProductID) ClaimID {
	return ClaimID(string(id) + "_medical_truth")
}

// Claim is a headline with a body and the evidence it rests on.
type Claim struct {
	ID          ClaimID  `yaml:"-"`
	Headline    string   `yaml:"headline"`
	Body        string   `yaml:"body"`
	EvidenceIDs []string `yaml:"evidence"`
	Disclaimer  string   `yaml:"disclaimer,omitempty"`
}

// EvidenceSource is a citation referenced by claims.
type EvidenceSource struct {
	ID            string `yaml:"-"`
	ShortCitation string `yaml:"short_citation"`
	Publication   string `yaml:"publication"`
	Year          int    `yaml:"year,omitempty"`
	URL           string `yaml:"url,omitempty"`
}
