package nlp

const (
	CategoryGreeting  = "saludo"
	CategoryFarewell  = "despedida"
	CategoryThanks    = "agradecimiento"
	CategoryMood      = "estado_animo"
	CategoryIdentity  = "identidad"
	CategoryMunicipal = "municipal"
	CategoryGeneral   = "general"
)

const (
	ScoreExact      = 100
	ThresholdHigh   = 90
	ConfirmBandLow  = 85
	MaxChoices      = 3
	MinSharedTokens = 2
	MinJaccard      = 0.3
	MinTokenLength  = 3
)

type MatchKind string

const (
	MatchAnswered MatchKind = "answered"
	MatchClarify  MatchKind = "clarify"
	MatchChoose   MatchKind = "choose"
	MatchNone     MatchKind = "none"
)

type Entry struct {
	Variants []string `json:"preguntas"`
	Answer   string   `json:"respuesta"`
	Category string   `json:"categoria"`
}

type Candidate struct {
	Variant  string `json:"variant"`
	Answer   string `json:"answer"`
	Category string `json:"category"`
	Score    int    `json:"score"`
}

type MatchResult struct {
	Kind        MatchKind   `json:"kind"`
	Answer      string      `json:"answer,omitempty"`
	Category    string      `json:"category,omitempty"`
	Candidate   *Candidate  `json:"candidate,omitempty"`
	Choices     []Candidate `json:"choices,omitempty"`
	BestScore   int         `json:"best_score"`
	BestVariant string      `json:"best_variant,omitempty"`
}

type IMatcher interface {
	Match(question string) *MatchResult
}
