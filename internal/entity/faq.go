package entity

import "time"

// UnansweredQuestion is a knowledge-base miss persisted for later curation.
type UnansweredQuestion struct {
	ID            string    `db:"id"`
	Question      string    `db:"pregunta"`
	BestScore     int       `db:"mejor_puntaje"`
	BestCandidate string    `db:"mejor_candidata"`
	SessionID     string    `db:"session_id"`
	CreatedAt     time.Time `db:"creada_en"`
}

// AnswerFeedback records whether a served answer helped the citizen.
type AnswerFeedback struct {
	ID        string    `db:"id"`
	Question  string    `db:"pregunta"`
	Helpful   bool      `db:"util"`
	SessionID string    `db:"session_id"`
	CreatedAt time.Time `db:"creada_en"`
}
