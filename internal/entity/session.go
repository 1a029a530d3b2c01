package entity

import "time"

type Flow string

const (
	FlowNone        Flow = "none"
	FlowComplaint   Flow = "complaint"
	FlowAppointment Flow = "appointment"
	FlowDocument    Flow = "document"
)

type Turn struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// FAQClarification snapshots a single unresolved match awaiting a yes/no
// reply.
type FAQClarification struct {
	Variant string `json:"variant"`
	Answer  string `json:"answer"`
}

// FAQChoice is one entry of a numbered disambiguation list.
type FAQChoice struct {
	Variant string `json:"variant"`
	Answer  string `json:"answer"`
}

// DocClarification remembers a suggested document name plus the original
// question so it can be replayed on confirmation.
type DocClarification struct {
	Name             string `json:"name"`
	OriginalQuestion string `json:"original_question"`
}

type Session struct {
	ID               string            `json:"id"`
	History          []Turn            `json:"history"`
	ActiveFlow       Flow              `json:"active_flow"`
	PendingField     string            `json:"pending_field,omitempty"`
	FallbackCount    int               `json:"fallback_count"`
	LastSentiment    string            `json:"last_sentiment,omitempty"`
	FAQClarification *FAQClarification `json:"faq_clarification,omitempty"`
	FAQChoices       []FAQChoice       `json:"faq_choices,omitempty"`
	DocClarification *DocClarification `json:"doc_clarification,omitempty"`
	PendingDocList   []string          `json:"pending_doc_list,omitempty"`
	PendingDocType   string            `json:"pending_doc_type,omitempty"`
	SelectedDocument string            `json:"selected_document,omitempty"`
	ComplaintDraft   *ComplaintDraft   `json:"complaint_draft,omitempty"`
	AppointmentDraft *AppointmentDraft `json:"appointment_draft,omitempty"`
	FeedbackPending  string            `json:"feedback_pending,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	LastActivity     time.Time         `json:"last_activity"`
}

const HistoryBound = 10

// AppendTurn pushes a turn and trims history to the last HistoryBound turns.
func (s *Session) AppendTurn(speaker, text string) {
	s.History = append(s.History, Turn{
		Speaker:   speaker,
		Text:      text,
		Timestamp: time.Now(),
	})
	if len(s.History) > HistoryBound {
		s.History = s.History[len(s.History)-HistoryBound:]
	}
}

// ClearSubFlows drops every pending clarification, menu and slot pointer so
// that at most one sub-flow is ever active.
func (s *Session) ClearSubFlows() {
	s.PendingField = ""
	s.FAQClarification = nil
	s.FAQChoices = nil
	s.DocClarification = nil
	s.PendingDocList = nil
	s.PendingDocType = ""
}

// ArchivedSession is the durable row a swept session is flattened into.
type ArchivedSession struct {
	SessionID  string    `db:"session_id"`
	History    string    `db:"historial"`
	StartedAt  time.Time `db:"iniciada_en"`
	ArchivedAt time.Time `db:"archivada_en"`
}
