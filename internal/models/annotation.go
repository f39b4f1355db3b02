package models

import "time"

const (
	MinScore = 1
	MaxScore = 5
)

// Annotation is one user's judgment of one item. (UserID, ImageName) is unique.
type Annotation struct {
	UserID              string     `db:"user_id" json:"user_id"`
	ImageName           string     `db:"image_name" json:"image_name"`
	EvidenceRecognition int        `db:"evidence_recognition" json:"evidence_recognition"`
	ReasoningChain      int        `db:"reasoning_chain" json:"reasoning_chain"`
	TextNaturalness     int        `db:"text_naturalness" json:"text_naturalness"`
	AcceptStatus        int        `db:"accept_status" json:"accept_status"`
	AnnotatedAt         *time.Time `db:"annotated_at" json:"annotated_at,omitempty"`
}

// Accepted reports whether the annotator accepted the reasoning.
func (a *Annotation) Accepted() bool {
	return a.AcceptStatus == 1
}

// AcceptStatusFromBool maps the Yes/No answer to the stored 0/1 value.
func AcceptStatusFromBool(accept bool) int {
	if accept {
		return 1
	}
	return 0
}
