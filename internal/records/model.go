package records

import "time"

// Record is one completed analysis as written to a persistence backend.
// Think and Response hold the raw split segments, not display-trimmed text.
type Record struct {
	ID          string    `json:"id" dynamodbav:"id"`
	ResumeParse string    `json:"resume_parse" dynamodbav:"resume_parse"`
	Think       string    `json:"think" dynamodbav:"think"`
	Response    string    `json:"response" dynamodbav:"response"`
	CreatedAt   time.Time `json:"created_at" dynamodbav:"created_at"`
}
