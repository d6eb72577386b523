// internal/models/application.go
package models

import "time"

// Application statuses.
const (
	StatusSubmitted = "submitted"
)

// Review priorities, also used as reviewer queue names.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Document is one uploaded file. Content travels base64 encoded in job
// variables and is dropped by Descriptor before logging.
type Document struct {
	FieldName   string `json:"fieldName"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
	Content     []byte `json:"content,omitempty"`
}

// Descriptor returns d without its content.
func (d Document) Descriptor() Document {
	d.Content = nil
	return d
}

// Descriptors strips content from every document.
func Descriptors(docs []Document) []Document {
	out := make([]Document, len(docs))
	for i, d := range docs {
		out[i] = d.Descriptor()
	}
	return out
}

// Applicant identity pulled from the form fields.
type Applicant struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	City      string `json:"city,omitempty"`
	State     string `json:"state,omitempty"`
}

func (a Applicant) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	}
	return a.FirstName + " " + a.LastName
}

// Submission is what the intake form posts.
type Submission struct {
	Fields    map[string]string `json:"fields"`
	Documents []Document        `json:"documents"`
	RemoteIP  string            `json:"remoteIp,omitempty"`
}

// Application is the persisted record.
type Application struct {
	ID          string            `json:"id"`
	Fingerprint string            `json:"fingerprint"`
	Applicant   Applicant         `json:"applicant"`
	Fields      map[string]string `json:"fields"`
	AutoScore   int               `json:"autoScore"`
	Bracket     string            `json:"bracket"`
	Priority    string            `json:"priority"`
	Status      string            `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
}
