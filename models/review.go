package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

type SectionStatus string

const (
	SectionApproved     SectionStatus = "approved"
	SectionNeedsChanges SectionStatus = "needs_changes"
	SectionNotReviewed  SectionStatus = "not_reviewed"
)

// SectionFeedback is an admin's verdict on one section of a listing.
type SectionFeedback struct {
	Status   SectionStatus `json:"status"`
	Comments string        `json:"comments"`
}

// ReviewFeedback holds the admin review verdicts for the fixed set of
// listing sections. The set of sections is closed; adding a section means
// adding a field here.
type ReviewFeedback struct {
	Details  SectionFeedback `json:"details"`
	Pricing  SectionFeedback `json:"pricing"`
	Photos   SectionFeedback `json:"photos"`
	Schedule SectionFeedback `json:"schedule"`
}

// Value implements the driver.Valuer interface
func (r ReviewFeedback) Value() (driver.Value, error) {
	jsonData, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil // Return as string for JSONB type
}

// Scan implements the sql.Scanner interface
func (r *ReviewFeedback) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("failed to unmarshal ReviewFeedback: unsupported type %T", value)
	}

	return json.Unmarshal(data, r)
}

// Sections lists each section's feedback keyed by name, for display.
func (r ReviewFeedback) Sections() map[string]SectionFeedback {
	return map[string]SectionFeedback{
		"details":  r.Details,
		"pricing":  r.Pricing,
		"photos":   r.Photos,
		"schedule": r.Schedule,
	}
}

// AllApproved reports whether every section passed review.
func (r ReviewFeedback) AllApproved() bool {
	for _, s := range r.Sections() {
		if s.Status != SectionApproved {
			return false
		}
	}
	return true
}
