package models

import "time"

// School is a read-only school record from GET /schools/.
type School struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Town      string     `json:"town"`
	Province  string     `json:"province"`
	IsActive  bool       `json:"is_active"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

func (s *School) RefID() int64 { return s.ID }

// Location joins town and province for display, skipping blanks.
func (s School) Location() string {
	switch {
	case s.Town != "" && s.Province != "":
		return s.Town + ", " + s.Province
	case s.Town != "":
		return s.Town
	default:
		return s.Province
	}
}
