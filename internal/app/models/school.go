package models

import "time"

// School is a catalog entry. One school is the home institution; all others
// are candidate transfer schools.
type School struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name"`
	Location      string    `json:"location" db:"location"`
	International bool      `json:"international" db:"international"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// SchoolIdentity is the match key used when resolving a school by its fields.
type SchoolIdentity struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	International bool   `json:"international"`
}

// Identity returns the fields that identify the school in the catalog.
func (s *School) Identity() SchoolIdentity {
	return SchoolIdentity{Name: s.Name, Location: s.Location, International: s.International}
}
