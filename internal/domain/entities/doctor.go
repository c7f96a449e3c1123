package entities

import (
	"sort"
	"strings"
	"time"
	"unicode"
)

// Defaults applied when an application is promoted into the live registry
// without explicit values.
const (
	DefaultTiming = "10:00 AM - 07:00 PM"
	DefaultFees   = "₹500"
)

// Doctor represents a live, approved practitioner in the registry.
type Doctor struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Specialization string    `json:"specialization" db:"specialization"`
	Experience     string    `json:"experience" db:"experience"`
	Clinic         string    `json:"clinic" db:"clinic"`
	Location       string    `json:"location" db:"location"`
	Region         string    `json:"region" db:"region"`
	Phone          string    `json:"phone" db:"phone"`
	Timing         string    `json:"timing" db:"timing"`
	Fees           string    `json:"fees" db:"fees"`
	Rating         string    `json:"rating,omitempty" db:"rating"`
	Image          string    `json:"image,omitempty" db:"image"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// ExperienceYears returns the sortable year count encoded in the
// experience string.
func (d *Doctor) ExperienceYears() int {
	return ParseExperienceYears(d.Experience)
}

// ParseExperienceYears extracts the leading run of decimal digits from an
// experience string such as "12 Years". Strings with no leading digits
// parse to 0.
func ParseExperienceYears(s string) int {
	s = strings.TrimSpace(s)
	years := 0
	seen := false
	for _, r := range s {
		if !unicode.IsDigit(r) {
			break
		}
		seen = true
		years = years*10 + int(r-'0')
	}
	if !seen {
		return 0
	}
	return years
}

// SortByExperience orders doctors by descending parsed experience years.
// The sort is stable: ties keep their existing relative order.
func SortByExperience(doctors []*Doctor) {
	sort.SliceStable(doctors, func(i, j int) bool {
		return doctors[i].ExperienceYears() > doctors[j].ExperienceYears()
	})
}
