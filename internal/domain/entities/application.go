package entities

import (
	"strings"
	"time"
)

// ApplicationStatus represents the status of a doctor application
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// DoctorApplication represents an intake submission from a practitioner who
// wants to be listed in the live registry.
type DoctorApplication struct {
	ID             string            `json:"id" db:"id"`
	FullName       string            `json:"full_name" db:"full_name"`
	RegistrationNo string            `json:"registration_no" db:"registration_no"`
	Email          string            `json:"email" db:"email"`
	Specialization string            `json:"specialization" db:"specialization"`
	Experience     string            `json:"experience" db:"experience"`
	Region         string            `json:"region" db:"region"`
	Phone          string            `json:"phone" db:"phone"`
	Timing         string            `json:"timing" db:"timing"`
	Status         ApplicationStatus `json:"status" db:"status"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
}

// ToDoctor builds the live registry entry an accepted application promotes
// into. The application's region doubles as the doctor's location, and
// timing falls back to business hours when the applicant left it blank.
func (a *DoctorApplication) ToDoctor() *Doctor {
	timing := strings.TrimSpace(a.Timing)
	if timing == "" {
		timing = DefaultTiming
	}
	return &Doctor{
		Name:           a.FullName,
		Specialization: a.Specialization,
		Experience:     a.Experience,
		Region:         a.Region,
		Location:       a.Region,
		Phone:          a.Phone,
		Timing:         timing,
		Fees:           DefaultFees,
	}
}
