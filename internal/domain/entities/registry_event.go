package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// RegistryEventType represents the type of registry change event
type RegistryEventType string

const (
	RegistryEventTypeDoctorAdded   RegistryEventType = "doctor_added"
	RegistryEventTypeDoctorUpdated RegistryEventType = "doctor_updated"
	RegistryEventTypeDoctorRemoved RegistryEventType = "doctor_removed"
)

// RegistryEvent represents a real-time update to the live doctor registry,
// published when an admin mutates it.
type RegistryEvent struct {
	ID             string            `json:"id"`
	DoctorID       string            `json:"doctor_id"`
	EventType      RegistryEventType `json:"event_type"`
	Name           string            `json:"name,omitempty"`
	Specialization string            `json:"specialization,omitempty"`
	Region         string            `json:"region,omitempty"`
	Timestamp      time.Time         `json:"timestamp"`
}

// NewRegistryEvent creates a new registry event for a doctor change.
func NewRegistryEvent(eventType RegistryEventType, doctor *Doctor) *RegistryEvent {
	return &RegistryEvent{
		ID:             generateEventID(),
		DoctorID:       doctor.ID,
		EventType:      eventType,
		Name:           doctor.Name,
		Specialization: doctor.Specialization,
		Region:         doctor.Region,
		Timestamp:      time.Now(),
	}
}

func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
