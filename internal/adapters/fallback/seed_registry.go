package fallback

import (
	"strings"

	"github.com/aarogyaai/backend/internal/domain/entities"
)

// SeedRegistry serves the static doctor list that keeps search and browse
// usable when the live registry is empty or unreachable.
type SeedRegistry struct {
	doctors []*entities.Doctor
}

// NewSeedRegistry creates a registry backed by the built-in seed list
func NewSeedRegistry() *SeedRegistry {
	return &SeedRegistry{doctors: seedDoctors()}
}

// All returns a copy of the full seed list
func (r *SeedRegistry) All() []*entities.Doctor {
	out := make([]*entities.Doctor, len(r.doctors))
	copy(out, r.doctors)
	return out
}

// BySpecialization returns seed doctors whose specialization contains the
// given label, case-insensitively
func (r *SeedRegistry) BySpecialization(specialization string) []*entities.Doctor {
	needle := strings.ToLower(strings.TrimSpace(specialization))
	matched := []*entities.Doctor{}
	for _, d := range r.doctors {
		if strings.Contains(strings.ToLower(d.Specialization), needle) {
			matched = append(matched, d)
		}
	}
	return matched
}

// Filter applies the browse predicates to the seed list. Empty fields and
// the "All" specialization match everything.
func (r *SeedRegistry) Filter(query, region, specialization string) []*entities.Doctor {
	q := strings.ToLower(strings.TrimSpace(query))
	reg := strings.ToLower(strings.TrimSpace(region))

	matched := []*entities.Doctor{}
	for _, d := range r.doctors {
		if q != "" &&
			!strings.Contains(strings.ToLower(d.Name), q) &&
			!strings.Contains(strings.ToLower(d.Specialization), q) {
			continue
		}
		if reg != "" &&
			!strings.Contains(strings.ToLower(d.Region), reg) &&
			!strings.Contains(strings.ToLower(d.Location), reg) {
			continue
		}
		if specialization != "" && specialization != "All" &&
			!strings.EqualFold(d.Specialization, specialization) {
			continue
		}
		matched = append(matched, d)
	}
	return matched
}

// seedDoctors is the built-in directory snapshot. IDs carry a seed- prefix
// so they never collide with live registry UUIDs.
func seedDoctors() []*entities.Doctor {
	return []*entities.Doctor{
		{
			ID:             "seed-1",
			Name:           "Dr. Anil Deshmukh",
			Specialization: "General Physician",
			Experience:     "15 Years",
			Clinic:         "Deshmukh Clinic",
			Location:       "Palghar West",
			Region:         "Palghar",
			Phone:          "+91 98200 11001",
			Timing:         entities.DefaultTiming,
			Fees:           entities.DefaultFees,
			Rating:         "4.6",
		},
		{
			ID:             "seed-2",
			Name:           "Dr. Sunita Patil",
			Specialization: "General Physician",
			Experience:     "12 Years",
			Clinic:         "Patil Health Centre",
			Location:       "Boisar",
			Region:         "Palghar",
			Phone:          "+91 98200 11002",
			Timing:         "09:30 AM - 06:00 PM",
			Fees:           "₹400",
			Rating:         "4.4",
		},
		{
			ID:             "seed-3",
			Name:           "Dr. Rajesh Iyer",
			Specialization: "Cardiologist",
			Experience:     "18 Years",
			Clinic:         "Iyer Heart Care",
			Location:       "Virar",
			Region:         "Palghar",
			Phone:          "+91 98200 11003",
			Timing:         "11:00 AM - 08:00 PM",
			Fees:           "₹900",
			Rating:         "4.8",
		},
		{
			ID:             "seed-4",
			Name:           "Dr. Meera Shah",
			Specialization: "Dermatologist",
			Experience:     "9 Years",
			Clinic:         "Shah Skin Clinic",
			Location:       "Vasai",
			Region:         "Palghar",
			Phone:          "+91 98200 11004",
			Timing:         entities.DefaultTiming,
			Fees:           "₹600",
			Rating:         "4.5",
		},
		{
			ID:             "seed-5",
			Name:           "Dr. Prakash Joshi",
			Specialization: "Pediatrician",
			Experience:     "14 Years",
			Clinic:         "Bal Seva Children's Clinic",
			Location:       "Palghar East",
			Region:         "Palghar",
			Phone:          "+91 98200 11005",
			Timing:         "10:00 AM - 02:00 PM",
			Fees:           "₹500",
			Rating:         "4.7",
		},
		{
			ID:             "seed-6",
			Name:           "Dr. Kavita Nair",
			Specialization: "Gynecologist",
			Experience:     "16 Years",
			Clinic:         "Nair Maternity Home",
			Location:       "Boisar",
			Region:         "Palghar",
			Phone:          "+91 98200 11006",
			Timing:         "10:30 AM - 07:30 PM",
			Fees:           "₹700",
			Rating:         "4.6",
		},
		{
			ID:             "seed-7",
			Name:           "Dr. Suresh Gupta",
			Specialization: "Orthopedic",
			Experience:     "20 Years",
			Clinic:         "Gupta Bone & Joint Centre",
			Location:       "Virar",
			Region:         "Palghar",
			Phone:          "+91 98200 11007",
			Timing:         entities.DefaultTiming,
			Fees:           "₹800",
			Rating:         "4.7",
		},
		{
			ID:             "seed-8",
			Name:           "Dr. Anjali Kulkarni",
			Specialization: "ENT Specialist",
			Experience:     "11 Years",
			Clinic:         "Kulkarni ENT Clinic",
			Location:       "Palghar West",
			Region:         "Palghar",
			Phone:          "+91 98200 11008",
			Timing:         "10:00 AM - 05:00 PM",
			Fees:           "₹550",
			Rating:         "4.3",
		},
		{
			ID:             "seed-9",
			Name:           "Dr. Vikram Singh",
			Specialization: "Neurologist",
			Experience:     "13 Years",
			Clinic:         "Singh Neuro Care",
			Location:       "Vasai",
			Region:         "Palghar",
			Phone:          "+91 98200 11009",
			Timing:         "12:00 PM - 08:00 PM",
			Fees:           "₹1000",
			Rating:         "4.8",
		},
		{
			ID:             "seed-10",
			Name:           "Dr. Neha Sharma",
			Specialization: "Psychiatrist",
			Experience:     "8 Years",
			Clinic:         "Manas Wellness Centre",
			Location:       "Palghar East",
			Region:         "Palghar",
			Phone:          "+91 98200 11010",
			Timing:         "11:00 AM - 06:00 PM",
			Fees:           "₹750",
			Rating:         "4.5",
		},
	}
}
