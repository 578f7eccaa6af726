package meetocure

import (
	"github.com/meetocure/patient-dashboard/internal/models"
	"github.com/meetocure/patient-dashboard/internal/remote"
)

// DefaultPlaceholderImage is shown for records without a photo or image.
const DefaultPlaceholderImage = "/assets/doctor2.png"

// Upstream endpoints. Doctors need a bearer token, hospitals are public.
var (
	DoctorsEndpoint   = remote.Endpoint{Name: "doctors", Path: "/api/doctor", RequireAuth: true}
	HospitalsEndpoint = remote.Endpoint{Name: "hospitals", Path: "/api/hospitals"}
)

func doctorDefaults(placeholder string) func(models.Doctor) models.Doctor {
	return func(d models.Doctor) models.Doctor {
		if d.Specialization == "" {
			d.Specialization = models.DefaultSpecialization
		}
		if d.Address == "" {
			d.Address = models.DefaultAddress
		}
		if d.Photo == "" {
			d.Photo = placeholder
		}
		return d
	}
}

func hospitalDefaults(placeholder string) func(models.Hospital) models.Hospital {
	return func(h models.Hospital) models.Hospital {
		if h.City == "" {
			h.City = models.DefaultAddress
		}
		if h.Image == "" {
			h.Image = placeholder
		}
		return h
	}
}
