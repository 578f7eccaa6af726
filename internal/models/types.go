// File: internal/models/types.go
package models

// Fallback display values for optional record fields.
const (
	DefaultSpecialization = "General"
	DefaultAddress        = "Unknown"
)

// Doctor is a doctor record as returned by the upstream /api/doctor endpoint.
type Doctor struct {
	ID             string `json:"_id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization,omitempty"`
	Address        string `json:"address,omitempty"`
	Photo          string `json:"photo,omitempty"`
}

// Hospital is a hospital record as returned by the upstream /api/hospitals endpoint.
type Hospital struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	City  string `json:"city,omitempty"`
	Image string `json:"image,omitempty"`
}

// Category is a static tile on the dashboard.
type Category struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// IconURL is the asset path of the category icon.
func (c Category) IconURL() string {
	return "/assets/categories/" + c.Icon
}

// Categories is the fixed category grid, in display order.
var Categories = []Category{
	{Label: "Dentistry", Icon: "dentist.png"},
	{Label: "Cardiology", Icon: "cardiology.png"},
	{Label: "Pulmonary", Icon: "lungs.png"},
	{Label: "General", Icon: "general.png"},
	{Label: "Neurology", Icon: "brain.png"},
	{Label: "Gastroen", Icon: "stomach.png"},
	{Label: "Laboratory", Icon: "lab.png"},
	{Label: "Vaccination", Icon: "vaccine.png"},
}

// Banner is one slide of the promotional carousel.
type Banner struct {
	Image string `json:"image"`
	Alt   string `json:"alt"`
}

// Banners is the static carousel content.
var Banners = []Banner{
	{Image: "/assets/banners/consult.png", Alt: "Consult top doctors online"},
	{Image: "/assets/banners/checkup.png", Alt: "Full body checkups near you"},
	{Image: "/assets/banners/vaccines.png", Alt: "Book vaccinations for your family"},
}

// Cities suggested on the location-selection view.
var Cities = []string{
	"Vijayawada",
	"Hyderabad",
	"Guntur",
	"Visakhapatnam",
	"Chennai",
	"Bengaluru",
}
