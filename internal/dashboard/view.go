package dashboard

import (
	"github.com/meetocure/patient-dashboard/internal/models"
	"github.com/meetocure/patient-dashboard/internal/remote"
)

// SectionStatus selects what a list section renders. Exactly one applies.
type SectionStatus string

const (
	SectionLoading SectionStatus = "loading"
	SectionError   SectionStatus = "error"
	SectionEmpty   SectionStatus = "empty"
	SectionCards   SectionStatus = "cards"
)

const (
	Brand             = "Meetocure"
	LogoURL           = "/assets/logo.png"
	LocationURL       = "/location"
	SearchPlaceholder = "Search for doctors or specialties..."
)

type Header struct {
	Brand       string `json:"brand"`
	Logo        string `json:"logo"`
	City        string `json:"city"`
	LocationURL string `json:"locationUrl"`
}

type CategoryTile struct {
	Label   string `json:"label"`
	IconURL string `json:"iconUrl"`
}

type CategorySection struct {
	Title     string         `json:"title"`
	SeeAllURL string         `json:"seeAllUrl"`
	Tiles     []CategoryTile `json:"tiles"`
}

type DoctorCard struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Location  string `json:"location"`
	Image     string `json:"image"`
}

type HospitalCard struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Image   string `json:"image"`
}

// ListSection is a titled grid driven by one load state.
type ListSection[C any] struct {
	Title     string        `json:"title"`
	SeeAllURL string        `json:"seeAllUrl"`
	Status    SectionStatus `json:"status"`
	// Message is the loading, error or empty-state text; blank for cards.
	Message string `json:"message,omitempty"`
	Cards   []C    `json:"cards"`
}

// View is the page model, in render order.
type View struct {
	Header            Header                    `json:"header"`
	SearchPlaceholder string                    `json:"searchPlaceholder"`
	Banners           []models.Banner           `json:"banners"`
	Categories        CategorySection           `json:"categories"`
	Doctors           ListSection[DoctorCard]   `json:"doctors"`
	Hospitals         ListSection[HospitalCard] `json:"hospitals"`
	Settled           bool                      `json:"settled"`
}

// BuildView composes the page from a snapshot.
func BuildView(s Snapshot) View {
	tiles := make([]CategoryTile, 0, len(models.Categories))
	for _, c := range models.Categories {
		tiles = append(tiles, CategoryTile{Label: c.Label, IconURL: c.IconURL()})
	}

	return View{
		Header: Header{
			Brand:       Brand,
			Logo:        LogoURL,
			City:        s.City,
			LocationURL: LocationURL,
		},
		SearchPlaceholder: SearchPlaceholder,
		Banners:           models.Banners,
		Categories: CategorySection{
			Title:     "Categories",
			SeeAllURL: "/patient/categories",
			Tiles:     tiles,
		},
		Doctors:   buildSection(s.Doctors, "Nearby Doctors", "/patient/doctors", "doctors", doctorCard),
		Hospitals: buildSection(s.Hospitals, "Nearby Hospitals", "/patient/hospitals", "hospitals", hospitalCard),
		Settled:   s.Settled,
	}
}

func buildSection[T, C any](state remote.LoadState[T], title, seeAll, noun string, card func(T) C) ListSection[C] {
	section := ListSection[C]{Title: title, SeeAllURL: seeAll, Cards: []C{}}
	switch {
	case state.IsLoading():
		section.Status = SectionLoading
		section.Message = "Loading " + noun + "..."
	case state.IsError():
		section.Status = SectionError
		section.Message = "Error: " + state.Err
	case len(state.Items) == 0:
		section.Status = SectionEmpty
		section.Message = "No " + noun + " found."
	default:
		section.Status = SectionCards
		section.Cards = make([]C, 0, len(state.Items))
		for _, item := range state.Items {
			section.Cards = append(section.Cards, card(item))
		}
	}
	return section
}

func doctorCard(d models.Doctor) DoctorCard {
	return DoctorCard{ID: d.ID, Name: d.Name, Specialty: d.Specialization, Location: d.Address, Image: d.Photo}
}

func hospitalCard(h models.Hospital) HospitalCard {
	return HospitalCard{ID: h.ID, Name: h.Name, Address: h.City, Image: h.Image}
}
