package meetocure

import (
	"net/http"
	"time"

	"github.com/meetocure/patient-dashboard/internal/models"
	"github.com/meetocure/patient-dashboard/internal/remote"
)

// Client manages communication with the Meetocure API
type Client struct {
	doctors   *remote.Collection[models.Doctor]
	hospitals *remote.Collection[models.Hospital]
}

// NewClient creates a new Meetocure API client with a default HTTP client
func NewClient(baseURL string, timeout time.Duration, placeholderImage string) *Client {
	return NewClientWithHttpClient(baseURL, &http.Client{Timeout: timeout}, placeholderImage)
}

// NewClientWithHttpClient creates a new Meetocure API client with a specific *http.Client.
// This allows passing an instrumented client.
func NewClientWithHttpClient(baseURL string, client *http.Client, placeholderImage string) *Client {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	if placeholderImage == "" {
		placeholderImage = DefaultPlaceholderImage
	}
	return &Client{
		doctors:   remote.NewCollection(baseURL, client, DoctorsEndpoint, doctorDefaults(placeholderImage)),
		hospitals: remote.NewCollection(baseURL, client, HospitalsEndpoint, hospitalDefaults(placeholderImage)),
	}
}

// Doctors is the authenticated doctor collection.
func (c *Client) Doctors() *remote.Collection[models.Doctor] { return c.doctors }

// Hospitals is the public hospital collection.
func (c *Client) Hospitals() *remote.Collection[models.Hospital] { return c.hospitals }
