package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meetocure/patient-dashboard/internal/dashboard"
	"github.com/meetocure/patient-dashboard/internal/meetocure"
	"github.com/meetocure/patient-dashboard/internal/models"
	"github.com/meetocure/patient-dashboard/internal/storage"
)

// Options tune page behaviour.
type Options struct {
	DefaultCity string
	// RenderWait bounds how long the HTML page waits for both lists before
	// rendering them in whatever state they are in.
	RenderWait time.Duration
}

// APIHandler holds dependencies for API handlers
type APIHandler struct {
	client *meetocure.Client
	prefs  storage.PreferenceStore
	opts   Options
}

// NewAPIHandler creates a new handler instance
func NewAPIHandler(client *meetocure.Client, prefs storage.PreferenceStore, opts Options) *APIHandler {
	if opts.DefaultCity == "" {
		opts.DefaultCity = "Vijayawada"
	}
	return &APIHandler{
		client: client,
		prefs:  prefs,
		opts:   opts,
	}
}

func (h *APIHandler) session(c *gin.Context) *storage.Session {
	return storage.ForSession(h.prefs, sessionID(c))
}

func (h *APIHandler) newDashboard(c *gin.Context) *dashboard.Dashboard {
	return dashboard.New(h.session(c), h.client.Doctors(), h.client.Hospitals(), h.opts.DefaultCity)
}

// DashboardPageHandler renders the dashboard HTML. Lists still loading after
// RenderWait are rendered with their loading message.
func (h *APIHandler) DashboardPageHandler(c *gin.Context) {
	ctx := c.Request.Context()
	d := h.newDashboard(c)
	d.Mount(ctx)
	defer d.Unmount()

	waitCtx, cancel := context.WithTimeout(ctx, h.opts.RenderWait)
	defer cancel()
	if err := d.Wait(waitCtx); err != nil {
		slog.DebugContext(ctx, "Rendering dashboard before both lists settled", "error", err)
	}

	c.HTML(http.StatusOK, "dashboard.html", dashboard.BuildView(d.Snapshot()))
}

// DashboardJSONHandler returns the dashboard view once both lists have settled.
func (h *APIHandler) DashboardJSONHandler(c *gin.Context) {
	ctx := c.Request.Context()
	d := h.newDashboard(c)
	d.Mount(ctx)
	defer d.Unmount()

	if err := d.Wait(ctx); err != nil {
		slog.ErrorContext(ctx, "Dashboard request ended before lists settled", "error", err)
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Dashboard data not ready"})
		return
	}
	c.JSON(http.StatusOK, dashboard.BuildView(d.Snapshot()))
}

// LocationPageHandler renders the location-selection view.
func (h *APIHandler) LocationPageHandler(c *gin.Context) {
	ctx := c.Request.Context()
	current := h.opts.DefaultCity
	session := h.session(c)
	city, found, err := session.Lookup(ctx, storage.KeySelectedCity)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to read stored city", "sessionID", session.ID(), "error", err)
	} else if found {
		current = city
	}
	c.HTML(http.StatusOK, "location.html", dashboard.LocationPage{Current: current, Cities: models.Cities})
}

// SetLocationHandler stores the submitted city and navigates back to the dashboard.
func (h *APIHandler) SetLocationHandler(c *gin.Context) {
	ctx := c.Request.Context()
	city := strings.TrimSpace(c.PostForm("city"))
	if city == "" {
		c.Redirect(http.StatusSeeOther, dashboard.LocationURL)
		return
	}
	session := h.session(c)
	if err := session.Set(ctx, storage.KeySelectedCity, city); err != nil {
		slog.ErrorContext(ctx, "Failed to store city", "sessionID", session.ID(), "city", city, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save location"})
		return
	}
	c.Redirect(http.StatusSeeOther, "/patient/dashboard")
}

type preferencesRequest struct {
	SelectedCity *string `json:"selectedCity"`
	Token        *string `json:"token"`
}

// UpdatePreferencesHandler writes the provided preference keys for the session.
func (h *APIHandler) UpdatePreferencesHandler(c *gin.Context) {
	ctx := c.Request.Context()
	var req preferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid preferences body"})
		return
	}
	if req.SelectedCity == nil && req.Token == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No preferences provided"})
		return
	}

	session := h.session(c)
	updates := map[string]*string{storage.KeySelectedCity: req.SelectedCity, storage.KeyToken: req.Token}
	for key, value := range updates {
		if value == nil {
			continue
		}
		if err := session.Set(ctx, key, *value); err != nil {
			slog.ErrorContext(ctx, "Failed to store preference", "sessionID", session.ID(), "key", key, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save preferences"})
			return
		}
	}
	c.Status(http.StatusNoContent)
}

// DeleteTokenHandler removes the stored auth token.
func (h *APIHandler) DeleteTokenHandler(c *gin.Context) {
	ctx := c.Request.Context()
	session := h.session(c)
	if err := session.Delete(ctx, storage.KeyToken); err != nil {
		slog.ErrorContext(ctx, "Failed to delete token", "sessionID", session.ID(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete token"})
		return
	}
	c.Status(http.StatusNoContent)
}

// HealthCheckHandler handles health check requests
func (h *APIHandler) HealthCheckHandler(c *gin.Context) {
	if err := h.prefs.Ping(c.Request.Context()); err != nil {
		slog.ErrorContext(c.Request.Context(), "Preference store ping failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "preference store unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
