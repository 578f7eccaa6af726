package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meetocure/patient-dashboard/internal/dashboard"
	"github.com/meetocure/patient-dashboard/internal/meetocure"
	"github.com/meetocure/patient-dashboard/internal/storage"
)

// RegisterRoutes sets up the page, API and websocket routes
func RegisterRoutes(router *gin.Engine, client *meetocure.Client, prefs storage.PreferenceStore, opts Options) error {
	tmpl, err := dashboard.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse page templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	handler := NewAPIHandler(client, prefs, opts)

	router.GET("/healthz", handler.HealthCheckHandler)

	pages := router.Group("/", SessionMiddleware())
	{
		pages.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/patient/dashboard")
		})
		pages.GET("/patient/dashboard", handler.DashboardPageHandler)
		pages.GET(dashboard.LocationURL, handler.LocationPageHandler)
		pages.POST(dashboard.LocationURL, handler.SetLocationHandler)
		pages.GET("/ws/dashboard", handler.LiveDashboardHandler)
	}

	v1 := router.Group("/api/v1", SessionMiddleware())
	{
		v1.GET("/dashboard", handler.DashboardJSONHandler)
		preferences := v1.Group("/preferences")
		{
			preferences.PUT("", handler.UpdatePreferencesHandler)
			preferences.DELETE("/token", handler.DeleteTokenHandler)
		}
	}
	return nil
}
