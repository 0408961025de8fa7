package api

import (
	"net/http"
	"time"

	"github.com/Sanmen87/taini-santa/internal/config"
	"github.com/Sanmen87/taini-santa/internal/directory"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

// Service exposes the operational HTTP surface: a liveness probe and a
// small stats endpoint for the game administrators.
type Service struct {
	config  *config.Config
	dir     *directory.Directory
	started time.Time
}

func NewService(cfg *config.Config, dir *directory.Directory) *Service {
	return &Service{
		config:  cfg,
		dir:     dir,
		started: time.Now(),
	}
}

func (s *Service) Register(e *echo.Echo) {
	e.GET("/healthz", s.HandleHealth())
	e.GET("/stats", s.HandleStats())
}

func (s *Service) HandleHealth() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"status": "ok",
			"uptime": time.Since(s.started).Round(time.Second).String(),
		})
	}
}

// HandleStats reads the participants table and reports aggregate counters.
// The numbers come through the directory cache, so a burst of polling does
// not hammer the spreadsheet API.
func (s *Service) HandleStats() echo.HandlerFunc {
	return func(c echo.Context) error {
		entries, err := s.dir.ListAll(c.Request().Context())
		if err != nil {
			logrus.Errorf("failed to load participants for stats: %v", err)
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "participants table unavailable"})
		}

		total, active, validated, assigned, notified := 0, 0, 0, 0, 0
		for _, e := range entries {
			p := e.Participant
			total++
			if p.Active {
				active++
			}
			if p.Validated {
				validated++
			}
			if p.HasRecipient() {
				assigned++
			}
			if p.Notified {
				notified++
			}
		}

		return c.JSON(http.StatusOK, echo.Map{
			"total":     total,
			"active":    active,
			"validated": validated,
			"assigned":  assigned,
			"notified":  notified,
		})
	}
}
