// Package api exposes the query façade over HTTP for downstream consumers.
//
// All endpoints are read-only views over the store; nothing here touches
// the browser or the write path. An empty store yields empty collections,
// never an error, so consumers can always render a "nothing found" state.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Tommie03/NTTBot/internal/calendar"
	"github.com/Tommie03/NTTBot/internal/store"
)

// calendarWindowDays bounds how far ahead the ICS feed looks.
const calendarWindowDays = 90

// Server wraps the HTTP API over a store.
type Server struct {
	app   *fiber.App
	store *store.Store
}

// New creates a server with all routes registered.
func New(st *store.Store) *Server {
	app := fiber.New(fiber.Config{
		AppName:               "nttbot",
		DisableStartupMessage: true,
	})

	s := &Server{app: app, store: st}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Get("/healthz", s.handleHealth)

	apiGroup := s.app.Group("/api")
	apiGroup.Get("/tournaments", s.handleTournaments)
	apiGroup.Get("/tournaments/upcoming", s.handleUpcoming)
	apiGroup.Get("/tournaments/search", s.handleSearch)
	apiGroup.Get("/stats", s.handleStats)
	apiGroup.Get("/attempts", s.handleAttempts)
	apiGroup.Get("/calendar.ics", s.handleCalendar)
}

// Listen serves the API on the given address, blocking until shutdown.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleTournaments(c *fiber.Ctx) error {
	tournaments := s.store.ListActive()
	return c.JSON(fiber.Map{
		"count":       len(tournaments),
		"tournaments": tournaments,
	})
}

func (s *Server) handleUpcoming(c *fiber.Ctx) error {
	days := c.QueryInt("days", 30)
	if days < 1 || days > 365 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "days must be between 1 and 365",
		})
	}

	tournaments := s.store.ListUpcoming(days)
	return c.JSON(fiber.Map{
		"days":        days,
		"count":       len(tournaments),
		"tournaments": tournaments,
	})
}

func (s *Server) handleSearch(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query parameter q is required",
		})
	}

	tournaments := s.store.Search(query)
	return c.JSON(fiber.Map{
		"query":       query,
		"count":       len(tournaments),
		"tournaments": tournaments,
	})
}

func (s *Server) handleStats(c *fiber.Ctx) error {
	return c.JSON(s.store.GetStats())
}

func (s *Server) handleAttempts(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	attempts, err := s.store.Attempts(limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "scrape log unavailable",
		})
	}
	return c.JSON(fiber.Map{
		"count":    len(attempts),
		"attempts": attempts,
	})
}

func (s *Server) handleCalendar(c *fiber.Ctx) error {
	upcoming := s.store.ListUpcoming(calendarWindowDays)
	feed := calendar.GenerateFeed(upcoming, time.Now().UTC())

	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	return c.SendString(feed)
}
