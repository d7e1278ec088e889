// Package api serves the converter over HTTP.
package api

import (
	"bytes"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/cleared-dev/revolut2camt/internal/buildinfo"
	"github.com/cleared-dev/revolut2camt/internal/camt"
	"github.com/cleared-dev/revolut2camt/internal/config"
	"github.com/cleared-dev/revolut2camt/internal/id"
	"github.com/cleared-dev/revolut2camt/internal/importer"
	"github.com/cleared-dev/revolut2camt/internal/statement"
)

// ContentTypeXML is the media type of converted statements.
const ContentTypeXML = "application/xml"

// Handler converts uploaded ledgers using a shared read-only config.
type Handler struct {
	Config   *config.Config
	Registry *importer.Registry
	Log      zerolog.Logger
	Workers  int
	Now      func() time.Time
}

// ErrorResponse is the JSON body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewApp returns a fiber app with the handler's routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "revolut2camt",
		DisableStartupMessage: true,
	})
	h.Register(app)
	return app
}

// Register sets up the routes on r.
func (h *Handler) Register(r fiber.Router) {
	r.Get("/health", h.health())
	v1 := r.Group("/v1")
	v1.Post("/statements", h.convertStatement())
}

func (h *Handler) health() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"version": buildinfo.Version,
		})
	}
}

func (h *Handler) convertStatement() fiber.Handler {
	return func(c *fiber.Ctx) error {
		body := c.Body()
		if len(bytes.TrimSpace(body)) == 0 {
			return errorResponse(c, fiber.StatusBadRequest, errors.New("empty request body"))
		}

		cfg := h.Config
		if iban := c.Query("iban"); iban != "" {
			cfg = cfg.WithIBAN(iban)
		}
		if err := cfg.Validate(); err != nil {
			return errorResponse(c, fiber.StatusBadRequest, err)
		}

		format := c.Query("format", "revolut")
		parser := h.registry().Get(format)
		if parser == nil {
			return errorResponse(c, fiber.StatusBadRequest, errors.New("unsupported format "+format))
		}

		log := h.Log.With().Str("format", format).Str("iban", cfg.Account.IBAN).Logger()

		recs, err := importer.Load(parser, bytes.NewReader(body))
		if err != nil {
			log.Warn().Err(err).Msg("rejecting ledger")
			return errorResponse(c, fiber.StatusUnprocessableEntity, err)
		}

		stmt, err := statement.Convert(recs, cfg.AccountConfig(), statement.Options{Now: h.now(), Workers: h.Workers})
		if err != nil {
			log.Warn().Err(err).Int("records", len(recs)).Msg("conversion failed")
			return errorResponse(c, fiber.StatusUnprocessableEntity, err)
		}

		var buf bytes.Buffer
		if err := camt.Encode(&buf, stmt); err != nil {
			log.Error().Err(err).Msg("encoding statement")
			return errorResponse(c, fiber.StatusInternalServerError, err)
		}

		log.Info().
			Int("entries", len(stmt.Entries)).
			Str("message_id", stmt.Header.MessageID).
			Msg("statement converted")

		c.Attachment(id.OutputFileName(stmt.Account.IBAN, stmt.From, stmt.To))
		c.Set(fiber.HeaderContentType, ContentTypeXML)
		return c.Status(fiber.StatusOK).Send(buf.Bytes())
	}
}

func (h *Handler) registry() *importer.Registry {
	if h.Registry == nil {
		return importer.DefaultRegistry()
	}
	return h.Registry
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func errorResponse(c *fiber.Ctx, status int, err error) error {
	return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
}
