package handler

import (
	"context"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/gordon0907/ark-tribe-log/internal/config"
	"github.com/gordon0907/ark-tribe-log/internal/infrastructure/sources"
	"github.com/gordon0907/ark-tribe-log/internal/metrics"
	"github.com/gordon0907/ark-tribe-log/internal/response"
	"github.com/gordon0907/ark-tribe-log/internal/tribelog"
)

// TribeLogHandler serves the decoded tribe log as HTML and JSON. Every request
// reads and decodes the save file from scratch.
type TribeLogHandler struct {
	Source    sources.SaveSource
	Decoder   config.DecoderConfig
	Icon      template.URL
	Snapshots SnapshotStore // nil when no database is configured
	Exporter  Exporter      // nil when no bucket is configured
	Logger    zerolog.Logger
}

// DecodeResult is one decode of the save file.
type DecodeResult struct {
	Lines    tribelog.DecodedLog
	Declared int
}

// Decode reads the source and decodes it. lenient disables the declared
// count check for this call only.
func (h *TribeLogHandler) Decode(ctx context.Context, lenient bool) (*DecodeResult, error) {
	start := time.Now()
	defer func() { metrics.DecodeDuration.Observe(time.Since(start).Seconds()) }()

	data, err := h.Source.Read(ctx)
	if err != nil {
		metrics.DecodeTotal.WithLabelValues("io").Inc()
		return nil, err
	}
	metrics.SaveFileBytes.Set(float64(len(data)))

	declared := -1
	lines, err := tribelog.Decode(data,
		tribelog.WithStrictCount(h.Decoder.StrictCount && !lenient),
		tribelog.WithNarrowEncoding(tribelog.NarrowEncoding(h.Decoder.NarrowEncoding)),
		tribelog.WithCountMismatchHook(func(d, actual int) {
			declared = d
			metrics.CountMismatchTotal.Inc()
			h.Logger.Warn().
				Str("source", h.Source.Describe()).
				Int("declared", d).
				Int("decoded", actual).
				Msg("tribe log entry count mismatch")
		}),
	)
	metrics.DecodeTotal.WithLabelValues(response.ErrorKind(err)).Inc()
	if err != nil {
		return nil, err
	}
	if declared < 0 {
		declared = len(lines)
	}
	metrics.LogLines.Set(float64(len(lines)))
	return &DecodeResult{Lines: lines, Declared: declared}, nil
}

func lenientParam(c echo.Context) (bool, error) {
	v := c.QueryParam("lenient")
	if v == "" {
		return false, nil
	}
	return strconv.ParseBool(v)
}

// Page renders the tribe log, most recent entry first (GET /).
func (h *TribeLogHandler) Page(c echo.Context) error {
	lenient, err := lenientParam(c)
	if err != nil {
		return c.Render(http.StatusBadRequest, "error.html", errorPageData{Error: "invalid lenient parameter: " + err.Error()})
	}
	res, err := h.Decode(c.Request().Context(), lenient)
	if err != nil {
		h.Logger.Error().Err(err).Str("source", h.Source.Describe()).Msg("decode tribe log")
		return c.Render(http.StatusInternalServerError, "error.html", errorPageData{Error: err.Error()})
	}
	return c.Render(http.StatusOK, "tribelog.html", newPageData(h.Icon, res.Lines))
}

// GetLog returns the decoded tribe log as JSON (GET /api/tribelog).
func (h *TribeLogHandler) GetLog(c echo.Context) error {
	lenient, err := lenientParam(c)
	if err != nil {
		return response.BadRequest(c, "invalid lenient parameter", err.Error())
	}
	res, err := h.Decode(c.Request().Context(), lenient)
	if err != nil {
		h.Logger.Error().Err(err).Str("source", h.Source.Describe()).Msg("decode tribe log")
		return response.DecodeFailed(c, err)
	}
	return response.OK(c, map[string]any{
		"source":   h.Source.Describe(),
		"count":    len(res.Lines),
		"declared": res.Declared,
		"lines":    res.Lines,
	}, "")
}

// Health reports liveness (GET /healthz).
func (h *TribeLogHandler) Health(c echo.Context) error {
	return response.OK(c, map[string]any{
		"source":    h.Source.Describe(),
		"snapshots": h.Snapshots != nil,
		"export":    h.Exporter != nil,
	}, "ok")
}
