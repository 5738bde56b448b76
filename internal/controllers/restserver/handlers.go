package restserver

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/chrissnell/divegas/internal/constants"
	"github.com/chrissnell/divegas/pkg/gas"
	"github.com/chrissnell/divegas/pkg/nitrox"
	"github.com/chrissnell/divegas/pkg/responseformat"
	"github.com/chrissnell/divegas/pkg/units"
	"github.com/chrissnell/divegas/pkg/validation"
	"github.com/shopspring/decimal"
)

// Messages returned when a query parameter is missing or malformed, or when
// a result cannot be represented
const (
	msgInvalidDepth           = "Please pass a valid depth in meters as a query parameter."
	msgInvalidPartialPressure = "Please pass a valid partial pressure of oxygen in bars as a query parameter."
	msgInvalidOxygenFraction  = "Please pass a valid oxygen fraction as a query parameter."
	msgInvalidHeliumFraction  = "Please pass a valid helium fraction as a query parameter."
	msgInvalidAmbientPressure = "Please pass a valid ambient pressure in bars as a query parameter."
	msgInvalidFraction        = "Please pass a valid gas fraction as a query parameter."
	msgInvalidWaterType       = "Please pass a valid water type (fresh, brackish or salt) as a query parameter."

	msgDepthOutOfRange   = "The maximum operating depth for these inputs is out of range."
	msgAmbientOutOfRange = "The ambient pressure at this depth is out of range."
)

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// GetBestNitroxForDepth handles ?depth=<m>&partialPressure=<bar>[&water=<type>]
func (h *Handlers) GetBestNitroxForDepth(w http.ResponseWriter, req *http.Request) {
	depth, ok := queryFloat(req, "depth")
	if !ok {
		h.badRequest(w, req, msgInvalidDepth)
		return
	}

	partialPressure, ok := queryFloat(req, "partialPressure")
	if !ok {
		h.badRequest(w, req, msgInvalidPartialPressure)
		return
	}

	density, ok := h.waterDensity(req)
	if !ok {
		h.badRequest(w, req, msgInvalidWaterType)
		return
	}

	best, err := h.controller.calculators.BestNitroxForDepth.CalculateBestNitroxForDepth(
		units.DepthFromMeters(depth),
		units.PressureFromBars(partialPressure),
		density,
	)
	if err != nil {
		h.calculationError(w, req, err)
		return
	}

	h.write(w, req, http.StatusOK, BestNitroxResponse{
		EAN:              best.EAN(),
		OxygenFraction:   best.OxygenFraction().InexactFloat64(),
		NitrogenFraction: best.NitrogenFraction().InexactFloat64(),
	})
}

// GetMaximumOperatingDepth handles ?oxygenFraction=<f>[&partialPressure=<bar>].
// The partial pressure limit falls back to the configured default.
func (h *Handlers) GetMaximumOperatingDepth(w http.ResponseWriter, req *http.Request) {
	oxygenFraction, ok := queryFloat(req, "oxygenFraction")
	if !ok {
		h.badRequest(w, req, msgInvalidOxygenFraction)
		return
	}

	limit := h.controller.calcCfg.PartialPressureLimit
	if req.URL.Query().Has("partialPressure") {
		if limit, ok = queryFloat(req, "partialPressure"); !ok {
			h.badRequest(w, req, msgInvalidPartialPressure)
			return
		}
	}

	mod, err := h.controller.calculators.MaximumOperatingDepth.CalculateMaximumOperatingDepth(
		units.PressureFromBars(limit), oxygenFraction)
	if err != nil {
		h.calculationError(w, req, err)
		return
	}
	if !finite(mod.Meters()) {
		h.badRequest(w, req, msgDepthOutOfRange)
		return
	}

	h.write(w, req, http.StatusOK, MaximumOperatingDepthResponse{
		MaximumOperatingDepth: mod.Meters(),
		PartialPressureLimit:  limit,
		OxygenFraction:        oxygenFraction,
		Unit:                  "m",
	})
}

// GetAmbientPressure handles ?depth=<m>[&water=<type>]
func (h *Handlers) GetAmbientPressure(w http.ResponseWriter, req *http.Request) {
	depth, ok := queryFloat(req, "depth")
	if !ok {
		h.badRequest(w, req, msgInvalidDepth)
		return
	}

	density, ok := h.waterDensity(req)
	if !ok {
		h.badRequest(w, req, msgInvalidWaterType)
		return
	}

	p, err := h.controller.calculators.AmbientPressure.CalculateAmbientPressure(units.DepthFromMeters(depth), density)
	if err != nil {
		h.calculationError(w, req, err)
		return
	}
	if !finite(p.Bars()) {
		h.badRequest(w, req, msgAmbientOutOfRange)
		return
	}

	bars := p.Bars()
	h.write(w, req, http.StatusOK, PressureResponse{AmbientPressure: &bars, Unit: "bar"})
}

// GetPartialPressure handles ?ambientPressure=<bar>&fraction=<f>
func (h *Handlers) GetPartialPressure(w http.ResponseWriter, req *http.Request) {
	ambient, ok := queryFloat(req, "ambientPressure")
	if !ok {
		h.badRequest(w, req, msgInvalidAmbientPressure)
		return
	}

	fraction, ok := queryFloat(req, "fraction")
	if !ok {
		h.badRequest(w, req, msgInvalidFraction)
		return
	}

	p, err := h.controller.calculators.PartialPressure.CalculatePartialPressure(units.PressureFromBars(ambient), fraction)
	if err != nil {
		h.calculationError(w, req, err)
		return
	}

	bars := p.Bars()
	h.write(w, req, http.StatusOK, PressureResponse{PartialPressure: &bars, Unit: "bar"})
}

// GetTrimix handles ?oxygenFraction=<f>&heliumFraction=<f>. Fractions are
// parsed as exact decimals so that e.g. 0.18 and 0.45 leave exactly 0.37.
func (h *Handlers) GetTrimix(w http.ResponseWriter, req *http.Request) {
	oxygen, ok := queryDecimal(req, "oxygenFraction")
	if !ok {
		h.badRequest(w, req, msgInvalidOxygenFraction)
		return
	}

	helium, ok := queryDecimal(req, "heliumFraction")
	if !ok {
		h.badRequest(w, req, msgInvalidHeliumFraction)
		return
	}

	mix, err := gas.NewTrimixGasFromOxygenHelium(oxygen, helium)
	if err != nil {
		h.calculationError(w, req, err)
		return
	}

	h.write(w, req, http.StatusOK, TrimixResponse{
		TX:               mix.TX(),
		OxygenFraction:   mix.OxygenFraction().InexactFloat64(),
		NitrogenFraction: mix.NitrogenFraction().InexactFloat64(),
		HeliumFraction:   mix.HeliumFraction().InexactFloat64(),
	})
}

// GetHealth reports that the server is up
func (h *Handlers) GetHealth(w http.ResponseWriter, req *http.Request) {
	h.write(w, req, http.StatusOK, HealthResponse{Status: "ok", Version: constants.Version})
}

// waterDensity returns the density for the optional water parameter, or the
// configured default when it is absent
func (h *Handlers) waterDensity(req *http.Request) (units.Density, bool) {
	water := req.URL.Query().Get("water")
	if water == "" {
		return h.controller.calcCfg.DefaultWaterDensity(), true
	}

	wt, err := nitrox.ParseWaterType(water)
	if err != nil {
		return 0, false
	}
	return wt.Density(), true
}

// calculationError maps argument errors to 400 and anything else to 500
func (h *Handlers) calculationError(w http.ResponseWriter, req *http.Request, err error) {
	if validation.IsArgumentError(err) {
		h.badRequest(w, req, err.Error())
		return
	}

	h.controller.logger.Errorw("calculation failed",
		"request_id", requestIDFromContext(req.Context()),
		"path", req.URL.Path,
		"error", err,
	)
	h.writeError(w, req, http.StatusInternalServerError, "internal error")
}

func (h *Handlers) badRequest(w http.ResponseWriter, req *http.Request, message string) {
	h.writeError(w, req, http.StatusBadRequest, message)
}

func (h *Handlers) writeError(w http.ResponseWriter, req *http.Request, status int, message string) {
	if err := h.formatter.WriteError(w, req, status, message); err != nil {
		h.controller.logger.Errorf("error writing response: %v", err)
	}
}

func (h *Handlers) write(w http.ResponseWriter, req *http.Request, status int, data any) {
	if err := h.formatter.WriteResponse(w, req, status, data); err != nil {
		h.controller.logger.Errorf("error writing response: %v", err)
	}
}

// queryFloat parses a finite float query parameter. Parsing is independent
// of locale: the decimal separator is always '.'.
func queryFloat(req *http.Request, name string) (float64, bool) {
	raw := strings.TrimSpace(req.URL.Query().Get(name))
	if raw == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !finite(v) {
		return 0, false
	}
	return v, true
}

// finite reports whether v can be encoded as a JSON number
func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func queryDecimal(req *http.Request, name string) (decimal.Decimal, bool) {
	raw := strings.TrimSpace(req.URL.Query().Get(name))
	if raw == "" {
		return decimal.Decimal{}, false
	}

	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return v, true
}
