package restserver

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/chrissnell/divegas/pkg/config"
	"github.com/chrissnell/divegas/pkg/gas"
	"github.com/chrissnell/divegas/pkg/nitrox"
	"github.com/chrissnell/divegas/pkg/responseformat"
	"github.com/chrissnell/divegas/pkg/units"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

func newTestController(t *testing.T, calcs *nitrox.Calculators) *Controller {
	t.Helper()

	ctrl, err := NewController(context.Background(), &sync.WaitGroup{}, config.Default(), calcs, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return ctrl
}

func get(t *testing.T, ctrl *Controller, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()

	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("status = %d, expected %d (body %s)", rec.Code, status, rec.Body.String())
	}
	var body responseformat.ErrorResponse
	decode(t, rec, &body)
	if body.Error != message {
		t.Errorf("error = %q, expected %q", body.Error, message)
	}
}

func TestGetBestNitroxForDepth(t *testing.T) {
	ctrl := newTestController(t, nitrox.NewCalculators())

	tests := []struct {
		name     string
		target   string
		ean      string
		oxygen   float64
		nitrogen float64
	}{
		// 1.4 / (1.01325 + 2.943)
		{"fresh water default", "/nitrox/best?depth=30&partialPressure=1.4", "EAN35", 0.35387, 0.64613},
		{"salt water", "/nitrox/best?depth=30&partialPressure=1.4&water=salt", "EAN34", 0.34615, 0.65385},
		{"shallow depth clamps to oxygen", "/nitrox/best?depth=0&partialPressure=1.4", "O2", 1, 0},
		{"original route", "/api/BestNitroxForDepthFunction?depth=30&partialPressure=1.4", "EAN35", 0.35387, 0.64613},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, ctrl, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}

			var body BestNitroxResponse
			decode(t, rec, &body)
			if body.EAN != tt.ean {
				t.Errorf("ean = %q, expected %q", body.EAN, tt.ean)
			}
			if math.Abs(body.OxygenFraction-tt.oxygen) > 1e-5 || math.Abs(body.NitrogenFraction-tt.nitrogen) > 1e-5 {
				t.Errorf("fractions = %v/%v, expected %v/%v", body.OxygenFraction, body.NitrogenFraction, tt.oxygen, tt.nitrogen)
			}
		})
	}
}

func TestGetBestNitroxForDepthBadRequests(t *testing.T) {
	ctrl := newTestController(t, nitrox.NewCalculators())

	tests := []struct {
		name    string
		target  string
		message string
	}{
		{"missing depth", "/nitrox/best?partialPressure=1.4", msgInvalidDepth},
		{"unparsable depth", "/nitrox/best?depth=thirty&partialPressure=1.4", msgInvalidDepth},
		{"comma decimal separator", "/nitrox/best?depth=30,5&partialPressure=1.4", msgInvalidDepth},
		{"infinite depth", "/nitrox/best?depth=Inf&partialPressure=1.4", msgInvalidDepth},
		{"missing partial pressure", "/nitrox/best?depth=30", msgInvalidPartialPressure},
		{"unknown water", "/nitrox/best?depth=30&partialPressure=1.4&water=lake", msgInvalidWaterType},
		{"negative depth", "/nitrox/best?depth=-1&partialPressure=1.4", "Depth must be non-negative, got -1 m. (Parameter 'depth')"},
		{"negative partial pressure", "/nitrox/best?depth=30&partialPressure=-0.5", "Partial pressure of oxygen must be non-negative, got -0.5 bar. (Parameter 'partialPressureOfOxygen')"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectError(t, get(t, ctrl, tt.target), http.StatusBadRequest, tt.message)
		})
	}
}

func TestGetBestNitroxForDepthMsgPack(t *testing.T) {
	ctrl := newTestController(t, nitrox.NewCalculators())

	rec := get(t, ctrl, "/nitrox/best?depth=0&partialPressure=1.4&format=msgpack")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != responseformat.MsgPackContentType {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]any
	if err := msgpack.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding msgpack: %v", err)
	}
	if body["ean"] != "O2" {
		t.Errorf("ean = %v, expected O2", body["ean"])
	}
}

type failingBestNitrox struct{}

func (failingBestNitrox) CalculateBestNitroxForDepth(units.Depth, units.Pressure, units.Density) (gas.NitroxGas, error) {
	return gas.NitroxGas{}, errors.New("boom")
}

func TestUnexpectedErrorsReturnInternalServerError(t *testing.T) {
	calcs := nitrox.NewCalculators()
	calcs.BestNitroxForDepth = failingBestNitrox{}
	ctrl := newTestController(t, calcs)

	expectError(t, get(t, ctrl, "/nitrox/best?depth=30&partialPressure=1.4"), http.StatusInternalServerError, "internal error")
}

func TestGetMaximumOperatingDepth(t *testing.T) {
	ctrl := newTestController(t, nitrox.NewCalculators())

	tests := []struct {
		name     string
		target   string
		expected float64
		limit    float64
	}{
		{"configured limit", "/nitrox/mod?oxygenFraction=0.32", 33, 1.4},
		{"explicit limit", "/nitrox/mod?oxygenFraction=0.5&partialPressure=1.6", 22, 1.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, ctrl, tt.target)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}

			var body MaximumOperatingDepthResponse
			decode(t, rec, &body)
			if body.MaximumOperatingDepth != tt.expected || body.PartialPressureLimit != tt.limit || body.Unit != "m" {
				t.Errorf("response = %+v, expected %v m at %v bar", body, tt.expected, tt.limit)
			}
		})
	}

	expectError(t, get(t, ctrl, "/nitrox/mod?oxygenFraction=0"), http.StatusBadRequest,
		"Fraction must be between 0 and 1. (Parameter 'oxygenFraction')")
	expectError(t, get(t, ctrl, "/nitrox/mod"), http.StatusBadRequest, msgInvalidOxygenFraction)
	expectError(t, get(t, ctrl, "/nitrox/mod?oxygenFraction=0.32&partialPressure="), http.StatusBadRequest, msgInvalidPartialPressure)
}

func TestNonFiniteResultsAreRejected(t *testing.T) {
	ctrl := newTestController(t, nitrox.NewCalculators())

	tests := []struct {
		name    string
		target  string
		message string
	}{
		// 10 · (1e10 / 1e-300) overflows to +Inf
		{"maximum operating depth", "/nitrox/mod?oxygenFraction=1e-300&partialPressure=1e10", msgDepthOutOfRange},
		{"maximum operating depth msgpack", "/nitrox/mod?oxygenFraction=1e-300&partialPressure=1e10&format=msgpack", msgDepthOutOfRange},
		// 1000 · 9.81 · 1e305 Pa overflows to +Inf
		{"ambient pressure", "/pressure/ambient?depth=1e305", msgAmbientOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, ctrl, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, expected %d (body %q)", rec.Code, http.StatusBadRequest, rec.Body.String())
			}
			if rec.Body.Len() == 0 {
				t.Fatalf("empty response body")
			}

			var body map[string]any
			if rec.Header().Get("Content-Type") == responseformat.MsgPackContentType {
				if err := msgpack.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("decoding msgpack: %v", err)
				}
			} else {
				decode(t, rec, &body)
			}
			if body["error"] != tt.message {
				t.Errorf("error = %v, expected %q", body["error"], tt.message)
			}
		})
	}
}

func TestGetPressures(t *testing.T) {
	ctrl := newTestController(t, nitrox.NewCalculators())

	rec := get(t, ctrl, "/pressure/ambient?depth=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var ambient PressureResponse
	decode(t, rec, &ambient)
	if ambient.AmbientPressure == nil || math.Abs(*ambient.AmbientPressure-1.99425) > 1e-9 || ambient.PartialPressure != nil {
		t.Errorf("ambient response = %+v", ambient)
	}

	rec = get(t, ctrl, "/pressure/partial?ambientPressure=4&fraction=0.35")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var partial PressureResponse
	decode(t, rec, &partial)
	if partial.PartialPressure == nil || math.Abs(*partial.PartialPressure-1.4) > 1e-9 || partial.Unit != "bar" {
		t.Errorf("partial response = %+v", partial)
	}

	expectError(t, get(t, ctrl, "/pressure/ambient?depth=-3"), http.StatusBadRequest, "Depth must be non-negative. (Parameter 'depth')")
	expectError(t, get(t, ctrl, "/pressure/partial?ambientPressure=4&fraction=1.5"), http.StatusBadRequest, "Fraction must be between 0 and 1. (Parameter 'fraction')")
	expectError(t, get(t, ctrl, "/pressure/partial?fraction=0.5"), http.StatusBadRequest, msgInvalidAmbientPressure)
}

func TestGetTrimix(t *testing.T) {
	ctrl := newTestController(t, nitrox.NewCalculators())

	rec := get(t, ctrl, "/trimix?oxygenFraction=0.18&heliumFraction=0.45")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var body TrimixResponse
	decode(t, rec, &body)
	if body.TX != "TX 18/45" || body.NitrogenFraction != 0.37 {
		t.Errorf("response = %+v", body)
	}

	expectError(t, get(t, ctrl, "/trimix?oxygenFraction=0.6&heliumFraction=0.5"), http.StatusBadRequest,
		"Nitrogen fraction must be between 0 and 1 (Parameter 'nitrogenFraction')")
	expectError(t, get(t, ctrl, "/trimix?oxygenFraction=0.18"), http.StatusBadRequest, msgInvalidHeliumFraction)
}

func TestGetHealth(t *testing.T) {
	ctrl := newTestController(t, nitrox.NewCalculators())

	rec := get(t, ctrl, "/healthz")
	var body HealthResponse
	decode(t, rec, &body)
	if rec.Code != http.StatusOK || body.Status != "ok" || body.Version == "" {
		t.Errorf("health = %d %+v", rec.Code, body)
	}
}

func TestRequestID(t *testing.T) {
	ctrl := newTestController(t, nitrox.NewCalculators())

	rec := get(t, ctrl, "/healthz")
	if _, err := uuid.Parse(rec.Header().Get(RequestIDHeader)); err != nil {
		t.Errorf("generated request ID %q is not a UUID: %v", rec.Header().Get(RequestIDHeader), err)
	}

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "dive-42")
	rec = httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rec, req)
	if got := rec.Header().Get(RequestIDHeader); got != "dive-42" {
		t.Errorf("request ID = %q, expected the caller's ID", got)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ctrl := newTestController(t, nitrox.NewCalculators())

	rec := httptest.NewRecorder()
	ctrl.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/nitrox/best?depth=30&partialPressure=1.4", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", rec.Code)
	}
}

func TestNewControllerValidation(t *testing.T) {
	logger := zap.NewNop().Sugar()

	if _, err := NewController(context.Background(), &sync.WaitGroup{}, nil, nitrox.NewCalculators(), logger); err == nil {
		t.Errorf("expected an error without configuration")
	}
	if _, err := NewController(context.Background(), &sync.WaitGroup{}, config.Default(), nil, logger); err == nil {
		t.Errorf("expected an error without calculators")
	}

	ctrl, err := NewController(context.Background(), &sync.WaitGroup{}, &config.ConfigData{}, nitrox.NewCalculators(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctrl.Server.Addr != "0.0.0.0:8080" {
		t.Errorf("Addr = %q, expected defaults", ctrl.Server.Addr)
	}
}
