package restserver

// BestNitroxResponse is returned by the best nitrox endpoint
type BestNitroxResponse struct {
	EAN              string  `json:"ean"`
	OxygenFraction   float64 `json:"oxygenFraction"`
	NitrogenFraction float64 `json:"nitrogenFraction"`
}

// MaximumOperatingDepthResponse is returned by the MOD endpoint
type MaximumOperatingDepthResponse struct {
	MaximumOperatingDepth float64 `json:"maximumOperatingDepth"`
	PartialPressureLimit  float64 `json:"partialPressureLimit"`
	OxygenFraction        float64 `json:"oxygenFraction"`
	Unit                  string  `json:"unit"`
}

// PressureResponse is returned by the pressure endpoints. Exactly one of the
// pressure fields is set.
type PressureResponse struct {
	AmbientPressure *float64 `json:"ambientPressure,omitempty"`
	PartialPressure *float64 `json:"partialPressure,omitempty"`
	Unit            string   `json:"unit"`
}

// TrimixResponse is returned by the trimix endpoint
type TrimixResponse struct {
	TX               string  `json:"tx"`
	OxygenFraction   float64 `json:"oxygenFraction"`
	NitrogenFraction float64 `json:"nitrogenFraction"`
	HeliumFraction   float64 `json:"heliumFraction"`
}

// HealthResponse is returned by /healthz
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
