package services

import "wilayah-analytics/internal/models"

// Thresholds parameterizes the classification rule. Defaults follow the
// agreed analysis constants; every value is overridable through config.
type Thresholds struct {
	NMin              int
	GlobalPresenceMin int
	GlobalHNormMin    float64
	GlobalMaxShareMax float64
	LocalMaxShareMin  float64
	LocalHNormMax     float64
	LocalLQMin        float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		NMin:              30,
		GlobalPresenceMin: 4,
		GlobalHNormMin:    0.70,
		GlobalMaxShareMax: 0.50,
		LocalMaxShareMin:  0.60,
		LocalHNormMax:     0.40,
		LocalLQMin:        1.5,
	}
}

// Classify labels one item. The rules are evaluated top to bottom and the
// first match wins: Low-Volume, then Global, then Local, then Regional.
// Every item receives exactly one label.
func Classify(m models.ItemMetrics, t Thresholds) models.Label {
	if m.Transactions < t.NMin {
		return models.LabelLowVolume
	}

	if m.PresenceCount >= t.GlobalPresenceMin &&
		m.EntropyNorm >= t.GlobalHNormMin &&
		m.MaxShare <= t.GlobalMaxShareMax {
		return models.LabelGlobal
	}

	if m.PresenceCount == 1 ||
		(m.MaxShare >= t.LocalMaxShareMin &&
			m.EntropyNorm <= t.LocalHNormMax &&
			m.LQMax >= t.LocalLQMin) {
		return models.LabelLocal
	}

	return models.LabelRegional
}
