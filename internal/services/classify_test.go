package services

import (
	"testing"

	"wilayah-analytics/internal/models"
)

func TestClassifyLowVolumeOverridesEverything(t *testing.T) {
	// 12 transactions: below N_MIN no matter how the distribution looks.
	m := models.ItemMetrics{
		Transactions:  12,
		PresenceCount: 6,
		EntropyNorm:   0.95,
		MaxShare:      0.20,
		LQMax:         3.0,
	}
	if got := Classify(m, DefaultThresholds()); got != models.LabelLowVolume {
		t.Errorf("label = %q, want Low-Volume", got)
	}
}

func TestClassifyGlobal(t *testing.T) {
	m := models.ItemMetrics{
		Transactions:  200,
		PresenceCount: 5,
		EntropyNorm:   0.90,
		MaxShare:      0.25,
		LQMax:         1.2,
	}
	if got := Classify(m, DefaultThresholds()); got != models.LabelGlobal {
		t.Errorf("label = %q, want Global", got)
	}
}

func TestClassifyLocalSingleRegion(t *testing.T) {
	// Item X: one region, 50 transactions, entropy 0, full share.
	m := models.ItemMetrics{
		Transactions:  50,
		PresenceCount: 1,
		EntropyNorm:   0,
		MaxShare:      1.0,
		LQMax:         0.8, // the LQ leg is not needed when presence is 1
	}
	if got := Classify(m, DefaultThresholds()); got != models.LabelLocal {
		t.Errorf("label = %q, want Local", got)
	}
}

func TestClassifyLocalConcentrated(t *testing.T) {
	m := models.ItemMetrics{
		Transactions:  80,
		PresenceCount: 3,
		EntropyNorm:   0.30,
		MaxShare:      0.75,
		LQMax:         2.0,
	}
	if got := Classify(m, DefaultThresholds()); got != models.LabelLocal {
		t.Errorf("label = %q, want Local", got)
	}
}

func TestClassifyRegionalFallback(t *testing.T) {
	// Spread over three regions, neither diverse enough for Global nor
	// concentrated enough for Local.
	m := models.ItemMetrics{
		Transactions:  100,
		PresenceCount: 3,
		EntropyNorm:   0.55,
		MaxShare:      0.55,
		LQMax:         1.2,
	}
	if got := Classify(m, DefaultThresholds()); got != models.LabelRegional {
		t.Errorf("label = %q, want Regional", got)
	}
}

func TestClassifyRuleOrder(t *testing.T) {
	// With the default thresholds no item can satisfy Global and Local at
	// once; loosen them so one does, and check that Global (evaluated
	// first) wins.
	loose := DefaultThresholds()
	loose.GlobalMaxShareMax = 1.0
	loose.LocalMaxShareMin = 0.0
	loose.LocalHNormMax = 1.0
	loose.LocalLQMin = 0.0

	m := models.ItemMetrics{
		Transactions:  100,
		PresenceCount: 5,
		EntropyNorm:   0.80,
		MaxShare:      0.70,
		LQMax:         2.0,
	}
	if got := Classify(m, loose); got != models.LabelGlobal {
		t.Errorf("label = %q, want Global (rule order: Low-Volume, Global, Local, Regional)", got)
	}

	// And Low-Volume still beats both.
	m.Transactions = loose.NMin - 1
	if got := Classify(m, loose); got != models.LabelLowVolume {
		t.Errorf("label = %q, want Low-Volume", got)
	}
}

func TestClassifyIsTotal(t *testing.T) {
	cases := []models.ItemMetrics{
		{},
		{Transactions: 30},
		{Transactions: 30, PresenceCount: 1},
		{Transactions: 1000, PresenceCount: 6, EntropyNorm: 1.0, MaxShare: 1.0 / 6, LQMax: 1.0},
		{Transactions: 30, PresenceCount: 2, EntropyNorm: 0.5, MaxShare: 0.5, LQMax: 0},
	}
	valid := map[models.Label]bool{
		models.LabelLowVolume: true,
		models.LabelGlobal:    true,
		models.LabelRegional:  true,
		models.LabelLocal:     true,
	}
	for i, m := range cases {
		if got := Classify(m, DefaultThresholds()); !valid[got] {
			t.Errorf("case %d: label %q is not one of the four labels", i, got)
		}
	}
}

func TestClassifyConfigurableNMin(t *testing.T) {
	th := DefaultThresholds()
	th.NMin = 10

	m := models.ItemMetrics{Transactions: 12, PresenceCount: 1, MaxShare: 1.0}
	if got := Classify(m, th); got != models.LabelLocal {
		t.Errorf("label = %q, want Local once N_MIN is lowered", got)
	}
}
