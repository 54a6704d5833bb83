package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults should not error, got: %v", err)
	}

	if cfg.Classify.NMin != 30 {
		t.Errorf("default N_MIN = %d, want 30", cfg.Classify.NMin)
	}
	if cfg.Classify.TopN != 5 {
		t.Errorf("default top-N = %d, want 5", cfg.Classify.TopN)
	}
	if cfg.Classify.GlobalPresenceMin != 4 {
		t.Errorf("default global presence min = %d, want 4", cfg.Classify.GlobalPresenceMin)
	}
	if cfg.Classify.GlobalHNormMin != 0.70 {
		t.Errorf("default global H_norm min = %v, want 0.70", cfg.Classify.GlobalHNormMin)
	}
	if cfg.Classify.LocalLQMin != 1.5 {
		t.Errorf("default local LQ min = %v, want 1.5", cfg.Classify.LocalLQMin)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("CLASSIFY_N_MIN", "50")
	t.Setenv("CLASSIFY_LOCAL_H_NORM_MAX", "0.35")
	t.Setenv("INCLUDE_RETURNS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() should not error, got: %v", err)
	}
	if cfg.Classify.NMin != 50 {
		t.Errorf("N_MIN = %d, want 50", cfg.Classify.NMin)
	}
	if cfg.Classify.LocalHNormMax != 0.35 {
		t.Errorf("local H_norm max = %v, want 0.35", cfg.Classify.LocalHNormMax)
	}
	if !cfg.Input.IncludeReturns {
		t.Error("IncludeReturns should be true")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty input path", func(c *Config) { c.Input.Path = "" }},
		{"negative n-min", func(c *Config) { c.Classify.NMin = -1 }},
		{"zero top-n", func(c *Config) { c.Classify.TopN = 0 }},
		{"share above one", func(c *Config) { c.Classify.GlobalMaxShareMax = 1.5 }},
		{"negative lq", func(c *Config) { c.Classify.LocalLQMin = -0.1 }},
		{"zero workers", func(c *Config) { c.Metrics.Workers = 0 }},
		{"bad log level", func(c *Config) { c.Logger.Level = "verbose" }},
		{"bad log format", func(c *Config) { c.Logger.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() should not error, got: %v", err)
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should reject the mutated config")
			}
		})
	}
}
