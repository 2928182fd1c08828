package main

import (
	"math"
	"testing"
	"time"

	"github.com/pthm-cable/treevolution/config"
	"github.com/pthm-cable/treevolution/telemetry"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	def := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(def))
	for i := range def {
		if math.Abs(back[i]-def[i]) > 1e-9 {
			t.Errorf("%s: expected %v, got %v", pv.Specs[i].Name, def[i], back[i])
		}
	}
}

func TestDefaultsWithinBounds(t *testing.T) {
	for _, spec := range NewParamVector().Specs {
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s: default %v outside [%v,%v]", spec.Name, spec.Default, spec.Min, spec.Max)
		}
	}
}

func TestApplyToConfigClampsAndValidates(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	high := make([]float64, pv.Dim())
	for i := range high {
		high[i] = 1e6
	}
	pv.ApplyToConfig(cfg, high)

	if cfg.Energy.SunPower != 4.0 {
		t.Errorf("sun_power: expected 4.0, got %v", cfg.Energy.SunPower)
	}
	if cfg.Lifecycle.BaseMaxAge != 400 {
		t.Errorf("base_max_age: expected 400, got %d", cfg.Lifecycle.BaseMaxAge)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("clamped config should validate: %v", err)
	}
}

func TestClampRoundsIntegers(t *testing.T) {
	pv := NewParamVector()
	v := pv.DefaultVector()
	idx := -1
	for i, s := range pv.Specs {
		if s.Integer {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Skip("no integer parameter")
	}
	v[idx] = 120.6
	if got := pv.Clamp(v)[idx]; got != 121 {
		t.Errorf("expected 121, got %v", got)
	}
}

func TestMeanPlants(t *testing.T) {
	tests := []struct {
		name   string
		plants []int
		want   float64
	}{
		{"empty", nil, 0},
		{"single window kept", []int{5}, 5},
		{"first window skipped", []int{100, 4, 6}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ws []telemetry.WindowStats
			for _, p := range tt.plants {
				ws = append(ws, telemetry.WindowStats{Plants: p})
			}
			if got := meanPlants(ws); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	if got := formatDuration(75 * time.Second); got != "1m15s" {
		t.Errorf("expected 1m15s, got %s", got)
	}
}
