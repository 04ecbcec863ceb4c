package district_test

import (
	"errors"
	"testing"

	"github.com/vovakirdan/redistricting/internal/district"
)

func TestDistrictSizes(t *testing.T) {
	tests := []struct {
		population, districts int
		min, max              int
	}{
		{45, 3, 14, 16},
		{60, 3, 19, 21},
		{100, 5, 19, 21},
		{140, 5, 27, 29},
		{0, 3, 0, 0},
		{10, 0, 0, 0},
	}

	for _, tc := range tests {
		lo, hi := district.DistrictSizes(tc.population, tc.districts)
		if lo != tc.min || hi != tc.max {
			t.Errorf("DistrictSizes(%d, %d) = (%d, %d), expected (%d, %d)",
				tc.population, tc.districts, lo, hi, tc.min, tc.max)
		}
	}
}

func TestMinFavorable(t *testing.T) {
	tests := []struct {
		name       string
		population int
		level      district.LevelConfig
		expected   int
	}{
		{
			// 2 winning districts of 14 need 8 each; target 14+14+16=44, 1 extra
			name:       "first level",
			population: 45,
			level:      district.LevelConfig{Districts: 3, MinDistrictSize: 14, MaxDistrictSize: 16},
			expected:   17,
		},
		{
			// target 29*3+32*2=151 covers the population: no extra
			name:       "five districts",
			population: 150,
			level:      district.LevelConfig{Districts: 5, MinDistrictSize: 29, MaxDistrictSize: 32},
			expected:   45,
		},
		{
			// target 10*2+10=30, extra 5 rounds up to 3
			name:       "odd extra",
			population: 35,
			level:      district.LevelConfig{Districts: 3, MinDistrictSize: 10, MaxDistrictSize: 10},
			expected:   15,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := district.MinFavorable(tc.population, tc.level); got != tc.expected {
				t.Errorf("MinFavorable() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestFirstLevel(t *testing.T) {
	level := district.FirstLevel()

	if level.Districts != 3 || level.MapSize != 8 || level.GoodPct != 0.5 || level.PopulatedPct != 0.7 {
		t.Errorf("unexpected first level %+v", level)
	}
	if level.MinDistrictSize != 14 || level.MaxDistrictSize != 16 {
		t.Errorf("first level sizes %d-%d, expected 14-16", level.MinDistrictSize, level.MaxDistrictSize)
	}
	if err := level.Validate(); err != nil {
		t.Errorf("first level should validate: %v", err)
	}
	if level.DistrictsToWin() != 2 {
		t.Errorf("DistrictsToWin() = %d, expected 2", level.DistrictsToWin())
	}
}

func TestLevelValidate(t *testing.T) {
	base := district.FirstLevel()

	tests := []struct {
		name   string
		modify func(*district.LevelConfig)
		valid  bool
	}{
		{"first level", func(*district.LevelConfig) {}, true},
		{"populated exactly one", func(l *district.LevelConfig) { l.PopulatedPct = 1 }, true},
		{"two districts", func(l *district.LevelConfig) { l.Districts = 2 }, false},
		{"good pct one", func(l *district.LevelConfig) { l.GoodPct = 1 }, false},
		{"negative populated", func(l *district.LevelConfig) { l.PopulatedPct = -0.1 }, false},
		{"negative size", func(l *district.LevelConfig) { l.MapSize = -1 }, false},
		{"inverted sizes", func(l *district.LevelConfig) { l.MinDistrictSize = 20 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			level := base
			tc.modify(&level)
			err := level.Validate()
			if tc.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tc.valid && !errors.Is(err, district.ErrConfiguration) {
				t.Errorf("expected ErrConfiguration, got %v", err)
			}
		})
	}
}
