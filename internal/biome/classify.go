package biome

import (
	"fmt"

	"overworld/internal/mathx"
)

// Thresholds are the tuning values of the classification cascade. All
// values are on the [0, 1] scale of a terrain sample.
type Thresholds struct {
	// Water band: smoothstep(WaterLow, WaterHigh, e) below 1 is water,
	// split into deep / medium / shallow at DeepCut and MediumCut.
	WaterLow  float64 `yaml:"water_low"`
	WaterHigh float64 `yaml:"water_high"`
	DeepCut   float64 `yaml:"deep_cut"`
	MediumCut float64 `yaml:"medium_cut"`

	// Beach band from WaterHigh up to BeachHigh, dry tiles only.
	BeachHigh        float64 `yaml:"beach_high"`
	BeachMaxMoisture float64 `yaml:"beach_max_moisture"`

	// Mountain band: smoothstep(MountainLow, MountainHigh, e) above
	// MountainCut. Colder than SnowLine is snow.
	MountainLow  float64 `yaml:"mountain_low"`
	MountainHigh float64 `yaml:"mountain_high"`
	MountainCut  float64 `yaml:"mountain_cut"`
	SnowLine     float64 `yaml:"snow_line"`

	PineMaxTemperature   float64 `yaml:"pine_max_temperature"`
	PineMinMoisture      float64 `yaml:"pine_min_moisture"`
	DesertMaxMoisture    float64 `yaml:"desert_max_moisture"`
	DesertMinTemperature float64 `yaml:"desert_min_temperature"`
	LushMinMoisture      float64 `yaml:"lush_min_moisture"`
	ForestMinMoisture    float64 `yaml:"forest_min_moisture"`
	SavannahMinTemp      float64 `yaml:"savannah_min_temperature"`
	SavannahMaxMoisture  float64 `yaml:"savannah_max_moisture"`
	HighlandMinElevation float64 `yaml:"highland_min_elevation"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		WaterLow:  0.18,
		WaterHigh: 0.26,
		DeepCut:   1.0 / 3,
		MediumCut: 2.0 / 3,

		BeachHigh:        0.30,
		BeachMaxMoisture: 0.45,

		MountainLow:  0.80,
		MountainHigh: 0.86,
		MountainCut:  0.8,
		SnowLine:     0.3,

		PineMaxTemperature:   0.35,
		PineMinMoisture:      0.45,
		DesertMaxMoisture:    0.15,
		DesertMinTemperature: 0.6,
		LushMinMoisture:      0.7,
		ForestMinMoisture:    0.45,
		SavannahMinTemp:      0.55,
		SavannahMaxMoisture:  0.3,
		HighlandMinElevation: 0.5,
	}
}

// Validate checks the band edges are ordered so that every band is
// reachable and the cascade stays total.
func (t Thresholds) Validate() error {
	switch {
	case !(t.WaterLow < t.WaterHigh):
		return fmt.Errorf("water_low %.3f must be below water_high %.3f", t.WaterLow, t.WaterHigh)
	case !(t.WaterHigh < t.BeachHigh):
		return fmt.Errorf("water_high %.3f must be below beach_high %.3f", t.WaterHigh, t.BeachHigh)
	case !(t.BeachHigh <= t.MountainLow):
		return fmt.Errorf("beach_high %.3f must not exceed mountain_low %.3f", t.BeachHigh, t.MountainLow)
	case !(t.MountainLow < t.MountainHigh):
		return fmt.Errorf("mountain_low %.3f must be below mountain_high %.3f", t.MountainLow, t.MountainHigh)
	case !(0 < t.DeepCut && t.DeepCut < t.MediumCut && t.MediumCut < 1):
		return fmt.Errorf("water cuts must satisfy 0 < deep_cut < medium_cut < 1")
	case !(0 <= t.MountainCut && t.MountainCut < 1):
		return fmt.Errorf("mountain_cut %.3f must be in [0, 1)", t.MountainCut)
	}
	return nil
}

// Classify maps a sample to a tile kind with the default thresholds.
func Classify(elevation, moisture, temperature float64) TileKind {
	return DefaultThresholds().Classify(elevation, moisture, temperature)
}

// Classify runs the cascade top to bottom; the first matching rule wins and
// later rules rely on the ranges excluded above them.
func (t Thresholds) Classify(elevation, moisture, temperature float64) TileKind {
	e := mathx.Clamp(elevation, 0, 1)
	m := mathx.Clamp(moisture, 0, 1)
	temp := mathx.Clamp(temperature, 0, 1)

	// water
	if w := mathx.Smoothstep(t.WaterLow, t.WaterHigh, e); w < 1 {
		switch {
		case w < t.DeepCut:
			return DeepWater
		case w < t.MediumCut:
			return MediumWater
		default:
			return ShallowWater
		}
	}

	// beach
	if b := mathx.Smoothstep(t.WaterHigh, t.BeachHigh, e); b < 1 && m < t.BeachMaxMoisture {
		return Beach
	}

	// mountains
	if mf := mathx.Smoothstep(t.MountainLow, t.MountainHigh, e); mf > t.MountainCut {
		switch {
		case temp < t.SnowLine:
			return Snow
		case mf >= 1:
			return Mountain
		default:
			return Rock
		}
	}

	switch {
	case temp < t.PineMaxTemperature && m > t.PineMinMoisture:
		return PineForest
	case m < t.DesertMaxMoisture && temp > t.DesertMinTemperature:
		return Desert
	case m > t.LushMinMoisture:
		return LushForest
	case m > t.ForestMinMoisture:
		return DeciduousForest
	case temp > t.SavannahMinTemp && m < t.SavannahMaxMoisture:
		return Savannah
	case e > t.HighlandMinElevation:
		return Highland
	default:
		return Grass
	}
}
