package config

import (
	"fmt"
	"math"
	"strings"
)

// Difficulty scales how fast the cannon fires and how fast stars arrive.
// It is picked before the loop starts.
type Difficulty int

const (
	Easy Difficulty = iota
	Normal
	Hard
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Normal:
		return "normal"
	case Hard:
		return "hard"
	}
	return fmt.Sprintf("Difficulty(%d)", int(d))
}

// ParseDifficulty accepts a name or the 1-3 menu number.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "easy":
		return Easy, nil
	case "", "2", "normal":
		return Normal, nil
	case "3", "hard":
		return Hard, nil
	}
	return Normal, fmt.Errorf("unknown difficulty %q", s)
}

type scaling struct {
	cooldown float64 // Laser cooldown multiplier
	interval float64 // Target spawn interval multiplier
	speed    float64 // Fall speed multiplier
}

var difficultyScaling = map[Difficulty]scaling{
	Easy:   {cooldown: 0.8, interval: 1.4, speed: 0.8},
	Normal: {cooldown: 1, interval: 1, speed: 1},
	Hard:   {cooldown: 1.25, interval: 0.7, speed: 1.3},
}

// Apply returns t scaled for the difficulty.
func (d Difficulty) Apply(t Tuning) Tuning {
	s, ok := difficultyScaling[d]
	if !ok {
		return t
	}
	t.LaserCooldownMs = int64(math.Round(float64(t.LaserCooldownMs) * s.cooldown))
	t.SpawnIntervalMs = int64(math.Round(float64(t.SpawnIntervalMs) * s.interval))
	t.Target.FallSpeedMin *= s.speed
	t.Target.FallSpeedMax *= s.speed
	return t
}

// Load returns the named preset scaled for the named difficulty.
func Load(preset, difficulty string) (Tuning, error) {
	t, err := Preset(preset)
	if err != nil {
		return Tuning{}, err
	}
	d, err := ParseDifficulty(difficulty)
	if err != nil {
		return Tuning{}, err
	}
	t = d.Apply(t)
	if d != Normal {
		t.Name += " (" + d.String() + ")"
	}
	return t, t.Validate()
}
