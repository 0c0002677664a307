package config

import "testing"

func TestPresetsValidate(t *testing.T) {
	for _, name := range []string{"classic", "barrage"} {
		tun, err := Preset(name)
		if err != nil {
			t.Fatalf("Preset(%q): %v", name, err)
		}
		if err := tun.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
		for _, d := range []Difficulty{Easy, Normal, Hard} {
			if err := d.Apply(tun).Validate(); err != nil {
				t.Errorf("%s/%s: %v", name, d, err)
			}
		}
	}
	if _, err := Preset("nope"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestDifficultyApply(t *testing.T) {
	base := Classic()
	hard := Hard.Apply(base)
	easy := Easy.Apply(base)

	if hard.SpawnIntervalMs >= base.SpawnIntervalMs || easy.SpawnIntervalMs <= base.SpawnIntervalMs {
		t.Errorf("spawn interval not scaled: easy=%d base=%d hard=%d",
			easy.SpawnIntervalMs, base.SpawnIntervalMs, hard.SpawnIntervalMs)
	}
	if Normal.Apply(base).LaserCooldownMs != base.LaserCooldownMs {
		t.Error("normal difficulty changed the cooldown")
	}
	if base.Target.FallSpeedMax != 3.0 {
		t.Error("Apply mutated the base tuning")
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := map[string]Difficulty{"1": Easy, "easy": Easy, "": Normal, "2": Normal, "HARD": Hard, "3": Hard}
	for in, want := range tests {
		got, err := ParseDifficulty(in)
		if err != nil || got != want {
			t.Errorf("ParseDifficulty(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDifficulty("insane"); err == nil {
		t.Error("expected error")
	}
}

func TestValidateRejectsBrokenTuning(t *testing.T) {
	tun := Classic()
	tun.Lives = 0
	if tun.Validate() == nil {
		t.Error("zero lives accepted")
	}
	tun = Classic()
	tun.Target.RadiusMin = 50
	if tun.Validate() == nil {
		t.Error("empty radius range accepted")
	}
}

func TestLoad(t *testing.T) {
	tun, err := Load("barrage", "hard")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := Hard.Apply(Barrage()).SpawnIntervalMs; tun.SpawnIntervalMs != want {
		t.Errorf("SpawnIntervalMs = %d, want %d", tun.SpawnIntervalMs, want)
	}
	if tun.Name != Barrage().Name+" (hard)" {
		t.Errorf("Name = %q", tun.Name)
	}

	tun, err = Load("", "")
	if err != nil || tun.Name != Classic().Name {
		t.Errorf("Load defaults = %q, %v", tun.Name, err)
	}

	if _, err := Load("classic", "insane"); err == nil {
		t.Error("expected error for unknown difficulty")
	}
	if _, err := Load("arcade", "easy"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
