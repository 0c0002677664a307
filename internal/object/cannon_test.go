package object

import (
	"testing"

	"github.com/tomz197/starfall/internal/input"
)

var testCannonSpec = CannonSpec{
	Speed:        7,
	Width:        68,
	Height:       22,
	BaseOffset:   48,
	EdgeMargin:   8,
	MuzzleOffset: 30,
	BarrelWidth:  10,
	BarrelHeight: 28,
	Inset:        6,
}

func TestCannonClampsToField(t *testing.T) {
	c := NewCannon(testCannonSpec, testField, 3)
	if c.X != 450 || c.Y != 592 {
		t.Fatalf("cannon starts at (%v, %v)", c.X, c.Y)
	}
	for i := 0; i < 200; i++ {
		c.Update(input.State{Left: true}, testField)
	}
	if c.X != 42 {
		t.Errorf("left clamp = %v, want 42", c.X)
	}
	for i := 0; i < 200; i++ {
		c.Update(input.State{Right: true}, testField)
	}
	if c.X != 858 {
		t.Errorf("right clamp = %v, want 858", c.X)
	}
	c.Update(input.State{Left: true, Right: true}, testField)
	if c.X != 858 {
		t.Errorf("both directions moved the cannon to %v", c.X)
	}
}

func TestCannonLivesNeverNegative(t *testing.T) {
	c := NewCannon(testCannonSpec, testField, 1)
	if !c.LoseLife() {
		t.Fatal("losing the last life should report dead")
	}
	c.LoseLife()
	if c.Lives != 0 {
		t.Errorf("lives = %d, want 0", c.Lives)
	}
}

func TestCannonScoreMonotonic(t *testing.T) {
	c := NewCannon(testCannonSpec, testField, 3)
	c.AddScore(10)
	c.AddScore(-5)
	if c.Score != 10 {
		t.Errorf("score = %d, want 10", c.Score)
	}
}
