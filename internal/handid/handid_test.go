package handid

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
)

func TestNewShape(t *testing.T) {
	t.Parallel()
	for i := 0; i < 100; i++ {
		id := New()
		if len(id) != 26 {
			t.Fatalf("Expected 26 characters, got %d (%s)", len(id), id)
		}
		for _, c := range id {
			if !strings.ContainsRune(alphabet, c) {
				t.Fatalf("Character %c outside the alphabet in %s", c, id)
			}
		}
	}
}

func TestNewUnique(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := New()
		if seen[id] {
			t.Fatalf("Duplicate ID %s", id)
		}
		seen[id] = true
	}
}

func TestGeneratorReproducible(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)

	a := NewGenerator(clock, rand.New(rand.NewSource(42))).New()
	b := NewGenerator(clock, rand.New(rand.NewSource(42))).New()
	c := NewGenerator(clock, rand.New(rand.NewSource(43))).New()

	if a != b {
		t.Errorf("Same clock and seed must reproduce the ID: %s vs %s", a, b)
	}
	if a == c {
		t.Errorf("A different seed should change the tail: %s", a)
	}
}

func TestIDsSortByGenerationTime(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	gen := NewGenerator(clock, rand.New(rand.NewSource(1)))

	first := gen.New()
	clock.Advance(time.Second)
	second := gen.New()

	if !(first < second) {
		t.Errorf("Later IDs must sort after earlier ones: %s vs %s", first, second)
	}
}
