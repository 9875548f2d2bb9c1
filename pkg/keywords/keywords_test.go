package keywords

import "testing"

func TestExtractRanksByFrequency(t *testing.T) {
	text := "The compiler parses the source. The compiler then optimizes the source. " +
		"Finally the compiler emits machine code."

	got := Extract(text, 3)
	if len(got) == 0 {
		t.Fatal("Expected keywords, got none")
	}
	if got[0] != "compiler" {
		t.Errorf("Expected most frequent noun first, got %v", got)
	}
}

func TestExtractFiltersWordClasses(t *testing.T) {
	text := "Quickly and very beautifully, the engine processes streams."
	got := Extract(text, 10)

	for _, kw := range got {
		if kw == "Quickly" || kw == "beautifully" || kw == "very" || kw == "and" || kw == "the" {
			t.Errorf("Non-noun/verb token leaked into keywords: %q", kw)
		}
	}
}

func TestExtractRespectsMax(t *testing.T) {
	text := "cats dogs birds fish horses sheep goats cows pigs ducks geese llamas"
	got := Extract(text, 3)
	if len(got) > 3 {
		t.Errorf("Expected at most 3 keywords, got %d: %v", len(got), got)
	}
}

func TestExtractEmptyInput(t *testing.T) {
	if got := Extract("", 5); len(got) != 0 {
		t.Errorf("Expected no keywords for empty input, got %v", got)
	}
}

func TestExtractDeterministic(t *testing.T) {
	text := "Servers route packets. Routers forward packets. Switches bridge frames."
	a := Extract(text, 5)
	b := Extract(text, 5)

	if len(a) != len(b) {
		t.Fatalf("Non-deterministic length: %v vs %v", a, b)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Non-deterministic order at %d: %v vs %v", i, a, b)
		}
	}
}
