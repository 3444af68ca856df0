package movie

import (
	"strings"
	"testing"
)

func TestTimeBarMarkerMonotonic(t *testing.T) {
	tb, err := NewTimeBar(100, 30)
	if err != nil {
		t.Fatalf("NewTimeBar failed: %v", err)
	}

	prev := -1
	for frame := 0; frame <= 100; frame++ {
		pos := tb.MarkerPosition(frame)
		if pos < prev {
			t.Fatalf("Marker moved backwards at frame %d: %d -> %d", frame, prev, pos)
		}
		if pos > tb.internalLength-1 {
			t.Fatalf("Marker at frame %d overwrites the end decorator: %d", frame, pos)
		}
		prev = pos
	}
}

func TestTimeBarRender(t *testing.T) {
	tb, err := NewTimeBar(10, 22)
	if err != nil {
		t.Fatalf("NewTimeBar failed: %v", err)
	}

	bar := tb.Render(0)
	if len(bar) != 22 {
		t.Errorf("Expected bar length 22, got %d", len(bar))
	}
	if !strings.HasPrefix(bar, "<") || !strings.HasSuffix(bar, ">") {
		t.Errorf("Decorators missing: %q", bar)
	}
	if strings.Count(bar, "o") != 1 {
		t.Errorf("Expected exactly one marker: %q", bar)
	}

	// На последнем кадре маркер прижат к правому краю, но декоратор цел.
	last := tb.Render(10)
	if !strings.HasSuffix(last, "o>") {
		t.Errorf("Marker should sit against the right decorator: %q", last)
	}
}

func TestTimeBarTooShort(t *testing.T) {
	if _, err := NewTimeBar(10, 2); err == nil {
		t.Error("Expected error for a bar shorter than its decorators")
	}
}
