package focuspanel

import (
	"strings"
	"testing"

	"github.com/julianstephens/timecompass/internal/focus"
)

func TestStatus(t *testing.T) {
	timer := focus.NewTimer(25, nil)
	if got := Status(timer); got != "Ready to focus" {
		t.Errorf("idle Status = %q", got)
	}

	timer.Start()
	for range 61 {
		timer.Tick()
	}
	if got, want := Status(timer), "23 min 59 s remaining, stay focused"; got != want {
		t.Errorf("running Status = %q, want %q", got, want)
	}

	timer.Pause()
	if got := Status(timer); got != "Paused" {
		t.Errorf("paused Status = %q", got)
	}
}

func TestView_ShowsCountdown(t *testing.T) {
	timer := focus.NewTimer(1, nil)
	timer.Start()
	timer.Tick()

	m := New()
	m.SetSize(80, 20)
	view := m.View(timer)
	if !strings.Contains(view, "00:59") {
		t.Errorf("view missing countdown:\n%s", view)
	}
	if !strings.Contains(view, "0 min 59 s remaining") {
		t.Errorf("view missing running status:\n%s", view)
	}
}
