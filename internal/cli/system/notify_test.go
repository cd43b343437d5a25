package system

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/timecompass/internal/cli"
	"github.com/julianstephens/timecompass/internal/constants"
	"github.com/julianstephens/timecompass/internal/notifier"
)

type fakeSender struct {
	available bool
	err       error
	sent      [][2]string
}

func (f *fakeSender) Available() bool { return f.available }

func (f *fakeSender) Send(title, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, [2]string{title, body})
	return nil
}

func TestNotifyCmd_DefaultsToFocusText(t *testing.T) {
	sender := &fakeSender{available: true}
	ctx := &cli.Context{Out: &bytes.Buffer{}, Sender: sender}

	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(sender.sent))
	}
	if got := sender.sent[0]; got[0] != constants.FocusFinishedTitle || got[1] != constants.FocusFinishedBody {
		t.Errorf("sent %q, want the focus-finished text", got)
	}
}

func TestNotifyCmd_CustomText(t *testing.T) {
	sender := &fakeSender{available: true}
	ctx := &cli.Context{Out: &bytes.Buffer{}, Sender: sender}

	if err := (&NotifyCmd{Title: "Hi", Message: "there"}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if got := sender.sent[0]; got != [2]string{"Hi", "there"} {
		t.Errorf("sent %q", got)
	}
}

func TestNotifyCmd_DryRun(t *testing.T) {
	sender := &fakeSender{}
	var out bytes.Buffer
	ctx := &cli.Context{Out: &out, Sender: sender}

	if err := (&NotifyCmd{DryRun: true, Message: "body"}).Run(ctx); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Error("dry run must not send")
	}
	if !strings.Contains(out.String(), "[DryRun] "+constants.FocusFinishedTitle+": body") {
		t.Errorf("unexpected output: %q", out.String())
	}
}

func TestNotifyCmd_TrayNotRunning(t *testing.T) {
	for _, ctx := range []*cli.Context{
		{Out: &bytes.Buffer{}},
		{Out: &bytes.Buffer{}, Sender: &fakeSender{}},
	} {
		err := (&NotifyCmd{}).Run(ctx)
		if !errors.Is(err, notifier.ErrTrayNotRunning) {
			t.Errorf("error = %v, want ErrTrayNotRunning", err)
		}
	}
}

func TestNotifyCmd_SendError(t *testing.T) {
	ctx := &cli.Context{Out: &bytes.Buffer{}, Sender: &fakeSender{available: true, err: errors.New("boom")}}
	if err := (&NotifyCmd{}).Run(ctx); err == nil || !strings.Contains(err.Error(), "boom") {
		t.Errorf("error = %v, want the send failure", err)
	}
}
