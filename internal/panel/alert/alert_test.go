package alert

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func next(t *testing.T, ch <-chan Alert) Alert {
	t.Helper()
	select {
	case a := <-ch:
		return a
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for alert")
		panic("unreachable")
	}
}

func TestNotifier_KindsAndMessages(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	alerts, unsub := n.Subscribe()
	defer unsub()

	n.Success("saved")
	n.Validation("too short")
	n.BusinessRule("cannot delete")
	n.Remote("server down")

	want := []Alert{
		{Kind: KindSuccess, Message: "saved"},
		{Kind: KindValidation, Message: "too short"},
		{Kind: KindBusinessRule, Message: "cannot delete"},
		{Kind: KindRemote, Message: "server down"},
	}
	for _, w := range want {
		if got := next(t, alerts); got != w {
			t.Errorf("got %+v, want %+v", got, w)
		}
	}
}

func TestNotifier_MultipleSubscribers(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	a, unsubA := n.Subscribe()
	defer unsubA()
	b, unsubB := n.Subscribe()
	defer unsubB()

	n.Success("hello")

	if got := next(t, a); got.Message != "hello" {
		t.Errorf("subscriber a got %+v", got)
	}
	if got := next(t, b); got.Message != "hello" {
		t.Errorf("subscriber b got %+v", got)
	}
}

func TestNotifier_UnsubscribedMisses(t *testing.T) {
	n := NewNotifier(zerolog.Nop())
	alerts, unsub := n.Subscribe()
	unsub()

	n.Success("after unsubscribe")

	select {
	case _, ok := <-alerts:
		if ok {
			t.Error("closed subscription must not receive alerts")
		}
	case <-time.After(50 * time.Millisecond):
	}
}
