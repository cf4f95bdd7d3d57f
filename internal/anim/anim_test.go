package anim

import (
	"strings"
	"testing"
	"time"

	"doudizhu-fe/internal/card"
	"doudizhu-fe/internal/view"
)

func zeroScheduler(port *view.Port) *Scheduler {
	return NewWithTimings(port, time.Millisecond, 0, time.Millisecond, time.Millisecond, 0)
}

func TestRevealBottomCompletes(t *testing.T) {
	port := view.NewPort()
	s := zeroScheduler(port)

	cards := []card.Card{
		{Rank: card.RankBigJoker, Suit: "🃏"},
		{Rank: card.RankAce, Suit: "♠"},
		{Rank: 3, Suit: "♥"},
	}

	select {
	case <-s.RevealBottom(cards):
	case <-time.After(time.Second):
		t.Fatalf("reveal did not complete")
	}

	got := port.Get(view.RegionDizhuCards)
	if strings.Contains(got, "🂠") {
		t.Fatalf("all cards should end face up, got %q", got)
	}

	if !strings.Contains(got, "大王") || !strings.Contains(got, "♠A") {
		t.Fatalf("revealed cards missing, got %q", got)
	}
}

func TestRevealBottomEmpty(t *testing.T) {
	port := view.NewPort()
	s := zeroScheduler(port)

	select {
	case <-s.RevealBottom(nil):
	case <-time.After(time.Second):
		t.Fatalf("empty reveal should finish immediately")
	}
}

func TestCardFlightClearsItself(t *testing.T) {
	port := view.NewPort()
	s := zeroScheduler(port)

	s.CardFlight(1)
	if !port.Flag(view.FlagCardFlight(1)) {
		t.Fatalf("flight flag should be set right away")
	}

	deadline := time.Now().Add(time.Second)
	for port.Flag(view.FlagCardFlight(1)) {
		if time.Now().After(deadline) {
			t.Fatalf("flight flag never cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestShakeOverlapSafe(t *testing.T) {
	port := view.NewPort()
	s := zeroScheduler(port)

	// 重叠触发不能互相干扰，最终标记要被清掉
	s.Shake()
	s.Shake()
	s.Shake()

	deadline := time.Now().Add(time.Second)
	for port.Flag(view.FlagShake) {
		if time.Now().After(deadline) {
			t.Fatalf("shake flag never cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
