package client

import (
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"doudizhu-fe/internal/anim"
	"doudizhu-fe/internal/card"
	"doudizhu-fe/internal/countdown"
	"doudizhu-fe/internal/protocol"
	"doudizhu-fe/internal/store"
	"doudizhu-fe/internal/view"
)

type fakeCues struct {
	deal, play, pass, bomb, rocket, win, lose atomic.Int32
}

func (f *fakeCues) Deal()     { f.deal.Add(1) }
func (f *fakeCues) PlayCard() { f.play.Add(1) }
func (f *fakeCues) Pass()     { f.pass.Add(1) }
func (f *fakeCues) Bomb()     { f.bomb.Add(1) }
func (f *fakeCues) Rocket()   { f.rocket.Add(1) }
func (f *fakeCues) Win()      { f.win.Add(1) }
func (f *fakeCues) Lose()     { f.lose.Add(1) }

type harness struct {
	store   *store.Store
	port    *view.Port
	cues    *fakeCues
	restart *countdown.Manager
	sent    chan any
	d       *Dispatcher
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	port := view.NewPort()
	st := store.New()
	cues := &fakeCues{}
	restart := countdown.New(time.Millisecond, nil)
	sent := make(chan any, 8)

	fx := anim.NewWithTimings(port, time.Millisecond, 0, time.Millisecond, time.Millisecond, 0)

	d := NewDispatcher(st, port, fx, cues, restart, func(v any) { sent <- v })

	return &harness{
		store:   st,
		port:    port,
		cues:    cues,
		restart: restart,
		sent:    sent,
		d:       d,
	}
}

func wrap(tag string, payload any) protocol.EventWrapper {
	return protocol.EventWrapper{
		Type: tag,
		Raw:  mustMarshal(payload),
	}
}

func dealStart() protocol.EventWrapper {
	return wrap(protocol.EVT_DEAL_START, protocol.DealStartEvent{
		Players: []protocol.PlayerInfo{
			{ID: 0, Name: "A"},
			{ID: 1, Name: "B"},
			{ID: 2, Name: "C"},
		},
	})
}

func TestFullRoundScenario(t *testing.T) {
	h := newHarness(t)

	// 发牌开始：三家空手牌、阶段为发牌中、历史为空
	h.d.Dispatch(dealStart())

	if got := h.port.Get(view.RegionPhase); got != "发牌中" {
		t.Fatalf("phase label after deal_start = %q", got)
	}
	for seat := 0; seat < 3; seat++ {
		if p := h.store.Player(seat); p.HandCount != 0 {
			t.Fatalf("seat %d should start empty, got %d", seat, p.HandCount)
		}
	}
	if len(h.store.History()) != 0 {
		t.Fatalf("history should start empty")
	}

	// 17×3 逐张发牌
	for i := 0; i < 17; i++ {
		for seat := 0; seat < 3; seat++ {
			h.d.Dispatch(wrap(protocol.EVT_DEAL_CARD, protocol.DealCardEvent{
				PlayerID: seat,
				Card:     card.Card{Rank: 3 + i%12, Suit: "♠"},
			}))
		}
	}

	for seat := 0; seat < 3; seat++ {
		if p := h.store.Player(seat); p.HandCount != 17 {
			t.Fatalf("seat %d should hold 17 cards, got %d", seat, p.HandCount)
		}
		if got := h.port.Get(view.RegionCount(seat)); got != "17张" {
			t.Fatalf("seat %d count label = %q", seat, got)
		}
	}
	if got := h.cues.deal.Load(); got != 51 {
		t.Fatalf("deal cue should fire per card, got %d", got)
	}

	// 地主确定：倍数显示叫分底值，处理器等翻牌结束才返回
	h.d.Dispatch(wrap(protocol.EVT_LANDLORD, protocol.LandlordEvent{
		Players: []protocol.SeatStatus{
			{ID: 0, Role: "LANDLORD", HandSize: 20},
			{ID: 1, Role: "FARMER", HandSize: 17},
			{ID: 2, Role: "FARMER", HandSize: 17},
		},
		HighestBid: 3,
		DizhuCards: []card.Card{{Rank: 17, Suit: "🃏"}},
	}))

	if got := h.port.Get(view.RegionMultiplier); got != "倍数: 3" {
		t.Fatalf("multiplier label = %q", got)
	}
	if got := h.store.Player(0).HandCount; got != 20 {
		t.Fatalf("landlord should hold 20, got %d", got)
	}
	if got := h.port.Get(view.RegionCount(0)); got != "20张" {
		t.Fatalf("landlord count label = %q", got)
	}
	// Dispatch 已返回，翻牌必然完成
	if got := h.port.Get(view.RegionDizhuCards); strings.Contains(got, "🂠") || !strings.Contains(got, "大王") {
		t.Fatalf("bottom cards should be fully revealed, got %q", got)
	}

	// 王炸：倍数翻倍，火箭音效，历史加一条
	h.d.Dispatch(wrap(protocol.EVT_PLAY, protocol.PlayEvent{
		PlayerID: 0,
		Cards: []card.Card{
			{Rank: 16, Suit: "🃏"},
			{Rank: 17, Suit: "🃏"},
		},
		HandSize: 18,
		IsBomb:   true,
		HandType: "火箭",
	}))

	if got := h.store.Multiplier(); got != 6 {
		t.Fatalf("rocket should double multiplier to 6, got %d", got)
	}
	if got := h.port.Get(view.RegionMultiplier); got != "倍数: 6" {
		t.Fatalf("multiplier label = %q", got)
	}
	if got := h.cues.rocket.Load(); got != 1 {
		t.Fatalf("rocket cue should fire once, got %d", got)
	}
	if got := len(h.store.History()); got != 1 {
		t.Fatalf("history should have one entry, got %d", got)
	}

	// 结算：弹窗可见，自动开始倒计时启动，到期发送开始意图
	h.d.Dispatch(wrap(protocol.EVT_RESULT, protocol.ResultEvent{
		WinnerName:       "A",
		WinnerIsLandlord: true,
		Scores: []protocol.ScoreLine{
			{Name: "A", Role: "LANDLORD", Score: 12},
			{Name: "B", Role: "FARMER", Score: -6},
			{Name: "C", Role: "FARMER", Score: -6},
		},
		Multiplier: 6,
		BombCount:  1,
	}))

	if !h.port.Flag(view.FlagResultModal) {
		t.Fatalf("result modal should be visible")
	}
	if !h.restart.Active() {
		t.Fatalf("restart countdown should be running")
	}
	if got := h.cues.win.Load(); got != 1 {
		t.Fatalf("win cue should fire once, got %d", got)
	}
	if got := h.store.Phase(); got != store.PHASE_FINISHED {
		t.Fatalf("phase should be finished, got %q", got)
	}

	select {
	case v := <-h.sent:
		intent, ok := v.(protocol.StartIntent)
		if !ok || intent.Action != "start" {
			t.Fatalf("expiry should send a start intent, got %#v", v)
		}
	case <-time.After(time.Second):
		t.Fatalf("restart countdown never sent the start intent")
	}

	if h.port.Flag(view.FlagResultModal) {
		t.Fatalf("modal should hide on countdown expiry")
	}
}

func TestDealStartCancelsRestartCountdown(t *testing.T) {
	h := newHarness(t)

	h.d.Dispatch(wrap(protocol.EVT_RESULT, protocol.ResultEvent{
		WinnerName: "B",
		Scores: []protocol.ScoreLine{
			{Name: "A", Role: "LANDLORD", Score: -6},
			{Name: "B", Role: "FARMER", Score: 3},
			{Name: "C", Role: "FARMER", Score: 3},
		},
		Multiplier: 3,
	}))

	if !h.restart.Active() {
		t.Fatalf("restart countdown should be running after result")
	}

	h.d.Dispatch(dealStart())

	if h.restart.Active() {
		t.Fatalf("deal_start must cancel the restart countdown")
	}
	if h.port.Flag(view.FlagResultModal) {
		t.Fatalf("deal_start must hide the result modal")
	}

	// 新局开始后倒计时不得再触发重开
	time.Sleep(50 * time.Millisecond)
	select {
	case v := <-h.sent:
		t.Fatalf("cancelled countdown must not send intents, got %#v", v)
	default:
	}
}

func TestUnknownEventIgnored(t *testing.T) {
	h := newHarness(t)

	h.d.Dispatch(protocol.EventWrapper{
		Type: "telemetry",
		Raw:  []byte(`{"type":"telemetry","foo":1}`),
	})

	if got := h.port.Get(view.RegionPhase); got != "" {
		t.Fatalf("unknown event must not touch the view, got %q", got)
	}
}

func TestMalformedPayloadIgnored(t *testing.T) {
	h := newHarness(t)

	h.d.Dispatch(protocol.EventWrapper{
		Type: protocol.EVT_BID,
		Raw:  []byte(`{"type":"bid","player_id":"not-a-number"}`),
	})

	// 坏载荷被丢弃，后续消息照常处理
	h.d.Dispatch(dealStart())
	if got := h.port.Get(view.RegionPhase); got != "发牌中" {
		t.Fatalf("dispatch should keep working after a bad payload, got %q", got)
	}
}

func TestBidRendering(t *testing.T) {
	h := newHarness(t)
	h.d.Dispatch(dealStart())

	h.d.Dispatch(wrap(protocol.EVT_BID, protocol.BidEvent{PlayerID: 1, Bid: 2}))

	if got := h.port.Get(view.RegionAction(1)); !strings.Contains(got, "叫 2 分") {
		t.Fatalf("bid action = %q", got)
	}
	if !h.port.Flag(view.FlagSeatActive(1)) {
		t.Fatalf("bidder should be highlighted")
	}

	h.d.Dispatch(wrap(protocol.EVT_BID, protocol.BidEvent{PlayerID: 2, Bid: 0}))
	if got := h.port.Get(view.RegionAction(2)); !strings.Contains(got, "不叫") {
		t.Fatalf("declined bid action = %q", got)
	}
}

func TestPassAppendsHistory(t *testing.T) {
	h := newHarness(t)
	h.d.Dispatch(dealStart())

	h.d.Dispatch(wrap(protocol.EVT_PASS, protocol.PassEvent{PlayerID: 2, Strategy: "忍一手"}))

	history := h.store.History()
	if len(history) != 1 || !history[0].IsPass {
		t.Fatalf("pass should append a pass entry, got %+v", history)
	}
	if got := h.cues.pass.Load(); got != 1 {
		t.Fatalf("pass cue should fire once, got %d", got)
	}
	if got := h.port.Get(view.RegionAction(2)); !strings.Contains(got, "不出") {
		t.Fatalf("pass action = %q", got)
	}
}

func TestThinkingAndCountdownTimers(t *testing.T) {
	h := newHarness(t)
	h.d.Dispatch(dealStart())

	h.d.Dispatch(wrap(protocol.EVT_THINKING, protocol.ThinkingEvent{
		PlayerID:  1,
		Phase:     "bid",
		Total:     3,
		Remaining: 3,
	}))

	if got := h.port.Get(view.RegionTimer(1)); got != "3秒" {
		t.Fatalf("thinking should seed the timer label, got %q", got)
	}
	if got := h.port.Get(view.RegionPhase); got != "叫地主阶段" {
		t.Fatalf("thinking should set the phase label, got %q", got)
	}
	if h.port.Flag(view.FlagTimerUrgent(1)) {
		t.Fatalf("3 seconds left is not urgent")
	}

	h.d.Dispatch(wrap(protocol.EVT_COUNTDOWN, protocol.CountdownEvent{PlayerID: 1, Remaining: 1}))

	if got := h.port.Get(view.RegionTimer(1)); got != "1秒" {
		t.Fatalf("countdown should update in place, got %q", got)
	}
	if !h.port.Flag(view.FlagTimerUrgent(1)) {
		t.Fatalf("final second should be flagged urgent")
	}

	h.d.Dispatch(wrap(protocol.EVT_COUNTDOWN, protocol.CountdownEvent{PlayerID: 1, Remaining: 0}))

	if got := h.port.Get(view.RegionTimer(1)); got != "" {
		t.Fatalf("zero should clear the timer label, got %q", got)
	}
	if h.port.Flag(view.FlagTimerUrgent(1)) {
		t.Fatalf("urgency should clear with the label")
	}
}

func TestDealDoneKeepsIncrementalHands(t *testing.T) {
	h := newHarness(t)
	h.d.Dispatch(dealStart())

	for i := 0; i < 3; i++ {
		h.d.Dispatch(wrap(protocol.EVT_DEAL_CARD, protocol.DealCardEvent{
			PlayerID: 0,
			Card:     card.Card{Rank: 3 + i, Suit: "♦"},
		}))
	}

	rendered := h.port.Get(view.RegionHand(0))

	// 无手牌载荷、数量一致：保留增量构建的结果
	h.d.Dispatch(wrap(protocol.EVT_DEAL_DONE, protocol.DealDoneEvent{
		Players: []protocol.SeatStatus{
			{ID: 0, HandSize: 3},
			{ID: 1, HandSize: 0},
			{ID: 2, HandSize: 0},
		},
		DizhuCards: []card.Card{{Rank: 5, Suit: "♠"}},
	}))

	if got := h.port.Get(view.RegionHand(0)); got != rendered {
		t.Fatalf("deal_done without hands should keep the incremental render")
	}
	if got := h.store.Phase(); got != store.PHASE_BIDDING {
		t.Fatalf("phase should be bidding, got %q", got)
	}

	// 底牌存下来了，但只渲染成背面占位
	if got := h.port.Get(view.RegionDizhuCards); !strings.Contains(got, "🂠") {
		t.Fatalf("bottom cards should stay face down, got %q", got)
	}
	if got := len(h.store.BottomCards()); got != 1 {
		t.Fatalf("bottom cards should be stored, got %d", got)
	}
}

func TestDealDoneReplacesWithAuthoritativeHand(t *testing.T) {
	h := newHarness(t)
	h.d.Dispatch(dealStart())

	h.d.Dispatch(wrap(protocol.EVT_DEAL_CARD, protocol.DealCardEvent{
		PlayerID: 1,
		Card:     card.Card{Rank: 3, Suit: "♦"},
	}))

	authoritative := []card.Card{
		{Rank: card.RankAce, Suit: "♠"},
		{Rank: card.RankTwo, Suit: "♥"},
	}
	h.d.Dispatch(wrap(protocol.EVT_DEAL_DONE, protocol.DealDoneEvent{
		Players: []protocol.SeatStatus{
			{ID: 1, HandSize: 2, Hand: authoritative},
		},
	}))

	p := h.store.Player(1)
	if p.HandCount != 2 || len(p.Hand) != 2 {
		t.Fatalf("authoritative hand should replace the buffer, got %+v", p)
	}
}

func TestResultTotalsFallBackToRoundScores(t *testing.T) {
	h := newHarness(t)

	h.d.Dispatch(wrap(protocol.EVT_RESULT, protocol.ResultEvent{
		WinnerName: "C",
		Scores: []protocol.ScoreLine{
			{Name: "A", Role: "LANDLORD", Score: -4},
			{Name: "B", Role: "FARMER", Score: 2},
			{Name: "C", Role: "FARMER", Score: 2},
		},
		Multiplier: 2,
	}))

	scores := h.store.Scores()
	if len(scores) != 3 {
		t.Fatalf("want 3 score entries, got %d", len(scores))
	}
	for _, s := range scores {
		if s.TotalScore != s.RoundScore {
			t.Fatalf("missing totals should fall back to round scores, got %+v", s)
		}
	}

	// 农民获胜放失利音（对地主而言），不是胜利琶音
	if got := h.cues.lose.Load(); got != 1 {
		t.Fatalf("farmer win should trigger the lose cue, got %d", got)
	}
}

func TestManualRestart(t *testing.T) {
	h := newHarness(t)

	h.d.Dispatch(wrap(protocol.EVT_RESULT, protocol.ResultEvent{
		WinnerName: "A",
		Scores:     []protocol.ScoreLine{{Name: "A", Role: "LANDLORD", Score: 6}},
		Multiplier: 3,
	}))

	h.d.RequestStart()

	if h.restart.Active() {
		t.Fatalf("manual restart must cancel the countdown")
	}
	if h.port.Flag(view.FlagResultModal) {
		t.Fatalf("manual restart must hide the modal")
	}

	select {
	case v := <-h.sent:
		if intent, ok := v.(protocol.StartIntent); !ok || intent.Action != "start" {
			t.Fatalf("manual restart should send a start intent, got %#v", v)
		}
	case <-time.After(time.Second):
		t.Fatalf("manual restart never sent the start intent")
	}
}
