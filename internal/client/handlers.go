package client

import (
	"fmt"
	"strings"
	"time"

	"doudizhu-fe/internal/protocol"
	"doudizhu-fe/internal/store"
	"doudizhu-fe/internal/view"
)

func countText(n int) string {
	return fmt.Sprintf("%d张", n)
}

func multiplierText(m int) string {
	return fmt.Sprintf("倍数: %d", m)
}

// setSeatTimer 更新座位的剩余时间显示，最后 1 秒打紧急标记。
// 倒计时本身由服务端驱动，这里只展示推送来的读数。
func (d *Dispatcher) setSeatTimer(seat, remaining int) {
	if seat < 0 || seat >= store.SeatCount {
		return
	}

	if remaining <= 0 {
		d.port.Set(view.RegionTimer(seat), "")
		d.port.SetFlag(view.FlagTimerUrgent(seat), false)
		return
	}

	d.port.Set(view.RegionTimer(seat), fmt.Sprintf("%d秒", remaining))
	d.port.SetFlag(view.FlagTimerUrgent(seat), remaining <= 1)
}

// scoreboardText 渲染跨局累计分行，totals 缺失时返回空串
func scoreboardText(gameCount int, names []string, totals []int) string {
	if len(totals) == 0 || len(totals) != len(names) {
		return ""
	}

	parts := make([]string, 0, len(names))
	for i, name := range names {
		parts = append(parts, fmt.Sprintf("%s %d分", name, totals[i]))
	}

	line := "累计 " + strings.Join(parts, " · ")
	if gameCount > 0 {
		line = fmt.Sprintf("第%d局 │ %s", gameCount, line)
	}

	return line
}

// 发牌开始：取消自动开始倒计时，重置整桌
func (d *Dispatcher) onDealStart(ev *protocol.DealStartEvent) {
	d.restart.Cancel()

	names := make(map[int]string, len(ev.Players))
	for _, p := range ev.Players {
		names[p.ID] = p.Name
	}
	d.store.ResetForDeal(names)

	d.port.Set(view.RegionPhase, "发牌中")
	d.port.Set(view.RegionMultiplier, "")
	d.port.SetFlag(view.FlagResultModal, false)
	d.port.ClearActions()
	d.port.HighlightSeat(-1)
	d.port.Set(view.RegionDizhuCards, "")
	d.port.Set(view.RegionHistory, "")

	for _, p := range ev.Players {
		if p.ID < 0 || p.ID >= store.SeatCount {
			continue
		}

		d.port.Set(view.RegionName(p.ID), p.Name)
		d.port.Set(view.RegionRole(p.ID), "")
		d.port.Set(view.RegionHand(p.ID), "")
		d.port.Set(view.RegionCount(p.ID), countText(0))
		d.setSeatTimer(p.ID, 0)
	}

	nameList := make([]string, 0, len(ev.Players))
	for _, p := range ev.Players {
		nameList = append(nameList, p.Name)
	}
	if line := scoreboardText(ev.GameCount, nameList, ev.TotalScores); line != "" {
		d.port.Set(view.RegionScoreboard, line)
	}
}

// 逐张发牌：追加到发牌缓冲并重绘该座位
func (d *Dispatcher) onDealCard(ev *protocol.DealCardEvent) {
	cards := d.store.AddDealtCard(ev.PlayerID, ev.Card)
	if cards == nil {
		return
	}

	d.port.Set(view.RegionHand(ev.PlayerID), view.RenderHand(cards))
	d.port.Set(view.RegionCount(ev.PlayerID), countText(len(cards)))

	d.fx.CardFlight(ev.PlayerID)
	d.cues.Deal()
}

// 发牌完成：权威手牌替换增量结果，底牌先以背面占位
func (d *Dispatcher) onDealDone(ev *protocol.DealDoneEvent) {
	d.store.SetPhase(store.PHASE_BIDDING)
	d.port.Set(view.RegionPhase, "叫地主阶段")

	for _, p := range ev.Players {
		if p.ID < 0 || p.ID >= store.SeatCount {
			continue
		}

		switch {
		case len(p.Hand) > 0:
			d.store.SetFullHand(p.ID, p.Hand)
			d.port.Set(view.RegionHand(p.ID), view.RenderHand(p.Hand))

		case d.store.Player(p.ID).HandCount != p.HandSize:
			// 没有手牌载荷且增量结果对不上数量时，数量为准，转背面
			d.store.SetHandCount(p.ID, p.HandSize)
			d.port.Set(view.RegionHand(p.ID), view.RenderBacks(p.HandSize))
		}

		d.port.Set(view.RegionCount(p.ID), countText(p.HandSize))
	}

	if len(ev.DizhuCards) > 0 {
		d.store.SetBottomCards(ev.DizhuCards)
		// 此时还不翻面，地主确定后才逐张翻开
		d.port.Set(view.RegionDizhuCards, view.RenderBacks(len(ev.DizhuCards)))
	}
}

// 旧版兼容：整副手牌一次性下发，本地做逐张发牌动画
func (d *Dispatcher) onDeal(ev *protocol.DealEvent) {
	d.restart.Cancel()

	names := make(map[int]string, len(ev.Players))
	for _, p := range ev.Players {
		names[p.ID] = p.Name
	}
	d.store.ResetForDeal(names)

	d.port.Set(view.RegionPhase, "发牌中")
	d.port.Set(view.RegionMultiplier, "")
	d.port.SetFlag(view.FlagResultModal, false)
	d.port.ClearActions()
	d.port.Set(view.RegionDizhuCards, "")
	d.port.Set(view.RegionHistory, "")

	hasHands := false
	for _, p := range ev.Players {
		if p.ID < 0 || p.ID >= store.SeatCount {
			continue
		}

		d.port.Set(view.RegionName(p.ID), p.Name)
		d.port.Set(view.RegionRole(p.ID), "")
		d.port.Set(view.RegionHand(p.ID), "")
		d.port.Set(view.RegionCount(p.ID), countText(0))

		if len(p.Hand) > 0 {
			hasHands = true
		}
	}

	if hasHands {
		// 发后不管的逐张动画，不阻塞后续消息
		go d.pacedDeal(ev.Players)
		return
	}

	// 没有手牌数据时降级为背面牌
	for _, p := range ev.Players {
		if p.ID < 0 || p.ID >= store.SeatCount {
			continue
		}

		d.store.SetHandCount(p.ID, p.HandSize)
		d.port.Set(view.RegionHand(p.ID), view.RenderBacks(p.HandSize))
		d.port.Set(view.RegionCount(p.ID), countText(p.HandSize))
	}
}

func (d *Dispatcher) pacedDeal(players []protocol.SeatStatus) {
	maxLen := 0
	for _, p := range players {
		if len(p.Hand) > maxLen {
			maxLen = len(p.Hand)
		}
	}

	for i := 0; i < maxLen; i++ {
		for _, p := range players {
			if p.ID < 0 || p.ID >= store.SeatCount || i >= len(p.Hand) {
				continue
			}

			cards := d.store.AddDealtCard(p.ID, p.Hand[i])
			d.port.Set(view.RegionHand(p.ID), view.RenderHand(cards))
			d.port.Set(view.RegionCount(p.ID), countText(len(cards)))
		}

		if step := d.fx.DealStep(); step > 0 {
			time.Sleep(step)
		}
	}
}

// AI 思考开始：高亮座位并挂上初始读数
func (d *Dispatcher) onThinking(ev *protocol.ThinkingEvent) {
	d.port.HighlightSeat(ev.PlayerID)

	switch ev.Phase {
	case "bid":
		d.port.Set(view.RegionPhase, "叫地主阶段")
	case "play":
		d.port.Set(view.RegionPhase, "出牌阶段")
	}

	if ev.PlayerID >= 0 && ev.PlayerID < store.SeatCount {
		d.port.Set(view.RegionAction(ev.PlayerID), "思考中…")
	}

	d.setSeatTimer(ev.PlayerID, ev.Remaining)
}

// 倒计时读数原位更新，计时逻辑完全在服务端
func (d *Dispatcher) onCountdown(ev *protocol.CountdownEvent) {
	d.setSeatTimer(ev.PlayerID, ev.Remaining)
}

// 叫分
func (d *Dispatcher) onBid(ev *protocol.BidEvent) {
	d.port.Set(view.RegionPhase, "叫地主阶段")
	d.port.HighlightSeat(ev.PlayerID)

	if ev.PlayerID < 0 || ev.PlayerID >= store.SeatCount {
		return
	}

	content := view.BidText(ev.Bid)
	if s := view.StrategyText(ev.Strategy); s != "" {
		content += "\n" + s
	}

	d.port.Set(view.RegionAction(ev.PlayerID), content)
	d.setSeatTimer(ev.PlayerID, 0)
}

// 地主确定：这是唯一等待动画完成才返回的处理器，
// 保证底牌翻完之前后续消息不会先被应用
func (d *Dispatcher) onLandlord(ev *protocol.LandlordEvent) {
	d.store.SetPhase(store.PHASE_PLAYING)
	base := d.store.SetBaseBid(ev.HighestBid)

	d.port.Set(view.RegionPhase, "出牌阶段")
	d.port.Set(view.RegionMultiplier, multiplierText(base))
	d.port.ClearActions()
	d.port.HighlightSeat(-1)

	for _, p := range ev.Players {
		if p.ID < 0 || p.ID >= store.SeatCount {
			continue
		}

		d.store.SetRole(p.ID, p.Role)
		d.port.Set(view.RegionRole(p.ID), view.RoleTag(p.Role))

		if len(p.Hand) > 0 {
			d.store.SetFullHand(p.ID, p.Hand)
			d.port.Set(view.RegionHand(p.ID), view.RenderHand(p.Hand))
		} else {
			d.store.SetHandCount(p.ID, p.HandSize)
			d.port.Set(view.RegionHand(p.ID), view.RenderBacks(p.HandSize))
		}

		d.port.Set(view.RegionCount(p.ID), countText(p.HandSize))
		d.setSeatTimer(p.ID, 0)
	}

	d.store.SetBottomCards(ev.DizhuCards)

	<-d.fx.RevealBottom(ev.DizhuCards)
}

// 出牌
func (d *Dispatcher) onPlay(ev *protocol.PlayEvent) {
	d.port.HighlightSeat(ev.PlayerID)

	if ev.PlayerID < 0 || ev.PlayerID >= store.SeatCount {
		return
	}

	// 观众视角：有完整手牌就正面显示，否则按数量显示背面
	if len(ev.Hand) > 0 {
		d.store.SetFullHand(ev.PlayerID, ev.Hand)
		d.port.Set(view.RegionHand(ev.PlayerID), view.RenderHand(ev.Hand))
	} else {
		d.store.SetHandCount(ev.PlayerID, ev.HandSize)
		d.port.Set(view.RegionHand(ev.PlayerID), view.RenderBacks(ev.HandSize))
	}
	d.port.Set(view.RegionCount(ev.PlayerID), countText(ev.HandSize))

	lines := make([]string, 0, 3)
	if ev.HandType != "" {
		lines = append(lines, ev.HandType)
	}
	lines = append(lines, view.RenderHand(ev.Cards))
	if s := view.StrategyText(ev.Strategy); s != "" {
		lines = append(lines, s)
	}
	d.port.Set(view.RegionAction(ev.PlayerID), strings.Join(lines, "\n"))

	if ev.IsBomb {
		m := d.store.DoubleMultiplier()
		d.port.Set(view.RegionMultiplier, multiplierText(m))
		d.fx.Shake()

		if ev.HandType == "火箭" {
			d.cues.Rocket()
		} else {
			d.cues.Bomb()
		}
	} else {
		d.cues.PlayCard()
	}

	d.store.AppendHistory(store.HistoryEntry{
		Seat:     ev.PlayerID,
		Cards:    ev.Cards,
		HandType: ev.HandType,
	})
	d.port.Set(view.RegionHistory, view.RenderHistory(d.store.History()))

	d.setSeatTimer(ev.PlayerID, 0)
}

// 不出
func (d *Dispatcher) onPass(ev *protocol.PassEvent) {
	d.port.HighlightSeat(ev.PlayerID)

	if ev.PlayerID < 0 || ev.PlayerID >= store.SeatCount {
		return
	}

	content := "不出"
	if s := view.StrategyText(ev.Strategy); s != "" {
		content += "\n" + s
	}
	d.port.Set(view.RegionAction(ev.PlayerID), content)

	d.cues.Pass()

	d.store.AppendHistory(store.HistoryEntry{
		Seat:   ev.PlayerID,
		IsPass: true,
	})
	d.port.Set(view.RegionHistory, view.RenderHistory(d.store.History()))

	d.setSeatTimer(ev.PlayerID, 0)
}

// 结算：汇总并弹窗，然后起自动开始倒计时
func (d *Dispatcher) onResult(ev *protocol.ResultEvent) {
	d.store.SetPhase(store.PHASE_FINISHED)
	d.store.SetMultiplier(ev.Multiplier)

	d.port.Set(view.RegionPhase, "对局结束")
	d.port.HighlightSeat(-1)
	for seat := 0; seat < store.SeatCount; seat++ {
		d.setSeatTimer(seat, 0)
	}

	emoji, roleText := "🌾", "农民"
	if ev.WinnerIsLandlord {
		emoji, roleText = "👑", "地主"
	}
	title := fmt.Sprintf("%s %s (%s) 获胜！", emoji, ev.WinnerName, roleText)

	details := make([]string, 0, 4)
	if ev.IsSpring {
		details = append(details, "🌸 春天！")
	}
	if ev.IsAntiSpring {
		details = append(details, "🔄 反春！")
	}
	if ev.BombCount > 0 {
		details = append(details, fmt.Sprintf("💣 炸弹 ×%d", ev.BombCount))
	}
	details = append(details, multiplierText(ev.Multiplier))

	// 累计分缺失时按本局得分处理
	scores := make([]store.ScoreEntry, 0, len(ev.Scores))
	names := make([]string, 0, len(ev.Scores))
	totals := make([]int, 0, len(ev.Scores))
	for i, s := range ev.Scores {
		total := s.Score
		if i < len(ev.TotalScores) {
			total = ev.TotalScores[i]
		}

		scores = append(scores, store.ScoreEntry{
			Seat:       i,
			Name:       s.Name,
			Role:       s.Role,
			RoundScore: s.Score,
			TotalScore: total,
		})
		names = append(names, s.Name)
		totals = append(totals, total)
	}
	d.store.SetScores(scores, ev.GameCount)

	d.port.Set(view.RegionMultiplier, multiplierText(ev.Multiplier))
	d.port.Set(view.RegionResultTitle, title)
	d.port.Set(view.RegionResultDetail, strings.Join(details, "  "))
	d.port.Set(view.RegionResultTable, view.RenderScoreTable(scores))

	if line := scoreboardText(ev.GameCount, names, totals); line != "" {
		d.port.Set(view.RegionScoreboard, line)
		d.fx.FlashScore()
	}

	if ev.WinnerIsLandlord {
		d.cues.Win()
	} else {
		d.cues.Lose()
	}

	d.port.SetFlag(view.FlagResultModal, true)

	d.restart.Start(restartSeconds, func() {
		d.port.SetFlag(view.FlagResultModal, false)
		d.send(protocol.NewStartIntent())
	})
}
