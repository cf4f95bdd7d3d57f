package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"doudizhu-fe/internal/card"
	"doudizhu-fe/internal/store"
)

var (
	clrRed    = lipgloss.Color("#f85149")
	clrWhite  = lipgloss.Color("#e6edf3")
	clrGold   = lipgloss.Color("#e3b341")
	clrGreen  = lipgloss.Color("#3fb950")
	clrSubtle = lipgloss.Color("#8b949e")
	clrBack   = lipgloss.Color("#30363d")

	styleCard      = lipgloss.NewStyle().Foreground(clrWhite)
	styleCardRed   = lipgloss.NewStyle().Foreground(clrRed)
	styleJokerS    = lipgloss.NewStyle().Foreground(clrSubtle).Bold(true)
	styleJokerB    = lipgloss.NewStyle().Foreground(clrRed).Bold(true)
	styleBack      = lipgloss.NewStyle().Foreground(clrBack)
	styleLandlord  = lipgloss.NewStyle().Foreground(clrGold).Bold(true)
	styleFarmer    = lipgloss.NewStyle().Foreground(clrGreen)
	styleStrategy  = lipgloss.NewStyle().Foreground(clrSubtle).Italic(true)
	stylePlus      = lipgloss.NewStyle().Foreground(clrGreen)
	styleMinus     = lipgloss.NewStyle().Foreground(clrRed)
	styleHighlight = lipgloss.NewStyle().Foreground(clrGold)
)

// RenderCard 渲染一张正面牌
func RenderCard(c card.Card) string {
	switch {
	case c.Rank == card.RankSmallJoker:
		return styleJokerS.Render("[小王]")
	case c.Rank == card.RankBigJoker:
		return styleJokerB.Render("[大王]")
	case c.IsRed():
		return styleCardRed.Render("[" + c.Label() + "]")
	default:
		return styleCard.Render("[" + c.Label() + "]")
	}
}

// RenderCardBack 渲染一张背面牌
func RenderCardBack() string {
	return styleBack.Render("[🂠]")
}

// RenderHand 渲染整手正面牌。同样的输入总是产生同样的输出，
// 重复渲染不会累积任何残留
func RenderHand(cards []card.Card) string {
	parts := make([]string, 0, len(cards))
	for _, c := range cards {
		parts = append(parts, RenderCard(c))
	}

	return strings.Join(parts, " ")
}

// RenderBacks 渲染 n 张背面牌
func RenderBacks(n int) string {
	if n <= 0 {
		return ""
	}

	parts := make([]string, n)
	for i := range parts {
		parts[i] = RenderCardBack()
	}

	return strings.Join(parts, " ")
}

// RoleTag 渲染角色标签
func RoleTag(role string) string {
	switch strings.ToUpper(role) {
	case store.ROLE_LANDLORD:
		return styleLandlord.Render("地主")
	case store.ROLE_FARMER:
		return styleFarmer.Render("农民")
	default:
		return ""
	}
}

// BidText 渲染叫分文本
func BidText(bid int) string {
	if bid > 0 {
		return fmt.Sprintf("叫 %d 分", bid)
	}

	return "不叫"
}

// StrategyText 渲染可空的策略说明
func StrategyText(strategy string) string {
	if strategy == "" {
		return ""
	}

	return styleStrategy.Render("〔" + strategy + "〕")
}

// RenderHistory 渲染出牌历史，最新的在最后
func RenderHistory(entries []store.HistoryEntry) string {
	lines := make([]string, 0, len(entries))

	for _, e := range entries {
		if e.IsPass {
			lines = append(lines, fmt.Sprintf("座位%d 不出", e.Seat))
			continue
		}

		line := fmt.Sprintf("座位%d %s", e.Seat, RenderHand(e.Cards))
		if e.HandType != "" {
			line += " " + styleStrategy.Render(e.HandType)
		}

		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}

// RenderScoreTable 渲染结算积分表，本局分带正负色
func RenderScoreTable(scores []store.ScoreEntry) string {
	lines := []string{"玩家\t角色\t本局\t累计"}

	for _, s := range scores {
		round := fmt.Sprintf("%+d", s.RoundScore)
		if s.RoundScore > 0 {
			round = stylePlus.Render(round)
		} else {
			round = styleMinus.Render(round)
		}

		lines = append(lines, fmt.Sprintf(
			"%s\t%s\t%s\t%d",
			s.Name, RoleTag(s.Role), round, s.TotalScore,
		))
	}

	return strings.Join(lines, "\n")
}

// Screen 把所有区域组合成一帧终端画面
func Screen(p *Port) string {
	var b strings.Builder

	header := p.Get(RegionPhase)
	if m := p.Get(RegionMultiplier); m != "" {
		header += "  " + m
	}
	if r := p.Get(RegionRestart); r != "" {
		header += "  " + r
	}
	b.WriteString(styleHighlight.Render(header))
	b.WriteString("\n\n")

	for seat := 0; seat < 3; seat++ {
		title := p.Get(RegionName(seat))
		if tag := p.Get(RegionRole(seat)); tag != "" {
			title += " " + tag
		}
		if p.Flag(FlagSeatActive(seat)) {
			title = styleHighlight.Render("▶ ") + title
		}
		if timer := p.Get(RegionTimer(seat)); timer != "" {
			if p.Flag(FlagTimerUrgent(seat)) {
				timer = styleMinus.Render(timer)
			}
			title += "  ⏱ " + timer
		}
		title += "  " + p.Get(RegionCount(seat))

		b.WriteString(title + "\n")
		b.WriteString(p.Get(RegionHand(seat)) + "\n")

		if action := p.Get(RegionAction(seat)); action != "" {
			b.WriteString(action + "\n")
		}

		b.WriteString("\n")
	}

	if dizhu := p.Get(RegionDizhuCards); dizhu != "" {
		b.WriteString("底牌: " + dizhu + "\n\n")
	}

	if history := p.Get(RegionHistory); history != "" {
		b.WriteString("── 出牌记录 ──\n" + history + "\n\n")
	}

	if board := p.Get(RegionScoreboard); board != "" {
		b.WriteString(board + "\n")
	}

	if p.Flag(FlagResultModal) {
		b.WriteString("\n══════════════════\n")
		b.WriteString(p.Get(RegionResultTitle) + "\n")
		b.WriteString(p.Get(RegionResultDetail) + "\n")
		b.WriteString(p.Get(RegionResultTable) + "\n")
		b.WriteString("══════════════════\n")
	}

	return b.String()
}
