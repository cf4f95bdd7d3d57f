package view

import (
	"fmt"
	"sync"
)

// 命名显示区域，和页面元素一一对应
const (
	RegionPhase        = "phase-text"
	RegionMultiplier   = "multiplier-text"
	RegionDizhuCards   = "dizhu-cards-list"
	RegionHistory      = "history-list"
	RegionScoreboard   = "scoreboard"
	RegionResultTitle  = "result-title"
	RegionResultDetail = "result-detail"
	RegionResultTable  = "result-table"
	RegionRestart      = "restart-countdown"
)

// 显示标志位
const (
	FlagResultModal = "result-modal"
	FlagShake       = "table-shake"
	FlagScoreFlash  = "score-flash"
)

func RegionName(seat int) string   { return fmt.Sprintf("name-%d", seat) }
func RegionRole(seat int) string   { return fmt.Sprintf("role-%d", seat) }
func RegionHand(seat int) string   { return fmt.Sprintf("hand-%d", seat) }
func RegionCount(seat int) string  { return fmt.Sprintf("count-%d", seat) }
func RegionAction(seat int) string { return fmt.Sprintf("action-%d", seat) }
func RegionTimer(seat int) string  { return fmt.Sprintf("timer-%d", seat) }

func FlagSeatActive(seat int) string { return fmt.Sprintf("seat-%d-active", seat) }
func FlagTimerUrgent(seat int) string { return fmt.Sprintf("timer-%d-urgent", seat) }
func FlagCardFlight(seat int) string { return fmt.Sprintf("hand-%d-flight", seat) }

// Port 是对命名显示区域的薄封装：只有读写，不含任何游戏语义。
// 寻址一个不存在的区域不是错误，写入会创建它，读取返回空串。
type Port struct {
	mu      sync.RWMutex
	regions map[string]string
	flags   map[string]bool

	// 尽力而为的重绘信号，满了就丢
	changed chan struct{}
}

func NewPort() *Port {
	return &Port{
		regions: make(map[string]string),
		flags:   make(map[string]bool),
		changed: make(chan struct{}, 1),
	}
}

func (p *Port) Set(region, content string) {
	p.mu.Lock()
	p.regions[region] = content
	p.mu.Unlock()

	p.signal()
}

func (p *Port) Get(region string) string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.regions[region]
}

func (p *Port) SetFlag(flag string, on bool) {
	p.mu.Lock()
	if on {
		p.flags[flag] = true
	} else {
		delete(p.flags, flag)
	}
	p.mu.Unlock()

	p.signal()
}

func (p *Port) Flag(flag string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.flags[flag]
}

// Changed 返回重绘信号通道，渲染循环据此刷新
func (p *Port) Changed() <-chan struct{} {
	return p.changed
}

func (p *Port) signal() {
	select {
	case p.changed <- struct{}{}:
	default:
	}
}

// HighlightSeat 高亮当前行动座位，seat 为负时清除全部高亮
func (p *Port) HighlightSeat(seat int) {
	for i := 0; i < 3; i++ {
		p.SetFlag(FlagSeatActive(i), i == seat)
	}
}

// ClearActions 清空三个座位的动作区
func (p *Port) ClearActions() {
	for i := 0; i < 3; i++ {
		p.Set(RegionAction(i), "")
	}
}
