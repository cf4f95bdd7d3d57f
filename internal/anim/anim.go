package anim

import (
	"time"

	"doudizhu-fe/internal/card"
	"doudizhu-fe/internal/view"
)

// Scheduler 负责限时视觉效果。飞牌和震屏是发后不管的，
// 多个实例可以重叠，各自清理自己的临时状态；只有底牌翻开
// 是调用方需要等待完成的（地主确定的处理器会阻塞到翻完）。
type Scheduler struct {
	port *view.Port

	flightDur  time.Duration
	revealStep time.Duration
	shakeDur   time.Duration
	flashDur   time.Duration
	dealStep   time.Duration
}

func New(port *view.Port) *Scheduler {
	return &Scheduler{
		port:       port,
		flightDur:  300 * time.Millisecond,
		revealStep: 400 * time.Millisecond,
		shakeDur:   600 * time.Millisecond,
		flashDur:   800 * time.Millisecond,
		dealStep:   60 * time.Millisecond,
	}
}

// NewWithTimings 用自定义时长构建，测试用零时长即可同步跑完
func NewWithTimings(port *view.Port, flight, reveal, shake, flash, deal time.Duration) *Scheduler {
	return &Scheduler{
		port:       port,
		flightDur:  flight,
		revealStep: reveal,
		shakeDur:   shake,
		flashDur:   flash,
		dealStep:   deal,
	}
}

// CardFlight 给座位手牌区打一个短暂的飞牌标记，到时自动清除
func (s *Scheduler) CardFlight(seat int) {
	flag := view.FlagCardFlight(seat)
	s.port.SetFlag(flag, true)

	time.AfterFunc(s.flightDur, func() {
		s.port.SetFlag(flag, false)
	})
}

// Shake 全屏震动标记，到时自动清除
func (s *Scheduler) Shake() {
	s.port.SetFlag(view.FlagShake, true)

	time.AfterFunc(s.shakeDur, func() {
		s.port.SetFlag(view.FlagShake, false)
	})
}

// FlashScore 积分变化闪烁标记，到时自动清除
func (s *Scheduler) FlashScore() {
	s.port.SetFlag(view.FlagScoreFlash, true)

	time.AfterFunc(s.flashDur, func() {
		s.port.SetFlag(view.FlagScoreFlash, false)
	})
}

// RevealBottom 逐张翻开底牌：先全背面，再按固定间隔一张张
// 翻到正面并保持。返回的通道在全部翻完后关闭。
func (s *Scheduler) RevealBottom(cards []card.Card) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		s.port.Set(view.RegionDizhuCards, view.RenderBacks(len(cards)))

		for i := 1; i <= len(cards); i++ {
			if s.revealStep > 0 {
				time.Sleep(s.revealStep)
			}

			content := view.RenderHand(cards[:i])
			if i < len(cards) {
				content += " " + view.RenderBacks(len(cards)-i)
			}

			s.port.Set(view.RegionDizhuCards, content)
		}
	}()

	return done
}

// DealStep 返回旧版整副发牌动画的每轮间隔
func (s *Scheduler) DealStep() time.Duration {
	return s.dealStep
}
