package client

import (
	"doudizhu-fe/internal/anim"
	"doudizhu-fe/internal/countdown"
	"doudizhu-fe/internal/protocol"
	"doudizhu-fe/internal/store"
	"doudizhu-fe/internal/view"

	"go.uber.org/zap"
)

// 结算后自动开始下一局的倒计时长度（计时单位数）
const restartSeconds = 10

// CuePlayer 是消息处理器需要的音效触发面，每类事件一个入口，
// 全部立即返回、从不回报结果
type CuePlayer interface {
	Deal()
	PlayCard()
	Pass()
	Bomb()
	Rocket()
	Win()
	Lose()
}

// Dispatcher 把每条入站事件路由到唯一的处理器。分发是同步单线程的：
// 处理器可以发起异步效果，但除了地主确定要等底牌翻完，分发调用
// 不等待效果结束就返回。
type Dispatcher struct {
	store   *store.Store
	port    *view.Port
	fx      *anim.Scheduler
	cues    CuePlayer
	restart *countdown.Manager
	send    func(any)
}

func NewDispatcher(
	st *store.Store,
	port *view.Port,
	fx *anim.Scheduler,
	cues CuePlayer,
	restart *countdown.Manager,
	send func(any),
) *Dispatcher {
	if send == nil {
		send = func(any) {}
	}

	return &Dispatcher{
		store:   st,
		port:    port,
		fx:      fx,
		cues:    cues,
		restart: restart,
		send:    send,
	}
}

// Dispatch 按类型标签分发，未识别的类型静默忽略
func (d *Dispatcher) Dispatch(wrapper protocol.EventWrapper) {
	switch wrapper.Type {
	case protocol.EVT_DEAL_START:
		if ev := protocol.TryUnwrapDealStartEvent(wrapper); ev != nil {
			d.onDealStart(ev)
		}
	case protocol.EVT_DEAL_CARD:
		if ev := protocol.TryUnwrapDealCardEvent(wrapper); ev != nil {
			d.onDealCard(ev)
		}
	case protocol.EVT_DEAL_DONE:
		if ev := protocol.TryUnwrapDealDoneEvent(wrapper); ev != nil {
			d.onDealDone(ev)
		}
	case protocol.EVT_DEAL:
		if ev := protocol.TryUnwrapDealEvent(wrapper); ev != nil {
			d.onDeal(ev)
		}
	case protocol.EVT_THINKING:
		if ev := protocol.TryUnwrapThinkingEvent(wrapper); ev != nil {
			d.onThinking(ev)
		}
	case protocol.EVT_COUNTDOWN:
		if ev := protocol.TryUnwrapCountdownEvent(wrapper); ev != nil {
			d.onCountdown(ev)
		}
	case protocol.EVT_BID:
		if ev := protocol.TryUnwrapBidEvent(wrapper); ev != nil {
			d.onBid(ev)
		}
	case protocol.EVT_LANDLORD:
		if ev := protocol.TryUnwrapLandlordEvent(wrapper); ev != nil {
			d.onLandlord(ev)
		}
	case protocol.EVT_PLAY:
		if ev := protocol.TryUnwrapPlayEvent(wrapper); ev != nil {
			d.onPlay(ev)
		}
	case protocol.EVT_PASS:
		if ev := protocol.TryUnwrapPassEvent(wrapper); ev != nil {
			d.onPass(ev)
		}
	case protocol.EVT_RESULT:
		if ev := protocol.TryUnwrapResultEvent(wrapper); ev != nil {
			d.onResult(ev)
		}
	default:
		zap.L().Debug(
			"忽略未识别的消息类型",
			zap.String("type", wrapper.Type),
		)
	}
}

// CancelRestart 在用户手动干预时取消自动开始倒计时
func (d *Dispatcher) CancelRestart() {
	d.restart.Cancel()
}

// RequestStart 隐藏结算弹窗并发送开始意图（手动再来一局）
func (d *Dispatcher) RequestStart() {
	d.restart.Cancel()
	d.port.SetFlag(view.FlagResultModal, false)
	d.send(protocol.NewStartIntent())
}
