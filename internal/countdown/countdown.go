package countdown

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Manager 同一时刻最多持有一个活动倒计时。Start 总是先取消
// 旧的再起新的，两个倒计时绝不会并存；Cancel 幂等，没有活动
// 倒计时时调用也安全。
type Manager struct {
	mu   sync.Mutex
	stop chan struct{}

	unit  time.Duration
	label func(remaining int, active bool)
}

// New 构建倒计时管理器。unit 是一个计时单位的真实时长，
// label 在每次读数变化时被回调（active=false 表示恢复默认显示）。
func New(unit time.Duration, label func(remaining int, active bool)) *Manager {
	if label == nil {
		label = func(int, bool) {}
	}

	return &Manager{
		unit:  unit,
		label: label,
	}
}

// Start 起一个 seconds 个单位的倒计时，到零时恰好调用一次
// onExpire。已有倒计时会先被取消。
func (m *Manager) Start(seconds int, onExpire func()) {
	m.mu.Lock()
	m.cancelLocked()

	stop := make(chan struct{})
	m.stop = stop
	m.mu.Unlock()

	m.label(seconds, true)

	go func() {
		ticker := time.NewTicker(m.unit)
		defer ticker.Stop()

		remaining := seconds

		for {
			select {
			case <-stop:
				return

			case <-ticker.C:
				remaining--
				if remaining > 0 {
					m.label(remaining, true)
					continue
				}

				// 到零：只有自己仍是活动倒计时才触发，
				// 避免和并发的 Cancel/Start 双触发
				m.mu.Lock()
				if m.stop != stop {
					m.mu.Unlock()
					return
				}
				m.stop = nil
				m.mu.Unlock()

				m.label(0, false)
				onExpire()

				return
			}
		}
	}()
}

// Cancel 停掉当前倒计时并恢复默认显示，没有活动倒计时时是空操作
func (m *Manager) Cancel() {
	m.mu.Lock()
	stopped := m.cancelLocked()
	m.mu.Unlock()

	if stopped {
		zap.L().Debug("倒计时已取消")
	}

	m.label(0, false)
}

// Active 返回当前是否有活动倒计时
func (m *Manager) Active() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stop != nil
}

func (m *Manager) cancelLocked() bool {
	if m.stop == nil {
		return false
	}

	close(m.stop)
	m.stop = nil

	return true
}
