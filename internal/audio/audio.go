package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"
)

const sampleRate = 44100

// note 是一段固定频率的音，freq 为 0 表示休止
type note struct {
	freq float64
	dur  time.Duration
}

// Engine 按事件类别触发短促的合成音效。音频上下文在第一次
// 触发时才创建，每次触发都重查就绪状态，设备被挂起或创建失败
// 只会丢掉这一声，绝不影响调用方。
type Engine struct {
	mu     sync.Mutex
	ctx    *eaudio.Context
	volume float64
}

func New(volume float64) *Engine {
	if volume < 0 {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}

	return &Engine{volume: volume}
}

// context 惰性获取进程级音频上下文，拿不到返回 nil
func (e *Engine) context() *eaudio.Context {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.ctx == nil {
		if ctx := eaudio.CurrentContext(); ctx != nil {
			e.ctx = ctx
		} else {
			e.ctx = eaudio.NewContext(sampleRate)
		}
	}

	if !e.ctx.IsReady() {
		// 平台可能在两次交互之间挂起设备，下次触发再查
		return nil
	}

	return e.ctx
}

// play 异步播放一串音符，任何失败都只记日志
func (e *Engine) play(notes []note) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				zap.L().Warn("音频播放失败", zap.Any("reason", r))
			}
		}()

		ctx := e.context()
		if ctx == nil {
			zap.L().Debug("音频上下文未就绪，跳过本次音效")
			return
		}

		for _, n := range notes {
			if n.freq > 0 {
				p := ctx.NewPlayerFromBytes(sineWave(n.freq, n.dur))
				p.SetVolume(e.volume)
				p.Play()
			}

			time.Sleep(n.dur)
		}
	}()
}

// sineWave 生成 16bit 双声道小端 PCM 正弦波
func sineWave(freq float64, dur time.Duration) []byte {
	samples := int(float64(sampleRate) * dur.Seconds())
	buf := make([]byte, samples*4)

	for i := 0; i < samples; i++ {
		// 首尾各 5% 做淡入淡出，避免爆音
		envelope := 1.0
		edge := samples / 20
		if edge > 0 {
			if i < edge {
				envelope = float64(i) / float64(edge)
			} else if i > samples-edge {
				envelope = float64(samples-i) / float64(edge)
			}
		}

		v := int16(math.Sin(2*math.Pi*freq*float64(i)/sampleRate) * envelope * math.MaxInt16 * 0.6)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}

	return buf
}

// Deal 发牌声：一声极短的高音
func (e *Engine) Deal() {
	e.play([]note{{880, 50 * time.Millisecond}})
}

// PlayCard 普通出牌声
func (e *Engine) PlayCard() {
	e.play([]note{{440, 90 * time.Millisecond}})
}

// Pass 不出
func (e *Engine) Pass() {
	e.play([]note{{220, 90 * time.Millisecond}})
}

// Bomb 炸弹：两声低音
func (e *Engine) Bomb() {
	e.play([]note{
		{110, 120 * time.Millisecond},
		{90, 200 * time.Millisecond},
	})
}

// Rocket 王炸：上行三连音
func (e *Engine) Rocket() {
	e.play([]note{
		{523, 90 * time.Millisecond},
		{659, 90 * time.Millisecond},
		{880, 180 * time.Millisecond},
	})
}

// Win 胜利琶音
func (e *Engine) Win() {
	e.play([]note{
		{523, 120 * time.Millisecond},
		{659, 120 * time.Millisecond},
		{784, 120 * time.Millisecond},
		{1047, 240 * time.Millisecond},
	})
}

// Lose 失利下行音
func (e *Engine) Lose() {
	e.play([]note{
		{392, 150 * time.Millisecond},
		{330, 150 * time.Millisecond},
		{262, 260 * time.Millisecond},
	})
}
