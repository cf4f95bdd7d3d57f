package client

import (
	"fmt"
	"sync"
	"time"

	"doudizhu-fe/internal/protocol"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// 断线后固定 3 秒重连，不退避、不设上限
const reconnectDelay = 3 * time.Second

// Conn 持有到服务端的长连接：拨号、断线重连、入站反序列化、
// 出站尽力而为发送。
type Conn struct {
	url string

	// Handler 接收每一条解析成功的入站事件，必须在 Run 之前设置
	Handler func(protocol.EventWrapper)
	// OnOpen 在每次连接建立后被调用，可为空
	OnOpen func()

	mu sync.Mutex
	ws *websocket.Conn
}

// NewConn 按安全模式选择 ws/wss，端点固定为 /ws
func NewConn(host string, secure bool) *Conn {
	proto := "ws"
	if secure {
		proto = "wss"
	}

	return &Conn{
		url: fmt.Sprintf("%s://%s/ws", proto, host),
	}
}

// Run 永久维持连接：断开或拨号失败都在固定延迟后重试
func (c *Conn) Run() {
	for {
		c.runOnce()

		zap.L().Info(
			"连接断开，3秒后重连",
			zap.String("url", c.url),
		)

		time.Sleep(reconnectDelay)
	}
}

func (c *Conn) runOnce() {
	ws, _, err := websocket.DefaultDialer.Dial(c.url, nil)
	if err != nil {
		zap.L().Warn(
			"连接服务端失败",
			zap.String("url", c.url),
			zap.Error(err),
		)
		return
	}

	session := GenID()

	zap.L().Info(
		"已连接服务端",
		zap.String("url", c.url),
		zap.String("session", session),
	)

	c.setWS(ws)
	defer func() {
		c.setWS(nil)
		ws.Close()
	}()

	if c.OnOpen != nil {
		c.OnOpen()
	}

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(
				err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				zap.L().Error(
					"读取消息失败",
					zap.String("session", session),
					zap.Error(err),
				)
			}

			return
		}

		// 坏帧只丢这一条，连接保持
		wrapper, err := protocol.Decode(data)
		if err != nil {
			zap.L().Error(
				"解析消息失败",
				zap.String("session", session),
				zap.Error(err),
			)

			continue
		}

		if c.Handler != nil {
			c.Handler(wrapper)
		}
	}
}

// Send 序列化并发送一条出站消息。连接未就绪时静默丢弃，
// 所有出站发送都是尽力而为，没有排队和送达保证。
func (c *Conn) Send(v any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ws == nil {
		zap.L().Debug("连接未就绪，丢弃出站消息", zap.Any("message", v))
		return
	}

	if err := c.ws.WriteJSON(v); err != nil {
		zap.L().Warn("发送消息失败", zap.Error(err))
	}
}

func (c *Conn) setWS(ws *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ws = ws
}
