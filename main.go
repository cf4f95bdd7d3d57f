package main

import (
	"fmt"
	"sync"
	"time"

	"doudizhu-fe/internal/anim"
	"doudizhu-fe/internal/api/http"
	"doudizhu-fe/internal/audio"
	"doudizhu-fe/internal/client"
	"doudizhu-fe/internal/config"
	"doudizhu-fe/internal/countdown"
	"doudizhu-fe/internal/logger"
	"doudizhu-fe/internal/protocol"
	"doudizhu-fe/internal/state"
	"doudizhu-fe/internal/store"
	"doudizhu-fe/internal/view"
)

func main() {
	// 加载配置
	cfg := config.InitConfig()

	// 初始化日志器
	logger.InitLogger(cfg.LogLevel)

	// 组装展示引擎
	port := view.NewPort()
	st := store.New()
	fx := anim.New(port)
	cues := audio.New(cfg.Volume)

	restart := countdown.New(time.Second, func(remaining int, active bool) {
		if active {
			port.Set(view.RegionRestart, fmt.Sprintf("%d 秒后自动开始下一局", remaining))
		} else {
			port.Set(view.RegionRestart, "")
		}
	})

	conn := client.NewConn(cfg.ServerHost, cfg.ServerSecure)
	dispatcher := client.NewDispatcher(st, port, fx, cues, restart, conn.Send)
	conn.Handler = dispatcher.Dispatch

	// 首次连接成功后自动请求开局，重连不重复发
	var startOnce sync.Once
	conn.OnOpen = func() {
		if !cfg.AutoStart {
			return
		}

		startOnce.Do(func() {
			conn.Send(protocol.NewStartIntent())
		})
	}

	appState := state.NewAppState(cfg, st, port, conn)

	// 旁观状态接口
	go http.RunServer(appState)

	// 维持与服务端的连接
	go conn.Run()

	// 渲染循环：收到重绘信号后整帧刷新
	for range port.Changed() {
		fmt.Print("\033[H\033[2J" + view.Screen(port))

		// 合并短时间内的连续更新
		time.Sleep(50 * time.Millisecond)
	}
}
