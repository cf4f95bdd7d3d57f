package http

import (
	"fmt"

	"doudizhu-fe/internal/state"

	"github.com/kataras/iris/v12"
)

// RunServer 启动只读的旁观状态接口
func RunServer(appState *state.AppState) {
	app := iris.Default()

	api := app.Party("/api/v1")

	api.Get("/state", StateSnapshot(appState))
	api.Get("/healthz", Healthz())

	addr := fmt.Sprintf(
		"%s:%d",
		appState.Cfg.StatusHost,
		appState.Cfg.StatusPort,
	)

	app.Listen(addr)
}
