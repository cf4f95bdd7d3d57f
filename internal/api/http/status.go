package http

import (
	"doudizhu-fe/internal/state"

	"github.com/kataras/iris/v12"
)

// StateSnapshot 返回当前展示状态的 JSON 快照
func StateSnapshot(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		ctx.JSON(appState.Store.Snapshot())
	}
}

func Healthz() iris.Handler {
	return func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"status": "ok",
		})
	}
}
