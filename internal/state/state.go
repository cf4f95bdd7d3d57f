package state

import (
	"doudizhu-fe/internal/client"
	"doudizhu-fe/internal/config"
	"doudizhu-fe/internal/store"
	"doudizhu-fe/internal/view"
)

type AppState struct {
	Cfg   *config.AppConfig
	Store *store.Store
	Port  *view.Port
	Conn  *client.Conn
}

func NewAppState(
	cfg *config.AppConfig,
	st *store.Store,
	port *view.Port,
	conn *client.Conn,
) *AppState {
	return &AppState{
		Cfg:   cfg,
		Store: st,
		Port:  port,
		Conn:  conn,
	}
}
