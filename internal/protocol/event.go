package protocol

import (
	"encoding/json"

	"doudizhu-fe/internal/card"
)

// 服务端事件类型
const (
	EVT_DEAL_START = "deal_start"
	EVT_DEAL_CARD  = "deal_card"
	EVT_DEAL_DONE  = "deal_done"
	EVT_DEAL       = "deal" // 旧版兼容：整手牌一次性下发
	EVT_THINKING   = "thinking"
	EVT_COUNTDOWN  = "countdown"
	EVT_BID        = "bid"
	EVT_LANDLORD   = "landlord"
	EVT_PLAY       = "play"
	EVT_PASS       = "pass"
	EVT_RESULT     = "result"
)

// EventWrapper 是一条入站事件：类型标签加上原始报文。
// 后端的事件是扁平 JSON（字段和 type 同级），所以 Raw 保存整帧，
// 各 TryUnwrap 再按类型解出载荷。
type EventWrapper struct {
	Type string
	Raw  json.RawMessage
}

// Decode 从一帧原始报文解出事件包装
func Decode(data []byte) (EventWrapper, error) {
	var head struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(data, &head); err != nil {
		return EventWrapper{}, err
	}

	return EventWrapper{
		Type: head.Type,
		Raw:  json.RawMessage(data),
	}, nil
}

// PlayerInfo 是 deal_start 里的玩家信息
type PlayerInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SeatStatus 是带手牌信息的玩家状态，hand 可空（观众不可见时只有数量）
type SeatStatus struct {
	ID       int         `json:"id"`
	Name     string      `json:"name,omitempty"`
	Role     string      `json:"role,omitempty"`
	HandSize int         `json:"hand_size"`
	Hand     []card.Card `json:"hand,omitempty"`
}

type DealStartEvent struct {
	Players     []PlayerInfo `json:"players"`
	GameCount   int          `json:"game_count,omitempty"`
	TotalScores []int        `json:"total_scores,omitempty"`
}

type DealCardEvent struct {
	PlayerID  int       `json:"player_id"`
	Card      card.Card `json:"card"`
	CardIndex int       `json:"card_index,omitempty"`
}

type DealDoneEvent struct {
	Players    []SeatStatus `json:"players"`
	DizhuCards []card.Card  `json:"dizhu_cards,omitempty"`
}

type DealEvent struct {
	Players []SeatStatus `json:"players"`
}

type ThinkingEvent struct {
	PlayerID  int    `json:"player_id"`
	Phase     string `json:"phase"` // bid | play
	Total     int    `json:"total,omitempty"`
	Remaining int    `json:"remaining"`
}

type CountdownEvent struct {
	PlayerID  int `json:"player_id"`
	Remaining int `json:"remaining"`
}

type BidEvent struct {
	PlayerID int    `json:"player_id"`
	Bid      int    `json:"bid"`
	Strategy string `json:"strategy,omitempty"`
}

type LandlordEvent struct {
	PlayerID   int          `json:"player_id"`
	Players    []SeatStatus `json:"players"`
	HighestBid int          `json:"highest_bid"`
	DizhuCards []card.Card  `json:"dizhu_cards"`
}

type PlayEvent struct {
	PlayerID int         `json:"player_id"`
	Cards    []card.Card `json:"cards"`
	HandType string      `json:"hand_type,omitempty"`
	IsBomb   bool        `json:"is_bomb"`
	HandSize int         `json:"hand_size"`
	Hand     []card.Card `json:"hand,omitempty"`
	Strategy string      `json:"strategy,omitempty"`
}

type PassEvent struct {
	PlayerID int    `json:"player_id"`
	Strategy string `json:"strategy,omitempty"`
}

type ScoreLine struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Score int    `json:"score"`
}

type ResultEvent struct {
	WinnerID         int         `json:"winner_id,omitempty"`
	WinnerName       string      `json:"winner_name"`
	WinnerIsLandlord bool        `json:"winner_is_landlord"`
	IsSpring         bool        `json:"is_spring,omitempty"`
	IsAntiSpring     bool        `json:"is_anti_spring,omitempty"`
	BombCount        int         `json:"bomb_count"`
	Multiplier       int         `json:"multiplier"`
	Scores           []ScoreLine `json:"scores"`
	GameCount        int         `json:"game_count,omitempty"`
	TotalScores      []int       `json:"total_scores,omitempty"`
}

// StartIntent 是唯一的出站消息：请求服务端开始新对局
type StartIntent struct {
	Action string `json:"action"`
}

func NewStartIntent() StartIntent {
	return StartIntent{Action: "start"}
}
