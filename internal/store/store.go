package store

import (
	"sync"

	"doudizhu-fe/internal/card"
)

// 固定三个座位
const SeatCount = 3

// 历史记录上限，超出后淘汰最旧的
const HistoryLimit = 30

// 对局阶段
const (
	PHASE_DEALING  = "dealing"
	PHASE_BIDDING  = "bidding"
	PHASE_PLAYING  = "playing"
	PHASE_FINISHED = "finished"
)

// 角色标签，和服务端下发的值一致
const (
	ROLE_NONE     = ""
	ROLE_LANDLORD = "LANDLORD"
	ROLE_FARMER   = "FARMER"
)

// PlayerView 是单个座位的展示状态。Hand 为 nil 时表示观众视角
// 只知道数量，HandCount 以收到的消息为准
type PlayerView struct {
	Name      string      `json:"name"`
	Role      string      `json:"role"`
	Hand      []card.Card `json:"hand,omitempty"`
	HandCount int         `json:"hand_count"`
}

type HistoryEntry struct {
	Seat     int         `json:"seat"`
	Cards    []card.Card `json:"cards,omitempty"`
	HandType string      `json:"hand_type,omitempty"`
	IsPass   bool        `json:"is_pass"`
}

type ScoreEntry struct {
	Seat       int    `json:"seat"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	RoundScore int    `json:"round_score"`
	TotalScore int    `json:"total_score"`
}

// Store 是本地展示状态的唯一归属者，只有消息处理器写入它。
// 读写锁是因为状态接口和渲染循环会并发读快照。
type Store struct {
	mu sync.RWMutex

	phase       string
	players     [SeatCount]PlayerView
	dealBuf     [SeatCount][]card.Card
	bottomCards []card.Card

	// 倍数是一等公民的整数字段，展示文本由它派生，
	// 绝不反过来从渲染文本里解析
	multiplier int
	baseBid    int
	bombCount  int

	history   []HistoryEntry
	scores    []ScoreEntry
	gameCount int
}

func New() *Store {
	return &Store{
		phase:      PHASE_DEALING,
		multiplier: 1,
	}
}

func validSeat(seat int) bool {
	return seat >= 0 && seat < SeatCount
}

// ResetForDeal 在新一局开始时清空所有座位状态和过局数据
func (s *Store) ResetForDeal(names map[int]string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = PHASE_DEALING
	s.bottomCards = nil
	s.multiplier = 1
	s.baseBid = 0
	s.bombCount = 0
	s.history = nil
	s.scores = nil

	for seat := 0; seat < SeatCount; seat++ {
		name := s.players[seat].Name
		if n, ok := names[seat]; ok {
			name = n
		}

		s.players[seat] = PlayerView{Name: name}
		s.dealBuf[seat] = nil
	}
}

func (s *Store) SetPhase(phase string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = phase
}

func (s *Store) Phase() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.phase
}

// AddDealtCard 把逐张发来的牌追加进座位的发牌缓冲，
// 返回缓冲的副本用于重绘
func (s *Store) AddDealtCard(seat int, c card.Card) []card.Card {
	if !validSeat(seat) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.dealBuf[seat] = append(s.dealBuf[seat], c)
	s.players[seat].Hand = s.dealBuf[seat]
	s.players[seat].HandCount = len(s.dealBuf[seat])

	out := make([]card.Card, len(s.dealBuf[seat]))
	copy(out, s.dealBuf[seat])

	return out
}

// SetFullHand 用服务端的权威手牌替换展示，同时对齐数量
func (s *Store) SetFullHand(seat int, hand []card.Card) {
	if !validSeat(seat) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[seat].Hand = hand
	s.players[seat].HandCount = len(hand)
}

// SetHandCount 只更新数量，手牌转为不可见
func (s *Store) SetHandCount(seat int, count int) {
	if !validSeat(seat) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[seat].Hand = nil
	s.players[seat].HandCount = count
}

func (s *Store) SetRole(seat int, role string) {
	if !validSeat(seat) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[seat].Role = role
}

func (s *Store) Player(seat int) PlayerView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !validSeat(seat) {
		return PlayerView{}
	}

	return s.players[seat]
}

func (s *Store) SetBottomCards(cards []card.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bottomCards = cards
}

func (s *Store) BottomCards() []card.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bottomCards
}

// SetBaseBid 在地主确定时把倍数重置为叫分底值，至少为 1
func (s *Store) SetBaseBid(bid int) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bid < 1 {
		bid = 1
	}

	s.baseBid = bid
	s.multiplier = bid

	return s.multiplier
}

// DoubleMultiplier 在观察到炸弹类出牌时翻倍，返回新值
func (s *Store) DoubleMultiplier() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.multiplier < 1 {
		s.multiplier = 1
	}

	s.multiplier *= 2
	s.bombCount++

	return s.multiplier
}

// SetMultiplier 用服务端结算的权威倍数覆盖本地值
func (s *Store) SetMultiplier(m int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m < 1 {
		m = 1
	}

	s.multiplier = m
}

func (s *Store) Multiplier() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.multiplier
}

func (s *Store) BombCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.bombCount
}

// AppendHistory 按到达顺序追加，超出上限先淘汰最旧的
func (s *Store) AppendHistory(entry HistoryEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, entry)
	if len(s.history) > HistoryLimit {
		s.history = s.history[len(s.history)-HistoryLimit:]
	}
}

func (s *Store) History() []HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]HistoryEntry, len(s.history))
	copy(out, s.history)

	return out
}

// SetScores 记录结算表。累计分只来自服务端，缺失时等同本局得分
func (s *Store) SetScores(scores []ScoreEntry, gameCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scores = scores
	if gameCount > 0 {
		s.gameCount = gameCount
	}
}

func (s *Store) Scores() []ScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]ScoreEntry, len(s.scores))
	copy(out, s.scores)

	return out
}

// Snapshot 是状态接口用的只读快照
type Snapshot struct {
	Phase       string         `json:"phase"`
	Players     []PlayerView   `json:"players"`
	BottomCards []card.Card    `json:"bottom_cards,omitempty"`
	Multiplier  int            `json:"multiplier"`
	BombCount   int            `json:"bomb_count"`
	History     []HistoryEntry `json:"history"`
	Scores      []ScoreEntry   `json:"scores,omitempty"`
	GameCount   int            `json:"game_count,omitempty"`
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]PlayerView, SeatCount)
	for seat := 0; seat < SeatCount; seat++ {
		players[seat] = s.players[seat]
	}

	history := make([]HistoryEntry, len(s.history))
	copy(history, s.history)

	scores := make([]ScoreEntry, len(s.scores))
	copy(scores, s.scores)

	return Snapshot{
		Phase:       s.phase,
		Players:     players,
		BottomCards: s.bottomCards,
		Multiplier:  s.multiplier,
		BombCount:   s.bombCount,
		History:     history,
		Scores:      scores,
		GameCount:   s.gameCount,
	}
}
