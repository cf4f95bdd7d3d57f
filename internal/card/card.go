package card

// 牌面点数，3..17，其中 16/17 是大小王
const (
	RankJack       = 11
	RankQueen      = 12
	RankKing       = 13
	RankAce        = 14
	RankTwo        = 15
	RankSmallJoker = 16
	RankBigJoker   = 17
)

// 红色花色（后端传的 suit 值就是符号：♠♥♦♣🃏）
var redSuits = map[string]bool{
	"♥": true,
	"♦": true,
}

// Card 是不可变的值类型，没有 rank+suit 之外的标识
type Card struct {
	Rank int    `json:"rank"`
	Suit string `json:"suit,omitempty"`
	// 后端可能附带的展示文本，客户端不依赖它
	Display string `json:"display,omitempty"`
}

var rankLabels = map[int]string{
	3: "3", 4: "4", 5: "5", 6: "6", 7: "7",
	8: "8", 9: "9", 10: "10",
	RankJack:       "J",
	RankQueen:      "Q",
	RankKing:       "K",
	RankAce:        "A",
	RankTwo:        "2",
	RankSmallJoker: "小王",
	RankBigJoker:   "大王",
}

// RankLabel 返回点数的显示文本
func RankLabel(rank int) string {
	if label, ok := rankLabels[rank]; ok {
		return label
	}

	return ""
}

func (c Card) IsJoker() bool {
	return c.Rank == RankSmallJoker || c.Rank == RankBigJoker
}

func (c Card) IsRed() bool {
	return redSuits[c.Suit]
}

// Label 返回一张牌的完整显示文本，例如 ♠A、♥10、大王
func (c Card) Label() string {
	if c.IsJoker() {
		return RankLabel(c.Rank)
	}

	return c.Suit + RankLabel(c.Rank)
}
