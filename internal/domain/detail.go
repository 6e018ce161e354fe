package domain

import (
	"regexp"
	"strings"
)

// CardFullDetail is the per-card payload from /card/{id}?show=all. It carries
// supplemental fields (FAQs, release packs, availability) that the bulk
// dataset does not.
type CardFullDetail struct {
	CID    int    `json:"cid"`
	ID     int    `json:"id"`
	CnName string `json:"cn_name,omitempty"`
	ScName string `json:"sc_name,omitempty"`
	MdName string `json:"md_name,omitempty"`
	NwbbsN string `json:"nwbbs_n,omitempty"`
	CnocgN string `json:"cnocg_n,omitempty"`
	JpRuby string `json:"jp_ruby,omitempty"`
	JpName string `json:"jp_name,omitempty"`
	EnName string `json:"en_name,omitempty"`

	Text *CardText `json:"text,omitempty"`
	Data *CardData `json:"data,omitempty"`

	Faqs    []CardQA          `json:"faqs,omitempty"`
	JpPacks []CardPack        `json:"jppacks,omitempty"`
	EnPacks []CardPack        `json:"enpacks,omitempty"`
	Avail   *CardAvailability `json:"avail,omitempty"`
}

// CardQA is one official ruling entry.
type CardQA struct {
	FID      string `json:"fid"`
	Title    string `json:"title"`
	Date     string `json:"date,omitempty"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

func stripHTML(s string) string {
	s = strings.ReplaceAll(s, "<br>", "\n")
	return htmlTagRe.ReplaceAllString(s, "")
}

// CleanTitle returns the title with HTML tags removed.
func (q CardQA) CleanTitle() string { return stripHTML(q.Title) }

// CleanQuestion returns the question text with HTML tags removed.
func (q CardQA) CleanQuestion() string { return stripHTML(q.Question) }

// CleanAnswer returns the answer text with HTML tags removed.
func (q CardQA) CleanAnswer() string { return stripHTML(q.Answer) }

// CardPack is one release-pack listing.
type CardPack struct {
	PID   string `json:"pid"`
	Name  string `json:"name"`
	Date  string `json:"date"`
	SetID string `json:"setid,omitempty"`
}

// CardAvailability marks the regions the card is legal in.
type CardAvailability struct {
	OCG *int `json:"ocg,omitempty"`
	TCG *int `json:"tcg,omitempty"`
}
