package domain

import "fmt"

// Card is one record of the bulk card dataset (cards.zip -> cards.json).
// Cards are immutable once decoded; a new dataset snapshot replaces the
// collection wholesale.
type Card struct {
	// CID is the official database identifier, unique within a snapshot.
	CID int `json:"cid"`
	// ID is the card password, used for image URLs and exact-match search.
	ID int `json:"id"`

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
}

// CardText holds the card's text block. Some cards carry no text at all.
type CardText struct {
	// Types is the type line, e.g. "[怪兽|效果] 龙/暗\n[★7] 2500/2000".
	Types string `json:"types,omitempty"`
	// Pdesc is the pendulum effect text.
	Pdesc string `json:"pdesc,omitempty"`
	// Desc is the card effect text.
	Desc string `json:"desc,omitempty"`
}

// CardData holds the card's numeric block. Atk and Def are pointers because
// absent and zero are different things, and -2 renders as "?".
type CardData struct {
	Ot        int  `json:"ot,omitempty"`
	Setcode   int  `json:"setcode,omitempty"`
	Type      int  `json:"type,omitempty"`
	Atk       *int `json:"atk,omitempty"`
	Def       *int `json:"def,omitempty"`
	Level     int  `json:"level,omitempty"`
	Race      int  `json:"race,omitempty"`
	Attribute int  `json:"attribute,omitempty"`
}

// CardDatabase is the decoded bulk dataset, keyed by card id string as the
// provider serves it.
type CardDatabase map[string]Card

// DisplayName resolves the preferred name, Chinese first.
func (c Card) DisplayName() string {
	for _, n := range []string{c.CnName, c.ScName, c.JpName, c.EnName} {
		if n != "" {
			return n
		}
	}
	return "未知卡片"
}

// Desc returns the effect text, empty when the card has no text block.
func (c Card) Desc() string {
	if c.Text == nil {
		return ""
	}
	return c.Text.Desc
}

// TypesLine returns the type line, empty when absent.
func (c Card) TypesLine() string {
	if c.Text == nil {
		return ""
	}
	return c.Text.Types
}

// Pdesc returns the pendulum effect text, empty when absent.
func (c Card) Pdesc() string {
	if c.Text == nil {
		return ""
	}
	return c.Text.Pdesc
}

// ThumbnailURL is the 82x120 thumbnail variant.
func (c Card) ThumbnailURL(imageBase string) string {
	return fmt.Sprintf("%s/ygopro/pics/%d.jpg!thumb2", imageBase, c.ID)
}

// HalfImageURL is the 200x290 variant.
func (c Card) HalfImageURL(imageBase string) string {
	return fmt.Sprintf("%s/ygopro/pics/%d.jpg!half", imageBase, c.ID)
}

// FullImageURL is the full-size card picture.
func (c Card) FullImageURL(imageBase string) string {
	return fmt.Sprintf("%s/ygopro/pics/%d.jpg", imageBase, c.ID)
}

func (d *CardData) IsMonster() bool { return d != nil && d.Type&TypeMonster != 0 }
func (d *CardData) IsSpell() bool   { return d != nil && d.Type&TypeSpell != 0 }
func (d *CardData) IsTrap() bool    { return d != nil && d.Type&TypeTrap != 0 }

// AtkText renders attack for display: "-" when absent, "?" for -2.
func (d *CardData) AtkText() string {
	if d == nil || d.Atk == nil {
		return "-"
	}
	if *d.Atk == -2 {
		return "?"
	}
	return fmt.Sprintf("%d", *d.Atk)
}

// DefText renders defense for display: "-" when absent, "?" for -2.
func (d *CardData) DefText() string {
	if d == nil || d.Def == nil {
		return "-"
	}
	if *d.Def == -2 {
		return "?"
	}
	return fmt.Sprintf("%d", *d.Def)
}
