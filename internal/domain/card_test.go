package domain

import "testing"

func intp(v int) *int { return &v }

func TestDisplayNamePrefersChinese(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want string
	}{
		{"cn first", Card{CnName: "青眼白龙", JpName: "青眼の白龍", EnName: "Blue-Eyes White Dragon"}, "青眼白龙"},
		{"sc fallback", Card{ScName: "简中名", EnName: "English"}, "简中名"},
		{"jp fallback", Card{JpName: "青眼の白龍", EnName: "English"}, "青眼の白龍"},
		{"en last", Card{EnName: "Blue-Eyes White Dragon"}, "Blue-Eyes White Dragon"},
		{"nothing", Card{ID: 12345}, "未知卡片"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.card.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTextAccessorsHandleMissingBlock(t *testing.T) {
	var card Card
	if card.Desc() != "" || card.TypesLine() != "" || card.Pdesc() != "" {
		t.Error("accessors on a card without text block should return empty strings")
	}

	card.Text = &CardText{Types: "[怪兽|通常]", Desc: "effect", Pdesc: "pendulum"}
	if card.TypesLine() != "[怪兽|通常]" || card.Desc() != "effect" || card.Pdesc() != "pendulum" {
		t.Error("accessors should pass text block fields through")
	}
}

func TestImageURLVariants(t *testing.T) {
	card := Card{ID: 89631139}
	base := "https://cdn.233.momobako.com"

	if got, want := card.ThumbnailURL(base), base+"/ygopro/pics/89631139.jpg!thumb2"; got != want {
		t.Errorf("ThumbnailURL() = %q, want %q", got, want)
	}
	if got, want := card.HalfImageURL(base), base+"/ygopro/pics/89631139.jpg!half"; got != want {
		t.Errorf("HalfImageURL() = %q, want %q", got, want)
	}
	if got, want := card.FullImageURL(base), base+"/ygopro/pics/89631139.jpg"; got != want {
		t.Errorf("FullImageURL() = %q, want %q", got, want)
	}
}

func TestCardKindPredicates(t *testing.T) {
	monster := &CardData{Type: TypeMonster | TypeEffect}
	spell := &CardData{Type: TypeSpell}
	trap := &CardData{Type: TypeTrap}

	if !monster.IsMonster() || monster.IsSpell() || monster.IsTrap() {
		t.Error("effect monster misclassified")
	}
	if !spell.IsSpell() || spell.IsMonster() {
		t.Error("spell misclassified")
	}
	if !trap.IsTrap() || trap.IsMonster() {
		t.Error("trap misclassified")
	}

	var none *CardData
	if none.IsMonster() || none.IsSpell() || none.IsTrap() {
		t.Error("nil data block should match no kind")
	}
}

func TestAtkDefText(t *testing.T) {
	tests := []struct {
		name string
		data *CardData
		atk  string
		def  string
	}{
		{"plain values", &CardData{Atk: intp(2500), Def: intp(2000)}, "2500", "2000"},
		{"zero is a value", &CardData{Atk: intp(0), Def: intp(0)}, "0", "0"},
		{"question marks", &CardData{Atk: intp(-2), Def: intp(-2)}, "?", "?"},
		{"absent", &CardData{}, "-", "-"},
		{"nil block", nil, "-", "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.data.AtkText(); got != tt.atk {
				t.Errorf("AtkText() = %q, want %q", got, tt.atk)
			}
			if got := tt.data.DefText(); got != tt.def {
				t.Errorf("DefText() = %q, want %q", got, tt.def)
			}
		})
	}
}
