package search

import (
	"testing"

	"github.com/hexzhou/ygocdb/internal/domain"
)

func testCards() []domain.Card {
	return []domain.Card{
		{
			CID: 4007, ID: 89631139,
			CnName: "青眼白龙",
			JpName: "青眼の白龍",
			EnName: "Blue-Eyes White Dragon",
			Text:   &domain.CardText{Desc: "以高攻击力著称的传说之龙。"},
		},
		{
			CID: 4041, ID: 46986414,
			CnName: "黑魔导",
			EnName: "Dark Magician",
			Text:   &domain.CardText{Desc: "作为魔法师，攻击力、防御力都是最高级别。"},
		},
		{
			CID: 12950, ID: 10000,
			EnName: "Obelisk the Tormentor",
		},
	}
}

func TestQueryCnSubstring(t *testing.T) {
	ix := New(testCards())

	got := ix.Query("青眼")
	if len(got) != 1 || got[0].CID != 4007 {
		t.Fatalf("Query(青眼) = %+v, want exactly the blue-eyes card", got)
	}
}

func TestQueryExactID(t *testing.T) {
	ix := New(testCards())

	got := ix.Query("46986414")
	if len(got) != 1 || got[0].CID != 4041 {
		t.Fatalf("Query(46986414) = %+v, want exactly the dark magician card", got)
	}

	// A partial id must not match.
	if got := ix.Query("4698641"); len(got) != 0 {
		t.Errorf("Query(partial id) = %+v, want no results", got)
	}
}

func TestQueryCaseInsensitive(t *testing.T) {
	ix := New(testCards())

	got := ix.Query("blue-eyes WHITE")
	if len(got) != 1 || got[0].CID != 4007 {
		t.Fatalf("Query(blue-eyes WHITE) = %+v, want the blue-eyes card", got)
	}
}

func TestQueryDescMatch(t *testing.T) {
	ix := New(testCards())

	got := ix.Query("魔法师")
	if len(got) != 1 || got[0].CID != 4041 {
		t.Fatalf("Query(魔法师) = %+v, want the dark magician card", got)
	}
}

func TestQueryMultipleMatches(t *testing.T) {
	ix := New(testCards())

	// Both card texts mention 攻击力.
	got := ix.Query("攻击力")
	if len(got) != 2 {
		t.Fatalf("Query(攻击力) returned %d cards, want 2", len(got))
	}
}

func TestQueryEmpty(t *testing.T) {
	ix := New(testCards())

	if got := ix.Query(""); len(got) != 0 {
		t.Errorf("Query(\"\") = %+v, want no results", got)
	}
}

func TestQueryNoMatch(t *testing.T) {
	ix := New(testCards())

	if got := ix.Query("不存在的卡"); len(got) != 0 {
		t.Errorf("Query(nonexistent) = %+v, want no results", got)
	}
}

func TestLenTracksCollection(t *testing.T) {
	cards := testCards()
	ix := New(cards)
	if ix.Len() != len(cards) {
		t.Errorf("Len() = %d, want %d", ix.Len(), len(cards))
	}

	ix.Build(nil)
	if ix.Len() != 0 {
		t.Errorf("Len() after empty rebuild = %d, want 0", ix.Len())
	}
}
