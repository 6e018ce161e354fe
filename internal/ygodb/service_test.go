package ygodb

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hexzhou/ygocdb/internal/domain"
)

// cardsArchive packs payload as a stored cards.json entry with a proper
// local file header.
func cardsArchive(payload []byte) []byte {
	const name = "cards.json"
	var buf bytes.Buffer
	var header [30]byte
	binary.LittleEndian.PutUint32(header[0:], 0x04034b50)
	binary.LittleEndian.PutUint16(header[4:], 20)
	binary.LittleEndian.PutUint16(header[8:], 0) // stored
	binary.LittleEndian.PutUint32(header[14:], crc32.ChecksumIEEE(payload))
	binary.LittleEndian.PutUint32(header[18:], uint32(len(payload)))
	binary.LittleEndian.PutUint32(header[22:], uint32(len(payload)))
	binary.LittleEndian.PutUint16(header[26:], uint16(len(name)))
	buf.Write(header[:])
	buf.WriteString(name)
	buf.Write(payload)
	return buf.Bytes()
}

func testConfig(baseURL string) *domain.Config {
	return &domain.Config{
		APIBaseURL:         baseURL,
		UserAgent:          "ygocdb-test/1.0",
		RequestTimeoutSec:  5,
		DownloadTimeoutSec: 5,
	}
}

func newTestService(baseURL string) Service {
	return NewService(zerolog.Nop(), testConfig(baseURL))
}

func TestFetchMD5Trims(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards.zip.md5" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if ua := r.Header.Get("User-Agent"); ua != "ygocdb-test/1.0" {
			t.Errorf("User-Agent = %q, want ygocdb-test/1.0", ua)
		}
		w.Write([]byte("  58a3b1c9d2e4f5a6  \n"))
	}))
	defer srv.Close()

	md5, err := newTestService(srv.URL).FetchMD5(context.Background())
	if err != nil {
		t.Fatalf("FetchMD5: %v", err)
	}
	if md5 != "58a3b1c9d2e4f5a6" {
		t.Errorf("FetchMD5 = %q, want trimmed token", md5)
	}
}

func TestFetchMD5NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := newTestService(srv.URL).FetchMD5(context.Background()); err == nil {
		t.Error("FetchMD5 succeeded on 502 response")
	}
}

func TestHasRemoteChanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("tokenA\n"))
	}))
	defer srv.Close()

	svc := newTestService(srv.URL)
	ctx := context.Background()

	changed, err := svc.HasRemoteChanged(ctx, "tokenB")
	if err != nil {
		t.Fatalf("HasRemoteChanged: %v", err)
	}
	if !changed {
		t.Error("HasRemoteChanged(tokenB) = false, want true")
	}

	changed, err = svc.HasRemoteChanged(ctx, "tokenA")
	if err != nil {
		t.Fatalf("HasRemoteChanged: %v", err)
	}
	if changed {
		t.Error("HasRemoteChanged(tokenA) = true, want false")
	}

	changed, err = svc.HasRemoteChanged(ctx, "")
	if err != nil {
		t.Fatalf("HasRemoteChanged: %v", err)
	}
	if !changed {
		t.Error("HasRemoteChanged(\"\") = false, want true")
	}
}

func TestDownloadCards(t *testing.T) {
	payload := []byte(`{
		"89631139": {"cid": 4007, "id": 89631139, "cn_name": "青眼白龙",
			"text": {"types": "[怪兽|通常] 龙/光", "desc": "以高攻击力著称的传说之龙。"},
			"data": {"type": 17, "atk": 3000, "def": 2500, "level": 8, "race": 8192, "attribute": 16}},
		"46986414": {"cid": 4041, "id": 46986414, "cn_name": "黑魔导"}
	}`)
	archive := cardsArchive(payload)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cards.zip.md5":
			w.Write([]byte("abc123\n"))
		case "/cards.zip":
			w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
			w.Write(archive)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	var fractions []float64
	cards, token, err := newTestService(srv.URL).DownloadCards(context.Background(), func(f float64) {
		fractions = append(fractions, f)
	})
	if err != nil {
		t.Fatalf("DownloadCards: %v", err)
	}
	if token != "abc123" {
		t.Errorf("token = %q, want abc123", token)
	}
	if len(cards) != 2 {
		t.Fatalf("decoded %d cards, want 2", len(cards))
	}

	card, ok := cards["89631139"]
	if !ok {
		t.Fatal("card 89631139 missing from decoded set")
	}
	if card.CnName != "青眼白龙" || card.Data == nil || card.Data.Atk == nil || *card.Data.Atk != 3000 {
		t.Errorf("card 89631139 decoded incorrectly: %+v", card)
	}

	if len(fractions) == 0 {
		t.Fatal("no progress callbacks delivered")
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Errorf("progress not monotonic: %v", fractions)
			break
		}
	}
	if last := fractions[len(fractions)-1]; last != 1.0 {
		t.Errorf("final progress = %v, want 1.0", last)
	}
}

func TestDownloadCardsNoContentLength(t *testing.T) {
	archive := cardsArchive([]byte(`{}`))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cards.zip.md5":
			w.Write([]byte("tok\n"))
		case "/cards.zip":
			// Chunked response, no declared length.
			w.(http.Flusher).Flush()
			w.Write(archive)
		}
	}))
	defer srv.Close()

	var fractions []float64
	_, _, err := newTestService(srv.URL).DownloadCards(context.Background(), func(f float64) {
		fractions = append(fractions, f)
	})
	if err != nil {
		t.Fatalf("DownloadCards: %v", err)
	}
	if len(fractions) == 0 || fractions[len(fractions)-1] != 1.0 {
		t.Errorf("final 1.0 progress not delivered without content length: %v", fractions)
	}
}

func TestDownloadCardsDecodeError(t *testing.T) {
	archive := cardsArchive([]byte(`{"1": {"cid": "not-a-number"}}`))
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cards.zip.md5":
			w.Write([]byte("tok\n"))
		case "/cards.zip":
			w.Write(archive)
		}
	}))
	defer srv.Close()

	_, _, err := newTestService(srv.URL).DownloadCards(context.Background(), nil)
	if err == nil {
		t.Fatal("DownloadCards succeeded on malformed dataset")
	}
	if !strings.Contains(err.Error(), "cid") {
		t.Errorf("decode error does not name the offending field: %v", err)
	}
}

func TestFetchCardDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/card/89631139" || r.URL.Query().Get("show") != "all" {
			t.Errorf("unexpected request %q", r.URL.String())
		}
		w.Write([]byte(`{"cid": 4007, "id": 89631139, "cn_name": "青眼白龙",
			"faqs": [{"fid": "f1", "title": "<b>关于效果</b>", "question": "Q", "answer": "A<br>B"}],
			"jppacks": [{"pid": "p1", "name": "STARTER BOX", "date": "1999-03-06"}]}`))
	}))
	defer srv.Close()

	detail, err := newTestService(srv.URL).FetchCardDetail(context.Background(), 89631139)
	if err != nil {
		t.Fatalf("FetchCardDetail: %v", err)
	}
	if detail.CnName != "青眼白龙" {
		t.Errorf("CnName = %q", detail.CnName)
	}
	if len(detail.Faqs) != 1 || detail.Faqs[0].CleanTitle() != "关于效果" {
		t.Errorf("faqs decoded incorrectly: %+v", detail.Faqs)
	}
	if got := detail.Faqs[0].CleanAnswer(); got != "A\nB" {
		t.Errorf("CleanAnswer = %q, want %q", got, "A\nB")
	}
	if len(detail.JpPacks) != 1 || detail.JpPacks[0].Name != "STARTER BOX" {
		t.Errorf("jppacks decoded incorrectly: %+v", detail.JpPacks)
	}
}
