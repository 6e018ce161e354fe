package domain

import "testing"

func TestCleanAnswerStripsMarkup(t *testing.T) {
	qa := CardQA{
		Title:    "<b>关于效果的处理</b>",
		Question: "<p>这张卡的效果<span class=\"kw\">发动</span>时……</p>",
		Answer:   "是的。<br>另外，伤害阶段也可以发动。",
	}

	if got, want := qa.CleanTitle(), "关于效果的处理"; got != want {
		t.Errorf("CleanTitle() = %q, want %q", got, want)
	}
	if got, want := qa.CleanQuestion(), "这张卡的效果发动时……"; got != want {
		t.Errorf("CleanQuestion() = %q, want %q", got, want)
	}
	// Line breaks survive as newlines, every other tag is dropped.
	if got, want := qa.CleanAnswer(), "是的。\n另外，伤害阶段也可以发动。"; got != want {
		t.Errorf("CleanAnswer() = %q, want %q", got, want)
	}
}

func TestCleanAnswerPlainText(t *testing.T) {
	qa := CardQA{Answer: "no markup here"}
	if got := qa.CleanAnswer(); got != "no markup here" {
		t.Errorf("CleanAnswer() = %q", got)
	}
}

func TestPreReleaseStatusLabel(t *testing.T) {
	if got := (PreReleaseCard{Created: true}).StatusLabel(); got != "NEW" {
		t.Errorf("StatusLabel() = %q, want NEW", got)
	}
	if got := (PreReleaseCard{Updated: true}).StatusLabel(); got != "更新" {
		t.Errorf("StatusLabel() = %q, want 更新", got)
	}
	if got := (PreReleaseCard{}).StatusLabel(); got != "" {
		t.Errorf("StatusLabel() = %q, want empty", got)
	}
	if !(PreReleaseCard{Updated: true}).IsNew() || (PreReleaseCard{}).IsNew() {
		t.Error("IsNew() should track created/updated flags")
	}
}

func TestPathsDefaultImageCacheDir(t *testing.T) {
	p := NewPaths("/var/lib/ygocdb", "")
	if p.TokenPath != "/var/lib/ygocdb/"+TokenFile {
		t.Errorf("TokenPath = %q", p.TokenPath)
	}
	if p.DatabasePath() != "/var/lib/ygocdb/"+DatabaseFile {
		t.Errorf("DatabasePath() = %q", p.DatabasePath())
	}
	if p.ImageCacheDir != "/var/lib/ygocdb/"+ImageCacheDirName {
		t.Errorf("ImageCacheDir = %q", p.ImageCacheDir)
	}

	override := NewPaths("/var/lib/ygocdb", "/mnt/cache")
	if override.ImageCacheDir != "/mnt/cache" {
		t.Errorf("ImageCacheDir = %q, want override", override.ImageCacheDir)
	}
}
