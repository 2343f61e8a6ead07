package taxonomy

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTablesNonEmpty(t *testing.T) {
	tax := Default()

	if len(tax.Interests) == 0 || len(tax.Subreddits) == 0 {
		t.Fatalf("default interest tables are empty")
	}
	if len(tax.PositiveWords) == 0 || len(tax.NegativeWords) == 0 {
		t.Fatalf("default tone tables are empty")
	}
	if len(tax.Goals) == 0 || len(tax.Frustrations) == 0 {
		t.Fatalf("default theme tables are empty")
	}
	if len(tax.AgeHints) == 0 || len(tax.Locations) == 0 || len(tax.Occupations) == 0 {
		t.Fatalf("default demographic tables are empty")
	}
}

func TestSubredditCategory(t *testing.T) {
	tax := Default()

	cat, ok := tax.SubredditCategory("learnpython")
	if !ok || cat != "Programming" {
		t.Fatalf("expected Programming, got %q (ok=%v)", cat, ok)
	}

	cat, ok = tax.SubredditCategory("  GAMING ")
	if !ok || cat != "Gaming" {
		t.Fatalf("expected case-insensitive lookup, got %q (ok=%v)", cat, ok)
	}

	if _, ok := tax.SubredditCategory("nonexistentsub"); ok {
		t.Fatalf("expected miss for unknown subreddit")
	}
}

func TestLoadFileOverridesPresentTables(t *testing.T) {
	content := `
[interests]
Chess = ["chess", "gambit", "opening"]

[subreddits]
AnarchyChess = "Chess"

[tone]
positive = ["brilliant"]
`
	path := filepath.Join(t.TempDir(), "taxonomy.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	tax, err := LoadFile(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, ok := tax.Interests["Programming"]; ok {
		t.Fatalf("interests table should be fully replaced")
	}
	if _, ok := tax.Interests["Chess"]; !ok {
		t.Fatalf("expected Chess category in interests")
	}

	cat, ok := tax.SubredditCategory("anarchychess")
	if !ok || cat != "Chess" {
		t.Fatalf("expected lowered subreddit key, got %q (ok=%v)", cat, ok)
	}

	if len(tax.PositiveWords) != 1 || tax.PositiveWords[0] != "brilliant" {
		t.Fatalf("expected positive words replaced, got %v", tax.PositiveWords)
	}
	if len(tax.NegativeWords) == 0 {
		t.Fatalf("absent tables must keep defaults")
	}
	if len(tax.Goals) == 0 || len(tax.Occupations) == 0 {
		t.Fatalf("absent tables must keep defaults")
	}
}

func TestLoadFileMissingPath(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadFileInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	if err := os.WriteFile(path, []byte("interests = [broken"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
