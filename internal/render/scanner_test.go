package render

import (
	"strings"
	"testing"
)

func TestScanSegments_Sections(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantName string
		wantID   string
		wantLvl  int
	}{
		{
			name:     "explicit id and level",
			body:     `<ArticleSection name="Installation" id="installation" level="h2" />`,
			wantName: "Installation",
			wantID:   "installation",
			wantLvl:  2,
		},
		{
			name:     "id derived from name",
			body:     `<ArticleSection name="Canonical Bumps" />`,
			wantName: "Canonical Bumps",
			wantID:   "canonical-bumps",
			wantLvl:  2,
		},
		{
			name:     "h3 level",
			body:     `<ArticleSection name="Deep Dive" level="h3" />`,
			wantName: "Deep Dive",
			wantID:   "deep-dive",
			wantLvl:  3,
		},
		{
			name:     "indented tag",
			body:     `  <ArticleSection name="Indented" />`,
			wantName: "Indented",
			wantID:   "indented",
			wantLvl:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segments, err := scanSegments(tt.body)
			if err != nil {
				t.Fatalf("scanSegments() error = %v", err)
			}
			if len(segments) != 1 {
				t.Fatalf("got %d segments, want 1", len(segments))
			}
			seg := segments[0]
			if seg.kind != sectionSegment {
				t.Fatalf("got kind %v, want sectionSegment", seg.kind)
			}
			if seg.section.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", seg.section.Name, tt.wantName)
			}
			if seg.section.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", seg.section.ID, tt.wantID)
			}
			if seg.section.Level != tt.wantLvl {
				t.Errorf("Level = %d, want %d", seg.section.Level, tt.wantLvl)
			}
		})
	}
}

func TestScanSegments_Codeblock(t *testing.T) {
	body := "<Codeblock lang=\"rust\" title=\"lib.rs\">\nfn main() {}\nlet x = 1;\n</Codeblock>"

	segments, err := scanSegments(body)
	if err != nil {
		t.Fatalf("scanSegments() error = %v", err)
	}
	if len(segments) != 1 {
		t.Fatalf("got %d segments, want 1", len(segments))
	}
	code := segments[0].code
	if code.Lang != "rust" {
		t.Errorf("Lang = %q, want %q", code.Lang, "rust")
	}
	if code.Title != "lib.rs" {
		t.Errorf("Title = %q, want %q", code.Title, "lib.rs")
	}
	if code.Literal != "fn main() {}\nlet x = 1;" {
		t.Errorf("Literal = %q", code.Literal)
	}
}

func TestScanSegments_Interleaving(t *testing.T) {
	body := strings.Join([]string{
		"Some intro prose.",
		"",
		`<ArticleSection name="Setup" />`,
		"More prose here.",
		`<Codeblock lang="bash">`,
		"echo hi",
		"</Codeblock>",
		"Closing prose.",
	}, "\n")

	segments, err := scanSegments(body)
	if err != nil {
		t.Fatalf("scanSegments() error = %v", err)
	}

	wantKinds := []segmentKind{markdownSegment, sectionSegment, markdownSegment, codeSegment, markdownSegment}
	if len(segments) != len(wantKinds) {
		t.Fatalf("got %d segments, want %d", len(segments), len(wantKinds))
	}
	for i, kind := range wantKinds {
		if segments[i].kind != kind {
			t.Errorf("segment %d kind = %v, want %v", i, segments[i].kind, kind)
		}
	}
}

func TestScanSegments_Errors(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantLine int
	}{
		{
			name:     "section not self-closing",
			body:     `<ArticleSection name="Broken">`,
			wantLine: 1,
		},
		{
			name:     "section missing name",
			body:     `<ArticleSection id="x" />`,
			wantLine: 1,
		},
		{
			name:     "section unknown prop",
			body:     `<ArticleSection name="X" color="red" />`,
			wantLine: 1,
		},
		{
			name:     "section invalid level",
			body:     `<ArticleSection name="X" level="h7" />`,
			wantLine: 1,
		},
		{
			name:     "duplicate prop",
			body:     `<ArticleSection name="X" name="Y" />`,
			wantLine: 1,
		},
		{
			name:     "unquoted prop value",
			body:     `<ArticleSection name=Installation />`,
			wantLine: 1,
		},
		{
			name:     "unterminated prop value",
			body:     `<ArticleSection name="Installation />`,
			wantLine: 1,
		},
		{
			name:     "unterminated codeblock",
			body:     "prose\n<Codeblock lang=\"rust\">\nfn main() {}",
			wantLine: 2,
		},
		{
			name:     "stray closing tag",
			body:     "prose\n\n</Codeblock>",
			wantLine: 3,
		},
		{
			name:     "name slugifies to nothing",
			body:     `<ArticleSection name="!!!" />`,
			wantLine: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scanSegments(tt.body)
			if err == nil {
				t.Fatal("scanSegments() expected error, got nil")
			}
			scanErr, ok := err.(*scanError)
			if !ok {
				t.Fatalf("error type = %T, want *scanError", err)
			}
			if scanErr.line != tt.wantLine {
				t.Errorf("line = %d, want %d", scanErr.line, tt.wantLine)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Installation", "installation"},
		{"Canonical Bumps", "canonical-bumps"},
		{"  Spaced  Out  ", "spaced-out"},
		{"C'est Déjà Vu", "cest-dj-vu"},
		{"Rust & Go", "rust-go"},
		{"already-slugged", "already-slugged"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
