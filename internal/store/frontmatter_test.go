package store

import (
	"errors"
	"strings"
	"testing"

	"beacon/internal/domain"
)

func TestSplitFrontmatter(t *testing.T) {
	src := strings.Join([]string{
		"---",
		"title: Anchor Vault",
		"tags: [anchor]",
		"---",
		"",
		"Body starts here.",
	}, "\n")

	meta, body, bodyLine, err := splitFrontmatter(src)
	if err != nil {
		t.Fatalf("splitFrontmatter() error = %v", err)
	}
	if meta != "title: Anchor Vault\ntags: [anchor]\n" {
		t.Errorf("meta = %q", meta)
	}
	if body != "\nBody starts here." {
		t.Errorf("body = %q", body)
	}
	if bodyLine != 5 {
		t.Errorf("bodyLine = %d, want 5", bodyLine)
	}
}

func TestSplitFrontmatter_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "missing block", src: "Just a body with no metadata.\n"},
		{name: "delimiter not on first line", src: "\n---\ntitle: X\n---\n"},
		{name: "unterminated block", src: "---\ntitle: X\n"},
		{name: "empty file", src: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := splitFrontmatter(tt.src); err == nil {
				t.Fatal("splitFrontmatter() expected error, got nil")
			}
		})
	}
}

func TestParseFrontmatter(t *testing.T) {
	src := strings.Join([]string{
		"---",
		"title: Accounts",
		"banner: /graphics/banners/accounts.png",
		"description: How Anchor models accounts.",
		"tags: [anchor, accounts]",
		"draft: true",
		"---",
		"Body.",
	}, "\n")

	fm, body, bodyLine, err := parseFrontmatter("courses/anchor-basics/accounts/en.mdx", src)
	if err != nil {
		t.Fatalf("parseFrontmatter() error = %v", err)
	}
	if fm.Title != "Accounts" {
		t.Errorf("Title = %q", fm.Title)
	}
	if fm.Banner != "/graphics/banners/accounts.png" {
		t.Errorf("Banner = %q", fm.Banner)
	}
	if len(fm.Tags) != 2 || fm.Tags[0] != "anchor" || fm.Tags[1] != "accounts" {
		t.Errorf("Tags = %v", fm.Tags)
	}
	if !fm.Draft {
		t.Error("Draft = false, want true")
	}
	if body != "Body." {
		t.Errorf("body = %q", body)
	}
	if bodyLine != 8 {
		t.Errorf("bodyLine = %d, want 8", bodyLine)
	}
}

func TestParseFrontmatter_Invalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "missing title", src: "---\ndescription: no title here\n---\nbody"},
		{name: "malformed yaml", src: "---\ntitle: [unclosed\n---\nbody"},
		{name: "no frontmatter", src: "body only"},
		{
			name: "title too long",
			src:  "---\ntitle: " + strings.Repeat("x", 300) + "\n---\nbody",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := parseFrontmatter("challenges/broken/en/challenge.mdx", tt.src)
			if err == nil {
				t.Fatal("parseFrontmatter() expected error, got nil")
			}

			var compileErr *domain.CompileError
			if !errors.As(err, &compileErr) {
				t.Fatalf("error type = %T, want *domain.CompileError", err)
			}
			if compileErr.File != "challenges/broken/en/challenge.mdx" {
				t.Errorf("File = %q", compileErr.File)
			}
			if compileErr.Line != 1 {
				t.Errorf("Line = %d, want 1", compileErr.Line)
			}
		})
	}
}
