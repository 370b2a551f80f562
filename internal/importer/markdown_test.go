package importer

import (
	"errors"
	"testing"

	"tasky/internal/sheet"
)

func TestParseFrontmatterAndItems(t *testing.T) {
	content := []byte(`---
title: Moving day
description: everything for the move
---

# Checklist

- [ ] rent a van
- [x] cancel internet
- [ ] pack [kitchen] boxes
`)

	imp, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if imp.Title != "Moving day" {
		t.Errorf("expected frontmatter title, got %q", imp.Title)
	}
	if imp.Description != "everything for the move" {
		t.Errorf("unexpected description %q", imp.Description)
	}
	if len(imp.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(imp.Items))
	}
	if imp.Items[0].Text != "rent a van" || imp.Items[0].Completed {
		t.Errorf("unexpected first item %+v", imp.Items[0])
	}
	if imp.Items[1].Text != "cancel internet" || !imp.Items[1].Completed {
		t.Errorf("unexpected second item %+v", imp.Items[1])
	}
	if imp.Items[2].Text != "pack [kitchen] boxes" {
		t.Errorf("expected brackets preserved, got %q", imp.Items[2].Text)
	}
}

func TestParseTitleFromHeading(t *testing.T) {
	content := []byte(`# Weekend plans

- [ ] water plants
`)

	imp, err := Parse(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if imp.Title != "Weekend plans" {
		t.Errorf("expected H1 title fallback, got %q", imp.Title)
	}
}

func TestParseNoTaskItems(t *testing.T) {
	content := []byte(`# Just prose

Nothing to check off here.

- a plain bullet
`)

	_, err := Parse(content)
	if !errors.Is(err, sheet.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
