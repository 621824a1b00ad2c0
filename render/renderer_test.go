package render

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestRenderTutorial(t *testing.T) {
	r := New(nil)
	res, err := r.Render(context.Background(), "tutorial", Context{
		Title: "Building a Queue Worker in Go",
		Sections: map[string]string{
			"introduction": "We build a small queue worker from scratch.",
			"steps":        "First install the tool. Then wire the handler.",
		},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	body := res.Doc.Body()
	if !strings.Contains(body, "# Building a Queue Worker in Go") {
		t.Errorf("title heading missing:\n%s", body)
	}
	if !strings.Contains(body, "## What We're Building") || !strings.Contains(body, "## Step by Step") {
		t.Errorf("required section headings missing:\n%s", body)
	}
	// Optional slots were not provided and must not appear as headers.
	for _, absent := range []string{"## Before You Start", "## Recap", "## When Things Go Wrong"} {
		if strings.Contains(body, absent) {
			t.Errorf("empty optional section rendered: %s", absent)
		}
	}
	if res.Validation == nil || len(res.Scores) != 4 {
		t.Errorf("render result missing scores or validation")
	}
	if res.Doc.FrontMatterString("template") != "tutorial" {
		t.Errorf("front matter template = %q", res.Doc.FrontMatterString("template"))
	}
}

func TestRenderMissingRequiredSlot(t *testing.T) {
	r := New(nil)
	_, err := r.Render(context.Background(), "crisis-resolution", Context{
		Title: "The Night the Cache Died",
		Sections: map[string]string{
			"crisis":         "Everything fell over at 2am.",
			"discovery":      "The TTLs were wrong.",
			"implementation": "We fixed the TTLs.",
			// "results" is required and absent.
		},
	})
	var missing *MissingSlotError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingSlotError", err)
	}
	if missing.Slot != "results" {
		t.Errorf("missing slot = %q, want results", missing.Slot)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := New(nil)
	_, err := r.Render(context.Background(), "listicle", Context{})
	var unknown *UnknownTemplateError
	if !errors.As(err, &unknown) {
		t.Fatalf("err = %v, want UnknownTemplateError", err)
	}
}

func TestRenderSlotOrderFollowsTemplate(t *testing.T) {
	r := New(nil)
	res, err := r.Render(context.Background(), "deep-dive", Context{
		Title: "Inside the Scheduler",
		Sections: map[string]string{
			"implementation": "The loop drains a heap.",
			"overview":       "A tour of the scheduler.",
			"architecture":   "One goroutine owns the heap.",
		},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	body := res.Doc.Body()
	overview := strings.Index(body, "## Overview")
	arch := strings.Index(body, "## How It Works")
	impl := strings.Index(body, "## Implementation Details")
	if !(overview < arch && arch < impl) {
		t.Errorf("sections out of template order:\n%s", body)
	}
}
