// Package render binds structured content to a named narrative template
// and produces a scored, validated document. The engine is fixed; the
// template set in templates.go is the only thing that grows.
package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/contentpipe/backend/document"
	"github.com/contentpipe/backend/scoring"
	"github.com/contentpipe/backend/validator"
)

// Context is the content bound into a template: a title, optional
// front-matter values, and section bodies keyed by slot name.
type Context struct {
	Title       string
	FrontMatter map[string]any
	Sections    map[string]string
}

// MissingSlotError reports an unresolved required slot. It fails the
// single render, never the batch.
type MissingSlotError struct {
	Template string
	Slot     string
}

func (e *MissingSlotError) Error() string {
	return fmt.Sprintf("template %q: required slot %q not provided", e.Template, e.Slot)
}

// UnknownTemplateError reports a template name outside the closed set.
type UnknownTemplateError struct {
	Name string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("unknown template %q", e.Name)
}

// Result is the rendered document with its quality scores and
// validation report.
type Result struct {
	Doc        *document.Document
	Scores     scoring.Scores
	Validation *validator.Report
}

// Renderer assembles documents from templates and runs the validation
// pass over the result.
type Renderer struct {
	validator *validator.Validator
}

// New builds a Renderer around the given validator.
func New(v *validator.Validator) *Renderer {
	if v == nil {
		v = validator.New(validator.Options{})
	}
	return &Renderer{validator: v}
}

// Render binds the context into the named template. The stages run in
// fixed order: bind, resolve required slots (fail fast), fill optional
// slots (skip silently), assemble, score.
func (r *Renderer) Render(ctx context.Context, templateName string, tc Context) (*Result, error) {
	tmpl, ok := lookup(templateName)
	if !ok {
		return nil, &UnknownTemplateError{Name: templateName}
	}

	for _, slot := range tmpl.Slots {
		if !slot.Required {
			continue
		}
		if strings.TrimSpace(tc.Sections[slot.Name]) == "" {
			return nil, &MissingSlotError{Template: tmpl.Name, Slot: slot.Name}
		}
	}

	var b strings.Builder
	title := tc.Title
	if title == "" {
		title = "Untitled"
	}
	b.WriteString("# " + title + "\n")
	for _, slot := range tmpl.Slots {
		content := strings.TrimSpace(tc.Sections[slot.Name])
		if content == "" {
			continue
		}
		b.WriteString("\n## " + slot.Heading + "\n\n")
		b.WriteString(content)
		b.WriteString("\n")
	}

	fm := map[string]any{"title": title, "template": tmpl.Name}
	for k, v := range tc.FrontMatter {
		fm[k] = v
	}
	doc := document.New(b.String(), fm)

	return &Result{
		Doc:        doc,
		Scores:     scoring.Score(doc),
		Validation: r.validator.Validate(ctx, doc, nil),
	}, nil
}
