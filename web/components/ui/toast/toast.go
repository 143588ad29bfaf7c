// Package toast renders dismissible notification fragments for HTMX swaps.
package toast

import (
	"context"
	"fmt"
	"io"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"
)

type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

type Position string

const (
	PositionTopRight    Position = "top-right"
	PositionBottomRight Position = "bottom-right"
)

type Props struct {
	Title       string
	Description string
	Variant     Variant
	Position    Position
	// Duration in milliseconds before the toast removes itself. Zero keeps it.
	Duration    int
	Dismissible bool
	Class       string
}

func variantClass(v Variant) string {
	switch v {
	case VariantError:
		return "border-red-500 bg-red-50 text-red-900"
	case VariantWarning:
		return "border-amber-500 bg-amber-50 text-amber-900"
	case VariantInfo:
		return "border-sky-500 bg-sky-50 text-sky-900"
	}
	return "border-emerald-500 bg-emerald-50 text-emerald-900"
}

func positionClass(p Position) string {
	if p == PositionTopRight {
		return "top-4 right-4"
	}
	return "bottom-4 right-4"
}

// Toast renders a single notification.
func Toast(p Props) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := twmerge.Merge(
			"fixed z-50 w-80 rounded-md border p-4 shadow-lg",
			positionClass(p.Position),
			variantClass(p.Variant),
			p.Class,
		)
		if _, err := fmt.Fprintf(w, `<div class="%s" role="status" data-variant="%s"`,
			templ.EscapeString(class), templ.EscapeString(string(p.Variant))); err != nil {
			return err
		}
		if p.Duration > 0 {
			if _, err := fmt.Fprintf(w, ` data-duration="%d"`, p.Duration); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, ">"); err != nil {
			return err
		}
		if p.Title != "" {
			if _, err := fmt.Fprintf(w, `<p class="font-semibold">%s</p>`, templ.EscapeString(p.Title)); err != nil {
				return err
			}
		}
		if p.Description != "" {
			if _, err := fmt.Fprintf(w, `<p class="text-sm">%s</p>`, templ.EscapeString(p.Description)); err != nil {
				return err
			}
		}
		if p.Dismissible {
			if _, err := io.WriteString(w, `<button type="button" class="absolute top-2 right-2" onclick="this.parentElement.remove()">&times;</button>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</div>")
		return err
	})
}
