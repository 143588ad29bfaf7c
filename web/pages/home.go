// Package pages holds the server-rendered pages.
package pages

import (
	"context"
	"fmt"
	"io"
	"strings"

	twmerge "github.com/Oudwins/tailwind-merge-go"
	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/qrstyle/web/components"
)

const (
	fieldClass = "block w-full rounded-md border border-gray-300 px-3 py-2 text-sm"
	labelClass = "block text-sm font-medium text-gray-700"
)

// HomePage renders the generator form with a live preview.
func HomePage(d components.FormDefaults) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		b.WriteString(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		b.WriteString(`<title>QR eyes</title></head><body class="bg-gray-50">`)
		b.WriteString(`<main class="mx-auto max-w-3xl p-6 grid gap-6 md:grid-cols-2">`)
		b.WriteString(`<form id="qr-form" action="/api/qr" method="get" target="preview" class="space-y-4">`)

		input(&b, "data", "Content", d.Data)
		selectField(&b, "mode", "Mode", components.ModeOptions, "render")
		selectField(&b, "ecc", "Error correction", components.ECCOptions, d.ECC)
		selectField(&b, "module", "Modules", components.ModuleOptions, d.Module)
		selectField(&b, "eyes", "Eyes", components.EyeOptions, d.Eyes)
		colorField(&b, "fg", "Foreground", d.Fg)
		colorField(&b, "bg", "Background", d.Bg)

		fmt.Fprintf(&b, `<button type="submit" class="%s">Generate</button>`,
			templ.EscapeString(twmerge.Merge("rounded-md px-4 py-2 text-white", "bg-gray-900 hover:bg-gray-700")))
		b.WriteString(`</form>`)
		b.WriteString(`<iframe name="preview" title="Preview" class="aspect-square w-full rounded-md border bg-white"></iframe>`)
		b.WriteString(`</main></body></html>`)

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func input(b *strings.Builder, name, label, value string) {
	fmt.Fprintf(b, `<label class="%s" for="%s">%s</label>`, labelClass, name, templ.EscapeString(label))
	fmt.Fprintf(b, `<input class="%s" id="%s" name="%s" value="%s" required>`,
		fieldClass, name, name, templ.EscapeString(value))
}

func colorField(b *strings.Builder, name, label, value string) {
	fmt.Fprintf(b, `<label class="%s" for="%s">%s</label>`, labelClass, name, templ.EscapeString(label))
	fmt.Fprintf(b, `<input type="color" class="%s" id="%s" name="%s" value="%s">`,
		twmerge.Merge(fieldClass, "h-10 p-1"), name, name, templ.EscapeString(value))
}

func selectField(b *strings.Builder, name, label string, options []components.Option, selected string) {
	fmt.Fprintf(b, `<label class="%s" for="%s">%s</label>`, labelClass, name, templ.EscapeString(label))
	fmt.Fprintf(b, `<select class="%s" id="%s" name="%s">`, fieldClass, name, name)
	for _, o := range options {
		attr := ""
		if strings.EqualFold(o.Value, selected) {
			attr = " selected"
		}
		fmt.Fprintf(b, `<option value="%s"%s>%s</option>`, templ.EscapeString(o.Value), attr, templ.EscapeString(o.Label))
	}
	b.WriteString(`</select>`)
}
