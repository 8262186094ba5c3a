// Package web holds the embedded page templates and the helpers they call.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"slices"
	"time"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"

	"github.com/01moynul/schooluniforms-web/internal/models"
)

//go:embed templates/*.html
var files embed.FS

// Money formats an amount the way every price is shown ("R150.00").
func Money(d decimal.Decimal) string {
	return "R" + d.StringFixed(2)
}

// Date formats an optional timestamp; nil renders as "-".
func Date(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.Local().Format("02 Jan 2006")
}

// Funcs is the helper set every page can use.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"money":       Money,
		"date":        Date,
		"statusLabel": models.StatusLabel,
		"slug":        slug.Make,
		"add":         func(a, b int) int { return a + b },
		"hasID": func(ids []int64, id int64) bool {
			return slices.Contains(ids, id)
		},
		"lookup": func(m map[string]string, key string) string {
			return m[key]
		},
		"measure": func(v any) string {
			switch n := v.(type) {
			case float64:
				return decimal.NewFromFloat(n).String()
			case nil:
				return ""
			default:
				return fmt.Sprint(n)
			}
		},
	}
}

// Templates parses every page. Each file defines one named page plus the
// shared "header" and "footer" partials.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}
