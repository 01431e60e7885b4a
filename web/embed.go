// Package web embeds the dashboard page templates.
package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"html/template"
	"time"

	"github.com/hearthview/opsdash/internal/utils"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Templates parses the embedded page templates with the UK formatting
// helpers registered.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"formatDate":     utils.FormatDate,
		"formatDateTime": utils.FormatDateTime,
		"optDateTime":    optDateTime,
		"formatCurrency": utils.FormatCurrency,
		"optCurrency":    utils.FormatOptionalCurrency,
		"optNumber":      utils.FormatOptionalNumber,
		"prettyJSON":     prettyJSON,
		"deref":          derefString,
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))
}

// prettyJSON indents a raw payload for display; malformed input renders
// verbatim.
func prettyJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

// optDateTime renders a nullable timestamp, or "-" when absent.
func optDateTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return utils.FormatDateTime(*t)
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
