package output

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Format selects how list commands render their results.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the accepted --format values.
var Formats = []Format{FormatTable, FormatJSON, FormatYAML}

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of table, json, yaml", s)
	}
}

// JSON writes v as indented JSON.
func (u *UI) JSON(v any) error {
	enc := json.NewEncoder(u.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML. v goes through JSON first so json tags name the keys.
func (u *UI) YAML(v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var generic any
	if err := yaml.Unmarshal(raw, &generic); err != nil {
		return err
	}
	enc := yaml.NewEncoder(u.Out)
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return err
	}
	return enc.Close()
}

// Structured renders v in a non-table format.
func (u *UI) Structured(f Format, v any) error {
	switch f {
	case FormatJSON:
		return u.JSON(v)
	case FormatYAML:
		return u.YAML(v)
	default:
		return fmt.Errorf("format %q is not structured", f)
	}
}

// dateLayout is the wire layout of milestone target dates.
const dateLayout = "2006-01-02"

// RelativeDate formats a YYYY-MM-DD date with a humanized offset from now,
// e.g. "2026-11-01 (2 weeks from now)". Unparseable input is returned unchanged.
func RelativeDate(date string, now time.Time) string {
	d, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return date
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if d.Equal(today) {
		return date + " (today)"
	}
	return fmt.Sprintf("%s (%s)", date, humanize.RelTime(d, today, "ago", "from now"))
}
