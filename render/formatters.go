package render

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/semsnip/graph"
	"github.com/c360studio/semsnip/rules"
)

// Named formatters usable from YAML rule files and catalogue packages. Each
// follows the rules.FormatSingle contract: decline with ("", nil) to let the
// generic branches run, return an error to report an anomaly and fall back.
func NamedFormatters() map[string]rules.FormatSingle {
	return map[string]rules.FormatSingle{
		"rating": FormatRating,
		"date":   FormatDate,
		"url":    FormatURL,
	}
}

// FormatRating renders rating-style literals as a star row. Understood
// payloads: "4", "4.5", and the composite "4/5" form carrying the scale.
// Reference values decline so the resolver can recurse into a full Rating
// resource instead.
func FormatRating(_ rules.Recurser, property string, v graph.Value) (string, error) {
	lit, ok := v.(graph.Literal)
	if !ok {
		return "", nil
	}
	text := strings.TrimSpace(lit.Text)
	if text == "" {
		return "", nil
	}

	valuePart := text
	best := 5.0
	if slash := strings.IndexByte(text, '/'); slash >= 0 {
		valuePart = strings.TrimSpace(text[:slash])
		b, err := strconv.ParseFloat(strings.TrimSpace(text[slash+1:]), 64)
		if err != nil {
			return "", fmt.Errorf("rating scale %q: %w", text, err)
		}
		best = b
	}
	value, err := strconv.ParseFloat(valuePart, 64)
	if err != nil {
		return "", fmt.Errorf("rating value %q: %w", text, err)
	}
	if best <= 0 || value < 0 || value > best {
		return "", fmt.Errorf("rating %q out of range", text)
	}

	// Scale to five stars regardless of the source scale.
	full := int(value/best*5 + 0.5)
	stars := strings.Repeat("★", full) + strings.Repeat("☆", 5-full)
	return `<span class="snippet-rating" property="` + html.EscapeString(property) + `" title="` +
		html.EscapeString(text) + `">` + stars + `</span>`, nil
}

// dateLayouts are tried in order when formatting date literals.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatDate renders date literals as a time element with a human-readable
// body. Unparseable payloads decline rather than fail: a free-text date is
// still a valid literal.
func FormatDate(_ rules.Recurser, property string, v graph.Value) (string, error) {
	lit, ok := v.(graph.Literal)
	if !ok {
		return "", nil
	}
	text := strings.TrimSpace(lit.Text)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, text)
		if err != nil {
			continue
		}
		return `<time property="` + html.EscapeString(property) + `" datetime="` +
			html.EscapeString(text) + `">` + t.Format("January 2, 2006") + `</time>`, nil
	}
	return "", nil
}

// FormatURL renders URL literals as anchors. Non-HTTP payloads decline.
func FormatURL(_ rules.Recurser, property string, v graph.Value) (string, error) {
	lit, ok := v.(graph.Literal)
	if !ok {
		return "", nil
	}
	text := strings.TrimSpace(lit.Text)
	if !strings.HasPrefix(text, "http://") && !strings.HasPrefix(text, "https://") {
		return "", nil
	}
	escaped := html.EscapeString(text)
	return `<a property="` + html.EscapeString(property) + `" href="` + escaped + `">` + escaped + `</a>`, nil
}
