package response

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lydakis/ab/internal/ipc"
)

type formatFunc func(p payload) (string, error)

// payload carries the decoded data next to its raw bytes so object output
// keeps the daemon's key order.
type payload struct {
	raw   json.RawMessage
	value any
}

// Formatter renders successful daemon responses for a terminal.
type Formatter struct {
	style    Styler
	registry map[string]formatFunc
}

// NewFormatter returns a Formatter with the built-in per-action renderers.
func NewFormatter(style Styler) *Formatter {
	f := &Formatter{style: style}
	f.registry = f.builtins()
	return f
}

// Format renders data as returned for the daemon action. Unknown actions and
// renderers that fail on an unexpected shape use the generic rendering.
func (f *Formatter) Format(action string, data json.RawMessage) (out string) {
	p := decodePayload(data)

	render, ok := f.registry[action]
	if !ok {
		return f.fallback(p)
	}

	defer func() {
		if recover() != nil {
			out = f.fallback(p)
		}
	}()

	s, err := render(p)
	if err != nil {
		return f.fallback(p)
	}
	return s
}

// fallback renders null as a done marker, strings verbatim and anything else
// as indented JSON.
func (f *Formatter) fallback(p payload) string {
	switch v := p.value.(type) {
	case nil:
		return f.style.OK("Done")
	case string:
		return v
	default:
		return indentJSON(p.raw)
	}
}

// RenderJSON prints resp exactly as received, indented by two spaces.
func RenderJSON(resp *ipc.Response) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Raw, "", "  "); err != nil {
		return "", fmt.Errorf("indenting response: %w", err)
	}
	return buf.String(), nil
}

func decodePayload(data json.RawMessage) payload {
	p := payload{raw: bytes.TrimSpace(data)}
	if len(p.raw) == 0 {
		p.raw = nil
		return p
	}
	dec := json.NewDecoder(bytes.NewReader(p.raw))
	dec.UseNumber()
	if err := dec.Decode(&p.value); err != nil {
		p.value = string(p.raw)
	}
	return p
}

func indentJSON(raw json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func (f *Formatter) builtins() map[string]formatFunc {
	done := func(msg string) formatFunc {
		return func(payload) (string, error) { return f.style.OK(msg), nil }
	}
	flag := func(key, yes, no string) formatFunc {
		return func(p payload) (string, error) {
			if truthy(coalesce(field(p.value, key), p.value)) {
				return yes, nil
			}
			return no, nil
		}
	}
	fieldOrData := func(key string) formatFunc {
		return func(p payload) (string, error) {
			if v := field(p.value, key); truthy(v) {
				return display(v), nil
			}
			return display(p.value), nil
		}
	}
	saved := func(what, fallback string) formatFunc {
		return func(p payload) (string, error) {
			if path := field(p.value, "path"); truthy(path) {
				return f.style.OK(what + " saved: " + display(path)), nil
			}
			return f.style.OK(fallback), nil
		}
	}

	return map[string]formatFunc{
		"console": func(p payload) (string, error) {
			return lines(p.value, "messages", "No console messages", func(_ int, m any) string {
				return "[" + display(or(field(m, "type"), "log")) + "] " + display(field(m, "text"))
			})
		},
		"errors": func(p payload) (string, error) {
			return lines(p.value, "errors", "No JavaScript errors", func(_ int, e any) string {
				return "[ERROR] " + display(or(field(e, "message"), e))
			})
		},
		"requests": func(p payload) (string, error) {
			return lines(p.value, "requests", "No requests tracked", func(_ int, r any) string {
				return fmt.Sprintf("%s %s (%s)",
					display(or(field(r, "method"), "GET")),
					display(field(r, "url")),
					display(or(field(r, "resourceType"), "unknown")))
			})
		},

		"storageGet": func(p payload) (string, error) {
			if p.raw == nil {
				return "", nil
			}
			return indentJSON(p.raw), nil
		},
		"cookiesGet": func(p payload) (string, error) {
			return lines(p.value, "cookies", "No cookies", func(_ int, c any) string {
				return display(field(c, "name")) + "=" + display(field(c, "value"))
			})
		},

		"textContent": func(p payload) (string, error) {
			return display(coalesce(field(p.value, "text"), p.value)), nil
		},
		"isVisible": flag("visible", "visible", "not visible"),
		"isEnabled": flag("enabled", "enabled", "disabled"),
		"isChecked": flag("checked", "checked", "unchecked"),
		"isHidden":  flag("hidden", "hidden", "visible"),
		"count": func(p payload) (string, error) {
			return display(coalesce(field(p.value, "count"), p.value)) + " element(s)", nil
		},
		"boundingBox": func(p payload) (string, error) {
			if !truthy(p.value) {
				return "Element not found", nil
			}
			box, ok := p.value.(map[string]any)
			if !ok {
				return "", fmt.Errorf("bounding box is %T", p.value)
			}
			return fmt.Sprintf("x:%s y:%s w:%s h:%s",
				display(box["x"]), display(box["y"]), display(box["width"]), display(box["height"])), nil
		},

		"navigate": func(p payload) (string, error) {
			target := field(p.value, "url")
			if !truthy(target) {
				target = p.value
			}
			return f.style.OK("Navigated to: " + display(target)), nil
		},
		"url":     fieldOrData("url"),
		"title":   fieldOrData("title"),
		"back":    done("Navigated back"),
		"forward": done("Navigated forward"),
		"reload":  done("Page reloaded"),

		"snapshot":   fieldOrData("snapshot"),
		"screenshot": saved("Screenshot", "Screenshot taken"),
		"pdf":        saved("PDF", "PDF exported"),

		"evaluate": func(p payload) (string, error) {
			switch p.value.(type) {
			case nil:
				return "undefined", nil
			case map[string]any, []any:
				return indentJSON(p.raw), nil
			default:
				return display(p.value), nil
			}
		},

		"frames": func(p payload) (string, error) {
			return lines(p.value, "frames", "Only main frame", func(i int, fr any) string {
				return fmt.Sprintf("[%d] %s - %s", i, display(or(field(fr, "name"), "(unnamed)")), display(field(fr, "url")))
			})
		},
		"pages": func(p payload) (string, error) {
			return lines(p.value, "pages", "No pages open", func(i int, pg any) string {
				return fmt.Sprintf("[%d] %s - %s", i, display(or(field(pg, "title"), "(untitled)")), display(field(pg, "url")))
			})
		},

		"click":   done("Clicked"),
		"fill":    done("Filled"),
		"type":    done("Typed"),
		"press":   done("Key pressed"),
		"check":   done("Checked"),
		"uncheck": done("Unchecked"),
		"clear":   done("Cleared"),
		"hover":   done("Hovering"),
		"focus":   done("Focused"),
		"close":   done("Browser closed"),
		"launch":  done("Browser launched"),

		"waitForSelector":  done("Element found"),
		"waitForURL":       done("URL matched"),
		"waitForLoadState": done("Load state reached"),
		"waitForTimeout":   done("Wait completed"),
	}
}

// lines renders the list under key one item per line, or empty when the
// list is missing or has no items. A present non-list value is an error.
func lines(data any, key, empty string, item func(int, any) string) (string, error) {
	v := field(data, key)
	if !truthy(v) {
		return empty, nil
	}
	list, ok := v.([]any)
	if !ok {
		return "", fmt.Errorf("%s is %T, want a list", key, v)
	}
	if len(list) == 0 {
		return empty, nil
	}
	out := make([]string, 0, len(list))
	for i, entry := range list {
		out = append(out, item(i, entry))
	}
	return strings.Join(out, "\n"), nil
}

// field returns data[key] when data is an object, nil otherwise.
func field(data any, key string) any {
	m, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}

// coalesce returns v unless it is nil.
func coalesce(v, fallback any) any {
	if v == nil {
		return fallback
	}
	return v
}

// or returns v when it is truthy.
func or(v, fallback any) any {
	if truthy(v) {
		return v
	}
	return fallback
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		n, err := x.Float64()
		return err == nil && n != 0
	default:
		return true
	}
}

// display renders scalars as plain text and composites as compact JSON.
// Missing values render empty.
func display(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		if x {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}
