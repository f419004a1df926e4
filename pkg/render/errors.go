package render

import (
	"errors"
	"strings"

	"github.com/goliatone/go-cvform/pkg/model"
	"github.com/goliatone/go-cvform/pkg/session"
	"github.com/goliatone/go-cvform/pkg/validation"
)

// FieldPath joins a section and key into the dotted path used as an Errors
// key.
func FieldPath(section, key string) string {
	section = strings.TrimSpace(section)
	key = strings.TrimSpace(key)
	if section == "" {
		return key
	}
	if key == "" {
		return section
	}
	return section + "." + key
}

// DraftErrors runs the advisory kind checks over every set draft value in
// view and returns the messages keyed by field path.
func DraftErrors(view session.View) map[string][]string {
	out := make(map[string][]string)
	for _, section := range view.Sections {
		values := make(map[string]string)
		for key, value := range section.Draft.Values() {
			if text, ok := value.Get(); ok {
				values[key] = text
			}
		}
		for key, messages := range validation.Record(section.Schema, values) {
			path := FieldPath(section.Schema.Name, key)
			out[path] = append(out[path], messages...)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ErrorsFromEvent maps an error returned by a session event onto an Errors
// payload: unknown keys attach to the section, everything else to section
// level as well so nothing is lost.
func ErrorsFromEvent(section string, err error) map[string][]string {
	if err == nil {
		return nil
	}
	var incomplete *model.IncompleteRecordError
	if errors.As(err, &incomplete) {
		out := make(map[string][]string, len(incomplete.Missing)+1)
		for _, key := range incomplete.Missing {
			out[FieldPath(section, key)] = []string{"required"}
		}
		out[section] = []string{err.Error()}
		return out
	}
	return map[string][]string{section: {err.Error()}}
}

// MergeErrors combines error payloads, removing duplicate messages while
// preserving order.
func MergeErrors(payloads ...map[string][]string) map[string][]string {
	out := make(map[string][]string)
	for _, payload := range payloads {
		for path, messages := range payload {
			out[path] = normalizeMessages(append(out[path], messages...))
		}
	}
	for path, messages := range out {
		if len(messages) == 0 {
			delete(out, path)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
