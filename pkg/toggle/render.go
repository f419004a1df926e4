package toggle

import (
	"fmt"
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	childPolicyOnce sync.Once
	childPolicy     *bluemonday.Policy
)

// RenderHTML returns the inner markup of the toggle button for c. Child
// markup of Avatar and Badge is sanitised; icon URLs are re-validated and
// dropped when unsafe.
func RenderHTML(c Content) string {
	switch v := c.(type) {
	case Hamburger:
		return `<span class="cv-toggle__hamburger" aria-hidden="true"><span></span><span></span><span></span></span>`
	case Icon:
		if checkIconURL(v.URL) != nil {
			return ""
		}
		return fmt.Sprintf(`<img class="cv-toggle__icon" src="%s" alt="%s">`,
			html.EscapeString(strings.TrimSpace(v.URL)), html.EscapeString(v.Alt))
	case Avatar:
		return `<span class="cv-toggle__avatar">` + sanitizeChildren(v.Children) + `</span>`
	case Badge:
		return `<span class="cv-toggle__badge">` + sanitizeChildren(v.Children) + `</span>`
	default:
		return ""
	}
}

// Label returns a plain-text description of c for terminals and
// aria-labels.
func Label(c Content) string {
	switch v := c.(type) {
	case Hamburger:
		return "Menu"
	case Icon:
		if v.Alt != "" {
			return v.Alt
		}
		return "Menu"
	case Avatar:
		return plainText(v.Children)
	case Badge:
		return plainText(v.Children)
	default:
		return ""
	}
}

func sanitizeChildren(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(childSanitizer().Sanitize(trimmed))
}

func plainText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(bluemonday.StrictPolicy().Sanitize(raw)))
}

func childSanitizer() *bluemonday.Policy {
	childPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("span", "strong", "em", "b", "i", "small", "abbr")
		policy.AllowAttrs("class", "title").OnElements("span", "abbr")
		policy.AllowImages()
		policy.AllowAttrs("class").OnElements("img")
		childPolicy = policy
	})
	return childPolicy
}
