package email

import (
	"errors"
	"regexp"
	"time"
)

var ErrNotFound = errors.New("email template not found")

// Template is a reusable message body with {{placeholder}} slots.
type Template struct {
	ID       string
	TenantID string
	Name     string
	Subject  string
	Body     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)

// Render substitutes placeholders in the subject and body. Placeholders with
// no value are left in place so a missing field is visible in a preview
// instead of silently blank.
func (t *Template) Render(values map[string]string) (subject, body string) {
	return substitute(t.Subject, values), substitute(t.Body, values)
}

func substitute(s string, values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]

		if v, ok := values[name]; ok {
			return v
		}

		return match
	})
}

// Placeholders lists the distinct slot names used by the template.
func (t *Template) Placeholders() []string {
	seen := make(map[string]bool)

	var names []string

	for _, s := range []string{t.Subject, t.Body} {
		for _, m := range placeholderRe.FindAllStringSubmatch(s, -1) {
			if !seen[m[1]] {
				seen[m[1]] = true

				names = append(names, m[1])
			}
		}
	}

	return names
}
