package naming

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ncruces/go-strftime"

	"github.com/backmassage/vectorgen/internal/config"
)

// Template is an output_name pattern after {$parameter_name} substitution,
// with its %-directives extracted in order of appearance.
type Template struct {
	text       string
	directives []string
}

// ParseTemplate substitutes parameterName for the {$parameter_name} token
// and tokenizes the result. The token substitution is a single
// non-recursive pass.
func ParseTemplate(pattern, parameterName string) Template {
	text := strings.ReplaceAll(pattern, config.ParameterNameToken, parameterName)
	return Template{text: text, directives: Directives(text)}
}

// Directives returns, left to right, every window of s made of a '%' and
// the rune after it. Windows may overlap ("%%Y" yields "%%" and "%Y") and
// duplicates are kept. A trailing '%' with nothing after it is ignored.
func Directives(s string) []string {
	var out []string
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '%' {
			_, size := utf8.DecodeRuneInString(s[i+1:])
			out = append(out, s[i:i+1+size])
		}
	}
	return out
}

// Text returns the template after token substitution, before directives
// are expanded.
func (t Template) Text() string { return t.text }

// Directives returns a copy of the collected directives.
func (t Template) Directives() []string {
	return append([]string(nil), t.directives...)
}

// Expand formats each collected directive against ts and replaces its first
// remaining occurrence, in collection order.
func (t Template) Expand(ts time.Time) string {
	out := t.text
	for _, d := range t.directives {
		out = strings.Replace(out, d, strftime.Format(d, ts), 1)
	}
	return out
}
