// Package filter selects parsed hosts file lines by pattern.
package filter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ccollicutt/hostgrep/pkg/hostsfile"
)

// Field names the part of a line a pattern is matched against.
type Field string

const (
	FieldAny     Field = "any"
	FieldIP      Field = "ip"
	FieldHosts   Field = "hosts"
	FieldComment Field = "comment"
)

// ParseField validates a field name. The empty string selects FieldAny.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(s)); f {
	case "":
		return FieldAny, nil
	case FieldAny, FieldIP, FieldHosts, FieldComment:
		return f, nil
	default:
		return "", fmt.Errorf("invalid field %q (must be any, ip, hosts, or comment)", s)
	}
}

// Filter decides which lines are reported.
type Filter struct {
	pattern string
	field   Field
	useRe   bool
	all     bool

	re *regexp.Regexp
}

// Option configures a Filter.
type Option func(*Filter)

// WithPattern sets the pattern. An empty pattern matches every line.
func WithPattern(p string) Option {
	return func(f *Filter) {
		f.pattern = p
	}
}

// WithField restricts matching to one field of the line.
func WithField(field Field) Option {
	return func(f *Filter) {
		if field != "" {
			f.field = field
		}
	}
}

// WithRegexp treats the pattern as a regular expression.
func WithRegexp(v bool) Option {
	return func(f *Filter) {
		f.useRe = v
	}
}

// WithAll includes blank and comment lines instead of host entries only.
func WithAll(v bool) Option {
	return func(f *Filter) {
		f.all = v
	}
}

// New creates a Filter from options.
func New(opts ...Option) (*Filter, error) {
	f := &Filter{field: FieldAny}

	for _, opt := range opts {
		opt(f)
	}

	if f.useRe && f.pattern != "" {
		re, err := regexp.Compile(f.pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", f.pattern, err)
		}
		f.re = re
	}

	return f, nil
}

// Pattern returns the configured pattern.
func (f *Filter) Pattern() string {
	return f.pattern
}

// Match reports whether the line should be reported.
func (f *Filter) Match(l hostsfile.Line) bool {
	if !f.all && !l.ContainsHost() {
		return false
	}

	if f.pattern == "" {
		return true
	}

	var subject string
	switch f.field {
	case FieldIP:
		if l.IP == nil {
			return false
		}
		subject = *l.IP
	case FieldHosts:
		if l.Hosts == nil {
			return false
		}
		subject = *l.Hosts
	case FieldComment:
		if l.Comment == nil {
			return false
		}
		subject = *l.Comment
	default:
		subject = l.Raw
	}

	if f.re != nil {
		return f.re.MatchString(subject)
	}
	return strings.Contains(subject, f.pattern)
}
