package urls

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// wildcardParam is the name chi gives to the trailing catch-all segment.
const wildcardParam = "*"

// segment is either literal text or a parameter placeholder.
type segment struct {
	re      *regexp.Regexp // nil when the parameter has no constraint
	literal string
	param   string
	isParam bool
}

// pattern is a parsed chi route pattern.
type pattern struct {
	raw      string
	segments []segment
	params   []string
}

// parsePattern parses chi pattern syntax: "{name}", "{name:regexp}" and a
// trailing "*".
func parsePattern(raw string) (*pattern, error) {
	if raw == "" || raw[0] != '/' {
		return nil, fmt.Errorf("%w: %q must begin with '/'", ErrInvalidPattern, raw)
	}

	p := &pattern{raw: raw}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			p.segments = append(p.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(raw); i++ {
		switch ch := raw[i]; ch {
		case '{':
			end, err := closingBrace(raw, i)
			if err != nil {
				return nil, err
			}
			flush()
			seg, err := parseParam(raw, raw[i+1:end])
			if err != nil {
				return nil, err
			}
			p.segments = append(p.segments, seg)
			p.params = append(p.params, seg.param)
			i = end
		case '*':
			if i != len(raw)-1 {
				return nil, fmt.Errorf("%w: %q wildcard must be the last character", ErrInvalidPattern, raw)
			}
			flush()
			p.segments = append(p.segments, segment{param: wildcardParam, isParam: true})
			p.params = append(p.params, wildcardParam)
		default:
			lit.WriteByte(ch)
		}
	}
	flush()

	seen := make(map[string]bool, len(p.params))
	for _, name := range p.params {
		if seen[name] {
			return nil, fmt.Errorf("%w: %q repeats parameter %q", ErrInvalidPattern, raw, name)
		}
		seen[name] = true
	}

	return p, nil
}

// closingBrace returns the index of the brace closing the one at start.
// Regular expressions may contain balanced braces themselves ("{id:[0-9]{3}}").
func closingBrace(raw string, start int) (int, error) {
	depth := 0
	for i := start; i < len(raw); i++ {
		switch raw[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("%w: %q has an unclosed '{'", ErrInvalidPattern, raw)
}

func parseParam(raw, body string) (segment, error) {
	name, expr, hasExpr := strings.Cut(body, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return segment{}, fmt.Errorf("%w: %q has an unnamed parameter", ErrInvalidPattern, raw)
	}

	seg := segment{param: name, isParam: true}
	if hasExpr && expr != "" {
		re, err := regexp.Compile("^(?:" + expr + ")$")
		if err != nil {
			return segment{}, fmt.Errorf("%w: %q parameter %q: %w", ErrInvalidPattern, raw, name, err)
		}
		seg.re = re
	}
	return seg, nil
}

// build renders the pattern with the given arguments. Exactly one of args and
// params may be non-empty.
func (p *pattern) build(args []string, params map[string]string) (string, error) {
	if len(args) > 0 && len(params) > 0 {
		return "", fmt.Errorf("%w: positional and named parameters cannot be mixed", ErrNoReverseMatch)
	}

	values, err := p.bind(args, params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, seg := range p.segments {
		if !seg.isParam {
			b.WriteString(seg.literal)
			continue
		}

		v := values[seg.param]
		if seg.param == wildcardParam {
			b.WriteString(escapeWildcard(v))
			continue
		}
		if err := seg.accepts(v); err != nil {
			return "", fmt.Errorf("%w: %q: %w", ErrNoReverseMatch, p.raw, err)
		}
		b.WriteString(url.PathEscape(v))
	}

	return b.String(), nil
}

// bind maps the caller's arguments onto parameter names.
func (p *pattern) bind(args []string, params map[string]string) (map[string]string, error) {
	values := make(map[string]string, len(p.params))
	wildcard := p.hasWildcard()

	if len(args) > 0 {
		required := len(p.params)
		if wildcard {
			required--
		}
		if len(args) < required || len(args) > len(p.params) {
			return nil, fmt.Errorf("%w: %q takes %d parameter(s), got %d", ErrNoReverseMatch, p.raw, len(p.params), len(args))
		}
		for i, v := range args {
			values[p.params[i]] = v
		}
		return values, nil
	}

	for name, v := range params {
		if !p.hasParam(name) {
			return nil, fmt.Errorf("%w: %q has no parameter %q", ErrNoReverseMatch, p.raw, name)
		}
		values[name] = v
	}
	for _, name := range p.params {
		if _, ok := values[name]; !ok && name != wildcardParam {
			return nil, fmt.Errorf("%w: %q requires parameter %q", ErrNoReverseMatch, p.raw, name)
		}
	}
	return values, nil
}

func (p *pattern) hasParam(name string) bool {
	for _, n := range p.params {
		if n == name {
			return true
		}
	}
	return false
}

func (p *pattern) hasWildcard() bool {
	n := len(p.params)
	return n > 0 && p.params[n-1] == wildcardParam
}

// accepts reports whether v can stand in for the parameter.
// Unconstrained chi parameters match one non-empty path segment.
func (s segment) accepts(v string) error {
	if s.re != nil {
		if !s.re.MatchString(v) {
			return fmt.Errorf("value %q does not match parameter %q", v, s.param)
		}
		return nil
	}
	if v == "" || strings.Contains(v, "/") {
		return fmt.Errorf("value %q is not a valid path segment for parameter %q", v, s.param)
	}
	return nil
}

func escapeWildcard(v string) string {
	parts := strings.Split(v, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

// joinPattern concatenates a mount prefix and a route pattern the way chi does.
func joinPattern(prefix, p string) string {
	if prefix == "" {
		return p
	}
	prefix = strings.TrimSuffix(prefix, "/")
	if p == "" || p == "/" {
		return prefix + "/"
	}
	return prefix + p
}
