package plan

import (
	"net/url"
	"path"
	"strings"

	"github.com/TFMV/ddlplan/pkg/errors"
)

// Location is anything that resolves to a canonical string identifier,
// such as a Path or a *url.URL.
type Location interface {
	String() string
}

// Path is a scheme-qualified, slash-separated location. The zero value is
// not valid; use NewPath.
//
// For URIs the path is kept in its escaped form, so an escaped separator
// such as %2F stays inside its segment.
type Path struct {
	scheme    string
	user      string
	authority string
	path      string
}

// NewPath parses raw into a cleaned Path. Both plain paths ("/tmp/x") and
// URIs ("hdfs://nn:8020/tmp/x", "file:/tmp/x") are accepted. A URI with a
// query or fragment is rejected since neither names a location.
func NewPath(raw string) (Path, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Path{}, errors.New(errors.CodeInvalidRequest, "path must not be empty")
	}

	if !strings.Contains(raw, ":") {
		return Path{path: path.Clean(raw)}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Path{}, errors.Wrapf(err, errors.CodeInvalidRequest, "invalid path %q", raw)
	}
	if u.Scheme == "" {
		return Path{path: path.Clean(raw)}, nil
	}
	if u.RawQuery != "" || u.ForceQuery {
		return Path{}, errors.New(errors.CodeInvalidRequest, "path must not carry a query").
			WithDetail("path", raw)
	}
	if u.Fragment != "" {
		return Path{}, errors.New(errors.CodeInvalidRequest, "path must not carry a fragment").
			WithDetail("path", raw)
	}

	p := u.EscapedPath()
	if p == "" {
		p = u.Opaque
	}
	if p == "" {
		p = "/"
	}

	out := Path{
		scheme:    strings.ToLower(u.Scheme),
		authority: u.Host,
		path:      path.Clean(p),
	}
	if u.User != nil {
		out.user = u.User.String()
	}
	return out, nil
}

// MustPath is like NewPath but panics on error.
func MustPath(raw string) Path {
	p, err := NewPath(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// Join returns a new Path with elem appended. Elements of a URI path are
// escaped segment by segment.
func (p Path) Join(elem ...string) Path {
	parts := make([]string, 0, len(elem)+1)
	parts = append(parts, p.path)
	for _, e := range elem {
		if p.scheme != "" {
			e = escapeSegments(e)
		}
		parts = append(parts, e)
	}
	out := p
	out.path = path.Join(parts...)
	return out
}

// Scheme returns the lower-cased scheme, or "" for a plain path.
func (p Path) Scheme() string {
	return p.scheme
}

// String renders scheme://[user@]authority/path, scheme:/path when there is
// no authority, or the bare path when there is no scheme.
func (p Path) String() string {
	switch {
	case p.scheme == "":
		return p.path
	case p.authority == "" && p.user == "":
		return p.scheme + ":" + p.path
	case p.user != "":
		return p.scheme + "://" + p.user + "@" + p.authority + p.path
	default:
		return p.scheme + "://" + p.authority + p.path
	}
}

func escapeSegments(elem string) string {
	segs := strings.Split(elem, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}
