package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"net/url"
	"reflect"
	"strings"

	"golang.org/x/net/http/httpguts"

	"github.com/kbukum/apiclient/errors"
)

// Header names and media types used when building requests.
const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderCookie      = "Cookie"

	MediaTypeJSON   = "application/json"
	MediaTypeText   = "text/plain"
	MediaTypeBinary = "application/octet-stream"

	// VersionPlaceholder is substituted with the client API version.
	VersionPlaceholder = "api-version"
)

// Builder builds descriptors against a fixed base URL, API version and set of
// default headers.
type Builder struct {
	base    string
	version string
	headers http.Header
}

// NewBuilder creates a Builder. The header map is copied.
func NewBuilder(base, version string, headers map[string]string) *Builder {
	h := make(http.Header, len(headers)+1)
	h.Set(HeaderAccept, MediaTypeJSON)
	for k, v := range headers {
		h.Set(k, v)
	}
	return &Builder{base: base, version: version, headers: h}
}

// Build resolves op into a Descriptor. It performs no I/O beyond draining
// readers supplied as body or file content.
func (b *Builder) Build(op Operation) (*Descriptor, error) {
	if err := op.Validate(); err != nil {
		return nil, err
	}
	if len(op.FormData) > 0 && hasValue(op.Body) {
		return nil, errors.InvalidInput("body", "body and form data are mutually exclusive")
	}

	path, err := b.expandPath(op.URL, op.Path)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	for _, k := range sortedKeys(op.Query) {
		if err := appendQuery(query, k, op.Query[k]); err != nil {
			return nil, errors.InvalidFormat(k, err)
		}
	}

	d := &Descriptor{
		Operation:      op.Name,
		Method:         op.Method,
		URL:            joinURL(b.base, path, query),
		Header:         b.headers.Clone(),
		ResponseHeader: op.ResponseHeader,
		explicit:       make(map[string]struct{}),
	}
	if len(op.Errors) > 0 {
		d.Errors = make(map[int]string, len(op.Errors))
		for k, v := range op.Errors {
			d.Errors[k] = v
		}
	}

	if err := b.encodeBody(d, op); err != nil {
		return nil, err
	}
	if err := applyCookies(d, op.Cookies); err != nil {
		return nil, err
	}
	if err := applyHeaders(d, op.Headers); err != nil {
		return nil, err
	}
	return d, nil
}

// expandPath substitutes {name} placeholders. A missing or nil value is a
// MISSING_FIELD error.
func (b *Builder) expandPath(tmpl string, params map[string]any) (string, error) {
	var sb strings.Builder
	for {
		open := strings.IndexByte(tmpl, '{')
		if open < 0 {
			sb.WriteString(tmpl)
			return sb.String(), nil
		}
		end := strings.IndexByte(tmpl[open:], '}')
		if end < 0 {
			return "", errors.InvalidInput("url", "unbalanced placeholder")
		}
		end += open
		name := tmpl[open+1 : end]
		sb.WriteString(tmpl[:open])

		if name == VersionPlaceholder {
			sb.WriteString(url.PathEscape(b.version))
		} else {
			val, ok, err := formatValue(params[name])
			if err != nil {
				return "", errors.InvalidFormat(name, err)
			}
			if !ok {
				return "", errors.MissingField(name)
			}
			sb.WriteString(url.PathEscape(val))
		}
		tmpl = tmpl[end+1:]
	}
}

// hasValue reports whether a body is present. Nil pointers, maps and slices
// count as absent.
func hasValue(v any) bool {
	rv, ok := deref(v)
	if !ok {
		return false
	}
	switch rv.Kind() {
	case reflect.Map, reflect.Slice:
		return !rv.IsNil()
	}
	return true
}

func joinURL(base, path string, query url.Values) string {
	if strings.HasSuffix(base, "/") && strings.HasPrefix(path, "/") {
		base = strings.TrimSuffix(base, "/")
	}
	u := base + path
	if encoded := query.Encode(); encoded != "" {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + encoded
	}
	return u
}

// encodeBody sets Body and Content-Type on d.
func (b *Builder) encodeBody(d *Descriptor, op Operation) error {
	if len(op.FormData) > 0 {
		body, contentType, err := encodeForm(op.FormData)
		if err != nil {
			return errors.InvalidFormat("form_data", err)
		}
		d.Body = body
		d.Header.Set(HeaderContentType, contentType)
		return nil
	}
	if !hasValue(op.Body) {
		return nil
	}

	body, inferred, err := encodeBody(op.Body)
	if err != nil {
		return errors.InvalidFormat("body", err)
	}
	d.Body = body
	if op.MediaType != "" {
		d.Header.Set(HeaderContentType, op.MediaType)
	} else {
		d.Header.Set(HeaderContentType, inferred)
	}
	return nil
}

// encodeBody converts a body value into bytes and an inferred content type.
func encodeBody(body any) ([]byte, string, error) {
	switch v := body.(type) {
	case string:
		return []byte(v), MediaTypeText, nil
	case []byte:
		return v, MediaTypeBinary, nil
	case io.Reader:
		data, err := io.ReadAll(v)
		if err != nil {
			return nil, "", err
		}
		return data, MediaTypeBinary, nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return data, MediaTypeJSON, nil
	}
}

func applyCookies(d *Descriptor, cookies map[string]any) error {
	pairs := make([]string, 0, len(cookies))
	for _, name := range sortedKeys(cookies) {
		val, ok, err := formatValue(cookies[name])
		if err != nil {
			return errors.InvalidFormat(name, err)
		}
		if !ok {
			continue
		}
		if (&http.Cookie{Name: name, Value: val}).Valid() != nil {
			return errors.InvalidFormat(name, fmt.Errorf("invalid cookie %q", name))
		}
		pairs = append(pairs, name+"="+val)
	}
	if len(pairs) == 0 {
		return nil
	}
	d.Header.Set(HeaderCookie, strings.Join(pairs, "; "))
	d.explicit[HeaderCookie] = struct{}{}
	return nil
}

// applyHeaders merges call-level headers over the defaults. Names are
// case-insensitive.
func applyHeaders(d *Descriptor, headers map[string]any) error {
	for _, name := range sortedKeys(headers) {
		val, ok, err := formatValue(headers[name])
		if err != nil {
			return errors.InvalidFormat(name, err)
		}
		if !ok {
			continue
		}
		if err := CheckHeader(name, val); err != nil {
			return errors.InvalidFormat(name, err)
		}
		key := textproto.CanonicalMIMEHeaderKey(name)
		d.Header.Set(key, val)
		d.explicit[key] = struct{}{}
	}
	return nil
}

// CheckHeader reports whether name and value can be sent as an HTTP header.
func CheckHeader(name, value string) error {
	if !httpguts.ValidHeaderFieldName(name) {
		return fmt.Errorf("invalid header name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return fmt.Errorf("invalid value for header %q", name)
	}
	return nil
}
