package request

import (
	"net/http"
	"net/textproto"

	"github.com/kbukum/apiclient/auth"
)

// Descriptor is a fully resolved request. Treat it as immutable once built;
// WithAuthorization returns a copy.
type Descriptor struct {
	// Operation is the originating operation name.
	Operation string
	// Method is the HTTP method.
	Method string
	// URL is the absolute URL including the query string.
	URL string
	// Header holds the merged request headers.
	Header http.Header
	// Body is the encoded body, nil when the request has none.
	Body []byte
	// ResponseHeader is copied from the operation.
	ResponseHeader string
	// Errors is the call-level status->message table.
	Errors map[int]string

	// explicit lists canonical header keys set by call-level parameters.
	explicit map[string]struct{}
}

// Clone returns a deep copy of the descriptor.
func (d *Descriptor) Clone() *Descriptor {
	c := *d
	c.Header = d.Header.Clone()
	if c.Header == nil {
		c.Header = make(http.Header)
	}
	if d.Body != nil {
		c.Body = append([]byte(nil), d.Body...)
	}
	if d.Errors != nil {
		c.Errors = make(map[int]string, len(d.Errors))
		for k, v := range d.Errors {
			c.Errors[k] = v
		}
	}
	c.explicit = make(map[string]struct{}, len(d.explicit))
	for k := range d.explicit {
		c.explicit[k] = struct{}{}
	}
	return &c
}

// WithAuthorization returns a copy carrying the resolved Authorization value.
// An empty value, or an Authorization header set by a call-level parameter,
// leaves the headers unchanged.
func (d *Descriptor) WithAuthorization(value string) *Descriptor {
	c := d.Clone()
	if value == "" || c.IsExplicit(auth.HeaderAuthorization) {
		return c
	}
	c.Header.Set(auth.HeaderAuthorization, value)
	return c
}

// IsExplicit reports whether the header was set by a call-level parameter.
func (d *Descriptor) IsExplicit(name string) bool {
	_, ok := d.explicit[textproto.CanonicalMIMEHeaderKey(name)]
	return ok
}
