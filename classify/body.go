package classify

import (
	"encoding/json"
	"mime"
	"strings"

	"github.com/kbukum/apiclient/transport"
)

// DecodeBody turns a response body into a payload: JSON is decoded into
// generic values, textual media types become strings, anything else stays
// as bytes. An empty body is nil.
func DecodeBody(resp *transport.Response) any {
	if resp == nil || len(resp.Body) == 0 {
		return nil
	}

	mediaType := ""
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, err := mime.ParseMediaType(ct); err == nil {
			mediaType = mt
		} else {
			mediaType = strings.ToLower(strings.TrimSpace(strings.SplitN(ct, ";", 2)[0]))
		}
	}

	switch {
	case isJSON(mediaType):
		var v any
		if err := json.Unmarshal(resp.Body, &v); err != nil {
			return string(resp.Body)
		}
		return v
	case mediaType == "" || isText(mediaType):
		return string(resp.Body)
	default:
		return resp.Body
	}
}

func isJSON(mediaType string) bool {
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func isText(mediaType string) bool {
	if strings.HasPrefix(mediaType, "text/") {
		return true
	}
	switch mediaType {
	case "application/xml", "application/x-www-form-urlencoded", "application/javascript":
		return true
	}
	return strings.HasSuffix(mediaType, "+xml")
}
