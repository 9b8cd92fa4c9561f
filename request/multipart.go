package request

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/textproto"
	"reflect"
)

// File is a file part of a multipart form.
type File struct {
	// Name is the file name sent to the server.
	Name string
	// ContentType is the MIME type. If empty, uses application/octet-stream.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader is an alternative to Data; it is drained at build time.
	Reader io.Reader
}

// encodeForm builds a multipart/form-data body. Fields are written in key
// order; nil values are skipped and slices become repeated fields.
func encodeForm(form map[string]any) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, key := range sortedKeys(form) {
		if err := writeFormValue(w, key, form[key]); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}

func writeFormValue(w *multipart.Writer, key string, v any) error {
	switch val := v.(type) {
	case nil:
		return nil
	case File:
		return writeFile(w, key, &val)
	case *File:
		if val == nil {
			return nil
		}
		return writeFile(w, key, val)
	case string:
		return w.WriteField(key, val)
	case []byte:
		return w.WriteField(key, string(val))
	}

	rv, ok := deref(v)
	if !ok {
		return nil
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if err := writeFormValue(w, key, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map, reflect.Struct:
		b, err := json.Marshal(rv.Interface())
		if err != nil {
			return err
		}
		return w.WriteField(key, string(b))
	}

	s, err := formatScalar(rv)
	if err != nil {
		return err
	}
	return w.WriteField(key, s)
}

func writeFile(w *multipart.Writer, key string, f *File) error {
	name := f.Name
	if name == "" {
		name = key
	}

	var (
		part io.Writer
		err  error
	)
	if f.ContentType != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition",
			`form-data; name="`+escapeQuotes(key)+`"; filename="`+escapeQuotes(name)+`"`)
		header.Set("Content-Type", f.ContentType)
		part, err = w.CreatePart(header)
	} else {
		part, err = w.CreateFormFile(key, name)
	}
	if err != nil {
		return err
	}

	if f.Data != nil {
		_, err = part.Write(f.Data)
		return err
	}
	if f.Reader != nil {
		_, err = io.Copy(part, f.Reader)
		return err
	}
	return nil
}

// escapeQuotes replaces special characters in header values.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
