package request

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"time"
)

// deref unwraps pointers and interfaces; ok is false for nil.
func deref(v any) (reflect.Value, bool) {
	if v == nil {
		return reflect.Value{}, false
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, true
}

// formatScalar renders a single parameter value as text.
func formatScalar(rv reflect.Value) (string, error) {
	if t, ok := rv.Interface().(time.Time); ok {
		return t.Format(time.RFC3339), nil
	}
	if s, ok := rv.Interface().(fmt.Stringer); ok {
		return s.String(), nil
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64), nil
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes()), nil
		}
		b, err := json.Marshal(rv.Interface())
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(rv.Interface()), nil
	}
}

// formatValue renders a header, path or cookie value. ok is false for nil.
func formatValue(v any) (s string, ok bool, err error) {
	rv, ok := deref(v)
	if !ok {
		return "", false, nil
	}
	s, err = formatScalar(rv)
	return s, true, err
}

// appendQuery adds key=value pairs for v. Slices repeat the key, maps nest
// as key[sub]; nil values are skipped.
func appendQuery(q url.Values, key string, v any) error {
	rv, ok := deref(v)
	if !ok {
		return nil
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			q.Add(key, string(rv.Bytes()))
			return nil
		}
		for i := 0; i < rv.Len(); i++ {
			if err := appendQuery(q, key, rv.Index(i).Interface()); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		byName := make(map[string]reflect.Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			name := fmt.Sprint(iter.Key().Interface())
			keys = append(keys, name)
			byName[name] = iter.Value()
		}
		sort.Strings(keys)
		for _, name := range keys {
			if err := appendQuery(q, key+"["+name+"]", byName[name].Interface()); err != nil {
				return err
			}
		}
		return nil
	}
	s, err := formatScalar(rv)
	if err != nil {
		return err
	}
	q.Add(key, s)
	return nil
}

// sortedKeys returns map keys in a stable order.
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
