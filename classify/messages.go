package classify

import "maps"

// GenericMessage is used for failure statuses missing from every table.
const GenericMessage = "Generic Error"

var builtinMessages = map[int]string{
	400: "Bad Request",
	401: "Unauthorized",
	403: "Forbidden",
	404: "Not Found",
	500: "Internal Server Error",
	502: "Bad Gateway",
	503: "Service Unavailable",
}

// DefaultMessages returns a copy of the built-in status->message table.
func DefaultMessages() map[int]string {
	return maps.Clone(builtinMessages)
}

// Merge layers tables left to right; later tables win. Nil tables are
// skipped and the inputs are never modified.
func Merge(tables ...map[int]string) map[int]string {
	size := 0
	for _, t := range tables {
		size += len(t)
	}
	out := make(map[int]string, size)
	for _, t := range tables {
		for status, msg := range t {
			out[status] = msg
		}
	}
	return out
}
