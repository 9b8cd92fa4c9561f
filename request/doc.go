// Package request turns an Operation, the per-call description produced by a
// generated wrapper, into a transport-ready Descriptor.
//
// Parameters are placed by location:
//
//   - Path values replace {name} placeholders in the URL template; every
//     placeholder is required. {api-version} is filled from the client version.
//   - Query values become the query string; nil values are omitted.
//   - Header values are merged over the client default headers.
//   - Cookie values are joined into a single Cookie header.
//   - Body is JSON-encoded (or sent raw for strings, bytes and readers);
//     FormData is encoded as multipart/form-data. The two are exclusive.
//
// Building never touches the network. Errors are *errors.AppError values
// with a build-time code.
package request
