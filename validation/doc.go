// Package validation validates client configuration and operation
// descriptors with struct tags, using go-playground/validator.
//
//	type Operation struct {
//	    Method string `validate:"required,oneof=GET POST"`
//	    URL    string `validate:"required,urltemplate"`
//	}
//	err := validation.Validate(op)
//
// Failures are returned as *errors.AppError with code INVALID_INPUT and a
// "fields" detail listing every offending field.
package validation
