package errors

import (
	stdErrors "errors"
	"fmt"
	"strings"
)

type Code string

const (
	CodeValidation    Code = "VALIDATION_ERROR"
	CodeParse         Code = "PARSE_ERROR"
	CodeDuplicateName Code = "DUPLICATE_NAME"
	CodeNotFound      Code = "NOT_FOUND"
	CodeIO            Code = "IO_ERROR"
	CodeInternal      Code = "INTERNAL_ERROR"
)

const (
	TitleError   = "Error"
	TitleSuccess = "Success"
)

// Metadata describes how a code is shown to the user. DetailsAllowed lets the
// text of an untyped root cause (an OS error, say) reach the user.
type Metadata struct {
	Title          string
	PublicMessage  string
	DetailsAllowed bool
}

var metadataByCode = map[Code]Metadata{
	CodeValidation: {
		Title:          TitleError,
		PublicMessage:  "All fields must be filled",
		DetailsAllowed: false,
	},
	CodeParse: {
		Title:          TitleError,
		PublicMessage:  "Price and Quantity must be numeric",
		DetailsAllowed: false,
	},
	CodeDuplicateName: {
		Title:          TitleError,
		PublicMessage:  "Product with the same name already exists",
		DetailsAllowed: false,
	},
	CodeNotFound: {
		Title:          TitleError,
		PublicMessage:  "Item not found",
		DetailsAllowed: false,
	},
	CodeIO: {
		Title:          TitleError,
		PublicMessage:  "File could not be accessed",
		DetailsAllowed: true,
	},
	CodeInternal: {
		Title:          TitleError,
		PublicMessage:  "Unexpected error",
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// CodeOf reports the code carried by err, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	if typed := As(err); typed != nil {
		return typed.Code()
	}
	return CodeInternal
}

// Is reports whether err carries the given code anywhere in its chain.
func Is(err error, code Code) bool {
	for e := err; e != nil; {
		typed := As(e)
		if typed == nil {
			return false
		}
		if typed.Code() == code {
			return true
		}
		e = typed.Unwrap()
	}
	return false
}

// Describe joins the messages of every typed error in the chain, outermost
// first. The untyped root cause is appended only when the outermost code
// allows details.
func Describe(err error) string {
	top := As(err)
	if top == nil {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	var parts []string
	var e error = top
	for e != nil {
		typed := As(e)
		if typed == nil {
			if MetadataFor(top.Code()).DetailsAllowed {
				parts = append(parts, e.Error())
			}
			break
		}
		if typed.Message() != "" {
			parts = append(parts, typed.Message())
		}
		e = typed.Unwrap()
	}
	if len(parts) == 0 {
		return MetadataFor(top.Code()).PublicMessage
	}
	return strings.Join(parts, ": ")
}
