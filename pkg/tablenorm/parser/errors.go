package parser

import "errors"

// ErrInvalidWorkbook indicates the input is not a readable xlsx workbook.
var ErrInvalidWorkbook = errors.New("invalid xlsx workbook")

// ErrInvalidText indicates the input is not valid UTF-8 text.
var ErrInvalidText = errors.New("input is not valid UTF-8 text")

// ErrDelimitedParse indicates malformed delimited text, such as an
// unterminated quoted field.
var ErrDelimitedParse = errors.New("malformed delimited text")
