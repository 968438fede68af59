package model

import "errors"

// ErrMissingColumns: the catalog source lacks a required column. Detected
// once against the header, before any row is indexed, and aborts the build.
var ErrMissingColumns = errors.New("catalog source is missing required columns")

// ErrEmptyCatalog: no usable rows survived (every row lacked a product
// name). Advisory: the returned index still works and yields no matches.
var ErrEmptyCatalog = errors.New("catalog has no usable rows")
