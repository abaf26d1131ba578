package repositories

import "errors"

// ErrNotFound is returned by all repositories when a lookup matches no row.
var ErrNotFound = errors.New("record not found")
