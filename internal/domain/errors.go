// Package domain holds errors shared by every entity package.
package domain

import "errors"

// ErrStillReferenced is returned by repositories when a delete is rejected
// because other records point at the row.
var ErrStillReferenced = errors.New("still referenced by dependent records")
