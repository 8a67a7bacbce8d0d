package query

import "errors"

var (
	// ErrNotQueryable means an entity set has no usable query options left
	// after capabilities and restrictions are intersected.
	ErrNotQueryable = errors.New("entity set is not queryable")

	// ErrNoQueryableEntities means no entity set in the service survived the
	// capability and restriction intersection.
	ErrNoQueryableEntities = errors.New("no queryable entity sets")
)
