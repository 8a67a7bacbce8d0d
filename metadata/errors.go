package metadata

import "errors"

// ErrNoEntitySets is returned when a metadata document declares no usable
// entity sets.
var ErrNoEntitySets = errors.New("metadata declares no entity sets")
