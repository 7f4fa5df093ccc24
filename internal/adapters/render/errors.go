package render

import "errors"

// ErrNoData is returned when a chart has no points to draw.
var ErrNoData = errors.New("chart has no points")
