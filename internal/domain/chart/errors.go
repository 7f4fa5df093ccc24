package chart

import "errors"

// ErrUnknownStat is returned for stat names outside the catalogue.
var ErrUnknownStat = errors.New("unknown stat")
