package deals

import "errors"

// Absence is never an error in this package. These kinds only describe
// collaborator failures, so callers can tell "not there" from "could not ask".
var (
	ErrStorage      = errors.New("deal storage unavailable")
	ErrMedia        = errors.New("media resolver failed")
	ErrTags         = errors.New("tag store failed")
	ErrViewer       = errors.New("viewer could not be resolved")
	ErrDealNotFound = errors.New("deal not found")
)
