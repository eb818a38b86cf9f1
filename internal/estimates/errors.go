package estimates

import (
	"errors"
	"net/http"

	"github.com/tonsuu/tonsuu/pkg/pipeline"
)

// Domain errors for estimation operations.
var (
	ErrNoImages = errors.New("at least one image required")
	ErrBadImage = errors.New("image is not valid base64")
)

// MapHTTPStatus maps estimation domain errors to appropriate HTTP status
// codes. Terminal pipeline failures are client-visible analysis outcomes,
// not server faults.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoImages), errors.Is(err, ErrBadImage):
		return http.StatusBadRequest
	case errors.Is(err, pipeline.ErrNoValidGeometry), errors.Is(err, pipeline.ErrNoValidFill):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
