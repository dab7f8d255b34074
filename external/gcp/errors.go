package gcp

import (
	"errors"

	"google.golang.org/api/googleapi"
)

// HTTPStatus returns the status code of a REST API error, 0 for transport
// failures.
func HTTPStatus(err error) int {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	return 0
}
