package shared

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrBodyNotObject is returned when the request body decodes to something
// other than a JSON object.
var ErrBodyNotObject = errors.New("request body must be a JSON object")

// DecodeJSONBody decodes the request body into a generic field map, the
// wire shape the service layer consumes. A body of "null" or a non-object
// value is rejected.
func DecodeJSONBody(r *http.Request) (map[string]any, error) {
	var fields map[string]any
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, ErrBodyNotObject
	}
	return fields, nil
}
