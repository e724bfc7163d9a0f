package api

// CreateTaskResponse is the response body for a successful task creation.
// The Location header carries the same id as a URI reference.
type CreateTaskResponse struct {
	ID string `json:"id"`
}
