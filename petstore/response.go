package petstore

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Response is the answer to one API call.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *Response) DecodePet() (Pet, error) {
	var p Pet
	err := r.decode(&p)
	return p, err
}

func (r *Response) DecodePets() ([]Pet, error) {
	var ps []Pet
	err := r.decode(&ps)
	return ps, err
}

func (r *Response) DecodeAPIResponse() (APIResponse, error) {
	var a APIResponse
	err := r.decode(&a)
	return a, err
}

func (r *Response) decode(target interface{}) error {
	if err := json.Unmarshal(r.Body, target); err != nil {
		return fmt.Errorf("response %s has unexpected body %q: %w", StatusText(r.StatusCode), truncate(r.Body), err)
	}
	return nil
}

func (r *Response) String() string {
	return fmt.Sprintf("%s %s", StatusText(r.StatusCode), truncate(r.Body))
}

const maxLoggedBody = 500

func truncate(body []byte) string {
	if len(body) > maxLoggedBody {
		return string(body[:maxLoggedBody]) + "..."
	}
	return string(body)
}
