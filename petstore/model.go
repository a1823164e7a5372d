package petstore

import (
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Status is the sale status of a pet.
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusSold      Status = "sold"
)

// AllStatuses lists the statuses the API accepts.
var AllStatuses = []Status{StatusAvailable, StatusPending, StatusSold}

func (s Status) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// Pet is the main entity of the API. Name and PhotoURLs are required by the API.
type Pet struct {
	ID        int64     `json:"id"`
	Category  *Category `json:"category,omitempty"`
	Name      string    `json:"name"`
	PhotoURLs []string  `json:"photoUrls"`
	Tags      []Tag     `json:"tags,omitempty"`
	Status    Status    `json:"status,omitempty"`
}

type Category struct {
	ID   ldvalue.OptionalInt `json:"id"`
	Name string              `json:"name,omitempty"`
}

type Tag struct {
	ID   ldvalue.OptionalInt `json:"id"`
	Name string              `json:"name,omitempty"`
}

// TagNames returns the names of the pet's tags, in order.
func (p Pet) TagNames() []string {
	names := make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		names = append(names, t.Name)
	}
	return names
}

// APIResponse is the body the API sends for errors and for deletions.
type APIResponse struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
}
