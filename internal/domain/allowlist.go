package domain

import "time"

// AllowListEntry is an externally managed mobile number permitted to have its
// account auto-activated at registration or login time.
type AllowListEntry struct {
	Mobile    string    `json:"mobile" dynamodbav:"mobile"`
	Active    bool      `json:"active" dynamodbav:"active"`
	Note      string    `json:"note,omitempty" dynamodbav:"note"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
}

type CreateAllowListRequest struct {
	Mobile string `json:"mobile" validate:"required,mobile"`
	Active *bool  `json:"active"`
	Note   string `json:"note"`
}
