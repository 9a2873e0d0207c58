package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// AutomationRequest is the body the workflow engine posts to an
// integration action URL. Only the input fields are used.
type AutomationRequest struct {
	Payload struct {
		InputFields InputFields `json:"inputFields"`
	} `json:"payload"`
}

type InputFields struct {
	ItemID ID `json:"itemId"`
	UserID ID `json:"userId"`
}

// ID accepts both JSON numbers and strings; the automation engine sends
// numeric ids while the GraphQL API treats them as strings.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// CalculateResponse is returned by the calculate-and-update-parent endpoint.
type CalculateResponse struct {
	Progress     int    `json:"progress"`
	ParentStatus string `json:"parentStatus"`
	Message      string `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
