package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// TripRequest is one submission of the trip-planning form.
// Both the single-date shape (tripDate + durationDays) and the
// range shape (startDate/endDate) are accepted.
type TripRequest struct {
	Destination    string `json:"destination"`
	TripDate       string `json:"tripDate"`
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	Travelers      Text   `json:"travelers"`
	Budget         string `json:"budget"`
	BudgetValue    Text   `json:"budgetValue"`
	Pace           string `json:"pace"`
	DurationDays   Text   `json:"durationDays"`
	Interests      Tags   `json:"interests"`
	Transportation string `json:"transportation"`
	Notes          string `json:"notes"`
}

// PromptPair is what gets sent to the completion service.
type PromptPair struct {
	System string
	User   string
}

// ItineraryResult is the normalized outcome of one generation call.
type ItineraryResult struct {
	Itinerary string `json:"itinerary,omitempty"`
	Error     string `json:"error,omitempty"`
	Status    int    `json:"-"`
}

func (r ItineraryResult) Failed() bool {
	return r.Error != ""
}

// Text holds a form value that may arrive as a JSON string or number.
// Numbers are kept verbatim; null decodes to empty.
type Text string

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*t = Text(n.String())
	return nil
}

func (t Text) String() string { return string(t) }

// Tags is the ordered interest list. Anything other than an array of
// strings decodes to an empty list.
type Tags []string

func (t *Tags) UnmarshalJSON(b []byte) error {
	var raw []any
	if err := json.Unmarshal(b, &raw); err != nil {
		*t = nil
		return nil
	}
	out := make(Tags, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	*t = out
	return nil
}
