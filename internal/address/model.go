package address

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

type Address struct {
	ID uuid.UUID `json:"id"`

	Label string `json:"label,omitempty"`
	Name  string `json:"name"`
	Phone string `json:"phone"`

	Line1    string  `json:"line1"`
	Street   string  `json:"street,omitempty"`
	Landmark *string `json:"landmark,omitempty"`
	Area     string  `json:"area"`
	City     string  `json:"city"`
	Pincode  string  `json:"pincode"`

	Lat *float64 `json:"lat,omitempty"`
	Lng *float64 `json:"lng,omitempty"`

	IsDefault bool `json:"isDefault"`
}

func (a *Address) Validate() error {
	if a.ID == uuid.Nil {
		return errors.New("address: missing id")
	}
	return nil
}

// OneLine is the address as a single string, the form checkout sends.
func (a *Address) OneLine() string {
	parts := []string{a.Line1, a.Street}
	if a.Landmark != nil {
		parts = append(parts, "near "+*a.Landmark)
	}
	parts = append(parts, a.Area, a.City)

	out := make([]string, 0, len(parts)+1)
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	line := strings.Join(out, ", ")
	if a.Pincode != "" {
		line += " - " + a.Pincode
	}
	return line
}

// Input is used for both create and update.
type Input struct {
	Label        string   `json:"label,omitempty"`
	Name         string   `json:"name"`
	Phone        string   `json:"phone"`
	Line1        string   `json:"line1"`
	Street       string   `json:"street,omitempty"`
	Landmark     *string  `json:"landmark,omitempty"`
	Area         string   `json:"area"`
	City         string   `json:"city"`
	Pincode      string   `json:"pincode"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	SetAsDefault bool     `json:"setAsDefault,omitempty"`
}
