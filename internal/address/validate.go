package address

import (
	"strings"

	"localmart/internal/validators"
)

// Validate applies the same phone, pincode and coordinate rules as a
// booking location.
func (in Input) Validate() error {
	errs := validators.FieldErrors{}

	if !validators.Required(in.Name) {
		errs.Add("name", "name is required")
	}
	if err := validators.ValidatePhone(in.Phone); err != nil {
		errs.Add("phone", err.Error())
	}
	if !validators.Required(in.Line1) {
		errs.Add("line1", "address is required")
	}
	if !validators.Required(in.Area) {
		errs.Add("area", "area is required")
	}
	if !validators.Required(in.City) {
		errs.Add("city", "city is required")
	}
	if err := validators.ValidatePincode(in.Pincode); err != nil {
		errs.Add("pincode", err.Error())
	}
	switch {
	case in.Lat == nil && in.Lng == nil:
	case in.Lat == nil || in.Lng == nil:
		errs.Add("coordinates", "latitude and longitude go together")
	default:
		if err := validators.ValidateCoordinates(*in.Lat, *in.Lng); err != nil {
			errs.Add("coordinates", err.Error())
		}
	}
	return errs.Err()
}

func (in Input) normalized() Input {
	in.Label = strings.TrimSpace(in.Label)
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Line1 = strings.TrimSpace(in.Line1)
	in.Street = strings.TrimSpace(in.Street)
	in.Area = strings.TrimSpace(in.Area)
	in.City = strings.TrimSpace(in.City)
	in.Pincode = strings.TrimSpace(in.Pincode)
	if in.Landmark != nil {
		lm := strings.TrimSpace(*in.Landmark)
		if lm == "" {
			in.Landmark = nil
		} else {
			in.Landmark = &lm
		}
	}
	return in
}
