package booking

import (
	"time"

	"localmart/internal/validators"
)

// Validate checks every field of r against the form rules, with the date
// window anchored on now. It returns validators.FieldErrors or nil.
func (r Request) Validate(now time.Time) error {
	errs := validators.FieldErrors{}

	if !validators.Required(r.Name) {
		errs.Add("name", "name is required")
	}
	if err := validators.ValidateEmail(r.Email); err != nil {
		errs.Add("email", err.Error())
	}
	if err := validators.ValidatePhone(r.Phone); err != nil {
		errs.Add("phone", err.Error())
	}
	if !r.ServiceType.Valid() {
		errs.Add("serviceType", "choose a service")
	}

	if !validators.Required(r.Date) {
		errs.Add("date", "date is required")
	} else {
		first, last := DateWindow(now)
		d, err := time.ParseInLocation(DateLayout, r.Date, now.Location())
		switch {
		case err != nil:
			errs.Add("date", "date must look like YYYY-MM-DD")
		case d.Before(first):
			errs.Add("date", "date cannot be in the past")
		case d.After(last):
			errs.Add("date", "date must be within the next 30 days")
		}
	}

	if !validSlot(r.TimeSlot) {
		errs.Add("timeSlot", "choose a time between 09:00 and 20:00")
	}

	loc := r.Location
	if !validators.Required(loc.Address) {
		errs.Add("location.address", "address is required")
	}
	if !validators.Required(loc.Street) {
		errs.Add("location.street", "street is required")
	}
	if !validators.Required(loc.Area) {
		errs.Add("location.area", "area is required")
	}
	if err := validators.ValidatePincode(loc.Pincode); err != nil {
		errs.Add("location.pincode", err.Error())
	}
	if (loc.Lat == nil) != (loc.Lng == nil) {
		errs.Add("location.coordinates", "latitude and longitude go together")
	} else if loc.Lat != nil {
		if err := validators.ValidateCoordinates(*loc.Lat, *loc.Lng); err != nil {
			errs.Add("location.coordinates", err.Error())
		}
	}

	return errs.Err()
}
