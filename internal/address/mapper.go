package address

import "localmart/internal/booking"

// ToBookingLocation fills a booking's location from a saved address.
func ToBookingLocation(a *Address) booking.Location {
	loc := booking.Location{
		Address: a.OneLine(),
		Street:  a.Street,
		Area:    a.Area,
		Pincode: a.Pincode,
		Lat:     a.Lat,
		Lng:     a.Lng,
	}
	if loc.Street == "" {
		loc.Street = a.Line1
	}
	if a.Landmark != nil {
		loc.Landmark = *a.Landmark
	}
	return loc
}
