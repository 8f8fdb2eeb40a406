package booking

import (
	"errors"
	"testing"
	"time"

	"localmart/internal/validators"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

func validRequest() Request {
	return Request{
		Name:        "Ravi Kumar",
		Email:       "ravi@example.com",
		Phone:       "9876543210",
		ServiceType: ServicePlumbing,
		Date:        "2026-03-12",
		TimeSlot:    "10:30",
		Location: Location{
			Address: "14, 2nd Cross, Indiranagar",
			Street:  "2nd Cross",
			Area:    "Indiranagar",
			Pincode: "560038",
		},
	}
}

func fieldErrors(t *testing.T, err error) validators.FieldErrors {
	t.Helper()
	var fe validators.FieldErrors
	require.True(t, errors.As(err, &fe), "expected field errors, got %v", err)
	return fe
}

func TestRequest_Validate(t *testing.T) {
	lat, lng := 12.97, 77.64
	badLat := 123.0

	cases := []struct {
		name  string
		edit  func(*Request)
		field string
	}{
		{"Valid", func(*Request) {}, ""},
		{"Valid with coordinates", func(r *Request) { r.Location.Lat, r.Location.Lng = &lat, &lng }, ""},
		{"Today is allowed", func(r *Request) { r.Date = "2026-03-10" }, ""},
		{"Last day of window", func(r *Request) { r.Date = "2026-04-09" }, ""},
		{"Past date", func(r *Request) { r.Date = "2026-03-09" }, "date"},
		{"Beyond window", func(r *Request) { r.Date = "2026-04-10" }, "date"},
		{"Bad date format", func(r *Request) { r.Date = "12/03/2026" }, "date"},
		{"Short phone", func(r *Request) { r.Phone = "12345" }, "phone"},
		{"Phone with letters", func(r *Request) { r.Phone = "98765abcde" }, "phone"},
		{"Bad email", func(r *Request) { r.Email = "ravi@example" }, "email"},
		{"Missing name", func(r *Request) { r.Name = " " }, "name"},
		{"Unknown service", func(r *Request) { r.ServiceType = "astrology" }, "serviceType"},
		{"Slot before opening", func(r *Request) { r.TimeSlot = "08:30" }, "timeSlot"},
		{"Slot after closing", func(r *Request) { r.TimeSlot = "20:30" }, "timeSlot"},
		{"Off-grid slot", func(r *Request) { r.TimeSlot = "10:15" }, "timeSlot"},
		{"Short pincode", func(r *Request) { r.Location.Pincode = "56003" }, "location.pincode"},
		{"Missing street", func(r *Request) { r.Location.Street = "" }, "location.street"},
		{"Missing area", func(r *Request) { r.Location.Area = "" }, "location.area"},
		{"Missing address", func(r *Request) { r.Location.Address = "" }, "location.address"},
		{"Half coordinates", func(r *Request) { r.Location.Lat = &lat }, "location.coordinates"},
		{"Out of range", func(r *Request) { r.Location.Lat, r.Location.Lng = &badLat, &lng }, "location.coordinates"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.edit(&req)

			err := req.Validate(testNow)
			if tc.field == "" {
				assert.NoError(t, err)
				return
			}
			fe := fieldErrors(t, err)
			assert.Len(t, fe, 1, "only %s should fail: %v", tc.field, fe)
			assert.True(t, fe.Has(tc.field))
		})
	}
}

func TestRequest_ValidateReportsEveryField(t *testing.T) {
	fe := fieldErrors(t, Request{}.Validate(testNow))
	for _, f := range []string{"name", "email", "phone", "serviceType", "date", "timeSlot",
		"location.address", "location.street", "location.area", "location.pincode"} {
		assert.True(t, fe.Has(f), "missing error for %s", f)
	}
	assert.False(t, fe.Has("location.landmark"))
}
