package booking

import (
	"errors"
	"strings"
	"time"
)

type ServiceType string

const (
	ServicePlumbing        ServiceType = "plumbing"
	ServiceElectrical      ServiceType = "electrical"
	ServiceCarpentry       ServiceType = "carpentry"
	ServiceApplianceRepair ServiceType = "appliance_repair"
	ServiceACService       ServiceType = "ac_service"
	ServiceCleaning        ServiceType = "cleaning"
	ServicePainting        ServiceType = "painting"
	ServicePestControl     ServiceType = "pest_control"
)

func ServiceTypes() []ServiceType {
	return []ServiceType{
		ServicePlumbing,
		ServiceElectrical,
		ServiceCarpentry,
		ServiceApplianceRepair,
		ServiceACService,
		ServiceCleaning,
		ServicePainting,
		ServicePestControl,
	}
}

func (s ServiceType) Valid() bool {
	for _, known := range ServiceTypes() {
		if s == known {
			return true
		}
	}
	return false
}

// Label turns "appliance_repair" into "Appliance Repair".
func (s ServiceType) Label() string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		switch {
		case w == "ac":
			words[i] = "AC"
		case w != "":
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Location is where the technician should go. Lat/Lng are set once a point
// is picked on the map.
type Location struct {
	Address  string   `json:"address"`
	Street   string   `json:"street"`
	Landmark string   `json:"landmark,omitempty"`
	Area     string   `json:"area"`
	Pincode  string   `json:"pincode"`
	Lat      *float64 `json:"lat,omitempty"`
	Lng      *float64 `json:"lng,omitempty"`
}

// Request is the booking form payload. AllowDuplicate is only set on the
// resubmission that follows a confirmed duplicate warning.
type Request struct {
	Name           string      `json:"name"`
	Email          string      `json:"email"`
	Phone          string      `json:"phone"`
	ServiceType    ServiceType `json:"serviceType"`
	Date           string      `json:"date"`
	TimeSlot       string      `json:"timeSlot"`
	Location       Location    `json:"location"`
	Notes          string      `json:"notes,omitempty"`
	AllowDuplicate bool        `json:"allowDuplicate,omitempty"`
}

type Status string

const (
	StatusRequested Status = "requested"
	StatusAssigned  Status = "assigned"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

type Booking struct {
	ID          string      `json:"id"`
	TrackingID  string      `json:"trackingId"`
	ServiceType ServiceType `json:"serviceType"`
	Date        string      `json:"date"`
	TimeSlot    string      `json:"timeSlot"`
	Status      Status      `json:"status"`
	Address     string      `json:"address,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// Tracking is the id shown to the customer.
func (b *Booking) Tracking() string {
	if b.TrackingID != "" {
		return b.TrackingID
	}
	return b.ID
}

func (b *Booking) Validate() error {
	if strings.TrimSpace(b.ID) == "" {
		return errors.New("booking: missing id")
	}
	return nil
}

type ListQuery struct {
	Page  int
	Limit int
}

type List struct {
	Items []Booking
	Total int
}
