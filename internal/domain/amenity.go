package domain

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

type AmenityCategory string

const (
	AmenityCategoryFitness    AmenityCategory = "FITNESS"
	AmenityCategoryRecreation AmenityCategory = "RECREATION"
	AmenityCategorySports     AmenityCategory = "SPORTS"
	AmenityCategorySwimming   AmenityCategory = "SWIMMING"
	AmenityCategoryEventHall  AmenityCategory = "EVENT_HALL"
	AmenityCategoryParking    AmenityCategory = "PARKING"
	AmenityCategoryGarden     AmenityCategory = "GARDEN"
	AmenityCategoryKidsPlay   AmenityCategory = "KIDS_PLAY"
	AmenityCategoryLibrary    AmenityCategory = "LIBRARY"
	AmenityCategoryOther      AmenityCategory = "OTHER"
)

var AmenityCategories = []AmenityCategory{
	AmenityCategoryFitness,
	AmenityCategoryRecreation,
	AmenityCategorySports,
	AmenityCategorySwimming,
	AmenityCategoryEventHall,
	AmenityCategoryParking,
	AmenityCategoryGarden,
	AmenityCategoryKidsPlay,
	AmenityCategoryLibrary,
	AmenityCategoryOther,
}

type AvailabilityStatus string

const (
	AvailabilityAvailable   AvailabilityStatus = "available"
	AvailabilityUnavailable AvailabilityStatus = "unavailable"
	AvailabilityMaintenance AvailabilityStatus = "maintenance"
	AvailabilityReserved    AvailabilityStatus = "reserved"
)

type BookingStatus string

const (
	BookingOpen            BookingStatus = "open"
	BookingBooked          BookingStatus = "booked"
	BookingPartiallyBooked BookingStatus = "partially_booked"
	BookingClosed          BookingStatus = "closed"
)

type OperatingHours struct {
	Start string   `json:"start"` // HH:MM
	End   string   `json:"end"`
	Days  []string `json:"days"`
}

type MaintenanceSchedule struct {
	NextDate  *time.Time `json:"next_date,omitempty"`
	LastDate  *time.Time `json:"last_date,omitempty"`
	Frequency string     `json:"frequency"`
	IsOverdue bool       `json:"is_overdue"`
}

type Pricing struct {
	HourlyRate            decimal.Decimal `json:"hourly_rate"`
	DailyRate             decimal.Decimal `json:"daily_rate"`
	MemberDiscountPercent decimal.Decimal `json:"member_discount_percent"`
	SecurityDeposit       decimal.Decimal `json:"security_deposit"`
}

type Usage struct {
	Daily   int `json:"daily"`
	Weekly  int `json:"weekly"`
	Monthly int `json:"monthly"`
}

type Review struct {
	Rating  int       `json:"rating"` // 1-5
	Comment string    `json:"comment"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

type Amenity struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Description        string              `json:"description"`
	Category           AmenityCategory     `json:"category"`
	Location           string              `json:"location"`
	Capacity           int                 `json:"capacity"`
	OperatingHours     OperatingHours      `json:"operating_hours"`
	AvailabilityStatus AvailabilityStatus  `json:"availability_status"`
	BookingStatus      BookingStatus       `json:"booking_status"`
	Maintenance        MaintenanceSchedule `json:"maintenance"`
	Pricing            Pricing             `json:"pricing"`
	Usage              Usage               `json:"usage"`
	Revenue            decimal.Decimal     `json:"revenue"`
	Reviews            []Review            `json:"reviews"`
	IsActive           bool                `json:"is_active"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}

func (a Amenity) Clone() Amenity {
	c := a
	c.OperatingHours.Days = slices.Clone(a.OperatingHours.Days)
	c.Reviews = slices.Clone(a.Reviews)
	return c
}

// AverageRating is the mean review rating, 0 when there are no reviews.
func (a Amenity) AverageRating() float64 {
	if len(a.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range a.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(a.Reviews))
}
