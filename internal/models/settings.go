package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"restobar/internal/pricing"
)

// DaySchedule is one weekday's opening window. Times are "HH:MM" local.
type DaySchedule struct {
	IsOpen    bool   `bson:"isOpen" json:"is_open"`
	OpenTime  string `bson:"openTime,omitempty" json:"open_time,omitempty"`
	CloseTime string `bson:"closeTime,omitempty" json:"close_time,omitempty"`
}

// WeekSchedule holds the per-day windows keyed the way the admin panel
// edits them.
type WeekSchedule struct {
	Monday    DaySchedule `bson:"monday" json:"monday"`
	Tuesday   DaySchedule `bson:"tuesday" json:"tuesday"`
	Wednesday DaySchedule `bson:"wednesday" json:"wednesday"`
	Thursday  DaySchedule `bson:"thursday" json:"thursday"`
	Friday    DaySchedule `bson:"friday" json:"friday"`
	Saturday  DaySchedule `bson:"saturday" json:"saturday"`
	Sunday    DaySchedule `bson:"sunday" json:"sunday"`
}

func (w WeekSchedule) day(d time.Weekday) DaySchedule {
	switch d {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	default:
		return w.Sunday
	}
}

// Settings is the single process-wide restaurant record. It is read by the
// order path to derive delivery cost and the notification destination, and
// mutated only through the admin panel.
type Settings struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Phone          string             `bson:"phone" json:"phone"`
	WhatsAppNumber string             `bson:"whatsappNumber" json:"whatsapp_number"`
	Address        string             `bson:"address" json:"address"`
	IsDeliveryFree bool               `bson:"isDeliveryFree" json:"is_delivery_free"`
	DeliveryCost   pricing.Money      `bson:"deliveryCost" json:"delivery_cost"`
	OpeningHours   WeekSchedule       `bson:"openingHours" json:"opening_hours"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updated_at,omitempty"`
}

// DeliveryCostFor is zero for pickup and for the free-delivery override,
// otherwise the configured flat fee.
func (s Settings) DeliveryCostFor(mode DeliveryMode) pricing.Money {
	if mode != DeliveryModeDelivery || s.IsDeliveryFree {
		return 0
	}
	return s.DeliveryCost
}

// NotificationNumber is the destination for outbound order messages, with
// the plain phone as fallback.
func (s Settings) NotificationNumber() string {
	if s.WhatsAppNumber != "" {
		return s.WhatsAppNumber
	}
	return s.Phone
}

// IsOpenAt checks the weekly schedule at the given local time. A close time
// at or before the open time is treated as crossing midnight.
func (s Settings) IsOpenAt(t time.Time) bool {
	day := s.OpeningHours.day(t.Weekday())
	if !day.IsOpen {
		return false
	}
	if day.OpenTime == "" || day.CloseTime == "" {
		return true
	}

	now := t.Format("15:04")
	if day.CloseTime > day.OpenTime {
		return now >= day.OpenTime && now < day.CloseTime
	}
	// overnight window, e.g. 20:00–02:00
	return now >= day.OpenTime || now < day.CloseTime
}
