package models

import (
	"time"

	"github.com/lib/pq"
)

// User mirrors the profile record owned by the external identity service.
// This core only reads it: account creation, verification and profile edits
// happen elsewhere.
type User struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	DisplayName string         `gorm:"type:text" json:"displayName"`
	IsActive    bool           `gorm:"not null;default:true" json:"isActive"`
	IsVerified  bool           `gorm:"not null;default:false" json:"isVerified"`
	Interests   pq.StringArray `gorm:"type:text[]" json:"interests"`
	// ReviewCount is maintained by the external review system and is used
	// here only as a tie-breaker when ranking suggestions.
	ReviewCount int `gorm:"not null;default:0" json:"reviewCount"`
}

// TravelPlan mirrors the record owned by the external travel-plan service.
type TravelPlan struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	OwnerID     string    `gorm:"type:text;not null;index" json:"ownerId"`
	Destination string    `gorm:"type:text;not null" json:"destination"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	TravelType  string    `gorm:"type:text" json:"travelType"`
	IsPublic    bool      `gorm:"not null;default:false" json:"isPublic"`
}

// OverlapsDates reports whether the plan's date range intersects [start, end].
func (p *TravelPlan) OverlapsDates(start, end time.Time) bool {
	return !p.StartDate.After(end) && !start.After(p.EndDate)
}
