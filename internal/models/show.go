package models

import (
	"time"
)

type Show struct {
	ID        uint      `gorm:"primaryKey"`
	VenueID   uint      `gorm:"not null;index"`
	Venue     Venue
	ArtistID  uint      `gorm:"not null;index"`
	Artist    Artist
	StartTime time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (show Show) IsUpcoming(now time.Time) bool {
	return show.StartTime.After(now)
}

// SplitShows partitions shows around now, keeping their order.
func SplitShows(shows []Show, now time.Time) (past, upcoming []Show) {
	for _, show := range shows {
		if show.IsUpcoming(now) {
			upcoming = append(upcoming, show)
		} else {
			past = append(past, show)
		}
	}
	return past, upcoming
}
