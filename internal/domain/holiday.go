package domain

import "time"

type Holiday struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
