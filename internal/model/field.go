package model

import "time"

type Field struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	SportType    string    `json:"sport_type"`
	Address      string    `json:"address"`
	Description  string    `json:"description"`
	PricePerHour float64   `json:"price_per_hour"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
