package models

import "time"

// BusClass is the comfort class of a vehicle
type BusClass string

const (
	BusClassStandard  BusClass = "STANDARD"
	BusClassExecutive BusClass = "EXECUTIVE"
	BusClassLuxury    BusClass = "LUXURY"
)

// Bus represents a vehicle in an operator's fleet
type Bus struct {
	ID           int64     `json:"id"`
	OperatorID   int64     `json:"operatorId"`
	Registration string    `json:"registration"`
	Name         string    `json:"name"`
	Class        BusClass  `json:"class"`
	Capacity     int       `json:"capacity"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Route represents a scheduled service between two stops.
// OperatorIDs is stored on the row; OperatorNames is resolved after the
// primary fetch and never participates in filtering or ordering.
type Route struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Origin        string    `json:"origin"`
	Destination   string    `json:"destination"`
	OperatorIDs   []int64   `json:"operatorIds"`
	OperatorNames []string  `json:"operatorNames"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
