package ctdf

import (
	"time"
)

type Event struct {
	Type      EventType
	Timestamp time.Time
	Body      interface{}
}

type EventType string

const (
	EventTypeDepartureBoardRefreshed EventType = "DepartureBoardRefreshed"
)
