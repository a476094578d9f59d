package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PotholeSeverity string
type PotholePosition string
type PotholeStatus string

const (
	SeverityMild      PotholeSeverity = "mild"
	SeveritySevere    PotholeSeverity = "severe"
	SeverityDangerous PotholeSeverity = "dangerous"

	PositionLeft      PotholePosition = "left"
	PositionMiddle    PotholePosition = "middle"
	PositionRight     PotholePosition = "right"
	PositionFullWidth PotholePosition = "full-width"

	StatusReported   PotholeStatus = "reported"
	StatusInProgress PotholeStatus = "in-progress"
	StatusResolved   PotholeStatus = "resolved"
)

type Location struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
	Address   string  `json:"address" bson:"address"`
}

type Pothole struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Image       string             `json:"image" bson:"image"`
	Location    Location           `json:"location" bson:"location"`
	Severity    PotholeSeverity    `json:"severity" bson:"severity"`
	Position    PotholePosition    `json:"position" bson:"position"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Status      PotholeStatus      `json:"status" bson:"status"`
	ReportedBy  string             `json:"reported_by" bson:"reported_by"`
	Timestamp   time.Time          `json:"timestamp" bson:"timestamp"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

func IsValidSeverity(s PotholeSeverity) bool {
	switch s {
	case SeverityMild, SeveritySevere, SeverityDangerous:
		return true
	}
	return false
}

func IsValidPosition(p PotholePosition) bool {
	switch p {
	case PositionLeft, PositionMiddle, PositionRight, PositionFullWidth:
		return true
	}
	return false
}

func IsValidStatus(s PotholeStatus) bool {
	switch s {
	case StatusReported, StatusInProgress, StatusResolved:
		return true
	}
	return false
}

// PotholeStats is the aggregate view served by the stats endpoint.
type PotholeStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"byStatus"`
	BySeverity map[string]int64 `json:"bySeverity"`
}
