package game

import (
	"fmt"
	"strings"
)

// Direction is a swipe direction.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionRight
	DirectionDown
	DirectionLeft
)

// Directions lists every direction in index order.
var Directions = []Direction{DirectionUp, DirectionRight, DirectionDown, DirectionLeft}

// Valid reports whether d is one of Directions.
func (d Direction) Valid() bool {
	return d >= DirectionUp && d <= DirectionLeft
}

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "up"
	case DirectionRight:
		return "right"
	case DirectionDown:
		return "down"
	case DirectionLeft:
		return "left"
	}
	return "unknown"
}

// ParseDirection parses a direction name (up, right, down, left) or its w/d/s/a shorthand.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "w":
		return DirectionUp, nil
	case "right", "d":
		return DirectionRight, nil
	case "down", "s":
		return DirectionDown, nil
	case "left", "a":
		return DirectionLeft, nil
	default:
		return 0, fmt.Errorf("unknown direction: %s", s)
	}
}

// vector returns the unit step of the direction in grid coordinates.
func (d Direction) vector() Position {
	switch d {
	case DirectionUp:
		return Position{X: 0, Y: -1}
	case DirectionRight:
		return Position{X: 1, Y: 0}
	case DirectionDown:
		return Position{X: 0, Y: 1}
	case DirectionLeft:
		return Position{X: -1, Y: 0}
	}
	return Position{}
}
