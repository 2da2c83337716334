package backend

import (
	"fmt"
	"math"
	"strconv"
)

// truckKmPerLiter is the average truck fuel efficiency the routing backend assumes.
const truckKmPerLiter = 3.5

// FormatTravelTime renders a duration in seconds as "5h 20m".
func FormatTravelTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%dh %dm", total/3600, (total%3600)/60)
}

// FormatFuelConsumption estimates liters burned over distanceKm, e.g. "228.57 liters".
func FormatFuelConsumption(distanceKm float64) string {
	liters := math.Round(distanceKm/truckKmPerLiter*100) / 100
	return strconv.FormatFloat(liters, 'f', -1, 64) + " liters"
}
