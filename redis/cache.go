package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

// availabilityTTL keeps browse-page availability summaries fresh enough
// while absorbing repeated 30-day window resolutions.
const availabilityTTL = 5 * time.Minute

func availabilityKey(facilityID uint, from, to string) string {
	return fmt.Sprintf("availability:%d:%s:%s", facilityID, from, to)
}

// GetAvailability loads a cached resolved-availability window. The second
// return is false on a miss or when redis is not initialized.
func GetAvailability(facilityID uint, from, to string, dest interface{}) bool {
	if Client == nil {
		return false
	}
	data, err := Client.Get(Ctx, availabilityKey(facilityID, from, to)).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}

// SetAvailability caches a resolved-availability window. Failures are
// ignored; the cache is an optimization, not a source of truth.
func SetAvailability(facilityID uint, from, to string, value interface{}) {
	if Client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	Client.Set(Ctx, availabilityKey(facilityID, from, to), data, availabilityTTL)
}

// InvalidateAvailability drops every cached window for a facility. Called
// after any schedule, exception, holiday, or config write.
func InvalidateAvailability(facilityID uint) {
	if Client == nil {
		return
	}
	pattern := fmt.Sprintf("availability:%d:*", facilityID)
	iter := Client.Scan(Ctx, 0, pattern, 0).Iterator()
	for iter.Next(Ctx) {
		Client.Del(Ctx, iter.Val())
	}
}
