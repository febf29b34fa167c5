package helper

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"space_manager/config"
	"space_manager/model"
	"time"
)

// SyncCalendarEvent pushes a booking to the external calendar service.
// Fire and forget: sync failures are logged and never affect the booking.
func SyncCalendarEvent(booking *model.Booking) {
	url := config.Config("CALENDAR_SYNC_URL")
	if url == "" {
		return
	}

	payload := map[string]any{
		"bookingCode": booking.PublicCode,
		"startTime":   booking.StartTime,
		"endTime":     booking.EndTime,
		"people":      booking.NumberOfPeople,
	}
	if booking.Space != nil {
		payload["spaceName"] = booking.Space.Name
		payload["location"] = booking.Space.Location
	}

	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			log.Printf("calendar sync: failed to encode booking %s: %v", booking.PublicCode, err)
			return
		}

		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Post(url, "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("calendar sync failed for booking %s: %v", booking.PublicCode, err)
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 300 {
			log.Printf("calendar sync for booking %s returned %d", booking.PublicCode, resp.StatusCode)
		}
	}()
}
