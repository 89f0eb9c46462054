package usecase

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"fieldtrack-backend/internal/attendance"
	"fieldtrack-backend/internal/model"
	"fieldtrack-backend/internal/repository"
)

// Broadcaster is the slice of the ws hub the ingest path needs.
type Broadcaster interface {
	Publish(topic string, payload interface{})
}

const (
	saveAttempts = 3
	saveBackoff  = 50 * time.Millisecond
)

// LocationUsecase runs the ingest pipeline: persist the raw sample, run the
// attendance/geofence evaluator under a per-(user, date) lock, then fan the
// update out to the live streams.
type LocationUsecase struct {
	locations   repository.LocationRepository
	attendances repository.AttendanceRepository
	offices     repository.OfficeRepository
	users       repository.UserRepository
	hub         Broadcaster
	locks       keyedLock
}

func NewLocationUsecase(
	locations repository.LocationRepository,
	attendances repository.AttendanceRepository,
	offices repository.OfficeRepository,
	users repository.UserRepository,
	hub Broadcaster,
) *LocationUsecase {
	return &LocationUsecase{
		locations:   locations,
		attendances: attendances,
		offices:     offices,
		users:       users,
		hub:         hub,
	}
}

// Ingest handles one GPS ping from an authenticated employee. The raw
// sample is always persisted first; the attendance evaluation and the
// broadcasts come after and can fail without taking the sample with them.
func (u *LocationUsecase) Ingest(userID string, lat, lng float64, millis *int64) error {
	var recordedAt *time.Time
	if millis != nil {
		t := time.UnixMilli(*millis)
		recordedAt = &t
	}

	sample := model.LocationLog{
		UserID:     userID,
		Latitude:   lat,
		Longitude:  lng,
		RecordedAt: recordedAt,
	}
	if err := u.locations.Create(&sample); err != nil {
		return err
	}

	evalErr := u.evaluate(userID, lat, lng)

	// Live streams are best-effort and independent of the evaluator.
	u.broadcast(userID, lat, lng, millis)

	return evalErr
}

func (u *LocationUsecase) evaluate(userID string, lat, lng float64) error {
	// Bad geofence math must not block data collection.
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		log.Warn().Str("user_id", userID).Msg("sample with unusable coordinates, skipping evaluation")
		return nil
	}

	office, err := u.offices.First()
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// System not configured yet; expected, not an error.
			return nil
		}
		return err
	}

	now := time.Now()
	date := now.Format("2006-01-02")
	sample := attendance.Sample{Latitude: lat, Longitude: lng, At: now}

	// Serialize the read-modify-write per (user, date) so two bursty
	// samples cannot both observe was_inside=false and both emit ENTER.
	// Other users proceed in parallel on their own keys.
	unlock := u.locks.Lock(userID + ":" + date)
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= saveAttempts; attempt++ {
		day, err := u.attendances.GetOrCreate(userID, date, office.ID)
		if err != nil {
			lastErr = err
		} else {
			events := attendance.Evaluate(sample, *office, day)
			if err := u.attendances.SaveWithEvents(day, events); err != nil {
				lastErr = err
			} else {
				return nil
			}
		}

		log.Warn().Err(lastErr).
			Str("user_id", userID).
			Int("attempt", attempt).
			Msg("attendance update failed, retrying")
		time.Sleep(time.Duration(attempt) * saveBackoff)
	}

	return fmt.Errorf("attendance update for %s on %s: %w", userID, date, lastErr)
}

func (u *LocationUsecase) broadcast(userID string, lat, lng float64, millis *int64) {
	u.hub.Publish("location:"+userID, map[string]interface{}{
		"lat":    lat,
		"lng":    lng,
		"millis": millis,
	})

	user, err := u.users.FindByID(userID)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("division broadcast skipped")
		return
	}
	if user.Profile == nil || user.Profile.DivisionID == nil {
		return
	}

	u.hub.Publish(fmt.Sprintf("division:%d", *user.Profile.DivisionID), map[string]interface{}{
		"user_id": userID,
		"name":    user.Name,
		"lat":     lat,
		"lng":     lng,
		"millis":  millis,
	})
}
