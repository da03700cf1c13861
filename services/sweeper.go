package services

import (
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/bellavista-pos/bellavista-foh-api/config"
	"github.com/bellavista-pos/bellavista-foh-api/models"
)

// ReservationSweeper periodically releases reservations whose scheduled
// time has passed without the party being seated. It runs independently of
// request handling and only ever touches reservation state.
type ReservationSweeper struct {
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewReservationSweeper creates a sweeper with the given polling interval.
// Production wiring uses one minute.
func NewReservationSweeper(interval time.Duration) *ReservationSweeper {
	return &ReservationSweeper{
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start launches the sweep loop on its own goroutine
func (s *ReservationSweeper) Start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		log.Printf("Reservation sweeper started (interval %s)", s.interval)
		for {
			select {
			case <-ticker.C:
				if _, err := SweepExpiredReservations(time.Now()); err != nil {
					log.Printf("Reservation sweep failed: %v", err)
				}
			case <-s.stop:
				log.Println("Reservation sweeper stopped")
				return
			}
		}
	}()
}

// Stop terminates the sweep loop and waits for it to exit
func (s *ReservationSweeper) Stop() {
	close(s.stop)
	<-s.done
}

// SweepExpiredReservations clears every reservation scheduled before now,
// with the same effect as a user-initiated cancel. A failure on one table
// is logged and does not abort the sweep of the rest. Returns the number
// of reservations released.
func SweepExpiredReservations(now time.Time) (int, error) {
	db := config.GetDB()

	var reserved []models.Table
	if err := db.Where("reserve_status = ? AND reserve_time < ?", true, now).Find(&reserved).Error; err != nil {
		return 0, fmt.Errorf("failed to load reserved tables: %w", err)
	}

	released := 0
	for _, table := range reserved {
		ok, err := releaseExpiredReservation(db, table.ID, now)
		if err != nil {
			log.Printf("Failed to release expired reservation on table %d: %v", table.ID, err)
			continue
		}
		if !ok {
			continue
		}
		log.Printf("Released expired reservation on table %d (%s, scheduled %s)",
			table.ID, table.Name, table.Reserve.Time.Format(time.RFC3339))
		released++
	}

	return released, nil
}

// releaseExpiredReservation clears one table's reservation, re-asserting the
// expiry condition in the UPDATE itself. A reservation cancelled and replaced
// after the sweep's scan no longer matches and is left alone.
func releaseExpiredReservation(db *gorm.DB, tableID uint, now time.Time) (bool, error) {
	result := db.Model(&models.Table{}).
		Where("id = ? AND reserve_status = ? AND reserve_time < ?", tableID, true, now).
		Updates(clearReservationValues())
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
