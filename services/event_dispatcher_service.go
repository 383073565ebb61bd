package services

import (
	"encoding/json"
	"log"
	"time"

	"github.com/123AnkitSharma/Taskify/broker"
	"github.com/123AnkitSharma/Taskify/database"
	"github.com/123AnkitSharma/Taskify/models"
)

type EventDispatcherServiceInterface interface {
	Start()
	Stop()
	ProcessPendingEvents()
}

// EventDispatcherService drains the event outbox: it periodically collects
// undispatched rows and publishes them to the broker. Rows stay pending while
// the broker is unreachable and are retried on the next tick.
type EventDispatcherService struct {
	db        *database.Database
	isRunning bool
	ticker    *time.Ticker
	done      chan struct{}
}

func NewEventDispatcherService(db *database.Database) EventDispatcherServiceInterface {
	return &EventDispatcherService{
		db:        db,
		isRunning: false,
		ticker:    time.NewTicker(1 * time.Second),
		done:      make(chan struct{}),
	}
}

func (s *EventDispatcherService) Start() {
	if s.isRunning {
		return
	}
	s.isRunning = true
	go s.ProcessPendingEvents()
}

func (s *EventDispatcherService) Stop() {
	if !s.isRunning {
		return
	}
	s.isRunning = false
	s.ticker.Stop()
	// Stopping the ticker does not close its channel, so signal the loop
	close(s.done)
}

func (s *EventDispatcherService) ProcessPendingEvents() {
	for {
		select {
		case <-s.done:
			return
		case <-s.ticker.C:
		}

		if !broker.IsConnected() {
			continue
		}

		var events []models.Event
		if err := s.db.DB.Where("dispatched = ?", false).Find(&events).Error; err != nil {
			log.Printf("Error fetching pending events: %v", err)
			continue
		}

		for _, event := range events {
			if err := s.dispatchEvent(event); err != nil {
				log.Printf("Error dispatching event %s: %v", event.ID, err)
				continue
			}
		}
	}
}

func (s *EventDispatcherService) dispatchEvent(event models.Event) error {
	var dataMap map[string]interface{}
	if err := json.Unmarshal(event.Data, &dataMap); err != nil {
		log.Printf("Warning: Could not unmarshal event data: %v", err)
		dataMap = make(map[string]interface{})
	}

	payload := map[string]interface{}{
		"type": event.Event,
		"payload": map[string]interface{}{
			"event_id":  event.ID.String(),
			"timestamp": event.Timestamp,
			"entity":    event.Entity,
			"data":      dataMap,
		},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	subject := broker.SubjectForEntity(event.Entity)
	if err := broker.PublishMessage(subject, jsonData); err != nil {
		return err
	}

	now := time.Now()
	return s.db.DB.Model(&event).Updates(map[string]interface{}{
		"dispatched":    true,
		"dispatched_at": now,
		"status":        "completed",
	}).Error
}

var EventDispatcherServiceInstance EventDispatcherServiceInterface
