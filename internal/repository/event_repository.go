package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
)

var (
	// ErrCreateEvent is returned when creating the event fails inside the creation transaction.
	ErrCreateEvent = errors.New("event repository: create event failed")
	// ErrCreateEventMember is returned when creating the creator's membership fails inside the creation transaction.
	ErrCreateEventMember = errors.New("event repository: create event member failed")
)

// GormEventRepository is a GORM implementation of EventRepository
type GormEventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &GormEventRepository{db: db}
}

// CreateWithChiefOrganizer creates an event and the creator's chief-organizer
// membership atomically.
func (r *GormEventRepository) CreateWithChiefOrganizer(event *models.Event, creatorID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateEvent, err)
		}

		member := &models.EventUser{
			EventID: event.ID,
			UserID:  creatorID,
			Role:    models.EventRoleChiefOrganizer,
		}

		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateEventMember, err)
		}

		return nil
	})
}

// FindByID finds an event by ID with optional preloading
func (r *GormEventRepository) FindByID(id uuid.UUID, preload ...string) (*models.Event, error) {
	var event models.Event
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}

	return &event, nil
}

// List retrieves events matching the filter
func (r *GormEventRepository) List(filter EventFilter) ([]models.Event, int64, error) {
	var events []models.Event

	query := r.db.Model(&models.Event{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.DateFrom != nil {
		query = query.Where("end_date >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("start_date <= ?", *filter.DateTo)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR location LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Order("start_date ASC")
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		listQuery = listQuery.Offset(offset).Limit(filter.PageSize)
	}

	if err := listQuery.Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// Update updates an event
func (r *GormEventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

// AddMember adds a membership row to an event
func (r *GormEventRepository) AddMember(member *models.EventUser) error {
	return r.db.Create(member).Error
}

// RemoveMember deletes the matching membership row. Removing a row that does
// not exist is an error, not a no-op.
func (r *GormEventRepository) RemoveMember(eventID, userID uuid.UUID, role models.EventRole) error {
	res := r.db.Where("event_id = ? AND user_id = ? AND role = ?", eventID, userID, role).
		Delete(&models.EventUser{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindMember finds a specific event membership row
func (r *GormEventRepository) FindMember(eventID, userID uuid.UUID, role models.EventRole) (*models.EventUser, error) {
	var member models.EventUser
	if err := r.db.Where("event_id = ? AND user_id = ? AND role = ?", eventID, userID, role).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// FindMemberships lists all membership rows a user holds on an event
func (r *GormEventRepository) FindMemberships(eventID, userID uuid.UUID) ([]models.EventUser, error) {
	var memberships []models.EventUser
	if err := r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}
