package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/repository"
)

// EventServiceTestSuite defines the test suite for EventService
type EventServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *EventService
}

// SetupTest runs before each test
func (suite *EventServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewEventService(
		repository.NewEventRepository(suite.db),
		repository.NewUserRepository(suite.db),
	)
}

func (suite *EventServiceTestSuite) createUser(login string) *models.User {
	user := &models.User{
		Login:        login,
		PasswordHash: "hash",
		Surname:      "User",
		Name:         "Name",
		Role:         models.RoleCouncilMember,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *EventServiceTestSuite) createEvent(title string) *models.Event {
	event := &models.Event{
		Title:     title,
		Status:    models.EventStatusPlanned,
		StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		EventTime: 10 * time.Hour,
		Location:  "Room 1",
	}
	suite.Require().NoError(suite.db.Create(event).Error)
	return event
}

func (suite *EventServiceTestSuite) countMembers(eventID, userID uuid.UUID, role models.EventRole) int64 {
	var count int64
	suite.db.Model(&models.EventUser{}).
		Where("event_id = ? AND user_id = ? AND role = ?", eventID, userID, role).
		Count(&count)
	return count
}

func (suite *EventServiceTestSuite) TestListEvents_ReturnsEvents() {
	suite.createEvent("First")
	suite.createEvent("Second")

	events, total, err := suite.service.ListEvents(ListEventsInput{})

	suite.Require().NoError(err)
	suite.Len(events, 2)
	suite.EqualValues(2, total)
}

func (suite *EventServiceTestSuite) TestListEvents_FilterByStatus() {
	suite.createEvent("Planned")
	done := suite.createEvent("Done")
	suite.Require().NoError(suite.db.Model(done).Update("status", models.EventStatusCompleted).Error)

	status := models.EventStatusCompleted
	events, _, err := suite.service.ListEvents(ListEventsInput{Status: &status})

	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal("Done", events[0].Title)
}

func (suite *EventServiceTestSuite) TestListEvents_FilterBySearch() {
	suite.createEvent("Spring Fair")
	suite.createEvent("Autumn Ball")

	events, _, err := suite.service.ListEvents(ListEventsInput{Search: "Spring"})

	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal("Spring Fair", events[0].Title)
}

func (suite *EventServiceTestSuite) TestGetEvent_ReturnsEventWithMembers() {
	event := suite.createEvent("Event")
	user := suite.createUser("member")
	suite.Require().NoError(suite.service.AddParticipant(event.ID, user.ID))

	found, err := suite.service.GetEvent(event.ID)

	suite.Require().NoError(err)
	suite.Equal(event.ID, found.ID)
	suite.Require().Len(found.Members, 1)
	suite.Equal(user.ID, found.Members[0].UserID)
	suite.Equal(user.Login, found.Members[0].User.Login)
}

func (suite *EventServiceTestSuite) TestGetEvent_NotFound() {
	_, err := suite.service.GetEvent(uuid.New())

	suite.ErrorIs(err, ErrEventNotFound)
}

func (suite *EventServiceTestSuite) TestCreateEvent_GrantsChiefOrganizer() {
	creator := suite.createUser("creator")

	event, err := suite.service.CreateEvent(CreateEventInput{
		Title:                "New Event",
		Description:          "Desc",
		StartDate:            time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:              time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		EventTime:            18 * time.Hour,
		Location:             "Hall",
		NumberOfParticipants: 50,
	}, creator.ID)

	suite.Require().NoError(err)
	suite.Equal(models.EventStatusPlanned, event.Status)
	suite.EqualValues(1, suite.countMembers(event.ID, creator.ID, models.EventRoleChiefOrganizer))
}

func (suite *EventServiceTestSuite) TestCreateEvent_InvalidDateRange() {
	creator := suite.createUser("creator")

	_, err := suite.service.CreateEvent(CreateEventInput{
		Title:     "Backwards",
		StartDate: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}, creator.ID)

	suite.ErrorIs(err, ErrInvalidDateRange)
}

func (suite *EventServiceTestSuite) TestUpdateEvent_AppliesOnlyPresentFields() {
	event := suite.createEvent("Original")

	title := "Updated"
	status := models.EventStatusInProgress
	err := suite.service.UpdateEvent(event.ID, UpdateEventInput{
		Title:  &title,
		Status: &status,
	})

	suite.Require().NoError(err)

	var updated models.Event
	suite.Require().NoError(suite.db.Where("id = ?", event.ID).First(&updated).Error)
	suite.Equal("Updated", updated.Title)
	suite.Equal(models.EventStatusInProgress, updated.Status)
	suite.Equal("Room 1", updated.Location)
}

func (suite *EventServiceTestSuite) TestUpdateEvent_NotFound() {
	title := "Ghost"
	err := suite.service.UpdateEvent(uuid.New(), UpdateEventInput{Title: &title})

	suite.ErrorIs(err, ErrEventNotFound)
}

func (suite *EventServiceTestSuite) TestAddParticipant_DuplicateDenied() {
	event := suite.createEvent("Event")
	user := suite.createUser("member")

	suite.Require().NoError(suite.service.AddParticipant(event.ID, user.ID))

	err := suite.service.AddParticipant(event.ID, user.ID)
	suite.ErrorIs(err, ErrAlreadyEventMember)

	suite.EqualValues(1, suite.countMembers(event.ID, user.ID, models.EventRoleParticipant))
}

func (suite *EventServiceTestSuite) TestAddParticipant_EventNotFound() {
	user := suite.createUser("member")

	err := suite.service.AddParticipant(uuid.New(), user.ID)

	suite.ErrorIs(err, ErrEventNotFound)
}

func (suite *EventServiceTestSuite) TestAddParticipant_UserNotFound() {
	event := suite.createEvent("Event")

	err := suite.service.AddParticipant(event.ID, uuid.New())

	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *EventServiceTestSuite) TestRemoveParticipant_NonMemberDenied() {
	event := suite.createEvent("Event")
	user := suite.createUser("outsider")

	err := suite.service.RemoveParticipant(event.ID, user.ID)

	suite.ErrorIs(err, ErrNotEventMember)

	var count int64
	suite.db.Model(&models.EventUser{}).Where("event_id = ?", event.ID).Count(&count)
	suite.EqualValues(0, count)
}

func (suite *EventServiceTestSuite) TestRemoveParticipant_RemovesRow() {
	event := suite.createEvent("Event")
	user := suite.createUser("member")
	suite.Require().NoError(suite.service.AddParticipant(event.ID, user.ID))

	err := suite.service.RemoveParticipant(event.ID, user.ID)

	suite.Require().NoError(err)
	suite.EqualValues(0, suite.countMembers(event.ID, user.ID, models.EventRoleParticipant))
}

func (suite *EventServiceTestSuite) TestAddOrganizer_DuplicateDenied() {
	event := suite.createEvent("Event")
	user := suite.createUser("organizer")

	suite.Require().NoError(suite.service.AddOrganizer(event.ID, user.ID))

	err := suite.service.AddOrganizer(event.ID, user.ID)
	suite.ErrorIs(err, ErrAlreadyEventMember)

	suite.EqualValues(1, suite.countMembers(event.ID, user.ID, models.EventRoleOrganizer))
}

func (suite *EventServiceTestSuite) TestRemoveOrganizer_NonMemberDenied() {
	event := suite.createEvent("Event")
	user := suite.createUser("outsider")

	err := suite.service.RemoveOrganizer(event.ID, user.ID)

	suite.ErrorIs(err, ErrNotEventMember)
}

// A user may hold participant and organizer roles on the same event at
// once; the uniqueness constraint is per role.
func (suite *EventServiceTestSuite) TestMembershipRolesAreIndependent() {
	event := suite.createEvent("Event")
	user := suite.createUser("both")

	suite.Require().NoError(suite.service.AddParticipant(event.ID, user.ID))
	suite.Require().NoError(suite.service.AddOrganizer(event.ID, user.ID))

	suite.EqualValues(1, suite.countMembers(event.ID, user.ID, models.EventRoleParticipant))
	suite.EqualValues(1, suite.countMembers(event.ID, user.ID, models.EventRoleOrganizer))
}

func TestEventServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EventServiceTestSuite))
}
