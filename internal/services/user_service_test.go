package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/models"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/repository"
)

// UserServiceTestSuite defines the test suite for UserService
type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService
}

// SetupTest runs before each test
func (suite *UserServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.service = NewUserService(repository.NewUserRepository(suite.db))
}

func (suite *UserServiceTestSuite) createAdmin(login string, archive bool) *models.User {
	user := &models.User{
		Login:        login,
		PasswordHash: "hash",
		Surname:      "Admin",
		Name:         "User",
		StudyGroup:   "A",
		Phone:        1234567890,
		Contacts:     "admin@site",
		Role:         models.RoleAdmin,
		Archive:      archive,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *UserServiceTestSuite) createStudent(login string, archive bool) *models.User {
	user := &models.User{
		Login:        login,
		PasswordHash: "hash",
		Surname:      "Student",
		Name:         "User",
		StudyGroup:   "B",
		Phone:        9876543210,
		Contacts:     "student@site",
		Role:         models.RoleCouncilMember,
		Archive:      archive,
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *UserServiceTestSuite) reload(id interface{}) *models.User {
	var user models.User
	suite.Require().NoError(suite.db.Where("id = ?", id).First(&user).Error)
	return &user
}

func (suite *UserServiceTestSuite) TestListUsers_FilterByRole() {
	suite.createAdmin("admin", false)
	suite.createStudent("student", false)

	role := models.RoleAdmin
	users, total, err := suite.service.ListUsers(ListUsersInput{Role: &role})

	suite.Require().NoError(err)
	suite.Require().Len(users, 1)
	suite.EqualValues(1, total)
	suite.Equal(models.RoleAdmin, users[0].Role)
}

func (suite *UserServiceTestSuite) TestListUsers_FilterByArchive() {
	suite.createAdmin("admin", false)
	suite.createStudent("active", false)
	suite.createStudent("gone", true)

	archived := true
	users, _, err := suite.service.ListUsers(ListUsersInput{Archive: &archived})

	suite.Require().NoError(err)
	suite.Require().Len(users, 1)
	suite.Equal("gone", users[0].Login)
}

func (suite *UserServiceTestSuite) TestGetUser_ReturnsUser() {
	admin := suite.createAdmin("admin", false)

	user, err := suite.service.GetUser(admin.ID)

	suite.Require().NoError(err)
	suite.Equal(admin.ID, user.ID)
}

func (suite *UserServiceTestSuite) TestGetUser_NotFound() {
	student := suite.createStudent("student", false)

	_, err := suite.service.GetUser(student.ID)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.db.Delete(&models.User{}, "id = ?", student.ID).Error)

	_, err = suite.service.GetUser(student.ID)
	suite.ErrorIs(err, ErrUserNotFound)
}

func (suite *UserServiceTestSuite) TestUpdateUser_AdminCanEditOtherUser() {
	admin := suite.createAdmin("admin", false)
	student := suite.createStudent("student", false)

	name := "Changed"
	err := suite.service.UpdateUser(student.ID, UpdateUserInput{Name: &name}, admin)

	suite.Require().NoError(err)
	suite.Equal("Changed", suite.reload(student.ID).Name)
}

func (suite *UserServiceTestSuite) TestUpdateUser_SelfCanEdit() {
	student := suite.createStudent("student", false)

	contacts := "new@site"
	err := suite.service.UpdateUser(student.ID, UpdateUserInput{Contacts: &contacts}, student)

	suite.Require().NoError(err)
	suite.Equal("new@site", suite.reload(student.ID).Contacts)
}

func (suite *UserServiceTestSuite) TestUpdateUser_NonAdminCannotEditOtherUser() {
	user1 := suite.createStudent("user1", false)
	user2 := suite.createStudent("user2", false)

	name := "Changed"
	err := suite.service.UpdateUser(user2.ID, UpdateUserInput{Name: &name}, user1)

	suite.ErrorIs(err, ErrUserPermissionDenied)
	suite.Equal("User", suite.reload(user2.ID).Name)
}

func (suite *UserServiceTestSuite) TestUpdateUser_AppliesOnlyPresentFields() {
	admin := suite.createAdmin("admin", false)
	student := suite.createStudent("student", false)

	surname := "Renamed"
	err := suite.service.UpdateUser(student.ID, UpdateUserInput{Surname: &surname}, admin)

	suite.Require().NoError(err)
	updated := suite.reload(student.ID)
	suite.Equal("Renamed", updated.Surname)
	suite.Equal("User", updated.Name)
	suite.EqualValues(9876543210, updated.Phone)
}

func (suite *UserServiceTestSuite) TestArchiveUser_AdminCanArchiveStudent() {
	admin := suite.createAdmin("admin", false)
	student := suite.createStudent("student", false)

	err := suite.service.ArchiveUser(student.ID, admin)

	suite.Require().NoError(err)
	suite.True(suite.reload(student.ID).Archive)
}

func (suite *UserServiceTestSuite) TestArchiveUser_CannotArchiveLastActiveAdmin() {
	admin := suite.createAdmin("admin", false)

	err := suite.service.ArchiveUser(admin.ID, admin)

	suite.ErrorIs(err, ErrLastActiveAdmin)
	suite.False(suite.reload(admin.ID).Archive)
}

func (suite *UserServiceTestSuite) TestArchiveUser_ArchivedAdminDoesNotCount() {
	admin := suite.createAdmin("admin", false)
	suite.createAdmin("former", true)

	err := suite.service.ArchiveUser(admin.ID, admin)

	suite.ErrorIs(err, ErrLastActiveAdmin)
	suite.False(suite.reload(admin.ID).Archive)
}

func (suite *UserServiceTestSuite) TestArchiveUser_SecondAdminCanBeArchived() {
	admin := suite.createAdmin("admin", false)
	other := suite.createAdmin("other", false)

	err := suite.service.ArchiveUser(other.ID, admin)

	suite.Require().NoError(err)
	suite.True(suite.reload(other.ID).Archive)
}

func (suite *UserServiceTestSuite) TestArchiveUser_NonAdminDenied() {
	admin := suite.createAdmin("admin", false)
	student := suite.createStudent("student", false)

	err := suite.service.ArchiveUser(admin.ID, student)

	suite.ErrorIs(err, ErrUserPermissionDenied)
	suite.False(suite.reload(admin.ID).Archive)
}

func (suite *UserServiceTestSuite) TestRestoreUser_AdminCanRestore() {
	admin := suite.createAdmin("admin", false)
	student := suite.createStudent("student", true)

	err := suite.service.RestoreUser(student.ID, admin)

	suite.Require().NoError(err)
	suite.False(suite.reload(student.ID).Archive)
}

func (suite *UserServiceTestSuite) TestRestoreUser_NonAdminDenied() {
	archived := suite.createAdmin("admin", true)
	student := suite.createStudent("student", false)

	err := suite.service.RestoreUser(archived.ID, student)

	suite.ErrorIs(err, ErrUserPermissionDenied)
	suite.True(suite.reload(archived.ID).Archive)
}

func (suite *UserServiceTestSuite) TestChangeRole_AdminCanChangeRole() {
	admin := suite.createAdmin("admin", false)
	student := suite.createStudent("student", false)

	err := suite.service.ChangeRole(student.ID, models.RoleAdmin, admin)

	suite.Require().NoError(err)
	suite.Equal(models.RoleAdmin, suite.reload(student.ID).Role)
}

func (suite *UserServiceTestSuite) TestChangeRole_NonAdminDenied() {
	admin := suite.createAdmin("admin", false)
	student := suite.createStudent("student", false)

	err := suite.service.ChangeRole(admin.ID, models.RoleCouncilMember, student)

	suite.ErrorIs(err, ErrUserPermissionDenied)
	suite.Equal(models.RoleAdmin, suite.reload(admin.ID).Role)
}

// TestAdminLifecycle walks the archive/restore/role-change sequence for one
// admin and one council member.
func (suite *UserServiceTestSuite) TestAdminLifecycle() {
	admin := suite.createAdmin("admin", false)
	student := suite.createStudent("student", false)

	suite.ErrorIs(suite.service.ArchiveUser(admin.ID, admin), ErrLastActiveAdmin)
	suite.False(suite.reload(admin.ID).Archive)

	suite.Require().NoError(suite.service.ArchiveUser(student.ID, admin))
	suite.True(suite.reload(student.ID).Archive)

	suite.Require().NoError(suite.service.RestoreUser(student.ID, admin))
	suite.False(suite.reload(student.ID).Archive)

	suite.Require().NoError(suite.service.ChangeRole(student.ID, models.RoleAdmin, admin))
	suite.Equal(models.RoleAdmin, suite.reload(student.ID).Role)

	freshStudent := suite.createStudent("another", false)
	suite.ErrorIs(suite.service.ChangeRole(admin.ID, models.RoleCouncilMember, freshStudent), ErrUserPermissionDenied)
	suite.Equal(models.RoleAdmin, suite.reload(admin.ID).Role)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
