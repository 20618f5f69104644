package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-tracker-api/internal/auth"
	"github.com/yukikurage/task-tracker-api/internal/dto"
	"github.com/yukikurage/task-tracker-api/internal/middleware"
	"github.com/yukikurage/task-tracker-api/internal/models"
	"github.com/yukikurage/task-tracker-api/internal/repository"
	"github.com/yukikurage/task-tracker-api/internal/services"
	"gorm.io/gorm"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	tokens *auth.TokenManager
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.db = openTestDB(suite.T())

	var err error
	suite.tokens, err = auth.NewTokenManager("test-secret")
	suite.Require().NoError(err)

	logger, _ := test.NewNullLogger()
	handler := NewTaskHandler(services.NewTaskService(repository.NewTaskRepository(suite.db)), logger)

	suite.router = gin.New()
	tasks := suite.router.Group("/tasks")
	tasks.Use(middleware.RequireAuth(suite.tokens, logger))
	{
		tasks.GET("", handler.ListTasks)
		tasks.POST("", handler.CreateTask)
		tasks.PUT("/:id", handler.ToggleTask)
		tasks.DELETE("/:id", handler.DeleteTask)
	}
}

// Helper function to create test data
func (suite *TaskHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.Require().NoError(suite.db.Create(user).Error)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTask(title, ownerID string) *models.Task {
	task := &models.Task{
		Title:   title,
		OwnerID: ownerID,
	}
	suite.Require().NoError(suite.db.Create(task).Error)
	return task
}

func (suite *TaskHandlerTestSuite) tokenFor(user *models.User) string {
	token, err := suite.tokens.Issue(user.ID)
	suite.Require().NoError(err)
	return token
}

// Helper function to perform an authenticated request
func (suite *TaskHandlerTestSuite) request(method, url string, body interface{}, token string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *TaskHandlerTestSuite) decodeTask(w *httptest.ResponseRecorder) dto.TaskDTO {
	var task dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &task))
	return task
}

func (suite *TaskHandlerTestSuite) TestListTasks_Empty() {
	user := suite.createTestUser("alice")

	w := suite.request(http.MethodGet, "/tasks", nil, suite.tokenFor(user))

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.JSONEq(suite.T(), "[]", w.Body.String())
}

func (suite *TaskHandlerTestSuite) TestListTasks_OnlyOwn() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	suite.createTestTask("alice task", alice.ID)
	suite.createTestTask("bob task", bob.ID)

	w := suite.request(http.MethodGet, "/tasks", nil, suite.tokenFor(bob))

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var tasks []dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &tasks))
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "bob task", tasks[0].Title)
	assert.Equal(suite.T(), bob.ID, tasks[0].OwnerID)
}

func (suite *TaskHandlerTestSuite) TestListTasks_Unauthorized() {
	suite.createTestTask("secret", suite.createTestUser("alice").ID)

	w := suite.request(http.MethodGet, "/tasks", nil, "")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"error"`)

	w = suite.request(http.MethodGet, "/tasks", nil, "not.a.token")
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Invalid token")
	assert.NotContains(suite.T(), w.Body.String(), "secret")
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	user := suite.createTestUser("alice")

	w := suite.request(http.MethodPost, "/tasks", map[string]string{"title": "buy milk"}, suite.tokenFor(user))

	assert.Equal(suite.T(), http.StatusCreated, w.Code)
	task := suite.decodeTask(w)
	assert.NotEmpty(suite.T(), task.ID)
	assert.Equal(suite.T(), "buy milk", task.Title)
	assert.False(suite.T(), task.IsCompleted)
	assert.Equal(suite.T(), user.ID, task.OwnerID)

	var raw map[string]interface{}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &raw))
	assert.Contains(suite.T(), raw, "_id")
	assert.Contains(suite.T(), raw, "isCompleted")
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitle() {
	user := suite.createTestUser("alice")

	w := suite.request(http.MethodPost, "/tasks", map[string]string{}, suite.tokenFor(user))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Title is required")

	w = suite.request(http.MethodPost, "/tasks", map[string]string{"title": "   "}, suite.tokenFor(user))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Zero(suite.T(), count)
}

func (suite *TaskHandlerTestSuite) TestToggleTask_SelfInverse() {
	user := suite.createTestUser("alice")
	task := suite.createTestTask("buy milk", user.ID)
	token := suite.tokenFor(user)

	w := suite.request(http.MethodPut, "/tasks/"+task.ID, nil, token)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), suite.decodeTask(w).IsCompleted)

	w = suite.request(http.MethodPut, "/tasks/"+task.ID, nil, token)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.False(suite.T(), suite.decodeTask(w).IsCompleted)
}

func (suite *TaskHandlerTestSuite) TestToggleTask_OtherOwnerIsNotFound() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	task := suite.createTestTask("alice task", alice.ID)

	w := suite.request(http.MethodPut, "/tasks/"+task.ID, nil, suite.tokenFor(bob))
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	foreign := w.Body.String()

	w = suite.request(http.MethodPut, "/tasks/"+models.NewID(), nil, suite.tokenFor(bob))
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	assert.Equal(suite.T(), w.Body.String(), foreign)

	var stored models.Task
	suite.Require().NoError(suite.db.First(&stored, "id = ?", task.ID).Error)
	assert.False(suite.T(), stored.IsCompleted)
}

func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	task := suite.createTestTask("alice task", alice.ID)

	w := suite.request(http.MethodDelete, "/tasks/"+task.ID, nil, suite.tokenFor(bob))
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request(http.MethodDelete, "/tasks/"+task.ID, nil, suite.tokenFor(alice))
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "Task deleted successfully")

	w = suite.request(http.MethodDelete, "/tasks/"+task.ID, nil, suite.tokenFor(alice))
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.request(http.MethodPut, "/tasks/"+task.ID, nil, suite.tokenFor(alice))
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
