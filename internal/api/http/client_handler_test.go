package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"creditdesk-backend/internal/domain"
	"creditdesk-backend/internal/service"
)

type mockClientService struct {
	mock.Mock
}

func (m *mockClientService) Create(ctx context.Context, actor service.Actor, client *domain.Client) error {
	args := m.Called(ctx, actor, client)
	return args.Error(0)
}
func (m *mockClientService) Get(ctx context.Context, id int64) (*domain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}
func (m *mockClientService) Update(ctx context.Context, actor service.Actor, client *domain.Client) error {
	args := m.Called(ctx, actor, client)
	return args.Error(0)
}
func (m *mockClientService) Delete(ctx context.Context, actor service.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
func (m *mockClientService) List(ctx context.Context, search string, page, pageSize int32) ([]domain.Client, int32, error) {
	args := m.Called(ctx, search, page, pageSize)
	return args.Get(0).([]domain.Client), args.Get(1).(int32), args.Error(2)
}

func newClientRouter(svc service.ClientService) *mux.Router {
	h := NewClientHandler(svc)
	r := mux.NewRouter()
	r.HandleFunc("/clients", h.Create).Methods("POST")
	r.HandleFunc("/clients/{id}", h.Get).Methods("GET")
	return r
}

func TestClientHandler_Create(t *testing.T) {
	body := `{"first_name":"Nadia","last_name":"Haddad","national_id":"NID-123","phone":"+961 3 123456"}`

	t.Run("Created", func(t *testing.T) {
		svc := new(mockClientService)
		var gotActor service.Actor
		svc.On("Create", mock.Anything, mock.AnythingOfType("service.Actor"), mock.AnythingOfType("*domain.Client")).
			Run(func(args mock.Arguments) {
				gotActor = args.Get(1).(service.Actor)
				args.Get(2).(*domain.Client).ID = 5
			}).Return(nil)

		req := httptest.NewRequest("POST", "/clients", bytes.NewBufferString(body))
		req.Header.Set("X-Agent-ID", "7")
		req.Header.Set("X-Request-ID", "req-1")
		rec := httptest.NewRecorder()
		newClientRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, int64(7), gotActor.AgentID)
		assert.Equal(t, "req-1", gotActor.SessionID)

		var resp domain.Client
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(5), resp.ID)
		assert.Equal(t, "Nadia", resp.FirstName)
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		svc := new(mockClientService)
		req := httptest.NewRequest("POST", "/clients", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		newClientRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ValidationError", func(t *testing.T) {
		svc := new(mockClientService)
		svc.On("Create", mock.Anything, mock.Anything, mock.Anything).
			Return(domain.NewValidationError("phone", "is required"))

		req := httptest.NewRequest("POST", "/clients", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		newClientRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp errorResponse
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "phone", resp.Field)
	})

	t.Run("Duplicate", func(t *testing.T) {
		svc := new(mockClientService)
		svc.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(domain.ErrDuplicate)

		req := httptest.NewRequest("POST", "/clients", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		newClientRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestClientHandler_Get(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		svc := new(mockClientService)
		svc.On("Get", mock.Anything, int64(5)).Return(&domain.Client{ID: 5, FirstName: "Nadia"}, nil)

		req := httptest.NewRequest("GET", "/clients/5", nil)
		rec := httptest.NewRecorder()
		newClientRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc := new(mockClientService)
		svc.On("Get", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

		req := httptest.NewRequest("GET", "/clients/99", nil)
		rec := httptest.NewRecorder()
		newClientRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		svc := new(mockClientService)
		req := httptest.NewRequest("GET", "/clients/abc", nil)
		rec := httptest.NewRecorder()
		newClientRouter(svc).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})
}
