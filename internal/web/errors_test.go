package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/estate-office/internal/db"
)

func mockServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return NewServer(db.Wrap(sqlDB, db.SQLite)), mock
}

func TestInternalErrorsAreOpaque(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		expect  string
		wantMsg string
	}{
		{"list", "/api/contacts", "SELECT (.+) FROM contact", "Internal server error"},
		{"get", "/api/agents/7", "SELECT (.+) FROM agent WHERE agent_id", "Internal server error"},
		{"overall stats", "/api/dashboard/stats/overall", "SELECT COUNT", "Failed to fetch overall statistics"},
		{"estate stats", "/api/dashboard/stats/estates", "SELECT estate_type", "Failed to fetch estate statistics"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, mock := mockServer(t)
			mock.ExpectQuery(tt.expect).WillReturnError(errors.New("connection reset"))

			w := apiRequest(t, srv, http.MethodGet, tt.path, nil)
			assert.Equal(t, http.StatusInternalServerError, w.Code)

			var body map[string]string
			require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
			assert.Equal(t, tt.wantMsg, body["error"])
			assert.NotContains(t, body["error"], "connection reset")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthDatabaseDown(t *testing.T) {
	srv, mock := mockServer(t)
	mock.ExpectPing().WillReturnError(errors.New("database is locked"))

	w := apiRequest(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWriteFailure(t *testing.T) {
	srv, mock := mockServer(t)
	mock.ExpectQuery("INSERT INTO client").WillReturnError(errors.New("disk full"))

	w := apiRequest(t, srv, http.MethodPost, "/api/clients", map[string]any{"typeofClient": "renter"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMissingFieldNeverWrites(t *testing.T) {
	agentBody := map[string]any{
		"agent_rating": "4.5", "post_name": "Senior Agent", "salary": 75000, "currency": "USD",
		"hiring_date": "2023-01-15", "department_name": "Residential Sales",
	}
	contractBody := map[string]any{
		"contract_name": "Lease", "contract_status": "active",
		"signing_date": "2024-01-15", "validity_period": "2025-01-15",
	}
	requestBody := map[string]any{"request_name": "Flat", "request_date": "2024-01-01", "request_type": "rental"}
	offerBody := map[string]any{"offer_name": "Villa", "offer_date": "2024-01-01", "offer_type": "sale"}

	tests := []struct {
		path     string
		body     map[string]any
		required []string
	}{
		{"/api/contacts", contactBody("Sarah"), []string{"name", "surname", "father_name", "document",
			"telephone", "email", "country", "city", "postal_code", "street", "placement_num"}},
		{"/api/clients", map[string]any{"typeofClient": "tenant"}, []string{"typeofClient"}},
		{"/api/agents", agentBody, []string{"agent_rating", "post_name", "salary", "currency",
			"hiring_date", "department_name"}},
		{"/api/estates", estateBody("Villa", 450000), []string{"estate_name", "estate_status", "estate_type",
			"square", "price", "country", "city", "postal_code", "street", "placement_num", "estate_rating"}},
		{"/api/contracts", contractBody, []string{"contract_name", "contract_status", "signing_date", "validity_period"}},
		{"/api/requests", requestBody, []string{"request_name", "request_date", "request_type"}},
		{"/api/offers", offerBody, []string{"offer_name", "offer_date", "offer_type"}},
	}
	for _, tt := range tests {
		for _, field := range tt.required {
			t.Run(tt.path+"/"+field, func(t *testing.T) {
				srv, mock := mockServer(t)

				body := make(map[string]any, len(tt.body))
				for k, v := range tt.body {
					if k != field {
						body[k] = v
					}
				}

				w := apiRequest(t, srv, http.MethodPost, tt.path, body)
				assert.Equal(t, http.StatusBadRequest, w.Code)
				assert.Equal(t, "Missing required field: "+field, errorOf(t, w))
				assert.NoError(t, mock.ExpectationsWereMet())
			})
		}
	}
}
