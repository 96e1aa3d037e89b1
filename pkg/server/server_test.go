package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/voltbos/voltbos/pkg/catalog"
	"github.com/voltbos/voltbos/pkg/detect"
	"github.com/voltbos/voltbos/pkg/populate"
	"github.com/voltbos/voltbos/pkg/storage"
	"github.com/voltbos/voltbos/pkg/storage/storagemock"
	"github.com/voltbos/voltbos/pkg/types"
)

func testServer(db *storagemock.MockDatabase) *Server {
	c := catalog.Static{}
	return &Server{
		detector:   detect.NewAggregator(detect.Default(), c, db),
		populator:  populate.NewPopulator(c, db),
		storage:    db,
		catalog:    c,
		bypassAuth: true,
		serverName: "voltbos",
	}
}

func enphaseProjectDetails() types.SystemDetails {
	return types.SystemDetails{
		"utility": "Arizona Public Service (APS)",

		"sys1_solar_panel_make":                "QCells",
		"sys1_solar_panel_model":               "Q.PEAK DUO",
		"sys1_micro_inverter_make":             "Enphase",
		"sys1_micro_inverter_model":            "IQ8PLUS",
		"sys1_inv_max_continuous_output":       "32",
		"sys1_battery_1_make":                  "Enphase",
		"sys1_battery_1_model":                 "IQ Battery 5P",
		"sys1_battery_1_qty":                   "2",
		"sys1_battery_1_max_continuous_output": "30",
		"sys1_sms_make":                        "Enphase",
		"sys1_sms_model":                       "IQ System Controller 3",
	}
}

func TestHandleDetect(t *testing.T) {
	db := &storagemock.MockDatabase{}
	db.On("GetSystemDetails", mock.Anything, "proj1").Return(enphaseProjectDetails(), nil)
	db.On("GetProject", mock.Anything, "proj1").
		Return(types.Project{}, storage.ErrProjectNotFound)
	db.On("InsertConfiguration", mock.Anything, "proj1", mock.Anything).Return(nil)

	handler := testServer(db).setupHandler()

	t.Run("Returns the project configuration", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/detect?projectID=proj1", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		resp := w.Result()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var cfg types.ProjectConfiguration
		require.NoError(t, json.NewDecoder(w.Body).Decode(&cfg))
		require.NotNil(t, cfg.Match(1))
		assert.Equal(t, "enphase_aps", cfg.Match(1).ConfigID)
		assert.NotEmpty(t, cfg.RunID)
	})

	t.Run("Requires projectID", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/detect", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})
}

func TestHandlePopulate(t *testing.T) {
	db := &storagemock.MockDatabase{}
	db.On("GetSystemDetails", mock.Anything, "proj1").Return(enphaseProjectDetails(), nil)
	db.On("GetProject", mock.Anything, "proj1").
		Return(types.Project{}, storage.ErrProjectNotFound)
	db.On("InsertConfiguration", mock.Anything, "proj1", mock.Anything).Return(nil)
	db.On("SaveSystemDetails", mock.Anything, "proj1", mock.Anything).Return(nil)

	handler := testServer(db).setupHandler()

	t.Run("Detects and saves slot fields", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/populate",
			strings.NewReader(`{"projectID":"proj1"}`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		resp := w.Result()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var pr populateResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&pr))
		assert.NotEmpty(t, pr.RunID)
		assert.NotEmpty(t, pr.Result.Fields)
		assert.NotEmpty(t, pr.Result.Populated)
		db.AssertCalled(t, "SaveSystemDetails", mock.Anything, "proj1", mock.Anything)
	})

	t.Run("Dry run skips saving", func(t *testing.T) {
		dryDB := &storagemock.MockDatabase{}
		dryDB.On("GetSystemDetails", mock.Anything, "proj1").Return(enphaseProjectDetails(), nil)
		dryDB.On("GetProject", mock.Anything, "proj1").
			Return(types.Project{}, storage.ErrProjectNotFound)
		dryDB.On("InsertConfiguration", mock.Anything, "proj1", mock.Anything).Return(nil)

		req := httptest.NewRequest("POST", "/api/populate",
			strings.NewReader(`{"projectID":"proj1","dryRun":true}`))
		w := httptest.NewRecorder()
		testServer(dryDB).setupHandler().ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Result().StatusCode)
		dryDB.AssertNotCalled(t, "SaveSystemDetails", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Requires projectID", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/populate", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})

	t.Run("Save failure still returns the payload", func(t *testing.T) {
		failDB := &storagemock.MockDatabase{}
		failDB.On("GetSystemDetails", mock.Anything, "proj1").Return(enphaseProjectDetails(), nil)
		failDB.On("GetProject", mock.Anything, "proj1").
			Return(types.Project{}, storage.ErrProjectNotFound)
		failDB.On("InsertConfiguration", mock.Anything, "proj1", mock.Anything).Return(nil)
		failDB.On("SaveSystemDetails", mock.Anything, "proj1", mock.Anything).
			Return(errors.New("firestore unavailable"))

		req := httptest.NewRequest("POST", "/api/populate",
			strings.NewReader(`{"projectID":"proj1"}`))
		w := httptest.NewRecorder()
		testServer(failDB).setupHandler().ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Result().StatusCode)

		// the caller gets the computed fields back so it can retry the write
		var pr populateResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&pr))
		assert.Equal(t, "populate failed", pr.Error)
		assert.NotEmpty(t, pr.Result.Fields)
	})
}

func TestHandleSystemDetails(t *testing.T) {
	db := &storagemock.MockDatabase{}
	db.On("GetSystemDetails", mock.Anything, "proj1").
		Return(types.SystemDetails{"utility": "APS"}, nil)

	handler := testServer(db).setupHandler()
	req := httptest.NewRequest("GET", "/api/systemDetails?projectID=proj1", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	var details map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&details))
	assert.Equal(t, "APS", details["utility"])
}

func TestHandleListCatalog(t *testing.T) {
	db := &storagemock.MockDatabase{}
	handler := testServer(db).setupHandler()

	req := httptest.NewRequest("GET", "/api/list/catalog", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	var rows []types.CatalogEquipment
	require.NoError(t, json.NewDecoder(w.Body).Decode(&rows))
	assert.NotEmpty(t, rows)
}

func TestHandleListUtilities(t *testing.T) {
	db := &storagemock.MockDatabase{}
	handler := testServer(db).setupHandler()

	req := httptest.NewRequest("GET", "/api/list/utilities", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Result().StatusCode)
	var infos []utilityInfo
	require.NoError(t, json.NewDecoder(w.Body).Decode(&infos))
	require.NotEmpty(t, infos)
	assert.Equal(t, "APS", infos[0].Code)
	assert.Equal(t, "Arizona Public Service (APS)", infos[0].Name)
}

func TestHealthzAndHeaders(t *testing.T) {
	db := &storagemock.MockDatabase{}
	handler := testServer(db).setupHandler()

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	resp := w.Result()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", w.Body.String())
	assert.Equal(t, "voltbos", resp.Header.Get("Server"))
	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
}
