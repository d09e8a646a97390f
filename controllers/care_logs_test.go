package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCareLogLifecycle(t *testing.T) {
	r := setupServer(t)
	token := registerAndLogin(t, r, "ada", "ada@example.com")
	plantID := createPlant(t, r, token, "Fern")

	// care_date omitted: defaults to today
	w := doJSON(t, r, http.MethodPost, "/api/plant-care", token, gin.H{
		"plant_id":     plantID,
		"care_type_id": 1,
		"note":         "bottom watered",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		CareLog struct {
			ID       int64  `json:"id"`
			CareDate string `json:"care_date"`
		} `json:"care_log"`
	}
	decode(t, w, &created)
	assert.Equal(t, time.Now().Format("2006-01-02"), created.CareLog.CareDate)

	// an older log; the plant listing comes back newest first
	w = doJSON(t, r, http.MethodPost, "/api/plant-care", token, gin.H{
		"plant_id":     plantID,
		"care_type_id": 2,
		"care_date":    "2024-01-05",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/plant-care/plant/%d", plantID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var listed struct {
		CareLogs []struct {
			CareDate string `json:"care_date"`
		} `json:"care_logs"`
	}
	decode(t, w, &listed)
	require.Len(t, listed.CareLogs, 2)
	assert.True(t, listed.CareLogs[0].CareDate >= listed.CareLogs[1].CareDate)

	// patch the note
	w = doJSON(t, r, http.MethodPatch,
		fmt.Sprintf("/api/plant-care/logs/%d", created.CareLog.ID), token,
		gin.H{"note": "top watered"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodDelete,
		fmt.Sprintf("/api/plant-care/logs/%d", created.CareLog.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet,
		fmt.Sprintf("/api/plant-care/logs/%d", created.CareLog.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCareLogsForeignPlantForbidden(t *testing.T) {
	r := setupServer(t)
	owner := registerAndLogin(t, r, "ada", "ada@example.com")
	intruder := registerAndLogin(t, r, "bob", "bob@example.com")
	plantID := createPlant(t, r, owner, "Fern")

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/plant-care/plant/%d", plantID), intruder, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/plant-care", intruder, gin.H{
		"plant_id":     plantID,
		"care_type_id": 1,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCustomCareTypeVisibility(t *testing.T) {
	r := setupServer(t)
	ada := registerAndLogin(t, r, "ada", "ada@example.com")
	bob := registerAndLogin(t, r, "bob", "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/api/care-types", ada, gin.H{
		"name":        "Leaf polishing",
		"description": "Wipe the dust off",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var created struct {
		CareType struct {
			ID int64 `json:"id"`
		} `json:"care_type"`
	}
	decode(t, w, &created)

	// bob cannot log care against ada's custom type
	bobPlant := createPlant(t, r, bob, "Cactus")
	w = doJSON(t, r, http.MethodPost, "/api/plant-care", bob, gin.H{
		"plant_id":     bobPlant,
		"care_type_id": created.CareType.ID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	// defaults are visible to everyone
	w = doJSON(t, r, http.MethodGet, "/api/care-types/default", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var defaults struct {
		CareTypes []struct {
			Name string `json:"name"`
		} `json:"care_types"`
	}
	decode(t, w, &defaults)
	assert.Len(t, defaults.CareTypes, 6)
}
