package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelInfoUniqueName(t *testing.T) {
	db := setupModelsTest(t)

	first := LabelInfo{LabelName: "Harvest", Overview: strp("British label.")}
	require.NoError(t, db.Create(&first).Error)

	second := LabelInfo{LabelName: "Harvest"}
	assert.Error(t, db.Create(&second).Error)
}

func TestLabelInfoToDict(t *testing.T) {
	db := setupModelsTest(t)
	now := time.Now().UTC()

	info := LabelInfo{
		LabelName:   "Blue Note",
		Overview:    strp("Jazz label founded in 1939."),
		GeneratedAt: timep(now),
	}
	require.NoError(t, db.Create(&info).Error)

	data := info.ToDict()
	assert.Equal(t, "Blue Note", data["label_name"])
	assert.Equal(t, "Jazz label founded in 1939.", data["overview"])
	generated, ok := data["generated_at"].(string)
	require.True(t, ok)
	assert.Contains(t, generated, "T")
	assert.True(t, info.Valid())
}

func TestAccessLogStringAndDict(t *testing.T) {
	db := setupModelsTest(t)
	status := 200
	elapsed := 12.5

	row := AccessLog{
		Timestamp:      time.Now().UTC(),
		Method:         "GET",
		Path:           "/api/data",
		StatusCode:     &status,
		ResponseTimeMs: &elapsed,
	}
	require.NoError(t, db.Create(&row).Error)

	assert.Contains(t, row.String(), "GET /api/data [200]")

	data := row.ToDict()
	assert.Equal(t, "GET", data["method"])
	assert.Equal(t, 200, data["status_code"])
	assert.Equal(t, 12.5, data["response_time_ms"])
	assert.Nil(t, data["query_string"])
}
