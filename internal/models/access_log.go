package models

import (
	"fmt"
	"time"
)

// AccessLog is one row per handled HTTP request, written by the access logging
// middleware after the response goes out.
type AccessLog struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Timestamp   time.Time `gorm:"column:timestamp;not null;index:idx_access_logs_timestamp" json:"timestamp"`
	Method      string    `gorm:"column:method;type:varchar(10);not null" json:"method"`
	Path        string    `gorm:"column:path;type:varchar(500);not null;index:idx_access_logs_path" json:"path"`
	QueryString *string   `gorm:"column:query_string;type:varchar(500)" json:"query_string"`
	FullURL     *string   `gorm:"column:full_url;type:varchar(1000)" json:"full_url"`

	IPAddress *string `gorm:"column:ip_address;type:varchar(50);index:idx_access_logs_ip_address" json:"ip_address"`
	UserAgent *string `gorm:"column:user_agent;type:varchar(500)" json:"user_agent"`
	Referrer  *string `gorm:"column:referrer;type:varchar(500)" json:"referrer"`

	StatusCode     *int     `gorm:"column:status_code;index:idx_access_logs_status_code" json:"status_code"`
	ResponseTimeMs *float64 `gorm:"column:response_time_ms" json:"response_time_ms"`

	Endpoint *string `gorm:"column:endpoint;type:varchar(100)" json:"endpoint"`
}

func (AccessLog) TableName() string {
	return "access_logs"
}

// ToDict converts the log row for JSON serialization.
func (a *AccessLog) ToDict() map[string]interface{} {
	return map[string]interface{}{
		"id":               a.ID,
		"timestamp":        a.Timestamp.UTC().Format(time.RFC3339Nano),
		"method":           a.Method,
		"path":             a.Path,
		"query_string":     nullable(a.QueryString),
		"full_url":         nullable(a.FullURL),
		"ip_address":       nullable(a.IPAddress),
		"user_agent":       nullable(a.UserAgent),
		"referrer":         nullable(a.Referrer),
		"status_code":      nullable(a.StatusCode),
		"response_time_ms": nullable(a.ResponseTimeMs),
		"endpoint":         nullable(a.Endpoint),
	}
}

func (a *AccessLog) String() string {
	status := 0
	if a.StatusCode != nil {
		status = *a.StatusCode
	}
	return fmt.Sprintf("<AccessLog %d: %s %s [%d]>", a.ID, a.Method, a.Path, status)
}
