package model

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// JSONBStringMap stores an open-ended mapping in JSONB. Nutrients use it
// to keep each value as the formatted display string the source data
// ships ("450 kcal"), never a bare number.
type JSONBStringMap map[string]string

// Value implements the driver.Valuer interface
func (m JSONBStringMap) Value() (driver.Value, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements the sql.Scanner interface
func (m *JSONBStringMap) Scan(value interface{}) error {
	if value == nil {
		*m = JSONBStringMap{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Recipe is one catalog record. Numeric fields are pointers so an absent
// value is NULL in the store, never a NaN sentinel; the seeder enforces
// this at import time.
type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Cuisine      string           `gorm:"size:100" json:"cuisine"`
	Description  string           `gorm:"type:text" json:"description"`
	Rating       *float64         `gorm:"type:float" json:"rating"`
	PrepTime     *float64         `gorm:"type:float" json:"prep_time"`
	CookTime     *float64         `gorm:"type:float" json:"cook_time"`
	TotalTime    *float64         `gorm:"type:float" json:"total_time"`
	Nutrients    JSONBStringMap   `gorm:"type:jsonb;not null;default:'{}'" json:"nutrients"`
	Serves       string           `gorm:"size:50" json:"serves"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Continent    string           `gorm:"size:100" json:"continent"`
	Region       string           `gorm:"size:100" json:"region"`
	Country      string           `gorm:"size:100" json:"country"`
	URL          string           `gorm:"size:512" json:"url"`
}
