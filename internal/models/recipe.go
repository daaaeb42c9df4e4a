package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Ingredient is a single entry in a recipe's ingredient list.
type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// IngredientList is a custom type for storing ingredients as JSONB
type IngredientList []Ingredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
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

	return json.Unmarshal(bytes, l)
}

// StringList is a custom type for storing string arrays as JSONB
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
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

	return json.Unmarshal(bytes, l)
}

// Recipe is the catalog entity. Title, Ingredients and Instructions are
// validated as non-empty before a recipe is ever persisted; Tags are held
// lowercased. CreatedBy and CreatedAt are set once at creation and never
// change afterwards.
type Recipe struct {
	ID           uuid.UUID      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Ingredients  IngredientList `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Tags         StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	CreatedBy    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"created_by"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}
