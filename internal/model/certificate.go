package model

import "fmt"

// Certificate represents a document or credential optionally held by one Registry
type Certificate struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement:false;default:nextval('sequence_generator')"`
	Name       string    `json:"name" gorm:"column:name;type:varchar(255)"`
	RegistryID *int64    `json:"registryId,omitempty" gorm:"column:registry_id;index"`
	Registry   *Registry `json:"registry,omitempty" gorm:"foreignKey:RegistryID"`
}

// TableName pins the table to the singular name
func (Certificate) TableName() string {
	return "certificate"
}

// Equal reports whether both certificates carry the same assigned identifier
func (c *Certificate) Equal(other *Certificate) bool {
	if c == nil || other == nil {
		return false
	}
	return c.ID != 0 && c.ID == other.ID
}

func (c *Certificate) String() string {
	return fmt.Sprintf("Certificate{id=%d, name='%s'}", c.ID, c.Name)
}
