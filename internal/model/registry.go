package model

import "fmt"

// Registry represents a physical business location
type Registry struct {
	ID            int64  `json:"id" gorm:"primaryKey;autoIncrement:false;default:nextval('sequence_generator')"`
	Name          string `json:"name" gorm:"column:name;type:varchar(255)"`
	PostalCode    string `json:"postalCode" gorm:"column:postal_code;type:varchar(255)"`
	StreetAddress string `json:"streetAddress" gorm:"column:street_address;type:varchar(255)"`
	Neighborhood  string `json:"neighborhood" gorm:"column:neighborhood;type:varchar(255)"`
	City          string `json:"city" gorm:"column:city;type:varchar(255)"`
	State         string `json:"state" gorm:"column:state;type:varchar(255)"`

	// Relations
	Certificates []Certificate `json:"certificates,omitempty" gorm:"foreignKey:RegistryID;constraint:OnDelete:SET NULL"`
}

// TableName pins the table to the singular name
func (Registry) TableName() string {
	return "registry"
}

// Equal reports whether both registries carry the same assigned identifier.
// Unsaved registries are never equal, not even to themselves.
func (r *Registry) Equal(other *Registry) bool {
	if r == nil || other == nil {
		return false
	}
	return r.ID != 0 && r.ID == other.ID
}

// AddCertificate links the certificate to r on both sides of the relation
func (r *Registry) AddCertificate(c *Certificate) *Registry {
	id := r.ID
	c.RegistryID = &id
	c.Registry = r

	// the owned copy must not point back at r or JSON encoding would recurse
	owned := *c
	owned.Registry = nil
	r.Certificates = append(r.Certificates, owned)
	return r
}

// RemoveCertificate unlinks the certificate from r on both sides of the relation
func (r *Registry) RemoveCertificate(c *Certificate) *Registry {
	kept := r.Certificates[:0]
	for i := range r.Certificates {
		if !r.Certificates[i].Equal(c) {
			kept = append(kept, r.Certificates[i])
		}
	}
	r.Certificates = kept
	c.RegistryID = nil
	c.Registry = nil
	return r
}

func (r *Registry) String() string {
	return fmt.Sprintf("Registry{id=%d, name='%s', postalCode='%s', streetAddress='%s', neighborhood='%s', city='%s', state='%s'}",
		r.ID, r.Name, r.PostalCode, r.StreetAddress, r.Neighborhood, r.City, r.State)
}
