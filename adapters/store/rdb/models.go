package rdb

import "time"

// ClusterRecord persistence model
type ClusterRecord struct {
	ID                string    `gorm:"primaryKey;type:text;not null"`
	ProjectID         string    `gorm:"type:text;not null;index"`
	UserID            string    `gorm:"type:text"`
	ProviderID        string    `gorm:"type:text"`
	GCPProjectID      string    `gorm:"column:gcp_project_id;type:text;not null"`
	Zone              string    `gorm:"type:text;not null"`
	ClusterName       string    `gorm:"type:text;not null"`
	GCPOperationID    string    `gorm:"column:gcp_operation_id;type:text"`
	Namespace         string    `gorm:"type:text"`
	Enabled           bool      `gorm:"not null"`
	Endpoint          string    `gorm:"type:text"`
	CACert            string    `gorm:"column:ca_cert;type:text"`
	Username          string    `gorm:"type:text"`
	EncryptedPassword string    `gorm:"type:text"`
	Token             string    `gorm:"type:text"`
	IntegrationID     string    `gorm:"type:text"` // references Integration
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

func (ClusterRecord) TableName() string { return "clusters" }

// IntegrationRecord persistence model
type IntegrationRecord struct {
	ID        string    `gorm:"primaryKey;type:text;not null"`
	ProjectID string    `gorm:"type:text;not null;uniqueIndex:idx_integrations_project_kind"`
	Kind      string    `gorm:"type:text;not null;uniqueIndex:idx_integrations_project_kind"`
	Active    bool      `gorm:"not null"`
	APIURL    string    `gorm:"column:api_url;type:text"`
	CACert    string    `gorm:"column:ca_cert;type:text"`
	Namespace string    `gorm:"type:text"`
	Token     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (IntegrationRecord) TableName() string { return "integrations" }
