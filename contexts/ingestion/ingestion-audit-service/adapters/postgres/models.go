package postgresadapter

import "time"

type ingestionRunModel struct {
	RunID       string `gorm:"column:run_id;primaryKey"`
	StartedAt   time.Time `gorm:"column:started_at"`
	EndedAt     *time.Time `gorm:"column:ended_at"`
	Discovered  int    `gorm:"column:discovered"`
	Pulled      int    `gorm:"column:pulled"`
	OK          int    `gorm:"column:ok_count"`
	Failed      int    `gorm:"column:failed_count"`
	AlreadySeen int    `gorm:"column:already_seen_count"`
	AcksSent    int    `gorm:"column:acks_sent"`
}

func (ingestionRunModel) TableName() string { return "ingestion_runs" }

type ingestionFileAuditModel struct {
	AuditID         string `gorm:"column:audit_id;primaryKey"`
	RunID           string `gorm:"column:run_id"`
	IngestionFileID string `gorm:"column:ingestion_file_id"`
	Status          int16  `gorm:"column:status"`
	ParsedCount     int    `gorm:"column:parsed_count"`
	PersistedCount  int    `gorm:"column:persisted_count"`
	Verified        bool   `gorm:"column:verified"`
	AckResult       string `gorm:"column:ack_result"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (ingestionFileAuditModel) TableName() string { return "ingestion_file_audits" }

type ingestionErrorModel struct {
	ErrorID         string `gorm:"column:error_id;primaryKey"`
	IngestionFileID string `gorm:"column:ingestion_file_id"`
	Scope           string `gorm:"column:scope"`
	ObjectKey       string `gorm:"column:object_key"`
	Stage           string `gorm:"column:stage"`
	Code            string `gorm:"column:code"`
	Message         string `gorm:"column:message"`
	Retryable       bool   `gorm:"column:retryable"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (ingestionErrorModel) TableName() string { return "ingestion_errors" }
