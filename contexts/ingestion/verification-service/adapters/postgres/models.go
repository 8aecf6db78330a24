package postgresadapter

import "time"

type verificationRunModel struct {
	RunID           string    `gorm:"column:run_id;primaryKey"`
	IngestionFileID string    `gorm:"column:ingestion_file_id"`
	StartedAt       time.Time `gorm:"column:started_at"`
	EndedAt         time.Time `gorm:"column:ended_at"`
	Verified        bool      `gorm:"column:verified"`
	RulesRun        int       `gorm:"column:rules_run"`
	RulesFailed     int       `gorm:"column:rules_failed"`
}

func (verificationRunModel) TableName() string { return "verification_runs" }

type verificationResultModel struct {
	ResultID     string `gorm:"column:result_id;primaryKey"`
	RunID        string `gorm:"column:run_id"`
	RuleName     string `gorm:"column:rule_name"`
	OK           bool   `gorm:"column:ok"`
	RowsAffected int    `gorm:"column:rows_affected"`
	SampleJSON   string `gorm:"column:sample_json"`
	Message      string `gorm:"column:message"`
}

func (verificationResultModel) TableName() string { return "verification_results" }
