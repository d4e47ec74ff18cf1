package config

import "time"

// Application identity and file names.
const (
	AppName        = "timeplan"
	DBFileName     = "timeplan.db"
	JSONFileName   = "timeplan.json"
	LogFileName    = "timeplan.log"
	ConfigFileName = "timeplan"
	EnvPrefix      = "TIMEPLAN"
	BackupKeyEnv   = "TIMEPLAN_BACKUP_KEY"
)

// Persistence slots. Each holds a full JSON snapshot.
const (
	SlotMilestones = "milestones"
	SlotSettings   = "settings"
)

// Storage backends.
const (
	StorageSQLite = "sqlite"
	StorageJSON   = "json"
	StorageMemory = "memory"
)

// Geometry.
const (
	// DefaultMonthWidth is the horizontal size of one month on the chart.
	DefaultMonthWidth = 30
)

// DefaultDBTimeout bounds each sqlite statement.
const DefaultDBTimeout = 5 * time.Second

// Backup format.
const (
	BackupVersion    = 1
	BackupFilePrefix = "timeplan_backup_"
	ExportFilePrefix = "timeplan_export_"
	ExportSheetName  = "Timeline"
	ExportTitle      = "Timeline Planner Export"
)
