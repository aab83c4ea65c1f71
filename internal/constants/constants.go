package constants

const (
	AppName            = "onehabit"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/onehabit/onehabit.db"
	DefaultSettings    = "~/.config/onehabit/config.yaml"
	Version            = "v0.3.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// MonthFormat is the month key format used by monthly goals (YYYY-MM)
	MonthFormat = "2006-01"

	// ConnectionEnvVar overrides the database connection string
	ConnectionEnvVar = "ONEHABIT_DB_CONNECTION"

	// Analytics defaults
	DefaultPatternWindowDays = 30
	BestDayMinSamples        = 3
	MaxBestDays              = 3
	WeeklyTrendDays          = 7
	RecentCheckInsLimit      = 30
	OnTrackThreshold         = 0.8

	// Pair constants
	InviteCodeLength = 6
	MaxPairMembers   = 2

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "onehabit-"
	BackupFileSuffix = ".db"

	DefaultTimezone = "UTC"
)
