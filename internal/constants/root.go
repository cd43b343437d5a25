package constants

import "time"

const (
	AppName            = "timecompass"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/timecompass/timecompass.db"
	PostgresConfigPath = "postgresql" // reported in place of a connection string
	Version            = "v0.2.0"

	// Environment variables consulted in addition to flags
	EnvConfig       = "TIMECOMPASS_CONFIG"
	EnvDebug        = "TIMECOMPASS_DEBUG"
	EnvDBConnection = "TIMECOMPASS_DB_CONNECTION"

	// SettingsKey is the fixed key the settings record is stored under
	SettingsKey = "timeCompassSettings"

	// Tick intervals for the two independent timers
	ClockInterval = time.Second
	FocusInterval = time.Second

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "timecompass-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifyTimeout          = 2 * time.Second
	NotifierLockfileName   = "timecompass-notifier.lock"
	NotifierExecutable     = "timecompass-tray"
	NotifierSecretHeader   = "X-Timecompass-Secret"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.timecompass"

	// Focus timer notification text
	FocusFinishedTitle = "Focus session complete!"
	FocusFinishedBody  = "Nicely done. Take a break."
)

type SessionState int

const (
	// Session States
	StateDashboard SessionState = iota
	StateEditSettings
)
