package constants

const (
	AppName           = "habitlog"
	Version           = "v0.3.0"
	DefaultConfigDir  = "~/.config/habitlog"
	DefaultDBPath     = "~/.config/habitlog/habitlog.db"
	DefaultConfigFile = "~/.config/habitlog/config.toml"

	// DateFormat is the storage date format (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateFormat is the date format shown to users (DD-MM-YYYY)
	DisplayDateFormat = "02-01-2006"

	// NotApplicable is rendered in place of a best/worst day date when no entry qualifies
	NotApplicable = "N/A"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitlog-"
	BackupFileSuffix = ".db"

	// Analytics constants
	ConsistencyDecimals = 1
	AverageDecimals     = 2
	DefaultWorkers      = 1
	MaxWorkers          = 16

	// MaxQuantityDigits bounds the significant digits of a logged quantity
	MaxQuantityDigits = 18
)

// InputDateFormats are the layouts accepted for user-entered dates.
var InputDateFormats = []string{
	"02-01-2006",
	"2-01-06",
	"02-01-06",
	"2-01-2006",
	DateFormat,
}
