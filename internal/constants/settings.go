package constants

const (
	// Settings record field names (JSON keys)
	SettingBirthDate      = "birthDate"
	SettingLifeExpectancy = "lifeExpectancy"
	SettingWorkStartTime  = "workStartTime"
	SettingWorkEndTime    = "workEndTime"
	SettingFocusDuration  = "focusDuration"
	SettingHasOnboarded   = "hasOnboarded"
	SettingWorkDays       = "workDays"
	SettingSemester1Start = "semester1Start"
	SettingSemester1End   = "semester1End"
	SettingSemester2Start = "semester2Start"
	SettingSemester2End   = "semester2End"

	// Default Settings Values
	DefaultBirthDate      = "1990-01-01"
	DefaultLifeExpectancy = 80
	DefaultWorkStartTime  = "09:00"
	DefaultWorkEndTime    = "18:00"
	DefaultFocusDuration  = 45
	DefaultHasOnboarded   = false
	DefaultSemester1Start = "09-01"
	DefaultSemester1End   = "01-31"
	DefaultSemester2Start = "03-01"
	DefaultSemester2End   = "06-30"

	// Bounds enforced at the settings boundary
	MinLifeExpectancy = 1
	MaxLifeExpectancy = 150
	MinFocusDuration  = 1
	MaxFocusDuration  = 600
)

// DefaultWorkDays is Monday through Friday (0 = Sunday).
var DefaultWorkDays = []int{1, 2, 3, 4, 5}

// Color classes handed to the presentation layer
const (
	ColorDay      = "day"
	ColorWeek     = "week"
	ColorSemester = "semester"
	ColorLife     = "life"
	ColorRecess   = "recess"
)
