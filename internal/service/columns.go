package service

// Header candidate lists for the field resolver. Order matters: the first
// candidate that yields a non-blank cell wins, so canonical spellings come
// first and loose synonyms last.
//
// The merge-key list is the union of spellings observed across historical
// upload sheets. The plain "Name" header doubles as the instructor-name
// column on course sheets, so it lives in a separate fallback list that
// resolveMergeKey consults only after every Korean-name variant came up
// blank.
var (
	mergeKeyColumns         = []string{"Korean_name", "Korean name", "korean_name", "name_kr"}
	mergeKeyFallbackColumns = []string{"Name"}

	facultyEnglishColumns  = []string{"English_name", "English name"}
	facultyCategoryColumns = []string{"Category"}
	facultyEmailColumns    = []string{"Email"}

	courseNameColumns        = []string{"Name"}
	courseEnglishColumns     = []string{"English_name", "English name"}
	courseYearColumns        = []string{"Year"}
	courseSemesterColumns    = []string{"Semester"}
	courseLanguageColumns    = []string{"Language"}
	courseTitleColumns       = []string{"Course Title", "course_title"}
	courseTimeSlotColumns    = []string{"Time Slot", "time_slot"}
	courseDayColumns         = []string{"Day"}
	courseTimeColumns        = []string{"Time"}
	courseFrequencyColumns   = []string{"Frequency(Week)", "Frequency (Week)", "frequency_week"}
	courseFormatColumns      = []string{"Course format", "course_format"}
	coursePasswordColumns    = []string{"password", "Password", "PASSWORD", "pin", "PIN", "pass", "Pass", "PIN_code", "password_code"}
	courseReasonColumns      = []string{"Reason for Applying", "Reason", "reason_for_applying", "Reason_for_Applying"}
	courseApplyFlagColumns   = []string{"Apply this semester(Online 70)", "Apply this semester", "Apply", "Apply_this_semester", "Apply_this_semester(Online 70)"}
)
