package ganttimport

// User-facing Hebrew texts of the import wizard. Row-level messages are
// embedded into ValidatedRow errors/warnings; the Msg* constants surface
// through the HTTP API and CLI.
const (
	MsgUnsupportedFile = "קובץ לא נתמך. אנא העלה קובץ .xlsx או .xls"
	MsgEmptyFile       = "הקובץ ריק"
	MsgUnreadableFile  = "שגיאה בקריאת הקובץ. אנא ודא שהקובץ תקין."
	MsgMappingGate     = "אנא מפה את כל השדות החובה: שם משימה, תאריך התחלה, תאריך סיום"
	MsgNoValidRows     = "אין שורות תקינות לייבא"
	MsgImportDone      = "הייבוא הושלם בהצלחה!"

	msgTaskNameMissing = "שם משימה חסר"
	msgStartMissing    = "תאריך התחלה חסר"
	msgStartInvalid    = "תאריך התחלה לא תקין"
	msgEndMissing      = "תאריך סיום חסר"
	msgEndInvalid      = "תאריך סיום לא תקין"
	msgEndBeforeStart  = "תאריך סיום לפני תאריך התחלה"

	// duplicate id warning, formatted with the offending id
	msgDuplicateTaskID = "מזהה משימה כפול: %s"

	// prefix for the milestone line merged into task notes
	notesMilestonePrefix = "אבן דרך: "
)
