package planner

import "study-planner-api/models"

// Window is a daily clock range in local 24-hour time.
type Window struct {
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

var studyWindows = map[models.StudyTime]Window{
	models.StudyMorning: {StartHour: 7, EndHour: 11},
	models.StudyEvening: {StartHour: 16, EndHour: 20},
	models.StudyNight:   {StartHour: 20, EndHour: 23},
}

// WindowFor maps a study-time preference to its clock window. Unknown
// preferences get the evening window.
func WindowFor(pref models.StudyTime) Window {
	if w, ok := studyWindows[pref]; ok {
		return w
	}
	return studyWindows[models.StudyEvening]
}
