package domain

import "time"

// Event is a scheduled campus happening hosted by a teacher.
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Location    string    `json:"location"`
	Type        string    `json:"type"`
	TeacherID   string    `json:"teacher_id"`
}
