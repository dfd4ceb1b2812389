package domain

// Course is a teachable unit with an optional owning teacher and a student set.
//
// Version increments on every successful save; repositories reject a save
// whose Version does not match the stored one.
type Course struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TeacherID   string   `json:"teacher_id,omitempty"`
	StudentIDs  []string `json:"student_ids"`
	Version     int64    `json:"-"`
}

// HasStudent reports whether studentID is already in the student set.
func (c *Course) HasStudent(studentID string) bool {
	for _, id := range c.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}

// AddStudent appends studentID unless already present. It returns false on a no-op.
func (c *Course) AddStudent(studentID string) bool {
	if c.HasStudent(studentID) {
		return false
	}
	c.StudentIDs = append(c.StudentIDs, studentID)
	return true
}

// RemoveStudent drops studentID from the set. It returns false when absent.
func (c *Course) RemoveStudent(studentID string) bool {
	for i, id := range c.StudentIDs {
		if id == studentID {
			c.StudentIDs = append(c.StudentIDs[:i], c.StudentIDs[i+1:]...)
			return true
		}
	}
	return false
}
