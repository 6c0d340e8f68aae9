package domain

import "time"

type Task struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Completed bool      `db:"completed"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewTask(title string, userID int64) *Task {
	now := time.Now()
	return &Task{
		Title:     title,
		Completed: false,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OwnedBy reports whether userID is the task's owner.
func (t *Task) OwnedBy(userID int64) bool {
	return t.UserID == userID
}
