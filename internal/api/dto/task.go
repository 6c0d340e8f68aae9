package dto

// TaskForm is the add-task form. A blank title is accepted and ignored.
type TaskForm struct {
	Title string `form:"title" json:"title"`
}

// TaskURI binds the numeric id of /complete_task/:id and /delete_task/:id
type TaskURI struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}
