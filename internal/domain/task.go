package domain

// TaskStatus is the named workflow state of a task.
type TaskStatus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TaskProjectRef is the abbreviated project shape embedded in a task.
type TaskProjectRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Task as served by the Tasker API under /tasks/.
type Task struct {
	ID          int64           `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Status      *TaskStatus     `json:"status,omitempty"`
	Deadline    string          `json:"deadline,omitempty"`
	Assignee    *UserRef        `json:"assignee,omitempty"`
	Project     *TaskProjectRef `json:"project,omitempty"`
	CreatedAt   string          `json:"created_at,omitempty"`
	ModifiedAt  string          `json:"modified_at,omitempty"`
	DeletedAt   string          `json:"deleted_at,omitempty"`
}
