package domain

// ProjectStatus is the named lifecycle state of a project.
type ProjectStatus struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Project as served by the Tasker API under /projects/.
type Project struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	StartDate   string         `json:"project_start_date,omitempty"`
	EndDate     string         `json:"project_end_date,omitempty"`
	Status      *ProjectStatus `json:"project_status,omitempty"`
}
