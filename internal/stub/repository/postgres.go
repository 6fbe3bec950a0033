package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tasker-hq/tasker-go/internal/domain"
)

type pgUsers struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository returns a Postgres-backed implementation.
func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgUsers{pool: pool}
}

func (r *pgUsers) Create(ctx context.Context, user *UserRecord) error {
	const query = `
        INSERT INTO users (username, full_name, email, telephone, password_hash, role_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	var createdAt time.Time
	err := r.pool.QueryRow(ctx, query,
		user.Username,
		user.FullName,
		user.Email,
		user.Telephone,
		user.PasswordHash,
		roleID(user.Role),
	).Scan(&user.ID, &createdAt)
	if err != nil {
		return err
	}
	user.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return nil
}

func (r *pgUsers) Update(ctx context.Context, user *UserRecord) error {
	const query = `
        UPDATE users SET username=$1, full_name=$2, email=$3, telephone=$4, password_hash=$5, role_id=$6
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		user.Username,
		user.FullName,
		user.Email,
		user.Telephone,
		user.PasswordHash,
		roleID(user.Role),
		user.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgUsers) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const userSelect = `
    SELECT u.id, u.username, u.full_name, u.email, u.telephone, u.password_hash, u.created_at,
           r.id, r.role_name
    FROM users u
    LEFT JOIN roles r ON r.id = u.role_id`

func (r *pgUsers) GetByID(ctx context.Context, id int64) (*UserRecord, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE u.id=$1`, id))
}

func (r *pgUsers) GetByEmail(ctx context.Context, email string) (*UserRecord, error) {
	return scanUser(r.pool.QueryRow(ctx, userSelect+` WHERE LOWER(u.email)=LOWER($1)`, email))
}

func (r *pgUsers) List(ctx context.Context) ([]UserRecord, error) {
	rows, err := r.pool.Query(ctx, userSelect+` ORDER BY u.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []UserRecord
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*UserRecord, error) {
	var (
		user      UserRecord
		createdAt time.Time
		rID       *int64
		rName     *string
	)
	err := row.Scan(&user.ID, &user.Username, &user.FullName, &user.Email,
		&user.Telephone, &user.PasswordHash, &createdAt, &rID, &rName)
	if err != nil {
		return nil, err
	}
	user.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	if rID != nil {
		user.Role = &domain.Role{ID: *rID}
		if rName != nil {
			user.Role.RoleName = *rName
		}
	}
	return &user, nil
}

func roleID(role *domain.Role) *int64 {
	if role == nil {
		return nil
	}
	id := role.ID
	return &id
}

type pgProjects struct {
	pool *pgxpool.Pool
}

// NewPostgresProjectRepository returns a Postgres-backed implementation.
func NewPostgresProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgProjects{pool: pool}
}

func (r *pgProjects) Create(ctx context.Context, project *domain.Project) error {
	const query = `
        INSERT INTO projects (name, description, project_start_date, project_end_date, project_status_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		project.Name,
		project.Description,
		nullTime(project.StartDate),
		nullTime(project.EndDate),
		statusID(project.Status),
	).Scan(&project.ID)
}

func (r *pgProjects) Update(ctx context.Context, project *domain.Project) error {
	const query = `
        UPDATE projects SET name=$1, description=$2, project_start_date=$3, project_end_date=$4, project_status_id=$5
        WHERE id=$6`

	cmd, err := r.pool.Exec(ctx, query,
		project.Name,
		project.Description,
		nullTime(project.StartDate),
		nullTime(project.EndDate),
		statusID(project.Status),
		project.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgProjects) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const projectSelect = `
    SELECT p.id, p.name, p.description, p.project_start_date, p.project_end_date,
           s.id, s.name
    FROM projects p
    LEFT JOIN project_statuses s ON s.id = p.project_status_id`

func (r *pgProjects) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	return scanProject(r.pool.QueryRow(ctx, projectSelect+` WHERE p.id=$1`, id))
}

func (r *pgProjects) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.pool.Query(ctx, projectSelect+` ORDER BY p.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []domain.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, *project)
	}
	return projects, rows.Err()
}

func scanProject(row pgx.Row) (*domain.Project, error) {
	var (
		project    domain.Project
		start, end *time.Time
		sID        *int64
		sName      *string
	)
	err := row.Scan(&project.ID, &project.Name, &project.Description, &start, &end, &sID, &sName)
	if err != nil {
		return nil, err
	}
	project.StartDate = formatTime(start)
	project.EndDate = formatTime(end)
	if sID != nil {
		project.Status = &domain.ProjectStatus{ID: *sID}
		if sName != nil {
			project.Status.Name = *sName
		}
	}
	return &project, nil
}

type pgTasks struct {
	pool *pgxpool.Pool
}

// NewPostgresTaskRepository returns a Postgres-backed implementation.
func NewPostgresTaskRepository(pool *pgxpool.Pool) TaskRepository {
	return &pgTasks{pool: pool}
}

func (r *pgTasks) Create(ctx context.Context, task *domain.Task) error {
	const query = `
        INSERT INTO tasks (title, description, status_id, deadline, assignee_id, project_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, modified_at`

	var createdAt, modifiedAt time.Time
	err := r.pool.QueryRow(ctx, query,
		task.Title,
		task.Description,
		taskStatusID(task.Status),
		nullTime(task.Deadline),
		assigneeID(task.Assignee),
		taskProjectID(task.Project),
	).Scan(&task.ID, &createdAt, &modifiedAt)
	if err != nil {
		return err
	}
	task.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	task.ModifiedAt = modifiedAt.UTC().Format(time.RFC3339)
	return nil
}

func (r *pgTasks) Update(ctx context.Context, task *domain.Task) error {
	const query = `
        UPDATE tasks SET title=$1, description=$2, status_id=$3, deadline=$4, assignee_id=$5, project_id=$6, modified_at=NOW()
        WHERE id=$7`

	cmd, err := r.pool.Exec(ctx, query,
		task.Title,
		task.Description,
		taskStatusID(task.Status),
		nullTime(task.Deadline),
		assigneeID(task.Assignee),
		taskProjectID(task.Project),
		task.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *pgTasks) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

const taskSelect = `
    SELECT t.id, t.title, t.description, t.deadline, t.created_at, t.modified_at, t.deleted_at,
           s.id, s.name, u.id, u.username, p.id, p.name
    FROM tasks t
    LEFT JOIN task_statuses s ON s.id = t.status_id
    LEFT JOIN users u ON u.id = t.assignee_id
    LEFT JOIN projects p ON p.id = t.project_id`

func (r *pgTasks) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	return scanTask(r.pool.QueryRow(ctx, taskSelect+` WHERE t.id=$1`, id))
}

func (r *pgTasks) List(ctx context.Context, assignee *int64) ([]domain.Task, error) {
	query := taskSelect + ` WHERE t.deleted_at IS NULL`
	args := []any{}
	if assignee != nil {
		query += ` AND t.assignee_id=$1`
		args = append(args, *assignee)
	}
	query += ` ORDER BY t.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task                 domain.Task
		deadline, deletedAt  *time.Time
		createdAt, modifiedAt time.Time
		sID, uID, pID        *int64
		sName, uName, pName  *string
	)
	err := row.Scan(&task.ID, &task.Title, &task.Description, &deadline, &createdAt, &modifiedAt,
		&deletedAt, &sID, &sName, &uID, &uName, &pID, &pName)
	if err != nil {
		return nil, err
	}
	task.Deadline = formatTime(deadline)
	task.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	task.ModifiedAt = modifiedAt.UTC().Format(time.RFC3339)
	task.DeletedAt = formatTime(deletedAt)
	if sID != nil {
		task.Status = &domain.TaskStatus{ID: *sID}
		if sName != nil {
			task.Status.Name = *sName
		}
	}
	if uID != nil {
		task.Assignee = &domain.UserRef{ID: *uID}
		if uName != nil {
			task.Assignee.Username = *uName
		}
	}
	if pID != nil {
		task.Project = &domain.TaskProjectRef{ID: *pID}
		if pName != nil {
			task.Project.Name = *pName
		}
	}
	return &task, nil
}

func nullTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, val); err == nil {
			return &parsed
		}
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func statusID(status *domain.ProjectStatus) *int64 {
	if status == nil {
		return nil
	}
	id := status.ID
	return &id
}

func taskStatusID(status *domain.TaskStatus) *int64 {
	if status == nil {
		return nil
	}
	id := status.ID
	return &id
}

func assigneeID(ref *domain.UserRef) *int64 {
	if ref == nil {
		return nil
	}
	id := ref.ID
	return &id
}

func taskProjectID(ref *domain.TaskProjectRef) *int64 {
	if ref == nil {
		return nil
	}
	id := ref.ID
	return &id
}
