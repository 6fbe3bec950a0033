package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/tasker-hq/tasker-go/internal/domain"
)

// memoryUsers is the map-backed default user repository.
type memoryUsers struct {
	mu     sync.RWMutex
	nextID int64
	users  map[int64]*UserRecord
}

// NewMemoryUserRepository returns an empty in-memory implementation.
func NewMemoryUserRepository() UserRepository {
	return &memoryUsers{nextID: 1, users: make(map[int64]*UserRecord)}
}

func (r *memoryUsers) Create(_ context.Context, user *UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	if user.CreatedAt == "" {
		user.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUsers) Update(_ context.Context, user *UserRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUsers) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *memoryUsers) GetByID(_ context.Context, id int64) (*UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *memoryUsers) GetByEmail(_ context.Context, email string) (*UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUsers) List(_ context.Context) ([]UserRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	users := make([]UserRecord, 0, len(r.users))
	for id := int64(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok {
			users = append(users, *user)
		}
	}
	return users, nil
}

// memoryProjects is the map-backed default project repository.
type memoryProjects struct {
	mu       sync.RWMutex
	nextID   int64
	projects map[int64]*domain.Project
}

// NewMemoryProjectRepository returns an empty in-memory implementation.
func NewMemoryProjectRepository() ProjectRepository {
	return &memoryProjects{nextID: 1, projects: make(map[int64]*domain.Project)}
}

func (r *memoryProjects) Create(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	project.ID = r.nextID
	r.nextID++
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *memoryProjects) Update(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[project.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *project
	r.projects[project.ID] = &clone
	return nil
}

func (r *memoryProjects) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.projects, id)
	return nil
}

func (r *memoryProjects) GetByID(_ context.Context, id int64) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	project, ok := r.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *project
	return &clone, nil
}

func (r *memoryProjects) List(_ context.Context) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	projects := make([]domain.Project, 0, len(r.projects))
	for id := int64(1); id < r.nextID; id++ {
		if project, ok := r.projects[id]; ok {
			projects = append(projects, *project)
		}
	}
	return projects, nil
}

// memoryTasks is the map-backed default task repository.
type memoryTasks struct {
	mu     sync.RWMutex
	nextID int64
	tasks  map[int64]*domain.Task
}

// NewMemoryTaskRepository returns an empty in-memory implementation.
func NewMemoryTaskRepository() TaskRepository {
	return &memoryTasks{nextID: 1, tasks: make(map[int64]*domain.Task)}
}

func (r *memoryTasks) Create(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task.ID = r.nextID
	r.nextID++
	now := time.Now().UTC().Format(time.RFC3339)
	if task.CreatedAt == "" {
		task.CreatedAt = now
	}
	task.ModifiedAt = now
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memoryTasks) Update(_ context.Context, task *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return pgx.ErrNoRows
	}
	task.ModifiedAt = time.Now().UTC().Format(time.RFC3339)
	clone := *task
	r.tasks[task.ID] = &clone
	return nil
}

func (r *memoryTasks) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.tasks, id)
	return nil
}

func (r *memoryTasks) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *task
	return &clone, nil
}

func (r *memoryTasks) List(_ context.Context, assigneeID *int64) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tasks := make([]domain.Task, 0, len(r.tasks))
	for id := int64(1); id < r.nextID; id++ {
		task, ok := r.tasks[id]
		if !ok {
			continue
		}
		if assigneeID != nil && (task.Assignee == nil || task.Assignee.ID != *assigneeID) {
			continue
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}
