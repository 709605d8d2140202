package survey

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"gorm.io/gorm"

	"github.com/vishal-singh24/ESM-Backend/internal/models"
)

// EmployeeDirectory resolves employee identifiers to user records. Backed by
// the users table in production; tests may substitute their own.
type EmployeeDirectory interface {
	ResolveEmployee(ctx context.Context, empID string) (*models.User, error)
}

// Store owns all reads and writes of the per-project path collections. The
// database handle is injected at construction; nothing in this package
// touches package-level state.
type Store struct {
	db  *gorm.DB
	dir EmployeeDirectory

	// Striped locks serializing submissions per (project, employee). Two
	// racing submissions from one employee must not both observe "no open
	// path"; submissions by different employees never contend on a path, so
	// a coarse stripe costs little.
	locks [64]sync.Mutex
}

func NewStore(db *gorm.DB) *Store {
	s := &Store{db: db}
	s.dir = gormDirectory{db: db}
	return s
}

// NewStoreWithDirectory injects an external identity directory.
func NewStoreWithDirectory(db *gorm.DB, dir EmployeeDirectory) *Store {
	return &Store{db: db, dir: dir}
}

func (s *Store) lockFor(projectID, ownerID uint) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte{
		byte(projectID), byte(projectID >> 8), byte(projectID >> 16), byte(projectID >> 24),
		byte(ownerID), byte(ownerID >> 8), byte(ownerID >> 16), byte(ownerID >> 24),
	})
	return &s.locks[h.Sum32()%uint32(len(s.locks))]
}

// findProject loads a project by its public identifier.
func (s *Store) findProject(ctx context.Context, projectID string) (*models.Project, error) {
	var project models.Project
	err := s.db.WithContext(ctx).Where("project_id = ?", projectID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindNotFound, "project %s not found", projectID)
		}
		return nil, internalErr(err)
	}
	return &project, nil
}

// isMember reports whether the user is in the project's assigned-employee set.
func (s *Store) isMember(ctx context.Context, project *models.Project, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Table("project_employees").
		Where("project_id = ? AND user_id = ?", project.ID, userID).
		Count(&count).Error
	if err != nil {
		return false, internalErr(err)
	}
	return count > 0, nil
}

// readRetry runs fn and retries it exactly once on a transient failure.
// Only idempotent reads go through here; writes surface their first error.
func readRetry(fn func() error) error {
	err := fn()
	if err == nil || errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, context.Canceled) {
		return err
	}
	return fn()
}

type gormDirectory struct {
	db *gorm.DB
}

func (d gormDirectory) ResolveEmployee(ctx context.Context, empID string) (*models.User, error) {
	var user models.User
	err := readRetry(func() error {
		return d.db.WithContext(ctx).Where("emp_id = ?", empID).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errf(KindNotFound, "employee %s not found", empID)
		}
		return nil, internalErr(err)
	}
	return &user, nil
}
