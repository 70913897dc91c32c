package enrollment

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/lms-lambda/internal/course"
	"github.com/saulo-duarte/lms-lambda/internal/user"
	"gorm.io/gorm"
)

type fakeEnrollmentRepo struct {
	enrollments  []*Enrollment
	reconcileErr error

	reconcileCalls int
	lastDesired    []uuid.UUID
	lastAdded      int
	lastRemoved    int
}

func (f *fakeEnrollmentRepo) ListAll() ([]*Enrollment, error) { return f.enrollments, nil }

func (f *fakeEnrollmentRepo) ListByCourse(courseID uuid.UUID) ([]*Enrollment, error) {
	var out []*Enrollment
	for _, e := range f.enrollments {
		if e.CourseID == courseID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) ListByStudent(studentID uuid.UUID) ([]*Enrollment, error) {
	var out []*Enrollment
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEnrollmentRepo) ListByInstructor(uuid.UUID) ([]*Enrollment, error) {
	return f.enrollments, nil
}

func (f *fakeEnrollmentRepo) IsEnrolled(studentID, courseID uuid.UUID) (bool, error) {
	for _, e := range f.enrollments {
		if e.StudentID == studentID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEnrollmentRepo) CountByStudent(studentID uuid.UUID) (int64, error) {
	var count int64
	for _, e := range f.enrollments {
		if e.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

// Reconcile mirrors the store contract: it receives the full desired
// set and computes the diff against its own state, as one unit.
func (f *fakeEnrollmentRepo) Reconcile(courseID uuid.UUID, desired []uuid.UUID) (int, int, error) {
	f.reconcileCalls++
	f.lastDesired = desired
	if f.reconcileErr != nil {
		return 0, 0, f.reconcileErr
	}

	current := make([]uuid.UUID, 0)
	for _, e := range f.enrollments {
		if e.CourseID == courseID {
			current = append(current, e.StudentID)
		}
	}
	toAdd, toRemove := diffRoster(current, desired)

	kept := f.enrollments[:0]
	for _, e := range f.enrollments {
		if e.CourseID == courseID && containsID(toRemove, e.StudentID) {
			continue
		}
		kept = append(kept, e)
	}
	f.enrollments = kept
	for _, studentID := range toAdd {
		f.enrollments = append(f.enrollments, &Enrollment{StudentID: studentID, CourseID: courseID})
	}

	f.lastAdded = len(toAdd)
	f.lastRemoved = len(toRemove)
	return len(toAdd), len(toRemove), nil
}

func (f *fakeEnrollmentRepo) rosterOf(courseID uuid.UUID) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool)
	for _, e := range f.enrollments {
		if e.CourseID == courseID {
			out[e.StudentID] = true
		}
	}
	return out
}

type fakeCourseRepo struct {
	courses map[uuid.UUID]*course.Course
}

func (f *fakeCourseRepo) Create(c *course.Course) error { return nil }
func (f *fakeCourseRepo) FindByID(id uuid.UUID) (*course.Course, error) {
	return f.courses[id], nil
}
func (f *fakeCourseRepo) ListAll() ([]*course.Course, error)                  { return nil, nil }
func (f *fakeCourseRepo) ListByInstructor(uuid.UUID) ([]*course.Course, error) { return nil, nil }
func (f *fakeCourseRepo) ListByEnrolledStudent(uuid.UUID) ([]*course.Course, error) {
	return nil, nil
}
func (f *fakeCourseRepo) LatestByInstructor(uuid.UUID, int) ([]*course.Course, error) {
	return nil, nil
}
func (f *fakeCourseRepo) LatestByEnrolledStudent(uuid.UUID, int) ([]*course.Course, error) {
	return nil, nil
}
func (f *fakeCourseRepo) Update(*course.Course) error      { return nil }
func (f *fakeCourseRepo) DeleteCascade(uuid.UUID) error    { return nil }
func (f *fakeCourseRepo) Count() (int64, error)            { return 0, nil }

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func TestDiffRoster(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()
	s3 := uuid.New()

	t.Run("AddAndRemove", func(t *testing.T) {
		toAdd, toRemove := diffRoster([]uuid.UUID{s1, s2}, []uuid.UUID{s2, s3})

		if len(toAdd) != 1 || toAdd[0] != s3 {
			t.Errorf("esperava adicionar apenas s3, obteve %v", toAdd)
		}
		if len(toRemove) != 1 || toRemove[0] != s1 {
			t.Errorf("esperava remover apenas s1, obteve %v", toRemove)
		}
		if containsID(toAdd, s2) || containsID(toRemove, s2) {
			t.Error("s2 permanece na turma e nao deveria aparecer no diff")
		}
	})

	t.Run("EqualSets", func(t *testing.T) {
		toAdd, toRemove := diffRoster([]uuid.UUID{s1, s2}, []uuid.UUID{s2, s1})
		if len(toAdd) != 0 || len(toRemove) != 0 {
			t.Errorf("conjuntos iguais deveriam gerar diff vazio, obteve add=%v remove=%v", toAdd, toRemove)
		}
	})

	t.Run("EmptyDesired", func(t *testing.T) {
		toAdd, toRemove := diffRoster([]uuid.UUID{s1, s2}, nil)
		if len(toAdd) != 0 {
			t.Errorf("lista desejada vazia nao deveria adicionar ninguem, obteve %v", toAdd)
		}
		if len(toRemove) != 2 {
			t.Errorf("lista desejada vazia deveria remover todos, obteve %v", toRemove)
		}
	})
}

func TestDedupe(t *testing.T) {
	s1 := uuid.New()
	s2 := uuid.New()

	out := dedupe([]uuid.UUID{s1, s2, s1, s1, s2})
	if len(out) != 2 {
		t.Fatalf("esperava 2 ids apos dedupe, obteve %d", len(out))
	}
	if out[0] != s1 || out[1] != s2 {
		t.Errorf("dedupe deveria preservar a ordem da primeira ocorrencia, obteve %v", out)
	}
}

func TestReconcile(t *testing.T) {
	admin := user.Principal{ID: uuid.New(), Role: user.RoleAdmin}
	instructor := user.Principal{ID: uuid.New(), Role: user.RoleInstructor}
	courseID := uuid.New()
	s1 := uuid.New()
	s2 := uuid.New()
	s3 := uuid.New()

	newService := func(repo *fakeEnrollmentRepo) EnrollmentService {
		courses := &fakeCourseRepo{courses: map[uuid.UUID]*course.Course{
			courseID: {ID: courseID, Title: "Algoritmos"},
		}}
		return NewService(repo, courses)
	}

	t.Run("NonAdminForbidden", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{}
		svc := newService(repo)

		err := svc.Reconcile(context.Background(), instructor, courseID, []uuid.UUID{s1})
		if err != ErrForbidden {
			t.Errorf("esperava ErrForbidden, obteve %v", err)
		}
		if repo.reconcileCalls != 0 {
			t.Error("nenhuma escrita deveria ocorrer para chamador sem permissao")
		}
	})

	t.Run("CourseNotFound", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{}
		svc := newService(repo)

		err := svc.Reconcile(context.Background(), admin, uuid.New(), []uuid.UUID{s1})
		if err != ErrCourseNotFound {
			t.Errorf("esperava ErrCourseNotFound, obteve %v", err)
		}
	})

	t.Run("AppliesDiff", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{enrollments: []*Enrollment{
			{StudentID: s1, CourseID: courseID},
			{StudentID: s2, CourseID: courseID},
		}}
		svc := newService(repo)

		if err := svc.Reconcile(context.Background(), admin, courseID, []uuid.UUID{s2, s3}); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if repo.reconcileCalls != 1 {
			t.Fatalf("esperava exatamente 1 chamada de Reconcile, obteve %d", repo.reconcileCalls)
		}
		if repo.lastAdded != 1 || repo.lastRemoved != 1 {
			t.Errorf("esperava 1 matricula e 1 remocao, obteve add=%d remove=%d", repo.lastAdded, repo.lastRemoved)
		}

		roster := repo.rosterOf(courseID)
		if len(roster) != 2 || !roster[s2] || !roster[s3] {
			t.Errorf("roster final deveria ser {s2, s3}, obteve %v", roster)
		}
		if roster[s1] {
			t.Error("s1 deveria ter sido removido do roster")
		}
	})

	// O repositorio precisa receber o conjunto desejado completo, nunca um
	// diff pre-computado fora da transacao. Um diff calculado sobre uma
	// leitura anterior perderia remocoes feitas por outra chamada no meio
	// do caminho.
	t.Run("FullDesiredSetReachesStore", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{}
		svc := newService(repo)

		if err := svc.Reconcile(context.Background(), admin, courseID, []uuid.UUID{s1, s2}); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(repo.lastDesired) != 2 || !containsID(repo.lastDesired, s1) || !containsID(repo.lastDesired, s2) {
			t.Errorf("repositorio deveria receber o conjunto desejado completo, obteve %v", repo.lastDesired)
		}
	})

	t.Run("IdempotentNoWrites", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{enrollments: []*Enrollment{
			{StudentID: s1, CourseID: courseID},
			{StudentID: s2, CourseID: courseID},
		}}
		svc := newService(repo)

		if err := svc.Reconcile(context.Background(), admin, courseID, []uuid.UUID{s1, s2}); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if repo.lastAdded != 0 || repo.lastRemoved != 0 {
			t.Errorf("roster ja convergido nao deveria gerar escrita, obteve add=%d remove=%d", repo.lastAdded, repo.lastRemoved)
		}

		roster := repo.rosterOf(courseID)
		if len(roster) != 2 || !roster[s1] || !roster[s2] {
			t.Errorf("roster nao deveria mudar, obteve %v", roster)
		}
	})

	t.Run("DuplicatesInDesired", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{}
		svc := newService(repo)

		if err := svc.Reconcile(context.Background(), admin, courseID, []uuid.UUID{s1, s1, s1}); err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		if len(repo.lastDesired) != 1 {
			t.Errorf("ids duplicados deveriam chegar ao repositorio uma unica vez, obteve %v", repo.lastDesired)
		}
		if repo.lastAdded != 1 {
			t.Errorf("ids duplicados deveriam gerar uma unica matricula, obteve %d", repo.lastAdded)
		}
	})

	t.Run("ConcurrentConflict", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{reconcileErr: gorm.ErrDuplicatedKey}
		svc := newService(repo)

		err := svc.Reconcile(context.Background(), admin, courseID, []uuid.UUID{s1})
		if err != ErrReconcileConflict {
			t.Errorf("esperava ErrReconcileConflict, obteve %v", err)
		}
	})

	t.Run("CourseDeletedBeforeLock", func(t *testing.T) {
		repo := &fakeEnrollmentRepo{reconcileErr: gorm.ErrRecordNotFound}
		svc := newService(repo)

		err := svc.Reconcile(context.Background(), admin, courseID, []uuid.UUID{s1})
		if err != ErrCourseNotFound {
			t.Errorf("esperava ErrCourseNotFound quando o curso some antes do lock, obteve %v", err)
		}
	})
}
