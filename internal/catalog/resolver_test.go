package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bbifather/student-orders-backend/internal/pkg/apperror"
)

func defaultResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(DefaultCourses(), DefaultSubjects())
	require.NoError(t, err)
	return r
}

func TestResolver_PriceSelectedWorks(t *testing.T) {
	r := defaultResolver(t)
	s, err := r.SubjectByID("stat-methods")
	require.NoError(t, err)

	total := r.PriceSelectedWorks(s, []string{"stat-1", "stat-2", "stat-3"})
	assert.Equal(t, float64(3750), total)
}

func TestResolver_PriceSelectedWorks_DuplicatesCountOnce(t *testing.T) {
	r := defaultResolver(t)
	s, err := r.SubjectByID("stat-methods")
	require.NoError(t, err)

	withDuplicates := r.PriceSelectedWorks(s, []string{"stat-1", "stat-1", "stat-2"})
	unique := r.PriceSelectedWorks(s, []string{"stat-2", "stat-1"})
	assert.Equal(t, unique, withDuplicates)
	assert.Equal(t, float64(2500), withDuplicates)
}

func TestResolver_PriceSelectedWorks_UnknownIDsIgnored(t *testing.T) {
	r := defaultResolver(t)
	s, err := r.SubjectByID("stat-methods")
	require.NoError(t, err)

	total := r.PriceSelectedWorks(s, []string{"stat-1", "no-such-work"})
	assert.Equal(t, float64(1250), total)
}

func TestResolver_PriceFullCourse(t *testing.T) {
	r := defaultResolver(t)
	s, err := r.SubjectByID("stat-methods")
	require.NoError(t, err)

	// 12 работ по 1250 со скидкой 10%.
	assert.Equal(t, float64(13500), r.PriceFullCourse(s))
}

func TestResolver_FullCourseNotAboveSum(t *testing.T) {
	r := defaultResolver(t)
	for _, s := range r.Subjects() {
		if s.IsCustomForm {
			continue
		}
		sum := r.PriceSelectedWorks(&s, s.AllWorkIDs())
		assert.LessOrEqual(t, r.PriceFullCourse(&s), sum, "предмет %s", s.ID)
	}
}

func TestResolver_ResolveTotal_CustomOrder(t *testing.T) {
	r := defaultResolver(t)

	total, err := r.ResolveTotal(Selection{
		CustomSubject: "Эконометрика",
		CustomWork:    "Курсовая работа",
	})
	require.NoError(t, err)
	assert.Equal(t, float64(0), total)
}

func TestResolver_ResolveTotal_CustomFormSubject(t *testing.T) {
	r := defaultResolver(t)

	total, err := r.ResolveTotal(Selection{SubjectID: "other"})
	require.NoError(t, err)
	assert.Equal(t, float64(0), total)
}

func TestResolver_ResolveTotal_UnknownSubject(t *testing.T) {
	r := defaultResolver(t)

	_, err := r.ResolveTotal(Selection{SubjectID: "no-such-subject"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestResolver_ResolveTotal_Deterministic(t *testing.T) {
	r := defaultResolver(t)
	sel := Selection{SubjectID: "practice", SelectedWorkIDs: []string{"practice-2", "practice-3"}}

	first, err := r.ResolveTotal(sel)
	require.NoError(t, err)
	second, err := r.ResolveTotal(sel)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, float64(4500), first)
}

func TestResolver_Rounding(t *testing.T) {
	subjects := []Subject{{
		ID:                 "test",
		Name:               "Тест",
		Course:             "bi",
		FullCourseDiscount: 5,
		Works: []Work{
			{ID: "w1", Title: "1", Price: rub(505)},
			{ID: "w2", Title: "2", Price: rub(505)},
		},
	}}
	r, err := NewResolver(DefaultCourses(), subjects)
	require.NoError(t, err)

	s, err := r.SubjectByID("test")
	require.NoError(t, err)

	// 1010 * 0.95 = 959.5, половина округляется вверх.
	assert.Equal(t, float64(960), r.PriceFullCourse(s))
}

func TestResolver_Quote_FullCourse(t *testing.T) {
	r := defaultResolver(t)

	q, err := r.Quote(Selection{SubjectID: "stat-methods", IsFullCourse: true})
	require.NoError(t, err)
	assert.Equal(t, "Статистические методы — весь курс", q.Title)
	assert.Len(t, q.LineItems, 12)
	assert.Equal(t, float64(13500), q.Total)
	assert.False(t, q.PriceOnRequest)
}

func TestResolver_Quote_CustomOrder(t *testing.T) {
	r := defaultResolver(t)

	q, err := r.Quote(Selection{CustomSubject: "Эконометрика", CustomWork: "Курсовая"})
	require.NoError(t, err)
	assert.Equal(t, "Курсовая", q.Title)
	assert.True(t, q.PriceOnRequest)
	assert.Equal(t, float64(0), q.Total)
	assert.Empty(t, q.LineItems)
}

func TestResolver_Quote_UnknownWork(t *testing.T) {
	r := defaultResolver(t)

	_, err := r.Quote(Selection{SubjectID: "stat-methods", SelectedWorkIDs: []string{"no-such"}})
	assert.True(t, apperror.IsValidation(err))
}

func TestNewResolver_DuplicateSubject(t *testing.T) {
	subjects := []Subject{
		{ID: "dup", Name: "A", Course: "bi"},
		{ID: "dup", Name: "B", Course: "bi"},
	}
	_, err := NewResolver(DefaultCourses(), subjects)
	assert.Error(t, err)
}

func TestNewResolver_DuplicateWork(t *testing.T) {
	subjects := []Subject{{
		ID:     "s",
		Name:   "S",
		Course: "bi",
		Works: []Work{
			{ID: "w", Title: "1"},
			{ID: "w", Title: "2"},
		},
	}}
	_, err := NewResolver(DefaultCourses(), subjects)
	assert.Error(t, err)
}

func TestNewResolver_InvalidDiscount(t *testing.T) {
	subjects := []Subject{{ID: "s", Name: "S", Course: "bi", FullCourseDiscount: 100}}
	_, err := NewResolver(DefaultCourses(), subjects)
	assert.Error(t, err)
}

func TestDefaultCatalog_Valid(t *testing.T) {
	_, err := NewResolver(DefaultCourses(), DefaultSubjects())
	assert.NoError(t, err)
}
