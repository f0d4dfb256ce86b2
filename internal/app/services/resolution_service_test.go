package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/creditbridge/internal/app/models"
	"github.com/yigit/creditbridge/internal/pkg/apperrors"
)

const homeSchoolID int64 = 1

var fixedNow = time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

type engineFixture struct {
	store    *memStore
	notifier *recordingNotifier
	engine   *resolutionServiceImpl

	transferSchool models.School
	transferCourse models.Course
	targetCourse   models.Course
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	store := newMemStore()
	store.addSchoolWithID(homeSchoolID, "Home Institution", "Capital City")
	target := store.addCourse(homeSchoolID, "Calculus I", "MATH 1510")
	school := store.addSchool("Lakeside College", "Springfield", false)
	course := store.addCourse(school.ID, "Intro to Calculus", "MTH 101")

	notifier := &recordingNotifier{}
	engine := newResolutionService(store, notifier, ResolutionConfig{
		HomeSchoolID:         homeSchoolID,
		PrecedentMaxAgeYears: 5,
	}, zerolog.Nop(), func() time.Time { return fixedNow })

	return &engineFixture{
		store:          store,
		notifier:       notifier,
		engine:         engine,
		transferSchool: school,
		transferCourse: course,
		targetCourse:   target,
	}
}

func (f *engineFixture) submission() *models.Submission {
	return &models.Submission{
		RequesterName:    "Ada Lovelace",
		RequesterEmail:   "ada@example.com",
		TransferSchoolID: f.transferSchool.ID,
		TransferCourseID: f.transferCourse.ID,
		TargetCourseID:   f.targetCourse.ID,
	}
}

func (f *engineFixture) otherSubmission() *models.Submission {
	return &models.Submission{
		RequesterName:          "Grace Hopper",
		RequesterEmail:         "grace@example.com",
		TransferSchoolOther:    true,
		TransferSchoolName:     "Harbor Community College",
		TransferSchoolLocation: "Bayside",
		TransferCourseOther:    true,
		TransferCourseName:     "Discrete Structures",
		TransferCourseNum:      "CS 210",
		TransferCourseURL:      "https://harbor.example.edu/cs210",
		TargetCourseID:         f.targetCourse.ID,
	}
}

func (f *engineFixture) addPrecedent(approved bool, reasons string, decidedAt time.Time) models.TransferRequest {
	return f.store.addPrecedent(models.TransferRequest{
		TransferSchoolID: f.transferSchool.ID,
		TransferCourseID: f.transferCourse.ID,
		TargetCourseID:   f.targetCourse.ID,
		Approved:         approved,
		Reasons:          reasons,
		DecidedAt:        decidedAt,
	})
}

func (f *engineFixture) counts() (schools, courses, pending, precedents int) {
	s := f.store.state
	return len(s.schools), len(s.courses), len(s.pending), len(s.precedents)
}

func TestClassifyOnlineIsAlwaysRejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *engineFixture, s *models.Submission)
	}{
		{name: "plain", mutate: func(*engineFixture, *models.Submission) {}},
		{name: "with fresh approving precedent", mutate: func(f *engineFixture, _ *models.Submission) {
			f.addPrecedent(true, "", fixedNow.AddDate(-1, 0, 0))
		}},
		{name: "dual enrollment", mutate: func(_ *engineFixture, s *models.Submission) { s.DualEnrollment = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t)
			sub := f.submission()
			sub.Online = true
			tt.mutate(f, sub)
			_, _, pendingBefore, precedentsBefore := f.counts()

			outcome, err := f.engine.Classify(context.Background(), sub)
			require.NoError(t, err)

			assert.Equal(t, models.OutcomeRejected, outcome.Kind)
			assert.False(t, outcome.Approved)
			assert.Equal(t, "Online courses not accepted.", outcome.Reasons)

			_, _, pendingAfter, precedentsAfter := f.counts()
			assert.Equal(t, pendingBefore, pendingAfter)
			assert.Equal(t, precedentsBefore, precedentsAfter)

			require.Len(t, f.notifier.outcomes, 1)
			assert.Equal(t, models.Decision{Approved: false, Reasons: "Online courses not accepted."}, f.notifier.outcomes[0].decision)
			assert.Equal(t, "ada@example.com", f.notifier.outcomes[0].contact.Email)
			assert.Empty(t, f.notifier.notices)
		})
	}
}

func TestClassifyOnlineOtherSubmissionIsRejected(t *testing.T) {
	f := newEngineFixture(t)
	sub := f.otherSubmission()
	sub.Online = true

	outcome, err := f.engine.Classify(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeRejected, outcome.Kind)
	assert.Zero(t, *f.store.txs)
}

func TestClassifyAutoResolvesFromFreshPrecedent(t *testing.T) {
	tests := []struct {
		name     string
		approved bool
		reasons  string
	}{
		{name: "approved", approved: true, reasons: ""},
		{name: "rejected", approved: false, reasons: "Content does not match."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t)
			precedent := f.addPrecedent(tt.approved, tt.reasons, fixedNow.AddDate(-2, 0, 0))
			schools, courses, pending, precedents := f.counts()

			outcome, err := f.engine.Classify(context.Background(), f.submission())
			require.NoError(t, err)

			assert.Equal(t, models.OutcomeAutoResolved, outcome.Kind)
			assert.Equal(t, tt.approved, outcome.Approved)
			assert.Equal(t, tt.reasons, outcome.Reasons)
			assert.Equal(t, precedent.ID, outcome.PrecedentID)

			s2, c2, p2, t2 := f.counts()
			assert.Equal(t, []int{schools, courses, pending, precedents}, []int{s2, c2, p2, t2})
			assert.Zero(t, *f.store.txs)

			require.Len(t, f.notifier.outcomes, 1)
			assert.Equal(t, models.Decision{Approved: tt.approved, Reasons: tt.reasons}, f.notifier.outcomes[0].decision)
		})
	}
}

func TestClassifyUsesMostRecentPrecedent(t *testing.T) {
	f := newEngineFixture(t)
	f.addPrecedent(false, "Old policy.", fixedNow.AddDate(-3, 0, 0))
	latest := f.addPrecedent(true, "", fixedNow.AddDate(-1, 0, 0))

	outcome, err := f.engine.Classify(context.Background(), f.submission())
	require.NoError(t, err)
	assert.Equal(t, latest.ID, outcome.PrecedentID)
	assert.True(t, outcome.Approved)
}

func TestClassifyPrecedentAgeBoundary(t *testing.T) {
	tests := []struct {
		name      string
		decidedAt time.Time
		want      models.OutcomeKind
	}{
		{name: "exactly five years", decidedAt: fixedNow.AddDate(-5, 0, 0), want: models.OutcomeAutoResolved},
		{name: "just over five years", decidedAt: fixedNow.AddDate(-5, 0, 0).Add(-time.Second), want: models.OutcomeQueued},
		{name: "ten years", decidedAt: fixedNow.AddDate(-10, 0, 0), want: models.OutcomeQueued},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t)
			f.addPrecedent(true, "", tt.decidedAt)

			outcome, err := f.engine.Classify(context.Background(), f.submission())
			require.NoError(t, err)
			assert.Equal(t, tt.want, outcome.Kind)
		})
	}
}

func TestClassifyDualEnrollmentForcesQueue(t *testing.T) {
	f := newEngineFixture(t)
	f.addPrecedent(true, "", fixedNow.AddDate(-1, 0, 0))
	sub := f.submission()
	sub.DualEnrollment = true

	outcome, err := f.engine.Classify(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeQueued, outcome.Kind)
	assert.Len(t, f.store.state.pending, 1)
	assert.Empty(t, f.notifier.outcomes)
	require.Len(t, f.notifier.notices, 1)
	assert.True(t, f.notifier.notices[0].DualEnrollment)
}

func TestClassifyOtherCourseForcesQueue(t *testing.T) {
	f := newEngineFixture(t)
	f.addPrecedent(true, "", fixedNow.AddDate(-1, 0, 0))
	sub := f.submission()
	sub.TransferCourseOther = true
	sub.TransferCourseName = "Intro to Calculus"
	sub.TransferCourseNum = "MTH 101"

	outcome, err := f.engine.Classify(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQueued, outcome.Kind)
}

func TestClassifyQueuesWithoutPrecedent(t *testing.T) {
	f := newEngineFixture(t)
	sub := f.submission()
	sub.TransferCourseURL = "https://lakeside.example.edu/mth101"

	outcome, err := f.engine.Classify(context.Background(), sub)
	require.NoError(t, err)

	assert.Equal(t, models.OutcomeQueued, outcome.Kind)
	require.Len(t, f.store.state.pending, 1)

	stored := f.store.state.pending[outcome.PendingRequestID]
	assert.Equal(t, "Ada Lovelace", stored.RequesterName)
	assert.Equal(t, "ada@example.com", stored.RequesterEmail)
	require.NotNil(t, stored.TransferSchoolID)
	assert.Equal(t, f.transferSchool.ID, *stored.TransferSchoolID)
	require.NotNil(t, stored.TransferCourseID)
	assert.Equal(t, f.transferCourse.ID, *stored.TransferCourseID)
	assert.Equal(t, f.targetCourse.ID, stored.TargetCourseID)
	assert.False(t, stored.TransferSchoolOther)
	assert.False(t, stored.TransferCourseOther)
	assert.Nil(t, stored.TransferSchoolName)
	require.NotNil(t, stored.TransferCourseURL)
	assert.Equal(t, "https://lakeside.example.edu/mth101", *stored.TransferCourseURL)

	assert.Empty(t, f.notifier.outcomes)
	require.Len(t, f.notifier.notices, 1)
	assert.Equal(t, outcome.PendingRequestID, f.notifier.notices[0].ID)
}

func TestClassifyQueuesOtherSchoolWithInlineFields(t *testing.T) {
	f := newEngineFixture(t)

	outcome, err := f.engine.Classify(context.Background(), f.otherSubmission())
	require.NoError(t, err)
	require.Equal(t, models.OutcomeQueued, outcome.Kind)

	stored := f.store.state.pending[outcome.PendingRequestID]
	assert.Nil(t, stored.TransferSchoolID)
	assert.Nil(t, stored.TransferCourseID)
	assert.Equal(t, models.SchoolIdentity{Name: "Harbor Community College", Location: "Bayside"}, stored.SchoolIdentity())
	assert.Equal(t, models.CourseIdentity{Name: "Discrete Structures", CourseNum: "CS 210"}, stored.CourseIdentity())
}

func TestClassifyDuplicateSubmissionsAreBothQueued(t *testing.T) {
	f := newEngineFixture(t)

	first, err := f.engine.Classify(context.Background(), f.submission())
	require.NoError(t, err)
	second, err := f.engine.Classify(context.Background(), f.submission())
	require.NoError(t, err)

	assert.NotEqual(t, first.PendingRequestID, second.PendingRequestID)
	assert.Len(t, f.store.state.pending, 2)
}

func TestClassifyValidationHasNoSideEffects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *engineFixture, s *models.Submission)
		field  string
	}{
		{name: "missing name", mutate: func(_ *engineFixture, s *models.Submission) { s.RequesterName = " " }, field: "requesterName"},
		{name: "bad email", mutate: func(_ *engineFixture, s *models.Submission) { s.RequesterEmail = "not-an-email" }, field: "requesterEmail"},
		{name: "missing school", mutate: func(_ *engineFixture, s *models.Submission) { s.TransferSchoolID = 0 }, field: "transferSchoolId"},
		{name: "home school as transfer school", mutate: func(_ *engineFixture, s *models.Submission) { s.TransferSchoolID = homeSchoolID }, field: "transferSchoolId"},
		{name: "missing course", mutate: func(_ *engineFixture, s *models.Submission) { s.TransferCourseID = 0 }, field: "transferCourseId"},
		{name: "missing target", mutate: func(_ *engineFixture, s *models.Submission) { s.TargetCourseID = 0 }, field: "targetCourseId"},
		{name: "other school without name", mutate: func(_ *engineFixture, s *models.Submission) {
			s.TransferSchoolOther = true
			s.TransferSchoolLocation = "Bayside"
			s.TransferCourseOther = true
			s.TransferCourseName = "Discrete Structures"
			s.TransferCourseNum = "CS 210"
		}, field: "transferSchoolName"},
		{name: "other school with catalog course", mutate: func(_ *engineFixture, s *models.Submission) {
			s.TransferSchoolOther = true
			s.TransferSchoolName = "Harbor Community College"
			s.TransferSchoolLocation = "Bayside"
		}, field: "transferCourseOther"},
		{name: "online does not bypass validation", mutate: func(_ *engineFixture, s *models.Submission) {
			s.Online = true
			s.RequesterEmail = ""
		}, field: "requesterEmail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t)
			f.addPrecedent(true, "", fixedNow.AddDate(-1, 0, 0))
			sub := f.submission()
			tt.mutate(f, sub)
			schools, courses, pending, precedents := f.counts()

			outcome, err := f.engine.Classify(context.Background(), sub)
			require.Error(t, err)
			assert.Nil(t, outcome)
			assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
			assert.Contains(t, apperrors.DetailsOf(err), tt.field)

			s2, c2, p2, t2 := f.counts()
			assert.Equal(t, []int{schools, courses, pending, precedents}, []int{s2, c2, p2, t2})
			assert.Empty(t, f.notifier.outcomes)
			assert.Empty(t, f.notifier.notices)
		})
	}
}

func TestClassifyDoesNotMutateCallerSubmission(t *testing.T) {
	f := newEngineFixture(t)
	sub := f.submission()
	sub.RequesterName = "  Ada Lovelace  "

	_, err := f.engine.Classify(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, "  Ada Lovelace  ", sub.RequesterName)
}

func TestClassifyQueuedReferenceChecks(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f *engineFixture, s *models.Submission)
		want   error
	}{
		{name: "unknown school", mutate: func(_ *engineFixture, s *models.Submission) { s.TransferSchoolID = 999 }, want: apperrors.ErrSchoolNotFound},
		{name: "course of another school", mutate: func(f *engineFixture, s *models.Submission) {
			other := f.store.addSchool("Other College", "Elsewhere", false)
			s.TransferCourseID = f.store.addCourse(other.ID, "Physics", "PHY 100").ID
		}, want: apperrors.ErrCourseNotFound},
		{name: "target not at home institution", mutate: func(f *engineFixture, s *models.Submission) {
			s.TargetCourseID = f.transferCourse.ID
		}, want: apperrors.ErrCourseNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t)
			sub := f.submission()
			tt.mutate(f, sub)

			_, err := f.engine.Classify(context.Background(), sub)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
			assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
			assert.Empty(t, f.store.state.pending)
			assert.Empty(t, f.notifier.notices)
		})
	}
}

func TestClassifyPersistenceFailure(t *testing.T) {
	f := newEngineFixture(t)
	f.store.faults["pending.Create"] = errors.New("connection reset")

	_, err := f.engine.Classify(context.Background(), f.submission())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPersistenceFailure))
	assert.Empty(t, f.store.state.pending)
	assert.Empty(t, f.notifier.notices)
}

func TestClassifyPrecedentLookupFailure(t *testing.T) {
	f := newEngineFixture(t)
	f.store.faults["precedents.FindLatestMatch"] = errors.New("store unavailable")

	_, err := f.engine.Classify(context.Background(), f.submission())
	assert.True(t, errors.Is(err, apperrors.ErrPersistenceFailure))
	assert.Empty(t, f.notifier.outcomes)
}

func TestClassifyNotificationFailureKeepsQueuedRow(t *testing.T) {
	f := newEngineFixture(t)
	f.notifier.err = apperrors.ErrNotificationFailure

	outcome, err := f.engine.Classify(context.Background(), f.submission())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQueued, outcome.Kind)
	assert.Len(t, f.store.state.pending, 1)
}

func queue(t *testing.T, f *engineFixture, sub *models.Submission) int64 {
	t.Helper()
	outcome, err := f.engine.Classify(context.Background(), sub)
	require.NoError(t, err)
	require.Equal(t, models.OutcomeQueued, outcome.Kind)
	f.notifier.notices = nil
	return outcome.PendingRequestID
}

func TestApproveCatalogRequest(t *testing.T) {
	f := newEngineFixture(t)
	id := queue(t, f, f.submission())
	schools, courses, _, _ := f.counts()

	precedent, err := f.engine.Approve(context.Background(), id)
	require.NoError(t, err)

	assert.NotContains(t, f.store.state.pending, id)
	require.Len(t, f.store.state.precedents, 1)
	stored := f.store.state.precedents[precedent.ID]
	assert.Equal(t, f.transferSchool.ID, stored.TransferSchoolID)
	assert.Equal(t, f.transferCourse.ID, stored.TransferCourseID)
	assert.Equal(t, f.targetCourse.ID, stored.TargetCourseID)
	assert.True(t, stored.Approved)
	assert.Empty(t, stored.Reasons)
	assert.Equal(t, fixedNow, stored.DecidedAt)

	s2, c2, _, _ := f.counts()
	assert.Equal(t, schools, s2)
	assert.Equal(t, courses, c2)

	require.Len(t, f.notifier.outcomes, 1)
	got := f.notifier.outcomes[0]
	assert.Equal(t, models.Decision{Approved: true, Reasons: ""}, got.decision)
	assert.Equal(t, id, got.snapshot.ID)
	assert.Equal(t, models.Contact{Name: "Ada Lovelace", Email: "ada@example.com"}, got.contact)
}

func TestApproveOtherRequestCreatesCatalogRows(t *testing.T) {
	f := newEngineFixture(t)
	id := queue(t, f, f.otherSubmission())
	schools, courses, _, _ := f.counts()

	precedent, err := f.engine.Approve(context.Background(), id)
	require.NoError(t, err)

	s2, c2, _, _ := f.counts()
	assert.Equal(t, schools+1, s2)
	assert.Equal(t, courses+1, c2)

	school := f.store.state.schools[precedent.TransferSchoolID]
	assert.Equal(t, models.SchoolIdentity{Name: "Harbor Community College", Location: "Bayside"}, school.Identity())

	course := f.store.state.courses[precedent.TransferCourseID]
	assert.Equal(t, school.ID, course.SchoolID)
	assert.Equal(t, models.CourseIdentity{Name: "Discrete Structures", CourseNum: "CS 210"}, course.Identity())
}

func TestApproveOtherRequestReusesExistingCatalogRows(t *testing.T) {
	f := newEngineFixture(t)
	sub := f.otherSubmission()
	sub.TransferSchoolName = f.transferSchool.Name
	sub.TransferSchoolLocation = f.transferSchool.Location
	sub.TransferCourseName = f.transferCourse.Name
	sub.TransferCourseNum = f.transferCourse.CourseNum
	id := queue(t, f, sub)
	schools, courses, _, _ := f.counts()

	precedent, err := f.engine.Approve(context.Background(), id)
	require.NoError(t, err)

	s2, c2, _, _ := f.counts()
	assert.Equal(t, schools, s2)
	assert.Equal(t, courses, c2)
	assert.Equal(t, f.transferSchool.ID, precedent.TransferSchoolID)
	assert.Equal(t, f.transferCourse.ID, precedent.TransferCourseID)
}

func TestApproveTwiceFailsWithNotFound(t *testing.T) {
	f := newEngineFixture(t)
	id := queue(t, f, f.submission())

	_, err := f.engine.Approve(context.Background(), id)
	require.NoError(t, err)

	_, err = f.engine.Approve(context.Background(), id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPendingRequestNotFound))
	assert.Len(t, f.store.state.precedents, 1)
	assert.Len(t, f.notifier.outcomes, 1)
}

func TestApproveRollsBackOnFailure(t *testing.T) {
	tests := []struct {
		name  string
		fault string
	}{
		{name: "precedent insert fails", fault: "precedents.Create"},
		{name: "course insert fails", fault: "courses.ResolveOrCreate"},
		{name: "delete fails", fault: "pending.Delete"},
		{name: "commit fails", fault: "commit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newEngineFixture(t)
			id := queue(t, f, f.otherSubmission())
			schools, courses, pending, precedents := f.counts()
			f.store.faults[tt.fault] = errors.New("disk full")

			_, err := f.engine.Approve(context.Background(), id)
			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrPersistenceFailure))

			s2, c2, p2, t2 := f.counts()
			assert.Equal(t, []int{schools, courses, pending, precedents}, []int{s2, c2, p2, t2})
			assert.Contains(t, f.store.state.pending, id)
			assert.Empty(t, f.notifier.outcomes)
		})
	}
}

func TestApproveNotificationFailureKeepsCommit(t *testing.T) {
	f := newEngineFixture(t)
	id := queue(t, f, f.submission())
	f.notifier.err = errors.New("smtp down")

	_, err := f.engine.Approve(context.Background(), id)
	require.NoError(t, err)
	assert.NotContains(t, f.store.state.pending, id)
	assert.Len(t, f.store.state.precedents, 1)
}

func TestApproveMissingCatalogSchool(t *testing.T) {
	f := newEngineFixture(t)
	id := queue(t, f, f.submission())
	delete(f.store.state.schools, f.transferSchool.ID)

	_, err := f.engine.Approve(context.Background(), id)
	assert.True(t, errors.Is(err, apperrors.ErrSchoolNotFound))
	assert.Contains(t, f.store.state.pending, id)
}

func TestDisapprove(t *testing.T) {
	f := newEngineFixture(t)
	id := queue(t, f, f.otherSubmission())
	schools, courses, _, precedents := f.counts()

	require.NoError(t, f.engine.Disapprove(context.Background(), id, "too old"))

	assert.NotContains(t, f.store.state.pending, id)
	s2, c2, _, t2 := f.counts()
	assert.Equal(t, []int{schools, courses, precedents}, []int{s2, c2, t2})

	require.Len(t, f.notifier.outcomes, 1)
	got := f.notifier.outcomes[0]
	assert.Equal(t, models.Decision{Approved: false, Reasons: "too old"}, got.decision)
	assert.Equal(t, "Harbor Community College", got.snapshot.Fields()["transfer_school_name"])
}

func TestDisapproveAcceptsEmptyReasons(t *testing.T) {
	f := newEngineFixture(t)
	id := queue(t, f, f.submission())

	require.NoError(t, f.engine.Disapprove(context.Background(), id, "   "))
	assert.NotContains(t, f.store.state.pending, id)
	require.Len(t, f.notifier.outcomes, 1)
	assert.Equal(t, models.Decision{Approved: false, Reasons: ""}, f.notifier.outcomes[0].decision)
}

func TestDisapproveUnknownRequest(t *testing.T) {
	f := newEngineFixture(t)

	err := f.engine.Disapprove(context.Background(), 404, "too old")
	assert.True(t, errors.Is(err, apperrors.ErrResourceNotFound))
	assert.Empty(t, f.notifier.outcomes)
}

func TestApproveThenResubmitAutoResolves(t *testing.T) {
	f := newEngineFixture(t)
	id := queue(t, f, f.submission())

	_, err := f.engine.Approve(context.Background(), id)
	require.NoError(t, err)
	f.notifier.outcomes = nil

	outcome, err := f.engine.Classify(context.Background(), f.submission())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAutoResolved, outcome.Kind)
	assert.True(t, outcome.Approved)
	assert.Empty(t, f.store.state.pending)
	require.Len(t, f.notifier.outcomes, 1)
	assert.True(t, f.notifier.outcomes[0].decision.Approved)
}

func TestApprovedOtherRequestBecomesCatalogPrecedent(t *testing.T) {
	f := newEngineFixture(t)
	id := queue(t, f, f.otherSubmission())

	precedent, err := f.engine.Approve(context.Background(), id)
	require.NoError(t, err)

	sub := f.submission()
	sub.TransferSchoolID = precedent.TransferSchoolID
	sub.TransferCourseID = precedent.TransferCourseID

	outcome, err := f.engine.Classify(context.Background(), sub)
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeAutoResolved, outcome.Kind)
}

func TestDisapproveLeavesNoPrecedent(t *testing.T) {
	f := newEngineFixture(t)
	id := queue(t, f, f.submission())
	require.NoError(t, f.engine.Disapprove(context.Background(), id, "No lab component."))

	outcome, err := f.engine.Classify(context.Background(), f.submission())
	require.NoError(t, err)
	assert.Equal(t, models.OutcomeQueued, outcome.Kind)
}

func TestListPendingAndPrecedents(t *testing.T) {
	f := newEngineFixture(t)
	first := queue(t, f, f.submission())
	second := queue(t, f, f.otherSubmission())

	pending, err := f.engine.ListPending(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first, pending[0].ID)
	assert.Equal(t, second, pending[1].ID)

	got, err := f.engine.GetPending(context.Background(), second)
	require.NoError(t, err)
	assert.True(t, got.TransferSchoolOther)

	f.addPrecedent(true, "", fixedNow.AddDate(-3, 0, 0))
	f.addPrecedent(false, "No.", fixedNow.AddDate(-1, 0, 0))

	page, total, err := f.engine.ListPrecedents(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.False(t, page[0].Approved)
}

func TestListPendingStoreFailure(t *testing.T) {
	f := newEngineFixture(t)
	f.store.faults["pending.List"] = errors.New("timeout")

	_, err := f.engine.ListPending(context.Background())
	assert.True(t, errors.Is(err, apperrors.ErrPersistenceFailure))
}
