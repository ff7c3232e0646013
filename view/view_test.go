package view

import (
	"testing"

	"github.com/ariebrainware/dentara-clinic/model"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appt(id, date, tm string, st model.AppointmentStatus) model.Appointment {
	a := model.Appointment{Date: date, Time: tm, Status: st}
	a.ID = id
	return a
}

func ids(appts []model.Appointment) []string {
	out := make([]string, 0, len(appts))
	for _, a := range appts {
		out = append(out, a.ID)
	}
	return out
}

func sampleAppointments() []model.Appointment {
	a1 := appt("a1", "2025-06-01", "09:00", model.StatusPending)
	a1.PatientName, a1.DoctorName, a1.Reason = "Jane Doe", "Ana Lima", "Cleaning"
	a2 := appt("a2", "2025-06-01", "10:00", model.StatusInProgress)
	a2.PatientName, a2.DoctorName, a2.Reason = "John Roe", "Ana Lima", "Filling"
	a3 := appt("a3", "2025-06-02", "09:00", model.StatusCompleted)
	a3.PatientName, a3.DoctorName, a3.Reason = "Mary Major", "Ben Cruz", "Cleaning"
	a4 := appt("a4", "2025-06-01", "11:00", model.StatusNoShow)
	a4.PatientName, a4.DoctorName, a4.Reason = "Jane Smith", "Ben Cruz", "Checkup"
	return []model.Appointment{a1, a2, a3, a4}
}

func TestSnapshotReplaceIsIdempotent(t *testing.T) {
	snap := sampleAppointments()
	reordered := []model.Appointment{snap[3], snap[1], snap[0], snap[2]}

	p := NewPipeline[model.Appointment]()
	p.Replace(snap)
	first := ComputeClinicStats(p.All())
	p.Replace(reordered)
	second := ComputeClinicStats(p.All())

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("aggregates changed on replay (-first +second):\n%s", diff)
	}
	assert.Equal(t, ComputeDoctorKPIs(snap), ComputeDoctorKPIs(reordered))
}

func TestFiltersCommute(t *testing.T) {
	input := sampleAppointments()
	preds := []AppointmentPredicate{MatchText("jane"), StatusIs("pending"), OnDate("2025-06-01")}
	orders := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	var want []model.Appointment
	for i, order := range orders {
		got := input
		for _, k := range order {
			got = Filter(got, preds[k])
		}
		if i == 0 {
			want = got
			continue
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("order %v differs (-want +got):\n%s", order, diff)
		}
	}
	assert.Equal(t, []string{"a1"}, ids(want))
}

func TestPipelineVisibleAndAll(t *testing.T) {
	p := NewPipeline[model.Appointment]()
	p.Replace(sampleAppointments())
	p.SetFilter("date", OnDate("2025-06-01"))
	p.SetFilter("text", MatchText("ana"))
	p.SortBy(ByColumn("time", true))

	assert.Equal(t, []string{"a2", "a1"}, ids(p.Visible()))
	assert.Len(t, p.All(), 4)

	p.SetFilter("text", nil)
	assert.Equal(t, []string{"a4", "a2", "a1"}, ids(p.Visible()))
}

func TestPipelineReplaceCopiesSnapshot(t *testing.T) {
	snap := sampleAppointments()
	p := NewPipeline[model.Appointment]()
	p.Replace(snap)
	snap[0].ID = "mutated"
	assert.Equal(t, "a1", p.All()[0].ID)
}

func TestByDateTime_TiesAndMissingLast(t *testing.T) {
	in := []model.Appointment{
		appt("no-time", "2025-06-01", "", model.StatusPending),
		appt("late", "2025-06-01", "15:00", model.StatusPending),
		appt("no-date", "", "08:00", model.StatusPending),
		appt("early", "2025-06-01", "08:30", model.StatusPending),
		appt("next-day", "2025-06-02", "07:00", model.StatusPending),
		appt("no-time-2", "2025-06-01", "", model.StatusPending),
	}
	p := NewPipeline[model.Appointment]()
	p.Replace(in)
	p.SortBy(ByDateTime)

	assert.Equal(t, []string{"early", "late", "no-time", "no-time-2", "next-day", "no-date"}, ids(p.Visible()))
}

func TestByColumn_LexicographicFallback(t *testing.T) {
	a := appt("a", "2025-06-02", "09:00", model.StatusPending)
	a.PatientName = "jane"
	b := appt("b", "2025-06-01", "09:00", model.StatusPending)
	b.PatientName = "Jane"
	c := appt("c", "2025-06-01", "09:00", model.StatusPending)
	c.PatientName = "adam"

	p := NewPipeline[model.Appointment]()
	p.Replace([]model.Appointment{a, b, c})
	p.SortBy(ByColumn("patient_name", false))
	assert.Equal(t, []string{"c", "b", "a"}, ids(p.Visible()))
}

func TestStatusIsNormalizes(t *testing.T) {
	input := sampleAppointments()
	assert.Equal(t, []string{"a2"}, ids(Filter(input, StatusIs("checked-in"))))
	assert.Equal(t, []string{"a2"}, ids(Filter(input, StatusIs("In Progress"))))
	assert.Len(t, Filter(input, StatusIs("")), 4)
}

func TestBetweenAndActionFilters(t *testing.T) {
	input := sampleAppointments()
	input[3].ActionStatus = model.ActionRebooked

	assert.Equal(t, []string{"a3"}, ids(Filter(input, Between("2025-06-02", ""))))
	assert.Equal(t, []string{"a1", "a2", "a4"}, ids(Filter(input, Between("", "2025-06-01"))))
	assert.Equal(t, []string{"a4"}, ids(Filter(input, ActionIs("rebooked"))))
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(Filter(input, ActionIs("open"))))
}

func TestNoShowAggregatePerDate(t *testing.T) {
	appts := []model.Appointment{
		appt("1", "2025-06-10", "09:00", model.StatusNoShow),
		appt("2", "2025-06-10", "10:00", model.StatusCompleted),
		appt("3", "2025-06-09", "09:00", model.StatusNoShow),
	}
	s := SummarizeNoShows(appts, "2025-06-10")
	assert.Equal(t, 1, s.Total)
	assert.Equal(t, 1, s.Open)

	appts[0].ActionStatus = model.ActionEscalated
	s = SummarizeNoShows(appts, "2025-06-10")
	assert.Equal(t, NoShowSummary{Date: "2025-06-10", Total: 1, Escalated: 1}, s)
}

func TestDoctorKPIsAndScheduleStats(t *testing.T) {
	appts := sampleAppointments()
	appts = append(appts, appt("a5", "2025-06-01", "12:00", model.StatusConfirmed), appt("a6", "2025-06-01", "13:00", model.StatusCancelled))

	assert.Equal(t, DoctorKPIs{Total: 6, Completed: 1, Pending: 2, CheckedIn: 1, Cancelled: 1, NoShows: 1}, ComputeDoctorKPIs(appts))
	assert.Equal(t, ScheduleStats{Total: 6, Pending: 2, Completed: 1, Cancelled: 2}, ComputeScheduleStats(appts))

	cs := ComputeClinicStats(appts)
	assert.Equal(t, 6, cs.Total)
	assert.Equal(t, 1, cs.CheckedIn)
	assert.Equal(t, 1, cs.Pending)
	assert.Equal(t, 1, cs.ByStatus[model.StatusConfirmed])
	assert.Len(t, cs.ByStatus, len(model.AppointmentStatuses))
}

func TestTaskSummaryAndFilters(t *testing.T) {
	tasks := []model.Task{
		{Description: "Call lab", Priority: model.PriorityHigh, Status: model.TaskPending, DueDate: "2025-06-03"},
		{Description: "Order gloves", Priority: model.PriorityLow, Status: model.TaskCompleted},
		{Description: "Call patient", Priority: model.PriorityHigh, Status: model.TaskPending, DueDate: "2025-06-01"},
	}
	s := SummarizeTasks(tasks)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.ByStatus[model.TaskPending])
	assert.Equal(t, 2, s.ByPriority[model.PriorityHigh])
	assert.Equal(t, 0, s.ByPriority[model.PriorityMedium])

	got := Filter(tasks, TaskMatchText("call"), TaskStatusIs("pending"), TaskPriorityIs("high"))
	require.Len(t, got, 2)

	p := NewPipeline[model.Task]()
	p.Replace(tasks)
	p.SortBy(ByDueDate)
	visible := p.Visible()
	assert.Equal(t, "Call patient", visible[0].Description)
	assert.Equal(t, "Order gloves", visible[2].Description)
}

func TestDoctorDirectoryResolution(t *testing.T) {
	doc := model.User{Role: model.RoleDoctor, FirstName: "Ana", LastName: "Lima"}
	doc.ID = "d1"
	staff := model.User{Role: model.RoleStaff, FirstName: "Sam", LastName: "Desk"}
	staff.ID = "s1"
	dir := NewDoctorDirectory([]model.User{doc, staff})

	assert.Equal(t, "Stored Name", dir.Name("d1", "Stored Name"))
	assert.Equal(t, "Ana Lima", dir.Name("d1", ""))
	assert.Equal(t, UnknownDoctor, dir.Name("s1", ""))
	assert.Equal(t, UnknownDoctor, dir.Name("", ""))

	appts := []model.Appointment{{DoctorID: "d1"}, {DoctorID: "ghost"}}
	named := WithDoctorNames(appts, dir)
	assert.Equal(t, "Ana Lima", named[0].DoctorName)
	assert.Equal(t, UnknownDoctor, named[1].DoctorName)
	assert.Empty(t, appts[0].DoctorName)
}

func patient(id, first, last string) model.Patient {
	p := model.Patient{FirstName: first, LastName: last}
	p.ID = id
	return p
}

func TestMergeDoctorPatients(t *testing.T) {
	fromAppts := []model.Patient{patient("p2", "Bob", "Young"), patient("p1", "Ann", "Zed")}
	primary := []model.Patient{patient("p1", "Ann", "Zed"), patient("p3", "Cy", "Xu")}

	got := MergeDoctorPatients(fromAppts, primary)
	want := []LinkedPatient{
		{Patient: patient("p2", "Bob", "Young"), Source: LinkAppointment},
		{Patient: patient("p1", "Ann", "Zed"), Source: LinkBoth},
		{Patient: patient("p3", "Cy", "Xu"), Source: LinkPrimary},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("MergeDoctorPatients mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchAndSortPatients(t *testing.T) {
	ps := []model.Patient{patient("1", "ann", "zed"), patient("2", "Bob", "Young"), patient("3", "Cy", "young")}
	sorted := SortPatients(ps)
	assert.Equal(t, "2", sorted[0].ID)
	assert.Equal(t, "3", sorted[1].ID)
	assert.Equal(t, "1", sorted[2].ID)

	found := SearchPatients(ps, "YOUNG")
	assert.Len(t, found, 2)
	assert.Len(t, SearchPatients(ps, ""), 3)
}
