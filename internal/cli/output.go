package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/yigit/creditbridge/internal/app/models"
)

var (
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	noticeColor  = color.New(color.FgYellow)
	headingColor = color.New(color.FgCyan)
)

func printSuccess(w io.Writer, msg string) {
	successColor.Fprintln(w, msg)
}

func printError(w io.Writer, err error) {
	errorColor.Fprintln(w, "Error: "+err.Error())
}

func printNotice(w io.Writer, msg string) {
	noticeColor.Fprintln(w, msg)
}

func renderPendingRequests(w io.Writer, requests []*models.PendingRequest) {
	headingColor.Fprintf(w, "%d pending request(s)\n", len(requests))

	table := newTable(w)
	table.SetHeader([]string{"ID", "Requester", "Email", "School", "Course", "Target", "Dual", "Submitted"})
	for _, r := range requests {
		snapshot := r.Snapshot()
		table.Append([]string{
			strconv.FormatInt(r.ID, 10),
			r.RequesterName,
			r.RequesterEmail,
			schoolCell(snapshot),
			courseCell(snapshot),
			strconv.FormatInt(r.TargetCourseID, 10),
			yesNo(r.DualEnrollment),
			r.CreatedAt.Format(time.DateTime),
		})
	}
	table.Render()
}

func renderSchools(w io.Writer, schools []*models.School) {
	table := newTable(w)
	table.SetHeader([]string{"ID", "Name", "Location", "International"})
	for _, s := range schools {
		table.Append([]string{
			strconv.FormatInt(s.ID, 10),
			s.Name,
			s.Location,
			yesNo(s.International),
		})
	}
	table.Render()
}

func renderCourses(w io.Writer, courses []*models.Course) {
	table := newTable(w)
	table.SetHeader([]string{"ID", "School", "Number", "Name"})
	for _, c := range courses {
		table.Append([]string{
			strconv.FormatInt(c.ID, 10),
			strconv.FormatInt(c.SchoolID, 10),
			c.CourseNum,
			c.Name,
		})
	}
	table.Render()
}

func renderPrecedents(w io.Writer, precedents []*models.TransferRequest, total int64) {
	headingColor.Fprintf(w, "%d precedent(s) in total\n", total)

	table := newTable(w)
	table.SetHeader([]string{"ID", "School", "Course", "Target", "Decision", "Reasons", "Decided"})
	for _, p := range precedents {
		decision := "DISAPPROVED"
		if p.Approved {
			decision = "APPROVED"
		}
		table.Append([]string{
			strconv.FormatInt(p.ID, 10),
			strconv.FormatInt(p.TransferSchoolID, 10),
			strconv.FormatInt(p.TransferCourseID, 10),
			strconv.FormatInt(p.TargetCourseID, 10),
			decision,
			p.Reasons,
			p.DecidedAt.Format(time.DateOnly),
		})
	}
	table.Render()
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	return table
}

func schoolCell(s models.RequestSnapshot) string {
	if s.TransferSchoolOther {
		return fmt.Sprintf("%s, %s (new)", s.TransferSchoolName, s.TransferSchoolLocation)
	}
	return "#" + strconv.FormatInt(s.TransferSchoolID, 10)
}

func courseCell(s models.RequestSnapshot) string {
	if s.TransferCourseOther {
		return fmt.Sprintf("%s %s (new)", s.TransferCourseNum, s.TransferCourseName)
	}
	return "#" + strconv.FormatInt(s.TransferCourseID, 10)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
