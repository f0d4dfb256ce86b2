package email

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yigit/creditbridge/internal/app/models"
)

var outcomeTemplate = template.Must(template.New("outcome").Parse(`
<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">Transfer Credit Request {{if .Approved}}Approved{{else}}Not Approved{{end}}</h2>
		<p>Hello {{.Name}},</p>
		<p>Your request to transfer <strong>{{.Course}}</strong> from <strong>{{.School}}</strong>
		{{if .Approved}}has been approved.{{else}}was not approved.{{end}}</p>
		{{if .Reasons}}<p>Reasons: {{.Reasons}}</p>{{end}}
		<p>Best regards,<br>The Transfer Credit Office</p>
	</div>
</body>
</html>
`))

var adminNoticeTemplate = template.Must(template.New("admin_notice").Parse(`
<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">New Pending Transfer Request</h2>
		<p>{{.Name}} ({{.Email}}) asked to transfer <strong>{{.Course}}</strong> from <strong>{{.School}}</strong>.</p>
		{{if .DualEnrollment}}<p>The course was taken as dual enrollment.</p>{{end}}
		<p><a href="{{.ReviewURL}}">Review request #{{.ID}}</a></p>
	</div>
</body>
</html>
`))

type outcomeView struct {
	Name     string
	School   string
	Course   string
	Approved bool
	Reasons  string
}

type adminNoticeView struct {
	ID             int64
	Name           string
	Email          string
	School         string
	Course         string
	DualEnrollment bool
	ReviewURL      string
}

func renderOutcome(contact models.Contact, snapshot models.RequestSnapshot, decision models.Decision) (string, string, error) {
	subject := "Your transfer credit request was not approved"
	if decision.Approved {
		subject = "Your transfer credit request was approved"
	}

	var body bytes.Buffer
	err := outcomeTemplate.Execute(&body, outcomeView{
		Name:     contact.Name,
		School:   schoolLabel(snapshot),
		Course:   courseLabel(snapshot),
		Approved: decision.Approved,
		Reasons:  decision.Reasons,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render outcome email: %w", err)
	}
	return subject, body.String(), nil
}

func renderAdminNotice(snapshot models.RequestSnapshot, reviewURL string) (string, string, error) {
	var body bytes.Buffer
	err := adminNoticeTemplate.Execute(&body, adminNoticeView{
		ID:             snapshot.ID,
		Name:           snapshot.RequesterName,
		Email:          snapshot.RequesterEmail,
		School:         schoolLabel(snapshot),
		Course:         courseLabel(snapshot),
		DualEnrollment: snapshot.DualEnrollment,
		ReviewURL:      reviewURL,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to render pending notice: %w", err)
	}
	return fmt.Sprintf("New transfer credit request #%d pending review", snapshot.ID), body.String(), nil
}

// schoolLabel names the school as the requester entered it. Catalog
// selections only carry an id.
func schoolLabel(s models.RequestSnapshot) string {
	if s.TransferSchoolOther {
		return fmt.Sprintf("%s (%s)", s.TransferSchoolName, s.TransferSchoolLocation)
	}
	return fmt.Sprintf("school #%d", s.TransferSchoolID)
}

func courseLabel(s models.RequestSnapshot) string {
	if s.TransferCourseOther {
		return fmt.Sprintf("%s %s", s.TransferCourseNum, s.TransferCourseName)
	}
	return fmt.Sprintf("course #%d", s.TransferCourseID)
}
