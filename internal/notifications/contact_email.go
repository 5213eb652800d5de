package notifications

import (
	"bytes"
	"html/template"

	"globtek-backend/internal/models"
)

const contactNotificationTemplate = `<!DOCTYPE html>
<html>
<body>
  <h3>New website enquiry</h3>
  <p><strong>Name:</strong> {{.FirstName}} {{.LastName}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Phone:</strong> {{.Phone}}</p>
  <p><strong>Company:</strong> {{.Company}}</p>
  <p><strong>Project type:</strong> {{.ProjectType}}</p>
  <p><strong>Budget:</strong> {{.Budget}}</p>
  <p><strong>Timeframe:</strong> {{.Timeframe}}</p>
  <p><strong>Reference:</strong> {{.ID}}</p>
  <p><strong>Message:</strong><br/>{{.Message}}</p>
</body>
</html>`

const contactConfirmationTemplate = `<!DOCTYPE html>
<html>
<body>
  <p>Dear {{.FirstName}},</p>
  <p>Thank you for contacting Globtek Engineering. We have received your enquiry and one of our engineers will be in touch shortly.</p>
  <p><strong>Reference: {{.ID}}</strong></p>
  <ul>
    <li>Project type: {{.ProjectType}}</li>
    {{if .Company}}<li>Company: {{.Company}}</li>{{end}}
    {{if .Budget}}<li>Budget: {{.Budget}}</li>{{end}}
    {{if .Timeframe}}<li>Timeframe: {{.Timeframe}}</li>{{end}}
  </ul>
  <p>Your message:</p>
  <p>{{.Message}}</p>
  <p>Kind regards,<br/>Globtek Engineering</p>
</body>
</html>`

var contactNotificationTmpl = template.Must(template.New("contact_notification").Parse(contactNotificationTemplate))
var contactConfirmationTmpl = template.Must(template.New("contact_confirmation").Parse(contactConfirmationTemplate))

func buildContactNotificationHTML(msg models.ContactMessage) (string, error) {
	var buf bytes.Buffer
	if err := contactNotificationTmpl.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func buildContactConfirmationHTML(msg models.ContactMessage) (string, error) {
	var buf bytes.Buffer
	if err := contactConfirmationTmpl.Execute(&buf, msg); err != nil {
		return "", err
	}
	return buf.String(), nil
}
