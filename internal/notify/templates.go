package notify

import (
	"fmt"
	"strings"
	"text/template"
)

// Message is a rendered subject/body pair.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

type eventTemplate struct {
	subject *template.Template
	text    *template.Template
	html    *template.Template
}

// Missing payload fields render as empty text; templates perform no
// validation of their data.
func mustTemplate(name, body string) *template.Template {
	return template.Must(template.New(name).Option("missingkey=zero").Parse(body))
}

var eventTemplates = map[EventType]eventTemplate{
	EventPharmacyApproved: {
		subject: mustTemplate("approved.subject", `Your pharmacy registration has been approved`),
		text: mustTemplate("approved.text", `Dear {{.pharmacyName}},

Congratulations! Your pharmacy registration has been approved by our admin team.

You can now log in to your pharmacy portal, submit delivery requests and manage your account.

Best regards,
The Medical Courier Team`),
		html: mustTemplate("approved.html", `<h2>Dear {{.pharmacyName}},</h2>
<p>Congratulations! Your pharmacy registration has been <strong>approved</strong> by our admin team.</p>
<p>You can now log in to your pharmacy portal, submit delivery requests and manage your account.</p>
<p>Best regards,<br>The Medical Courier Team</p>`),
	},
	EventPharmacyRejected: {
		subject: mustTemplate("rejected.subject", `Update on your pharmacy registration`),
		text: mustTemplate("rejected.text", `Dear {{.pharmacyName}},

We are sorry to inform you that your pharmacy registration could not be approved.

Reason: {{.reason}}

You may contact our support team for more information.

Best regards,
The Medical Courier Team`),
		html: mustTemplate("rejected.html", `<h2>Dear {{.pharmacyName}},</h2>
<p>We are sorry to inform you that your pharmacy registration could not be approved.</p>
<p><strong>Reason:</strong> {{.reason}}</p>
<p>You may contact our support team for more information.</p>
<p>Best regards,<br>The Medical Courier Team</p>`),
	},
	EventNewRegistration: {
		subject: mustTemplate("registration.subject", `New pharmacy registration: {{.pharmacyName}}`),
		text: mustTemplate("registration.text", `A pharmacy has registered and is waiting for review.

Name: {{.pharmacyName}}
Email: {{.email}}
Contact: {{.contactName}}
License: {{.licenseNumber}}
Phone: {{.phone}}
Address: {{.address}}`),
		html: mustTemplate("registration.html", `<h2>New pharmacy registration</h2>
<ul>
<li>Name: {{.pharmacyName}}</li>
<li>Email: {{.email}}</li>
<li>Contact: {{.contactName}}</li>
<li>License: {{.licenseNumber}}</li>
<li>Phone: {{.phone}}</li>
<li>Address: {{.address}}</li>
</ul>`),
	},
	EventDeliveryStatusUpdate: {
		subject: mustTemplate("status.subject", `Delivery {{.trackingNumber}} is now {{.status}}`),
		text: mustTemplate("status.text", `Delivery update for {{.patientName}}.

Tracking number: {{.trackingNumber}}
New status: {{.status}}
{{if .pharmacyName}}Pharmacy: {{.pharmacyName}}
{{end}}`),
		html: mustTemplate("status.html", `<h2>Delivery update</h2>
<p>Delivery for <strong>{{.patientName}}</strong> is now <strong>{{.status}}</strong>.</p>
<p>Tracking number: {{.trackingNumber}}</p>
{{if .pharmacyName}}<p>Pharmacy: {{.pharmacyName}}</p>{{end}}`),
	},
}

// Render produces the subject/body pair for an event.
func Render(e Event) (Message, error) {
	t, ok := eventTemplates[e.Type]
	if !ok {
		return Message{}, fmt.Errorf("unknown event type %q", e.Type)
	}
	data := e.Data
	if data == nil {
		data = map[string]string{}
	}
	var m Message
	var err error
	if m.Subject, err = render(t.subject, data); err != nil {
		return Message{}, err
	}
	if m.Text, err = render(t.text, data); err != nil {
		return Message{}, err
	}
	if m.HTML, err = render(t.html, data); err != nil {
		return Message{}, err
	}
	return m, nil
}

func render(t *template.Template, data map[string]string) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return sb.String(), nil
}
