package services

import (
	"bytes"
	"html/template"
)

const emailLayout = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
  </head>
  <body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="background-color: #f9fafb; padding: 30px; border-radius: 8px;">
      {{block "content" .}}{{end}}
    </div>
  </body>
</html>`

const activationContent = `{{define "content"}}
      <h1 style="color: #ea580c; margin-top: 0;">Welcome!</h1>
      <p>Thank you for signing up. Please click the button below to activate your account:</p>
      <div style="text-align: center; margin: 30px 0;">
        <a href="{{.URL}}" style="background-color: #ea580c; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block; font-weight: bold;">Activate Account</a>
      </div>
      <p style="color: #666; font-size: 14px;">If the button doesn't work, copy and paste this link into your browser:</p>
      <p style="color: #666; font-size: 12px; word-break: break-all;">{{.URL}}</p>
      <p style="color: #666; font-size: 14px; margin-top: 30px;">If you didn't create an account, you can safely ignore this email.</p>
{{end}}`

const invitationContent = `{{define "content"}}
      <h1 style="color: #ea580c; margin-top: 0;">You're invited!</h1>
      <p>{{if .InviterName}}{{.InviterName}} has invited you{{else}}You have been invited{{end}} to join <strong>{{.OrganisationName}}</strong> as {{.Role}}.</p>
      <div style="text-align: center; margin: 30px 0;">
        <a href="{{.URL}}" style="background-color: #ea580c; color: white; padding: 12px 24px; text-decoration: none; border-radius: 6px; display: inline-block; font-weight: bold;">Accept Invitation</a>
      </div>
      <p style="color: #666; font-size: 14px;">If the button doesn't work, copy and paste this link into your browser:</p>
      <p style="color: #666; font-size: 12px; word-break: break-all;">{{.URL}}</p>
{{end}}`

const contactContent = `{{define "content"}}
      <h2 style="color: #ea580c; margin-top: 0;">New Contact Form Submission</h2>
      <p><strong>From:</strong> {{.Name}} ({{.Email}})</p>
      <p><strong>Subject:</strong> {{.Subject}}</p>
      <div style="background-color: white; padding: 20px; border-radius: 4px; margin-top: 20px;">
        <p style="white-space: pre-wrap; margin: 0;">{{.Message}}</p>
      </div>
{{end}}`

var (
	activationTmpl = template.Must(template.Must(template.New("activation").Parse(emailLayout)).Parse(activationContent))
	invitationTmpl = template.Must(template.Must(template.New("invitation").Parse(emailLayout)).Parse(invitationContent))
	contactTmpl    = template.Must(template.Must(template.New("contact").Parse(emailLayout)).Parse(contactContent))
)

type activationEmailData struct {
	URL string
}

type invitationEmailData struct {
	URL              string
	OrganisationName string
	Role             string
	InviterName      string
}

type contactEmailData struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func renderEmail(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
