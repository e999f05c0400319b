package mailer

import (
	"bytes"
	"embed"
	"html/template"
	textTemplate "text/template"
)

const (
	FromName               = "Folio"
	maxRetires             = 3
	ContactMessageTemplate = "contact_message.tmpl"
)

//go:embed "templates"
var FS embed.FS

// Envelope addresses one outgoing mail.
type Envelope struct {
	ToName  string
	ToEmail string
	ReplyTo string
}

type Client interface {
	Send(templateFile string, env Envelope, data any) error
}

type rendered struct {
	subject   string
	plainBody string
	htmlBody  string
}

// render executes the subject, plainBody and htmlBody blocks of templateFile.
func render(templateFile string, data any) (*rendered, error) {
	tmpl, err := textTemplate.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}

	subject := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(subject, "subject", data); err != nil {
		return nil, err
	}

	plainBody := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(plainBody, "plainBody", data); err != nil {
		return nil, err
	}

	// html/template for the html part so visitor text is escaped
	htmlTmpl, err := template.ParseFS(FS, "templates/"+templateFile)
	if err != nil {
		return nil, err
	}
	htmlBody := new(bytes.Buffer)
	if err := htmlTmpl.ExecuteTemplate(htmlBody, "htmlBody", data); err != nil {
		return nil, err
	}

	return &rendered{
		subject:   subject.String(),
		plainBody: plainBody.String(),
		htmlBody:  htmlBody.String(),
	}, nil
}
