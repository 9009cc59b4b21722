package mailer

import (
	"bytes"
	"html/template"
)

var verificationTmpl = template.Must(template.New("verification").Parse(`<p>Hi {{.Name}},</p>
<p>Your verification code is <strong>{{.Code}}</strong>. It expires in one hour.</p>
<p>If you did not request this code you can ignore this email.</p>`))

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<p>Welcome aboard, {{.Name}}!</p>
<p>Your account has been created. Use the code <strong>{{.Code}}</strong> to verify your email address.</p>`))

type codeData struct {
	Name string
	Code string
}

// VerificationEmail builds the email carrying a fresh verification code
func VerificationEmail(from, to, name, code string) (Email, error) {
	return render(from, to, "Your verification code", verificationTmpl, codeData{Name: name, Code: code},
		"Your verification code is "+code+". It expires in one hour.")
}

// WelcomeEmail builds the email sent after registration
func WelcomeEmail(from, to, name, code string) (Email, error) {
	return render(from, to, "Welcome! Please verify your email", welcomeTmpl, codeData{Name: name, Code: code},
		"Welcome "+name+"! Your verification code is "+code+".")
}

func render(from, to, subject string, tmpl *template.Template, data codeData, text string) (Email, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return Email{}, err
	}
	return NewEmail(from, []string{to},
		WithSubject(subject),
		WithText(text),
		WithHTML(buf.String()),
	), nil
}
