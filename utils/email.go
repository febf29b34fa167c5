package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"space_manager/config"
	"strconv"

	"gopkg.in/gomail.v2"
)

// BookingConfirmationData feeds the confirmation email template.
type BookingConfirmationData struct {
	BookingCode string
	SpaceName   string
	Location    string
	StartTime   string
	EndTime     string
	People      int
	TotalPrice  string
}

var bookingConfirmationTmpl = template.Must(template.New("booking_confirmation").Parse(`
<h2>Your booking is confirmed</h2>
<p>Booking code: <strong>{{.BookingCode}}</strong></p>
<ul>
  <li>Space: {{.SpaceName}} ({{.Location}})</li>
  <li>From: {{.StartTime}}</li>
  <li>To: {{.EndTime}}</li>
  <li>People: {{.People}}</li>
  <li>Total: {{.TotalPrice}}</li>
</ul>
<p>Show the attached QR code at the front desk to check in.</p>
`))

var passwordResetTmpl = template.Must(template.New("password_reset").Parse(`
<h2>Password reset</h2>
<p>Use the link below to reset your password. The link expires in one hour.</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>If you did not request this, ignore this email.</p>
`))

func smtpDialer() (*gomail.Dialer, bool) {
	host := config.Config("SMTP_HOST")
	if host == "" {
		return nil, false
	}
	port, err := strconv.Atoi(config.Config("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	return gomail.NewDialer(host, port, config.Config("SMTP_USERNAME"), config.Config("SMTP_PASSWORD")), true
}

// SendBookingConfirmationEmail sends the confirmation with a check-in QR
// attached. Runs async, failures are logged only.
func SendBookingConfirmationEmail(to string, data BookingConfirmationData) {
	go func() {
		d, ok := smtpDialer()
		if !ok {
			return
		}

		var body bytes.Buffer
		if err := bookingConfirmationTmpl.Execute(&body, data); err != nil {
			log.Printf("failed to render confirmation email: %v", err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", config.Config("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Booking confirmation "+data.BookingCode)
		m.SetBody("text/html", body.String())

		qrBytes, err := GenerateQRCode(data.BookingCode, 256)
		if err != nil {
			log.Printf("failed to build QR for booking %s: %v", data.BookingCode, err)
		} else {
			filename := fmt.Sprintf("Booking_%s.png", data.BookingCode)
			m.Attach(filename, gomail.Rename(filename), gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := io.Copy(w, bytes.NewReader(qrBytes))
				return err
			}))
		}

		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send confirmation email to %s: %v", to, err)
		}
	}()
}

// SendPasswordResetEmail mails a reset link. Async, failures logged only.
func SendPasswordResetEmail(to, token string) {
	go func() {
		d, ok := smtpDialer()
		if !ok {
			return
		}

		link := config.Config("FRONTEND_URL") + "/reset-password?token=" + token
		var body bytes.Buffer
		if err := passwordResetTmpl.Execute(&body, struct{ Link string }{Link: link}); err != nil {
			log.Printf("failed to render reset email: %v", err)
			return
		}

		m := gomail.NewMessage()
		m.SetHeader("From", config.Config("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Password reset request")
		m.SetBody("text/html", body.String())

		if err := d.DialAndSend(m); err != nil {
			log.Printf("failed to send reset email to %s: %v", to, err)
		}
	}()
}
