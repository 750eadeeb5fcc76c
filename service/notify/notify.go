package notify

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/gomail.v2"
)

// Mailer sends best-effort appointment emails to patients. When SMTP is not
// configured every call is a no-op, so services can notify unconditionally.
type Mailer struct {
	host string
	port int
	user string
	pass string
}

func NewMailerFromEnv() *Mailer {
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		return &Mailer{}
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		log.Printf("Invalid SMTP_PORT, mail notifications disabled: %v", err)
		return &Mailer{}
	}
	return &Mailer{
		host: smtpHost,
		port: port,
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASS"),
	}
}

func (m *Mailer) enabled() bool {
	return m != nil && m.host != ""
}

// AppointmentScheduled emails a booking confirmation.
func (m *Mailer) AppointmentScheduled(email, doctorName, reference string, at time.Time) {
	body := fmt.Sprintf(
		"Your appointment with %s on %s has been scheduled.\nBooking reference: %s",
		doctorName, at.Format("Mon, 02 Jan 2006 at 15:04"), reference)
	m.send(email, "Appointment Confirmation", body)
}

// AppointmentCancelled emails a cancellation notice.
func (m *Mailer) AppointmentCancelled(email, doctorName, reference string, at time.Time) {
	body := fmt.Sprintf(
		"Your appointment with %s on %s has been cancelled.\nBooking reference: %s",
		doctorName, at.Format("Mon, 02 Jan 2006 at 15:04"), reference)
	m.send(email, "Appointment Cancelled", body)
}

func (m *Mailer) send(to, subject, body string) {
	if !m.enabled() {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.user)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.user, m.pass)

	go func() {
		if err := d.DialAndSend(msg); err != nil {
			log.Printf("Error sending %q email to %s: %v", subject, to, err)
		}
	}()
}
