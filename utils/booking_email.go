package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// BookingStatusEmail is a fully composed message. Subject and both bodies are
// deterministic in (status, names, reason) so content can be golden-tested.
type BookingStatusEmail struct {
	Subject   string
	PlainBody string
	HTMLBody  string
}

func sanitizeHeaderValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// BuildBookingStatusEmail composes the applicant notification for an
// approved or rejected booking.
func BuildBookingStatusEmail(name, propertyTitle, unitType, status, reason, referenceCode string) BookingStatusEmail {
	name = sanitizeHeaderValue(name)
	propertyTitle = sanitizeHeaderValue(propertyTitle)
	unitType = sanitizeHeaderValue(unitType)
	referenceCode = sanitizeHeaderValue(referenceCode)

	if status == "approved" {
		subject := fmt.Sprintf("Your booking %s has been approved", referenceCode)
		plain := fmt.Sprintf(
			"Dear %s,\n\n"+
				"Congratulations! Your booking for a %s unit at %s has been approved.\n"+
				"Booking reference: %s\n\n"+
				"Our sales team will contact you shortly to arrange the contract signing and payment schedule.\n\n"+
				"Thank you for choosing us.\n",
			name, unitType, propertyTitle, referenceCode,
		)
		html := fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Booking approved</title></head>
<body style="font-family:Arial, Helvetica, sans-serif; color:#222;">
<div style="max-width:640px; margin:20px auto; border:1px solid #e6eef6; padding:24px; border-radius:8px;">
  <h2>Booking approved</h2>
  <p>Dear %s,</p>
  <p>Congratulations! Your booking for a <strong>%s</strong> unit at <strong>%s</strong> has been approved.</p>
  <p>Booking reference: <strong>%s</strong></p>
  <p>Our sales team will contact you shortly to arrange the contract signing and payment schedule.</p>
  <p>Thank you for choosing us.</p>
</div>
</body>
</html>`, name, unitType, propertyTitle, referenceCode)
		return BookingStatusEmail{Subject: subject, PlainBody: plain, HTMLBody: html}
	}

	reason = strings.TrimSpace(reason)
	subject := fmt.Sprintf("Update on your booking %s", referenceCode)
	plain := fmt.Sprintf(
		"Dear %s,\n\n"+
			"We are sorry to inform you that your booking for a %s unit at %s could not be confirmed.\n"+
			"Reason: %s\n"+
			"Booking reference: %s\n\n"+
			"You are welcome to submit a new booking for another unit type, or contact our sales team for assistance.\n",
		name, unitType, propertyTitle, reason, referenceCode,
	)
	html := fmt.Sprintf(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Booking update</title></head>
<body style="font-family:Arial, Helvetica, sans-serif; color:#222;">
<div style="max-width:640px; margin:20px auto; border:1px solid #e6eef6; padding:24px; border-radius:8px;">
  <h2>Booking update</h2>
  <p>Dear %s,</p>
  <p>We are sorry to inform you that your booking for a <strong>%s</strong> unit at <strong>%s</strong> could not be confirmed.</p>
  <p>Reason: %s</p>
  <p>Booking reference: <strong>%s</strong></p>
  <p>You are welcome to submit a new booking for another unit type, or contact our sales team for assistance.</p>
</div>
</body>
</html>`, name, unitType, propertyTitle, reason, referenceCode)
	return BookingStatusEmail{Subject: subject, PlainBody: plain, HTMLBody: html}
}

// SendEmail delivers a composed message over SMTP. When SMTP env is not
// configured it logs the message instead and reports success, so local
// environments behave as if delivery worked.
func SendEmail(recipient string, msg BookingStatusEmail) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] to:%s subject:%s", recipient, msg.Subject)
		return nil
	}

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)
	boundary := "----=_BOOKING_EMAIL_BOUNDARY"

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipient))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", sanitizeHeaderValue(msg.Subject)))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n\r\n", boundary))

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.PlainBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	sb.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	sb.WriteString(msg.HTMLBody + "\r\n")

	sb.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := smtp.SendMail(addr, auth, smtpUser, []string{recipient}, []byte(sb.String())); err != nil {
		log.Printf("Failed to send email to %s: %v", recipient, err)
		return err
	}

	log.Printf("Email sent to %s", recipient)
	return nil
}
