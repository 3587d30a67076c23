// Package notifier рассылает письма о скором продлении лицензий,
// получая RenewalNotice из очереди брокера.
package notifier

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"strings"
	"time"

	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/lib/smtp"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// Service отправляет уведомления ответственным за лицензии.
type Service struct {
	transport  smtp.TransportInterface
	recipients []string
	log        *slog.Logger
}

// New создает новый экземпляр Service.
func New(transport smtp.TransportInterface, recipients []string, log *slog.Logger) *Service {
	return &Service{
		transport:  transport,
		recipients: recipients,
		log:        log,
	}
}

// HandleRenewal разбирает тело сообщения и отправляет письмо.
// Неразборчивое сообщение отбрасывается: повтор его не исправит.
func (s *Service) HandleRenewal(body []byte) error {
	var notice models.RenewalNotice
	if err := json.Unmarshal(body, &notice); err != nil {
		s.log.Error("dropping malformed renewal notice", sl.Err(err))
		return nil
	}
	if len(s.recipients) == 0 {
		s.log.Warn("no recipients configured, skipping notice", slog.String("license_id", notice.LicenseID))
		return nil
	}

	subject, text := renewalMessage(notice)
	return s.sendEmail(s.recipients, subject, text)
}

func renewalMessage(n models.RenewalNotice) (subject, body string) {
	subject = fmt.Sprintf("Продление лицензии %s %s через %d дн.", n.Vendor, n.Product, n.DaysLeft)
	body = fmt.Sprintf("Здравствуйте!\n\n"+
		"Лицензия %s (%s) продлевается %s, осталось дней: %d.\n"+
		"Ежемесячная стоимость: %.2f.\n\n"+
		"Проверьте использование мест до продления.",
		n.Product, n.Vendor, n.RenewalDate.Format(time.DateOnly), n.DaysLeft, n.Cost)
	return subject, body
}

// singleLine заменяет переводы строк пробелами: значение заголовка
// не может продолжиться новым заголовком.
func singleLine(v string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(v)
}

func (s *Service) sendEmail(to []string, subject, bodyText string) error {
	const op = "notifier.sendEmail"
	from := s.transport.GetSMTPUser()
	msg := strings.Join([]string{
		"From: " + singleLine(from),
		"To: " + singleLine(strings.Join(to, ", ")),
		"Subject: " + mime.QEncoding.Encode("utf-8", singleLine(subject)),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = client.Close()
	}()

	if err = client.Mail(from); err != nil {
		return fmt.Errorf("%s: mail from: %w", op, err)
	}
	for _, addr := range to {
		if err = client.Rcpt(addr); err != nil {
			return fmt.Errorf("%s: rcpt %s: %w", op, addr, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err = wc.Write([]byte(msg)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = wc.Close(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = client.Quit(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("email sent successfully", slog.Any("to", to))
	return nil
}
