// alerts/notifier.go
package alerts

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/config"
	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/models"
)

// Alert is a single price drop worth telling someone about.
type Alert struct {
	ProductName string
	Price       float64
	Link        string
}

type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}

// EmailNotifier delivers alerts over SMTP. Port 465 uses implicit TLS, any other
// port goes through the plain Send path (STARTTLS when the server offers it).
type EmailNotifier struct {
	cfg config.AlertsConfig
}

func NewEmailNotifier(cfg config.AlertsConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

func (n *EmailNotifier) Notify(ctx context.Context, alert Alert) error {
	if n.cfg.Sender == "" || n.cfg.Receiver == "" {
		return fmt.Errorf("email sender or receiver is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	mail := buildMessage(n.cfg, alert)
	addr := fmt.Sprintf("%s:%d", n.cfg.SMTPHost, n.cfg.SMTPPort)
	auth := smtp.PlainAuth("", n.cfg.Sender, n.cfg.Password, n.cfg.SMTPHost)

	var err error
	if n.cfg.SMTPPort == 465 {
		err = mail.SendWithTLS(addr, auth, &tls.Config{ServerName: n.cfg.SMTPHost})
	} else {
		err = mail.Send(addr, auth)
		if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
			err = mail.Send(addr, nil)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to send price alert for %q: %w", alert.ProductName, err)
	}

	log.Printf("Alerts: email sent for %s", alert.ProductName)
	return nil
}

func buildMessage(cfg config.AlertsConfig, alert Alert) *email.Email {
	mail := email.NewEmail()
	mail.From = cfg.Sender
	mail.To = []string{cfg.Receiver}
	mail.Subject = fmt.Sprintf("PRICE DROP ALERT: %s", alert.ProductName)
	mail.Text = []byte(fmt.Sprintf(`Good news! We found a price drop.

Product: %s
New Price: £%.2f

Buy Now: %s

(This is an automated message from the market price tracker)
`, alert.ProductName, alert.Price, alert.Link))
	return mail
}

// ThresholdHook returns an extraction hook that notifies for every record priced
// strictly below threshold. A threshold <= 0 or a nil notifier returns nil.
// Notification failures are logged and never stop extraction.
func ThresholdHook(threshold float64, notifier Notifier) func(context.Context, models.PriceRecord) {
	if threshold <= 0 || notifier == nil {
		return nil
	}
	return func(ctx context.Context, record models.PriceRecord) {
		if record.Price >= threshold {
			return
		}
		log.Printf("Alerts: price drop detected for %s at %.2f (threshold %.2f)", record.ProductName, record.Price, threshold)
		alert := Alert{ProductName: record.ProductName, Price: record.Price, Link: record.Link}
		if err := notifier.Notify(ctx, alert); err != nil {
			log.Printf("ERROR Alerts: %v", err)
		}
	}
}
