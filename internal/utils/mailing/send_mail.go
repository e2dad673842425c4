package mailing

import (
	"fmt"
	"strconv"

	"github.com/Goutham-IITJ/Project-Raseed/internal/utils"
	"gopkg.in/gomail.v2"
)

type smtpConfig struct {
	Host     string
	Port     int
	Sender   string
	Email    string
	Password string
}

func loadSMTPConfig() (smtpConfig, error) {
	port, err := strconv.Atoi(utils.GetConfig("SMTP_PORT"))
	if err != nil {
		return smtpConfig{}, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	return smtpConfig{
		Host:     utils.GetConfig("SMTP_HOST"),
		Port:     port,
		Sender:   utils.GetConfig("SMTP_SENDER_NAME"),
		Email:    utils.GetConfig("SMTP_AUTH_EMAIL"),
		Password: utils.GetConfig("SMTP_AUTH_PASSWORD"),
	}, nil
}

// SendMail delivers one HTML mail to the user, used for wallet pass links.
func SendMail(toEmail string, subject string, body string) error {
	cfg, err := loadSMTPConfig()
	if err != nil {
		return err
	}

	mailer := gomail.NewMessage()
	from := cfg.Email
	if cfg.Sender != "" {
		from = fmt.Sprintf("%s <%s>", cfg.Sender, cfg.Email)
	}
	mailer.SetHeader("From", from)
	mailer.SetHeader("To", toEmail)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Email, cfg.Password)
	return dialer.DialAndSend(mailer)
}
