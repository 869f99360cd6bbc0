package service

import (
	"errors"
	"fmt"

	"taskwell/task-api/internal/model"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// SendVerificationMail delivers the verification link over SMTP. Token
// delivery is a boundary concern: when mail is disabled the token is
// still handed back once in the registration response and admins can
// force-verify instead.
func SendVerificationMail(u *model.User) error {
	if !viper.GetBool("mail.enabled") {
		return nil
	}

	if u.VerificationToken == nil {
		return errors.New("no verification token to send")
	}

	from := viper.GetString("mail.sender")
	if u.Email == from {
		return errors.New("invalid email address")
	}

	scheme := "http"
	if viper.GetBool("host.ssl.enabled") {
		scheme = "https"
	}

	verifLink := fmt.Sprintf("%v://%v/api/users/verify?token=%v",
		scheme, viper.GetString("host.domain"), *u.VerificationToken)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", u.Email)
	m.SetHeader("Subject", "Verify your email to start using Taskwell")
	m.SetBody("text/html", fmt.Sprintf("Click <a href='%v'>here</a> to verify your account.", verifLink))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}
