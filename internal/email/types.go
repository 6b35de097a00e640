package email

// Email - одно исходящее письмо.
type Email struct {
	To      []string
	Subject string
	Body    string // text/html
}

// Config - настройки SMTP.
type Config struct {
	SMTPHost  string
	SMTPPort  int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}
