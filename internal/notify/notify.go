// Package notify e-mails generated reports to the office mailbox.
package notify

import (
	"bytes"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/fire-protocols/internal/config"
)

const (
	docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

	// sessionTimeout bounds each SMTP attempt from dial to QUIT.
	sessionTimeout = 30 * time.Second
)

// Messages shown to the operator.
const (
	MsgNoPassword = "Пароль email не настроен (установите переменную окружения EMAIL_PASSWORD)"
	MsgDisabled   = "Отправка email отключена"
)

// Result reports the outcome of a delivery. A failed delivery is never an
// error for the caller: the report is already on disk.
type Result struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}

// Attachment is a file sent along with the message.
type Attachment struct {
	Name        string
	ContentType string
	Data        []byte
}

// Message is a single outgoing e-mail.
type Message struct {
	From        string
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

// sendFunc delivers raw message bytes. Each transport is tried in turn.
type sendFunc func(cfg config.Email, timeout time.Duration, from string, to []string, msg []byte) error

type transport struct {
	name string
	send sendFunc
}

// Mailer sends reports over SMTP, trying STARTTLS first and implicit TLS
// second.
type Mailer struct {
	cfg        config.Email
	logger     *zap.Logger
	transports []transport
	timeout    time.Duration
	now        func() time.Time
}

// NewMailer returns a mailer for the configured account.
func NewMailer(cfg config.Email, logger *zap.Logger) *Mailer {
	return &Mailer{
		cfg:    cfg,
		logger: logger,
		transports: []transport{
			{name: "starttls", send: sendStartTLS},
			{name: "tls", send: sendTLS},
		},
		timeout: sessionTimeout,
		now:     time.Now,
	}
}

// SendReport mails the report file at path with a short description of the
// object.
func (m *Mailer) SendReport(path, customer, object string) Result {
	if !m.cfg.Enabled {
		return Result{Message: MsgDisabled}
	}
	if m.cfg.Password == "" {
		m.logger.Warn("email password not set")
		return Result{Message: MsgNoPassword}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		m.logger.Error("failed to read report for email", zap.String("path", path), zap.Error(err))
		return Result{Message: fmt.Sprintf("Ошибка чтения файла отчета: %v", err)}
	}

	name := filepath.Base(path)
	msg := Message{
		From:    m.cfg.From,
		To:      m.cfg.To,
		Subject: "Протокол испытаний: " + name,
		Body: fmt.Sprintf("Протокол испытаний сформирован %s.\n\nЗаказчик: %s\nОбъект: %s\nФайл: %s\n",
			m.now().Format("02.01.2006 15:04"), customer, object, name),
		Attachments: []Attachment{{Name: name, ContentType: docxMIME, Data: data}},
	}
	return m.Send(msg)
}

// Send delivers msg through the first transport that succeeds.
func (m *Mailer) Send(msg Message) Result {
	if m.cfg.Password == "" {
		m.logger.Warn("email password not set")
		return Result{Message: MsgNoPassword}
	}

	raw, err := buildMessage(msg, m.now())
	if err != nil {
		return Result{Message: fmt.Sprintf("Ошибка формирования письма: %v", err)}
	}

	var lastErr error
	for _, t := range m.transports {
		if err := t.send(m.cfg, m.timeout, msg.From, []string{msg.To}, raw); err != nil {
			m.logger.Warn("smtp transport failed", zap.String("transport", t.name), zap.Error(err))
			lastErr = err
			continue
		}
		m.logger.Info("report emailed", zap.String("transport", t.name), zap.String("to", msg.To))
		return Result{Sent: true, Message: "Отчет успешно отправлен на " + msg.To}
	}
	return Result{Message: fmt.Sprintf("Ошибка отправки email: %v", lastErr)}
}

func sendStartTLS(cfg config.Email, timeout time.Duration, from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(cfg.SMTPServer, strconv.Itoa(cfg.Port))
	conn, err := (&net.Dialer{Timeout: timeout}).Dial("tcp", addr)
	if err != nil {
		return err
	}
	return deliver(conn, cfg, timeout, true, from, to, msg)
}

func sendTLS(cfg config.Email, timeout time.Duration, from string, to []string, msg []byte) error {
	addr := net.JoinHostPort(cfg.SMTPServer, strconv.Itoa(cfg.SSLPort))
	dialer := &net.Dialer{Timeout: timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", addr, &tls.Config{ServerName: cfg.SMTPServer})
	if err != nil {
		return err
	}
	return deliver(conn, cfg, timeout, false, from, to, msg)
}

// deliver runs one SMTP session on conn. The whole session, greeting
// included, must finish within timeout.
func deliver(conn net.Conn, cfg config.Email, timeout time.Duration, startTLS bool, from string, to []string, msg []byte) error {
	if err := conn.SetDeadline(time.Now().Add(timeout)); err != nil {
		_ = conn.Close()
		return err
	}
	c, err := smtp.NewClient(conn, cfg.SMTPServer)
	if err != nil {
		_ = conn.Close()
		return err
	}
	defer func() { _ = c.Close() }()

	if startTLS {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: cfg.SMTPServer}); err != nil {
				return err
			}
		}
	}
	if ok, _ := c.Extension("AUTH"); ok {
		if err := c.Auth(smtp.PlainAuth("", cfg.From, cfg.Password, cfg.SMTPServer)); err != nil {
			return err
		}
	}
	if err := c.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := c.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

// buildMessage renders msg as multipart/mixed with base64 parts.
func buildMessage(msg Message, date time.Time) ([]byte, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	textHeader.Set("Content-Transfer-Encoding", "base64")
	pw, err := mw.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if err := writeBase64(pw, []byte(msg.Body)); err != nil {
		return nil, err
	}

	for _, a := range msg.Attachments {
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Type", mime.FormatMediaType(ct, map[string]string{"name": a.Name}))
		h.Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Name}))
		h.Set("Content-Transfer-Encoding", "base64")
		pw, err := mw.CreatePart(h)
		if err != nil {
			return nil, err
		}
		if err := writeBase64(pw, a.Data); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	var out bytes.Buffer
	fmt.Fprintf(&out, "From: %s\r\n", msg.From)
	fmt.Fprintf(&out, "To: %s\r\n", msg.To)
	fmt.Fprintf(&out, "Subject: %s\r\n", mime.BEncoding.Encode("utf-8", msg.Subject))
	fmt.Fprintf(&out, "Date: %s\r\n", date.Format(time.RFC1123Z))
	out.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&out, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", mw.Boundary())
	out.Write(body.Bytes())
	return out.Bytes(), nil
}

// writeBase64 wraps encoded data at 76 columns.
func writeBase64(w io.Writer, data []byte) error {
	enc := base64.StdEncoding.EncodeToString(data)
	for len(enc) > 76 {
		if _, err := fmt.Fprintf(w, "%s\r\n", enc[:76]); err != nil {
			return err
		}
		enc = enc[76:]
	}
	_, err := fmt.Fprintf(w, "%s\r\n", enc)
	return err
}
