package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// AppointmentConfirmationData dữ liệu cho template email xác nhận lịch hẹn
type AppointmentConfirmationData struct {
	AppointmentCode  string
	EventTitle       string
	CounterpartyName string
	ConfirmedSlot    string
	DurationMinutes  int
	Purpose          string
}

// SendAppointmentConfirmationEmail gửi email xác nhận lịch hẹn kèm QR check-in (async)
func SendAppointmentConfirmationEmail(to string, data AppointmentConfirmationData) {
	go func() { // Async để không delay response
		tmplPath := "templates/appointment_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Lỗi load template email lịch hẹn: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email lịch hẹn: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", fmt.Sprintf("Xác nhận lịch hẹn #%s", data.AppointmentCode))
		m.SetBody("text/html", body.String())

		// Nhúng QR check-in (nội dung là public code của lịch hẹn)
		qrBytes, err := GenerateQRCode(data.AppointmentCode, 400)
		if err == nil {
			m.Embed("qr_checkin.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qrBytes)
				return err
			}), gomail.SetHeader(map[string][]string{
				"Content-Type":        {"image/png"},
				"Content-ID":          {"<qr_checkin_code>"},
				"Content-Disposition": {"inline"},
			}))
		} else {
			log.Printf("Lỗi tạo QR cho lịch hẹn %s: %v", data.AppointmentCode, err)
		}

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email lịch hẹn cho %s: %v", to, err)
		}
	}()
}

// PromotionStatusData dữ liệu cho email thông báo trạng thái khuyến mãi
type PromotionStatusData struct {
	PromotionCode   string
	EventTitle      string
	PackageType     string
	Status          string
	RejectionReason string
}

// SendPromotionStatusEmail báo cho chủ sở hữu khi gói quảng bá đổi trạng thái (async)
func SendPromotionStatusEmail(to string, data PromotionStatusData) {
	go func() {
		tmplPath := "templates/promotion_status.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("Lỗi load template email khuyến mãi: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email khuyến mãi: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		port, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))

		m := gomail.NewMessage()
		m.SetHeader("From", os.Getenv("SMTP_FROM"))
		m.SetHeader("To", to)
		m.SetHeader("Subject", fmt.Sprintf("Gói quảng bá #%s: %s", data.PromotionCode, data.Status))
		m.SetBody("text/html", body.String())

		d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
		if err := d.DialAndSend(m); err != nil {
			log.Printf("Lỗi gửi email khuyến mãi: %v", err)
		}
	}()
}
