package payments

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"eduplace-go/pkg/enrollment"
	"eduplace-go/pkg/initial"
	"eduplace-go/pkg/kfka"
	"eduplace-go/pkg/models"
	"fmt"
	"github.com/segmentio/kafka-go"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

type WebhookOrder struct {
	ID              int64  `json:"id"`
	MerchantOrderID string `json:"merchant_order_id"`
}

type WebhookSourceData struct {
	Pan     string `json:"pan"`
	SubType string `json:"sub_type"`
	Type    string `json:"type"`
}

type WebhookTransaction struct {
	AmountCents          int64             `json:"amount_cents"`
	CreatedAt            string            `json:"created_at"`
	Currency             string            `json:"currency"`
	ErrorOccured         bool              `json:"error_occured"`
	HasParentTransaction bool              `json:"has_parent_transaction"`
	ID                   int64             `json:"id"`
	IntegrationID        int64             `json:"integration_id"`
	Is3DSecure           bool              `json:"is_3d_secure"`
	IsAuth               bool              `json:"is_auth"`
	IsCapture            bool              `json:"is_capture"`
	IsRefunded           bool              `json:"is_refunded"`
	IsStandalonePayment  bool              `json:"is_standalone_payment"`
	IsVoided             bool              `json:"is_voided"`
	Order                WebhookOrder      `json:"order"`
	Owner                int64             `json:"owner"`
	Pending              bool              `json:"pending"`
	SourceData           WebhookSourceData `json:"source_data"`
	Success              bool              `json:"success"`
}

type WebhookPayload struct {
	Type string             `json:"type"`
	Obj  WebhookTransaction `json:"obj"`
}

// ConcatFields собирает строку для подписи в порядке, зафиксированном шлюзом.
func ConcatFields(t WebhookTransaction) string {
	var b strings.Builder
	b.WriteString(fmt.Sprint(t.AmountCents))
	b.WriteString(t.CreatedAt)
	b.WriteString(t.Currency)
	b.WriteString(fmt.Sprint(t.ErrorOccured))
	b.WriteString(fmt.Sprint(t.HasParentTransaction))
	b.WriteString(fmt.Sprint(t.ID))
	b.WriteString(fmt.Sprint(t.IntegrationID))
	b.WriteString(fmt.Sprint(t.Is3DSecure))
	b.WriteString(fmt.Sprint(t.IsAuth))
	b.WriteString(fmt.Sprint(t.IsCapture))
	b.WriteString(fmt.Sprint(t.IsRefunded))
	b.WriteString(fmt.Sprint(t.IsStandalonePayment))
	b.WriteString(fmt.Sprint(t.IsVoided))
	b.WriteString(fmt.Sprint(t.Order.ID))
	b.WriteString(fmt.Sprint(t.Owner))
	b.WriteString(fmt.Sprint(t.Pending))
	b.WriteString(t.SourceData.Pan)
	b.WriteString(t.SourceData.SubType)
	b.WriteString(t.SourceData.Type)
	b.WriteString(fmt.Sprint(t.Success))
	return b.String()
}

func CalculateHMAC(t WebhookTransaction, secret string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(ConcatFields(t)))
	return hex.EncodeToString(mac.Sum(nil))
}

func VerifyHMAC(t WebhookTransaction, secret, got string) bool {
	expected := CalculateHMAC(t, secret)
	return hmac.Equal([]byte(expected), []byte(got))
}

// Webhook монтируется до middleware авторизации, тело читается как есть.
func Webhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Не удалось прочитать тело запроса", http.StatusBadRequest)
		return
	}
	var payload WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, "Ошибка с декодированием", http.StatusBadRequest)
		return
	}

	got := r.URL.Query().Get("hmac")
	if !VerifyHMAC(payload.Obj, os.Getenv("GATEWAY_HMAC_SECRET"), got) {
		http.Error(w, "Подпись не совпадает", http.StatusUnauthorized)
		return
	}

	var payment models.Payment
	result := initial.DB.Where("merchant_order_id = ?", payload.Obj.Order.MerchantOrderID).First(&payment)
	if result.Error != nil {
		http.Error(w, "Оплата не найдена", http.StatusNotFound)
		return
	}
	// повторная доставка для уже оплаченного заказа безопасна
	if payment.Status == "оплачен" {
		w.WriteHeader(http.StatusOK)
		return
	}

	if payload.Obj.Success {
		now := time.Now()
		payment.Status = "оплачен"
		payment.TransactionID = fmt.Sprint(payload.Obj.ID)
		payment.PaidAt = &now
		if err := initial.DB.Save(&payment).Error; err != nil {
			http.Error(w, "Не удалось обновить оплату", http.StatusInternalServerError)
			return
		}
		if _, err := enrollment.CreateEnrollment(payment.UserID, payment.CourseID); err != nil {
			log.Println("Не удалось создать запись на курс:", err)
		}
		sendReceipt(payment)
	} else {
		payment.Status = "ошибка"
		payment.TransactionID = fmt.Sprint(payload.Obj.ID)
		if err := initial.DB.Save(&payment).Error; err != nil {
			http.Error(w, "Не удалось обновить оплату", http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

func sendReceipt(payment models.Payment) {
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_ADDRESS")),
		Topic:    "payment_notifications",
		Balancer: &kafka.LeastBytes{},
	}
	defer kafkaWriter.Close()
	var user models.User
	initial.DB.First(&user, payment.UserID)
	var course models.Course
	initial.DB.First(&course, payment.CourseID)
	event := kfka.NotificationPayment{
		PaymentID:       payment.ID,
		UserID:          payment.UserID,
		CourseID:        payment.CourseID,
		Email:           user.Email,
		CourseName:      course.TitleRu,
		Amount:          payment.Amount,
		MerchantOrderID: payment.MerchantOrderID,
		Status:          payment.Status,
		Event:           "Оплата курса прошла успешно",
	}
	if err := event.SendNotPayment(kafkaWriter); err != nil {
		log.Println("Не удалось отправить сообщение Kafka:", err)
	}
}
