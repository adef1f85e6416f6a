package services

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/Rakhulsr/vendoz/app/models"
	"github.com/Rakhulsr/vendoz/app/utils/format"
)

const OrderConfirmationSubject = "Your Order Confirmation"

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Funcs(template.FuncMap{
	"money": format.Money,
}).Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Order Confirmation</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <h2>Order Confirmation</h2>
  <p>Thank you for your order!</p>
  <p><strong>Order ID:</strong> {{.ID}}</p>
  <p><strong>Total:</strong> {{money .TotalAmount}}</p>
  <p><strong>Payment Status:</strong> {{.PaymentStatus}}</p>
  <h3>Items:</h3>
  <ul>
  {{- range .Items}}
    <li>{{.Name}} &times; {{.Quantity}} &mdash; {{money .Price}}</li>
  {{- end}}
  </ul>
  <h3>Shipping Address:</h3>
  <p>{{.ShippingAddress.Address}}, {{.ShippingAddress.City}}</p>
  <p>{{.ShippingAddress.PhoneNumber}}</p>
</body>
</html>`))

var replyTmpl = template.Must(template.New("reply").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Subject}}</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  {{- range .Paragraphs}}
  <p>{{.}}</p>
  {{- end}}
</body>
</html>`))

// BuildOrderConfirmationEmail renders the html and plain-text bodies for a placed order.
func BuildOrderConfirmationEmail(order *models.Order) (string, string, error) {
	var html bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&html, order); err != nil {
		return "", "", fmt.Errorf("render order confirmation: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Order ID: %s\nTotal: %s\nPayment: %s\n\nItems:\n", order.ID, format.Money(order.TotalAmount), order.PaymentStatus)
	for _, item := range order.Items {
		fmt.Fprintf(&text, "%s x %d - %s\n", item.Name, item.Quantity, format.Money(item.Price))
	}
	return html.String(), text.String(), nil
}

func BuildReplyEmail(subject, message string) (string, error) {
	var html bytes.Buffer
	data := struct {
		Subject    string
		Paragraphs []string
	}{Subject: subject, Paragraphs: strings.Split(message, "\n")}
	if err := replyTmpl.Execute(&html, data); err != nil {
		return "", fmt.Errorf("render reply: %w", err)
	}
	return html.String(), nil
}
