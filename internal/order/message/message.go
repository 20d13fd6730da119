// Package message renders every user-visible reply the bot sends. Rendering
// is kept free of I/O so the texts can be tested on their own; emphasis uses
// Telegram Markdown.
package message

import (
	"fmt"
	"strings"
	"time"

	"knox-bundles/internal/domain"
)

func Welcome() string {
	return "Welcome to the Knox Bundles bot! Tap the menu button to browse bundles and place an order."
}

// Confirmation is the reply to a successful submission. It must contain the
// generated reference: the customer quotes it in the manual payment.
func Confirmation(order domain.Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Thanks %s! Your order for *%s* (%s) has been received.\n\n", order.Name, order.Bundle, order.Price)
	fmt.Fprintf(&b, "Reference: *%s*\n\n", order.Reference)
	b.WriteString("Pay via Mobile Money and include this reference in the payment note. Your bundle is sent as soon as the payment is confirmed.")

	return b.String()
}

func OrderList(orders []domain.Order) string {
	var b strings.Builder

	b.WriteString("*Recent orders*\n")
	for _, order := range orders {
		fmt.Fprintf(&b, "\n%s — %s (%s, %s) — *%s*%s",
			order.Reference, order.Name, order.Bundle, order.Price, order.Status, submittedSuffix(order.SubmittedAt))
	}

	return b.String()
}

func Confirmed(order domain.Order) string {
	return fmt.Sprintf("Order *%s* for %s is now *%s*.", order.Reference, order.Name, order.Status)
}

func NoOrders() string {
	return "No orders yet."
}

func NotFound(reference string) string {
	return fmt.Sprintf("No order with reference *%s* was found. Check the code and try again.", reference)
}

func Unauthorized() string {
	return "Sorry, this command is for the shop operator only."
}

func Unavailable() string {
	return "The order ledger is temporarily unavailable. Please try again in a moment."
}

func InvalidSubmission() string {
	return "Your order could not be read. Please fill in all fields on the order form and submit again."
}

func MissingReference() string {
	return "Usage: /confirm <reference>"
}

func submittedSuffix(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return fmt.Sprintf(" — %s", t.Format("Jan 2 15:04"))
}
