package email

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/Domenick1991/safaribooking/internal/kafka"
)

type Message struct {
	To      string
	Subject string
	Body    string
}

// Transport delivers a composed message. The default one only logs it.
type Transport interface {
	Deliver(ctx context.Context, msg Message) error
}

type logTransport struct{}

func (logTransport) Deliver(_ context.Context, msg Message) error {
	log.Printf("[EMAIL] to=%s subject=%q bytes=%d", msg.To, msg.Subject, len(msg.Body))
	return nil
}

type Sender struct {
	transport Transport
}

func NewSender() *Sender {
	return &Sender{transport: logTransport{}}
}

func NewSenderWithTransport(t Transport) *Sender {
	return &Sender{transport: t}
}

func (s *Sender) Send(ctx context.Context, n kafka.GuestNotification) error {
	if !strings.Contains(n.Email, "@") {
		return fmt.Errorf("notification %s: invalid recipient %q", n.BookingNumber, n.Email)
	}
	return s.transport.Deliver(ctx, Compose(n))
}

// Compose renders the guest-facing text for a notification.
func Compose(n kafka.GuestNotification) Message {
	name := n.GuestName
	if name == "" {
		name = "guest"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "Your booking %s is %s.\n", n.BookingNumber, n.Status)
	if n.Excursion != "" {
		fmt.Fprintf(&b, "Excursion: %s\n", n.Excursion)
	}
	if n.TourDate != "" {
		fmt.Fprintf(&b, "Tour date: %s\n", n.TourDate)
	}
	b.WriteString("\nWe look forward to seeing you on safari.\n")

	return Message{
		To:      n.Email,
		Subject: fmt.Sprintf("Booking %s %s", n.BookingNumber, n.Status),
		Body:    b.String(),
	}
}
