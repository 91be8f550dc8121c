package services

import (
	"lumera_back_end/internal/models"
	"lumera_back_end/internal/utils"
)

// MailNotifier : passerelle de notification SMTP. Les appelants traitent
// chaque envoi comme best-effort.
type MailNotifier struct{}

func NewMailNotifier() *MailNotifier {
	return &MailNotifier{}
}

func (n *MailNotifier) SendOrderConfirmation(order models.Order) error {
	return utils.SendOrderConfirmationEmail(order)
}

func (n *MailNotifier) SendStatusUpdate(order models.Order, newStatus models.OrderStatus) error {
	return utils.SendOrderStatusEmail(order, newStatus)
}
