package utils

import (
	"fmt"
	"log"
	"os"

	"lumera_back_end/internal/models"
)

// SendOrderConfirmationEmail envoie le récapitulatif de commande avec le QR
// de virement SEPA
func SendOrderConfirmationEmail(order models.Order) error {
	html := GenerateOrderConfirmationHTML(order)
	if err := SendEmail(order.Email, "🕯️ Confirmation de votre commande - Lumera", html); err != nil {
		log.Printf("❌ Erreur envoi email confirmation: %v", err)
		return err
	}

	log.Printf("📧 Confirmation de commande envoyée à %s", order.Email)
	return nil
}

// SendOrderStatusEmail envoie un email de notification de changement de statut
func SendOrderStatusEmail(order models.Order, newStatus models.OrderStatus) error {
	subject := getStatusEmailSubject(newStatus)
	html := generateStatusEmailHTML(order, newStatus)

	if err := SendEmail(order.Email, subject, html); err != nil {
		log.Printf("❌ Erreur envoi email statut: %v", err)
		return err
	}

	log.Printf("📧 Email de statut envoyé: %s → %s", newStatus, order.Email)
	return nil
}

func getStatusEmailSubject(status models.OrderStatus) string {
	switch status {
	case models.StatusAccepted:
		return "✅ Commande acceptée - Lumera"
	case models.StatusSent:
		return "📦 Votre commande a été expédiée - Lumera"
	case models.StatusReceived:
		return "🎉 Votre commande a été livrée - Lumera"
	case models.StatusCanceled:
		return "❌ Commande annulée - Lumera"
	default:
		return "📋 Mise à jour de votre commande - Lumera"
	}
}

func getStatusMessage(status models.OrderStatus) string {
	switch status {
	case models.StatusAccepted:
		return "Bonne nouvelle ! Votre commande a été acceptée et part en préparation."
	case models.StatusSent:
		return "Vos bougies sont en route. Le transporteur vous contactera à la livraison."
	case models.StatusReceived:
		return "Votre commande a bien été livrée. Merci pour votre confiance !"
	case models.StatusCanceled:
		return "Votre commande a été annulée. Contactez-nous si ce n'était pas voulu."
	default:
		return "Le statut de votre commande a été mis à jour."
	}
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande
func GenerateOrderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border: 1px solid #ddd;">%s</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%d</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%.2f€</td>
				<td style="padding: 8px; border: 1px solid #ddd;">%.2f€</td>
			</tr>`, item.ProductID, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	// QR de virement SEPA : la boutique encaisse par virement, pas de
	// paiement en ligne
	qrHTML := ""
	iban := os.Getenv("COMPANY_IBAN")
	bic := os.Getenv("COMPANY_BIC")
	if iban != "" && bic != "" {
		ref := fmt.Sprintf("CMD-%s", order.ID)
		if qr, err := GenerateSepaQR(iban, bic, "Lumera", ref, order.AmountOrder); err == nil {
			qrHTML = fmt.Sprintf(`
		<h3>Paiement par virement</h3>
		<p>Scannez ce QR code avec votre application bancaire (communication : %s) :</p>
		<img src="%s" alt="QR SEPA" width="180" height="180"/>`, ref, qr)
		} else {
			log.Printf("⚠️ Erreur génération QR SEPA: %v", err)
		}
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #faf7f2; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">🕯️ Merci pour votre commande, %s !</h2>
		<p>Votre commande n°%s a bien été enregistrée.</p>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0ece3;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Produit</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total (livraison incluse):</td>
					<td style="padding: 10px; font-weight: bold;">%.2f€</td>
				</tr>
			</tfoot>
		</table>
		%s
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Lumera</strong>
		</p>
	</div>
</body>
</html>`, order.FirstName, order.ID, itemsHTML, order.AmountOrder, qrHTML)
}

func generateStatusEmailHTML(order models.Order, status models.OrderStatus) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<title>Mise à jour de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #faf7f2; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Mise à jour de votre commande</h2>
		<p>%s</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0; background-color: #f8f9fa; border-radius: 8px;">
			<tr>
				<td style="padding: 8px;"><strong>Numéro de commande:</strong></td>
				<td style="padding: 8px; text-align: right;">#%s</td>
			</tr>
			<tr>
				<td style="padding: 8px;"><strong>Nouveau statut:</strong></td>
				<td style="padding: 8px; text-align: right;">%s</td>
			</tr>
			<tr>
				<td style="padding: 8px;"><strong>Montant total:</strong></td>
				<td style="padding: 8px; text-align: right; font-weight: 600;">%.2f€</td>
			</tr>
		</table>
		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Lumera</strong>
		</p>
	</div>
</body>
</html>`, getStatusMessage(status), order.ID, status, order.AmountOrder)
}

// SendPasswordResetEmail envoie le lien de réinitialisation
func SendPasswordResetEmail(email, name, token string) error {
	frontURL := os.Getenv("FRONTEND_URL")
	if frontURL == "" {
		frontURL = "http://localhost:3000"
	}
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", frontURL, token)

	html := fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; padding: 20px;">
	<div style="max-width: 600px; margin: auto;">
		<h2>Réinitialisation de votre mot de passe</h2>
		<p>Bonjour %s,</p>
		<p>Cliquez sur le lien ci-dessous pour choisir un nouveau mot de passe (valable 1 heure) :</p>
		<p><a href="%s">%s</a></p>
		<p>Si vous n'êtes pas à l'origine de cette demande, ignorez cet email.</p>
	</div>
</body>
</html>`, name, resetLink, resetLink)

	return SendEmail(email, "🔑 Réinitialisation de mot de passe - Lumera", html)
}
