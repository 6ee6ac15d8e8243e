package services

import (
	"fmt"
	"log"

	"eventbuddy-server/models"
	"eventbuddy-server/storage"
	"eventbuddy-server/utils"
)

// NotificationService writes in-app notification rows and fans out
// best-effort email. It never fails the calling request.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// notify persists an in-app notification and optionally mails the user.
func (ns *NotificationService) notify(userID uint, notifType, title, message, refType string, refID uint, email bool) {
	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		RefType: refType,
		RefID:   refID,
	}
	if err := storage.DB.Create(&notification).Error; err != nil {
		log.Printf("notification: failed to persist %s for user %d: %v", notifType, userID, err)
		return
	}

	if !email {
		return
	}

	var user models.User
	if err := storage.DB.Select("id, email, name").First(&user, userID).Error; err != nil {
		return
	}
	html := fmt.Sprintf("<p>Hi %s,</p><p>%s</p>", user.Name, message)
	if _, err := utils.SendMail(user.Email, title, html); err != nil {
		log.Printf("notification: mail %q to user %d failed: %v", title, userID, err)
	}
}

// SendWelcome greets a freshly registered account. Best-effort: registration
// has already committed by the time this runs.
func (ns *NotificationService) SendWelcome(userID uint, name string) {
	ns.notify(userID, "welcome", "Welcome to EventBuddy!",
		fmt.Sprintf("Hi %s, your account is ready. Start planning your first event.", name),
		"", 0, true)
}

// SendBookingRequested tells a vendor owner a new service request arrived.
func (ns *NotificationService) SendBookingRequested(vendorOwnerID uint, bookingID uint, eventTitle, businessName string) {
	ns.notify(vendorOwnerID, "booking_requested", "New booking request",
		fmt.Sprintf("You have a new booking request for %q at %s.", eventTitle, businessName),
		"booking", bookingID, true)
}

// SendBookingStatusChanged tells the booking owner about a status move.
func (ns *NotificationService) SendBookingStatusChanged(userID uint, bookingID uint, businessName, status string) {
	ns.notify(userID, "booking_"+status, "Booking "+status,
		fmt.Sprintf("Your booking with %s is now %s.", businessName, status),
		"booking", bookingID, true)
}

// SendReviewReceived tells a vendor owner a review landed.
func (ns *NotificationService) SendReviewReceived(vendorOwnerID uint, reviewID uint, rating int) {
	ns.notify(vendorOwnerID, "review_received", "New review",
		fmt.Sprintf("A client left you a %d-star review.", rating),
		"review", reviewID, false)
}
