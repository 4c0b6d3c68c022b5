package dto

import "testing"

func TestUpdateLessonRequestChangesMapsOrderToPosition(t *testing.T) {
	order := int32(3)
	req := &UpdateLessonRequest{Order: &order}

	changes := req.Changes()

	if got, ok := changes["position"]; !ok || got.(int32) != 3 {
		t.Errorf("position = %v, want 3", got)
	}
	if _, ok := changes["order"]; ok {
		t.Error("wire name order must not leak into the change set")
	}
}

func TestCreateLessonRequestToModelKeepsOrder(t *testing.T) {
	req := &CreateLessonRequest{CourseID: 1, Title: "مقدمة", Type: "video", Order: 2}
	lesson := req.ToModel()
	if lesson.Order != 2 {
		t.Errorf("order = %d, want 2", lesson.Order)
	}
}

func TestCreateSubscriptionRequestDefaultsPaymentStatus(t *testing.T) {
	req := &CreateSubscriptionRequest{UserEmail: "x@example.com", CourseID: 1}
	sub := req.ToModel()
	if sub.PaymentStatus != "pending" {
		t.Errorf("payment status = %q, want pending", sub.PaymentStatus)
	}
}
