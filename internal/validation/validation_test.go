package validation

import (
	"testing"
	"time"

	"github.com/diewo77/go-shopchat/internal/models"
)

func hasViolation(v Violations, field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

func validProduct() models.Product {
	return models.Product{
		Name:            "Wireless Mouse",
		Description:     "Compact wireless mouse with USB receiver",
		Price:           29.99,
		StockQuantity:   10,
		Category:        "Electronics",
		ManufactureDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestProductValid(t *testing.T) {
	if v := Product(validProduct()); !v.Empty() {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestProductCollectsAllViolations(t *testing.T) {
	// Every field breaks a constraint; the manufacture date is zero.
	p := models.Product{
		Name:          "x!",
		Description:   "short",
		Price:         -1,
		StockQuantity: 10000000,
		Category:      "42",
		Image:         "mouse.bmp",
	}
	v := Product(p)
	for _, field := range []string{"name", "description", "price", "stock_quantity", "category", "image", "manufacture_date"} {
		if !hasViolation(v, field) {
			t.Errorf("expected violation on %s, got %v", field, v)
		}
	}
	if len(v) < 7 {
		t.Errorf("expected every violation collected, got %d: %v", len(v), v)
	}
}

func TestProductBounds(t *testing.T) {
	p := validProduct()
	p.Price = 999999.99
	p.StockQuantity = 999999
	if v := Product(p); !v.Empty() {
		t.Fatalf("upper bounds are inclusive, got %v", v)
	}
	p.Price = 1000000
	if v := Product(p); !hasViolation(v, "price") {
		t.Error("price above max should violate")
	}
}

func TestUserProfilePhonePattern(t *testing.T) {
	// 10-14 digits with an optional leading +; empty is allowed. The failing
	// rows are 9 digits, 15 digits, spaces and letters.
	tests := []struct {
		phone string
		ok    bool
	}{
		{"", true},
		{"+33123456789", true},
		{"0123456789", true},
		{"12345678901234", true},
		{"123456789", false},
		{"123456789012345", false},
		{"+33 1 23 45 67", false},
		{"phone1234567", false},
	}
	for _, tt := range tests {
		u := models.UserProfile{Username: "u", Email: "u@example.com", PhoneNumber: tt.phone}
		v := UserProfile(u)
		if got := !hasViolation(v, "phone_number"); got != tt.ok {
			t.Errorf("phone %q: ok=%v, want %v", tt.phone, got, tt.ok)
		}
	}
}

func TestUserProfileAddressLength(t *testing.T) {
	u := models.UserProfile{Username: "u", Email: "u@example.com", Address: "too short"}
	if v := UserProfile(u); !hasViolation(v, "address") {
		t.Error("9 char address should violate")
	}
	u.Address = "10 chars.."
	if v := UserProfile(u); hasViolation(v, "address") {
		t.Error("10 char address should pass")
	}
	u.Address = ""
	if v := UserProfile(u); hasViolation(v, "address") {
		t.Error("empty address is allowed")
	}
}

func TestUserProfilePreferredCategories(t *testing.T) {
	u := models.UserProfile{Username: "u", Email: "u@example.com", PreferredCategories: "Electronics, Books 2"}
	if v := UserProfile(u); hasViolation(v, "preferred_categories") {
		t.Error("alphanumeric comma-separated categories should pass")
	}
	u.PreferredCategories = "Books; Games"
	if v := UserProfile(u); !hasViolation(v, "preferred_categories") {
		t.Error("semicolon should violate the category pattern")
	}
}

func TestUserProfileBirthDateNotFuture(t *testing.T) {
	future := time.Now().Add(48 * time.Hour)
	u := models.UserProfile{Username: "u", Email: "u@example.com", BirthDate: &future}
	if v := UserProfile(u); !hasViolation(v, "birth_date") {
		t.Error("future birth date should violate")
	}
	past := time.Now().Add(-48 * time.Hour)
	u.BirthDate = &past
	if v := UserProfile(u); hasViolation(v, "birth_date") {
		t.Error("past birth date should pass")
	}
}

func TestImageReference(t *testing.T) {
	tests := []struct {
		path string
		ok   bool
	}{
		{"", true},
		{"profiles/me.jpg", true},
		{"me.JPEG", true},
		{"pic.png", true},
		{"anim.gif", true},
		{"doc.pdf", false},
		{"noext", false},
	}
	for _, tt := range tests {
		var v Violations
		ImageReference("image", tt.path, &v)
		if got := v.Empty(); got != tt.ok {
			t.Errorf("image %q: ok=%v, want %v", tt.path, got, tt.ok)
		}
	}
}

func TestOrderViolations(t *testing.T) {
	o := models.Order{UserID: 0, Status: "WRONG", TotalPrice: -5}
	v := Order(o)
	for _, field := range []string{"user_id", "status", "total_price"} {
		if !hasViolation(v, field) {
			t.Errorf("expected violation on %s", field)
		}
	}
	o = models.Order{UserID: 1, Status: models.OrderStatusPending, TotalPrice: 0}
	if v := Order(o); !v.Empty() {
		t.Fatalf("expected no violations, got %v", v)
	}
}

func TestChatMessageViolations(t *testing.T) {
	m := models.ChatMessage{ChatSessionID: 0, MessageType: "SYSTEM", Content: ""}
	v := ChatMessage(m)
	for _, field := range []string{"chat_session_id", "message_type", "content"} {
		if !hasViolation(v, field) {
			t.Errorf("expected violation on %s", field)
		}
	}
	// No alternation requirement: two USER messages in a row are both fine.
	m = models.ChatMessage{ChatSessionID: 1, MessageType: models.MessageTypeUser, Content: "hi"}
	if v := ChatMessage(m); !v.Empty() {
		t.Fatalf("expected no violations, got %v", v)
	}
}
