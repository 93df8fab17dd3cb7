package validation

import (
	"regexp"

	"github.com/diewo77/go-shopchat/internal/models"
)

// Field patterns shared by the entity validators.
var (
	phonePattern       = regexp.MustCompile(`^\+?[0-9]{10,14}$`)
	categoriesPattern  = regexp.MustCompile(`^[A-Za-z0-9,\s]+$`)
	productNamePattern = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)
	categoryPattern    = regexp.MustCompile(`^[A-Za-z ]+$`)
)

// MaxPrice bounds every monetary amount in the system.
const MaxPrice = 999999.99

// MaxStock bounds product stock quantities.
const MaxStock = 999999

// UserProfile runs every field constraint on a profile and returns all
// violations. Uniqueness of username/email needs a store lookup and is
// checked by the persistence layer.
func UserProfile(u models.UserProfile) Violations {
	var v Violations
	Required("username", u.Username, &v)
	Length("username", u.Username, 1, 150, &v)
	Required("email", u.Email, &v)
	Length("email", u.Email, 3, 255, &v)
	Length("address", u.Address, 10, 500, &v)
	Pattern("phone_number", u.PhoneNumber, phonePattern, &v)
	Pattern("preferred_categories", u.PreferredCategories, categoriesPattern, &v)
	NotFuture("birth_date", u.BirthDate, &v)
	ImageReference("profile_picture", u.ProfilePicture, &v)
	return v
}

// Product runs every field constraint on a catalog item.
func Product(p models.Product) Violations {
	var v Violations
	Required("name", p.Name, &v)
	Length("name", p.Name, 3, 255, &v)
	Pattern("name", p.Name, productNamePattern, &v)
	Required("description", p.Description, &v)
	Length("description", p.Description, 10, 2000, &v)
	RangeFloat("price", p.Price, 0, MaxPrice, &v)
	RangeInt("stock_quantity", p.StockQuantity, 0, MaxStock, &v)
	Required("category", p.Category, &v)
	Length("category", p.Category, 2, 100, &v)
	Pattern("category", p.Category, categoryPattern, &v)
	ImageReference("image", p.Image, &v)
	if p.ManufactureDate.IsZero() {
		v.Add("manufacture_date", "required")
	}
	return v
}

// Order checks field constraints on an order. Existence of the owning user
// and the referenced products is checked by the persistence layer.
func Order(o models.Order) Violations {
	var v Violations
	if o.UserID == 0 {
		v.Add("user_id", "required")
	}
	if !o.Status.Valid() {
		v.Add("status", "invalid_status")
	}
	RangeFloat("total_price", o.TotalPrice, 0, MaxPrice, &v)
	return v
}

// ChatSession checks field constraints on a session.
func ChatSession(s models.ChatSession) Violations {
	var v Violations
	if s.UserID == 0 {
		v.Add("user_id", "required")
	}
	return v
}

// ChatMessage checks field constraints on a message. USER/BOT turns are not
// required to alternate within a session.
func ChatMessage(m models.ChatMessage) Violations {
	var v Violations
	if m.ChatSessionID == 0 {
		v.Add("chat_session_id", "required")
	}
	if !m.MessageType.Valid() {
		v.Add("message_type", "invalid_message_type")
	}
	Required("content", m.Content, &v)
	Length("content", m.Content, 1, 5000, &v)
	return v
}
