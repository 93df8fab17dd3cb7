package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/diewo77/go-shopchat/internal/models"
	"github.com/diewo77/go-shopchat/internal/store"
)

func seedHandlerUser(t *testing.T, st *store.Store, username string) models.UserProfile {
	t.Helper()
	u := models.UserProfile{Username: username, Email: username + "@example.com", PasswordHash: "x", IsActive: true}
	if err := st.CreateUserProfile(&u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestOrderCreateJSON(t *testing.T) {
	st := setupTestStore(t)
	h := NewOrderHandler(st)
	u := seedHandlerUser(t, st, "ada")
	p1 := seedHandlerProduct(t, st, "Wireless Mouse", 29.99, 5)
	p2 := seedHandlerProduct(t, st, "Mechanical Keyboard", 89.90, 3)

	body := `{"user_id":` + strconv.Itoa(int(u.ID)) + `,"product_ids":[` + strconv.Itoa(int(p1.ID)) + `,` + strconv.Itoa(int(p2.ID)) + `]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%s", w.Code, w.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["status"] != "PENDING" {
		t.Fatalf("new orders start PENDING: %v", created)
	}
	if total := created["total_price"].(float64); total < 119.88 || total > 119.90 {
		t.Fatalf("total = %v, want 119.89", total)
	}
}

func TestOrderCreateRequiresProducts(t *testing.T) {
	st := setupTestStore(t)
	h := NewOrderHandler(st)
	u := seedHandlerUser(t, st, "ada")

	body := `{"user_id":` + strconv.Itoa(int(u.ID)) + `,"product_ids":[]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("an order needs at least one product, got %d", w.Code)
	}
}

func TestOrderCreateUnknownUser(t *testing.T) {
	st := setupTestStore(t)
	h := NewOrderHandler(st)
	p := seedHandlerProduct(t, st, "Wireless Mouse", 29.99, 5)

	body := `{"user_id":9999,"product_ids":[` + strconv.Itoa(int(p.ID)) + `]}`
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Create(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("unknown user is a foreign key conflict, got %d body=%s", w.Code, w.Body.String())
	}
}

func TestOrderStatusUpdate(t *testing.T) {
	st := setupTestStore(t)
	h := NewOrderHandler(st)
	u := seedHandlerUser(t, st, "ada")
	p := seedHandlerProduct(t, st, "Wireless Mouse", 29.99, 5)
	o := models.Order{UserID: u.ID}
	if err := st.CreateOrder(&o, []uint{p.ID}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	idStr := strconv.Itoa(int(o.ID))
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+idStr, strings.NewReader(`{"status":"SHIPPED"}`))
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}

	// Backward transition rejected.
	req = httptest.NewRequest(http.MethodPatch, "/orders/"+idStr, strings.NewReader(`{"status":"PENDING"}`))
	req.SetPathValue("id", idStr)
	w = httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("backward transition must 409, got %d", w.Code)
	}
}

// Replacing the product set through the API recomputes the total.
func TestOrderProductSetUpdate(t *testing.T) {
	st := setupTestStore(t)
	h := NewOrderHandler(st)
	u := seedHandlerUser(t, st, "ada")
	p1 := seedHandlerProduct(t, st, "Wireless Mouse", 29.99, 5)
	p2 := seedHandlerProduct(t, st, "Mechanical Keyboard", 89.90, 3)
	o := models.Order{UserID: u.ID}
	if err := st.CreateOrder(&o, []uint{p1.ID}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	idStr := strconv.Itoa(int(o.ID))
	body := `{"product_ids":[` + strconv.Itoa(int(p2.ID)) + `]}`
	req := httptest.NewRequest(http.MethodPut, "/orders/"+idStr, strings.NewReader(body))
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var got map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if total := got["total_price"].(float64); total < 89.89 || total > 89.91 {
		t.Fatalf("total = %v, want 89.90", total)
	}
}

// A payload carrying both a status change and a bad product set must fail
// without keeping the status change.
func TestOrderMixedUpdateRollsBack(t *testing.T) {
	st := setupTestStore(t)
	h := NewOrderHandler(st)
	u := seedHandlerUser(t, st, "ada")
	p := seedHandlerProduct(t, st, "Wireless Mouse", 29.99, 5)
	o := models.Order{UserID: u.ID}
	if err := st.CreateOrder(&o, []uint{p.ID}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	idStr := strconv.Itoa(int(o.ID))
	body := `{"status":"SHIPPED","product_ids":[9999]}`
	req := httptest.NewRequest(http.MethodPatch, "/orders/"+idStr, strings.NewReader(body))
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()
	h.Update(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("unknown product must 409, got %d body=%s", w.Code, w.Body.String())
	}

	got, err := st.GetOrder(o.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.OrderStatusPending {
		t.Fatalf("status must survive unchanged, got %s", got.Status)
	}
}

// Products nested in an order response carry the same derived availability
// flag as the product routes.
func TestOrderResponseNestedProductAvailability(t *testing.T) {
	st := setupTestStore(t)
	h := NewOrderHandler(st)
	u := seedHandlerUser(t, st, "ada")
	p := seedHandlerProduct(t, st, "Travel Guide", 24.50, 0)
	o := models.Order{UserID: u.ID}
	if err := st.CreateOrder(&o, []uint{p.ID}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	idStr := strconv.Itoa(int(o.ID))
	req := httptest.NewRequest(http.MethodGet, "/orders/"+idStr, nil)
	req.SetPathValue("id", idStr)
	w := httptest.NewRecorder()
	h.Get(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	var got struct {
		Products []map[string]any `json:"products"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Products) != 1 {
		t.Fatalf("expected 1 nested product, got %d", len(got.Products))
	}
	avail, ok := got.Products[0]["is_available"].(bool)
	if !ok || avail {
		t.Fatalf("zero-stock nested product must report is_available=false: %v", got.Products[0])
	}
}

func TestOrderListEmptyArray(t *testing.T) {
	st := setupTestStore(t)
	h := NewOrderHandler(st)

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	w := httptest.NewRecorder()
	h.List(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if body := strings.TrimSpace(w.Body.String()); body != "[]" {
		t.Fatalf("expected empty array, got %s", body)
	}
}
