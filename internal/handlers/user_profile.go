package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/diewo77/go-shopchat/internal/auth"
	"github.com/diewo77/go-shopchat/internal/httpx"
	"github.com/diewo77/go-shopchat/internal/models"
	"github.com/diewo77/go-shopchat/internal/store"
)

type UserProfileHandler struct {
	Store  *store.Store
	Hasher auth.Hasher
}

func NewUserProfileHandler(st *store.Store, hasher auth.Hasher) *UserProfileHandler {
	return &UserProfileHandler{Store: st, Hasher: hasher}
}

// userProfileResponse is the explicit allow-list view of a profile. The
// password hash never appears here.
type userProfileResponse struct {
	ID                  uint       `json:"id"`
	Username            string     `json:"username"`
	Email               string     `json:"email"`
	FirstName           string     `json:"first_name,omitempty"`
	LastName            string     `json:"last_name,omitempty"`
	Address             string     `json:"address,omitempty"`
	PhoneNumber         string     `json:"phone_number,omitempty"`
	PreferredCategories string     `json:"preferred_categories,omitempty"`
	BirthDate           *time.Time `json:"birth_date,omitempty"`
	ProfilePicture      string     `json:"profile_picture,omitempty"`
	IsPremiumUser       bool       `json:"is_premium_user"`
	IsStaff             bool       `json:"is_staff"`
	IsActive            bool       `json:"is_active"`
	DateJoined          time.Time  `json:"date_joined"`
}

func toUserProfileResponse(u models.UserProfile) userProfileResponse {
	return userProfileResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		FirstName:           u.FirstName,
		LastName:            u.LastName,
		Address:             u.Address,
		PhoneNumber:         u.PhoneNumber,
		PreferredCategories: u.PreferredCategories,
		BirthDate:           u.BirthDate,
		ProfilePicture:      u.ProfilePicture,
		IsPremiumUser:       u.IsPremiumUser,
		IsStaff:             u.IsStaff,
		IsActive:            u.IsActive,
		DateJoined:          u.DateJoined,
	}
}

// userProfileInput carries every writable field; Password is plaintext and
// only ever stored as a hash.
type userProfileInput struct {
	Username            *string    `json:"username"`
	Email               *string    `json:"email"`
	Password            *string    `json:"password"`
	FirstName           *string    `json:"first_name"`
	LastName            *string    `json:"last_name"`
	Address             *string    `json:"address"`
	PhoneNumber         *string    `json:"phone_number"`
	PreferredCategories *string    `json:"preferred_categories"`
	BirthDate           *time.Time `json:"birth_date"`
	ProfilePicture      *string    `json:"profile_picture"`
	IsPremiumUser       *bool      `json:"is_premium_user"`
	IsStaff             *bool      `json:"is_staff"`
	IsActive            *bool      `json:"is_active"`
}

func (h *UserProfileHandler) apply(in userProfileInput, u *models.UserProfile) error {
	if in.Username != nil {
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := h.Hasher.Hash(*in.Password)
		if err != nil {
			return err
		}
		u.PasswordHash = hash
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Address != nil {
		u.Address = *in.Address
	}
	if in.PhoneNumber != nil {
		u.PhoneNumber = *in.PhoneNumber
	}
	if in.PreferredCategories != nil {
		u.PreferredCategories = *in.PreferredCategories
	}
	if in.BirthDate != nil {
		u.BirthDate = in.BirthDate
	}
	if in.ProfilePicture != nil {
		u.ProfilePicture = *in.ProfilePicture
	}
	if in.IsPremiumUser != nil {
		u.IsPremiumUser = *in.IsPremiumUser
	}
	if in.IsStaff != nil {
		u.IsStaff = *in.IsStaff
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	return nil
}

func (h *UserProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.Store.ListUserProfiles()
	if err != nil {
		writeError(w, err)
		return
	}
	out := make([]userProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserProfileResponse(u))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func (h *UserProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in userProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if in.Password == nil || *in.Password == "" {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed",
			[]map[string]string{{"field": "password", "message": "required"}})
		return
	}
	// New accounts are active unless the payload says otherwise.
	u := models.UserProfile{IsActive: true}
	if err := h.apply(in, &u); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Store.CreateUserProfile(&u); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toUserProfileResponse(u))
}

func (h *UserProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	u, err := h.Store.GetUserProfile(id)
	if err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toUserProfileResponse(*u))
}

// Update handles both PUT and PATCH: fields absent from the payload keep
// their stored values, which makes a full update a superset of a partial one.
func (h *UserProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	u, err := h.Store.GetUserProfile(id)
	if err != nil {
		writeError(w, err)
		return
	}
	var in userProfileInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	if err := h.apply(in, u); err != nil {
		writeError(w, err)
		return
	}
	if err := h.Store.UpdateUserProfile(u); err != nil {
		writeError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toUserProfileResponse(*u))
}

// Delete hard-deletes a profile and cascades to its orders and chats.
// Deactivation (is_active=false via PATCH) is the soft-delete path.
func (h *UserProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return
	}
	if err := h.Store.DeleteUserProfile(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
