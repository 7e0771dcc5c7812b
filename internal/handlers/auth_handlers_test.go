package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/resale_market/internal/hash"
	"github.com/Skotchmaster/resale_market/internal/models"
	"github.com/Skotchmaster/resale_market/internal/service/token"
)

func TestGetJWTKnownEmail(t *testing.T) {
	db := initTestDB(t)
	tokens := &token.Service{Secret: []byte("test_secret")}
	h := &AuthHandler{DB: db, Tokens: tokens}

	require.NoError(t, db.Create(&models.User{Email: "buyer@example.com", Role: models.RoleBuyer}).Error)

	rec, c := doJSONRequest(t, http.MethodGet, "/jwt?email=buyer@example.com", nil)
	require.NoError(t, h.GetJWT(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.AccessToken)

	email, err := tokens.Parse(resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "buyer@example.com", email)
}

func TestGetJWTUnknownEmail(t *testing.T) {
	h := &AuthHandler{DB: initTestDB(t), Tokens: &token.Service{Secret: []byte("test_secret")}}

	rec, c := doJSONRequest(t, http.MethodGet, "/jwt?email=ghost@example.com", nil)
	require.NoError(t, h.GetJWT(c))
	require.Equal(t, http.StatusForbidden, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp, "accessToken")
	require.Nil(t, resp["accessToken"])
}

func TestLogin(t *testing.T) {
	db := initTestDB(t)
	h := &AuthHandler{DB: db, Tokens: &token.Service{Secret: []byte("test_secret")}}

	hashed, err := hash.HashPassword("password")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Email:        "seller@example.com",
		Role:         models.RoleSeller,
		PasswordHash: hashed,
	}).Error)

	rec, c := doJSONRequest(t, http.MethodPost, "/login", map[string]string{
		"email":    "seller@example.com",
		"password": "password",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, true, resp["status"])
	require.NotEmpty(t, resp["accessToken"])

	rec, c = doJSONRequest(t, http.MethodPost, "/login", map[string]string{
		"email":    "seller@example.com",
		"password": "wrong",
	})
	require.NoError(t, h.Login(c))
	require.Equal(t, http.StatusOK, rec.Code)
	status, _ := decodeStatus(t, rec)
	require.False(t, status)
}

func TestCheckUser(t *testing.T) {
	db := initTestDB(t)
	h := &UserHandler{DB: db}

	require.NoError(t, db.Create(&models.User{Email: "known@example.com", Role: models.RoleBuyer}).Error)

	rec, c := doJSONRequest(t, http.MethodGet, "/checkUser?email=known@example.com", nil)
	require.NoError(t, h.CheckUser(c))
	status, msg := decodeStatus(t, rec)
	require.True(t, status)
	require.Equal(t, "User already exists!", msg)

	rec, c = doJSONRequest(t, http.MethodGet, "/checkUser?email=nobody@example.com", nil)
	require.NoError(t, h.CheckUser(c))
	status, msg = decodeStatus(t, rec)
	require.False(t, status)
	require.Equal(t, "User doesn't exist!", msg)
}

func TestCreateUserDuplicate(t *testing.T) {
	h := &UserHandler{DB: initTestDB(t)}

	payload := map[string]string{"email": "dup@example.com", "name": "Dup", "role": "seller"}

	rec, c := doJSONRequest(t, http.MethodPost, "/user", payload)
	require.NoError(t, h.CreateUser(c))
	status, _ := decodeStatus(t, rec)
	require.True(t, status)

	rec, c = doJSONRequest(t, http.MethodPost, "/user", payload)
	require.NoError(t, h.CreateUser(c))
	status, msg := decodeStatus(t, rec)
	require.False(t, status)
	require.Equal(t, "User already exists!", msg)
}

func TestCreateUserRejectsUnknownRole(t *testing.T) {
	h := &UserHandler{DB: initTestDB(t)}

	rec, c := doJSONRequest(t, http.MethodPost, "/user", map[string]string{
		"email": "x@example.com",
		"role":  "superuser",
	})
	require.NoError(t, h.CreateUser(c))
	status, _ := decodeStatus(t, rec)
	require.False(t, status)
}

func TestVerifySeller(t *testing.T) {
	db := initTestDB(t)
	h := &UserHandler{DB: db}

	require.NoError(t, db.Create(&models.User{Email: "seller@example.com", Role: models.RoleSeller}).Error)

	rec, c := doJSONRequest(t, http.MethodPatch, "/user?email=seller@example.com", nil)
	require.NoError(t, h.VerifySeller(c))
	status, _ := decodeStatus(t, rec)
	require.True(t, status)

	var user models.User
	require.NoError(t, db.Where("email = ?", "seller@example.com").First(&user).Error)
	require.True(t, user.Verified)

	rec, c = doJSONRequest(t, http.MethodPatch, "/user?email=nobody@example.com", nil)
	require.NoError(t, h.VerifySeller(c))
	status, msg := decodeStatus(t, rec)
	require.False(t, status)
	require.Equal(t, "user not found", msg)
}
