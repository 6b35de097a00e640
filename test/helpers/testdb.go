package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"promolink_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateUser создает пользователя с автоматическим хешированием пароля.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) error {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	user.IsVerified = true

	result := db.Create(user)
	if result.Error != nil {
		t.Logf("ОШИБКА: не удалось создать пользователя %s: %v", user.Email, result.Error)
		return result.Error
	}
	return nil
}

// CreateAndLoginUser создает пользователя и логинит его через API.
func CreateAndLoginUser(t *testing.T, ts *TestServer, name, email, password string, role models.UserRole) (string, *models.User) {
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: password, // сырой пароль, CreateUser захеширует
		Role:         role,
	}
	err := CreateUser(t, ts.DB, user)
	require.NoError(t, err, "Создание тестового пользователя не должно вызывать ошибку")

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		AccessToken string `json:"access_token"`
	}
	DecodeData(t, bodyStr, &loginResponse)
	assert.NotEmpty(t, loginResponse.AccessToken, "Токен не должен быть пустым")

	return loginResponse.AccessToken, user
}

// CreateAndLoginBrand создает бренд с уникальным email.
func CreateAndLoginBrand(t *testing.T, ts *TestServer) (string, *models.User, *models.BrandProfile) {
	email := fmt.Sprintf("brand_%d@test.com", time.Now().UnixNano())
	token, user := CreateAndLoginUser(t, ts, "Test Brand", email, "password123", models.UserRoleBrand)

	profile := &models.BrandProfile{
		UserID:      user.ID,
		CompanyName: "Test Brand Inc.",
		City:        "Almaty",
		IsVerified:  true,
	}
	result := ts.DB.Create(profile)
	require.NoError(t, result.Error, "Не удалось создать профиль бренда")

	return token, user, profile
}

// CreateAndLoginInfluencer создает инфлюенсера с уникальным email.
func CreateAndLoginInfluencer(t *testing.T, ts *TestServer) (string, *models.User, *models.InfluencerProfile) {
	email := fmt.Sprintf("influencer_%d@test.com", time.Now().UnixNano())
	token, user := CreateAndLoginUser(t, ts, "Test Influencer", email, "password123", models.UserRoleInfluencer)

	profile := &models.InfluencerProfile{
		UserID:         user.ID,
		DisplayName:    "Test Influencer",
		Platforms:      []string{"instagram"},
		Categories:     []string{"lifestyle"},
		FollowersCount: 12000,
		IsPublic:       true,
	}
	result := ts.DB.Create(profile)
	require.NoError(t, result.Error, "Не удалось создать профиль инфлюенсера")

	return token, user, profile
}

// CreateTestPost создает активную кампанию напрямую в БД.
func CreateTestPost(t *testing.T, db *gorm.DB, brandID, title string) models.Post {
	platforms, _ := json.Marshal([]string{"instagram"})
	categories, _ := json.Marshal([]string{"lifestyle"})

	post := models.Post{
		BrandID:     brandID,
		Title:       title,
		Description: "Test campaign description",
		RewardMin:   10000,
		RewardMax:   50000,
		Platforms:   datatypes.JSON(platforms),
		Categories:  datatypes.JSON(categories),
		Status:      models.PostStatusActive,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("Не удалось создать тестовую кампанию: %v", err)
	}
	return post
}

// CreateTestSubmission создает заявку напрямую в БД.
func CreateTestSubmission(t *testing.T, db *gorm.DB, postID, influencerID string, status models.SubmissionStatus) models.Submission {
	sub := models.Submission{
		PostID:       postID,
		InfluencerID: influencerID,
		Status:       status,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("Не удалось создать тестовую заявку: %v", err)
	}
	return sub
}
