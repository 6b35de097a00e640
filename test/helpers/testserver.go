package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"promolink_backend/database"
	"promolink_backend/internal/app"
	"promolink_backend/internal/config"

	"gorm.io/gorm"
)

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// NewTestServer подключается к тестовой БД, мигрирует схему
// и поднимает httptest-сервер с полностью собранным роутером.
func NewTestServer(t *testing.T) *TestServer {
	config.LoadConfig()
	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := database.ConnectGorm()
	if err != nil {
		t.Fatalf("Не удалось подключиться к тестовой БД (%s): %v", dsn, err)
	}

	if err := database.AutoMigrate(); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	log.Printf("Тестовый сервер запущен, тестовая БД (%s) настроена.", dsn)

	return &TestServer{
		Server: server,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables очищает все таблицы.
func (ts *TestServer) ClearTables(t *testing.T) {
	err := ts.DB.Exec("TRUNCATE TABLE users, refresh_tokens, influencer_profiles, brand_profiles, posts, submissions, notifications, payment_transactions RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("Не удалось очистить таблицы: %v", err)
	}
}

// SendRequest выполняет HTTP-запрос к тестовому серверу.
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader = nil
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}

// DecodeData распаковывает поле data из конверта {success, data}.
func DecodeData(t *testing.T, bodyStr string, out interface{}) {
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal([]byte(bodyStr), &envelope); err != nil {
		t.Fatalf("Не удалось распарсить конверт ответа: %v (тело: %s)", err, bodyStr)
	}
	if !envelope.Success {
		t.Fatalf("Ожидался success=true, получено: %s", bodyStr)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			t.Fatalf("Не удалось распарсить data: %v (тело: %s)", err, bodyStr)
		}
	}
}
