package integration_test

import (
	"fmt"
	"net/http"
	"testing"

	"promolink_backend/internal/models"
	"promolink_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCreatePost_Success - бренд создает кампанию
func TestCreatePost_Success(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	brandToken, _, _ := helpers.CreateAndLoginBrand(t, ts)

	body := map[string]interface{}{
		"title":       "Летняя кампания",
		"description": "Обзор новой коллекции",
		"reward_min":  20000,
		"reward_max":  80000,
		"platforms":   []string{"instagram"},
		"categories":  []string{"fashion"},
	}
	res, bodyStr := ts.SendRequest(t, "POST", "/api/v1/posts", brandToken, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var post models.Post
	helpers.DecodeData(t, bodyStr, &post)
	assert.Equal(t, "Летняя кампания", post.Title)
	assert.Equal(t, models.PostStatusActive, post.Status)
}

// TestCreatePost_InfluencerForbidden - инфлюенсер не создает кампании
func TestCreatePost_InfluencerForbidden(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	infToken, _, _ := helpers.CreateAndLoginInfluencer(t, ts)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/posts", infToken, map[string]interface{}{
		"title": "Не должно создаться",
	})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestCreatePost_RewardSanity - reward_max < reward_min отклоняется
func TestCreatePost_RewardSanity(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	brandToken, _, _ := helpers.CreateAndLoginBrand(t, ts)

	res, _ := ts.SendRequest(t, "POST", "/api/v1/posts", brandToken, map[string]interface{}{
		"title":      "Кривые награды",
		"reward_min": 50000,
		"reward_max": 10000,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

// TestPostStatus_PauseAndResume - пауза обратима
func TestPostStatus_PauseAndResume(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	brandToken, brand, _ := helpers.CreateAndLoginBrand(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, brand.ID, "Кампания на паузу")

	res, _ := ts.SendRequest(t, "PUT", "/api/v1/posts/"+post.ID+"/status", brandToken,
		map[string]interface{}{"status": "pause"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, _ = ts.SendRequest(t, "PUT", "/api/v1/posts/"+post.ID+"/status", brandToken,
		map[string]interface{}{"status": "active"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	var saved models.Post
	require.NoError(t, ts.DB.First(&saved, "id = ?", post.ID).Error)
	assert.Equal(t, models.PostStatusActive, saved.Status)
}

// TestPostStatus_StoppedIsTerminal - остановка окончательна
func TestPostStatus_StoppedIsTerminal(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	brandToken, brand, _ := helpers.CreateAndLoginBrand(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, brand.ID, "Кампания под остановку")

	res, _ := ts.SendRequest(t, "PUT", "/api/v1/posts/"+post.ID+"/status", brandToken,
		map[string]interface{}{"status": "stopped"})
	require.Equal(t, http.StatusOK, res.StatusCode)

	res, bodyStr := ts.SendRequest(t, "PUT", "/api/v1/posts/"+post.ID+"/status", brandToken,
		map[string]interface{}{"status": "active"})
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	assert.Contains(t, bodyStr, "stopped permanently")
}

// TestPostStatus_LegacyQueryRoute - старый роут со статусом в query
func TestPostStatus_LegacyQueryRoute(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	brandToken, brand, _ := helpers.CreateAndLoginBrand(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, brand.ID, "Легаси-кампания")

	path := fmt.Sprintf("/api/v1/update_status?post_id=%s&status=pause", post.ID)
	res, bodyStr := ts.SendRequest(t, "POST", path, brandToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

	var saved models.Post
	require.NoError(t, ts.DB.First(&saved, "id = ?", post.ID).Error)
	assert.Equal(t, models.PostStatusPaused, saved.Status)
}

// TestUpdatePost_NotOwner - чужую кампанию редактировать нельзя
func TestUpdatePost_NotOwner(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, owner, _ := helpers.CreateAndLoginBrand(t, ts)
	otherToken, _, _ := helpers.CreateAndLoginBrand(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, owner.ID, "Чужая кампания")

	res, _ := ts.SendRequest(t, "PUT", "/api/v1/posts/"+post.ID, otherToken,
		map[string]interface{}{"title": "Перехват"})
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

// TestListPosts_Public - список кампаний доступен без токена
func TestListPosts_Public(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	_, brand, _ := helpers.CreateAndLoginBrand(t, ts)
	helpers.CreateTestPost(t, ts.DB, brand.ID, "Публичная кампания")

	res, bodyStr := ts.SendRequest(t, "GET", "/api/v1/posts", "", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, bodyStr, "Публичная кампания")
}
