package integration_test

import (
	"context"
	"testing"
	"time"

	"promolink_backend/internal/lifecycle"
	"promolink_backend/internal/models"
	"promolink_backend/internal/services/dto"
	"promolink_backend/pkg/subsync"
	"promolink_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSDK_LoadAndPerform - клиентский SDK против живого сервера
func TestSDK_LoadAndPerform(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	brandToken, brand, _ := helpers.CreateAndLoginBrand(t, ts)
	_, influencer, _ := helpers.CreateAndLoginInfluencer(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, brand.ID, "Кампания для SDK")
	helpers.CreateTestSubmission(t, ts.DB, post.ID, influencer.ID, models.SubmissionRequested)

	transport := subsync.NewHTTPTransport(ts.Server.URL, brandToken, subsync.Config{})
	client := subsync.NewClient(transport, subsync.Actor{ID: brand.ID, Role: models.UserRoleBrand}, subsync.Config{})

	require.NoError(t, client.Load(context.Background(), ""))
	require.Equal(t, 1, client.Store.Len())

	// Действие через диспетчер: локальная валидация, сеть, обновление кеша
	updated, err := client.Dispatcher.Perform(context.Background(), post.ID, influencer.ID, lifecycle.ActionAccept, nil)
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionAccepted, updated.Status)

	cached, ok := client.Store.Get(updated.ID)
	require.True(t, ok)
	assert.Equal(t, models.SubmissionAccepted, cached.Status)

	// Повторный accept отбивается локально, без сетевого вызова
	_, err = client.Dispatcher.Perform(context.Background(), post.ID, influencer.ID, lifecycle.ActionAccept, nil)
	var invalid *lifecycle.ErrInvalidTransition
	assert.ErrorAs(t, err, &invalid)
}

// TestSDK_PollPicksUpForeignChanges - опрос доносит изменения другой стороны
func TestSDK_PollPicksUpForeignChanges(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	brandToken, brand, _ := helpers.CreateAndLoginBrand(t, ts)
	infToken, influencer, _ := helpers.CreateAndLoginInfluencer(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, brand.ID, "Кампания для опроса SDK")
	helpers.CreateTestSubmission(t, ts.DB, post.ID, influencer.ID, models.SubmissionAccepted)

	// Инфлюенсер наблюдает за своими заявками
	infTransport := subsync.NewHTTPTransport(ts.Server.URL, infToken, subsync.Config{})
	infClient := subsync.NewClient(infTransport, subsync.Actor{ID: influencer.ID, Role: models.UserRoleInfluencer}, subsync.Config{})
	require.NoError(t, infClient.Load(context.Background(), ""))

	// Первый тик фиксирует курсор
	require.NoError(t, infClient.Syncer.SyncNow(context.Background()))

	// Инфлюенсер сдает пруф со своей стороны, бренд завершает ревью
	proof := &dto.SubmitProofRequest{Link: "https://instagram.com/p/sdk", Description: "пост"}
	_, err := infClient.Dispatcher.Perform(context.Background(), post.ID, influencer.ID, lifecycle.ActionSubmitProof, proof)
	require.NoError(t, err)

	brandTransport := subsync.NewHTTPTransport(ts.Server.URL, brandToken, subsync.Config{})
	brandClient := subsync.NewClient(brandTransport, subsync.Actor{ID: brand.ID, Role: models.UserRoleBrand}, subsync.Config{})
	require.NoError(t, brandClient.Load(context.Background(), ""))
	_, err = brandClient.Dispatcher.Perform(context.Background(), post.ID, influencer.ID, lifecycle.ActionReviewComplete, nil)
	require.NoError(t, err)

	// Следующий тик инфлюенсера доносит чужой переход
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, infClient.Syncer.SyncNow(context.Background()))

	snapshot := infClient.Store.Snapshot()
	require.Len(t, snapshot, 1)
	assert.Equal(t, models.SubmissionReviewCompleted, snapshot[0].Status)
	require.NotNil(t, snapshot[0].Link, "пруф не должен потеряться при слиянии")
}

// TestSDK_StaleConflict - сервер отбивает переход из устаревшего статуса
func TestSDK_StaleConflict(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	brandToken, brand, _ := helpers.CreateAndLoginBrand(t, ts)
	_, influencer, _ := helpers.CreateAndLoginInfluencer(t, ts)
	post := helpers.CreateTestPost(t, ts.DB, brand.ID, "Кампания для конфликта SDK")
	sub := helpers.CreateTestSubmission(t, ts.DB, post.ID, influencer.ID, models.SubmissionRequested)

	transport := subsync.NewHTTPTransport(ts.Server.URL, brandToken, subsync.Config{})
	client := subsync.NewClient(transport, subsync.Actor{ID: brand.ID, Role: models.UserRoleBrand}, subsync.Config{})
	require.NoError(t, client.Load(context.Background(), ""))

	// Другая сторона успела изменить статус, кеш клиента устарел
	require.NoError(t, ts.DB.Model(&models.Submission{}).Where("id = ?", sub.ID).
		Update("status", models.SubmissionRejected).Error)

	_, err := client.Dispatcher.Perform(context.Background(), post.ID, influencer.ID, lifecycle.ActionAccept, nil)
	require.Error(t, err)

	// Кеш не тронут ошибкой, следующий опрос принесет правду
	cached, ok := client.Store.Get(sub.ID)
	require.True(t, ok)
	assert.Equal(t, models.SubmissionRequested, cached.Status)

	require.NoError(t, client.Syncer.SyncNow(context.Background()))
	cached, _ = client.Store.Get(sub.ID)
	assert.Equal(t, models.SubmissionRejected, cached.Status)
}
