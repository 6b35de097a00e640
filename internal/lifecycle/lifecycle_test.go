package lifecycle

import (
	"testing"

	"promolink_backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestNext_DefinedTransitions(t *testing.T) {
	cases := []struct {
		from   models.SubmissionStatus
		action Action
		to     models.SubmissionStatus
	}{
		{models.SubmissionRequested, ActionAccept, models.SubmissionAccepted},
		{models.SubmissionRequested, ActionReject, models.SubmissionRejected},
		{models.SubmissionAccepted, ActionSubmitProof, models.SubmissionProofSubmitted},
		{models.SubmissionProofSubmitted, ActionReviewComplete, models.SubmissionReviewCompleted},
		{models.SubmissionReviewCompleted, ActionUndoReviewComplete, models.SubmissionProofSubmitted},
		{models.SubmissionReviewCompleted, ActionCreditMoney, models.SubmissionCreditedMoney},
	}

	for _, c := range cases {
		got, err := Next(c.from, c.action)
		assert.NoError(t, err, "переход %s -> %s должен быть определен", c.from, c.action)
		assert.Equal(t, c.to, got)
	}
}

func TestNext_RejectsUndefinedTransitions(t *testing.T) {
	// Отказ окончателен: из rejected нет ни одного действия.
	for _, a := range []Action{ActionAccept, ActionReject, ActionSubmitProof, ActionReviewComplete, ActionUndoReviewComplete, ActionCreditMoney} {
		_, err := Next(models.SubmissionRejected, a)
		assert.Error(t, err)

		var invalid *ErrInvalidTransition
		assert.ErrorAs(t, err, &invalid)
	}

	// Повторный accept по уже принятой заявке отклоняется до сетевого вызова.
	_, err := Next(models.SubmissionAccepted, ActionAccept)
	assert.Error(t, err)

	// credited_money тоже конечный.
	_, err = Next(models.SubmissionCreditedMoney, ActionCreditMoney)
	assert.Error(t, err)
}

func TestApply_ActorCheck(t *testing.T) {
	// Инфлюенсер не может принимать свою же заявку.
	_, err := Apply(models.SubmissionRequested, ActionAccept, models.UserRoleInfluencer)
	var wrongActor *ErrWrongActor
	assert.ErrorAs(t, err, &wrongActor)

	// Бренд не может отправить пруф за инфлюенсера.
	_, err = Apply(models.SubmissionAccepted, ActionSubmitProof, models.UserRoleBrand)
	assert.ErrorAs(t, err, &wrongActor)

	got, err := Apply(models.SubmissionRequested, ActionAccept, models.UserRoleBrand)
	assert.NoError(t, err)
	assert.Equal(t, models.SubmissionAccepted, got)
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, IsTerminal(models.SubmissionRejected))
	assert.True(t, IsTerminal(models.SubmissionCreditedMoney))
	assert.False(t, IsTerminal(models.SubmissionRequested))
	assert.False(t, IsTerminal(models.SubmissionReviewCompleted))
}

func TestValidActions(t *testing.T) {
	brandFromRequested := ValidActions(models.SubmissionRequested, models.UserRoleBrand)
	assert.ElementsMatch(t, []Action{ActionAccept, ActionReject}, brandFromRequested)

	// У инфлюенсера из requested действий нет - он ждет решения бренда.
	assert.Empty(t, ValidActions(models.SubmissionRequested, models.UserRoleInfluencer))

	assert.ElementsMatch(t, []Action{ActionSubmitProof}, ValidActions(models.SubmissionAccepted, models.UserRoleInfluencer))
	assert.ElementsMatch(t,
		[]Action{ActionUndoReviewComplete, ActionCreditMoney},
		ValidActions(models.SubmissionReviewCompleted, models.UserRoleBrand))

	// Конечные статусы не предлагают кнопок никому.
	assert.Empty(t, ValidActions(models.SubmissionRejected, models.UserRoleBrand))
	assert.Empty(t, ValidActions(models.SubmissionCreditedMoney, models.UserRoleBrand))
}

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("review-complete")
	assert.True(t, ok)
	assert.Equal(t, ActionReviewComplete, a)

	_, ok = ParseAction("approve")
	assert.False(t, ok)
}

func TestParseSubmissionStatus_LegacyAlias(t *testing.T) {
	st, ok := models.ParseSubmissionStatus("pending")
	assert.True(t, ok)
	assert.Equal(t, models.SubmissionRequested, st)

	st, ok = models.ParseSubmissionStatus("proof_submitted")
	assert.True(t, ok)
	assert.Equal(t, models.SubmissionProofSubmitted, st)

	_, ok = models.ParseSubmissionStatus("unknown")
	assert.False(t, ok)
}
