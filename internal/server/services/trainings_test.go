package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umkmhub/marketplace/internal/common"
	"github.com/umkmhub/marketplace/internal/server/repositories/repomanager"
)

func validTraining() TrainingInput {
	return TrainingInput{
		Title:       "Pemasaran Digital",
		Description: "Belajar jualan online",
		Schedule:    "Sabtu, 10:00",
		Location:    "Balai Desa",
		Organizer:   "Dinas Koperasi",
	}
}

func TestTrainingCreate(t *testing.T) {
	ctx := context.Background()
	svc := NewTrainingService(repomanager.NewInMemoryRepositoryManager(), nop)

	in := validTraining()
	in.Title = "<h1>Pemasaran</h1> Digital"
	tr, err := svc.Create(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, tr.ID)
	assert.Equal(t, "Pemasaran Digital", tr.Title)
	assert.False(t, tr.CreatedAt.IsZero())

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestTrainingCreate_RequiresAllFields(t *testing.T) {
	svc := NewTrainingService(repomanager.NewInMemoryRepositoryManager(), nop)

	for _, mutate := range []func(*TrainingInput){
		func(in *TrainingInput) { in.Title = "" },
		func(in *TrainingInput) { in.Description = "" },
		func(in *TrainingInput) { in.Schedule = "" },
		func(in *TrainingInput) { in.Location = "" },
		func(in *TrainingInput) { in.Organizer = "<br>" },
	} {
		in := validTraining()
		mutate(&in)
		_, err := svc.Create(context.Background(), in)
		assert.Equal(t, common.KindValidation, common.KindOf(err))
	}
}

func TestTrainingUpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc := NewTrainingService(repomanager.NewInMemoryRepositoryManager(), nop)

	tr, err := svc.Create(ctx, validTraining())
	require.NoError(t, err)

	loc := "Aula <b>Kecamatan</b>"
	got, err := svc.Update(ctx, tr.ID, TrainingUpdate{Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, "Aula Kecamatan", got.Location)
	assert.Equal(t, tr.Title, got.Title)

	_, err = svc.Update(ctx, "nope", TrainingUpdate{Location: &loc})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	require.NoError(t, svc.Delete(ctx, tr.ID))
	assert.ErrorIs(t, svc.Delete(ctx, tr.ID), common.ErrorNotFound)
}
