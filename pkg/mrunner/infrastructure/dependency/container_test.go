package dependency

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"

	"github.com/medicalhub/mrunner/pkg/mrunner/application/model"
)

func TestContainerContext(t *testing.T) {
	_, err := ContainerFromContext(context.Background())
	assert.ErrorIs(t, err, ErrContainerNotFound)

	_, err = ContainerFromContext(context.WithValue(context.Background(), dependencyContainerKey{}, "container"))
	assert.ErrorIs(t, err, ErrContainerNotFound)

	repository := model.NewRepository("repository.json", model.Document{Models: []model.ModelRecord{}})
	c := NewDependencyContainer(logger.NewTextLogger(), repository, true)
	ctx := ContainerToContext(context.Background(), c)

	got, err := ContainerFromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, c, got)

	names, err := got.Catalog().List()
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestContainer_MissingModels(t *testing.T) {
	c := NewDependencyContainer(logger.NewTextLogger(), model.NewRepository("repository.json", model.Document{}), true)
	_, err := c.Catalog().List()
	assert.ErrorIs(t, err, model.ErrFieldMissing)
}
