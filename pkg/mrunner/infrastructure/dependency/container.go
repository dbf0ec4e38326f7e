package dependency

import (
	"context"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/medicalhub/mrunner/pkg/mrunner/application/model"
	"github.com/medicalhub/mrunner/pkg/mrunner/application/service"
	"github.com/medicalhub/mrunner/pkg/mrunner/infrastructure/builder"
	"github.com/medicalhub/mrunner/pkg/mrunner/infrastructure/command"
	"github.com/medicalhub/mrunner/pkg/mrunner/infrastructure/provider"
)

var ErrContainerNotFound = errors.New("dependency container not found")

type dependencyContainerKey struct{}

type Container interface {
	Catalog() service.Catalog
}

func NewDependencyContainer(
	logger applogger.Logger,
	repository *model.Repository,
	silentMode bool,
) Container {
	runner := command.NewCommandRunner(logger, silentMode)
	contextProvider := provider.NewContextProvider()
	imageBuilder := builder.NewImageBuilder(logger, contextProvider, runner)
	catalogService := service.NewCatalogService(repository, logger, imageBuilder)

	return &container{
		catalog: catalogService,
	}
}

type container struct {
	catalog service.Catalog
}

func (c *container) Catalog() service.Catalog {
	return c.catalog
}

func ContainerFromContext(ctx context.Context) (Container, error) {
	v := ctx.Value(dependencyContainerKey{})
	if c, ok := v.(Container); ok {
		return c, nil
	}
	return nil, errors.WithStack(ErrContainerNotFound)
}

func ContainerToContext(ctx context.Context, c Container) context.Context {
	return context.WithValue(ctx, dependencyContainerKey{}, c)
}
