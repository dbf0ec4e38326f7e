package builder

import (
	stdcontext "context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/medicalhub/mrunner/pkg/mrunner/application/model"
	"github.com/medicalhub/mrunner/pkg/mrunner/application/service"
	"github.com/medicalhub/mrunner/pkg/mrunner/infrastructure/command"
)

func NewImageBuilder(
	logger applogger.Logger,
	contextProvider service.ContextProvider,
	runner command.Runner,
) service.ImageBuilder {
	return &imageBuilder{
		logger:          logger,
		contextProvider: contextProvider,
		runner:          runner,
	}
}

type imageBuilder struct {
	logger          applogger.Logger
	contextProvider service.ContextProvider
	runner          command.Runner
}

func (builder imageBuilder) Build(ctx stdcontext.Context, m model.RepositoryModel) error {
	ref, err := m.ImageReference()
	if err != nil {
		return err
	}
	contextPath, err := builder.contextProvider.ContextPath(m)
	if err != nil {
		return err
	}
	exist, err := builder.contextProvider.Exist(m)
	if err != nil {
		return err
	}
	if !exist {
		return fmt.Errorf("build context %v for image %v not found", contextPath, ref)
	}

	builder.logger.Info(fmt.Sprintf("start build docker image \"%v\"...", ref))
	start := time.Now()
	defer func() {
		builder.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()
	output, err := builder.runner.Execute(ctx, command.Command{
		Executable: "docker",
		Args:       []string{"build", "-t", ref.String(), contextPath},
		Verbose:    true,
	})
	builder.logger.Debug(output)
	return errors.Wrapf(err, "failed to build docker image %v", ref)
}
