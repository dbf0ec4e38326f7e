package command

import (
	"context"
	"os"
	"os/exec"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

type Command struct {
	WorkDir    string
	Executable string
	Args       []string
	// Verbose streams the command output to the terminal instead of returning it.
	Verbose bool
}

type Runner interface {
	Execute(ctx context.Context, command Command) (string, error)
}

func NewCommandRunner(logger applogger.Logger, silentMode bool) Runner {
	return &runner{
		logger:     logger,
		silentMode: silentMode,
	}
}

type runner struct {
	logger     applogger.Logger
	silentMode bool
}

func (r runner) Execute(ctx context.Context, command Command) (string, error) {
	if command.Executable == "" {
		return "", errors.New("command executable can not be empty")
	}
	// nolint:gosec
	cmd := exec.CommandContext(ctx, command.Executable, command.Args...)
	cmd.Dir = command.WorkDir
	r.logger.Debug(cmd.String())
	if command.Verbose && !r.silentMode {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return "", errors.Wrapf(cmd.Run(), "failed to execute %v", command.Executable)
	}
	result, err := cmd.Output()
	return string(result), errors.Wrapf(err, "failed to execute %v", command.Executable)
}
