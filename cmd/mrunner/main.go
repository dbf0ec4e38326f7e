package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/tss-calculator/go-lib/pkg/infrastructure/logger"
	"github.com/urfave/cli/v2"

	"github.com/medicalhub/mrunner/pkg/mrunner/infrastructure/config/repositoryconfig"
	"github.com/medicalhub/mrunner/pkg/mrunner/infrastructure/dependency"
)

const defaultRepositoryFile = "repository.json"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	mainLogger := logger.NewTextLogger()

	_ = godotenv.Load()
	repositoryFile := os.Getenv("MRUNNER_REPOSITORY")
	if repositoryFile == "" {
		repositoryFile = defaultRepositoryFile
	}
	repository, err := repositoryconfig.Load(repositoryFile)
	if err != nil {
		mainLogger.FatalError(err, "failed load model repository")
	}
	container := dependency.NewDependencyContainer(mainLogger, repository, os.Getenv("SILENT") != "")
	ctx = dependency.ContainerToContext(ctx, container)

	app := &cli.App{
		Name:  "mrunner",
		Usage: "inspect and build the models of a medical imaging model repository",
		Commands: cli.Commands{
			&cli.Command{
				Name:  "models",
				Usage: "list models as \"<name> (<tag>)\"",
				Action: func(c *cli.Context) error {
					return listModels(c.Context, c.App.Writer)
				},
			},
			&cli.Command{
				Name:  "show",
				Usage: "show a model and its expected output files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "model name, mutually exclusive with --tag",
					},
					&cli.StringFlag{
						Name:  "tag",
						Usage: "docker tag of the model, mutually exclusive with --name",
					},
				},
				Action: func(c *cli.Context) error {
					return showModel(c.Context, c.App.Writer, c.String("name"), c.String("tag"))
				},
			},
			&cli.Command{
				Name:  "build",
				Usage: "build docker images of the selected models, all models by default",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name: "name",
					},
					&cli.StringSliceFlag{
						Name: "tag",
					},
				},
				Action: func(c *cli.Context) error {
					return build(c.Context, c.StringSlice("name"), c.StringSlice("tag"))
				},
			},
		},
	}
	err = app.RunContext(ctx, os.Args)
	if err != nil {
		mainLogger.FatalError(err, "failed execute command "+strings.Join(os.Args, " "))
	}
}
