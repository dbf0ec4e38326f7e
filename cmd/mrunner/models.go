package main

import (
	"context"
	"fmt"
	"io"

	"github.com/medicalhub/mrunner/pkg/mrunner/infrastructure/dependency"
)

func listModels(ctx context.Context, w io.Writer) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	names, err := dependencyContainer.Catalog().List()
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}
