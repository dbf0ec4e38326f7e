package main

import (
	"context"

	"github.com/medicalhub/mrunner/pkg/mrunner/application/service"
	"github.com/medicalhub/mrunner/pkg/mrunner/infrastructure/dependency"
)

func build(ctx context.Context, names, tags []string) error {
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	selectors := make([]service.Selector, 0, len(names)+len(tags))
	for _, name := range names {
		selectors = append(selectors, service.Selector{Name: name})
	}
	for _, tag := range tags {
		selectors = append(selectors, service.Selector{Tag: tag})
	}
	return dependencyContainer.Catalog().Build(ctx, selectors)
}
