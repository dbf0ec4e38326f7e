package main

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/medicalhub/mrunner/pkg/mrunner/application/service"
	"github.com/medicalhub/mrunner/pkg/mrunner/infrastructure/dependency"
)

var (
	errNoSelector       = errors.New("model name or tag not provided")
	errSelectorConflict = errors.New("use either --name or --tag, not both")
)

func showModel(ctx context.Context, w io.Writer, name, tag string) error {
	switch {
	case name == "" && tag == "":
		return errors.WithStack(errNoSelector)
	case name != "" && tag != "":
		return errors.WithStack(errSelectorConflict)
	}
	dependencyContainer, err := dependency.ContainerFromContext(ctx)
	if err != nil {
		return err
	}
	description, err := dependencyContainer.Catalog().Describe(service.Selector{Name: name, Tag: tag})
	if err != nil {
		return err
	}
	printDescription(w, description)
	return nil
}

func printDescription(w io.Writer, description service.ModelDescription) {
	fmt.Fprintf(w, "name:       %v\n", description.Name)
	fmt.Fprintf(w, "tag:        %v\n", description.Tag)
	fmt.Fprintf(w, "type:       %v\n", description.Type)
	fmt.Fprintf(w, "dockerfile: %v\n", description.Dockerfile)
	for _, output := range description.Outputs {
		fmt.Fprintf(w, "output %v\n", output.File)
		for _, label := range output.Labels {
			line := fmt.Sprintf("  %v: %v", label.ID, label.SegmentID)
			if label.Custom {
				line += " (custom)"
			}
			if label.Color != nil {
				line += fmt.Sprintf(" rgb(%v, %v, %v)", label.Color.R, label.Color.G, label.Color.B)
			}
			fmt.Fprintln(w, line)
		}
	}
}
