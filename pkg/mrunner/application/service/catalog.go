package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"

	"github.com/medicalhub/mrunner/pkg/mrunner/application/model"
	"github.com/medicalhub/mrunner/pkg/mrunner/application/model/segdb"
)

var ErrModelNotFound = errors.New("model not found")

type ContextProvider interface {
	ContextPath(m model.RepositoryModel) (string, error)
	Exist(m model.RepositoryModel) (bool, error)
}

type ImageBuilder interface {
	Build(ctx context.Context, m model.RepositoryModel) error
}

// Selector picks a model by name or, when Name is empty, by docker tag.
type Selector struct {
	Name string
	Tag  string
}

func (s Selector) String() string {
	if s.Name != "" {
		return fmt.Sprintf("name %q", s.Name)
	}
	return fmt.Sprintf("tag %q", s.Tag)
}

type LabelDescription struct {
	ID          int
	SegmentID   string
	SegmentName string
	Color       *segdb.Color
	Custom      bool
}

type OutputDescription struct {
	File   string
	Labels []LabelDescription
}

type ModelDescription struct {
	Name       string
	Tag        string
	Type       model.RepositoryModelType
	Dockerfile string
	Outputs    []OutputDescription
}

type Catalog interface {
	List() ([]string, error)
	Describe(selector Selector) (ModelDescription, error)
	// Build builds the selected models, all models when no selector is given.
	Build(ctx context.Context, selectors []Selector) error
}

func NewCatalogService(
	repository *model.Repository,
	logger applogger.Logger,
	imageBuilder ImageBuilder,
) Catalog {
	return &catalog{
		repository:   repository,
		logger:       logger,
		imageBuilder: imageBuilder,
	}
}

type catalog struct {
	repository *model.Repository

	logger       applogger.Logger
	imageBuilder ImageBuilder
}

func (service catalog) List() ([]string, error) {
	return service.repository.ModelNames()
}

func (service catalog) Describe(selector Selector) (ModelDescription, error) {
	m, err := service.find(selector)
	if err != nil {
		return ModelDescription{}, err
	}
	return describe(*m)
}

func (service catalog) Build(ctx context.Context, selectors []Selector) error {
	models, err := service.selectModels(selectors)
	if err != nil {
		return err
	}
	service.logger.Info(fmt.Sprintf("build %v model image(s) from \"%v\"", len(models), service.repository.Path()))
	start := time.Now()
	defer func() {
		service.logger.Info(fmt.Sprintf("done in %v", time.Since(start).String()))
	}()
	for _, m := range models {
		err = service.imageBuilder.Build(ctx, m)
		if err != nil {
			return err
		}
	}
	return nil
}

func (service catalog) selectModels(selectors []Selector) ([]model.RepositoryModel, error) {
	if len(selectors) == 0 {
		return service.repository.Models()
	}
	models := make([]model.RepositoryModel, 0, len(selectors))
	for _, selector := range selectors {
		m, err := service.find(selector)
		if err != nil {
			return nil, err
		}
		models = append(models, *m)
	}
	return models, nil
}

func (service catalog) find(selector Selector) (*model.RepositoryModel, error) {
	var (
		m   *model.RepositoryModel
		err error
	)
	if selector.Name != "" {
		m, err = service.repository.ModelByName(selector.Name)
	} else {
		m, err = service.repository.ModelByTag(selector.Tag)
	}
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.Wrapf(ErrModelNotFound, "no model with %v", selector)
	}
	return m, nil
}

func describe(m model.RepositoryModel) (ModelDescription, error) {
	var (
		description ModelDescription
		err         error
	)
	if description.Name, err = m.Name(); err != nil {
		return ModelDescription{}, err
	}
	if description.Tag, err = m.DockerTag(); err != nil {
		return ModelDescription{}, err
	}
	if description.Type, err = m.Type(); err != nil {
		return ModelDescription{}, errors.Wrapf(err, "model %v", description.Name)
	}
	if description.Dockerfile, err = m.Dockerfile(); err != nil {
		return ModelDescription{}, err
	}
	files, err := m.OutputFiles()
	if err != nil {
		return ModelDescription{}, errors.Wrapf(err, "model %v", description.Name)
	}
	for _, file := range files {
		output, err := describeOutput(file)
		if err != nil {
			return ModelDescription{}, errors.Wrapf(err, "model %v", description.Name)
		}
		description.Outputs = append(description.Outputs, output)
	}
	return description, nil
}

func describeOutput(file model.ExpectedOutputFile) (OutputDescription, error) {
	fileName, err := file.FileName()
	if err != nil {
		return OutputDescription{}, err
	}
	labels, err := file.Labels()
	if err != nil {
		return OutputDescription{}, errors.Wrapf(err, "output %v", fileName)
	}
	output := OutputDescription{File: fileName, Labels: make([]LabelDescription, 0, len(labels))}
	for _, label := range labels {
		segment, err := label.Segment()
		if err != nil {
			return OutputDescription{}, errors.Wrapf(err, "output %v label %v", fileName, label.ID())
		}
		_, custom := segment.(model.CustomSegment)
		output.Labels = append(output.Labels, LabelDescription{
			ID:          label.ID(),
			SegmentID:   segment.ID(),
			SegmentName: segment.Name(),
			Color:       segment.Color(),
			Custom:      custom,
		})
	}
	return output, nil
}
