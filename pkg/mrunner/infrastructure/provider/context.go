package provider

import (
	"os"
	"path/filepath"

	"github.com/medicalhub/mrunner/pkg/mrunner/application/model"
	"github.com/medicalhub/mrunner/pkg/mrunner/application/service"
)

// NewContextProvider resolves docker build contexts relative to the directory
// of the repository file.
func NewContextProvider() service.ContextProvider {
	return &contextProvider{}
}

type contextProvider struct{}

func (provider contextProvider) ContextPath(m model.RepositoryModel) (string, error) {
	dockerfile, err := m.Dockerfile()
	if err != nil {
		return "", err
	}
	if filepath.IsAbs(dockerfile) {
		return filepath.Clean(dockerfile), nil
	}
	baseDir := "."
	if repository := m.Repository(); repository != nil {
		baseDir = filepath.Dir(repository.Path())
	}
	return filepath.Join(baseDir, dockerfile), nil
}

func (provider contextProvider) Exist(m model.RepositoryModel) (bool, error) {
	path, err := provider.ContextPath(m)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
