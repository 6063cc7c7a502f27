package ports

import "go.trai.ch/wasmbuild/internal/core/domain"

// ConfigLoader defines the interface for resolving the project being built.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load walks up from cwd to the project root and reads its optional
	// configuration file.
	Load(cwd string) (*domain.Project, error)
}
