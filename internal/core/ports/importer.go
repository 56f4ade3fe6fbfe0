package ports

import "go.trai.ch/sassline/internal/core/domain"

// ImportResolver hands out importers bound to one compiler invocation.
//
//go:generate mockgen -source=importer.go -destination=mocks/mock_importer.go -package=mocks
type ImportResolver interface {
	For(ictx domain.ImportContext) Importer
}
