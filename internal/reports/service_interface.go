package reports

import "context"

// ServiceInterface defines the contract for analytics and exports
type ServiceInterface interface {
	Build(ctx context.Context, rangeKey string) (*Analytics, error)
	Overview(ctx context.Context) (*Overview, error)
	Export(ctx context.Context, section, rangeKey string) (*ExportFile, error)
}

var _ ServiceInterface = (*Service)(nil)
