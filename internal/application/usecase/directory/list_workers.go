package directory

import (
	"context"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/directory"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("directory_usecase")

type ListWorkersUseCase struct {
	profiles profile.Directory
	pageSize int
	logger   logger.Logger
}

func NewListWorkersUseCase(dir profile.Directory, pageSize int, log logger.Logger) *ListWorkersUseCase {
	if pageSize <= 0 {
		pageSize = directory.DefaultPageSize
	}
	return &ListWorkersUseCase{
		profiles: dir,
		pageSize: pageSize,
		logger:   log,
	}
}

type ListWorkersInput struct {
	Query string
	Page  int
}

// Execute builds one page of the worker directory: the full list comes from
// the backend, then search, ordering and paging happen here. Only worker
// profiles are listed; hirers and visitors never show up.
func (uc *ListWorkersUseCase) Execute(ctx context.Context, sess *session.Session, input ListWorkersInput) (*directory.Page, error) {
	ctx, span := tracer.Start(ctx, "ListWorkers")
	defer span.End()

	all, err := uc.profiles.FetchAll(ctx, sess.UpstreamToken)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	workers := make([]profile.Profile, 0, len(all))
	for _, p := range all {
		if p.Role == profile.RoleWorker {
			workers = append(workers, p)
		}
	}

	directory.SortByRating(workers)
	filtered := directory.Filter(workers, input.Query)
	page := directory.Paginate(filtered, input.Page, uc.pageSize)
	return &page, nil
}
