package registry

import (
	"context"
	"net/http"

	"go.trai.ch/reel/internal/core/domain"
)

func uploadDependencies() []Dependency {
	return []Dependency{
		Passive(UploadURLRequest, ExportRequest),
	}
}

// Uploads requests presigned upload targets and data exports.
type Uploads struct{ r *Registry }

// PresignedURL requests a direct upload target for a file.
func (u Uploads) PresignedURL(ctx context.Context, req domain.UploadTicketRequest) (domain.UploadTicket, error) {
	return mutate(ctx, u.r, UploadURLRequest,
		func(ctx context.Context) (domain.UploadTicket, error) {
			return send[domain.UploadTicket](ctx, u.r, http.MethodPost, "/upload/presigned-url", req)
		},
		noRef[domain.UploadTicket],
	)
}

// Export starts an export job.
func (u Uploads) Export(ctx context.Context, req domain.ExportRequest) (domain.ExportJob, error) {
	return mutate(ctx, u.r, ExportRequest,
		func(ctx context.Context) (domain.ExportJob, error) {
			return send[domain.ExportJob](ctx, u.r, http.MethodPost, "/export", req)
		},
		noRef[domain.ExportJob],
	)
}
