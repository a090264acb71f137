package ports

import "context"

// S3Service дублирует готовые артефакты в бакет
type S3Service interface {
	ObjectKey(session, filename string) string
	SaveArtifact(ctx context.Context, session string, a OutputArtifact) (string, error)
}
