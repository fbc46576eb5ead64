package ports

import "context"

// PRDiffFetcher trae el unified diff de un Pull Request desde la plataforma de hosting.
type PRDiffFetcher interface {
	// FetchDiff retorna el diff crudo del PR indicado. Las fallas se reportan
	// como *errors.PRFetchError con el tipo de falla distinguible.
	FetchDiff(ctx context.Context, repo string, number int) (string, error)
}

// PRDescriber completa metadata de un PR (título, cuerpo) desde la API del VCS.
// Es opcional: si no hay token configurado el enriquecimiento se saltea.
type PRDescriber interface {
	DescribePR(ctx context.Context, repo string, number int) (string, error)
}
