// Package github implementa el acceso opcional a la API de GitHub para
// enriquecer los PRs del análisis distribuido con su título y descripción.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/Tomas-vilte/MateArch/internal/domain/ports"
)

var _ ports.PRDescriber = (*Client)(nil)

// PullRequestsService es el subconjunto de la API de PRs que usa el cliente.
type PullRequestsService interface {
	Get(ctx context.Context, owner, repo string, number int) (*github.PullRequest, *github.Response, error)
}

// Client envuelve la API de GitHub. Si no hay token el cliente queda
// anónimo y sujeto a rate limits bajos, por eso es opcional.
type Client struct {
	prService PullRequestsService
}

// NewClient crea el cliente. token puede ser vacío.
func NewClient(token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	return &Client{prService: client.PullRequests}
}

// NewClientWithService permite inyectar el servicio en tests.
func NewClientWithService(prService PullRequestsService) *Client {
	return &Client{prService: prService}
}

// DescribePR retorna "título: cuerpo" del PR, para usar como descripción
// cuando el caller no dio una.
func (c *Client) DescribePR(ctx context.Context, repo string, number int) (string, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return "", err
	}

	pr, _, err := c.prService.Get(ctx, owner, name, number)
	if err != nil {
		return "", fmt.Errorf("error al obtener el PR %s#%d: %w", repo, number, err)
	}

	title := strings.TrimSpace(pr.GetTitle())
	body := strings.TrimSpace(pr.GetBody())

	switch {
	case title != "" && body != "":
		return title + ": " + body, nil
	case title != "":
		return title, nil
	default:
		return body, nil
	}
}

func splitRepo(repo string) (string, string, error) {
	parts := strings.SplitN(repo, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repo inválido, se espera owner/nombre: %s", repo)
	}
	return parts[0], parts[1], nil
}
