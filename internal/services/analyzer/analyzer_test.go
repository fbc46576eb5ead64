package analyzer

import (
	"context"
	"errors"
	"testing"

	domainerrors "github.com/Tomas-vilte/MateArch/internal/domain/errors"
	"github.com/Tomas-vilte/MateArch/internal/domain/models"
	"github.com/Tomas-vilte/MateArch/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGitService struct {
	mock.Mock
}

func (m *mockGitService) DefaultBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGitService) CurrentBranch(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *mockGitService) ChangedFiles(ctx context.Context, baseBranch, pathFilter string) ([]models.Change, error) {
	args := m.Called(ctx, baseBranch, pathFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Change), args.Error(1)
}

func (m *mockGitService) TrackedFiles(ctx context.Context, pathFilter string) ([]string, error) {
	args := m.Called(ctx, pathFilter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockGitService) Root() string {
	args := m.Called()
	return args.String(0)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchDiff(ctx context.Context, repo string, number int) (string, error) {
	args := m.Called(ctx, repo, number)
	return args.String(0), args.Error(1)
}

type mockDescriber struct {
	mock.Mock
}

func (m *mockDescriber) DescribePR(ctx context.Context, repo string, number int) (string, error) {
	args := m.Called(ctx, repo, number)
	return args.String(0), args.Error(1)
}

func newTestTranslations(t *testing.T) *i18n.Translations {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return trans
}

const sampleDiff = `diff --git a/api/users.go b/api/users.go
index 1111111..2222222 100644
--- a/api/users.go
+++ b/api/users.go
@@ -1,1 +1,2 @@
 package api
+func List() {}
`

func TestAnalyzeRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("should assemble the full analysis", func(t *testing.T) {
		// Arrange
		git := new(mockGitService)
		git.On("DefaultBranch", ctx).Return("main", nil)
		git.On("CurrentBranch", ctx).Return("feature/auth", nil)
		git.On("ChangedFiles", ctx, "", "").Return([]models.Change{
			{FilePath: "api/users.go", ChangeType: models.ChangeModified, LinesAdded: 1},
		}, nil)
		git.On("TrackedFiles", ctx, "").Return([]string{"api/users.go", "README.md"}, nil)
		git.On("Root").Return("/repo")

		svc := NewService(git, new(mockFetcher), nil, newTestTranslations(t))

		// Act
		analysis, err := svc.AnalyzeRepository(ctx, RepositoryOptions{})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "main", analysis.DefaultBranch)
		assert.Equal(t, "feature/auth", analysis.CurrentBranch)
		assert.Equal(t, "/repo", analysis.RepositoryRoot)
		assert.Equal(t, 1, analysis.TotalChanges)
		assert.True(t, analysis.HasChanges)
		assert.Len(t, analysis.AllTrackedFiles, 2)
	})

	t.Run("should apply extra excluded patterns to changes and tracked files", func(t *testing.T) {
		git := new(mockGitService)
		git.On("DefaultBranch", ctx).Return("main", nil)
		git.On("CurrentBranch", ctx).Return("main", nil)
		git.On("ChangedFiles", ctx, "", "").Return([]models.Change{
			{FilePath: "api/users.go", ChangeType: models.ChangeModified},
			{FilePath: "vendor/lib.go", ChangeType: models.ChangeAdded},
		}, nil)
		git.On("TrackedFiles", ctx, "").Return([]string{"api/users.go", "vendor/lib.go"}, nil)
		git.On("Root").Return("/repo")

		svc := NewService(git, new(mockFetcher), nil, newTestTranslations(t))

		analysis, err := svc.AnalyzeRepository(ctx, RepositoryOptions{
			ExcludedPatterns: []string{"vendor/"},
		})

		require.NoError(t, err)
		require.Len(t, analysis.ChangedFiles, 1)
		assert.Equal(t, "api/users.go", analysis.ChangedFiles[0].FilePath)
		assert.Equal(t, []string{"api/users.go"}, analysis.AllTrackedFiles)
	})

	t.Run("should forward base branch and path filter to git", func(t *testing.T) {
		git := new(mockGitService)
		git.On("DefaultBranch", ctx).Return("main", nil)
		git.On("CurrentBranch", ctx).Return("main", nil)
		git.On("ChangedFiles", ctx, "develop", "services/auth/").Return([]models.Change{}, nil)
		git.On("TrackedFiles", ctx, "services/auth/").Return([]string{}, nil)
		git.On("Root").Return("/repo")

		svc := NewService(git, new(mockFetcher), nil, newTestTranslations(t))

		analysis, err := svc.AnalyzeRepository(ctx, RepositoryOptions{
			BaseBranch: "develop",
			PathFilter: "services/auth/",
		})

		require.NoError(t, err)
		assert.False(t, analysis.HasChanges)
		git.AssertExpectations(t)
	})

	t.Run("should propagate git errors", func(t *testing.T) {
		git := new(mockGitService)
		git.On("DefaultBranch", ctx).Return("", errors.New("no es un repositorio git"))

		svc := NewService(git, new(mockFetcher), nil, newTestTranslations(t))

		_, err := svc.AnalyzeRepository(ctx, RepositoryOptions{})

		assert.Error(t, err)
	})

	t.Run("should fail with a typed error when built without a git repository", func(t *testing.T) {
		svc := NewService(nil, new(mockFetcher), nil, newTestTranslations(t))

		_, err := svc.AnalyzeRepository(ctx, RepositoryOptions{})

		var gitErr *domainerrors.GitError
		require.ErrorAs(t, err, &gitErr)
	})
}

func TestAnalyzePullRequests(t *testing.T) {
	ctx := context.Background()

	t.Run("should analyze every PR and aggregate totals", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("FetchDiff", ctx, "acme/user-service", 1).Return(sampleDiff, nil)
		fetcher.On("FetchDiff", ctx, "acme/billing", 2).Return(sampleDiff, nil)

		svc := NewService(nil, fetcher, nil, newTestTranslations(t))

		analysis, err := svc.AnalyzePullRequests(ctx, []models.PRRequest{
			{Repo: "acme/user-service", Number: 1},
			{Repo: "acme/billing", Number: 2},
		}, nil)

		require.NoError(t, err)
		assert.Len(t, analysis.PRDiffs, 2)
		assert.Equal(t, 2, analysis.TotalServices)
		assert.Equal(t, 2, analysis.TotalChanges)
	})

	t.Run("should replace a failed fetch with a placeholder and keep going", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("FetchDiff", ctx, "acme/user-service", 1).Return("", errors.New("gh: Not Found"))
		fetcher.On("FetchDiff", ctx, "acme/billing", 2).Return(sampleDiff, nil)

		svc := NewService(nil, fetcher, nil, newTestTranslations(t))

		analysis, err := svc.AnalyzePullRequests(ctx, []models.PRRequest{
			{Repo: "acme/user-service", Number: 1},
			{Repo: "acme/billing", Number: 2},
		}, nil)

		require.NoError(t, err)
		require.Len(t, analysis.PRDiffs, 2)

		failed := analysis.PRDiffs[0]
		assert.True(t, failed.Failed)
		assert.Zero(t, failed.TotalChanges)
		assert.Contains(t, failed.Summary, "Failed to fetch PR")
		assert.Contains(t, failed.FailureReason, "Not Found")

		assert.False(t, analysis.PRDiffs[1].Failed)
		// El placeholder cuenta como servicio pero no aporta cambios.
		assert.Equal(t, 2, analysis.TotalServices)
		assert.Equal(t, 1, analysis.TotalChanges)
	})

	t.Run("should count distinct services once", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("FetchDiff", ctx, mock.Anything, mock.Anything).Return(sampleDiff, nil)

		svc := NewService(nil, fetcher, nil, newTestTranslations(t))

		analysis, err := svc.AnalyzePullRequests(ctx, []models.PRRequest{
			{Repo: "org-a/shared", Number: 1},
			{Repo: "org-b/shared", Number: 2},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, analysis.TotalServices)
	})

	t.Run("should enrich the description from the VCS when missing", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("FetchDiff", ctx, "acme/user-service", 1).Return(sampleDiff, nil)

		describer := new(mockDescriber)
		describer.On("DescribePR", ctx, "acme/user-service", 1).Return("Add login endpoint", nil)

		svc := NewService(nil, fetcher, describer, newTestTranslations(t))

		analysis, err := svc.AnalyzePullRequests(ctx, []models.PRRequest{
			{Repo: "acme/user-service", Number: 1},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Add login endpoint", analysis.PRDiffs[0].Summary)
	})

	t.Run("should ignore describer failures", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("FetchDiff", ctx, "acme/user-service", 1).Return(sampleDiff, nil)

		describer := new(mockDescriber)
		describer.On("DescribePR", ctx, "acme/user-service", 1).Return("", errors.New("api rate limited"))

		svc := NewService(nil, fetcher, describer, newTestTranslations(t))

		analysis, err := svc.AnalyzePullRequests(ctx, []models.PRRequest{
			{Repo: "acme/user-service", Number: 1},
		}, nil)

		require.NoError(t, err)
		assert.False(t, analysis.PRDiffs[0].Failed)
	})

	t.Run("should report progress per PR", func(t *testing.T) {
		fetcher := new(mockFetcher)
		fetcher.On("FetchDiff", ctx, mock.Anything, mock.Anything).Return(sampleDiff, nil)

		svc := NewService(nil, fetcher, nil, newTestTranslations(t))

		var messages []string
		_, err := svc.AnalyzePullRequests(ctx, []models.PRRequest{
			{Repo: "acme/user-service", Number: 1},
			{Repo: "acme/billing", Number: 2},
		}, func(msg string) { messages = append(messages, msg) })

		require.NoError(t, err)
		require.Len(t, messages, 2)
		assert.Equal(t, "Fetching PR acme/user-service#1...", messages[0])
		assert.Equal(t, "Fetching PR acme/billing#2...", messages[1])
	})
}
