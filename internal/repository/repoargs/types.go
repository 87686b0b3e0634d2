package repoargs

type RepositoryName string

const (
	UserRepoName       RepositoryName = "user"
	MovieRepoName      RepositoryName = "movie"
	InvestmentRepoName RepositoryName = "investment"
)
