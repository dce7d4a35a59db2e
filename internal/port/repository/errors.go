package repository

type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

const (
	ErrNotFound  = RepositoryError("entity not found")
	ErrConflict  = RepositoryError("entity already exists")
	ErrDuplicate = RepositoryError("duplicate unique field")
)
