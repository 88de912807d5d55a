package docstore

import (
	"context"

	"tastelocal/internal/document"
	"tastelocal/internal/domain/entity"
	"tastelocal/internal/domain/repository"

	"github.com/pkg/errors"
)

// userRepository implements the repository.UserRepository interface.
type userRepository struct {
	store repository.DocumentStore
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(store repository.DocumentStore) repository.UserRepository {
	return &userRepository{store: store}
}

func (repo *userRepository) FindByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	doc, err := repo.store.Get(ctx, repository.CollectionUsers, id)
	if err != nil {
		return nil, err
	}

	user, err := entity.DecodeUserProfile(doc.ID, doc.Data)
	if err != nil {
		return nil, errors.Wrapf(err, "user %s", id)
	}

	return user, nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.UserProfile) error {
	_, err := repo.store.Create(ctx, repository.CollectionUsers, user.ID, document.CleanMap(user.Document()))

	return err
}

func (repo *userRepository) Update(ctx context.Context, id string, fields document.Map) error {
	_, err := repo.store.Update(ctx, repository.CollectionUsers, id, document.CleanMap(fields))

	return err
}
