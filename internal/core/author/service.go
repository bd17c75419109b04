package author

import (
	"context"
	"log/slog"
	"strings"

	"github.com/taibuivan/yomira-press/internal/platform/dberr"
	"github.com/taibuivan/yomira-press/internal/platform/validate"
	"github.com/taibuivan/yomira-press/pkg/slice"
)

// Service manages the author directory.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (service *Service) ListAuthors(ctx context.Context, filter Filter, limit, offset int) ([]*Author, int, error) {
	filter.Query = strings.TrimSpace(filter.Query)
	return service.repo.List(ctx, filter, limit, offset)
}

// GetAuthor returns dberr.ErrNotFound for non-positive ids without a lookup.
func (service *Service) GetAuthor(ctx context.Context, id int) (*Author, error) {
	if id <= 0 {
		return nil, dberr.ErrNotFound
	}
	return service.repo.FindByID(ctx, id)
}

func (service *Service) CreateAuthor(ctx context.Context, author *Author) error {
	normalize(author)
	if err := validateAuthor(author); err != nil {
		return err
	}

	if err := service.repo.Create(ctx, author); err != nil {
		return err
	}

	service.logger.Info("author_created", slog.Int("author_id", author.ID), slog.String("name", author.Name))
	return nil
}

// UpdateInput carries a partial update; nil fields keep their value.
type UpdateInput struct {
	Name     *string
	NameAlt  *[]string
	Bio      *string
	ImageURL *string
}

func (service *Service) UpdateAuthor(ctx context.Context, id int, input UpdateInput) (*Author, error) {
	author, err := service.GetAuthor(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		author.Name = *input.Name
	}
	if input.NameAlt != nil {
		author.NameAlt = *input.NameAlt
	}
	if input.Bio != nil {
		author.Bio = input.Bio
	}
	if input.ImageURL != nil {
		author.ImageURL = input.ImageURL
	}

	normalize(author)
	if err := validateAuthor(author); err != nil {
		return nil, err
	}

	if err := service.repo.Update(ctx, author); err != nil {
		return nil, err
	}

	service.logger.Info("author_updated", slog.Int("author_id", author.ID))
	return author, nil
}

func (service *Service) DeleteAuthor(ctx context.Context, id int) error {
	if id <= 0 {
		return dberr.ErrNotFound
	}
	if err := service.repo.SoftDelete(ctx, id); err != nil {
		return err
	}

	service.logger.Warn("author_deleted", slog.Int("author_id", id))
	return nil
}

func normalize(author *Author) {
	author.Name = strings.TrimSpace(author.Name)
	author.NameAlt = slice.Filter(
		slice.Map(author.NameAlt, strings.TrimSpace),
		func(name string) bool { return name != "" },
	)
	if author.NameAlt == nil {
		author.NameAlt = []string{}
	}
	if author.ImageURL != nil && strings.TrimSpace(*author.ImageURL) == "" {
		author.ImageURL = nil
	}
}

func validateAuthor(author *Author) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, author.Name).MaxLen(FieldName, author.Name, 200)
	validator.Custom(FieldNameAlt, len(author.NameAlt) > 20, "At most 20 alternate names are allowed")
	for _, alt := range author.NameAlt {
		validator.MaxLen(FieldNameAlt, alt, 200)
	}
	if author.Bio != nil {
		validator.MaxLen(FieldBio, *author.Bio, 5000)
	}
	if author.ImageURL != nil {
		validator.URL(FieldImageURL, *author.ImageURL)
	}
	return validator.Err()
}
