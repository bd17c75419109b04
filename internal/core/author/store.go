package author

import "context"

// Repository persists authors.
type Repository interface {
	List(context context.Context, filter Filter, limit, offset int) ([]*Author, int, error)
	FindByID(context context.Context, id int) (*Author, error)
	Create(context context.Context, author *Author) error
	Update(context context.Context, author *Author) error
	SoftDelete(context context.Context, id int) error
}
