// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import "context"

// Repository persists homepage sections.
type Repository interface {
	// List returns sections ordered by position.
	List(context context.Context, visibleOnly bool) ([]*Section, error)
	FindByID(context context.Context, id string) (*Section, error)

	// Create appends the section after the current last position.
	Create(context context.Context, section *Section) error
	Update(context context.Context, section *Section) error
	Delete(context context.Context, id string) error

	/*
		Reorder assigns positions 1..N following ids, atomically.

		Returns:
		  - error: ErrOrderMismatch when ids is not exactly the stored set
	*/
	Reorder(context context.Context, ids []string) error
}
