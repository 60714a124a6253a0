package models

import (
	"context"

	"github.com/mmdatafocus/sales_backend/store"
)

// create stores input through svc and decodes the stored record as T.
func create[T any, PT interface {
	*T
	baseSetter
}](ctx context.Context, svc *Service, input any) (*T, error) {
	fields, err := store.FieldsOf(input)
	if err != nil {
		return nil, err
	}
	rec, err := svc.Add(ctx, fields)
	if err != nil {
		return nil, err
	}
	return Decode[T, PT](*rec)
}
