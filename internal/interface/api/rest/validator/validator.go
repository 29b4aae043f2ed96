package validator

import (
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// MaxPage keeps the list offset well inside a postgres integer.
const MaxPage = 100000

var ErrInvalidPage = errors.New("page must be an integer between 1 and 100000")

func ValidatePage(page string) (int, error) {
	if page == "" {
		return 1, nil
	}
	p, err := strconv.Atoi(page)
	if err != nil || p < 1 || p > MaxPage {
		return 0, ErrInvalidPage
	}

	return p, nil
}

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

// OptionalUUID treats a blank value as absent.
func OptionalUUID(field, s string) (*uuid.UUID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	ok, id := IsUUID(s)
	if !ok {
		return nil, errors.New(field + " must be a valid UUID")
	}
	return &id, nil
}
