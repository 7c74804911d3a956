package services

import (
	"errors"

	"rev-shortener/storage"
	"rev-shortener/urlgen"
)

var (
	ErrInvalidLink   = errors.New("invalid link")
	ErrLimitReached  = errors.New("storage limit reached")
	ErrUnknownURL    = errors.New("unknown short URL")
	ErrPoolExhausted = errors.New("identifier pool exhausted")
	ErrPoolTooSmall  = errors.New("identifier pool smaller than storage limit")
	ErrShortURLTaken = errors.New("short URL already issued")
)

func handleStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrStorageCapacityReached):
		return ErrLimitReached
	case errors.Is(err, storage.ErrShortURLNotFound):
		return ErrUnknownURL
	case errors.Is(err, storage.ErrShortURLExists):
		return ErrShortURLTaken
	default:
		return err
	}
}

func handleStrategyError(err error) error {
	if errors.Is(err, urlgen.ErrPoolExhausted) {
		return ErrPoolExhausted
	}
	return err
}
