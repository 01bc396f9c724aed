// Package storage определяет общие ошибки хранилища учётных записей.
// Конкретные реализации находятся в подпакетах memory и repository
// и возвращают эти ошибки, чтобы бизнес-логика не зависела от драйвера.
package storage

import "errors"

// ErrAccountNotFound возвращается, когда учётная запись с указанным
// email или идентификатором отсутствует в хранилище.
var ErrAccountNotFound = errors.New("account not found")

// ErrEmailTaken возвращается при попытке создать учётную запись
// с уже занятым email.
var ErrEmailTaken = errors.New("email already exists")
