package service

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig: неверные параметры прогона, отклоняются до начала сопоставления.
	ErrConfig = errors.New("invalid configuration")
	// ErrMissingColumn: колонки нет в таблице. Пустым значением не подменяется.
	ErrMissingColumn = errors.New("missing column")
	// ErrInvariant: внутренняя ошибка агрегации, не должна случаться.
	ErrInvariant = errors.New("invariant violation")
)

func configErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

func missingColumn(table, col string) error {
	return fmt.Errorf("%w: %q in table %q", ErrMissingColumn, col, table)
}
